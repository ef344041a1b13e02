package config

// DefaultSymbols lists the symbols scanned when none are configured.
var DefaultSymbols = []string{
	"SPX", "NDX", "RUT", "SPY", "QQQ", "IWM",
	"AAPL", "TSLA", "NVDA", "META",
	"AMZN", "GOOG", "GOOGL", "NFLX", "AMD", "ORCL",
}
