package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/dgnsrekt/optionsdesk/internal/decision"
	"github.com/dgnsrekt/optionsdesk/internal/events"
	"github.com/dgnsrekt/optionsdesk/internal/gex"
	"github.com/dgnsrekt/optionsdesk/internal/vol"
	"github.com/dgnsrekt/optionsdesk/internal/window"
)

type Config struct {
	Symbols []string `mapstructure:"symbols"`

	Pricing  PricingConfig           `mapstructure:"pricing"`
	Data     DataConfig              `mapstructure:"data"`
	Scan     ScanConfig              `mapstructure:"scan"`
	GEX      gex.ProfileConfig       `mapstructure:"gex"`
	Regime   gex.RegimeConfig        `mapstructure:"regime"`
	Events   events.HorizonConfig    `mapstructure:"events"`
	Calendar CalendarConfig          `mapstructure:"calendar"`
	Decision decision.Config         `mapstructure:"decision"`
	VIX      vol.VIXConfig           `mapstructure:"vix"`
	Kill     window.KillSwitchConfig `mapstructure:"kill_switch"`
	Logging  LoggingConfig           `mapstructure:"logging"`
}

type PricingConfig struct {
	RiskFreeRatePct float64 `mapstructure:"risk_free_rate_pct"`
}

type DataConfig struct {
	Directory string `mapstructure:"directory"`
	Date      string `mapstructure:"date"` // YYYY-MM-DD or "latest"
}

type ScanConfig struct {
	Workers       int `mapstructure:"workers"`
	RatePerSecond int `mapstructure:"rate_per_second"`
}

type CalendarConfig struct {
	FOMCDates []string               `mapstructure:"fomc_dates"`
	Blackouts []events.BlackoutEntry `mapstructure:"blackout_dates"`
}

type LoggingConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory"`
	Level     string `mapstructure:"level"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Environment variable support
	v.SetEnvPrefix("GEXDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Load config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("default")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("symbols", DefaultSymbols)

	v.SetDefault("pricing.risk_free_rate_pct", 5.0)

	v.SetDefault("data.directory", "data")
	v.SetDefault("data.date", "latest")

	v.SetDefault("scan.workers", 3)
	v.SetDefault("scan.rate_per_second", 2)

	profile := gex.DefaultProfileConfig()
	v.SetDefault("gex.call_wall_threshold", profile.CallWallThreshold)
	v.SetDefault("gex.put_wall_threshold", profile.PutWallThreshold)
	v.SetDefault("gex.flip_threshold", profile.FlipThreshold)
	v.SetDefault("gex.default_gamma", profile.DefaultGamma)
	v.SetDefault("gex.expirations", profile.Expirations)

	regime := gex.DefaultRegimeConfig()
	v.SetDefault("regime.threshold", regime.Threshold)
	v.SetDefault("regime.strong_threshold", regime.StrongThreshold)

	horizon := events.DefaultHorizonConfig()
	v.SetDefault("events.lookahead_days", horizon.LookaheadDays)
	v.SetDefault("events.high_risk_days", horizon.HighRiskDays)
	v.SetDefault("events.block_days", horizon.BlockDays)
	v.SetDefault("events.fomc_block_penalty", horizon.FOMCBlockPenalty)
	v.SetDefault("events.fomc_high_risk_penalty", horizon.FOMCHighRiskPenalty)
	v.SetDefault("events.fomc_outer_penalty", horizon.FOMCOuterPenalty)
	v.SetDefault("events.blackout_block_penalty", horizon.BlackoutBlockPenalty)
	v.SetDefault("events.blackout_high_risk_penalty", horizon.BlackoutHighRiskPenalty)
	v.SetDefault("events.blackout_outer_penalty", horizon.BlackoutOuterPenalty)
	v.SetDefault("events.adjustment_floor", horizon.AdjustmentFloor)

	v.SetDefault("calendar.fomc_dates", events.DefaultFOMCDates())

	dec := decision.DefaultConfig()
	v.SetDefault("decision.base_confidence", dec.BaseConfidence)
	v.SetDefault("decision.flow_agreement_bonus", dec.FlowAgreementBonus)
	v.SetDefault("decision.low_fakeout_bonus", dec.LowFakeoutBonus)
	v.SetDefault("decision.high_fakeout_penalty", dec.HighFakeoutPenalty)
	v.SetDefault("decision.no_trade_below", dec.NoTradeBelow)
	v.SetDefault("decision.downgrade_below", dec.DowngradeBelow)
	v.SetDefault("decision.strong_avoid_below", dec.StrongAvoidBelow)
	v.SetDefault("decision.avoid_below", dec.AvoidBelow)
	v.SetDefault("decision.neutral_below", dec.NeutralBelow)
	v.SetDefault("decision.vix_extreme_penalty", dec.VIXExtremePenalty)
	v.SetDefault("decision.vix_high_penalty", dec.VIXHighPenalty)
	v.SetDefault("decision.sector_outflow_penalty", dec.SectorOutflowPenalty)
	v.SetDefault("decision.earnings_risk_penalty", dec.EarningsRiskPenalty)
	v.SetDefault("decision.trend_gex_below", dec.TrendGEXBelow)
	v.SetDefault("decision.trend_flow_above", dec.TrendFlowAbove)
	v.SetDefault("decision.pin_gex_above", dec.PinGEXAbove)
	v.SetDefault("decision.vix_breakout_change", dec.VIXBreakoutChange)
	v.SetDefault("decision.market_trend_cut", dec.MarketTrendCut)
	v.SetDefault("decision.sector_inflow_ratio", dec.SectorInflowRatio)
	v.SetDefault("decision.sector_outflow_ratio", dec.SectorOutflowRatio)

	vix := vol.DefaultVIXConfig()
	v.SetDefault("vix.low_max", vix.LowMax)
	v.SetDefault("vix.elevated_max", vix.ElevatedMax)
	v.SetDefault("vix.high_max", vix.HighMax)
	v.SetDefault("vix.contango_ratio", vix.ContangoRatio)
	v.SetDefault("vix.backwardation_ratio", vix.BackwardationRatio)

	kill := window.DefaultKillSwitchConfig()
	v.SetDefault("kill_switch.spike_critical", kill.SpikeCritical)
	v.SetDefault("kill_switch.spike_elevated", kill.SpikeElevated)

	v.SetDefault("logging.enabled", true)
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.level", "info")
}

// EventCalendar builds the immutable calendar value from the configured
// FOMC schedule and blackout list.
func (c *Config) EventCalendar() events.Calendar {
	return events.NewCalendar(c.Calendar.FOMCDates, c.Calendar.Blackouts)
}
