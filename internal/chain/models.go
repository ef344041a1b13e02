package chain

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// OptionType distinguishes calls and puts.
type OptionType string

const (
	TypeCall OptionType = "call"
	TypePut  OptionType = "put"
)

// Valid reports whether the option type is a known variant.
func (t OptionType) Valid() bool {
	switch t {
	case TypeCall, TypePut:
		return true
	default:
		return false
	}
}

// OptionQuote is an immutable snapshot of one contract at one instant.
// Greeks fields are nil until supplied by the feed or computed downstream.
type OptionQuote struct {
	Strike            float64    `json:"strike"`
	Expiration        string     `json:"expiration"` // YYYY-MM-DD
	Type              OptionType `json:"type"`
	Bid               float64    `json:"bid"`
	Ask               float64    `json:"ask"`
	MarkPrice         float64    `json:"mark_price"`
	ImpliedVolatility float64    `json:"implied_volatility"` // percent, e.g. 25 for 25%
	OpenInterest      int        `json:"open_interest"`
	Volume            int        `json:"volume"`
	Delta             *float64   `json:"delta,omitempty"`
	Gamma             *float64   `json:"gamma,omitempty"`
	Theta             *float64   `json:"theta,omitempty"`
	Vega              *float64   `json:"vega,omitempty"`
}

// StrikePair holds the call and put quotes at one strike. Either side may be
// missing in a thin chain.
type StrikePair struct {
	Call *OptionQuote `json:"call,omitempty"`
	Put  *OptionQuote `json:"put,omitempty"`
}

// Strike keys the per-expiration chain map. JSON object keys are strings, so
// strikes cross the codec boundary through their text form.
type Strike float64

func (s Strike) MarshalText() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(s), 'f', -1, 64), nil
}

func (s *Strike) UnmarshalText(text []byte) error {
	v, err := strconv.ParseFloat(string(text), 64)
	if err != nil {
		return fmt.Errorf("parsing strike %q: %w", text, err)
	}
	*s = Strike(v)
	return nil
}

// Snapshot is one underlying's option chain at one instant. An empty chain is
// valid and yields empty downstream results.
type Snapshot struct {
	Underlying  string                           `json:"underlying"`
	Spot        float64                          `json:"spot"`
	Timestamp   time.Time                        `json:"timestamp"`
	Expirations map[string]map[Strike]StrikePair `json:"expirations"`
}

// Validate checks the numeric domain of the snapshot.
func (s *Snapshot) Validate() error {
	if s.Underlying == "" {
		return fmt.Errorf("snapshot missing underlying symbol")
	}
	if s.Spot <= 0 {
		return fmt.Errorf("snapshot %s: spot must be positive, got %v", s.Underlying, s.Spot)
	}
	for exp, strikes := range s.Expirations {
		for strike := range strikes {
			if strike <= 0 {
				return fmt.Errorf("snapshot %s: non-positive strike %v at %s", s.Underlying, strike, exp)
			}
		}
	}
	return nil
}

// IsEmpty reports whether the chain carries no contracts.
func (s *Snapshot) IsEmpty() bool {
	for _, strikes := range s.Expirations {
		if len(strikes) > 0 {
			return false
		}
	}
	return true
}

// SortedExpirations returns expiration dates in ascending order.
// The YYYY-MM-DD layout sorts lexically.
func (s *Snapshot) SortedExpirations() []string {
	exps := make([]string, 0, len(s.Expirations))
	for exp := range s.Expirations {
		exps = append(exps, exp)
	}
	sort.Strings(exps)
	return exps
}

// NearestExpiration returns the earliest expiration in the chain.
// ok is false for an empty chain.
func (s *Snapshot) NearestExpiration() (string, bool) {
	exps := s.SortedExpirations()
	for _, exp := range exps {
		if len(s.Expirations[exp]) > 0 {
			return exp, true
		}
	}
	return "", false
}

// SortedStrikes returns the strikes for an expiration in ascending order.
func (s *Snapshot) SortedStrikes(expiration string) []float64 {
	pairs := s.Expirations[expiration]
	strikes := make([]float64, 0, len(pairs))
	for k := range pairs {
		strikes = append(strikes, float64(k))
	}
	sort.Float64s(strikes)
	return strikes
}

// DaysToExpiry computes calendar days from the snapshot timestamp to the
// given expiration date, floored at zero.
func (s *Snapshot) DaysToExpiry(expiration string) (int, error) {
	exp, err := time.Parse("2006-01-02", expiration)
	if err != nil {
		return 0, fmt.Errorf("parsing expiration %q: %w", expiration, err)
	}
	ref := time.Date(s.Timestamp.Year(), s.Timestamp.Month(), s.Timestamp.Day(), 0, 0, 0, 0, time.UTC)
	days := int(exp.Sub(ref).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days, nil
}
