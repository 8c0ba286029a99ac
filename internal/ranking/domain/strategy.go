package domain

import (
	"errors"
	"strings"
)

// Strategy selects how the scoring components combine into a priority score.
type Strategy int

const (
	StrategySmartBalance Strategy = iota
	StrategyFastestWins
	StrategyHighImpact
	StrategyDeadlineDriven
)

var (
	ErrInvalidStrategy = errors.New("unknown strategy")
)

var strategyNames = map[Strategy]string{
	StrategySmartBalance:   "smart_balance",
	StrategyFastestWins:    "fastest_wins",
	StrategyHighImpact:     "high_impact",
	StrategyDeadlineDriven: "deadline_driven",
}

var strategyValues = map[string]Strategy{
	"smart_balance":   StrategySmartBalance,
	"fastest_wins":    StrategyFastestWins,
	"high_impact":     StrategyHighImpact,
	"deadline_driven": StrategyDeadlineDriven,
}

// ParseStrategy creates a Strategy from its wire name.
func ParseStrategy(s string) (Strategy, error) {
	strategy, ok := strategyValues[strings.ToLower(s)]
	if !ok {
		return StrategySmartBalance, ErrInvalidStrategy
	}
	return strategy, nil
}

// String returns the wire name of the strategy.
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsValid reports whether the strategy is one of the known variants.
func (s Strategy) IsValid() bool {
	_, ok := strategyNames[s]
	return ok
}

// StrategyNames returns the wire names of all known strategies.
func StrategyNames() []string {
	return []string{
		StrategySmartBalance.String(),
		StrategyFastestWins.String(),
		StrategyHighImpact.String(),
		StrategyDeadlineDriven.String(),
	}
}
