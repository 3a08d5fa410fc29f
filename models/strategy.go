package models

import (
	"errors"
	"fmt"
	"strings"
)

// StrategyKind enumerates the closed set of pricing strategies.
type StrategyKind int

const (
	KindAnalytic StrategyKind = iota
	KindSimulation
	KindLattice
)

func (k StrategyKind) String() string {
	switch k {
	case KindAnalytic:
		return "analytic"
	case KindSimulation:
		return "simulation"
	case KindLattice:
		return "lattice"
	default:
		return fmt.Sprintf("StrategyKind(%d)", int(k))
	}
}

// ParseStrategyKind maps a model name to its kind.
func ParseStrategyKind(s string) (StrategyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "analytic", "black-scholes", "blackscholes", "bsm":
		return KindAnalytic, nil
	case "simulation", "monte-carlo", "montecarlo", "mc":
		return KindSimulation, nil
	case "lattice", "binomial", "binomial-tree":
		return KindLattice, nil
	}
	return 0, fmt.Errorf("unknown pricing model %q", s)
}

var ErrNotImplemented = errors.New("pricing strategy not implemented")

// PricingStrategy prices an option into its own PricingResult. The set of
// implementations is closed: BlackScholesMerton, MonteCarlo and BinomialTree.
//
// A strategy instance belongs to a single option and must not be priced from
// two goroutines at once.
type PricingStrategy interface {
	// PriceOption computes the value (and Greeks, where the model has them)
	// and stores them in the strategy's result.
	PriceOption(o Option) error
	Result() PricingResult
	Reset()
	Kind() StrategyKind

	isPricingStrategy()
}

// greekCalculator is implemented by strategies with closed-form sensitivities.
type greekCalculator interface {
	delta(o Option)
	gamma(o Option)
	vega(o Option)
	rho(o Option)
	theta(o Option)
	value(o Option)
}

// calculateGreeks fills every sensitivity and then the value, always in this order.
func calculateGreeks(c greekCalculator, o Option) {
	c.delta(o)
	c.gamma(o)
	c.vega(o)
	c.rho(o)
	c.theta(o)
	c.value(o)
}

// NewStrategy builds a fresh strategy of the given kind. The Monte Carlo
// options are ignored for the other kinds.
func NewStrategy(kind StrategyKind, accelerated bool, opts ...MonteCarloOption) (PricingStrategy, error) {
	switch kind {
	case KindAnalytic:
		return NewBlackScholesMerton(), nil
	case KindSimulation:
		return NewMonteCarlo(accelerated, opts...), nil
	case KindLattice:
		return NewBinomialTree(), nil
	}
	return nil, fmt.Errorf("unknown strategy kind %d", int(kind))
}
