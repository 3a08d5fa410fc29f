package positions

import (
	"fmt"

	"github.com/bcdannyboy/eurostrat/logger"
	"github.com/bcdannyboy/eurostrat/models"
)

// EuropeanOption binds one option to one pricing strategy and caches the
// strategy's result. The strategy must not be shared with another option.
type EuropeanOption struct {
	option   models.Option
	strategy models.PricingStrategy
}

func New(option models.Option, strategy models.PricingStrategy) *EuropeanOption {
	return &EuropeanOption{
		option:   option,
		strategy: strategy,
	}
}

// Price returns the cached value, pricing first if nothing is cached. A
// cached zero is returned as is.
func (e *EuropeanOption) Price() (models.Estimate, error) {
	if value, ok := e.strategy.Result().Value(); ok {
		logger.L().Debug("price cache hit", "strategy", e.strategy.Kind().String())
		return value, nil
	}
	return e.price()
}

// Reprice discards the cached result and prices again. For a simulation
// strategy this draws a fresh sample set.
func (e *EuropeanOption) Reprice() (models.Estimate, error) {
	e.strategy.Reset()
	return e.price()
}

func (e *EuropeanOption) price() (models.Estimate, error) {
	logger.L().Debug("pricing", "strategy", e.strategy.Kind().String(), "option", e.option.String())
	if err := e.strategy.PriceOption(e.option); err != nil {
		return models.Estimate{}, fmt.Errorf("price %s with %s strategy: %w", e.option.Type(), e.strategy.Kind(), err)
	}
	value, ok := e.strategy.Result().Value()
	if !ok {
		return models.Estimate{}, fmt.Errorf("%s strategy left no value", e.strategy.Kind())
	}
	return value, nil
}

func (e *EuropeanOption) greeks() (models.Greeks, bool) {
	return e.strategy.Result().Greeks()
}

// Delta is false until an analytic strategy has priced the option.
func (e *EuropeanOption) Delta() (float64, bool) {
	g, ok := e.greeks()
	return g.Delta, ok
}

func (e *EuropeanOption) Gamma() (float64, bool) {
	g, ok := e.greeks()
	return g.Gamma, ok
}

func (e *EuropeanOption) Vega() (float64, bool) {
	g, ok := e.greeks()
	return g.Vega, ok
}

func (e *EuropeanOption) Rho() (float64, bool) {
	g, ok := e.greeks()
	return g.Rho, ok
}

func (e *EuropeanOption) Theta() (float64, bool) {
	g, ok := e.greeks()
	return g.Theta, ok
}

// Greeks returns all sensitivities at once.
func (e *EuropeanOption) Greeks() (models.Greeks, bool) {
	return e.greeks()
}

func (e *EuropeanOption) Type() models.OptionType          { return e.option.Type() }
func (e *EuropeanOption) Option() models.Option            { return e.option }
func (e *EuropeanOption) Strategy() models.PricingStrategy { return e.strategy }
