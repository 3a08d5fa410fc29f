package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// OptionType is the sign of the payoff: +1 for a call, -1 for a put.
type OptionType int

const (
	Call OptionType = 1
	Put  OptionType = -1
)

func (t OptionType) String() string {
	switch t {
	case Call:
		return "call"
	case Put:
		return "put"
	default:
		return fmt.Sprintf("OptionType(%d)", int(t))
	}
}

// Sign returns +1 for calls and -1 for puts.
func (t OptionType) Sign() float64 {
	return float64(t)
}

func (t OptionType) valid() bool {
	return t == Call || t == Put
}

// ParseOptionType accepts "call", "put", "c" or "p" in any case.
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return 0, &InvalidParameterError{Field: "type", Value: s}
}

var ErrInvalidParameter = errors.New("invalid option parameter")

// InvalidParameterError names the option field that broke the pricing invariant.
type InvalidParameterError struct {
	Field string
	Value interface{}
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: %s=%v", ErrInvalidParameter, e.Field, e.Value)
}

func (e *InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// Option holds the market and contract parameters of one European option.
// It is immutable once built; strategies only read it.
type Option struct {
	optType    OptionType
	spot       float64 // S0
	strike     float64 // K
	rate       float64 // continuously compounded risk-free rate
	dividend   float64 // continuously compounded dividend yield
	maturity   float64 // years
	volatility float64 // sigma
}

// NewOption validates the parameters and returns the option. Spot, strike,
// maturity and volatility must be strictly positive; rate and dividend yield
// must be finite.
func NewOption(optType OptionType, spot, strike, rate, dividendYield, maturity, volatility float64) (Option, error) {
	if !optType.valid() {
		return Option{}, &InvalidParameterError{Field: "type", Value: int(optType)}
	}

	positive := []struct {
		name  string
		value float64
	}{
		{"spot", spot},
		{"strike", strike},
		{"maturity", maturity},
		{"volatility", volatility},
	}
	for _, p := range positive {
		if !(p.value > 0) || math.IsInf(p.value, 0) {
			return Option{}, &InvalidParameterError{Field: p.name, Value: p.value}
		}
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return Option{}, &InvalidParameterError{Field: "rate", Value: rate}
	}
	if math.IsNaN(dividendYield) || math.IsInf(dividendYield, 0) {
		return Option{}, &InvalidParameterError{Field: "dividend_yield", Value: dividendYield}
	}

	return Option{
		optType:    optType,
		spot:       spot,
		strike:     strike,
		rate:       rate,
		dividend:   dividendYield,
		maturity:   maturity,
		volatility: volatility,
	}, nil
}

// MustOption is like NewOption but panics on invalid parameters.
func MustOption(optType OptionType, spot, strike, rate, dividendYield, maturity, volatility float64) Option {
	o, err := NewOption(optType, spot, strike, rate, dividendYield, maturity, volatility)
	if err != nil {
		panic(err)
	}
	return o
}

func (o Option) Type() OptionType       { return o.optType }
func (o Option) Spot() float64          { return o.spot }
func (o Option) Strike() float64        { return o.strike }
func (o Option) Rate() float64          { return o.rate }
func (o Option) DividendYield() float64 { return o.dividend }
func (o Option) Maturity() float64      { return o.maturity }
func (o Option) Volatility() float64    { return o.volatility }

func (o Option) String() string {
	return fmt.Sprintf("%s S=%.4f K=%.4f r=%.4f q=%.4f T=%.4f vol=%.4f",
		o.optType, o.spot, o.strike, o.rate, o.dividend, o.maturity, o.volatility)
}
