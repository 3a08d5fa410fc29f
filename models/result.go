package models

import "math"

// ResultState tracks whether a PricingResult holds a value. A price of exactly
// zero is a legitimate computed value, so presence is never inferred from the
// number itself.
type ResultState int

const (
	Unset ResultState = iota
	Computing
	Computed
)

func (s ResultState) String() string {
	switch s {
	case Computing:
		return "computing"
	case Computed:
		return "computed"
	default:
		return "unset"
	}
}

// Estimate is a priced value. Closed-form models report Variance 0 and
// Samples 0; Monte Carlo reports the sample variance of the discounted
// payoffs it averaged, not the variance of the mean.
type Estimate struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Samples  int     `json:"samples"`
}

// StdErr is the standard error of the mean, zero for exact values.
func (e Estimate) StdErr() float64 {
	if e.Samples == 0 {
		return 0
	}
	return math.Sqrt(e.Variance / float64(e.Samples))
}

type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
	Theta float64 `json:"theta"`
}

// PricingResult is the mutable holder each strategy instance fills in. It is
// private to one strategy and never shared across options.
type PricingResult struct {
	state     ResultState
	value     Estimate
	greeks    Greeks
	hasGreeks bool
}

func (r PricingResult) State() ResultState { return r.state }

func (r PricingResult) Value() (Estimate, bool) {
	return r.value, r.state == Computed
}

func (r PricingResult) Greeks() (Greeks, bool) {
	return r.greeks, r.state == Computed && r.hasGreeks
}

func (r PricingResult) HasGreeks() bool {
	return r.state == Computed && r.hasGreeks
}

func (r *PricingResult) reset() {
	*r = PricingResult{}
}

func (r *PricingResult) begin() {
	*r = PricingResult{state: Computing}
}

func (r *PricingResult) commit() {
	r.state = Computed
}
