package models

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Intermediates are the d1/d2 terms and their normal CDF/PDF values shared by
// the value and every Greek of one pricing call.
type Intermediates struct {
	D1   float64 `json:"d1"`
	D2   float64 `json:"d2"`
	Nd1  float64 `json:"n_d1"`
	Nnd1 float64 `json:"n_minus_d1"`
	Nd2  float64 `json:"n_d2"`
	Nnd2 float64 `json:"n_minus_d2"`
	PNd1 float64 `json:"pdf_d1"`
}

// BlackScholesMerton prices European options in closed form with a
// continuous dividend yield. It does not validate its input: a non-positive
// spot, strike, maturity or volatility produces NaN or Inf.
type BlackScholesMerton struct {
	result PricingResult
	terms  Intermediates
}

func NewBlackScholesMerton() *BlackScholesMerton {
	return &BlackScholesMerton{}
}

func (bs *BlackScholesMerton) PriceOption(o Option) error {
	bs.result.begin()

	S, K, T := o.Spot(), o.Strike(), o.Maturity()
	r, q, sigma := o.Rate(), o.DividendYield(), o.Volatility()

	d1 := (math.Log(S/K) + (r-q+0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
	d2 := d1 - sigma*math.Sqrt(T)

	bs.terms = Intermediates{
		D1:   d1,
		D2:   d2,
		Nd1:  normCDF(d1),
		Nnd1: normCDF(-d1),
		Nd2:  normCDF(d2),
		Nnd2: normCDF(-d2),
		PNd1: normPDF(d1),
	}

	calculateGreeks(bs, o)
	bs.result.hasGreeks = true
	bs.result.commit()
	return nil
}

func (bs *BlackScholesMerton) Result() PricingResult { return bs.result }

func (bs *BlackScholesMerton) Reset() {
	bs.result.reset()
	bs.terms = Intermediates{}
}

func (bs *BlackScholesMerton) Kind() StrategyKind { return KindAnalytic }

func (bs *BlackScholesMerton) isPricingStrategy() {}

// Intermediates returns the terms of the last pricing call.
func (bs *BlackScholesMerton) Intermediates() Intermediates { return bs.terms }

func (bs *BlackScholesMerton) value(o Option) {
	S, K, T := o.Spot(), o.Strike(), o.Maturity()
	r, q := o.Rate(), o.DividendYield()

	var price float64
	if o.Type() == Call {
		price = S*math.Exp(-q*T)*bs.terms.Nd1 - K*math.Exp(-r*T)*bs.terms.Nd2
	} else {
		price = K*math.Exp(-r*T)*bs.terms.Nnd2 - S*math.Exp(-q*T)*bs.terms.Nnd1
	}
	bs.result.value = Estimate{Mean: price}
}

func (bs *BlackScholesMerton) delta(o Option) {
	carry := math.Exp(-o.DividendYield() * o.Maturity())
	if o.Type() == Call {
		bs.result.greeks.Delta = carry * bs.terms.Nd1
	} else {
		bs.result.greeks.Delta = carry * (bs.terms.Nd1 - 1)
	}
}

func (bs *BlackScholesMerton) gamma(o Option) {
	S, T, sigma := o.Spot(), o.Maturity(), o.Volatility()
	bs.result.greeks.Gamma = bs.terms.PNd1 * math.Exp(-o.DividendYield()*T) / (S * sigma * math.Sqrt(T))
}

func (bs *BlackScholesMerton) vega(o Option) {
	S, T := o.Spot(), o.Maturity()
	bs.result.greeks.Vega = S * bs.terms.PNd1 * math.Exp(-o.DividendYield()*T) * math.Sqrt(T)
}

func (bs *BlackScholesMerton) rho(o Option) {
	K, T, r := o.Strike(), o.Maturity(), o.Rate()
	if o.Type() == Call {
		bs.result.greeks.Rho = K * T * math.Exp(-r*T) * bs.terms.Nd2
	} else {
		bs.result.greeks.Rho = -K * T * math.Exp(-r*T) * bs.terms.Nnd2
	}
}

// theta is -dV/dT, per year.
func (bs *BlackScholesMerton) theta(o Option) {
	S, K, T := o.Spot(), o.Strike(), o.Maturity()
	r, q, sigma := o.Rate(), o.DividendYield(), o.Volatility()

	decay := -(S * bs.terms.PNd1 * sigma * math.Exp(-q*T)) / (2 * math.Sqrt(T))
	if o.Type() == Call {
		bs.result.greeks.Theta = decay + q*S*math.Exp(-q*T)*bs.terms.Nd1 - r*K*math.Exp(-r*T)*bs.terms.Nd2
	} else {
		bs.result.greeks.Theta = decay - q*S*math.Exp(-q*T)*bs.terms.Nnd1 + r*K*math.Exp(-r*T)*bs.terms.Nnd2
	}
}

func normCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

func normPDF(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}
