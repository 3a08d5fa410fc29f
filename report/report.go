// Package report renders the state of a priced option for humans and clients.
package report

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xhhuango/json"
	"gonum.org/v1/gonum/stat"

	"github.com/bcdannyboy/eurostrat/models"
	"github.com/bcdannyboy/eurostrat/positions"
)

// DefaultPlaces is the rounding applied to prices and Greeks.
const DefaultPlaces = 6

type OptionView struct {
	Type          string  `json:"type"`
	Spot          float64 `json:"spot"`
	Strike        float64 `json:"strike"`
	Rate          float64 `json:"rate"`
	DividendYield float64 `json:"dividend_yield"`
	Maturity      float64 `json:"maturity"`
	Volatility    float64 `json:"volatility"`
}

type GreeksView struct {
	Delta decimal.Decimal `json:"delta"`
	Gamma decimal.Decimal `json:"gamma"`
	Vega  decimal.Decimal `json:"vega"`
	Rho   decimal.Decimal `json:"rho"`
	Theta decimal.Decimal `json:"theta"`
}

type SimulationView struct {
	Accelerated bool            `json:"accelerated"`
	Paths       int             `json:"paths"`
	Variance    decimal.Decimal `json:"variance"`
	StdErr      decimal.Decimal `json:"std_err"`
	FellBack    bool            `json:"fell_back,omitempty"`
}

// ReplicateSummary describes independent re-pricings of the same option.
type ReplicateSummary struct {
	Count  int             `json:"count"`
	Mean   decimal.Decimal `json:"mean"`
	StdDev decimal.Decimal `json:"std_dev"`
}

type Snapshot struct {
	Option        OptionView            `json:"option"`
	Model         string                `json:"model"`
	State         string                `json:"state"`
	Price         *decimal.Decimal      `json:"price,omitempty"`
	Greeks        *GreeksView           `json:"greeks,omitempty"`
	Simulation    *SimulationView       `json:"simulation,omitempty"`
	Intermediates *models.Intermediates `json:"intermediates,omitempty"`
	Replicates    *ReplicateSummary     `json:"replicates,omitempty"`
	ElapsedMs     float64               `json:"elapsed_ms,omitempty"`
}

// Build reads the option's cached result without triggering a pricing call.
func Build(e *positions.EuropeanOption, places int32) Snapshot {
	o := e.Option()
	strategy := e.Strategy()
	result := strategy.Result()

	snap := Snapshot{
		Option: OptionView{
			Type:          o.Type().String(),
			Spot:          o.Spot(),
			Strike:        o.Strike(),
			Rate:          o.Rate(),
			DividendYield: o.DividendYield(),
			Maturity:      o.Maturity(),
			Volatility:    o.Volatility(),
		},
		Model: strategy.Kind().String(),
		State: result.State().String(),
	}

	value, ok := result.Value()
	if !ok {
		return snap
	}
	price := round(value.Mean, places)
	snap.Price = &price

	if g, ok := result.Greeks(); ok {
		snap.Greeks = &GreeksView{
			Delta: round(g.Delta, places),
			Gamma: round(g.Gamma, places),
			Vega:  round(g.Vega, places),
			Rho:   round(g.Rho, places),
			Theta: round(g.Theta, places),
		}
	}

	switch s := strategy.(type) {
	case *models.BlackScholesMerton:
		terms := s.Intermediates()
		snap.Intermediates = &terms
	case *models.MonteCarlo:
		snap.Simulation = &SimulationView{
			Accelerated: s.Accelerated(),
			Paths:       value.Samples,
			Variance:    round(value.Variance, places),
			StdErr:      round(value.StdErr(), places),
			FellBack:    s.FellBack(),
		}
	}
	return snap
}

// WithElapsed records how long the pricing call took.
func (s Snapshot) WithElapsed(d time.Duration) Snapshot {
	s.ElapsedMs = float64(d.Microseconds()) / 1000
	return s
}

// WithReplicates attaches the dispersion of replicate means.
func (s Snapshot) WithReplicates(means []float64, places int32) Snapshot {
	if len(means) == 0 {
		return s
	}
	summary := &ReplicateSummary{Count: len(means)}
	if len(means) == 1 {
		summary.Mean = round(means[0], places)
		summary.StdDev = decimal.Zero
	} else {
		mean, std := stat.MeanStdDev(means, nil)
		summary.Mean = round(mean, places)
		summary.StdDev = round(std, places)
	}
	s.Replicates = summary
	return s
}

func (s Snapshot) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// round converts to decimal; NaN and Inf, which decimal cannot hold, become 0.
func round(v float64, places int32) decimal.Decimal {
	return decimal.NewFromFloat(sanitizeFloat(v)).Round(places)
}

func sanitizeFloat(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
