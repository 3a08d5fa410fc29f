package probability

import (
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrInvalidPathCount = errors.New("path count must be positive")
	ErrNoSamples        = errors.New("no samples to reduce")
)

// Params is the flattened contract handed to a sampler.
type Params struct {
	Sign     float64 // +1 call, -1 put
	Spot     float64
	Strike   float64
	Rate     float64
	Yield    float64
	Maturity float64
	Vol      float64
}

// Discount is e^(-rT).
func (p Params) Discount() float64 {
	return math.Exp(-p.Rate * p.Maturity)
}

// Sampler draws n discounted payoffs of a European option whose terminal
// price is S*exp((r - q - vol^2/2)T + vol*sqrt(T)*Z), Z standard normal.
type Sampler interface {
	Sample(p Params, n int) ([]float64, error)
}

// terminal precomputes the log-normal terms for one set of params.
type terminal struct {
	p         Params
	drift     float64
	diffusion float64
}

func newTerminal(p Params) terminal {
	return terminal{
		p:         p,
		drift:     (p.Rate - p.Yield - 0.5*p.Vol*p.Vol) * p.Maturity,
		diffusion: p.Vol * math.Sqrt(p.Maturity),
	}
}

// fill writes undiscounted payoffs for len(dst) draws from rng.
func (t terminal) fill(dst []float64, rng *rand.Rand) error {
	for i := range dst {
		sT := t.p.Spot * math.Exp(t.drift+t.diffusion*rng.NormFloat64())
		payoff := math.Max(t.p.Sign*(sT-t.p.Strike), 0)
		if math.IsNaN(payoff) || math.IsInf(payoff, 0) {
			return fmt.Errorf("non-finite payoff %v for terminal price %v", payoff, sT)
		}
		dst[i] = payoff
	}
	return nil
}

// NaiveSampler draws every path in the calling goroutine from a single
// source. It is not safe for concurrent use.
type NaiveSampler struct {
	rng *rand.Rand
}

// NewNaiveSampler seeds the sampler; seed 0 seeds from the clock.
func NewNaiveSampler(seed uint64) *NaiveSampler {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &NaiveSampler{rng: rand.New(rand.NewSource(seed))}
}

func (s *NaiveSampler) Name() string { return "naive" }

func (s *NaiveSampler) Sample(p Params, n int) ([]float64, error) {
	if n <= 0 {
		return nil, ErrInvalidPathCount
	}

	payoffs := make([]float64, n)
	if err := newTerminal(p).fill(payoffs, s.rng); err != nil {
		return nil, err
	}
	floats.Scale(p.Discount(), payoffs)
	return payoffs, nil
}
