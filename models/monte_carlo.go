package models

import (
	"errors"
	"fmt"

	"github.com/bcdannyboy/eurostrat/logger"
	"github.com/bcdannyboy/eurostrat/probability"
)

// DefaultPaths is the number of draws per pricing call.
const DefaultPaths = 100_000

var ErrSimulationBackend = errors.New("simulation backend failed")

// SimulationBackendError reports a failure of the accelerated sampler,
// including an empty sample set. It matches both ErrSimulationBackend and
// the underlying cause under errors.Is.
type SimulationBackendError struct {
	Backend string
	Err     error
}

func (e *SimulationBackendError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrSimulationBackend, e.Backend, e.Err)
}

func (e *SimulationBackendError) Unwrap() []error {
	return []error{ErrSimulationBackend, e.Err}
}

// MonteCarlo estimates the option value as the mean of discounted payoffs of
// log-normal terminal prices, with their sample variance. It computes no
// Greeks.
type MonteCarlo struct {
	accelerated bool
	fallback    bool
	paths       int
	seed        uint64
	workers     int

	naive   probability.Sampler
	boosted probability.Sampler

	result     PricingResult
	fellBack   bool
	backendErr error
}

type MonteCarloOption func(*MonteCarlo)

// WithPaths sets the draws per pricing call.
func WithPaths(n int) MonteCarloOption {
	return func(mc *MonteCarlo) { mc.paths = n }
}

// WithSeed makes the default samplers reproducible. Zero keeps clock seeding.
func WithSeed(seed uint64) MonteCarloOption {
	return func(mc *MonteCarlo) { mc.seed = seed }
}

// WithWorkers sets the goroutine count of the default accelerated sampler.
func WithWorkers(n int) MonteCarloOption {
	return func(mc *MonteCarlo) { mc.workers = n }
}

func WithNaiveSampler(s probability.Sampler) MonteCarloOption {
	return func(mc *MonteCarlo) { mc.naive = s }
}

func WithAcceleratedSampler(s probability.Sampler) MonteCarloOption {
	return func(mc *MonteCarlo) { mc.boosted = s }
}

// WithFallback lets a failed accelerated run be redone on the naive sampler.
// Off by default; when it happens FellBack reports it.
func WithFallback(enabled bool) MonteCarloOption {
	return func(mc *MonteCarlo) { mc.fallback = enabled }
}

func NewMonteCarlo(accelerated bool, opts ...MonteCarloOption) *MonteCarlo {
	mc := &MonteCarlo{
		accelerated: accelerated,
		paths:       DefaultPaths,
	}
	for _, opt := range opts {
		opt(mc)
	}
	if mc.naive == nil {
		mc.naive = probability.NewNaiveSampler(mc.seed)
	}
	if mc.boosted == nil {
		mc.boosted = probability.NewParallelSampler(mc.workers, mc.seed)
	}
	return mc
}

func (mc *MonteCarlo) PriceOption(o Option) error {
	mc.result.begin()
	mc.fellBack = false
	mc.backendErr = nil

	p := paramsFor(o)
	log := logger.L().With("strategy", KindSimulation.String(), "type", o.Type().String(), "paths", mc.paths)

	var samples []float64
	var err error
	if mc.accelerated {
		log.Debug("sampling with accelerated backend")
		samples, err = mc.sampleAccelerated(p)
		if err != nil {
			mc.backendErr = err
			if !mc.fallback {
				log.Error("accelerated backend failed", "err", err)
				mc.result.reset()
				return err
			}
			log.Warn("accelerated backend failed, falling back to naive sampler", "err", err)
			mc.fellBack = true
			samples, err = mc.naive.Sample(p, mc.paths)
		}
	} else {
		log.Debug("sampling in process")
		samples, err = mc.naive.Sample(p, mc.paths)
	}
	if err != nil {
		mc.result.reset()
		return fmt.Errorf("naive sampler: %w", err)
	}

	mean, variance, err := probability.Reduce(samples)
	if err != nil {
		mc.result.reset()
		return fmt.Errorf("reduce samples: %w", err)
	}

	mc.result.value = Estimate{Mean: mean, Variance: variance, Samples: len(samples)}
	mc.result.commit()
	log.Debug("priced", "mean", mean, "variance", variance)
	return nil
}

func (mc *MonteCarlo) sampleAccelerated(p Params) ([]float64, error) {
	samples, err := mc.boosted.Sample(p, mc.paths)
	if err != nil {
		return nil, &SimulationBackendError{Backend: backendName(mc.boosted), Err: err}
	}
	if len(samples) == 0 {
		return nil, &SimulationBackendError{Backend: backendName(mc.boosted), Err: probability.ErrNoSamples}
	}
	return samples, nil
}

func (mc *MonteCarlo) Result() PricingResult { return mc.result }

func (mc *MonteCarlo) Reset() {
	mc.result.reset()
	mc.fellBack = false
	mc.backendErr = nil
}

func (mc *MonteCarlo) Kind() StrategyKind { return KindSimulation }

func (mc *MonteCarlo) isPricingStrategy() {}

func (mc *MonteCarlo) Accelerated() bool { return mc.accelerated }
func (mc *MonteCarlo) Paths() int        { return mc.paths }

// FellBack reports whether the last pricing call used the naive sampler
// after the accelerated one failed.
func (mc *MonteCarlo) FellBack() bool { return mc.fellBack }

// BackendErr is the accelerated failure of the last pricing call, if any.
func (mc *MonteCarlo) BackendErr() error { return mc.backendErr }

// Sampler returns the sampler selected by the accelerated flag.
func (mc *MonteCarlo) Sampler() probability.Sampler {
	if mc.accelerated {
		return mc.boosted
	}
	return mc.naive
}

// Params is an alias so callers need not import probability to build samples.
type Params = probability.Params

func paramsFor(o Option) Params {
	return Params{
		Sign:     o.Type().Sign(),
		Spot:     o.Spot(),
		Strike:   o.Strike(),
		Rate:     o.Rate(),
		Yield:    o.DividendYield(),
		Maturity: o.Maturity(),
		Vol:      o.Volatility(),
	}
}

// SamplerParams exposes the flattened sampler input for an option.
func SamplerParams(o Option) Params { return paramsFor(o) }

func backendName(s probability.Sampler) string {
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}
