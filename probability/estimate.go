package probability

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Reduce returns the sample mean and the unbiased sample variance of the
// draws. A single draw has variance 0.
func Reduce(samples []float64) (mean, variance float64, err error) {
	switch len(samples) {
	case 0:
		return 0, 0, ErrNoSamples
	case 1:
		return samples[0], 0, nil
	}
	mean, variance = stat.MeanVariance(samples, nil)
	return mean, variance, nil
}

// Replicates prices the contract n independent times with paths draws each
// and returns the n discounted means. onDone, if set, runs after each
// replicate.
func Replicates(s Sampler, p Params, paths, n int, onDone func()) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("replicates: %w", ErrInvalidPathCount)
	}

	means := make([]float64, n)
	for i := range means {
		samples, err := s.Sample(p, paths)
		if err != nil {
			return nil, fmt.Errorf("replicate %d: %w", i, err)
		}
		mean, _, err := Reduce(samples)
		if err != nil {
			return nil, fmt.Errorf("replicate %d: %w", i, err)
		}
		means[i] = mean
		if onDone != nil {
			onDone()
		}
	}
	return means, nil
}
