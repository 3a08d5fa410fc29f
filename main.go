package main

import (
	"fmt"
	"log"
	"time"

	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"

	"github.com/bcdannyboy/eurostrat/config"
	"github.com/bcdannyboy/eurostrat/logger"
	"github.com/bcdannyboy/eurostrat/models"
	"github.com/bcdannyboy/eurostrat/positions"
	"github.com/bcdannyboy/eurostrat/probability"
	"github.com/bcdannyboy/eurostrat/report"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if err := logger.Init(cfg.Logging); err != nil {
		log.Fatalf("Error initializing logging: %v", err)
	}
	defer logger.Close()

	option, err := cfg.NewOption()
	if err != nil {
		log.Fatalf("Error building option: %v", err)
	}
	strategy, err := cfg.NewStrategy()
	if err != nil {
		log.Fatalf("Error building strategy: %v", err)
	}

	position := positions.New(option, strategy)

	start := time.Now()
	if _, err := position.Price(); err != nil {
		log.Fatalf("Error pricing option: %v", err)
	}
	elapsed := time.Since(start)
	fmt.Printf("Time elapsed %v\n", elapsed)

	snap := report.Build(position, report.DefaultPlaces).WithElapsed(elapsed)

	if mc, ok := strategy.(*models.MonteCarlo); ok && cfg.Pricing.Replicates > 0 {
		means, err := runReplicates(mc, option, cfg.Pricing.Paths, cfg.Pricing.Replicates)
		if err != nil {
			log.Fatalf("Error running replicates: %v", err)
		}
		snap = snap.WithReplicates(means, report.DefaultPlaces)
	}

	out, err := snap.JSON()
	if err != nil {
		log.Fatalf("Error marshalling state: %v", err)
	}
	fmt.Println(string(out))
}

// runReplicates re-prices the option n times on the strategy's sampler.
func runReplicates(mc *models.MonteCarlo, option models.Option, paths, n int) ([]float64, error) {
	done := logger.LogDuration("replicates finished", "count", n, "paths", paths)
	defer done()

	p := mpb.New(mpb.WithWidth(64))
	bar := p.AddBar(int64(n),
		mpb.PrependDecorators(
			decor.Name("Replicates"),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
		),
	)

	means, err := probability.Replicates(mc.Sampler(), models.SamplerParams(option), paths, n, func() {
		bar.Increment()
	})
	if err != nil {
		bar.Abort(false)
	}
	p.Wait()
	return means, err
}
