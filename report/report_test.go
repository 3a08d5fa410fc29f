package report

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bcdannyboy/eurostrat/models"
	"github.com/bcdannyboy/eurostrat/positions"
)

var atmCall = models.MustOption(models.Call, 100, 100, 0.01, 0, 0.5, 0.35)

func TestBuildUnpriced(t *testing.T) {
	snap := Build(positions.New(atmCall, models.NewBlackScholesMerton()), DefaultPlaces)
	if snap.State != "unset" || snap.Price != nil || snap.Greeks != nil {
		t.Errorf("unpriced snapshot = %+v", snap)
	}
	if snap.Option.Type != "call" || snap.Option.Volatility != 0.35 {
		t.Errorf("option view = %+v", snap.Option)
	}
}

func TestBuildAnalytic(t *testing.T) {
	e := positions.New(atmCall, models.NewBlackScholesMerton())
	if _, err := e.Price(); err != nil {
		t.Fatal(err)
	}
	snap := Build(e, 4).WithElapsed(1500 * time.Microsecond)

	if snap.Price == nil || !snap.Price.Equal(decimal.RequireFromString("10.075")) {
		t.Errorf("price = %v", snap.Price)
	}
	if snap.Greeks == nil || !snap.Greeks.Delta.Equal(decimal.RequireFromString("0.5572")) {
		t.Errorf("greeks = %+v", snap.Greeks)
	}
	if snap.Intermediates == nil || snap.Simulation != nil {
		t.Error("analytic snapshot has wrong detail sections")
	}
	if snap.ElapsedMs != 1.5 {
		t.Errorf("elapsed = %v", snap.ElapsedMs)
	}

	out, err := snap.JSON()
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"price"`, `"delta"`, `"d1"`, `"elapsed_ms"`} {
		if !strings.Contains(string(out), key) {
			t.Errorf("json lacks %s:\n%s", key, out)
		}
	}
}

func TestBuildSimulation(t *testing.T) {
	e := positions.New(atmCall, models.NewMonteCarlo(false, models.WithPaths(5000), models.WithSeed(3)))
	if _, err := e.Price(); err != nil {
		t.Fatal(err)
	}
	snap := Build(e, DefaultPlaces)
	if snap.Simulation == nil {
		t.Fatal("no simulation section")
	}
	if snap.Simulation.Paths != 5000 || snap.Simulation.Accelerated || snap.Simulation.FellBack {
		t.Errorf("simulation = %+v", snap.Simulation)
	}
	if !snap.Simulation.StdErr.IsPositive() {
		t.Errorf("stderr = %v", snap.Simulation.StdErr)
	}
	if snap.Greeks != nil || snap.Intermediates != nil {
		t.Error("simulation snapshot carries analytic detail")
	}
}

func TestWithReplicates(t *testing.T) {
	var snap Snapshot
	if got := snap.WithReplicates(nil, 2); got.Replicates != nil {
		t.Error("empty replicates attached")
	}

	one := snap.WithReplicates([]float64{10.5}, 2)
	if one.Replicates.Count != 1 || !one.Replicates.StdDev.IsZero() {
		t.Errorf("single replicate = %+v", one.Replicates)
	}

	many := snap.WithReplicates([]float64{1, 2, 3}, 4)
	if !many.Replicates.Mean.Equal(decimal.NewFromInt(2)) || !many.Replicates.StdDev.Equal(decimal.NewFromInt(1)) {
		t.Errorf("replicates = %+v", many.Replicates)
	}
}

func TestRoundSanitizes(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if !round(v, 2).IsZero() {
			t.Errorf("round(%v) = %v, want 0", v, round(v, 2))
		}
	}
	if got := round(1.23456, 2); !got.Equal(decimal.RequireFromString("1.23")) {
		t.Errorf("round = %v", got)
	}
}
