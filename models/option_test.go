package models

import (
	"errors"
	"math"
	"testing"
)

func TestNewOptionValidation(t *testing.T) {
	tests := []struct {
		name                 string
		typ                  OptionType
		S, K, r, q, T, sigma float64
		field                string
	}{
		{"zero spot", Call, 0, 100, 0.01, 0, 1, 0.2, "spot"},
		{"negative strike", Put, 100, -5, 0.01, 0, 1, 0.2, "strike"},
		{"zero maturity", Call, 100, 100, 0.01, 0, 0, 0.2, "maturity"},
		{"negative volatility", Call, 100, 100, 0.01, 0, 1, -0.2, "volatility"},
		{"nan volatility", Call, 100, 100, 0.01, 0, 1, math.NaN(), "volatility"},
		{"infinite spot", Call, math.Inf(1), 100, 0.01, 0, 1, 0.2, "spot"},
		{"nan rate", Call, 100, 100, math.NaN(), 0, 1, 0.2, "rate"},
		{"infinite yield", Put, 100, 100, 0.01, math.Inf(-1), 1, 0.2, "dividend_yield"},
		{"unknown type", OptionType(3), 100, 100, 0.01, 0, 1, 0.2, "type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOption(tt.typ, tt.S, tt.K, tt.r, tt.q, tt.T, tt.sigma)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("err = %v, want ErrInvalidParameter", err)
			}
			var perr *InvalidParameterError
			if !errors.As(err, &perr) || perr.Field != tt.field {
				t.Errorf("err = %v, want field %q", err, tt.field)
			}
		})
	}
}

func TestNewOptionAcceptsNegativeRates(t *testing.T) {
	o, err := NewOption(Put, 100, 100, -0.01, -0.02, 1, 0.2)
	if err != nil {
		t.Fatalf("NewOption: %v", err)
	}
	if o.Rate() != -0.01 || o.DividendYield() != -0.02 {
		t.Errorf("rates not kept: %s", o)
	}
}

func TestMustOptionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustOption did not panic on zero spot")
		}
	}()
	MustOption(Call, 0, 100, 0, 0, 1, 0.2)
}

func TestParseOptionType(t *testing.T) {
	for in, want := range map[string]OptionType{"call": Call, "C": Call, " Put ": Put, "p": Put} {
		got, err := ParseOptionType(in)
		if err != nil || got != want {
			t.Errorf("ParseOptionType(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseOptionType("straddle"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("ParseOptionType(straddle) err = %v", err)
	}
	if Call.Sign() != 1 || Put.Sign() != -1 {
		t.Errorf("signs = %v, %v", Call.Sign(), Put.Sign())
	}
}

func TestNewStrategyDispatch(t *testing.T) {
	tests := []struct {
		model string
		kind  StrategyKind
	}{
		{"analytic", KindAnalytic},
		{"BSM", KindAnalytic},
		{"monte-carlo", KindSimulation},
		{"simulation", KindSimulation},
		{"binomial", KindLattice},
	}
	for _, tt := range tests {
		kind, err := ParseStrategyKind(tt.model)
		if err != nil {
			t.Fatalf("ParseStrategyKind(%q): %v", tt.model, err)
		}
		s, err := NewStrategy(kind, true)
		if err != nil {
			t.Fatalf("NewStrategy(%s): %v", kind, err)
		}
		if s.Kind() != tt.kind {
			t.Errorf("%q built %s, want %s", tt.model, s.Kind(), tt.kind)
		}
		if s.Result().State() != Unset {
			t.Errorf("%q: fresh strategy state %s", tt.model, s.Result().State())
		}
	}

	if _, err := ParseStrategyKind("trinomial"); err == nil {
		t.Error("ParseStrategyKind(trinomial) succeeded")
	}
	if _, err := NewStrategy(StrategyKind(9), false); err == nil {
		t.Error("NewStrategy with unknown kind succeeded")
	}
}

func TestBinomialTreeNotImplemented(t *testing.T) {
	bt := NewBinomialTree()
	err := bt.PriceOption(MustOption(Call, 100, 100, 0.01, 0, 1, 0.2))
	if !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("err = %v, want ErrNotImplemented", err)
	}
	if _, ok := bt.Result().Value(); ok {
		t.Error("lattice left a computed value")
	}
	if bt.Result().State() != Unset {
		t.Errorf("state = %s, want unset", bt.Result().State())
	}
}
