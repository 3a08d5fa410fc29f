package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xhhuango/json"

	"github.com/bcdannyboy/eurostrat/report"
)

func post(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(NewPriceHandler(2))
	req := httptest.NewRequest(http.MethodPost, "/v1/price", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRouter(NewPriceHandler(1)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestPriceAnalytic(t *testing.T) {
	rec := post(t, `{"type":"call","spot":100,"strike":95,"rate":0.1,"maturity":0.25,"volatility":0.5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var snap report.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Model != "analytic" || snap.State != "computed" {
		t.Errorf("model %q state %q", snap.Model, snap.State)
	}
	if snap.Price == nil || !snap.Price.Equal(decimal.RequireFromString("13.695273")) {
		t.Errorf("price = %v", snap.Price)
	}
	if snap.Greeks == nil || snap.Intermediates == nil {
		t.Error("analytic response lacks greeks or intermediates")
	}
}

func TestPriceSimulation(t *testing.T) {
	rec := post(t, `{"type":"put","spot":100,"strike":95,"rate":0.1,"maturity":0.25,"volatility":0.5,
		"model":"monte-carlo","accelerated":true,"paths":20000,"seed":5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var snap report.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Simulation == nil || snap.Simulation.Paths != 20000 || !snap.Simulation.Accelerated {
		t.Errorf("simulation = %+v", snap.Simulation)
	}
	if snap.Greeks != nil {
		t.Error("simulation response carries greeks")
	}
}

func TestPriceErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed json", `{"type":`, http.StatusBadRequest},
		{"unknown type", `{"type":"swap","spot":100,"strike":100,"maturity":1,"volatility":0.2}`, http.StatusBadRequest},
		{"zero spot", `{"type":"call","spot":0,"strike":100,"maturity":1,"volatility":0.2}`, http.StatusBadRequest},
		{"unknown model", `{"type":"call","spot":100,"strike":100,"maturity":1,"volatility":0.2,"model":"pde"}`, http.StatusBadRequest},
		{"too many paths", `{"type":"call","spot":100,"strike":100,"maturity":1,"volatility":0.2,"model":"mc","paths":100000000}`, http.StatusBadRequest},
		{"lattice", `{"type":"call","spot":100,"strike":100,"maturity":1,"volatility":0.2,"model":"binomial"}`, http.StatusNotImplemented},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body)
			}
			if !strings.Contains(rec.Body.String(), `"error"`) {
				t.Errorf("body lacks error: %s", rec.Body)
			}
		})
	}
}

func TestPriceRejectsGet(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRouter(NewPriceHandler(1)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/price", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d", rec.Code)
	}
}
