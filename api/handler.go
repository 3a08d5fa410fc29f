// Package api serves option pricing over HTTP.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/xhhuango/json"

	"github.com/bcdannyboy/eurostrat/logger"
	"github.com/bcdannyboy/eurostrat/models"
	"github.com/bcdannyboy/eurostrat/positions"
	"github.com/bcdannyboy/eurostrat/report"
)

// MaxPaths bounds the draws one request may ask for.
const MaxPaths = 10_000_000

// PriceRequest is the body of POST /v1/price. Model defaults to analytic.
type PriceRequest struct {
	Type          string  `json:"type"`
	Spot          float64 `json:"spot"`
	Strike        float64 `json:"strike"`
	Rate          float64 `json:"rate"`
	DividendYield float64 `json:"dividend_yield"`
	Maturity      float64 `json:"maturity"`
	Volatility    float64 `json:"volatility"`
	Model         string  `json:"model"`
	Accelerated   bool    `json:"accelerated"`
	Paths         int     `json:"paths"`
	Seed          uint64  `json:"seed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// PriceHandler prices one option per request with a fresh strategy.
type PriceHandler struct {
	workers int
	places  int32
}

func NewPriceHandler(workers int) *PriceHandler {
	return &PriceHandler{workers: workers, places: report.DefaultPlaces}
}

// NewRouter wires the pricing and health endpoints.
func NewRouter(h *PriceHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", HealthHandler).Methods("GET")
	r.HandleFunc("/v1/price", h.PriceOptionHandler).Methods("POST")
	return r
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *PriceHandler) PriceOptionHandler(w http.ResponseWriter, r *http.Request) {
	var req PriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	option, strategy, err := h.build(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	position := positions.New(option, strategy)
	start := time.Now()
	if _, err := position.Price(); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	elapsed := time.Since(start)

	logger.L().Info("priced option", "model", strategy.Kind().String(), "type", option.Type().String(), "elapsed", elapsed)
	writeJSON(w, http.StatusOK, report.Build(position, h.places).WithElapsed(elapsed))
}

func (h *PriceHandler) build(req PriceRequest) (models.Option, models.PricingStrategy, error) {
	optType, err := models.ParseOptionType(req.Type)
	if err != nil {
		return models.Option{}, nil, err
	}
	option, err := models.NewOption(optType, req.Spot, req.Strike, req.Rate, req.DividendYield, req.Maturity, req.Volatility)
	if err != nil {
		return models.Option{}, nil, err
	}

	model := req.Model
	if model == "" {
		model = models.KindAnalytic.String()
	}
	kind, err := models.ParseStrategyKind(model)
	if err != nil {
		return models.Option{}, nil, err
	}

	paths := req.Paths
	if paths == 0 {
		paths = models.DefaultPaths
	}
	if paths < 0 || paths > MaxPaths {
		return models.Option{}, nil, fmt.Errorf("paths must be in [1, %d], got %d", MaxPaths, paths)
	}

	strategy, err := models.NewStrategy(kind, req.Accelerated,
		models.WithPaths(paths),
		models.WithSeed(req.Seed),
		models.WithWorkers(h.workers),
	)
	if err != nil {
		return models.Option{}, nil, err
	}
	return option, strategy, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotImplemented):
		return http.StatusNotImplemented
	case errors.Is(err, models.ErrSimulationBackend):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.L().Error("pricing request failed", "status", status, "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Error("encode response", "err", err)
	}
}
