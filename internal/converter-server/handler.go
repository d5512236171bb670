package converterserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	converterservice "github.com/AlexZav1327/converter/internal/converter-service"
	"github.com/AlexZav1327/converter/internal/exchange"
	"github.com/AlexZav1327/converter/internal/rates"
	"github.com/AlexZav1327/converter/models"
	"github.com/sirupsen/logrus"
)

const (
	msgMissingParams    = "Missing query parameters: 'from', 'to', 'amount'"
	msgInvalidAmount    = "Invalid amount value"
	msgInvalidCurrency  = "Invalid currency codes"
	msgRatesUnavailable = "Failed to fetch exchange rates"
	msgDashboardFailed  = "Failed to load analytics"
)

type Handler struct {
	service   ConverterService
	dashboard DashboardRenderer
	log       *logrus.Entry
	metrics   *metrics
}

type ConverterService interface {
	Convert(ctx context.Context, from, to, amount, clientAgent string) (float64, error)
}

type DashboardRenderer interface {
	Render(ctx context.Context) ([]byte, error)
}

func NewHandler(service ConverterService, dashboard DashboardRenderer, log *logrus.Logger) *Handler {
	return &Handler{
		service:   service,
		dashboard: dashboard,
		log:       log.WithField("module", "handler"),
		metrics:   newMetrics(),
	}
}

// convert serves GET and POST identically: FormValue reads the query string
// and, on POST, the urlencoded body.
func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	from := r.FormValue("from")
	to := r.FormValue("to")
	amount := r.FormValue("amount")

	convertedAmount, err := h.service.Convert(r.Context(), from, to, amount, r.UserAgent())
	if errors.Is(err, converterservice.ErrMissingParams) {
		h.writeError(w, http.StatusBadRequest, msgMissingParams)

		return
	}

	if errors.Is(err, converterservice.ErrInvalidAmount) {
		h.writeError(w, http.StatusBadRequest, msgInvalidAmount)

		return
	}

	if errors.Is(err, converterservice.ErrUnknownCurrency) || errors.Is(err, exchange.ErrZeroBaseRate) {
		h.writeError(w, http.StatusBadRequest, msgInvalidCurrency)

		return
	}

	if errors.Is(err, rates.ErrRatesUnavailable) {
		h.writeError(w, http.StatusInternalServerError, msgRatesUnavailable)

		return
	}

	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())

		return
	}

	w.WriteHeader(http.StatusOK)

	err = json.NewEncoder(w).Encode(models.ConversionResponse{ConvertedAmount: convertedAmount})
	if err != nil {
		h.log.Warningf("json.NewEncoder.Encode: %s", err)
	}
}

// getDashboard renders the page fully before touching the response: a store
// failure answers with a clean JSON 500, while a failed write to the client
// is only logged since the status line is already on the wire.
func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	page, err := h.dashboard.Render(r.Context())
	if err != nil {
		h.log.Warningf("dashboard.Render: %s", err)

		w.Header().Set("Content-Type", "application/json")
		h.writeError(w, http.StatusInternalServerError, msgDashboardFailed)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(page)
	if err != nil {
		h.log.Warningf("w.Write: %s", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, code int, message string) {
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(models.ErrorResponse{Error: message})
	if err != nil {
		h.log.Warningf("json.NewEncoder.Encode: %s", err)
	}
}
