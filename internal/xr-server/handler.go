package xrserver

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	service RateService
	log     *logrus.Entry
}

func NewHandler(service RateService, log *logrus.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.WithField("module", "xr_handler"),
	}
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.URL.Query().Get("access_key") == "" {
		w.WriteHeader(http.StatusOK)

		// the provider reports a missing key inside a 200 body
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":101,"type":"missing_access_key"}}`))

		return
	}

	snapshot := h.service.GetSnapshot()

	w.WriteHeader(http.StatusOK)

	err := json.NewEncoder(w).Encode(snapshot)
	if err != nil {
		h.log.Warningf("json.NewEncoder.Encode: %s", err)
	}
}
