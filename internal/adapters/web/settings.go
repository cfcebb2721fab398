package web

import (
	"net/http"

	"vypaar-saathi/internal/core"
)

// getSettings handles GET /api/settings.
func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetSettings(r.Context())
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, settings)
}

// updateSettings handles PUT /api/settings.
func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var in core.Settings
	if !decodeJSON(w, r, &in) {
		return
	}

	settings, err := h.svc.UpdateSettings(r.Context(), in)
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, settings)
}

// listUPIConfigs handles GET /api/payments/upi-configs.
func (h *Handler) listUPIConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := h.svc.ListUPIConfigs(r.Context())
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, configs)
}

// saveUPIConfigs handles PUT /api/payments/upi-configs — the client sends
// the full list, mirroring its local state.
func (h *Handler) saveUPIConfigs(w http.ResponseWriter, r *http.Request) {
	var configs []core.UPIConfig
	if !decodeJSON(w, r, &configs) {
		return
	}

	saved, err := h.svc.SaveUPIConfigs(r.Context(), configs)
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, saved)
}

// interpretVoice handles POST /api/voice/interpret.
func (h *Handler) interpretVoice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, h.svc.InterpretVoice(req.Text))
}
