package web

import (
	"encoding/base64"
	"net/http"

	"vypaar-saathi/internal/app"
	"vypaar-saathi/internal/core"
)

// listCustomers handles GET /api/credits.
func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.ListCustomers(r.Context())
	if err != nil {
		writeCoreError(w, r, err)
		return
	}

	total, err := h.svc.TotalDue(r.Context())
	if err != nil {
		writeCoreError(w, r, err)
		return
	}

	type response struct {
		Customers []core.Customer `json:"customers"`
		TotalDue  string          `json:"totalDue"`
	}
	writeJSON(w, response{Customers: customers, TotalDue: total.String()})
}

// getCustomer handles GET /api/credits/{id}.
func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	customer, err := h.svc.GetCustomer(r.Context(), id)
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, customer)
}

// newCustomer handles POST /api/credits.
func (h *Handler) newCustomer(w http.ResponseWriter, r *http.Request) {
	var req app.NewCustomerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	customer, err := h.svc.NewCustomer(r.Context(), req)
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, customer)
}

// addCredit handles POST /api/credits/{id}/credit.
func (h *Handler) addCredit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req app.AddCreditRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.CustomerID = id

	customer, err := h.svc.AddCredit(r.Context(), req)
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, customer)
}

// settleCredit handles POST /api/credits/{id}/settle.
func (h *Handler) settleCredit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req app.SettleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.CustomerID = id

	customer, err := h.svc.SettleCredit(r.Context(), req)
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, customer)
}

// paymentReminder handles POST /api/credits/{id}/reminder. The card image,
// when present, is returned base64-encoded for the client to download.
func (h *Handler) paymentReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req app.ReminderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.CustomerID = id

	reminder, err := h.svc.PaymentReminder(r.Context(), req)
	if err != nil {
		writeCoreError(w, r, err)
		return
	}

	type response struct {
		Message      string            `json:"message"`
		WhatsAppLink string            `json:"whatsappLink"`
		Tier         core.ReminderTier `json:"tier"`
		Image        string            `json:"image,omitempty"`
		QRImageURL   string            `json:"qrImageUrl,omitempty"`
	}
	resp := response{
		Message:      reminder.Message,
		WhatsAppLink: reminder.WhatsAppLink,
		Tier:         reminder.Tier,
		QRImageURL:   reminder.QRImageURL,
	}
	if len(reminder.Image) > 0 {
		// Raw-QR tier passes the upload through unchanged, which may be a
		// JPEG, so the MIME is sniffed rather than assumed.
		mime := http.DetectContentType(reminder.Image)
		resp.Image = "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(reminder.Image)
	}
	writeJSON(w, resp)
}
