package web

import (
	"net/http"

	"vypaar-saathi/internal/app"
	"vypaar-saathi/internal/core"
)

// listOrders handles GET /api/orders.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListOrders(r.Context())
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, orders)
}

// importOrder handles POST /api/orders/import — parses pasted WhatsApp
// text into a pending order.
func (h *Handler) importOrder(w http.ResponseWriter, r *http.Request) {
	var req app.ImportOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.svc.ImportOrder(r.Context(), req)
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, order)
}

// acceptOrder handles POST /api/orders/{id}/accept.
func (h *Handler) acceptOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	order, err := h.svc.AcceptOrder(r.Context(), id)
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, order)
}

// rejectOrder handles POST /api/orders/{id}/reject.
func (h *Handler) rejectOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	order, err := h.svc.RejectOrder(r.Context(), id)
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, order)
}

// markOrderPaid handles POST /api/orders/{id}/pay.
func (h *Handler) markOrderPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req struct {
		Mode core.PaymentMode `json:"mode"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Mode == "" {
		req.Mode = core.PayCash
	}

	order, err := h.svc.MarkOrderPaid(r.Context(), id, req.Mode)
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, order)
}

// storeCatalog handles GET /api/store/catalog (public).
func (h *Handler) storeCatalog(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.StoreCatalog(r.Context())
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, products)
}

// storeCheckout handles POST /api/store/checkout (public) — composes the
// WhatsApp hand-off for a customer's cart.
func (h *Handler) storeCheckout(w http.ResponseWriter, r *http.Request) {
	var req app.CheckoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Checkout(r.Context(), req)
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// storeShare handles GET /api/store/share.
func (h *Handler) storeShare(w http.ResponseWriter, r *http.Request) {
	share, err := h.svc.StoreShareLink(r.Context())
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, share)
}
