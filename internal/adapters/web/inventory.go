package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vypaar-saathi/internal/core"
)

// idParam extracts the {id} URL parameter as an int64. Writes a 400 and
// returns false when it is not a number.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, "invalid id", "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// listProducts handles GET /api/inventory.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, products)
}

// addProduct handles POST /api/inventory.
func (h *Handler) addProduct(w http.ResponseWriter, r *http.Request) {
	var p core.Product
	if !decodeJSON(w, r, &p) {
		return
	}

	created, err := h.svc.AddProduct(r.Context(), p)
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, created)
}

// updateProduct handles PUT /api/inventory/{id}.
func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var p core.Product
	if !decodeJSON(w, r, &p) {
		return
	}
	p.ID = id

	updated, err := h.svc.UpdateProduct(r.Context(), p)
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, updated)
}

// lowStock handles GET /api/inventory/low-stock.
func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.LowStock(r.Context())
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, products)
}
