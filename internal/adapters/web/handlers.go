package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vypaar-saathi/internal/app"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	// Health (public).
	r.Get("/api/health", h.health)

	// Auth (public).
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 16)) // 64 KB
		r.Post("/api/auth/otp/send", h.sendOTP)
		r.Post("/api/auth/otp/verify", h.verifyOTP)
		r.Post("/api/auth/logout", h.logout)
	})

	// Storefront (public: customers browse and check out without login).
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB
		r.Get("/api/store/catalog", h.storeCatalog)
		r.Post("/api/store/checkout", h.storeCheckout)
	})

	// Protected API routes (401 JSON when unauthenticated).
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)

		// QR uploads embed a data URL, so the payments endpoints get a
		// larger body allowance than everything else.
		r.Group(func(r chi.Router) {
			r.Use(RequestBodyLimit(10 << 20)) // 10 MB
			r.Get("/api/payments/upi-configs", h.listUPIConfigs)
			r.Put("/api/payments/upi-configs", h.saveUPIConfigs)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequestBodyLimit(1 << 20)) // 1 MB

			r.Get("/api/auth/me", h.me)

			r.Get("/api/dashboard", h.dashboard)

			r.Get("/api/inventory", h.listProducts)
			r.Post("/api/inventory", h.addProduct)
			r.Put("/api/inventory/{id}", h.updateProduct)
			r.Get("/api/inventory/low-stock", h.lowStock)

			r.Get("/api/orders", h.listOrders)
			r.Post("/api/orders/import", h.importOrder)
			r.Post("/api/orders/{id}/accept", h.acceptOrder)
			r.Post("/api/orders/{id}/reject", h.rejectOrder)
			r.Post("/api/orders/{id}/pay", h.markOrderPaid)

			r.Get("/api/expenses", h.listExpenses)
			r.Post("/api/expenses", h.addExpense)
			r.Get("/api/expenses/breakdown", h.expenseBreakdown)

			r.Get("/api/credits", h.listCustomers)
			r.Post("/api/credits", h.newCustomer)
			r.Get("/api/credits/{id}", h.getCustomer)
			r.Post("/api/credits/{id}/credit", h.addCredit)
			r.Post("/api/credits/{id}/settle", h.settleCredit)
			r.Post("/api/credits/{id}/reminder", h.paymentReminder)

			r.Get("/api/day-closing", h.dayClosing)
			r.Get("/api/reports", h.reports)
			r.Get("/api/insights", h.insights)

			r.Get("/api/settings", h.getSettings)
			r.Put("/api/settings", h.updateSettings)

			r.Get("/api/store/share", h.storeShare)
			r.Post("/api/voice/interpret", h.interpretVoice)
		})
	})

	h.router = r
	return r
}

// health returns service status and the shop name.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	shopName := ""
	if settings, err := h.svc.GetSettings(r.Context()); err == nil {
		shopName = settings.ShopName
	}

	type response struct {
		Status string `json:"status"`
		Shop   string `json:"shop"`
	}
	writeJSON(w, response{Status: "ok", Shop: shopName})
}
