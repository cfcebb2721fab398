package web_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vypaar-saathi/internal/adapters/web"
	"vypaar-saathi/internal/ai"
	"vypaar-saathi/internal/app"
	"vypaar-saathi/internal/auth"
	"vypaar-saathi/internal/core"
	"vypaar-saathi/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db := core.NewDB(store.NewMemoryStore())
	if err := db.Seed(t.Context(), time.Now()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := app.NewApplicationService(db, ai.NewAgent("", ""), "http://store.test")
	handler := web.NewHandler(svc, "", "test-secret")
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func getWithCookie(t *testing.T, url string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// login walks the OTP flow and returns the session cookie.
func login(t *testing.T, srv *httptest.Server) *http.Cookie {
	t.Helper()

	resp := postJSON(t, srv.URL+"/api/auth/otp/send", map[string]string{"phone": "+91 98765 43210"}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("otp send: status %d", resp.StatusCode)
	}
	var sent struct {
		SessionID string `json:"sessionId"`
	}
	decodeBody(t, resp, &sent)

	resp = postJSON(t, srv.URL+"/api/auth/otp/verify", map[string]string{
		"sessionId": sent.SessionID,
		"otp":       auth.AcceptedOTP,
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("otp verify: status %d", resp.StatusCode)
	}
	defer resp.Body.Close()

	for _, c := range resp.Cookies() {
		if c.Name == "auth_token" && c.Value != "" {
			return c
		}
	}
	t.Fatal("no auth_token cookie issued")
	return nil
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatal(err)
	}
	var body struct {
		Status string `json:"status"`
		Shop   string `json:"shop"`
	}
	decodeBody(t, resp, &body)
	if body.Status != "ok" {
		t.Errorf("status = %q", body.Status)
	}
	if body.Shop != "My Kirana Shop" {
		t.Errorf("shop = %q, want seeded default", body.Shop)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/dashboard", "/api/inventory", "/api/orders", "/api/settings"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s without cookie: status %d, want 401", path, resp.StatusCode)
		}
	}
}

func TestOTPLoginFlow(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv)

	resp := getWithCookie(t, srv.URL+"/api/auth/me", cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me: status %d", resp.StatusCode)
	}
	var me struct {
		Phone string `json:"phone"`
	}
	decodeBody(t, resp, &me)
	if me.Phone != "+91 98765 43210" {
		t.Errorf("phone = %q", me.Phone)
	}
}

func TestOTPRejectsWrongCode(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/auth/otp/send", map[string]string{"phone": "9876543210"}, nil)
	var sent struct {
		SessionID string `json:"sessionId"`
	}
	decodeBody(t, resp, &sent)

	resp = postJSON(t, srv.URL+"/api/auth/otp/verify", map[string]string{
		"sessionId": sent.SessionID,
		"otp":       "999999",
	}, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong otp: status %d, want 401", resp.StatusCode)
	}
}

func TestInventoryEndpoints(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv)

	resp := getWithCookie(t, srv.URL+"/api/inventory", cookie)
	var products []core.Product
	decodeBody(t, resp, &products)
	if len(products) == 0 {
		t.Fatal("seeded inventory is empty")
	}

	resp = postJSON(t, srv.URL+"/api/inventory", map[string]any{
		"name":         "Sugar (1kg)",
		"category":     "Groceries",
		"quantity":     "30",
		"minStock":     "10",
		"sellingPrice": "45",
	}, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add product: status %d", resp.StatusCode)
	}
	var added core.Product
	decodeBody(t, resp, &added)
	if added.ID == 0 {
		t.Error("added product has no ID")
	}

	resp = postJSON(t, srv.URL+"/api/inventory", map[string]any{"name": ""}, cookie)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("blank product name: status %d, want 400", resp.StatusCode)
	}
}

func TestOrderImportAndLifecycle(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv)

	resp := postJSON(t, srv.URL+"/api/orders/import", app.ImportOrderRequest{
		CustomerName: "Ravi",
		Text:         "3 Milk\n2 Bread",
	}, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("import: status %d", resp.StatusCode)
	}
	var order core.Order
	decodeBody(t, resp, &order)
	if order.Total.String() != "135" {
		t.Errorf("total = %s, want 135", order.Total)
	}

	resp = postJSON(t, fmt.Sprintf("%s/api/orders/%d/accept", srv.URL, order.ID), nil, cookie)
	var accepted core.Order
	decodeBody(t, resp, &accepted)
	if accepted.Status != core.OrderAccepted {
		t.Errorf("status = %s", accepted.Status)
	}

	resp = postJSON(t, fmt.Sprintf("%s/api/orders/%d/pay", srv.URL, order.ID), map[string]string{"mode": "upi"}, cookie)
	var paid core.Order
	decodeBody(t, resp, &paid)
	if paid.PaymentMode != core.PayUPI {
		t.Errorf("mode = %s", paid.PaymentMode)
	}

	resp = postJSON(t, srv.URL+"/api/orders/99999/accept", nil, cookie)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown order: status %d, want 404", resp.StatusCode)
	}
}

func TestStorefrontIsPublic(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/store/catalog")
	if err != nil {
		t.Fatal(err)
	}
	var products []core.Product
	decodeBody(t, resp, &products)
	if len(products) == 0 {
		t.Fatal("storefront catalog is empty")
	}

	resp = postJSON(t, srv.URL+"/api/store/checkout", app.CheckoutRequest{
		CustomerName: "Priya",
		Lines:        []core.CartLine{{ProductID: products[0].ID, Quantity: 2}},
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("checkout: status %d", resp.StatusCode)
	}
	var result core.CheckoutResult
	decodeBody(t, resp, &result)
	if result.WhatsAppLink == "" {
		t.Error("checkout returned no WhatsApp link")
	}
}

func TestCreditEndpoints(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv)

	resp := postJSON(t, srv.URL+"/api/credits", app.NewCustomerRequest{Name: "Sunita", Phone: "9876543210"}, cookie)
	var customer core.Customer
	decodeBody(t, resp, &customer)

	resp = postJSON(t, fmt.Sprintf("%s/api/credits/%d/credit", srv.URL, customer.ID), map[string]string{
		"amount":      "500",
		"description": "Groceries",
	}, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add credit: status %d", resp.StatusCode)
	}
	decodeBody(t, resp, &customer)
	if customer.TotalCredit.String() != "500" {
		t.Errorf("balance = %s", customer.TotalCredit)
	}

	resp = postJSON(t, fmt.Sprintf("%s/api/credits/%d/settle", srv.URL, customer.ID), map[string]string{
		"amount": "600",
		"mode":   "cash",
	}, cookie)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("overpay: status %d, want 400", resp.StatusCode)
	}

	// No QR configured, so the reminder degrades to the link-only tier.
	resp = postJSON(t, fmt.Sprintf("%s/api/credits/%d/reminder", srv.URL, customer.ID), app.ReminderRequest{}, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reminder: status %d", resp.StatusCode)
	}
	var reminder struct {
		Tier         core.ReminderTier `json:"tier"`
		WhatsAppLink string            `json:"whatsappLink"`
		Image        string            `json:"image"`
		QRImageURL   string            `json:"qrImageUrl"`
	}
	decodeBody(t, resp, &reminder)
	if reminder.Tier != core.TierTextOnly {
		t.Errorf("tier = %s", reminder.Tier)
	}
	if reminder.WhatsAppLink == "" || reminder.Image != "" {
		t.Errorf("reminder = %+v", reminder)
	}
	if !strings.Contains(reminder.QRImageURL, "api.qrserver.com") {
		t.Errorf("link-only reminder should carry a hosted QR URL, got %q", reminder.QRImageURL)
	}
}

// A QR upload the card renderer cannot decode is passed through as-is, and
// the data URL must carry the upload's own MIME type.
func TestReminderRawQRKeepsMIME(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv)

	resp := postJSON(t, srv.URL+"/api/credits", app.NewCustomerRequest{Name: "Ravi", Phone: "9876500001"}, cookie)
	var customer core.Customer
	decodeBody(t, resp, &customer)

	// 1x1 GIF. Decodable as a data URL but not by the card renderer.
	gif := []byte{
		0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00,
		0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0x21, 0xf9, 0x04, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
		0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
	}
	configs, err := json.Marshal([]core.UPIConfig{{
		CustomName: "Gupta Kirana",
		QRImage:    "data:image/gif;base64," + base64.StdEncoding.EncodeToString(gif),
	}})
	if err != nil {
		t.Fatal(err)
	}
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/payments/upi-configs", bytes.NewReader(configs))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	saveResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	saveResp.Body.Close()
	if saveResp.StatusCode != http.StatusOK {
		t.Fatalf("save configs: status %d", saveResp.StatusCode)
	}

	resp = postJSON(t, fmt.Sprintf("%s/api/credits/%d/reminder", srv.URL, customer.ID), app.ReminderRequest{}, cookie)
	var reminder struct {
		Tier  core.ReminderTier `json:"tier"`
		Image string            `json:"image"`
	}
	decodeBody(t, resp, &reminder)
	if reminder.Tier != core.TierRawQR {
		t.Errorf("tier = %s, want raw-qr", reminder.Tier)
	}
	if !strings.HasPrefix(reminder.Image, "data:image/gif;base64,") {
		t.Errorf("image data URL should keep the GIF MIME, got prefix %.40q", reminder.Image)
	}
}

func TestInsightsFallsBackWithoutKey(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv)

	resp := getWithCookie(t, srv.URL+"/api/insights", cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("insights: status %d", resp.StatusCode)
	}
	var result app.InsightsResult
	decodeBody(t, resp, &result)
	if result.Source != "fallback" {
		t.Errorf("source = %q, want fallback without an API key", result.Source)
	}
	if result.Analysis == nil || len(result.Analysis.Insights) == 0 {
		t.Error("fallback analysis is empty")
	}
}

func TestUPIConfigValidation(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/payments/upi-configs",
		bytes.NewReader([]byte(`[{"customName":"","qrImage":""}]`)))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("incomplete config: status %d, want 400", resp.StatusCode)
	}
}

func TestVoiceInterpret(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv)

	resp := postJSON(t, srv.URL+"/api/voice/interpret", map[string]string{"text": "show udhaar"}, cookie)
	var cmd core.VoiceCommand
	decodeBody(t, resp, &cmd)
	if cmd.Action != core.VoiceNavigate || cmd.Screen != "credits" {
		t.Errorf("command = %+v", cmd)
	}
}
