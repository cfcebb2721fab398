package core_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"vypaar-saathi/internal/core"
)

// qrDataURL renders a tiny PNG and wraps it the way the QR upload form does.
func qrDataURL(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for x := 0; x < 40; x += 2 {
		for y := 0; y < 40; y++ {
			img.Set(x, y, color.Black)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestPaymentService_SaveConfigs(t *testing.T) {
	ctx := context.Background()
	svc := core.NewPaymentService(newTestDB(t))
	qr := qrDataURL(t)

	saved, err := svc.SaveConfigs(ctx, []core.UPIConfig{
		{CustomName: "My PhonePe", QRImage: qr},
	})
	if err != nil {
		t.Fatalf("SaveConfigs: %v", err)
	}
	if saved[0].ID == "" {
		t.Error("SaveConfigs should assign an ID")
	}
	if saved[0].AppName != "Other" {
		t.Errorf("app name = %q, want Other default", saved[0].AppName)
	}

	if _, err := svc.SaveConfigs(ctx, []core.UPIConfig{{CustomName: "", QRImage: qr}}); !errors.Is(err, core.ErrIncompleteSetup) {
		t.Errorf("missing name: got %v", err)
	}
	if _, err := svc.SaveConfigs(ctx, []core.UPIConfig{{CustomName: "X", QRImage: ""}}); !errors.Is(err, core.ErrIncompleteSetup) {
		t.Errorf("missing QR: got %v", err)
	}

	many := make([]core.UPIConfig, core.MaxUPIConfigs+1)
	for i := range many {
		many[i] = core.UPIConfig{CustomName: "X", QRImage: qr}
	}
	if _, err := svc.SaveConfigs(ctx, many); !errors.Is(err, core.ErrTooManyConfigs) {
		t.Errorf("over limit: got %v", err)
	}
}

func TestPaymentService_BuildReminder(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	payments := core.NewPaymentService(db)

	customers := []core.Customer{{
		ID: 1, Name: "Sunita", Phone: "+91 90000 00001",
		TotalCredit: dec(450),
	}}
	if err := db.SaveCustomers(ctx, customers); err != nil {
		t.Fatal(err)
	}

	t.Run("no config falls back to text-only", func(t *testing.T) {
		reminder, err := payments.BuildReminder(ctx, 1, "")
		if err != nil {
			t.Fatal(err)
		}
		if reminder.Tier != core.TierTextOnly {
			t.Errorf("tier = %s, want text-only", reminder.Tier)
		}
		if reminder.Image != nil {
			t.Error("text-only reminder should carry no image")
		}
		if !strings.Contains(reminder.Message, "Sunita") || !strings.Contains(reminder.Message, "₹450") {
			t.Errorf("message = %q", reminder.Message)
		}
		if !strings.HasPrefix(reminder.WhatsAppLink, "https://wa.me/+919000000001?text=") {
			t.Errorf("link = %q", reminder.WhatsAppLink)
		}
		if !strings.Contains(reminder.QRImageURL, "api.qrserver.com") {
			t.Errorf("text-only reminder should carry the hosted QR URL, got %q", reminder.QRImageURL)
		}
		if !strings.Contains(reminder.QRImageURL, "am%3D450") {
			t.Errorf("hosted QR URL should carry the amount: %q", reminder.QRImageURL)
		}
	})

	t.Run("valid QR composes the card", func(t *testing.T) {
		if _, err := payments.SaveConfigs(ctx, []core.UPIConfig{
			{CustomName: "Sharma Kirana", QRImage: qrDataURL(t)},
		}); err != nil {
			t.Fatal(err)
		}

		reminder, err := payments.BuildReminder(ctx, 1, "")
		if err != nil {
			t.Fatal(err)
		}
		if reminder.Tier != core.TierCard {
			t.Errorf("tier = %s, want card", reminder.Tier)
		}
		if len(reminder.Image) == 0 {
			t.Fatal("card tier should carry the composed PNG")
		}
		if _, err := png.Decode(bytes.NewReader(reminder.Image)); err != nil {
			t.Errorf("image is not a valid PNG: %v", err)
		}
		if !strings.Contains(reminder.Message, "Sharma Kirana") {
			t.Errorf("message should name the payee: %q", reminder.Message)
		}
		if reminder.QRImageURL != "" {
			t.Errorf("card tier should not carry the hosted QR URL, got %q", reminder.QRImageURL)
		}
	})

	t.Run("corrupt QR degrades to text-only", func(t *testing.T) {
		db := newTestDB(t)
		payments := core.NewPaymentService(db)
		if err := db.SaveCustomers(ctx, customers); err != nil {
			t.Fatal(err)
		}
		// Bypass SaveConfigs validation to store a broken image.
		if err := db.SaveUPIConfigs(ctx, []core.UPIConfig{
			{ID: "x", CustomName: "Broken", QRImage: "data:image/png;base64,!!!not-base64!!!", UPIID: "broken@upi"},
		}); err != nil {
			t.Fatal(err)
		}

		reminder, err := payments.BuildReminder(ctx, 1, "")
		if err != nil {
			t.Fatal(err)
		}
		if reminder.Tier != core.TierTextOnly {
			t.Errorf("tier = %s, want text-only", reminder.Tier)
		}
		if !strings.Contains(reminder.QRImageURL, "broken%40upi") {
			t.Errorf("hosted QR URL should use the config's UPI handle, got %q", reminder.QRImageURL)
		}
	})

	t.Run("unknown customer", func(t *testing.T) {
		if _, err := payments.BuildReminder(ctx, 999, ""); !errors.Is(err, core.ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})
}

func TestQRFallbackURL(t *testing.T) {
	u := core.QRFallbackURL("", "", "100")
	if !strings.Contains(u, "api.qrserver.com") {
		t.Errorf("url = %q", u)
	}
	if !strings.Contains(u, "kirana%40upi") {
		t.Errorf("default UPI handle missing: %q", u)
	}
}
