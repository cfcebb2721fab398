package paycard_test

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"vypaar-saathi/internal/paycard"
)

func qrPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	for x := 0; x < 50; x += 3 {
		for y := 0; y < 50; y++ {
			img.Set(x, y, color.Black)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestCompose(t *testing.T) {
	out, err := paycard.Compose(paycard.Card{
		CustomerName: "Sunita",
		PayeeName:    "Sharma Kirana",
		Amount:       "450",
		QRImage:      qrPNG(t),
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 800 || b.Dy() != 1000 {
		t.Errorf("card size = %dx%d, want 800x1000", b.Dx(), b.Dy())
	}
}

func TestCompose_BadQR(t *testing.T) {
	if _, err := paycard.Compose(paycard.Card{QRImage: []byte("not an image")}); err == nil {
		t.Error("garbage QR bytes should fail to decode")
	}
}

func TestDecodeDataURL(t *testing.T) {
	raw := qrPNG(t)
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	got, err := paycard.DecodeDataURL(dataURL)
	if err != nil {
		t.Fatalf("DecodeDataURL: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Error("decoded bytes differ from the original")
	}

	if _, err := paycard.DecodeDataURL("no comma here"); err == nil {
		t.Error("missing comma should be rejected")
	}
	if _, err := paycard.DecodeDataURL("data:image/png;base64,!!!"); err == nil {
		t.Error("invalid base64 should be rejected")
	}
}
