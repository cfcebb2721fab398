// Package paycard renders the shareable "payment card" PNG: a receipt-like
// image carrying the recipient's name, the amount due, and the shop's UPI
// QR code. It replaces the browser canvas drawing of the original flow.
package paycard

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	_ "image/jpeg" // QR uploads may be JPEG

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	cardWidth    = 800
	cardHeight   = 1000
	headerHeight = 150
	qrSize       = 400
)

var (
	headerTop    = color.RGBA{R: 0x7c, G: 0x3a, B: 0xed, A: 0xff}
	headerBottom = color.RGBA{R: 0x6d, G: 0x28, B: 0xd9, A: 0xff}
	amountRed    = color.RGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff}
	grayMid      = color.RGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
	grayDark     = color.RGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xff}
	grayLight    = color.RGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}
)

// Card describes one payment request to render.
type Card struct {
	CustomerName string
	PayeeName    string
	Amount       string // already formatted, without currency symbol
	QRImage      []byte // PNG or JPEG bytes
}

// Compose draws the payment card and returns it PNG-encoded.
func Compose(card Card) ([]byte, error) {
	qr, _, err := image.Decode(bytes.NewReader(card.QRImage))
	if err != nil {
		return nil, fmt.Errorf("failed to decode QR image: %w", err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, cardWidth, cardHeight))

	// White background.
	fillRect(canvas, image.Rect(0, headerHeight, cardWidth, cardHeight), color.White)

	// Header band with a vertical gradient.
	for y := 0; y < headerHeight; y++ {
		fillRect(canvas, image.Rect(0, y, cardWidth, y+1), lerpColor(headerTop, headerBottom, float64(y)/headerHeight))
	}

	drawTextCentered(canvas, "Payment Request", 90, color.White, 4)
	drawTextCentered(canvas, "Hello "+card.CustomerName, 220, color.Black, 3)
	drawTextCentered(canvas, "Total Pending Amount", 270, grayMid, 2)
	drawTextCentered(canvas, "Rs "+card.Amount, 380, amountRed, 7)

	// QR code centered below the amount.
	qrRect := image.Rect((cardWidth-qrSize)/2, 420, (cardWidth+qrSize)/2, 420+qrSize)
	xdraw.ApproxBiLinear.Scale(canvas, qrRect, qr, qr.Bounds(), xdraw.Over, nil)

	drawTextCentered(canvas, "Pay to: "+card.PayeeName, 880, grayDark, 3)
	drawTextCentered(canvas, "Generated via Vypaar Saathi", 950, grayLight, 2)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode payment card: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeDataURL extracts the raw image bytes from a base64 data URL as
// uploaded during payment setup.
func DecodeDataURL(dataURL string) ([]byte, error) {
	_, payload, ok := strings.Cut(dataURL, ",")
	if !ok {
		return nil, fmt.Errorf("not a data URL")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URL payload: %w", err)
	}
	return data, nil
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.Set(x, y, c)
		}
	}
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 0xff}
}

// drawTextCentered renders s horizontally centered at baseline y. The basic
// bitmap face is scaled up by drawing onto a small image first; crude next
// to real typography, but the card only needs short labels.
func drawTextCentered(dst *image.RGBA, s string, y int, c color.Color, scale int) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, s).Ceil()
	h := face.Metrics().Height.Ceil()

	small := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)

	scaled := image.Rect(
		(cardWidth-w*scale)/2, y-h*scale/2,
		(cardWidth+w*scale)/2, y+h*scale/2,
	)
	xdraw.NearestNeighbor.Scale(dst, scaled, small, small.Bounds(), xdraw.Over, nil)
}
