package core

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"vypaar-saathi/internal/paycard"
	"vypaar-saathi/internal/whatsapp"
)

// ReminderTier names which fallback produced the share bundle.
type ReminderTier string

const (
	TierCard     ReminderTier = "card"      // composited payment card PNG
	TierRawQR    ReminderTier = "raw-qr"    // uploaded QR image as-is
	TierTextOnly ReminderTier = "text-only" // deep link with no image
)

// PaymentReminder is everything a client needs to deliver a payment
// request: the message, the wa.me link carrying it, and (tier permitting)
// an image to attach. The final text-only tier cannot fail.
type PaymentReminder struct {
	Message      string       `json:"message"`
	WhatsAppLink string       `json:"whatsappLink"`
	Image        []byte       `json:"image,omitempty"`
	// QRImageURL is set on the text-only tier: a hosted QR image built
	// around a upi://pay URI, so the client can still show something
	// scannable when no uploaded QR could be used.
	QRImageURL string       `json:"qrImageUrl,omitempty"`
	Tier       ReminderTier `json:"tier"`
}

// PaymentService manages the uploaded UPI QR configurations and builds
// shareable payment requests from them.
type PaymentService interface {
	ListConfigs(ctx context.Context) ([]UPIConfig, error)
	// SaveConfigs replaces the config list. Each entry needs a display name
	// and a QR image; at most MaxUPIConfigs entries are kept.
	SaveConfigs(ctx context.Context, configs []UPIConfig) ([]UPIConfig, error)
	// BuildReminder composes a payment request for the customer using the
	// selected config (empty configID picks the first). Image generation
	// degrades tier by tier and never blocks the reminder itself.
	BuildReminder(ctx context.Context, customerID int64, configID string) (*PaymentReminder, error)
}

type paymentService struct {
	db *DB
}

func NewPaymentService(db *DB) PaymentService {
	return &paymentService{db: db}
}

func (s *paymentService) ListConfigs(ctx context.Context) ([]UPIConfig, error) {
	return s.db.UPIConfigs(ctx)
}

func (s *paymentService) SaveConfigs(ctx context.Context, configs []UPIConfig) ([]UPIConfig, error) {
	if len(configs) > MaxUPIConfigs {
		return nil, fmt.Errorf("%w: %d exceeds the limit of %d", ErrTooManyConfigs, len(configs), MaxUPIConfigs)
	}
	for i := range configs {
		if strings.TrimSpace(configs[i].CustomName) == "" || configs[i].QRImage == "" {
			return nil, fmt.Errorf("config %d: %w", i+1, ErrIncompleteSetup)
		}
		if configs[i].ID == "" {
			configs[i].ID = uuid.NewString()
		}
		if configs[i].AppName == "" {
			configs[i].AppName = "Other"
		}
	}

	s.db.Lock()
	defer s.db.Unlock()
	if err := s.db.SaveUPIConfigs(ctx, configs); err != nil {
		return nil, err
	}
	return configs, nil
}

func (s *paymentService) BuildReminder(ctx context.Context, customerID int64, configID string) (*PaymentReminder, error) {
	customers, err := s.db.Customers(ctx)
	if err != nil {
		return nil, err
	}
	var customer *Customer
	for i := range customers {
		if customers[i].ID == customerID {
			customer = &customers[i]
			break
		}
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %d: %w", customerID, ErrNotFound)
	}

	configs, err := s.db.UPIConfigs(ctx)
	if err != nil {
		return nil, err
	}
	var config *UPIConfig
	for i := range configs {
		if configID == "" || configs[i].ID == configID {
			config = &configs[i]
			break
		}
	}

	payee := "Kirana Store"
	if config != nil && config.CustomName != "" {
		payee = config.CustomName
	}
	amount := customer.TotalCredit.StringFixed(0)
	message := whatsapp.PaymentReminderMessage(customer.Name, amount, payee)
	link := whatsapp.ComposeLink(customer.Phone, message)

	reminder := &PaymentReminder{
		Message:      message,
		WhatsAppLink: link,
		Tier:         TierTextOnly,
	}

	// Image tiers, tried in order. Any failure logs and falls through; the
	// text-only deep link above is the floor that always works.
	if config != nil && config.QRImage != "" {
		tiers := []struct {
			tier  ReminderTier
			build func() ([]byte, error)
		}{
			{TierCard, func() ([]byte, error) {
				qr, err := paycard.DecodeDataURL(config.QRImage)
				if err != nil {
					return nil, err
				}
				return paycard.Compose(paycard.Card{
					CustomerName: customer.Name,
					PayeeName:    payee,
					Amount:       amount,
					QRImage:      qr,
				})
			}},
			{TierRawQR, func() ([]byte, error) {
				return paycard.DecodeDataURL(config.QRImage)
			}},
		}
		for _, t := range tiers {
			img, err := t.build()
			if err != nil {
				log.Printf("payment reminder: %s tier failed: %v", t.tier, err)
				continue
			}
			reminder.Image = img
			reminder.Tier = t.tier
			break
		}
	}

	// Text-only still gets a scannable image: a hosted QR for the upi://
	// URI, keyed off whatever UPI handle the shop has entered.
	if reminder.Image == nil {
		upiID := ""
		if config != nil {
			upiID = config.UPIID
		}
		reminder.QRImageURL = QRFallbackURL(upiID, payee, amount)
	}

	return reminder, nil
}

// QRFallbackURL builds the public QR-image endpoint URL around a upi:// pay
// URI, used when no QR has been uploaded for the shop.
func QRFallbackURL(upiID, payeeName, amount string) string {
	if upiID == "" {
		upiID = "kirana@upi"
	}
	if payeeName == "" {
		payeeName = "KiranaStore"
	}
	upi := fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=INR", upiID, payeeName, amount)
	return "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data=" + url.QueryEscape(upi)
}
