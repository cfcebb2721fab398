// Package whatsapp composes wa.me deep links and the fixed message
// templates the app sends through them. Deep links are the only WhatsApp
// integration: a pre-filled compose window, nothing transactional.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

const baseURL = "https://wa.me/"

// NormalizePhone strips spaces and hyphens so the number fits the wa.me
// path segment (international format, no separators).
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '\t' {
			return -1
		}
		return r
	}, phone)
}

// ComposeLink builds a wa.me deep link that opens a chat with phone and the
// message pre-filled. An empty phone yields the recipient-less share form.
func ComposeLink(phone, message string) string {
	return baseURL + NormalizePhone(phone) + "?text=" + url.QueryEscape(message)
}

// PaymentReminderMessage is the fixed udhaar reminder template.
func PaymentReminderMessage(customerName, amount, payeeName string) string {
	return fmt.Sprintf(
		"Hello %s, ₹%s payment is pending for %s.\n\nPlease pay using the attached QR Card.\n\nTotal Due: ₹%s",
		customerName, amount, payeeName, amount,
	)
}

// StorefrontOrderMessage is the template a storefront checkout relays to
// the shop's own number.
func StorefrontOrderMessage(customerName string, itemLines []string, total string) string {
	return fmt.Sprintf(
		"New Order from *%s*\n\n%s\n\n*Total Estimate: ₹%s*",
		customerName, strings.Join(itemLines, "\n"), total,
	)
}

// StoreShareMessage invites a customer to the shop's storefront link.
func StoreShareMessage(storeLink string) string {
	return "👋 Hello! Sending you my online store link. Check out our latest inventory and order directly: " + storeLink
}
