package core

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// VoiceAction classifies what a spoken command asks for.
type VoiceAction string

const (
	VoiceNavigate   VoiceAction = "navigate"
	VoiceAddExpense VoiceAction = "add-expense"
	VoiceAddItem    VoiceAction = "add-item"
	VoiceUnknown    VoiceAction = "unknown"
)

// VoiceCommand is the structured interpretation of a final speech
// transcript. Capture and session handling stay in the browser; the server
// only sees finished text.
type VoiceCommand struct {
	Action   VoiceAction     `json:"action"`
	Screen   string          `json:"screen,omitempty"`
	Amount   decimal.Decimal `json:"amount,omitempty"`
	Category string          `json:"category,omitempty"`
	Item     string          `json:"item,omitempty"`
	Quantity int             `json:"quantity,omitempty"`
	Raw      string          `json:"raw"`
}

// screenWords maps spoken screen names (including the Hindi terms shop
// owners actually say) to screen IDs.
var screenWords = map[string]string{
	"dashboard": "dashboard",
	"home":      "dashboard",
	"orders":    "orders",
	"order":     "orders",
	"sales":     "orders",
	"inventory": "inventory",
	"stock":     "inventory",
	"credit":    "credits",
	"credits":   "credits",
	"udhaar":    "credits",
	"expense":   "expenses",
	"expenses":  "expenses",
	"kharcha":   "expenses",
	"reports":   "reports",
	"report":    "reports",
	"settings":  "settings",
	"insights":  "insights",
}

// ParseVoiceCommand interprets a transcript with the same best-effort,
// never-failing posture as the order parser: the worst case is an unknown
// command echoing the raw text back.
func ParseVoiceCommand(text string) VoiceCommand {
	raw := strings.TrimSpace(text)
	cmd := VoiceCommand{Action: VoiceUnknown, Raw: raw}
	if raw == "" {
		return cmd
	}

	words := strings.Fields(strings.ToLower(raw))

	// "show/open/go to <screen>"
	if len(words) >= 2 {
		switch words[0] {
		case "show", "open", "goto", "go":
			for _, w := range words[1:] {
				if screen, ok := screenWords[w]; ok {
					cmd.Action = VoiceNavigate
					cmd.Screen = screen
					return cmd
				}
			}
		}
	}

	// "add expense <amount> <category...>"
	if len(words) >= 3 && words[0] == "add" && (words[1] == "expense" || words[1] == "kharcha") {
		if amount, err := decimal.NewFromString(words[2]); err == nil && amount.IsPositive() {
			cmd.Action = VoiceAddExpense
			cmd.Amount = amount
			if len(words) > 3 {
				cmd.Category = capitalize(strings.Join(words[3:], " "))
			} else {
				cmd.Category = "Other"
			}
			return cmd
		}
	}

	// "add <qty> <item...>" — an order/stock line.
	if len(words) >= 3 && words[0] == "add" {
		if qty, err := strconv.Atoi(words[1]); err == nil && qty > 0 {
			cmd.Action = VoiceAddItem
			cmd.Quantity = qty
			cmd.Item = strings.Join(words[2:], " ")
			return cmd
		}
	}

	// Bare screen name still navigates.
	for _, w := range words {
		if screen, ok := screenWords[w]; ok {
			cmd.Action = VoiceNavigate
			cmd.Screen = screen
			return cmd
		}
	}

	return cmd
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
