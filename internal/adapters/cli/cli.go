package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"vypaar-saathi/internal/app"
	"vypaar-saathi/internal/core"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:] — the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	switch args[0] {
	case "stock", "s":
		products, err := svc.ListProducts(ctx)
		if err != nil {
			log.Fatalf("Failed to load inventory: %v", err)
		}
		printStock(os.Stdout, products)

	case "parse-order", "parse":
		if len(args) < 2 {
			log.Fatal("Usage: app parse-order \"<pasted order text>\"")
		}
		order, err := svc.ImportOrder(ctx, app.ImportOrderRequest{
			CustomerName: "CLI Import",
			Text:         args[1],
		})
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(order)

	case "day-close", "close":
		date := time.Now().Format("2006-01-02")
		if len(args) > 1 {
			date = args[1]
		}
		summary, err := svc.DayClosing(ctx, date)
		if err != nil {
			log.Fatalf("Day closing failed: %v", err)
		}
		printDaySummary(os.Stdout, date, summary)

	case "customers", "udhaar", "u":
		customers, err := svc.ListCustomers(ctx)
		if err != nil {
			log.Fatalf("Failed to load credit ledger: %v", err)
		}
		total, err := svc.TotalDue(ctx)
		if err != nil {
			log.Fatalf("Failed to total balances: %v", err)
		}
		printCustomers(os.Stdout, customers, total.StringFixed(2))

	case "remind", "r":
		if len(args) < 2 {
			log.Fatal("Usage: app remind <customer-id>")
		}
		var id int64
		if _, err := fmt.Sscanf(args[1], "%d", &id); err != nil {
			log.Fatalf("Invalid customer id: %s", args[1])
		}
		reminder, err := svc.PaymentReminder(ctx, app.ReminderRequest{CustomerID: id})
		if err != nil {
			log.Fatalf("Reminder failed: %v", err)
		}
		fmt.Println("Tier:", reminder.Tier)
		fmt.Println(reminder.WhatsAppLink)

	case "insights", "ai":
		result, err := svc.Insights(ctx)
		if err != nil {
			log.Fatalf("Insights failed: %v", err)
		}
		fmt.Fprintln(os.Stderr, "source:", result.Source)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(result.Analysis)

	case "seed":
		if err := svc.Seed(ctx, time.Now()); err != nil {
			log.Fatalf("Seed failed: %v", err)
		}
		fmt.Println("Demo data seeded.")

	default:
		log.Fatalf("Unknown command: %s\nAvailable: stock, parse-order, day-close, customers, remind, insights, seed", args[0])
	}
}

func printStock(w io.Writer, products []core.Product) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 62))
	fmt.Fprintf(w, "  %-58s\n", "INVENTORY")
	fmt.Fprintln(w, strings.Repeat("=", 62))
	fmt.Fprintf(w, "  %-28s %8s %10s %10s\n", "NAME", "QTY", "PRICE", "STATUS")
	fmt.Fprintln(w, strings.Repeat("-", 62))
	for _, p := range products {
		status := "ok"
		if p.LowStock() {
			status = "LOW"
		}
		fmt.Fprintf(w, "  %-28s %8s %10s %10s\n", p.Name, p.Quantity.String(), p.SellingPrice.StringFixed(2), status)
	}
	fmt.Fprintln(w, strings.Repeat("=", 62))
}

func printDaySummary(w io.Writer, date string, s *core.DaySummary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 62))
	fmt.Fprintf(w, "  DAY CLOSING — %s\n", date)
	fmt.Fprintln(w, strings.Repeat("=", 62))
	fmt.Fprintf(w, "  %-30s %15s\n", "Total Sales", s.SalesTotal.StringFixed(2))
	fmt.Fprintf(w, "  %-30s %15s\n", "  Cash", s.CashSales.StringFixed(2))
	fmt.Fprintf(w, "  %-30s %15s\n", "  UPI", s.UPISales.StringFixed(2))
	fmt.Fprintf(w, "  %-30s %15s\n", "Expenses", s.ExpenseTotal.StringFixed(2))
	fmt.Fprintf(w, "  %-30s %15s\n", "Udhaar Given", s.CreditGiven.StringFixed(2))
	fmt.Fprintf(w, "  %-30s %15s\n", "Udhaar Received", s.CreditReceived.StringFixed(2))
	fmt.Fprintln(w, strings.Repeat("-", 62))
	fmt.Fprintf(w, "  %-30s %15s\n", "Net Profit", s.NetProfit.StringFixed(2))
	fmt.Fprintf(w, "  %-30s %15s\n", "Cash In Hand", s.CashInHand.StringFixed(2))
	fmt.Fprintln(w, strings.Repeat("=", 62))
}

func printCustomers(w io.Writer, customers []core.Customer, totalDue string) {
	// Customer IDs are millisecond timestamps, so the column is 13 wide.
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 69))
	fmt.Fprintf(w, "  %-65s\n", "UDHAAR LEDGER")
	fmt.Fprintln(w, strings.Repeat("=", 69))
	fmt.Fprintf(w, "  %-13s %-24s %12s %10s\n", "ID", "NAME", "BALANCE", "STATUS")
	fmt.Fprintln(w, strings.Repeat("-", 69))
	for _, c := range customers {
		fmt.Fprintf(w, "  %-13d %-24s %12s %10s\n", c.ID, c.Name, c.TotalCredit.StringFixed(2), c.Status)
	}
	fmt.Fprintln(w, strings.Repeat("-", 69))
	fmt.Fprintf(w, "  %-38s %12s\n", "TOTAL DUE", totalDue)
	fmt.Fprintln(w, strings.Repeat("=", 69))
}
