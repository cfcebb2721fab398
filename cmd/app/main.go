package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	cliAdapter "vypaar-saathi/internal/adapters/cli"
	"vypaar-saathi/internal/ai"
	"vypaar-saathi/internal/app"
	"vypaar-saathi/internal/core"
	"vypaar-saathi/internal/store"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	kv, cleanup, err := openStore(ctx)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer cleanup()

	db := core.NewDB(kv)
	if err := db.Seed(ctx, time.Now()); err != nil {
		log.Fatalf("seed: %v", err)
	}

	agent := ai.NewAgent(os.Getenv("OPENAI_API_KEY"), os.Getenv("INSIGHTS_MODEL"))

	storeURL := os.Getenv("STORE_URL")
	if storeURL == "" {
		storeURL = "http://localhost:8080/store"
	}

	svc := app.NewApplicationService(db, agent, storeURL)

	if len(os.Args) > 1 {
		cliAdapter.Run(ctx, svc, os.Args[1:])
		return
	}

	runConsole(ctx, svc)
}

// openStore picks the persistence backend: Postgres when DATABASE_URL is
// set, otherwise JSON files under DATA_DIR (default ./data).
func openStore(ctx context.Context) (store.Store, func(), error) {
	if os.Getenv("DATABASE_URL") != "" {
		pool, err := store.NewPool(ctx)
		if err != nil {
			return nil, nil, err
		}
		kv, err := store.NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return kv, pool.Close, nil
	}

	dir := os.Getenv("DATA_DIR")
	if dir == "" {
		dir = "data"
	}
	kv, err := store.NewFileStore(dir)
	if err != nil {
		return nil, nil, err
	}
	return kv, func() {}, nil
}

// runConsole is an interactive loop for quick checks without the web UI.
// Single-word input dispatches to the CLI commands; anything longer goes
// through the voice-command interpreter.
func runConsole(ctx context.Context, svc app.ApplicationService) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Vypaar Saathi Console")
	fmt.Println("Commands: stock, udhaar, close, insights, help, exit")
	fmt.Println("---------------------")

	for {
		fmt.Print("\n> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit", "quit":
			return
		case "help":
			fmt.Println("stock      - inventory levels")
			fmt.Println("udhaar     - credit ledger")
			fmt.Println("close      - today's day closing")
			fmt.Println("insights   - AI store analysis")
			fmt.Println("Anything else is interpreted as a voice command.")
			continue
		case "stock":
			cliAdapter.Run(ctx, svc, []string{"stock"})
			continue
		case "udhaar":
			cliAdapter.Run(ctx, svc, []string{"customers"})
			continue
		case "close":
			cliAdapter.Run(ctx, svc, []string{"day-close"})
			continue
		case "insights":
			cliAdapter.Run(ctx, svc, []string{"insights"})
			continue
		}

		cmd := svc.InterpretVoice(input)
		switch cmd.Action {
		case core.VoiceNavigate:
			fmt.Printf("Would open the %s screen.\n", cmd.Screen)
		case core.VoiceAddExpense:
			fmt.Printf("Would record expense: %s ₹%s\n", cmd.Category, cmd.Amount)
		case core.VoiceAddItem:
			fmt.Printf("Would add item: %s x%d\n", cmd.Item, cmd.Quantity)
		default:
			fmt.Println("Did not understand. Type 'help' for commands.")
		}
	}
}
