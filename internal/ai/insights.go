package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"

	"vypaar-saathi/internal/core"
)

// DefaultModel is used when INSIGHTS_MODEL is not set and no candidate can
// be confirmed available. ModelCandidates is the preference order checked
// against the account's model list on the first request.
const DefaultModel = "gpt-4o"

var ModelCandidates = []string{"gpt-4o", "gpt-4o-mini", "gpt-4.1-mini"}

// PickModel returns the first candidate present in available, or
// DefaultModel when none is.
func PickModel(available []string) string {
	for _, candidate := range ModelCandidates {
		if slices.Contains(available, candidate) {
			return candidate
		}
	}
	return DefaultModel
}

// requestTimeout bounds the insights fetch; there are no retries — a
// failure falls back to the static dataset.
const requestTimeout = 30 * time.Second

// InsightsService produces the AI analysis for the insights screen.
type InsightsService interface {
	// Configured reports whether an API key is present. When false,
	// Generate is never called and callers use Fallback directly.
	Configured() bool
	Generate(ctx context.Context, products []core.Product, orders []core.Order) (*AnalysisResult, error)
}

// Agent calls the generative endpoint with a strict JSON schema so the
// response unmarshals straight into AnalysisResult.
type Agent struct {
	client *openai.Client
	model  string
	hasKey bool

	resolveOnce sync.Once
	resolved    string
}

// NewAgent builds the agent. An empty model means "pick from what the
// account offers" and is resolved lazily on the first request.
func NewAgent(apiKey, model string) *Agent {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Agent{client: &client, model: model, hasKey: apiKey != ""}
}

func (a *Agent) Configured() bool {
	return a.hasKey
}

// resolveModel settles the model name once. An explicit model wins; otherwise
// the account's models are listed and the preferred candidate chosen. A
// failed listing falls back to DefaultModel rather than blocking insights.
func (a *Agent) resolveModel(ctx context.Context) string {
	a.resolveOnce.Do(func() {
		if a.model != "" {
			a.resolved = a.model
			return
		}
		page, err := a.client.Models.List(ctx)
		if err != nil {
			log.Printf("insights: listing models failed, using %s: %v", DefaultModel, err)
			a.resolved = DefaultModel
			return
		}
		var available []string
		for page != nil {
			for _, m := range page.Data {
				available = append(available, m.ID)
			}
			if page, err = page.GetNextPage(); err != nil {
				break
			}
		}
		a.resolved = PickModel(available)
	})
	return a.resolved
}

func (a *Agent) Generate(ctx context.Context, products []core.Product, orders []core.Order) (*AnalysisResult, error) {
	if !a.hasKey {
		return nil, fmt.Errorf("insights agent is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	inventoryJSON, err := json.Marshal(truncateProducts(products, 10))
	if err != nil {
		return nil, fmt.Errorf("failed to encode inventory sample: %w", err)
	}
	ordersJSON, err := json.Marshal(truncateOrders(orders, 10))
	if err != nil {
		return nil, fmt.Errorf("failed to encode sales sample: %w", err)
	}

	prompt := fmt.Sprintf(`You are a retail analyst for a small Indian kirana (neighborhood grocery) store.
Analyze the store data and produce actionable insights for the owner.
Rules:
1. Keep every message short and concrete; amounts in rupees.
2. "screen" must be one of: "dashboard", "sales", "inventory", "credits", "expenses".
3. "type" must be one of: "info", "success", "warning", "alert".
4. Base reorder suggestions on current stock versus minimum stock.

Date: %s
Inventory: %s
Recent sales: %s`,
		time.Now().Format("2006-01-02"), inventoryJSON, ordersJSON)

	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(a.resolveModel(ctx)),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "store_analysis",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("AI analysis of kirana store inventory and sales"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("insights request failed: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var result AnalysisResult
	if err := json.Unmarshal([]byte(StripCodeFences(content)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}
	return &result, nil
}

// StripCodeFences removes markdown ```json fences some models wrap around
// otherwise valid JSON.
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v AnalysisResult
	return reflector.Reflect(v)
}

func truncateProducts(products []core.Product, n int) []core.Product {
	if len(products) > n {
		return products[:n]
	}
	return products
}

func truncateOrders(orders []core.Order, n int) []core.Order {
	if len(orders) > n {
		return orders[:n]
	}
	return orders
}
