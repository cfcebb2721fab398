package ai

// Insight is one actionable observation shown on the insights screen.
type Insight struct {
	ID      int    `json:"id" jsonschema_description:"Sequential number starting at 1"`
	Type    string `json:"type" jsonschema_description:"One of: info, success, warning, alert"`
	Icon    string `json:"icon" jsonschema_description:"A single emoji fitting the insight"`
	Title   string `json:"title" jsonschema_description:"Short headline"`
	Message string `json:"message" jsonschema_description:"One or two sentences with concrete numbers"`
	Action  string `json:"action" jsonschema_description:"Button label, e.g. 'View Expenses'"`
	Screen  string `json:"screen" jsonschema_description:"Navigation target: dashboard, sales, inventory, credits or expenses"`
}

// Suggestion is a prioritized recommendation.
type Suggestion struct {
	Icon        string `json:"icon" jsonschema_description:"A single emoji"`
	Title       string `json:"title" jsonschema_description:"Short headline"`
	Description string `json:"description" jsonschema_description:"One sentence of advice"`
	Priority    string `json:"priority" jsonschema_description:"One of: high, medium, low"`
}

// DemandPrediction forecasts demand for one item.
type DemandPrediction struct {
	Item       string `json:"item" jsonschema_description:"Product name from the inventory"`
	Demand     string `json:"demand" jsonschema_description:"One of: High, Medium, Low"`
	Prediction string `json:"prediction" jsonschema_description:"Expected change, e.g. '+35%'"`
	Days       string `json:"days" jsonschema_description:"When the change applies, e.g. 'Weekend'"`
}

// ReorderSuggestion recommends a restock quantity.
type ReorderSuggestion struct {
	Item      string `json:"item" jsonschema_description:"Product name from the inventory"`
	Current   int    `json:"current" jsonschema_description:"Current stock quantity"`
	Suggested int    `json:"suggested" jsonschema_description:"Suggested stock quantity"`
	Reason    string `json:"reason" jsonschema_description:"Why the restock is needed"`
	Urgency   string `json:"urgency" jsonschema_description:"One of: urgent, medium"`
}

// AnalysisResult is the full strict-JSON payload the insights screen renders.
type AnalysisResult struct {
	Insights           []Insight           `json:"insights" jsonschema_description:"Actionable observations about the store"`
	Suggestions        []Suggestion        `json:"suggestions" jsonschema_description:"Prioritized recommendations"`
	DemandPrediction   []DemandPrediction  `json:"demandPrediction" jsonschema_description:"Per-item demand forecasts"`
	ReorderSuggestions []ReorderSuggestion `json:"reorderSuggestions" jsonschema_description:"Restock recommendations"`
}

// Fallback is the static analysis substituted when no API key is configured
// or the endpoint fails. Content mirrors what the screen shipped with.
func Fallback() *AnalysisResult {
	return &AnalysisResult{
		Insights: []Insight{
			{ID: 1, Type: "success", Icon: "🎉", Title: "Great Week!",
				Message: "Your sales increased by 18% compared to last week. Keep it up!",
				Action:  "View Details", Screen: "sales"},
			{ID: 2, Type: "warning", Icon: "⚠️", Title: "Transport Expense Increased",
				Message: "You spent ₹520 more on transport this week. Consider optimizing delivery routes.",
				Action:  "View Expenses", Screen: "expenses"},
			{ID: 3, Type: "info", Icon: "📊", Title: "Milk Sells More on Weekends",
				Message: "Stock analysis shows 35% more milk sales on Saturdays and Sundays.",
				Action:  "Stock Prediction", Screen: "inventory"},
			{ID: 4, Type: "alert", Icon: "🚨", Title: "Credit Alert",
				Message: "A customer has a large overdue balance. Consider sending a payment reminder.",
				Action:  "Send Reminder", Screen: "credits"},
		},
		Suggestions: []Suggestion{
			{Icon: "🎯", Title: "Stock More Bread on Sundays",
				Description: "Your data shows regulars buy bread on Sundays. Stock extra units.", Priority: "high"},
			{Icon: "💰", Title: "Reduce Credit Risk",
				Description: "Avoid giving more credit to customers with overdue payments.", Priority: "high"},
			{Icon: "🌧️", Title: "Weather Impact",
				Description: "Rain expected this week. Expect 15-20% lower footfall. Adjust inventory.", Priority: "low"},
		},
		DemandPrediction: []DemandPrediction{
			{Item: "Milk (500ml)", Demand: "High", Prediction: "+35%", Days: "Weekend"},
			{Item: "Bread", Demand: "High", Prediction: "+28%", Days: "Sunday"},
			{Item: "Cold Drinks", Demand: "Medium", Prediction: "+15%", Days: "Saturday"},
		},
		ReorderSuggestions: []ReorderSuggestion{
			{Item: "Milk (500ml)", Current: 8, Suggested: 40, Reason: "High weekend demand", Urgency: "urgent"},
			{Item: "Bread", Current: 5, Suggested: 30, Reason: "Stock will finish in 1 day", Urgency: "urgent"},
			{Item: "Maggi Noodles", Current: 12, Suggested: 50, Reason: "Popular snack item", Urgency: "medium"},
		},
	}
}
