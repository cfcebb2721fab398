package ai_test

import (
	"testing"

	"vypaar-saathi/internal/ai"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json untouched", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ai.StripCodeFences(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAgent_Configured(t *testing.T) {
	if ai.NewAgent("", "").Configured() {
		t.Error("agent without key reports configured")
	}
	if !ai.NewAgent("sk-test", "").Configured() {
		t.Error("agent with key reports unconfigured")
	}
}

func TestPickModel(t *testing.T) {
	tests := []struct {
		name      string
		available []string
		want      string
	}{
		{"first preference available", []string{"gpt-4o-mini", "gpt-4o", "o3"}, "gpt-4o"},
		{"falls to second preference", []string{"o3", "gpt-4o-mini"}, "gpt-4o-mini"},
		{"no candidate listed", []string{"o3", "text-davinci-003"}, ai.DefaultModel},
		{"empty listing", nil, ai.DefaultModel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ai.PickModel(tt.available); got != tt.want {
				t.Errorf("PickModel(%v) = %q, want %q", tt.available, got, tt.want)
			}
		})
	}
}

func TestFallback(t *testing.T) {
	f := ai.Fallback()
	if len(f.Insights) == 0 || len(f.Suggestions) == 0 {
		t.Fatal("fallback dataset should populate every section")
	}
	if len(f.DemandPrediction) == 0 || len(f.ReorderSuggestions) == 0 {
		t.Fatal("fallback dataset should populate every section")
	}
	for _, in := range f.Insights {
		if in.Title == "" || in.Message == "" {
			t.Errorf("incomplete fallback insight: %+v", in)
		}
	}
}
