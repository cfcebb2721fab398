package app

import (
	"vypaar-saathi/internal/ai"
	"vypaar-saathi/internal/core"
)

// InsightsResult carries the analysis plus where it came from.
type InsightsResult struct {
	Analysis *ai.AnalysisResult `json:"analysis"`
	Source   string             `json:"source"` // "ai" or "fallback"
}

// ReportResult bundles everything the reports screen shows.
type ReportResult struct {
	Series      []core.DayPoint      `json:"series"`
	TopProducts []core.ProductSales  `json:"topProducts"`
	Breakdown   []core.CategoryShare `json:"breakdown"`
}

// StoreShare is the shop's shareable storefront link.
type StoreShare struct {
	ShopName string `json:"shopName"`
	Link     string `json:"link"`
}

// OTPSession is returned after an OTP is (mock) sent.
type OTPSession struct {
	SessionID string `json:"sessionId"`
}
