package planner

import "time"

// DaySteps is one day of a plan: a free-form label ("Day 1", "Day 2",
// ...) and its ordered step texts.
type DaySteps struct {
	Day   string   `json:"day"`
	Tasks []string `json:"tasks"`
}

// Enrichment carries the side-lookup results attached to a plan. Each
// field is display text: either a provider result or a fixed failure
// placeholder. Error is set only when plan generation itself failed.
type Enrichment struct {
	Weather         string `json:"weather_considerations,omitempty"`
	Recommendations string `json:"recommendations,omitempty"`
	BudgetTips      string `json:"budget_tips,omitempty"`
	Guide           string `json:"destination_guide,omitempty"`
	Error           string `json:"error,omitempty"`
}

// PlanRecord is the persisted unit representing one generated plan.
// Records are immutable after creation; the only mutation the store
// supports is deletion.
type PlanRecord struct {
	ID         int64      `json:"id"`
	Goal       string     `json:"goal"`
	Steps      []DaySteps `json:"steps"`
	Enriched   Enrichment `json:"enriched_info"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	FullResult string     `json:"full_result,omitempty"`
}
