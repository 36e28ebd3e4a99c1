package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rahul/tripsmith/internal/observability"
	"github.com/rahul/tripsmith/internal/tools"
	"github.com/tmc/langchaingo/llms"
)

const (
	recommendationsQuery = "best things to do, food, and attractions in %s"
	budgetQuery          = "budget tips for %s"

	// StatusCompleted is the only status a new record carries; failed
	// generations are flagged through the enrichment error field, not
	// through status.
	StatusCompleted = "completed"
)

// Planner turns a goal into a PlanRecord: one model call for the raw
// day-wise text, a parse pass, then the enrichment lookups in
// sequence. A model failure still yields a record, with empty steps
// and the failure captured in Enriched.Error.
type Planner struct {
	Model   llms.Model
	Weather tools.Lookup
	Search  tools.Lookup
	Guide   tools.Lookup // optional, nil disables the guide enrichment
	Prompts *PromptManager
	Logger  *observability.Logger
}

func NewPlanner(model llms.Model, weather, search tools.Lookup, prompts *PromptManager, logger *observability.Logger) *Planner {
	return &Planner{
		Model:   model,
		Weather: weather,
		Search:  search,
		Prompts: prompts,
		Logger:  logger,
	}
}

// CreatePlan never returns an error for a failed model call; the
// failure becomes data on the record so the caller always has
// something to persist and display.
func (p *Planner) CreatePlan(ctx context.Context, goal string) *PlanRecord {
	observability.SetActiveGoal(goal)
	defer observability.SetActiveGoal("")

	raw, err := p.generate(ctx, goal)
	if err != nil {
		p.Logger.LogPlanFailed("", goal, err.Error())
		return &PlanRecord{
			Goal:   goal,
			Steps:  []DaySteps{},
			Status: StatusCompleted,
			Enriched: Enrichment{
				Error: fmt.Sprintf("Plan generation failed: %v", err),
			},
		}
	}

	return &PlanRecord{
		Goal:       goal,
		Steps:      Parse(raw),
		Enriched:   p.enrich(ctx, goal),
		Status:     StatusCompleted,
		FullResult: raw,
	}
}

func (p *Planner) generate(ctx context.Context, goal string) (string, error) {
	instruction := p.Prompts.Instruction(goal)

	var messages []llms.MessageContent
	if sys := p.Prompts.SystemPrompt(); sys != "" {
		messages = append(messages, llms.MessageContent{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(sys)},
		})
	}
	messages = append(messages, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(instruction)},
	})

	observability.ProviderCall()
	resp, err := p.Model.GenerateContent(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", errors.New("model returned no usable output")
	}

	raw := resp.Choices[0].Content
	p.Logger.LogLLM("", instruction, raw)
	return raw, nil
}

// enrich runs the lookups strictly in sequence. Each lookup already
// degrades failures to placeholder text, so nothing here can abort
// the plan.
func (p *Planner) enrich(ctx context.Context, goal string) Enrichment {
	enr := Enrichment{
		Weather:         p.lookup(ctx, p.Weather, goal),
		Recommendations: p.lookup(ctx, p.Search, fmt.Sprintf(recommendationsQuery, goal)),
		BudgetTips:      p.lookup(ctx, p.Search, fmt.Sprintf(budgetQuery, goal)),
	}
	if p.Guide != nil {
		enr.Guide = p.lookup(ctx, p.Guide, goal)
	}
	return enr
}

func (p *Planner) lookup(ctx context.Context, l tools.Lookup, query string) string {
	start := time.Now()
	observability.ProviderCall()
	result := l.Lookup(ctx, query)
	p.Logger.LogLookup("", l.Name(), query, time.Since(start))
	return result
}
