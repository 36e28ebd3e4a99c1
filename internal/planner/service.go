package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/rahul/tripsmith/internal/governance"
	"github.com/rahul/tripsmith/internal/observability"
)

// PlanStore is the slice of the persistence layer the service needs.
// The sqlite store satisfies it.
type PlanStore interface {
	Append(ctx context.Context, rec *PlanRecord) (int64, error)
}

// ErrGoalRejected wraps a policy denial so callers can map it to a
// client error instead of a server one.
type ErrGoalRejected struct {
	Reason string
}

func (e ErrGoalRejected) Error() string {
	return fmt.Sprintf("goal rejected: %s", e.Reason)
}

// Service is the full create-plan flow: admit the goal, generate and
// enrich, persist, return the stored record.
type Service struct {
	Planner *Planner
	Store   PlanStore
	Policy  governance.PolicyEngine
	Logger  *observability.Logger
}

func NewService(p *Planner, store PlanStore, policy governance.PolicyEngine, logger *observability.Logger) *Service {
	return &Service{
		Planner: p,
		Store:   store,
		Policy:  policy,
		Logger:  logger,
	}
}

func (s *Service) Generate(ctx context.Context, goal string) (*PlanRecord, error) {
	res, err := s.Policy.Evaluate(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("policy evaluation: %w", err)
	}
	if res.Effect != governance.EffectAllow {
		return nil, ErrGoalRejected{Reason: res.Reason}
	}

	rec := s.Planner.CreatePlan(ctx, res.Goal)

	id, err := s.Store.Append(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("persist plan: %w", err)
	}
	rec.ID = id

	observability.PlanGenerated()
	s.Logger.LogPlanCreated("", id, rec.Goal, len(rec.Steps))
	return rec, nil
}

// GenerateText runs Generate and renders the record for chat
// gateways, which can only display text.
func (s *Service) GenerateText(ctx context.Context, goal string) (string, error) {
	rec, err := s.Generate(ctx, goal)
	if err != nil {
		return "", err
	}
	return RenderText(rec), nil
}

// RenderText flattens a record into the display form the gateways
// send: goal, day-wise steps, then the enrichment sections.
func RenderText(rec *PlanRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Plan #%d: %s\n", rec.ID, rec.Goal)

	if rec.Enriched.Error != "" {
		fmt.Fprintf(&b, "\n%s\n", rec.Enriched.Error)
		return b.String()
	}

	for _, day := range rec.Steps {
		fmt.Fprintf(&b, "\n%s\n", day.Day)
		for i, task := range day.Tasks {
			fmt.Fprintf(&b, "%d. %s\n", i+1, task)
		}
	}

	if rec.Enriched.Weather != "" {
		fmt.Fprintf(&b, "\nWeather: %s\n", rec.Enriched.Weather)
	}
	if rec.Enriched.Recommendations != "" {
		fmt.Fprintf(&b, "\nRecommendations:\n%s\n", rec.Enriched.Recommendations)
	}
	if rec.Enriched.BudgetTips != "" {
		fmt.Fprintf(&b, "\nBudget Tips:\n%s\n", rec.Enriched.BudgetTips)
	}
	if rec.Enriched.Guide != "" {
		fmt.Fprintf(&b, "\nDestination Guide:\n%s\n", rec.Enriched.Guide)
	}

	return b.String()
}
