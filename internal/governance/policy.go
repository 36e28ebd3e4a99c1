package governance

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// MaxGoalLength matches the goal column bound in the plan store.
const MaxGoalLength = 500

// Effect defines the result of a policy evaluation.
type Effect string

const (
	EffectAllow Effect = "allow"
	EffectDeny  Effect = "deny"
)

// Result contains the outcome of a goal evaluation. Goal holds the
// normalized (trimmed, length-capped) text when the effect is allow.
type Result struct {
	Effect Effect
	Goal   string
	Reason string
}

// PolicyEngine decides whether a goal is admitted for plan generation.
type PolicyEngine interface {
	Evaluate(ctx context.Context, goal string) (Result, error)
}

// DefaultPolicyEngine trims and length-caps goals and rejects any
// goal matching a denied pattern.
type DefaultPolicyEngine struct {
	MaxGoalLength int
	DeniedRegex   []*regexp.Regexp
}

func NewDefaultPolicyEngine() *DefaultPolicyEngine {
	return &DefaultPolicyEngine{
		MaxGoalLength: MaxGoalLength,
		DeniedRegex:   make([]*regexp.Regexp, 0),
	}
}

func (e *DefaultPolicyEngine) DenyPattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	e.DeniedRegex = append(e.DeniedRegex, re)
	return nil
}

func (e *DefaultPolicyEngine) Evaluate(ctx context.Context, goal string) (Result, error) {
	goal = strings.TrimSpace(goal)

	if goal == "" {
		return Result{
			Effect: EffectDeny,
			Reason: "Goal is empty",
		}, nil
	}

	for _, re := range e.DeniedRegex {
		if re.MatchString(goal) {
			return Result{
				Effect: EffectDeny,
				Reason: fmt.Sprintf("Goal matches restricted pattern: %s", re.String()),
			}, nil
		}
	}

	if runes := []rune(goal); len(runes) > e.MaxGoalLength {
		goal = string(runes[:e.MaxGoalLength])
	}

	return Result{
		Effect: EffectAllow,
		Goal:   goal,
		Reason: "Approved by default policy",
	}, nil
}
