package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rahul/tripsmith/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *PlanStore {
	t.Helper()
	s, err := NewPlanStore(filepath.Join(t.TempDir(), "plans.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecord(goal string) *planner.PlanRecord {
	return &planner.PlanRecord{
		Goal: goal,
		Steps: []planner.DaySteps{
			{Day: "Day 1", Tasks: []string{"Visit museum", "Eat lunch"}},
			{Day: "Day 2", Tasks: []string{"Hike trail"}},
		},
		Enriched: planner.Enrichment{
			Weather:         "21.5°C, Light Rain, Humidity: 63%",
			Recommendations: "Title: A\nSnippet: B\n",
			BudgetTips:      "Title: C\nSnippet: D\n",
		},
		FullResult: "Day 1\n1. Visit museum\n2. Eat lunch\nDay 2\n1. Hike trail",
	}
}

func TestPlanStore_AppendAndGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := sampleRecord("trip to Kyoto")
	id, err := s.Append(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "completed", rec.Status)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, rec.Goal, got.Goal)
	assert.Equal(t, rec.Steps, got.Steps)
	assert.Equal(t, rec.Enriched, got.Enriched)
	assert.Equal(t, rec.FullResult, got.FullResult)
	assert.Equal(t, "completed", got.Status)
}

func TestPlanStore_IDsAreMonotonic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		id, err := s.Append(ctx, sampleRecord("goal"))
		require.NoError(t, err)
		assert.Greater(t, id, last)
		last = id
	}
}

func TestPlanStore_ListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := sampleRecord("first goal")
	first.CreatedAt = time.Now().UTC().Add(-time.Hour)
	_, err := s.Append(ctx, first)
	require.NoError(t, err)

	second := sampleRecord("second goal")
	_, err = s.Append(ctx, second)
	require.NoError(t, err)

	plans, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "second goal", plans[0].Goal)
	assert.Equal(t, "first goal", plans[1].Goal)
}

func TestPlanStore_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), 42)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Append(ctx, sampleRecord("goal"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, id))

	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, id), ErrNotFound)
}

func TestPlanStore_Count(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = s.Append(ctx, sampleRecord("goal"))
	require.NoError(t, err)

	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPlanStore_CorruptBlobsDegradeToEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO task_plans (goal, plan_steps, enriched_info, full_result, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		"corrupt goal", "{not json", "also not json", "raw text", "completed", time.Now().UTC())
	require.NoError(t, err)

	plans, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)

	assert.Equal(t, []planner.DaySteps{}, plans[0].Steps)
	assert.Equal(t, planner.Enrichment{}, plans[0].Enriched)
	assert.Equal(t, "raw text", plans[0].FullResult)
}

func TestPlanStore_NullColumns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO task_plans (goal, plan_steps, created_at) VALUES (?, ?, ?)`,
		"sparse goal", "[]", time.Now().UTC())
	require.NoError(t, err)

	plans, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Empty(t, plans[0].FullResult)
	assert.Equal(t, planner.Enrichment{}, plans[0].Enriched)
}
