package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liferpg/internal/config"
)

func TestReconcile_SameDayIsANoOp(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	e := newEngineForTest(now)
	st := startState(now)

	next, res := e.Reconcile(st)
	assert.False(t, res.Applied)
	assert.Equal(t, st, next)
}

func TestReconcile_MissedConQuestCostsHPAndResetsCompletion(t *testing.T) {
	start := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	clock := NewFakeClock(start)
	e := NewEngine(clock, config.DefaultBalance())

	st := startState(start)
	st, sg := e.AddSaga(st, "Rotina", "Sono cedo;Treino de perna")
	require.Equal(t, "CON", string(sg.Quests[0].Attribute))

	// Complete only the STR quest, leave the CON one hanging.
	st, changed := e.CompleteQuest(st, sg.ID, sg.Quests[1].ID)
	require.True(t, changed)

	clock.Advance(24 * time.Hour)
	next, res := e.Reconcile(st)

	require.True(t, res.Applied)
	assert.Equal(t, "2026-08-30", res.Day)
	assert.Equal(t, "2026-08-30", next.LastCheckDate)
	assert.True(t, res.MissedConDuty)
	assert.Equal(t, 15, res.PenaltyHP)
	assert.Equal(t, 85, next.HP)
	for _, q := range next.Sagas[0].Quests {
		assert.False(t, q.Completed, "rollover must clear every completion flag")
	}
	// The input snapshot keeps yesterday's completions.
	assert.True(t, st.Sagas[0].Quests[1].Completed)
}

func TestReconcile_PenaltyIgnoresNonConQuests(t *testing.T) {
	start := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	clock := NewFakeClock(start)
	e := NewEngine(clock, config.DefaultBalance())

	st := startState(start)
	st, _ = e.AddSaga(st, "Rotina", "Treino de perna;Estudar")

	clock.Advance(24 * time.Hour)
	next, res := e.Reconcile(st)

	require.True(t, res.Applied)
	assert.False(t, res.MissedConDuty)
	assert.Equal(t, 0, res.PenaltyHP)
	assert.Equal(t, 100, next.HP)
}

func TestReconcile_PenaltySkipsQuestsForOtherWeekdays(t *testing.T) {
	// 2026-08-30 is a Sunday; a Monday-only CON quest is not due.
	start := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	clock := NewFakeClock(start)
	e := NewEngine(clock, config.DefaultBalance())

	st := startState(start)
	st, _ = e.AddSaga(st, "Rotina", "Segunda: Sono cedo")

	clock.Advance(24 * time.Hour)
	_, res := e.Reconcile(st)
	require.True(t, res.Applied)
	assert.Equal(t, "domingo", res.Weekday)
	assert.False(t, res.MissedConDuty)

	clock.Advance(24 * time.Hour) // Monday
	st2 := startState(start)
	st2, _ = e.AddSaga(st2, "Rotina", "Segunda: Sono cedo")
	_, res = e.Reconcile(st2)
	require.True(t, res.Applied)
	assert.Equal(t, "segunda-feira", res.Weekday)
	assert.True(t, res.MissedConDuty)
}

func TestReconcile_PenaltyFloorsHPAtZero(t *testing.T) {
	start := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	clock := NewFakeClock(start)
	e := NewEngine(clock, config.DefaultBalance())

	st := startState(start)
	st, _ = e.AddSaga(st, "Rotina", "Sono cedo")
	st = e.TakeDamage(st, 95) // 5 HP left

	clock.Advance(24 * time.Hour)
	next, res := e.Reconcile(st)
	require.True(t, res.Applied)
	assert.Equal(t, 15, res.PenaltyHP)
	assert.Equal(t, 0, next.HP)
}
