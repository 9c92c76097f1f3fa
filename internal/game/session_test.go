package game

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liferpg/internal/config"
)

// memStore keeps saves in memory and counts them.
type memStore struct {
	mu    sync.Mutex
	state GameState
	saves int
}

func (m *memStore) Load() GameState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

func (m *memStore) Save(s GameState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s.Clone()
	m.saves++
	return nil
}

func newSessionForTest(t *testing.T, start time.Time) (*Session, *memStore, *FakeClock) {
	t.Helper()
	clock := NewFakeClock(start)
	e := NewEngine(clock, config.DefaultBalance())
	st := &memStore{state: Default(start, "Neto", 3)}
	s, err := NewSession(st, e, nil)
	require.NoError(t, err)
	return s, st, clock
}

func TestSession_MutationsPersistThroughTheStore(t *testing.T) {
	start := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	s, store, _ := newSessionForTest(t, start)

	_, sg, err := s.AddSaga("Rotina", "Treino de perna")
	require.NoError(t, err)

	_, changed, err := s.CompleteQuest(sg.ID, sg.Quests[0].ID)
	require.NoError(t, err)
	require.True(t, changed)

	persisted := store.Load()
	assert.Equal(t, 10, persisted.TotalXP)
	assert.True(t, persisted.Sagas[0].Quests[0].Completed)
}

func TestSession_ReadTriggersRollover(t *testing.T) {
	start := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	s, store, clock := newSessionForTest(t, start)

	_, sg, err := s.AddSaga("Rotina", "Sono cedo")
	require.NoError(t, err)
	_, _, err = s.CompleteQuest(sg.ID, sg.Quests[0].ID)
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)
	st := s.State()

	assert.Equal(t, "2026-08-30", st.LastCheckDate)
	assert.False(t, st.Sagas[0].Quests[0].Completed)
	assert.Equal(t, 100, st.HP, "the CON quest was completed before midnight")

	persisted := store.Load()
	assert.Equal(t, "2026-08-30", persisted.LastCheckDate)
}

func TestSession_RolloverPenaltyAppliesOnFirstAccessOfNewDay(t *testing.T) {
	start := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	s, _, clock := newSessionForTest(t, start)

	_, _, err := s.AddSaga("Rotina", "Sono cedo")
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)
	view := s.View()

	assert.Equal(t, 85, view.State.HP)
	assert.Equal(t, "domingo", view.Weekday)
}

func TestSession_ViewComputesDerivedProjections(t *testing.T) {
	start := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	s, _, _ := newSessionForTest(t, start)

	_, _, err := s.AddSaga("Rotina", "Sábado: Treino\nEstudar")
	require.NoError(t, err)

	view := s.View()
	assert.Equal(t, "sábado", view.Weekday)
	assert.Len(t, view.TodaysQuests, 2)
	assert.Equal(t, "Novato", view.Title)
	assert.Equal(t, "R$ 0,00", view.GoldFormatted)
	assert.False(t, view.IsExhausted)
	assert.Equal(t, "Uma bebida e uma história?", view.TavernGreeting)
	assert.Equal(t, 2, view.Stats.TotalQuests)
}
