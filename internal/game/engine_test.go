package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liferpg/internal/atlas"
	"liferpg/internal/config"
)

func newEngineForTest(start time.Time) Engine {
	return NewEngine(NewFakeClock(start), config.DefaultBalance())
}

func startState(now time.Time) GameState {
	return Default(now, "Neto", 3)
}

func TestLevelFor_Boundaries(t *testing.T) {
	assert.Equal(t, 1, levelFor(0))
	assert.Equal(t, 1, levelFor(99))
	assert.Equal(t, 2, levelFor(100))
	assert.Equal(t, 5, levelFor(420))
}

func TestGrantExperience_RederivesLevelAndLeavesInputAlone(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	e := newEngineForTest(now)
	before := startState(now)

	after := e.GrantExperience(before, 150)

	assert.Equal(t, 150, after.TotalXP)
	assert.Equal(t, 2, after.Level)
	assert.Equal(t, 0, before.TotalXP, "input state must not be mutated")
	assert.Equal(t, 1, before.Level)
}

func TestCompleteQuest_GrantsOnceAndIsIdempotent(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	e := newEngineForTest(now)
	st := startState(now)

	st, sg := e.AddSaga(st, "Rotina", "Treino de perna;Estudar React")
	require.Len(t, sg.Quests, 2)
	qid := sg.Quests[0].ID

	st1, changed := e.CompleteQuest(st, sg.ID, qid)
	require.True(t, changed)
	assert.Equal(t, 10, st1.TotalXP)
	assert.Equal(t, 20, st1.Attributes.STR, "baseline 10 + quest gain 10")
	assert.True(t, st1.Sagas[0].Quests[0].Completed)

	st2, changed := e.CompleteQuest(st1, sg.ID, qid)
	assert.False(t, changed)
	assert.Equal(t, st1, st2, "second completion must change nothing")
}

func TestCompleteQuest_UnknownIDsAreNoOps(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	e := newEngineForTest(now)
	st := startState(now)
	st, sg := e.AddSaga(st, "Rotina", "Treino")

	_, changed := e.CompleteQuest(st, sg.ID, "nope")
	assert.False(t, changed)
	_, changed = e.CompleteQuest(st, "missing-saga", sg.Quests[0].ID)
	assert.False(t, changed)
}

func TestDeleteSaga_RemovesItAndItsQuests(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	e := newEngineForTest(now)
	st := startState(now)
	st, sg := e.AddSaga(st, "Rotina", "a;b")

	st, ok := e.DeleteSaga(st, sg.ID)
	require.True(t, ok)
	assert.Empty(t, st.Sagas)

	_, ok = e.DeleteSaga(st, sg.ID)
	assert.False(t, ok)
}

func TestRemoveGold_FloorsAtZero(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	e := newEngineForTest(now)
	st := startState(now)

	st = e.AddGold(st, 30)
	assert.Equal(t, 30, st.Attributes.GOLD)

	st = e.RemoveGold(st, 100)
	assert.Equal(t, 0, st.Attributes.GOLD)
}

func TestAddMapPoint_GrantsBonusesAndUniqueIDs(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	e := newEngineForTest(now)
	st := startState(now)

	st, p1 := e.AddMapPoint(st, atlas.MapPoint{Name: "Praça", Lat: -23.5, Lng: -46.6})
	st, p2 := e.AddMapPoint(st, atlas.MapPoint{Name: "Parque", Lat: -23.6, Lng: -46.7})

	require.Len(t, st.MapPoints, 2)
	assert.NotEqual(t, p1.ID, p2.ID)
	assert.Equal(t, 40, st.TotalXP)
	assert.Equal(t, 40, st.Attributes.EXPL, "baseline 10 + 2x discovery gain 15")
	assert.Equal(t, now, p1.DiscoveredAt)
	assert.NotNil(t, p1.Photos)
}

func TestAddPhotoToPoint_AppendsAndPaysXP(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	e := newEngineForTest(now)
	st := startState(now)
	st, p := e.AddMapPoint(st, atlas.MapPoint{Name: "Praça"})

	st, ok := e.AddPhotoToPoint(st, p.ID, atlas.MapPhoto{URL: "file://x.jpg"})
	require.True(t, ok)
	assert.Len(t, st.MapPoints[0].Photos, 1)
	assert.Equal(t, now, st.MapPoints[0].Photos[0].Timestamp)
	assert.Equal(t, 30, st.TotalXP, "20 discovery + 10 photo")

	_, ok = e.AddPhotoToPoint(st, "point-unknown", atlas.MapPhoto{URL: "file://y.jpg"})
	assert.False(t, ok)
}

func TestDamageAndHeal_ClampIntoRange(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	e := newEngineForTest(now)
	st := startState(now)

	st = e.TakeDamage(st, 250)
	assert.Equal(t, 0, st.HP)

	st = e.Heal(st, 9999)
	assert.Equal(t, st.MaxHP, st.HP)
}

func TestTavernTokens_SpendRefusesOverdraft(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	e := newEngineForTest(now)
	st := startState(now) // 3 tokens

	st, ok := e.SpendTavernTokens(st, 2)
	require.True(t, ok)
	assert.Equal(t, 1, st.TavernTokens)

	st, ok = e.SpendTavernTokens(st, 5)
	assert.False(t, ok)
	assert.Equal(t, 1, st.TavernTokens)
}

func TestDrawReward_CostsOneTokenAndStopsAtZero(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	e := newEngineForTest(now)
	st := startState(now)

	for i := 0; i < 3; i++ {
		next, reward, ok := e.DrawReward(st)
		require.True(t, ok)
		assert.NotEmpty(t, reward.ID)
		assert.NotEmpty(t, reward.Label)
		st = next
	}
	assert.Equal(t, 0, st.TavernTokens)

	_, _, ok := e.DrawReward(st)
	assert.False(t, ok)
}

func TestSetTavernSkin_RejectsUnknownSkin(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	e := newEngineForTest(now)
	st := startState(now)

	st, ok := e.SetTavernSkin(st, "re4")
	require.True(t, ok)
	assert.Equal(t, "re4", string(st.TavernSkin))

	_, ok = e.SetTavernSkin(st, "neon")
	assert.False(t, ok)
}

func TestUpdatePlayerName_IgnoresBlank(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	e := newEngineForTest(now)
	st := startState(now)

	st = e.UpdatePlayerName(st, "  Aventureira  ")
	assert.Equal(t, "Aventureira", st.PlayerName)

	st = e.UpdatePlayerName(st, "   ")
	assert.Equal(t, "Aventureira", st.PlayerName)
}

func TestClone_PriorSnapshotSurvivesLaterMutation(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	e := newEngineForTest(now)
	st := startState(now)
	st, sg := e.AddSaga(st, "Rotina", "Treino;Sono cedo")

	snapshot := st.Clone()
	after, changed := e.CompleteQuest(st, sg.ID, sg.Quests[0].ID)
	require.True(t, changed)

	assert.False(t, snapshot.Sagas[0].Quests[0].Completed)
	assert.True(t, after.Sagas[0].Quests[0].Completed)
}
