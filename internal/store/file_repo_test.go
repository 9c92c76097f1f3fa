package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liferpg/internal/game"
)

func testDefaults() game.GameState {
	return game.Default(time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC), "Neto", 3)
}

func newTestRepo(t *testing.T) *FileRepo {
	t.Helper()
	r, err := NewFileRepo(t.TempDir(), testDefaults, nil)
	require.NoError(t, err)
	return r
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	r := newTestRepo(t)
	st := r.Load()

	assert.Equal(t, "Neto", st.PlayerName)
	assert.Equal(t, 1, st.Level)
	assert.Equal(t, 0, st.TotalXP)
	assert.Equal(t, 100, st.HP)
	assert.Equal(t, 100, st.MaxHP)
	assert.Equal(t, 10, st.Attributes.CON)
	assert.Equal(t, 0, st.Attributes.GOLD)
	assert.Equal(t, 3, st.TavernTokens)
	assert.Empty(t, st.Sagas)
	assert.Empty(t, st.MapPoints)
}

func TestLoad_MalformedFileFallsBackToDefaults(t *testing.T) {
	r := newTestRepo(t)
	require.NoError(t, os.WriteFile(r.Path(), []byte("{not json"), 0o644))

	st := r.Load()
	assert.Equal(t, 1, st.Level)
	assert.Equal(t, "Neto", st.PlayerName)
}

func TestSaveLoad_RoundTripIsByteStable(t *testing.T) {
	r := newTestRepo(t)

	st := testDefaults()
	st.TotalXP = 250
	game.Normalize(&st)
	require.NoError(t, r.Save(st))

	first, err := os.ReadFile(r.Path())
	require.NoError(t, err)

	require.NoError(t, r.Save(r.Load()))

	second, err := os.ReadFile(r.Path())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoad_MigratesFlatLegacyShape(t *testing.T) {
	r := newTestRepo(t)
	legacy := map[string]any{
		"playerName": "Antigo",
		"level":      99, // stale; must be rederived from XP
		"totalXP":    120,
		"hp":         40,
		"maxHP":      100,
		"attributes": map[string]int{"CON": 12, "STR": 11, "DEX": 10, "INT": 15, "WIS": 10, "EXPL": 10, "GOLD": 50},
	}
	b, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(r.Path(), b, 0o644))

	st := r.Load()
	assert.Equal(t, "Antigo", st.PlayerName)
	assert.Equal(t, 2, st.Level, "level must be derived from totalXP, not trusted")
	assert.Equal(t, 120, st.TotalXP)
	assert.Equal(t, 50, st.Attributes.GOLD)
	// Fields the legacy shape never had get their defaults.
	assert.Equal(t, 3, st.TavernTokens)
	assert.Equal(t, "rustico", string(st.TavernSkin))
	assert.NotEmpty(t, st.LastCheckDate)
}

func TestSave_PreservesUnknownFields(t *testing.T) {
	r := newTestRepo(t)
	doc := map[string]any{
		"schemaVersion": 1,
		"state": map[string]any{
			"playerName":    "Neto",
			"totalXP":       10,
			"futureFeature": map[string]any{"enabled": true},
			"somethingElse": 42,
			"tavernTokens":  3,
			"lastCheckDate": "2026-08-29",
			"maxHP":         100,
			"hp":            100,
		},
	}
	b, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(r.Path(), b, 0o644))

	st := r.Load()
	require.NoError(t, r.Save(st))

	raw, err := os.ReadFile(r.Path())
	require.NoError(t, err)
	var env struct {
		SchemaVersion int                        `json:"schemaVersion"`
		State         map[string]json.RawMessage `json:"state"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, 1, env.SchemaVersion)
	assert.Contains(t, env.State, "futureFeature")
	assert.Contains(t, env.State, "somethingElse")
}

func TestSave_IsAtomicFromTheCallersPerspective(t *testing.T) {
	r := newTestRepo(t)
	require.NoError(t, r.Save(testDefaults()))

	// No temp droppings left behind next to the state file.
	entries, err := os.ReadDir(filepath.Dir(r.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())
}
