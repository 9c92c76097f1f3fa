package store

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"liferpg/internal/game"
)

// SchemaVersion is the current persisted shape. Version 0 is the
// historical layout with the state fields at the top level and no
// tavern economy.
const SchemaVersion = 1

const stateFile = "state.json"

type envelope struct {
	SchemaVersion int             `json:"schemaVersion"`
	State         json.RawMessage `json:"state"`
}

// knownStateKeys are the fields computation reads. Anything else found
// in a persisted state object is carried across saves untouched.
var knownStateKeys = map[string]bool{
	"playerName":    true,
	"level":         true,
	"totalXP":       true,
	"hp":            true,
	"maxHP":         true,
	"attributes":    true,
	"sagas":         true,
	"mapPoints":     true,
	"lastCheckDate": true,
	"tavernTokens":  true,
	"tavernSkin":    true,
}

// FileRepo is the persistence gateway for the game state. Load never
// fails: a missing or malformed file falls back to the default state.
// Save is atomic; a crash mid-write leaves the previous file intact.
type FileRepo struct {
	mu       sync.Mutex
	path     string
	logger   *log.Logger
	defaults func() game.GameState
	extra    map[string]json.RawMessage
}

func NewFileRepo(dataDir string, defaults func() game.GameState, logger *log.Logger) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &FileRepo{
		path:     filepath.Join(dataDir, stateFile),
		logger:   logger,
		defaults: defaults,
	}, nil
}

func (r *FileRepo) Load() game.GameState {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Printf("state read failed, starting fresh: %v", err)
		}
		return r.defaults()
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		r.logger.Printf("state file malformed, starting fresh: %v", err)
		return r.defaults()
	}

	stateDoc, ok := r.migrate(doc)
	if !ok {
		return r.defaults()
	}

	stateBytes, err := json.Marshal(stateDoc)
	if err != nil {
		r.logger.Printf("state re-encode failed, starting fresh: %v", err)
		return r.defaults()
	}

	// Default-then-overwrite: fields absent from the file keep their
	// default values, so a newer engine always sees defined fields.
	st := r.defaults()
	if err := json.Unmarshal(stateBytes, &st); err != nil {
		r.logger.Printf("state decode failed, starting fresh: %v", err)
		return r.defaults()
	}
	game.Normalize(&st)

	r.extra = map[string]json.RawMessage{}
	for k, v := range stateDoc {
		if !knownStateKeys[k] {
			r.extra[k] = v
		}
	}

	return st
}

// migrate maps any historical persisted shape onto the current state
// object. One case per shape; adding a version means adding a case.
func (r *FileRepo) migrate(doc map[string]json.RawMessage) (map[string]json.RawMessage, bool) {
	version := 0
	if raw, ok := doc["schemaVersion"]; ok {
		if err := json.Unmarshal(raw, &version); err != nil {
			r.logger.Printf("state version unreadable, starting fresh: %v", err)
			return nil, false
		}
	}

	switch version {
	case 0:
		// Flat legacy layout; the whole document is the state.
		delete(doc, "schemaVersion")
		return doc, true
	case SchemaVersion:
		var stateDoc map[string]json.RawMessage
		if raw, ok := doc["state"]; ok {
			if err := json.Unmarshal(raw, &stateDoc); err != nil {
				r.logger.Printf("state body malformed, starting fresh: %v", err)
				return nil, false
			}
		}
		if stateDoc == nil {
			stateDoc = map[string]json.RawMessage{}
		}
		return stateDoc, true
	default:
		r.logger.Printf("state schema %d is newer than this build, starting fresh", version)
		return nil, false
	}
}

func (r *FileRepo) Save(s game.GameState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	var stateDoc map[string]json.RawMessage
	if err := json.Unmarshal(b, &stateDoc); err != nil {
		return err
	}
	for k, v := range r.extra {
		if _, taken := stateDoc[k]; !taken {
			stateDoc[k] = v
		}
	}

	stateBytes, err := json.Marshal(stateDoc)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(envelope{SchemaVersion: SchemaVersion, State: stateBytes}, "", "  ")
	if err != nil {
		return err
	}

	return r.writeAtomic(append(out, '\n'))
}

// writeAtomic writes to a sibling temp file and renames it over the
// target, so readers observe either the old or the new state, never a
// partial write.
func (r *FileRepo) writeAtomic(b []byte) error {
	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, stateFile+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Path exposes the backing file, used by ops tooling and tests.
func (r *FileRepo) Path() string {
	return r.path
}
