package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"liferpg/internal/config"
	"liferpg/internal/game"
	"liferpg/internal/httpmw"
	"liferpg/internal/server"
	"liferpg/internal/store"
)

type Options struct {
	Config  *config.Config
	DataDir string
	Logger  *log.Logger
	Clock   game.Clock
}

// NewHandler wires storage, the progression engine and the HTTP surface
// into one handler. The session it builds is the only writer of the
// state file for the life of the process.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = opts.Config.DataDir
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = "data"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = game.RealClock{}
	}

	cfg := opts.Config
	repo, err := store.NewFileRepo(opts.DataDir, func() game.GameState {
		return game.Default(opts.Clock.Now(), cfg.PlayerName, cfg.Balance.StartingTavernTokens)
	}, opts.Logger)
	if err != nil {
		return nil, err
	}

	engine := game.NewEngine(opts.Clock, cfg.Balance)
	session, err := game.NewSession(repo, engine, opts.Logger)
	if err != nil {
		return nil, err
	}

	app := &server.App{Session: session, Logger: opts.Logger}
	r := server.NewRouter(app)

	r.HandleFunc("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if _, err := os.Stat(filepath.Dir(repo.Path())); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "state storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "liferpg",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/config", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}).Methods(http.MethodGet)

	return httpmw.Chain(
		r,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
