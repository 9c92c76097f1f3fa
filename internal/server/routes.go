package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// NewRouter registers every collaborator-facing route.
func NewRouter(app *App) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "liferpg",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/state", app.State).Methods(http.MethodGet)

	api.HandleFunc("/sagas", app.AddSaga).Methods(http.MethodPost)
	api.HandleFunc("/sagas/{id}", app.DeleteSaga).Methods(http.MethodDelete)
	api.HandleFunc("/sagas/{sagaId}/quests/{questId}/complete", app.CompleteQuest).Methods(http.MethodPost)

	api.HandleFunc("/xp", app.GrantExperience).Methods(http.MethodPost)
	api.HandleFunc("/gold/add", app.AddGold).Methods(http.MethodPost)
	api.HandleFunc("/gold/remove", app.RemoveGold).Methods(http.MethodPost)

	api.HandleFunc("/map-points", app.AddMapPoint).Methods(http.MethodPost)
	api.HandleFunc("/map-points/{id}/photos", app.AddPhoto).Methods(http.MethodPost)

	api.HandleFunc("/damage", app.TakeDamage).Methods(http.MethodPost)
	api.HandleFunc("/heal", app.Heal).Methods(http.MethodPost)

	api.HandleFunc("/tavern/tokens/add", app.AddTavernTokens).Methods(http.MethodPost)
	api.HandleFunc("/tavern/tokens/spend", app.SpendTavernTokens).Methods(http.MethodPost)
	api.HandleFunc("/tavern/draw", app.DrawReward).Methods(http.MethodPost)
	api.HandleFunc("/tavern/skin", app.SetTavernSkin).Methods(http.MethodPut)

	api.HandleFunc("/player/name", app.UpdatePlayerName).Methods(http.MethodPut)

	return r
}
