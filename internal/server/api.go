package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"liferpg/internal/atlas"
	"liferpg/internal/game"
	"liferpg/internal/tavern"
)

// App exposes the game session to external collaborators over JSON.
// The engine never calls back into this layer.
type App struct {
	Session *game.Session
	Logger  *log.Logger
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) bool {
	return json.NewDecoder(r.Body).Decode(out) == nil
}

type amountRequest struct {
	Amount int `json:"amount"`
}

// decodeAmount enforces the collaborator boundary rule: non-positive
// amounts never reach the engine.
func decodeAmount(w http.ResponseWriter, r *http.Request) (int, bool) {
	var in amountRequest
	if !decodeJSON(r, &in) {
		writeErr(w, http.StatusBadRequest, "bad json")
		return 0, false
	}
	if in.Amount <= 0 {
		writeErr(w, http.StatusBadRequest, "amount must be positive")
		return 0, false
	}
	return in.Amount, true
}

func (a *App) saveFailed(w http.ResponseWriter, err error) {
	a.Logger.Printf("save failed: %v", err)
	writeErr(w, http.StatusInternalServerError, "state could not be persisted")
}

func (a *App) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Session.View())
}

func (a *App) AddSaga(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name    string `json:"name"`
		RawText string `json:"rawText"`
	}
	if !decodeJSON(r, &in) || in.Name == "" || in.RawText == "" {
		writeErr(w, http.StatusBadRequest, "name and rawText are required")
		return
	}
	st, sg, err := a.Session.AddSaga(in.Name, in.RawText)
	if err != nil {
		a.saveFailed(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"saga": sg, "state": st})
}

func (a *App) DeleteSaga(w http.ResponseWriter, r *http.Request) {
	st, ok, err := a.Session.DeleteSaga(mux.Vars(r)["id"])
	if err != nil {
		a.saveFailed(w, err)
		return
	}
	if !ok {
		writeErr(w, http.StatusNotFound, "saga not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": st})
}

func (a *App) CompleteQuest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	st, changed, err := a.Session.CompleteQuest(vars["sagaId"], vars["questId"])
	if err != nil {
		a.saveFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"changed": changed, "state": st})
}

func (a *App) GrantExperience(w http.ResponseWriter, r *http.Request) {
	amount, ok := decodeAmount(w, r)
	if !ok {
		return
	}
	st, err := a.Session.GrantExperience(amount)
	if err != nil {
		a.saveFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": st})
}

func (a *App) AddGold(w http.ResponseWriter, r *http.Request) {
	amount, ok := decodeAmount(w, r)
	if !ok {
		return
	}
	st, err := a.Session.AddGold(amount)
	if err != nil {
		a.saveFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": st})
}

func (a *App) RemoveGold(w http.ResponseWriter, r *http.Request) {
	amount, ok := decodeAmount(w, r)
	if !ok {
		return
	}
	st, err := a.Session.RemoveGold(amount)
	if err != nil {
		a.saveFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": st})
}

func (a *App) AddMapPoint(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string  `json:"name"`
		Lat      float64 `json:"lat"`
		Lng      float64 `json:"lng"`
		IconType string  `json:"iconType"`
	}
	if !decodeJSON(r, &in) || in.Name == "" {
		writeErr(w, http.StatusBadRequest, "name is required")
		return
	}
	st, point, err := a.Session.AddMapPoint(atlas.MapPoint{
		Name:     in.Name,
		Lat:      in.Lat,
		Lng:      in.Lng,
		IconType: in.IconType,
	})
	if err != nil {
		a.saveFailed(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"point": point, "state": st})
}

func (a *App) AddPhoto(w http.ResponseWriter, r *http.Request) {
	var in struct {
		URL         string `json:"url"`
		Description string `json:"description"`
	}
	if !decodeJSON(r, &in) || in.URL == "" {
		writeErr(w, http.StatusBadRequest, "url is required")
		return
	}
	st, ok, err := a.Session.AddPhotoToPoint(mux.Vars(r)["id"], atlas.MapPhoto{
		URL:         in.URL,
		Description: in.Description,
	})
	if err != nil {
		a.saveFailed(w, err)
		return
	}
	if !ok {
		writeErr(w, http.StatusNotFound, "map point not found")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"state": st})
}

func (a *App) TakeDamage(w http.ResponseWriter, r *http.Request) {
	amount, ok := decodeAmount(w, r)
	if !ok {
		return
	}
	st, err := a.Session.TakeDamage(amount)
	if err != nil {
		a.saveFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": st})
}

func (a *App) Heal(w http.ResponseWriter, r *http.Request) {
	amount, ok := decodeAmount(w, r)
	if !ok {
		return
	}
	st, err := a.Session.Heal(amount)
	if err != nil {
		a.saveFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": st})
}

func (a *App) AddTavernTokens(w http.ResponseWriter, r *http.Request) {
	amount, ok := decodeAmount(w, r)
	if !ok {
		return
	}
	st, err := a.Session.AddTavernTokens(amount)
	if err != nil {
		a.saveFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": st})
}

func (a *App) SpendTavernTokens(w http.ResponseWriter, r *http.Request) {
	amount, ok := decodeAmount(w, r)
	if !ok {
		return
	}
	st, spent, err := a.Session.SpendTavernTokens(amount)
	if err != nil {
		a.saveFailed(w, err)
		return
	}
	if !spent {
		writeErr(w, http.StatusConflict, "not enough tavern tokens")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": st})
}

func (a *App) DrawReward(w http.ResponseWriter, r *http.Request) {
	st, reward, ok, err := a.Session.DrawReward()
	if err != nil {
		a.saveFailed(w, err)
		return
	}
	if !ok {
		writeErr(w, http.StatusConflict, "not enough tavern tokens")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reward": reward, "state": st})
}

func (a *App) SetTavernSkin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Skin string `json:"skin"`
	}
	if !decodeJSON(r, &in) {
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}
	st, ok, err := a.Session.SetTavernSkin(tavern.Skin(in.Skin))
	if err != nil {
		a.saveFailed(w, err)
		return
	}
	if !ok {
		writeErr(w, http.StatusBadRequest, "unknown skin")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": st})
}

func (a *App) UpdatePlayerName(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	if !decodeJSON(r, &in) || in.Name == "" {
		writeErr(w, http.StatusBadRequest, "name is required")
		return
	}
	st, err := a.Session.UpdatePlayerName(in.Name)
	if err != nil {
		a.saveFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": st})
}
