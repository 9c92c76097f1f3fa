package game

import (
	"log"
	"sync"

	"liferpg/internal/atlas"
	"liferpg/internal/quest"
	"liferpg/internal/tavern"
)

// Store is the persistence gateway the session writes through.
type Store interface {
	Load() GameState
	Save(GameState) error
}

// Session owns the single GameState for the process lifetime. Every
// access runs the day-rollover check first, and every mutation is
// persisted before it returns. The engine itself is sequential; the
// mutex only serializes concurrent HTTP callers.
type Session struct {
	mu     sync.Mutex
	store  Store
	engine Engine
	logger *log.Logger
	state  GameState
}

func NewSession(store Store, engine Engine, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Session{
		store:  store,
		engine: engine,
		logger: logger,
	}
	s.state = store.Load()
	s.reconcileLocked()
	if err := s.store.Save(s.state); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) reconcileLocked() {
	next, res := s.engine.Reconcile(s.state)
	if !res.Applied {
		return
	}
	s.state = next
	s.logger.Printf("day rollover: day=%s weekday=%s penalty_hp=%d quests_reset=%d",
		res.Day, res.Weekday, res.PenaltyHP, res.QuestsReset)
	if err := s.store.Save(s.state); err != nil {
		s.logger.Printf("rollover save failed: %v", err)
	}
}

// commit persists the new state. On failure the in-memory state keeps
// the mutation and the previously persisted copy stays intact.
func (s *Session) commit(next GameState) (GameState, error) {
	s.state = next
	if err := s.store.Save(next); err != nil {
		return next.Clone(), err
	}
	return next.Clone(), nil
}

// State returns a snapshot after the rollover check.
func (s *Session) State() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileLocked()
	return s.state.Clone()
}

func (s *Session) CompleteQuest(sagaID, questID string) (GameState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileLocked()
	next, changed := s.engine.CompleteQuest(s.state, sagaID, questID)
	if !changed {
		return s.state.Clone(), false, nil
	}
	st, err := s.commit(next)
	return st, true, err
}

func (s *Session) AddSaga(name, rawText string) (GameState, quest.Saga, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileLocked()
	next, sg := s.engine.AddSaga(s.state, name, rawText)
	st, err := s.commit(next)
	return st, sg, err
}

func (s *Session) DeleteSaga(sagaID string) (GameState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileLocked()
	next, changed := s.engine.DeleteSaga(s.state, sagaID)
	if !changed {
		return s.state.Clone(), false, nil
	}
	st, err := s.commit(next)
	return st, true, err
}

func (s *Session) GrantExperience(amount int) (GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileLocked()
	return s.commit(s.engine.GrantExperience(s.state, amount))
}

func (s *Session) AddGold(amount int) (GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileLocked()
	return s.commit(s.engine.AddGold(s.state, amount))
}

func (s *Session) RemoveGold(amount int) (GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileLocked()
	return s.commit(s.engine.RemoveGold(s.state, amount))
}

func (s *Session) AddMapPoint(p atlas.MapPoint) (GameState, atlas.MapPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileLocked()
	next, created := s.engine.AddMapPoint(s.state, p)
	st, err := s.commit(next)
	return st, created, err
}

func (s *Session) AddPhotoToPoint(pointID string, photo atlas.MapPhoto) (GameState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileLocked()
	next, changed := s.engine.AddPhotoToPoint(s.state, pointID, photo)
	if !changed {
		return s.state.Clone(), false, nil
	}
	st, err := s.commit(next)
	return st, true, err
}

func (s *Session) TakeDamage(amount int) (GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileLocked()
	return s.commit(s.engine.TakeDamage(s.state, amount))
}

func (s *Session) Heal(amount int) (GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileLocked()
	return s.commit(s.engine.Heal(s.state, amount))
}

func (s *Session) AddTavernTokens(amount int) (GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileLocked()
	return s.commit(s.engine.AddTavernTokens(s.state, amount))
}

func (s *Session) SpendTavernTokens(amount int) (GameState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileLocked()
	next, ok := s.engine.SpendTavernTokens(s.state, amount)
	if !ok {
		return s.state.Clone(), false, nil
	}
	st, err := s.commit(next)
	return st, true, err
}

func (s *Session) DrawReward() (GameState, tavern.Reward, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileLocked()
	next, reward, ok := s.engine.DrawReward(s.state)
	if !ok {
		return s.state.Clone(), tavern.Reward{}, false, nil
	}
	st, err := s.commit(next)
	return st, reward, true, err
}

func (s *Session) SetTavernSkin(skin tavern.Skin) (GameState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileLocked()
	next, ok := s.engine.SetTavernSkin(s.state, skin)
	if !ok {
		return s.state.Clone(), false, nil
	}
	st, err := s.commit(next)
	return st, true, err
}

func (s *Session) UpdatePlayerName(name string) (GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileLocked()
	return s.commit(s.engine.UpdatePlayerName(s.state, name))
}

// View is the read model collaborators render from.
type View struct {
	State          GameState    `json:"state"`
	Weekday        string       `json:"weekday"`
	TodaysQuests   []TodayQuest `json:"todaysQuests"`
	IsExhausted    bool         `json:"isExhausted"`
	Title          string       `json:"title"`
	GoldFormatted  string       `json:"goldFormatted"`
	Stats          Stats        `json:"stats"`
	TavernGreeting string       `json:"tavernGreeting"`
}

// View computes the derived projections on demand; nothing here is
// cached in persisted state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileLocked()

	st := s.state.Clone()
	weekday := WeekdayName(s.engine.now())
	return View{
		State:          st,
		Weekday:        weekday,
		TodaysQuests:   TodaysQuests(st, weekday),
		IsExhausted:    IsExhausted(st),
		Title:          PlayerTitle(st.Level),
		GoldFormatted:  FormatGold(st.Attributes.GOLD),
		Stats:          StatsFor(st),
		TavernGreeting: tavern.Greeting(st.TavernSkin),
	}
}
