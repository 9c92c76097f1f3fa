package game

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"liferpg/internal/atlas"
	"liferpg/internal/config"
	"liferpg/internal/quest"
	"liferpg/internal/tavern"
)

// xpPerLevel is the only place the leveling curve is defined. Level is
// always derived from total XP; nothing sets it directly.
const xpPerLevel = 100

func levelFor(totalXP int) int {
	return totalXP/xpPerLevel + 1
}

// Engine applies progression rules as pure value transforms: every
// operation takes a state and returns a new one, leaving the input
// untouched. Time and randomness come from injected sources.
type Engine struct {
	Clock   Clock
	Balance config.Balance
	Rewards tavern.Table
	Rand    *rand.Rand
}

func NewEngine(clock Clock, balance config.Balance) Engine {
	return Engine{
		Clock:   clock,
		Balance: balance,
		Rewards: tavern.DefaultTable,
		Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (e Engine) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

func grant(s *GameState, xp int) {
	s.TotalXP += xp
	s.Level = levelFor(s.TotalXP)
}

// GrantExperience adds XP and rederives the level.
func (e Engine) GrantExperience(s GameState, amount int) GameState {
	s = s.Clone()
	grant(&s, amount)
	return s
}

// AddSaga parses the raw text into quests and appends the new saga.
func (e Engine) AddSaga(s GameState, name, rawText string) (GameState, quest.Saga) {
	s = s.Clone()
	sagaID := "saga-" + uuid.NewString()[:8]
	sg := quest.Saga{
		ID:        sagaID,
		Name:      strings.TrimSpace(name),
		RawText:   rawText,
		Quests:    quest.Parse(sagaID, rawText),
		CreatedAt: e.now(),
	}
	if sg.Quests == nil {
		sg.Quests = []quest.Quest{}
	}
	s.Sagas = append(s.Sagas, sg)
	return s, sg
}

// DeleteSaga removes a saga and its quests. Unknown IDs are a no-op.
func (e Engine) DeleteSaga(s GameState, sagaID string) (GameState, bool) {
	s = s.Clone()
	for i, sg := range s.Sagas {
		if sg.ID == sagaID {
			s.Sagas = append(s.Sagas[:i], s.Sagas[i+1:]...)
			return s, true
		}
	}
	return s, false
}

// CompleteQuest marks a quest done, grants XP and the quest's attribute
// gain. Completing an already-completed or unknown quest changes
// nothing, so calling it twice equals calling it once.
func (e Engine) CompleteQuest(s GameState, sagaID, questID string) (GameState, bool) {
	s = s.Clone()
	for i := range s.Sagas {
		if s.Sagas[i].ID != sagaID {
			continue
		}
		for j := range s.Sagas[i].Quests {
			q := &s.Sagas[i].Quests[j]
			if q.ID != questID {
				continue
			}
			if q.Completed {
				return s, false
			}
			q.Completed = true
			grant(&s, e.Balance.QuestXP)
			s.Attributes.Add(q.Attribute, e.Balance.QuestAttributeGain)
			return s, true
		}
	}
	return s, false
}

// AddGold credits the GOLD ledger.
func (e Engine) AddGold(s GameState, amount int) GameState {
	s = s.Clone()
	s.Attributes.GOLD += amount
	return s
}

// RemoveGold debits the GOLD ledger, flooring at zero.
func (e Engine) RemoveGold(s GameState, amount int) GameState {
	s = s.Clone()
	s.Attributes.GOLD -= amount
	if s.Attributes.GOLD < 0 {
		s.Attributes.GOLD = 0
	}
	return s
}

// AddMapPoint appends a discovered place and pays the discovery bonus.
func (e Engine) AddMapPoint(s GameState, p atlas.MapPoint) (GameState, atlas.MapPoint) {
	s = s.Clone()
	p.ID = "point-" + uuid.NewString()[:8]
	p.DiscoveredAt = e.now()
	if p.Photos == nil {
		p.Photos = []atlas.MapPhoto{}
	}
	grant(&s, e.Balance.MapPointXP)
	s.Attributes.EXPL += e.Balance.MapPointEXPLGain
	s.MapPoints = append(s.MapPoints, p)
	return s, p
}

// AddPhotoToPoint appends a photo to an existing place. Unknown point
// IDs are a no-op.
func (e Engine) AddPhotoToPoint(s GameState, pointID string, photo atlas.MapPhoto) (GameState, bool) {
	s = s.Clone()
	for i := range s.MapPoints {
		if s.MapPoints[i].ID != pointID {
			continue
		}
		if photo.Timestamp.IsZero() {
			photo.Timestamp = e.now()
		}
		s.MapPoints[i].Photos = append(s.MapPoints[i].Photos, photo)
		grant(&s, e.Balance.PhotoXP)
		return s, true
	}
	return s, false
}

// TakeDamage lowers HP, never below zero.
func (e Engine) TakeDamage(s GameState, amount int) GameState {
	s = s.Clone()
	s.HP -= amount
	if s.HP < 0 {
		s.HP = 0
	}
	return s
}

// Heal raises HP, never above the maximum.
func (e Engine) Heal(s GameState, amount int) GameState {
	s = s.Clone()
	s.HP += amount
	if s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
	return s
}

// AddTavernTokens credits the token ledger.
func (e Engine) AddTavernTokens(s GameState, amount int) GameState {
	s = s.Clone()
	s.TavernTokens += amount
	return s
}

// SpendTavernTokens debits tokens; it refuses the spend rather than go
// negative.
func (e Engine) SpendTavernTokens(s GameState, amount int) (GameState, bool) {
	s = s.Clone()
	if s.TavernTokens < amount {
		return s, false
	}
	s.TavernTokens -= amount
	return s, true
}

// DrawReward spends one tavern token and rolls the reward table.
func (e Engine) DrawReward(s GameState) (GameState, tavern.Reward, bool) {
	s, ok := e.SpendTavernTokens(s, 1)
	if !ok {
		return s, tavern.Reward{}, false
	}
	return s, e.Rewards.Roll(e.Rand), true
}

// SetTavernSkin switches the cosmetic theme; unknown skins are refused.
func (e Engine) SetTavernSkin(s GameState, skin tavern.Skin) (GameState, bool) {
	if !skin.Valid() {
		return s, false
	}
	s = s.Clone()
	s.TavernSkin = skin
	return s, true
}

// UpdatePlayerName renames the player; blank names are ignored.
func (e Engine) UpdatePlayerName(s GameState, name string) GameState {
	name = strings.TrimSpace(name)
	if name == "" {
		return s
	}
	s = s.Clone()
	s.PlayerName = name
	return s
}
