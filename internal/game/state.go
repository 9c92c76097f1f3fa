package game

import (
	"time"

	"liferpg/internal/atlas"
	"liferpg/internal/quest"
	"liferpg/internal/tavern"
)

const (
	defaultMaxHP      = 100
	baselineAttribute = 10
)

// Attributes tracks the seven progression values. GOLD is the currency
// ledger and starts at zero, the others at the baseline.
type Attributes struct {
	CON  int `json:"CON"`
	STR  int `json:"STR"`
	DEX  int `json:"DEX"`
	INT  int `json:"INT"`
	WIS  int `json:"WIS"`
	EXPL int `json:"EXPL"`
	GOLD int `json:"GOLD"`
}

func (a Attributes) Get(k quest.Attribute) int {
	switch k {
	case quest.CON:
		return a.CON
	case quest.STR:
		return a.STR
	case quest.DEX:
		return a.DEX
	case quest.INT:
		return a.INT
	case quest.WIS:
		return a.WIS
	case quest.EXPL:
		return a.EXPL
	case quest.GOLD:
		return a.GOLD
	}
	return 0
}

func (a *Attributes) Add(k quest.Attribute, n int) {
	switch k {
	case quest.CON:
		a.CON += n
	case quest.STR:
		a.STR += n
	case quest.DEX:
		a.DEX += n
	case quest.INT:
		a.INT += n
	case quest.WIS:
		a.WIS += n
	case quest.EXPL:
		a.EXPL += n
	case quest.GOLD:
		a.GOLD += n
	}
}

// Total sums every attribute including GOLD.
func (a Attributes) Total() int {
	total := 0
	for _, k := range quest.All {
		total += a.Get(k)
	}
	return total
}

// GameState is the root aggregate. It is owned exclusively by the
// Session; engine operations take a state value and return a new one.
type GameState struct {
	PlayerName    string           `json:"playerName"`
	Level         int              `json:"level"`
	TotalXP       int              `json:"totalXP"`
	HP            int              `json:"hp"`
	MaxHP         int              `json:"maxHP"`
	Attributes    Attributes       `json:"attributes"`
	Sagas         []quest.Saga     `json:"sagas"`
	MapPoints     []atlas.MapPoint `json:"mapPoints"`
	LastCheckDate string           `json:"lastCheckDate"`
	TavernTokens  int              `json:"tavernTokens"`
	TavernSkin    tavern.Skin      `json:"tavernSkin"`
}

// Default returns the documented starting state for a fresh player.
func Default(now time.Time, playerName string, tavernTokens int) GameState {
	return GameState{
		PlayerName: playerName,
		Level:      1,
		TotalXP:    0,
		HP:         defaultMaxHP,
		MaxHP:      defaultMaxHP,
		Attributes: Attributes{
			CON:  baselineAttribute,
			STR:  baselineAttribute,
			DEX:  baselineAttribute,
			INT:  baselineAttribute,
			WIS:  baselineAttribute,
			EXPL: baselineAttribute,
			GOLD: 0,
		},
		Sagas:         []quest.Saga{},
		MapPoints:     []atlas.MapPoint{},
		LastCheckDate: DateString(now),
		TavernTokens:  tavernTokens,
		TavernSkin:    tavern.DefaultSkin,
	}
}

// Clone deep-copies the aggregate so a prior snapshot stays valid after
// the next mutation, even if a save is interrupted.
func (s GameState) Clone() GameState {
	out := s
	out.Sagas = make([]quest.Saga, len(s.Sagas))
	for i, sg := range s.Sagas {
		sg.Quests = append([]quest.Quest(nil), sg.Quests...)
		out.Sagas[i] = sg
	}
	out.MapPoints = make([]atlas.MapPoint, len(s.MapPoints))
	for i, p := range s.MapPoints {
		p.Photos = append([]atlas.MapPhoto(nil), p.Photos...)
		out.MapPoints[i] = p
	}
	return out
}

// Normalize repairs a loaded state so every invariant holds: level is
// rederived from XP, HP is clamped, counters never go negative, and
// missing enum values fall back to their defaults.
func Normalize(s *GameState) {
	if s.MaxHP <= 0 {
		s.MaxHP = defaultMaxHP
	}
	if s.TotalXP < 0 {
		s.TotalXP = 0
	}
	s.Level = levelFor(s.TotalXP)
	if s.HP < 0 {
		s.HP = 0
	}
	if s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
	if s.Attributes.GOLD < 0 {
		s.Attributes.GOLD = 0
	}
	if s.TavernTokens < 0 {
		s.TavernTokens = 0
	}
	if !s.TavernSkin.Valid() {
		s.TavernSkin = tavern.DefaultSkin
	}
	if s.Sagas == nil {
		s.Sagas = []quest.Saga{}
	}
	for i := range s.Sagas {
		if s.Sagas[i].Quests == nil {
			s.Sagas[i].Quests = []quest.Quest{}
		}
	}
	if s.MapPoints == nil {
		s.MapPoints = []atlas.MapPoint{}
	}
	for i := range s.MapPoints {
		if s.MapPoints[i].Photos == nil {
			s.MapPoints[i].Photos = []atlas.MapPhoto{}
		}
	}
}

// DateString is the calendar-day key used for rollover bookkeeping.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}
