package game

import (
	"strconv"

	"liferpg/internal/quest"
)

// exhaustionPct is the HP share below which the player reads as
// exhausted.
const exhaustionPct = 30

// IsExhausted reports whether HP fell under the exhaustion threshold.
func IsExhausted(s GameState) bool {
	return s.HP*100 < s.MaxHP*exhaustionPct
}

// TodayQuest pairs a quest with the saga that owns it, for callers that
// need to complete it later.
type TodayQuest struct {
	SagaID string      `json:"sagaId"`
	Quest  quest.Quest `json:"quest"`
}

// TodaysQuests flattens every saga's quests scheduled for the given
// weekday, including the everyday ones.
func TodaysQuests(s GameState, weekday string) []TodayQuest {
	out := []TodayQuest{}
	for _, sg := range s.Sagas {
		for _, q := range sg.Quests {
			if q.Day == weekday || q.Day == quest.DayAll {
				out = append(out, TodayQuest{SagaID: sg.ID, Quest: q})
			}
		}
	}
	return out
}

// PlayerTitle maps a level to its honorific band.
func PlayerTitle(level int) string {
	switch {
	case level <= 5:
		return "Novato"
	case level <= 10:
		return "Aventureiro"
	case level <= 20:
		return "Veterano"
	case level <= 40:
		return "Herói"
	default:
		return "Lenda"
	}
}

// FormatGold renders the GOLD ledger as pt-BR currency, e.g.
// "R$ 1.234,00". Done by hand so the engine carries no locale tables.
func FormatGold(gold int) string {
	if gold < 0 {
		gold = 0
	}
	digits := strconv.Itoa(gold)
	var grouped []byte
	for i, c := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, c)
	}
	return "R$ " + string(grouped) + ",00"
}

// Stats are the profile counters shown alongside the raw state.
type Stats struct {
	CompletedQuests int `json:"completedQuests"`
	TotalQuests     int `json:"totalQuests"`
	AttributePoints int `json:"attributePoints"`
	PlacesFound     int `json:"placesFound"`
}

func StatsFor(s GameState) Stats {
	st := Stats{
		AttributePoints: s.Attributes.Total(),
		PlacesFound:     len(s.MapPoints),
	}
	for _, sg := range s.Sagas {
		st.TotalQuests += len(sg.Quests)
		st.CompletedQuests += sg.CompletedCount()
	}
	return st
}
