package tavern

import "math/rand"

// Skin is the cosmetic theme of the tavern. It has no gameplay effect.
type Skin string

const (
	SkinRustico Skin = "rustico"
	SkinRE4     Skin = "re4"
	SkinSombrio Skin = "sombrio"
	SkinCigana  Skin = "cigana"
)

// DefaultSkin is applied when the persisted state has no valid skin.
const DefaultSkin = SkinRustico

func (s Skin) Valid() bool {
	switch s {
	case SkinRustico, SkinRE4, SkinSombrio, SkinCigana:
		return true
	}
	return false
}

// Greeting returns the merchant's opening line for a skin.
func Greeting(s Skin) string {
	switch s {
	case SkinRE4:
		return "What're ya buyin', stranger?"
	case SkinSombrio:
		return "O destino cobra seu preço..."
	case SkinCigana:
		return "As cartas não mentem, herói."
	default:
		return "Uma bebida e uma história?"
	}
}

// Reward is a real-life prize the merchant hands out for a token.
type Reward struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// TableEntry is a weighted reward entry.
type TableEntry struct {
	Reward Reward
	Weight int
}

// Table is a weighted reward table.
type Table []TableEntry

// DefaultTable holds the merchant's stock.
var DefaultTable = Table{
	{Reward: Reward{ID: "videogame_1h", Label: "1 HORA DE VIDEOGAME"}, Weight: 30},
	{Reward: Reward{ID: "serie_ep", Label: "UM EPISÓDIO DE SÉRIE"}, Weight: 25},
	{Reward: Reward{ID: "sobremesa", Label: "SOBREMESA LIVRE"}, Weight: 20},
	{Reward: Reward{ID: "folga_30m", Label: "30 MINUTOS DE FOLGA"}, Weight: 15},
	{Reward: Reward{ID: "compra_pequena", Label: "UMA COMPRA PEQUENA"}, Weight: 10},
}

// Roll picks one reward from the table. The generator is injected so
// callers can make draws deterministic.
func (t Table) Roll(rng *rand.Rand) Reward {
	total := 0
	for _, entry := range t {
		total += entry.Weight
	}
	// An empty table and an all-zero-weight table are the same non-choice.
	if total <= 0 {
		return Reward{ID: "videogame_1h", Label: "1 HORA DE VIDEOGAME"}
	}

	roll := rng.Intn(total)
	current := 0
	for _, entry := range t {
		current += entry.Weight
		if roll < current {
			return entry.Reward
		}
	}
	return t[len(t)-1].Reward
}
