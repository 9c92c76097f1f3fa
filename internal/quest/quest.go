package quest

import "time"

// Attribute is one of the seven progression tracks. GOLD doubles as the
// currency ledger.
type Attribute string

const (
	CON  Attribute = "CON"
	STR  Attribute = "STR"
	DEX  Attribute = "DEX"
	INT  Attribute = "INT"
	WIS  Attribute = "WIS"
	EXPL Attribute = "EXPL"
	GOLD Attribute = "GOLD"
)

// All lists the attributes in display order.
var All = []Attribute{CON, STR, DEX, INT, WIS, EXPL, GOLD}

// DayAll is the recurrence sentinel for quests that apply every day.
const DayAll = "todos"

// Quest is a single trackable task with an inferred attribute and
// recurrence day. Completed is cleared only by the day rollover.
type Quest struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Attribute Attribute `json:"attribute"`
	Completed bool      `json:"completed"`
	Day       string    `json:"day"`
}

// Saga is a named collection of quests created from one block of
// free-form text. It owns its quests exclusively.
type Saga struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RawText   string    `json:"rawText"`
	Quests    []Quest   `json:"quests"`
	CreatedAt time.Time `json:"createdAt"`
}

// CompletedCount returns how many of the saga's quests are done.
func (s Saga) CompletedCount() int {
	n := 0
	for _, q := range s.Quests {
		if q.Completed {
			n++
		}
	}
	return n
}
