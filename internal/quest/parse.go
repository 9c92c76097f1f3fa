package quest

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

type dayKeyword struct {
	Match     string
	Canonical string
}

// dayKeywords maps weekday tokens to their canonical forms. Full forms
// come first so "segunda-feira" never leaves a "-feira" residue behind.
var dayKeywords = []dayKeyword{
	{"segunda-feira", "segunda-feira"},
	{"terça-feira", "terça-feira"},
	{"terca-feira", "terça-feira"},
	{"quarta-feira", "quarta-feira"},
	{"quinta-feira", "quinta-feira"},
	{"sexta-feira", "sexta-feira"},
	{"segunda", "segunda-feira"},
	{"terça", "terça-feira"},
	{"terca", "terça-feira"},
	{"quarta", "quarta-feira"},
	{"quinta", "quinta-feira"},
	{"sexta", "sexta-feira"},
	{"sábado", "sábado"},
	{"sabado", "sábado"},
	{"domingo", "domingo"},
}

type attrKeyword struct {
	Match string
	Attr  Attribute
}

// attrKeywords is evaluated in order; the first substring hit wins.
var attrKeywords = []attrKeyword{
	{"treino", STR},
	{"academia", STR},
	{"corrida", DEX},
	{"cardio", DEX},
	{"estudo", INT},
	{"leitura", INT},
	{"ler", INT},
	{"meditação", WIS},
	{"meditacao", WIS},
	{"meditar", WIS},
	{"sono", CON},
	{"saúde", CON},
	{"saude", CON},
	{"água", CON},
	{"agua", CON},
	{"viagem", EXPL},
	{"lazer", EXPL},
	{"trabalho", GOLD},
	{"freelance", GOLD},
	{"trampo", GOLD},
}

// Parse turns a raw block of task text into quests for the given saga.
// Entries are split on line breaks and semicolons; blank entries are
// dropped. Day and attribute are inferred from fixed keyword tables, and
// the stored title is the original entry upper-cased with any day label
// stripped. An entry whose title empties after day stripping is kept
// with the canonical day name as its title rather than dropped.
func Parse(sagaID, raw string) []Quest {
	entries := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ';'
	})

	var quests []Quest
	idx := 0
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		day, title := inferDay(entry)
		attr := inferAttribute(entry)

		if title == "" {
			title = day
		}

		quests = append(quests, Quest{
			ID:        fmt.Sprintf("%s-%d-%s", sagaID, idx, newSalt()),
			Title:     strings.ToUpper(title),
			Attribute: attr,
			Completed: false,
			Day:       day,
		})
		idx++
	}
	return quests
}

// inferDay scans the entry for a weekday token. On a hit it returns the
// canonical day and the entry with the token and any label separator
// removed; otherwise it returns DayAll and the entry unchanged.
func inferDay(entry string) (day, title string) {
	for _, kw := range dayKeywords {
		start, end, ok := foldIndex(entry, kw.Match)
		if !ok {
			continue
		}
		rest := entry[:start] + entry[end:]
		rest = strings.TrimSpace(rest)
		rest = strings.TrimLeft(rest, ":-–")
		return kw.Canonical, strings.TrimSpace(rest)
	}
	return DayAll, entry
}

// foldIndex finds the first case-insensitive occurrence of the
// lower-case needle in s and returns its byte span in s itself. Lowering
// can change a rune's UTF-8 width, so offsets into a lowered copy cannot
// be used to slice the original; comparing rune by rune keeps the span
// in s's own byte space.
func foldIndex(s, needle string) (start, end int, ok bool) {
	for i := range s {
		j := i
		matched := true
		for _, nr := range needle {
			r, size := utf8.DecodeRuneInString(s[j:])
			if size == 0 || unicode.ToLower(r) != nr {
				matched = false
				break
			}
			j += size
		}
		if matched {
			return i, j, true
		}
	}
	return 0, 0, false
}

func inferAttribute(entry string) Attribute {
	lower := strings.ToLower(entry)
	for _, kw := range attrKeywords {
		if strings.Contains(lower, kw.Match) {
			return kw.Attr
		}
	}
	return INT
}

// newSalt keeps quest IDs unique even when a saga is re-parsed from the
// same raw text.
func newSalt() string {
	return uuid.NewString()[:8]
}
