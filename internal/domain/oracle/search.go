package oracle

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// cardSource adapts a card slice to fuzzy.Source, matching on the
// lowercased name followed by the key.
type cardSource []Card

func (s cardSource) String(i int) string {
	return strings.ToLower(s[i].Name + " " + s[i].Key)
}

func (s cardSource) Len() int { return len(s) }

// SearchCards returns the cards matching query, best match first.
// A blank query returns every card in catalog order.
func SearchCards(cards []Card, query string) []Card {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		out := make([]Card, len(cards))
		copy(out, cards)
		return out
	}

	matches := fuzzy.FindFrom(query, cardSource(cards))
	out := make([]Card, 0, len(matches))
	for _, m := range matches {
		out = append(out, cards[m.Index])
	}
	return out
}
