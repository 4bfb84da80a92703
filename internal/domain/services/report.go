package services

import (
	"strings"

	"github.com/ersonp/affinity/internal/domain/entities"
)

// Share is one report entry: Person holds Interest together with With.
// With is empty when nobody else holds the interest.
type Share struct {
	Person   *entities.Person
	Interest *entities.Interest
	With     []*entities.Person
}

// Line renders the entry on one line, e.g. "Sabrina shares Volleyball with: Jim".
func (s Share) Line() string {
	var b strings.Builder
	b.WriteString(s.Person.Name)
	b.WriteString(" shares ")
	b.WriteString(s.Interest.Name)
	b.WriteString(" with:")
	for idx, p := range s.With {
		if idx == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
	}
	return b.String()
}

// Report lists, for every person in g and every interest they hold, the other
// people holding that interest. Order follows the graph: people in
// registration order, interests and matches in edge order.
func Report(g *entities.Graph) []Share {
	var shares []Share
	for _, p := range g.People() {
		for _, i := range g.InterestsOf(p) {
			share := Share{Person: p, Interest: i}
			for _, match := range g.PeopleOf(i) {
				if match != p {
					share.With = append(share.With, match)
				}
			}
			shares = append(shares, share)
		}
	}
	return shares
}
