package entities

// edge is one person/interest pair. Nodes are compared by pointer so edges
// can be built before the store has assigned ids.
type edge struct {
	person   *Person
	interest *Interest
}

// Graph holds people, interests and the symmetric edge set between them.
//
// Each edge is stored exactly once. The per-node views (InterestsOf and
// PeopleOf) are derived from that single edge list, so a person has an
// interest if and only if the interest has the person.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	people    []*Person
	interests []*Interest
	known     map[any]struct{}

	edges []edge
	index map[edge]struct{}
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		known: make(map[any]struct{}),
		index: make(map[edge]struct{}),
	}
}

// AddPersonNode registers a person without any edges.
// Registration order is the order People returns.
func (g *Graph) AddPersonNode(p *Person) {
	if _, ok := g.known[p]; ok {
		return
	}
	g.known[p] = struct{}{}
	g.people = append(g.people, p)
}

// AddInterestNode registers an interest without any edges.
func (g *Graph) AddInterestNode(i *Interest) {
	if _, ok := g.known[i]; ok {
		return
	}
	g.known[i] = struct{}{}
	g.interests = append(g.interests, i)
}

// AddInterest adds interest to the person's set, and the person to the
// interest's set. Adding an existing pair is a no-op.
func (g *Graph) AddInterest(p *Person, i *Interest) {
	g.link(p, i)
}

// AddPerson is the mirror of AddInterest.
func (g *Graph) AddPerson(i *Interest, p *Person) {
	g.link(p, i)
}

func (g *Graph) link(p *Person, i *Interest) {
	g.AddPersonNode(p)
	g.AddInterestNode(i)

	e := edge{person: p, interest: i}
	if _, ok := g.index[e]; ok {
		return
	}
	g.index[e] = struct{}{}
	g.edges = append(g.edges, e)
}

// HasEdge reports whether p and i are associated.
func (g *Graph) HasEdge(p *Person, i *Interest) bool {
	_, ok := g.index[edge{person: p, interest: i}]
	return ok
}

// InterestsOf returns the interests of p in the order the edges were added.
func (g *Graph) InterestsOf(p *Person) []*Interest {
	var out []*Interest
	for _, e := range g.edges {
		if e.person == p {
			out = append(out, e.interest)
		}
	}
	return out
}

// PeopleOf returns the people holding i in the order the edges were added.
func (g *Graph) PeopleOf(i *Interest) []*Person {
	var out []*Person
	for _, e := range g.edges {
		if e.interest == i {
			out = append(out, e.person)
		}
	}
	return out
}

// People returns all registered people in registration order.
func (g *Graph) People() []*Person {
	out := make([]*Person, len(g.people))
	copy(out, g.people)
	return out
}

// Interests returns all registered interests in registration order.
func (g *Graph) Interests() []*Interest {
	out := make([]*Interest, len(g.interests))
	copy(out, g.interests)
	return out
}

// Associations returns one Association per edge, in edge order, using the
// nodes' current ids. Call it after the nodes have been saved.
func (g *Graph) Associations() []Association {
	out := make([]Association, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, Association{
			PersonID:   e.person.ID,
			InterestID: e.interest.ID,
		})
	}
	return out
}

// Len returns the number of edges.
func (g *Graph) Len() int {
	return len(g.edges)
}
