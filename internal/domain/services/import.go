package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ersonp/affinity/internal/domain/entities"
	"github.com/ersonp/affinity/internal/infrastructure/parsers"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool // Validate without saving
}

// ImportError describes one rejected row of an import.
type ImportError struct {
	Line    int    // Line number (1-indexed, 0 if unknown)
	Field   string // person or interest
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Linked  int           `json:"linked"`
	Skipped int           `json:"skipped"` // pairs already linked
	Created int           `json:"created"` // new people and interests
	Errors  []ImportError `json:"errors,omitempty"`
}

// ImportService merges person/interest pairs into the stored graph.
type ImportService struct {
	graphs *GraphService
	logger *zap.Logger
}

// NewImportService creates a new ImportService.
func NewImportService(graphs *GraphService, logger *zap.Logger) *ImportService {
	return &ImportService{
		graphs: graphs,
		logger: logger,
	}
}

// Import validates raw links and adds the valid ones to the stored graph.
// Names match existing people and interests case-insensitively. Invalid
// rows are reported in the result and do not stop the import.
func (s *ImportService) Import(ctx context.Context, raws []parsers.RawLink, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	g, err := s.graphs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading graph: %w", err)
	}
	m := newGraphMerger(g)

	for idx := range raws {
		raw := &raws[idx]
		lineNum := raw.LineNum
		if lineNum == 0 {
			lineNum = idx + 1
		}

		p, i, ierr := validateRawLink(raw, lineNum)
		if ierr != nil {
			result.Errors = append(result.Errors, *ierr)
			continue
		}

		p, i = m.person(p), m.interest(i)
		if g.HasEdge(p, i) {
			result.Skipped++
			continue
		}
		g.AddInterest(p, i)
		result.Linked++
	}
	result.Created = m.created

	if opts.DryRun || (result.Linked == 0 && result.Created == 0) {
		return result, nil
	}

	if err := s.graphs.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("saving graph: %w", err)
	}

	s.logger.Info("import finished",
		zap.Int("linked", result.Linked),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

// validateRawLink builds the person and interest named by raw.
func validateRawLink(raw *parsers.RawLink, lineNum int) (*entities.Person, *entities.Interest, *ImportError) {
	if strings.TrimSpace(raw.Person) == "" {
		return nil, nil, &ImportError{Line: lineNum, Field: "person", Message: "missing required field: person"}
	}
	if strings.TrimSpace(raw.Interest) == "" {
		return nil, nil, &ImportError{Line: lineNum, Field: "interest", Message: "missing required field: interest"}
	}

	p := entities.NewPerson(raw.Person)
	if err := p.Validate(); err != nil {
		return nil, nil, &ImportError{Line: lineNum, Field: "person", Value: raw.Person, Message: err.Error()}
	}
	i := entities.NewInterest(raw.Interest)
	if err := i.Validate(); err != nil {
		return nil, nil, &ImportError{Line: lineNum, Field: "interest", Value: raw.Interest, Message: err.Error()}
	}
	return p, i, nil
}

// graphMerger resolves names against the nodes already in a graph, adding
// new nodes the first time a name is seen.
type graphMerger struct {
	g         *entities.Graph
	people    map[string]*entities.Person
	interests map[string]*entities.Interest
	created   int
}

func newGraphMerger(g *entities.Graph) *graphMerger {
	m := &graphMerger{
		g:         g,
		people:    make(map[string]*entities.Person),
		interests: make(map[string]*entities.Interest),
	}
	for _, p := range g.People() {
		m.people[p.NormalizedName()] = p
	}
	for _, i := range g.Interests() {
		m.interests[i.NormalizedName()] = i
	}
	return m
}

func (m *graphMerger) person(p *entities.Person) *entities.Person {
	if existing, ok := m.people[p.NormalizedName()]; ok {
		return existing
	}
	m.people[p.NormalizedName()] = p
	m.g.AddPersonNode(p)
	m.created++
	return p
}

func (m *graphMerger) interest(i *entities.Interest) *entities.Interest {
	if existing, ok := m.interests[i.NormalizedName()]; ok {
		return existing
	}
	m.interests[i.NormalizedName()] = i
	m.g.AddInterestNode(i)
	m.created++
	return i
}
