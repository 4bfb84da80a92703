package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/affinity/internal/domain/entities"
	"github.com/ersonp/affinity/internal/domain/services"
)

// GraphHandler handles reporting, linking and listing.
type GraphHandler struct {
	graphService *services.GraphService
}

// NewGraphHandler creates a new GraphHandler.
func NewGraphHandler(graphService *services.GraphService) *GraphHandler {
	return &GraphHandler{
		graphService: graphService,
	}
}

// ReportResult contains the relationship report.
type ReportResult struct {
	People []*entities.Person
	Shares []services.Share
}

// HandleReport loads the stored graph and builds the relationship report.
func (h *GraphHandler) HandleReport(ctx context.Context) (*ReportResult, error) {
	g, err := h.graphService.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading graph: %w", err)
	}
	return &ReportResult{
		People: g.People(),
		Shares: services.Report(g),
	}, nil
}

// HandleLink associates a person with an interest by name.
func (h *GraphHandler) HandleLink(ctx context.Context, personName, interestName string) (*services.LinkResult, error) {
	return h.graphService.Link(ctx, personName, interestName)
}

// PersonSummary is a person with the names of their interests.
type PersonSummary struct {
	Person    *entities.Person `json:"person"`
	Interests []string         `json:"interests"`
}

// InterestSummary is an interest with the names of the people holding it.
type InterestSummary struct {
	Interest *entities.Interest `json:"interest"`
	People   []string           `json:"people"`
}

// HandleListPeople returns every person with their interests.
func (h *GraphHandler) HandleListPeople(ctx context.Context) ([]PersonSummary, error) {
	g, err := h.graphService.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading graph: %w", err)
	}

	people := g.People()
	out := make([]PersonSummary, 0, len(people))
	for _, p := range people {
		interests := g.InterestsOf(p)
		names := make([]string, 0, len(interests))
		for _, i := range interests {
			names = append(names, i.Name)
		}
		out = append(out, PersonSummary{Person: p, Interests: names})
	}
	return out, nil
}

// HandleListInterests returns every interest with the people holding it.
func (h *GraphHandler) HandleListInterests(ctx context.Context) ([]InterestSummary, error) {
	g, err := h.graphService.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading graph: %w", err)
	}

	interests := g.Interests()
	out := make([]InterestSummary, 0, len(interests))
	for _, i := range interests {
		people := g.PeopleOf(i)
		names := make([]string, 0, len(people))
		for _, p := range people {
			names = append(names, p.Name)
		}
		out = append(out, InterestSummary{Interest: i, People: names})
	}
	return out, nil
}
