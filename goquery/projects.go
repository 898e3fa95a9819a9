package goquery

import (
	"encoding/json"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kickprof"
)

// projectPayload mirrors one element of the data-projects JSON array.
// Pointer fields distinguish an absent key from an explicit empty value so
// that only truly missing fields fall back to the "Unknown" sentinel.
type projectPayload struct {
	Name     *string `json:"name"`
	State    *string `json:"state"`
	Pledged  float64 `json:"pledged"`
	Goal     float64 `json:"goal"`
	Slug     string  `json:"slug"`
	Category struct {
		Parents []struct {
			Name *string `json:"name"`
		} `json:"parents"`
	} `json:"category"`
}

// ExtractProjects parses the inline JSON payload on the created-projects
// page into project summaries, preserving source order.
//
// An absent data-projects container or malformed JSON yields an empty
// sequence, never an error: a creator may have zero projects, and list
// pages may fail to render.
func ExtractProjects(doc *goquery.Document) []kickprof.ProjectSummary {
	projects := []kickprof.ProjectSummary{}

	attr, exists := doc.Find("div[data-projects]").First().Attr("data-projects")
	if !exists || attr == "" {
		return projects
	}

	var payloads []projectPayload
	if err := json.Unmarshal([]byte(attr), &payloads); err != nil {
		return projects
	}

	for _, p := range payloads {
		var percentFunded *int
		if p.Goal > 0 {
			percent := int(p.Pledged / p.Goal * 100)
			percentFunded = &percent
		}

		categories := make([]string, 0, len(p.Category.Parents))
		for _, parent := range p.Category.Parents {
			categories = append(categories, textOrUnknown(parent.Name))
		}

		projects = append(projects, kickprof.ProjectSummary{
			Title:         textOrUnknown(p.Name),
			Status:        textOrUnknown(p.State),
			PercentFunded: percentFunded,
			Categories:    categories,
			ProjectURL:    kickprof.ProjectURL(p.Slug),
		})
	}

	return projects
}

func textOrUnknown(s *string) string {
	if s == nil {
		return kickprof.UnknownValue
	}
	return *s
}
