package render

import "strings"

// MaxConcepts is the number of concept cards a study card can hold.
const MaxConcepts = 4

// ImageMetadata is the structured description of one study card.
type ImageMetadata struct {
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle"`
	Category     Category `json:"category"`
	KeyConcepts  []string `json:"keyConcepts"`
	CodeSnippet  string   `json:"codeSnippet"`
	InterviewTip string   `json:"interviewTip"`
}

// DefaultMetadata is the card used when the model's metadata cannot be parsed.
func DefaultMetadata(topic string) ImageMetadata {
	return ImageMetadata{
		Title:    topic,
		Subtitle: "Placement preparation essentials",
		Category: CategoryGeneral,
		KeyConcepts: []string{
			"Core Concepts",
			"Key Terminology",
			"Common Patterns",
			"Interview Focus",
		},
		CodeSnippet:  "",
		InterviewTip: "Explain the fundamentals in your own words, then back them up with one concrete example.",
	}
}

// Normalize trims every field, fills a missing title from topic, drops blank
// concepts and keeps at most MaxConcepts of them.
func (m ImageMetadata) Normalize(topic string) ImageMetadata {
	out := ImageMetadata{
		Title:        strings.TrimSpace(m.Title),
		Subtitle:     strings.TrimSpace(m.Subtitle),
		Category:     Category(strings.ToLower(strings.TrimSpace(string(m.Category)))),
		CodeSnippet:  strings.TrimSpace(m.CodeSnippet),
		InterviewTip: strings.TrimSpace(m.InterviewTip),
	}
	if out.Title == "" {
		out.Title = strings.TrimSpace(topic)
	}
	if out.Category == "" {
		out.Category = CategoryGeneral
	}
	for _, c := range m.KeyConcepts {
		if c = strings.TrimSpace(c); c != "" {
			out.KeyConcepts = append(out.KeyConcepts, c)
		}
		if len(out.KeyConcepts) == MaxConcepts {
			break
		}
	}
	return out
}
