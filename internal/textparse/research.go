package textparse

import "strings"

// Research holds destination-research sections extracted from agent prose.
type Research struct {
	Summary         string   `bson:"research_summary" json:"research_summary"`
	Attractions     []string `bson:"attractions" json:"attractions"`
	Recommendations []string `bson:"recommendations" json:"recommendations"`
	SafetyTips      []string `bson:"safety_tips" json:"safety_tips"`
	CulturalInfo    []string `bson:"cultural_info" json:"cultural_info"`
}

const (
	summaryMaxLines = 6
	listMaxItems    = 10
)

// ResearchSections extracts a summary paragraph and the attraction,
// recommendation, safety and culture lists from research prose.
func ResearchSections(content string) Research {
	r := Research{
		Attractions:     []string{},
		Recommendations: []string{},
		SafetyTips:      []string{},
		CulturalInfo:    []string{},
	}

	lines := nonEmptyLines(content)
	var summary []string
	for _, line := range lines {
		if isHeading(line) {
			break
		}
		summary = append(summary, cleanLine(line))
		if len(summary) >= summaryMaxLines {
			break
		}
	}
	r.Summary = strings.Join(summary, " ")

	if section := sectionAfter(content, "attraction", "sight", "place"); section != "" {
		r.Attractions = bulletItems(section, listMaxItems)
	}
	if section := sectionAfter(content, "recommend", "tip", "advice"); section != "" {
		r.Recommendations = bulletItems(section, listMaxItems)
	}
	if section := sectionAfter(content, "safety", "caution", "warning"); section != "" {
		r.SafetyTips = bulletItems(section, listMaxItems)
	}
	if section := sectionAfter(content, "culture", "custom", "etiquette"); section != "" {
		r.CulturalInfo = bulletItems(section, listMaxItems)
	}
	return r
}
