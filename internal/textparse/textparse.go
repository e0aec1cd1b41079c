// Package textparse extracts structured travel data from generative-agent
// prose. Every function is a pure best-effort heuristic: it never fails and
// returns empty collections when nothing matches, so parsing strategy can be
// swapped without touching the surrounding services.
package textparse

import (
	"regexp"
	"strings"
)

var (
	pricePattern    = regexp.MustCompile(`(?i)(₹\s*[\d,]+|INR\s*[\d,]+|Rs\.?\s*[\d,]+|\$\s*[\d,]+|[\d,]+\s*INR)`)
	timePattern     = regexp.MustCompile(`\d{1,2}:\d{2}(?:\s*[AaPp][Mm])?`)
	durationPattern = regexp.MustCompile(`(?i)(\d+h\s*\d+m(?:in)?|\d+\s*hours?\s*\d+\s*minutes?|\d+:\d{2})`)
	numberPattern   = regexp.MustCompile(`[\d,]+`)
	headingMarkers  = []string{"**", "##", "###"}
)

// ExtractPrice returns the first currency amount in text, or "".
func ExtractPrice(text string) string {
	return strings.TrimSpace(pricePattern.FindString(text))
}

// ExtractTime returns the first clock time in text, or "".
func ExtractTime(text string) string {
	return strings.TrimSpace(timePattern.FindString(text))
}

// ExtractDuration returns the first duration-like token in text, or "".
func ExtractDuration(text string) string {
	return strings.TrimSpace(durationPattern.FindString(text))
}

// PriceValue parses the numeric part of a price string for sorting.
// Unparseable prices sort last.
func PriceValue(price string) float64 {
	match := numberPattern.FindString(price)
	if match == "" {
		return maxPrice
	}
	var value float64
	for _, r := range match {
		if r == ',' {
			continue
		}
		value = value*10 + float64(r-'0')
	}
	if value == 0 {
		return maxPrice
	}
	return value
}

const maxPrice = 1 << 50

// hasHeadingMarker reports markdown-style headings only. Numbered list
// items are bullets, not section boundaries.
func hasHeadingMarker(line string) bool {
	for _, marker := range headingMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

func isHeading(line string) bool {
	if hasHeadingMarker(line) {
		return true
	}
	trimmed := strings.TrimSpace(line)
	if len(trimmed) > 1 && trimmed[1] == '.' && trimmed[0] >= '1' && trimmed[0] <= '9' {
		return true
	}
	return false
}

func cleanLine(line string) string {
	line = strings.NewReplacer("*", "", "#", "", "•", "", "●", "").Replace(line)
	line = strings.TrimLeft(line, "-–— \t")
	return strings.TrimSpace(line)
}

// nonEmptyLines splits content into trimmed, non-blank lines.
func nonEmptyLines(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// bulletItems collects cleaned bullet/numbered items from a block of text,
// bounded by limit.
func bulletItems(section string, limit int) []string {
	items := []string{}
	for _, line := range nonEmptyLines(section) {
		trimmed := strings.TrimSpace(line)
		isBullet := strings.HasPrefix(trimmed, "-") ||
			strings.HasPrefix(trimmed, "*") ||
			strings.HasPrefix(trimmed, "•") ||
			(len(trimmed) > 1 && trimmed[0] >= '1' && trimmed[0] <= '9' && trimmed[1] == '.')
		if !isBullet {
			continue
		}
		item := cleanLine(trimmed)
		if item == "" {
			continue
		}
		items = append(items, item)
		if len(items) >= limit {
			break
		}
	}
	return items
}

// sectionAfter returns the text between the first heading containing any of
// the given keywords and the next heading, or "" when no section matches.
func sectionAfter(content string, keywords ...string) string {
	lines := strings.Split(content, "\n")
	start := -1
	for i, line := range lines {
		if !hasHeadingMarker(line) {
			continue
		}
		lower := strings.ToLower(line)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				start = i + 1
				break
			}
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		return ""
	}
	end := len(lines)
	for i := start; i < len(lines); i++ {
		if hasHeadingMarker(lines[i]) {
			end = i
			break
		}
	}
	return strings.Join(lines[start:end], "\n")
}
