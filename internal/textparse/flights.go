package textparse

import (
	"sort"
	"strings"
)

// Flight is one flight option extracted from agent prose.
type Flight struct {
	Airline       string `bson:"airline" json:"airline"`
	Price         string `bson:"price" json:"price"`
	TotalDuration string `bson:"total_duration,omitempty" json:"total_duration,omitempty"`
	DepartureTime string `bson:"departure_time,omitempty" json:"departure_time,omitempty"`
	ArrivalTime   string `bson:"arrival_time,omitempty" json:"arrival_time,omitempty"`
	Stops         string `bson:"stops,omitempty" json:"stops,omitempty"`
	BookingInfo   string `bson:"booking_info,omitempty" json:"booking_info,omitempty"`
}

var knownAirlines = map[string]string{
	"indigo":       "IndiGo",
	"air india":    "Air India",
	"spicejet":     "SpiceJet",
	"vistara":      "Vistara",
	"goair":        "Go First",
	"go first":     "Go First",
	"akasa":        "Akasa Air",
	"alliance air": "Alliance Air",
}

const maxFlightOptions = 5

// Flights extracts up to five flight options sorted by ascending price.
func Flights(content string) []Flight {
	sections := splitFlightSections(content)
	flights := make([]Flight, 0, len(sections))
	for _, section := range sections {
		if f, ok := parseFlightSection(section); ok {
			flights = append(flights, f)
		}
	}
	sort.SliceStable(flights, func(i, j int) bool {
		return PriceValue(flights[i].Price) < PriceValue(flights[j].Price)
	})
	if len(flights) > maxFlightOptions {
		flights = flights[:maxFlightOptions]
	}
	return flights
}

func splitFlightSections(content string) []string {
	var sections []string
	var current []string
	for _, line := range nonEmptyLines(content) {
		if isHeading(line) && len(current) > 0 {
			sections = append(sections, strings.Join(current, "\n"))
			current = current[:0]
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		sections = append(sections, strings.Join(current, "\n"))
	}
	return sections
}

func parseFlightSection(section string) (Flight, bool) {
	f := Flight{Airline: "Unknown Airline", Price: "Not Available"}
	knownAirline := false
	lines := nonEmptyLines(section)
	for _, line := range lines {
		lower := strings.ToLower(line)

		if name := matchAirline(lower); name != "" {
			f.Airline = name
			knownAirline = true
		}
		if price := ExtractPrice(line); price != "" && f.Price == "Not Available" {
			f.Price = price
		}
		if strings.Contains(lower, "departure") {
			if t := ExtractTime(line); t != "" {
				f.DepartureTime = t
			}
		}
		if strings.Contains(lower, "arrival") {
			if t := ExtractTime(line); t != "" {
				f.ArrivalTime = t
			}
		}
		if strings.Contains(lower, "duration") || strings.Contains(lower, "travel time") {
			if d := ExtractDuration(line); d != "" {
				f.TotalDuration = d
			}
		}
		if strings.Contains(lower, "stop") || strings.Contains(lower, "direct") || strings.Contains(lower, "non-stop") {
			f.Stops = cleanLine(line)
		}
		if strings.Contains(lower, "booking") || strings.Contains(lower, "website") {
			f.BookingInfo = cleanLine(line)
		}
	}

	// A section with neither a price nor a recognized airline is prose,
	// not an option. The fallback name is cosmetic and must never be what
	// qualifies a section; a "no flights found" apology would otherwise
	// parse as an airline.
	if f.Price == "Not Available" && !knownAirline {
		return Flight{}, false
	}
	if !knownAirline && len(lines) > 0 {
		if name := fallbackAirline(lines[0]); name != "" {
			f.Airline = name
		}
	}
	return f, true
}

func matchAirline(lower string) string {
	for key, name := range knownAirlines {
		if strings.Contains(lower, key) {
			return name
		}
	}
	return ""
}

func fallbackAirline(line string) string {
	words := strings.Fields(cleanLine(line))
	if len(words) == 0 {
		return ""
	}
	if strings.HasSuffix(words[0], ".") {
		words = words[1:]
	}
	if len(words) >= 2 {
		return words[0] + " " + words[1]
	}
	if len(words) == 1 {
		return words[0]
	}
	return ""
}
