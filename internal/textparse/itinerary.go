package textparse

import (
	"strconv"
	"strings"
)

// DayActivity is a single scheduled item within a day plan.
type DayActivity struct {
	Time     string `bson:"time,omitempty" json:"time,omitempty"`
	Activity string `bson:"activity" json:"activity"`
}

// DayPlan is one day of an itinerary extracted from agent prose.
type DayPlan struct {
	Day        int           `bson:"day" json:"day"`
	Activities []DayActivity `bson:"activities" json:"activities"`
	Meals      []string      `bson:"meals,omitempty" json:"meals,omitempty"`
	Tips       []string      `bson:"tips,omitempty" json:"tips,omitempty"`
}

// Itinerary is the structured form of a generated itinerary.
type Itinerary struct {
	DailyPlans         []DayPlan `bson:"daily_plans" json:"daily_plans"`
	TotalEstimatedCost string    `bson:"total_estimated_cost,omitempty" json:"total_estimated_cost,omitempty"`
	TravelTips         []string  `bson:"travel_tips" json:"travel_tips"`
	PackingSuggestions []string  `bson:"packing_suggestions" json:"packing_suggestions"`
}

var mealWords = []string{"breakfast", "lunch", "dinner", "brunch"}

// ItineraryPlan extracts per-day plans plus overall cost, tips and packing
// suggestions from itinerary prose. Days the agent skipped come back with
// empty activity lists so callers always see numDays entries.
func ItineraryPlan(content string, numDays int) Itinerary {
	out := Itinerary{
		DailyPlans:         make([]DayPlan, 0, numDays),
		TravelTips:         []string{},
		PackingSuggestions: []string{},
	}

	sections := daySections(content, numDays)
	for day := 1; day <= numDays; day++ {
		plan := DayPlan{Day: day, Activities: []DayActivity{}}
		if section, ok := sections[day]; ok {
			plan.Activities = dayActivities(section)
			plan.Meals = dayMeals(section)
		}
		out.DailyPlans = append(out.DailyPlans, plan)
	}

	if cost := ExtractPrice(sectionAfter(content, "total", "cost", "budget")); cost != "" {
		out.TotalEstimatedCost = cost
	}
	if section := sectionAfter(content, "tip", "advice", "note"); section != "" {
		out.TravelTips = bulletItems(section, listMaxItems)
	}
	if section := sectionAfter(content, "pack", "bring", "luggage"); section != "" {
		out.PackingSuggestions = bulletItems(section, listMaxItems)
	}
	return out
}

// daySections splits content on "Day N" headings.
func daySections(content string, numDays int) map[int]string {
	sections := map[int]string{}
	lines := strings.Split(content, "\n")

	currentDay := 0
	var current []string
	flush := func() {
		if currentDay >= 1 && currentDay <= numDays && len(current) > 0 {
			sections[currentDay] = strings.Join(current, "\n")
		}
		current = nil
	}

	for _, line := range lines {
		if day := matchDayHeading(line, numDays); day > 0 {
			flush()
			currentDay = day
			continue
		}
		current = append(current, line)
	}
	flush()
	return sections
}

// matchDayHeading reads the full day number so "Day 10" is never taken
// for a "Day 1" prefix match.
func matchDayHeading(line string, numDays int) int {
	lower := strings.ToLower(cleanLine(line))
	rest, ok := strings.CutPrefix(lower, "day ")
	if !ok {
		return 0
	}
	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return 0
	}
	day, err := strconv.Atoi(rest[:digits])
	if err != nil || day < 1 || day > numDays {
		return 0
	}
	return day
}

func dayActivities(section string) []DayActivity {
	activities := []DayActivity{}
	for _, item := range bulletItems(section, listMaxItems) {
		lower := strings.ToLower(item)
		if isMealLine(lower) {
			continue
		}
		activities = append(activities, DayActivity{
			Time:     ExtractTime(item),
			Activity: item,
		})
	}
	return activities
}

func dayMeals(section string) []string {
	var meals []string
	for _, item := range bulletItems(section, listMaxItems) {
		if isMealLine(strings.ToLower(item)) {
			meals = append(meals, item)
		}
	}
	return meals
}

func isMealLine(lower string) bool {
	for _, meal := range mealWords {
		if strings.Contains(lower, meal) {
			return true
		}
	}
	return false
}
