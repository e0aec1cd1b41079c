package textparse

import "testing"

const flightContent = `
Here are the best round-trip options from DEL to BOM.

**Option 1: IndiGo**
- Price: ₹8,500 round-trip
- Departure time: 06:15
- Arrival time: 08:20
- Duration: 2h 05m
- Direct flight
- Booking: available on the airline website

**Option 2: Air India**
- Price: ₹11,200
- Departure time: 09:40
- Arrival time: 11:55
- Duration: 2h 15m
- 1 stop via HYD
`

func TestFlightsExtractsSortedOptions(t *testing.T) {
	flights := Flights(flightContent)
	if len(flights) != 2 {
		t.Fatalf("expected 2 flights, got %d", len(flights))
	}
	if flights[0].Airline != "IndiGo" {
		t.Fatalf("expected cheapest first (IndiGo), got %q", flights[0].Airline)
	}
	if flights[0].Price != "₹8,500" {
		t.Fatalf("unexpected price %q", flights[0].Price)
	}
	if flights[0].DepartureTime != "06:15" {
		t.Fatalf("unexpected departure time %q", flights[0].DepartureTime)
	}
	if flights[1].Airline != "Air India" {
		t.Fatalf("expected Air India second, got %q", flights[1].Airline)
	}
}

func TestFlightsEmptyOnNoMatch(t *testing.T) {
	if flights := Flights("I could not find any flights for those dates."); len(flights) != 0 {
		t.Fatalf("expected no flights, got %d", len(flights))
	}
}

func TestFlightsIgnoresApologyProse(t *testing.T) {
	content := `
Sorry, I was unable to find flights between those cities.

**What you can try instead**
- Search nearby airports
- Shift the travel dates by a day or two

Let me know if you would like me to retry the search.
`
	if flights := Flights(content); len(flights) != 0 {
		t.Fatalf("expected no flights from an apology reply, got %d (%+v)", len(flights), flights)
	}
}

func TestFlightsKeepsUnpricedKnownAirline(t *testing.T) {
	flights := Flights("**Option 1: Vistara**\n- Departure time: 07:10")
	if len(flights) != 1 {
		t.Fatalf("expected 1 flight, got %d", len(flights))
	}
	if flights[0].Airline != "Vistara" {
		t.Fatalf("unexpected airline %q", flights[0].Airline)
	}
}

func TestFlightsNamesUnknownAirlineWithPrice(t *testing.T) {
	flights := Flights("**Skyward Express**\n- Price: ₹9,999")
	if len(flights) != 1 {
		t.Fatalf("expected 1 flight, got %d", len(flights))
	}
	if flights[0].Airline != "Skyward Express" {
		t.Fatalf("unexpected airline %q", flights[0].Airline)
	}
	if flights[0].Price != "₹9,999" {
		t.Fatalf("unexpected price %q", flights[0].Price)
	}
}

const hotelContent = `
## Hotels
1. The Grand Palace - luxury stay near the city centre
   Price: ₹12,000 per night
2. Seaside Inn
   A quiet boutique hotel by the water.

## Restaurants
1. Spice Route - Indian cuisine
   Price: ₹1,500 for two
2. Trattoria Roma - Italian cuisine
`

func TestHotelsRestaurantsSplitsSections(t *testing.T) {
	hotels, restaurants := HotelsRestaurants(hotelContent)
	if len(hotels) != 2 {
		t.Fatalf("expected 2 hotels, got %d", len(hotels))
	}
	if hotels[0].Name != "The Grand Palace" {
		t.Fatalf("unexpected hotel name %q", hotels[0].Name)
	}
	if hotels[0].PriceRange != "₹12,000" {
		t.Fatalf("unexpected hotel price %q", hotels[0].PriceRange)
	}
	if len(restaurants) != 2 {
		t.Fatalf("expected 2 restaurants, got %d", len(restaurants))
	}
	if restaurants[1].Name != "Trattoria Roma" {
		t.Fatalf("unexpected restaurant name %q", restaurants[1].Name)
	}
	if restaurants[1].CuisineType == "" {
		t.Fatal("expected cuisine type for Trattoria Roma")
	}
}

const researchContent = `
Paris is one of the most visited cities in the world, known for its art,
food and architecture. Spring and autumn offer the best weather.

## Top Attractions
- Eiffel Tower
- Louvre Museum
- Notre-Dame Cathedral

## Recommendations
- Buy museum passes in advance
- Use the metro for getting around

## Safety Tips
- Watch for pickpockets near major attractions
`

func TestResearchSectionsExtraction(t *testing.T) {
	r := ResearchSections(researchContent)
	if r.Summary == "" {
		t.Fatal("expected a summary")
	}
	if len(r.Attractions) != 3 {
		t.Fatalf("expected 3 attractions, got %d (%v)", len(r.Attractions), r.Attractions)
	}
	if r.Attractions[0] != "Eiffel Tower" {
		t.Fatalf("unexpected first attraction %q", r.Attractions[0])
	}
	if len(r.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(r.Recommendations))
	}
	if len(r.SafetyTips) != 1 {
		t.Fatalf("expected 1 safety tip, got %d", len(r.SafetyTips))
	}
}

func TestResearchSectionsEmptyInput(t *testing.T) {
	r := ResearchSections("")
	if r.Attractions == nil || r.Recommendations == nil || r.SafetyTips == nil {
		t.Fatal("expected empty slices, not nil")
	}
}

const itineraryContent = `
**Day 1: Arrival**
- 10:00 Check in at the hotel
- 14:00 Walk along the river promenade
- Dinner at a local bistro

**Day 2: Museums**
- 09:30 Visit the national museum
- Lunch near the old town

## Travel Tips
- Carry small change for public transport

## Packing Suggestions
- Comfortable walking shoes
`

func TestItineraryPlanDays(t *testing.T) {
	plan := ItineraryPlan(itineraryContent, 3)
	if len(plan.DailyPlans) != 3 {
		t.Fatalf("expected 3 day plans, got %d", len(plan.DailyPlans))
	}
	day1 := plan.DailyPlans[0]
	if len(day1.Activities) != 2 {
		t.Fatalf("expected 2 activities on day 1, got %d (%v)", len(day1.Activities), day1.Activities)
	}
	if day1.Activities[0].Time != "10:00" {
		t.Fatalf("unexpected activity time %q", day1.Activities[0].Time)
	}
	if len(day1.Meals) != 1 {
		t.Fatalf("expected 1 meal on day 1, got %d", len(day1.Meals))
	}
	// Day 3 never appears in the prose but still gets an entry.
	if plan.DailyPlans[2].Day != 3 || len(plan.DailyPlans[2].Activities) != 0 {
		t.Fatalf("expected empty day 3, got %+v", plan.DailyPlans[2])
	}
	if len(plan.TravelTips) != 1 || len(plan.PackingSuggestions) != 1 {
		t.Fatalf("expected tips and packing suggestions, got %v / %v", plan.TravelTips, plan.PackingSuggestions)
	}
}

func TestItineraryPlanDistinguishesDoubleDigitDays(t *testing.T) {
	content := `
**Day 1: Arrival**
- 10:00 Check in at the hotel

**Day 10: Departure**
- 09:00 Transfer to the airport
- 11:30 Flight home
`
	plan := ItineraryPlan(content, 10)
	if len(plan.DailyPlans) != 10 {
		t.Fatalf("expected 10 day plans, got %d", len(plan.DailyPlans))
	}
	day1 := plan.DailyPlans[0]
	if len(day1.Activities) != 1 || day1.Activities[0].Time != "10:00" {
		t.Fatalf("day 1 picked up the wrong section: %+v", day1)
	}
	day10 := plan.DailyPlans[9]
	if len(day10.Activities) != 2 {
		t.Fatalf("expected 2 activities on day 10, got %d (%+v)", len(day10.Activities), day10.Activities)
	}
	if day10.Activities[0].Time != "09:00" {
		t.Fatalf("unexpected day 10 activity time %q", day10.Activities[0].Time)
	}
}
