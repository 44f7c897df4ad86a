// README: Day-coverage validation and repair for generated itineraries.
package itinerary

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// MaxTripDays caps the number of days an itinerary can carry.
const MaxTripDays = 30

// Validate guarantees that it.Days holds exactly one entry per day index
// 1..N, sorted ascending. N is trip_plan.total_days, or when total_days is
// absent the larger of the array length and the highest day index in it.
// N never exceeds MaxTripDays. Missing days are synthesized as
// placeholders. The itinerary is repaired in place and returned; nil input
// yields an empty itinerary. Validate is idempotent.
func Validate(it *Itinerary) *Itinerary {
	if it == nil {
		return &Itinerary{Days: []Day{}}
	}

	expected := int(it.TripPlan.TotalDays)
	if expected <= 0 {
		maxDay := lo.Max(lo.Map(it.Days, func(d Day, _ int) int { return int(d.Day) }))
		expected = max(len(it.Days), maxDay)
	}
	expected = min(expected, MaxTripDays)

	seen := make(map[int]bool, expected)
	kept := make([]Day, 0, expected)
	var unindexed []Day
	for _, d := range it.Days {
		idx := int(d.Day)
		switch {
		case idx < 1:
			unindexed = append(unindexed, d)
		case idx > expected || seen[idx]:
			continue
		default:
			seen[idx] = true
			kept = append(kept, d)
		}
	}

	// Entries without a usable index take the lowest free slots in order.
	next := 1
	for _, d := range unindexed {
		for next <= expected && seen[next] {
			next++
		}
		if next > expected {
			break
		}
		d.Day = FlexInt(next)
		seen[next] = true
		kept = append(kept, d)
	}

	for idx := 1; idx <= expected; idx++ {
		if !seen[idx] {
			kept = append(kept, PlaceholderDay(idx))
		}
	}

	for i := range kept {
		for _, list := range kept[i].activityLists() {
			if *list == nil {
				*list = []Activity{}
			}
		}
	}

	slices.SortStableFunc(kept, func(a, b Day) int { return int(a.Day) - int(b.Day) })

	it.Days = kept
	it.TripPlan.TotalDays = FlexInt(expected)
	return it
}

// PlaceholderDay builds the minimal entry used to fill a gap in day coverage.
func PlaceholderDay(idx int) Day {
	return Day{
		Day:                 FlexInt(idx),
		Theme:               fmt.Sprintf("Day %d: Free Exploration", idx),
		Plan:                "Explore at your own pace.",
		MorningActivities:   []Activity{},
		AfternoonActivities: []Activity{},
		EveningActivities:   []Activity{},
		Meals: Meals{
			Breakfast: &Meal{RestaurantName: "Local breakfast spot", CuisineType: "Local"},
			Lunch:     &Meal{RestaurantName: "Local lunch spot", CuisineType: "Local"},
			Dinner:    &Meal{RestaurantName: "Local dinner spot", CuisineType: "Local"},
		},
		Transportation: "Flexible",
	}
}
