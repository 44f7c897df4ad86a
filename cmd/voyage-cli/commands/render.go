// README: Itinerary output in text, JSON or YAML.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"voyage/internal/modules/itinerary"
)

// Format is the --format flag shared by all commands.
var Format = "text"

func render(w io.Writer, format string, it *itinerary.Itinerary) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(it)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(it)
	case "", "text":
		writeText(w, it)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

func writeText(w io.Writer, it *itinerary.Itinerary) {
	plan := it.TripPlan
	fmt.Fprintf(w, "%s", orDash(plan.Destination))
	if plan.Origin != "" {
		fmt.Fprintf(w, " (from %s)", plan.Origin)
	}
	fmt.Fprintf(w, "\n%d days", int(plan.TotalDays))
	if plan.Budget != "" {
		fmt.Fprintf(w, " | budget: %s", plan.Budget)
	}
	if plan.GroupSize != "" {
		fmt.Fprintf(w, " | group: %s", plan.GroupSize)
	}
	fmt.Fprintln(w)

	if len(plan.Hotels) > 0 {
		fmt.Fprintln(w, "\nHotels")
		for _, h := range plan.Hotels {
			fmt.Fprintf(w, "  - %s", h.Name)
			if h.PricePerNight != "" {
				fmt.Fprintf(w, " (%s/night)", h.PricePerNight)
			}
			fmt.Fprintln(w)
			if h.Address != "" {
				fmt.Fprintf(w, "    %s\n", h.Address)
			}
		}
	}

	for _, d := range it.Days {
		fmt.Fprintf(w, "\nDay %d", int(d.Day))
		if d.Theme != "" {
			fmt.Fprintf(w, ": %s", d.Theme)
		}
		fmt.Fprintln(w)
		writeActivities(w, "Morning", d.MorningActivities)
		writeActivities(w, "Afternoon", d.AfternoonActivities)
		writeActivities(w, "Evening", d.EveningActivities)
		for _, m := range []struct {
			label string
			meal  *itinerary.Meal
		}{{"Breakfast", d.Meals.Breakfast}, {"Lunch", d.Meals.Lunch}, {"Dinner", d.Meals.Dinner}} {
			if m.meal != nil && m.meal.RestaurantName != "" {
				fmt.Fprintf(w, "  %s: %s\n", m.label, m.meal.RestaurantName)
			}
		}
	}

	if len(it.LocalTips) > 0 {
		fmt.Fprintln(w, "\nLocal tips")
		for _, tip := range it.LocalTips {
			fmt.Fprintf(w, "  - [%s] %s\n", tip.Category, tip.Tip)
		}
	}
	if len(it.PackingSuggestions) > 0 {
		fmt.Fprintf(w, "\nPack: %s\n", strings.Join(it.PackingSuggestions, ", "))
	}
	if ec := it.EmergencyContacts; ec != nil {
		fmt.Fprintf(w, "\nEmergency: %s, tourist helpline: %s\n", orDash(string(ec.LocalEmergency)), orDash(string(ec.TouristHelpline)))
	}
}

func writeActivities(w io.Writer, label string, acts []itinerary.Activity) {
	for _, a := range acts {
		fmt.Fprintf(w, "  %s: %s", label, a.PlaceName)
		if a.TimeSlot != "" {
			fmt.Fprintf(w, " (%s)", a.TimeSlot)
		}
		fmt.Fprintln(w)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
