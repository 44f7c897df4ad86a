// README: Structured itinerary returned by final-mode generation.
package itinerary

// DefaultImageURL is attached whenever an image lookup cannot produce one.
const DefaultImageURL = "https://images.unsplash.com/photo-1507525428034-b723a9ce6890?w=1200&h=400&fit=crop&q=80"

type Itinerary struct {
	TripPlan           TripPlan           `json:"trip_plan" yaml:"trip_plan"`
	Days               []Day              `json:"itinerary" yaml:"itinerary"`
	LocalTips          []LocalTip         `json:"local_tips" yaml:"local_tips"`
	PackingSuggestions []string           `json:"packing_suggestions" yaml:"packing_suggestions"`
	EmergencyContacts  *EmergencyContacts `json:"emergency_contacts,omitempty" yaml:"emergency_contacts,omitempty"`
}

type TripPlan struct {
	Destination string     `json:"destination" yaml:"destination"`
	Duration    FlexString `json:"duration" yaml:"duration"`
	TotalDays   FlexInt    `json:"total_days" yaml:"total_days"`
	Origin      string     `json:"origin" yaml:"origin"`
	Budget      string     `json:"budget" yaml:"budget"`
	GroupSize   FlexString `json:"group_size" yaml:"group_size"`
	Hotels      []Hotel    `json:"hotels" yaml:"hotels"`
}

type GeoCoordinates struct {
	Latitude  FlexFloat `json:"latitude" yaml:"latitude"`
	Longitude FlexFloat `json:"longitude" yaml:"longitude"`
}

type Hotel struct {
	Name           string          `json:"hotel_name" yaml:"hotel_name"`
	Address        string          `json:"hotel_address" yaml:"hotel_address"`
	PricePerNight  FlexString      `json:"price_per_night" yaml:"price_per_night"`
	ImageURL       string          `json:"hotel_image_url,omitempty" yaml:"hotel_image_url,omitempty"`
	GeoCoordinates *GeoCoordinates `json:"geo_coordinates,omitempty" yaml:"geo_coordinates,omitempty"`
	Rating         FlexString      `json:"rating,omitempty" yaml:"rating,omitempty"`
	Description    string          `json:"description,omitempty" yaml:"description,omitempty"`
	SearchTerm     string          `json:"search_term,omitempty" yaml:"search_term,omitempty"`
}

type Activity struct {
	PlaceName      string          `json:"place_name" yaml:"place_name"`
	PlaceDetails   string          `json:"place_details,omitempty" yaml:"place_details,omitempty"`
	ImageURL       string          `json:"place_image_url,omitempty" yaml:"place_image_url,omitempty"`
	GeoCoordinates *GeoCoordinates `json:"geo_coordinates,omitempty" yaml:"geo_coordinates,omitempty"`
	TicketPricing  FlexString      `json:"ticket_pricing,omitempty" yaml:"ticket_pricing,omitempty"`
	TimeSlot       string          `json:"time_slot,omitempty" yaml:"time_slot,omitempty"`
	Duration       FlexString      `json:"duration,omitempty" yaml:"duration,omitempty"`
	Tips           string          `json:"tips,omitempty" yaml:"tips,omitempty"`
	SearchTerm     string          `json:"search_term,omitempty" yaml:"search_term,omitempty"`
}

type Meal struct {
	RestaurantName string     `json:"restaurant_name" yaml:"restaurant_name"`
	CuisineType    string     `json:"cuisine_type,omitempty" yaml:"cuisine_type,omitempty"`
	PriceRange     FlexString `json:"price_range,omitempty" yaml:"price_range,omitempty"`
}

type Meals struct {
	Breakfast *Meal `json:"breakfast,omitempty" yaml:"breakfast,omitempty"`
	Lunch     *Meal `json:"lunch,omitempty" yaml:"lunch,omitempty"`
	Dinner    *Meal `json:"dinner,omitempty" yaml:"dinner,omitempty"`
}

type Day struct {
	Day                 FlexInt    `json:"day" yaml:"day"`
	Theme               string     `json:"day_theme" yaml:"day_theme"`
	Plan                string     `json:"day_plan" yaml:"day_plan"`
	MorningActivities   []Activity `json:"morning_activities" yaml:"morning_activities"`
	AfternoonActivities []Activity `json:"afternoon_activities" yaml:"afternoon_activities"`
	EveningActivities   []Activity `json:"evening_activities" yaml:"evening_activities"`
	Meals               Meals      `json:"meals" yaml:"meals"`
	Transportation      FlexString `json:"transportation,omitempty" yaml:"transportation,omitempty"`
}

type LocalTip struct {
	Category string `json:"category" yaml:"category"`
	Tip      string `json:"tip" yaml:"tip"`
}

type EmergencyContacts struct {
	LocalEmergency  FlexString `json:"local_emergency" yaml:"local_emergency"`
	TouristHelpline FlexString `json:"tourist_helpline" yaml:"tourist_helpline"`
}

// activityLists returns pointers to the three time-of-day slices of a day.
func (d *Day) activityLists() []*[]Activity {
	return []*[]Activity{&d.MorningActivities, &d.AfternoonActivities, &d.EveningActivities}
}
