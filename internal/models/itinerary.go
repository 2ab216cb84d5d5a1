package models

import "time"

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OpeningPeriod is one open/close pair from the opening-hours wire format.
// Day follows the provider convention: 0=Sunday .. 6=Saturday.
type OpeningPeriod struct {
	Open  OpeningPoint `json:"open"`
	Close OpeningPoint `json:"close"`
}

// OpeningPoint is a single day/time boundary, time formatted "HHMM".
type OpeningPoint struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

// OpeningHours is the structured opening-hours payload consumed by the
// temporal evaluator. WeekdayText is carried through for display but never
// parsed; its presence without Periods caps confidence at "medium".
type OpeningHours struct {
	Periods     []OpeningPeriod `json:"periods,omitempty"`
	WeekdayText []string        `json:"weekday_text,omitempty"`
}

// Place is a normalized candidate venue, as returned by a PlacesProvider.
type Place struct {
	PlaceID         string        `json:"place_id"`
	Name            string        `json:"name"`
	Lat             float64       `json:"lat"`
	Lng             float64       `json:"lng"`
	Rating          *float64      `json:"rating,omitempty"`
	UserRatingsTotal *int         `json:"user_ratings_total,omitempty"`
	Types           []string      `json:"types,omitempty"`
	Category        string        `json:"category"`
	OpeningHours    *OpeningHours `json:"opening_hours,omitempty"`
	BusinessStatus  string        `json:"business_status,omitempty"`
	PhotoReference  string        `json:"photo_reference,omitempty"`

	// Signals the scorer consumes; providers default these conservatively
	// when the underlying vendor does not expose them.
	IsIndoor        bool `json:"is_indoor"`
	NoiseLevel      int  `json:"noise_level,omitempty"`
	TouristDensity  int  `json:"tourist_density,omitempty"`
	LocalFavorite   bool `json:"local_favorite,omitempty"`
}

// WeatherSnapshot is the raw weather reading an engine build is conditioned on.
type WeatherSnapshot struct {
	Temp       float64 `json:"temp"`
	FeelsLike  float64 `json:"feels_like"`
	Condition  string  `json:"condition"`
	IsRaining  bool    `json:"is_raining"`
	IsSnowing  bool    `json:"is_snowing"`
	Windy      bool    `json:"windy"`
	Confidence string  `json:"confidence"`
	Source     string  `json:"source,omitempty"`
}

// WeatherProfile is the derived boolean-flag summary used to trigger
// structural plan changes.
type WeatherProfile struct {
	Cold       bool
	VeryCold   bool
	Rain       bool
	Snow       bool
	Windy      bool
	Pleasant   bool
	Confidence string
}

// SlotSpec is one immutable element of a template: a role and a preferred
// category list, not yet bound to a concrete time window.
type SlotSpec struct {
	SlotID      string   `json:"slot_id"`
	Title       string   `json:"title"`
	DurationMin int      `json:"duration_min"`
	Categories  []string `json:"categories"`
	Constraints []string `json:"constraints"`
	Role        string   `json:"role"` // anchor | reward | optional | nice
}

// Slot is a SlotSpec instantiated against a concrete plan: bound to a time
// window and merged with climate/user constraints.
type Slot struct {
	SlotID      string
	Title       string
	Start       time.Time
	End         time.Time
	DurationMin int
	Categories  []string
	Constraints []string
	Role        string
}

// OpenStatus is the result of evaluating a place's opening hours against a
// requested window.
type OpenStatus struct {
	IsOpen     *bool  // true/false/unknown(nil)
	Confidence string // high | medium | low
	Reason     string
}

// RankedOption is one scored candidate for a slot.
type RankedOption struct {
	Place         Place      `json:"place"`
	Score         float64    `json:"score"`
	DistanceM     float64    `json:"distance_m"`
	Open          *bool      `json:"open"`
	OpenConfidence string    `json:"open_confidence"`
	OpenReason    string     `json:"open_reason"`
}

// RankedSlot is a Slot plus its top-N scored candidates.
type RankedSlot struct {
	Slot
	Options []RankedOption
}

// FilledSlot is a RankedSlot plus the selector's decision.
type FilledSlot struct {
	RankedSlot
	SelectedPlaceIDs []string `json:"selected_place_ids"`
	WhyNow           string   `json:"why_now"`
}

// Stop is one materialized, ordered selection in the final itinerary.
type Stop struct {
	OrderIndex     int        `json:"order_index"`
	SlotID         string     `json:"slot_id"`
	SlotTitle      string     `json:"slot_title"`
	SlotRole       string     `json:"slot_role"`
	WhyNow         string     `json:"why_now"`
	PlaceID        string     `json:"place_id"`
	Name           string     `json:"name"`
	Lat            float64    `json:"lat"`
	Lng            float64    `json:"lng"`
	Category       string     `json:"category"`
	Start          time.Time  `json:"start"`
	DurationMin    int        `json:"duration_min"`
	OpenStatus     *bool      `json:"open_status_at_planned_time"`
	OpenConfidence string     `json:"open_confidence"`
	OpenReason     string     `json:"open_reason"`
	OpeningHours   *OpeningHours `json:"opening_hours_json,omitempty"`
	PlaceTypes     []string   `json:"place_types,omitempty"`
	BusinessStatus string     `json:"business_status,omitempty"`
	Rating         *float64   `json:"rating,omitempty"`
	Popularity     *int       `json:"popularity,omitempty"`
	PhotoReference string     `json:"photo_reference,omitempty"`
	HoursUnknown   bool       `json:"hours_unknown"`
	ClosedWarning  bool       `json:"closed_warning"`
}

// LegModeResult is one travel-mode estimate within a Leg.
type LegModeResult struct {
	DistanceM   int    `json:"distance_m"`
	DurationSec int    `json:"duration_sec"`
	Polyline    string `json:"polyline,omitempty"`
}

// Leg connects two consecutive stops with per-mode travel estimates.
type Leg struct {
	FromStop               int                      `json:"from_stop"`
	ToStop                 int                      `json:"to_stop"`
	Modes                  map[string]LegModeResult `json:"modes"`
	RecommendedMode        string                   `json:"recommended_mode"`
	RecommendedDistanceM   int                      `json:"recommended_distance_m"`
	RecommendedDurationSec int                      `json:"recommended_duration_sec"`
	RecommendedReason      string                   `json:"recommended_reason"`
}

// PlanDebug carries the template/engine metadata surfaced for diagnostics.
type PlanDebug struct {
	Engine            string  `json:"engine"`
	Template          string  `json:"template"`
	Intent            string  `json:"intent"`
	Daypart           string  `json:"daypart"`
	SlotCount         int     `json:"slot_count"`
	DurationHours     float64 `json:"duration_hours"`
	EnergyLevel       string  `json:"energy_level"`
	WeatherConfidence string  `json:"weather_confidence"`
}

// PlanResult is the engine's output for a single generate() call.
type PlanResult struct {
	FilledSlots  []FilledSlot `json:"filled_slots"`
	ChosenStops  []Stop       `json:"chosen_stops"`
	Legs         []Leg        `json:"legs"`
	Debug        PlanDebug    `json:"debug"`
}

// GenerateInputs is the validated input contract to planner.Engine.Generate.
type GenerateInputs struct {
	CityName      string   `json:"city_name"`
	UserLocation  LatLng   `json:"user_location"`
	Intent        string   `json:"intent"`
	WhenSelection string   `json:"when_selection"`
	DiscoveryMode string   `json:"discovery_mode"`
	Constraints   []string `json:"constraints"`
	Energy        int      `json:"energy"`
	DurationHours float64  `json:"duration_hours"`
	UseLLM        bool     `json:"use_llm"`
	LLMModel      string   `json:"llm_model"`
	Language      string   `json:"language"`
}

// GenerateContext carries the timestamp and optional pre-fetched weather
// that Generate needs but that do not belong on the user-facing input.
type GenerateContext struct {
	DtLocal time.Time
	Weather *WeatherSnapshot
}

// Plan is the persisted entity a task shell builds and stores.
type Plan struct {
	ID                   string          `json:"id" db:"id"`
	UserID               int             `json:"user_id" db:"user_id"`
	Status               string          `json:"status" db:"status"`
	InputsJSON           GenerateInputs  `json:"inputs_json" db:"inputs_json"`
	StartTimeUTC         time.Time       `json:"start_time_utc" db:"start_time_utc"`
	Timezone             string          `json:"timezone" db:"timezone"`
	WeatherSnapshotJSON  *WeatherSnapshot `json:"weather_snapshot_json,omitempty" db:"weather_snapshot_json"`
	GenerationMethod     string          `json:"generation_method,omitempty" db:"generation_method"`
	LLMAttempts          int             `json:"llm_attempts" db:"llm_attempts"`
	OptimizationMetadata map[string]any  `json:"optimization_metadata,omitempty" db:"optimization_metadata"`
	LastErrorCode        string          `json:"last_error_code,omitempty" db:"last_error_code"`
	LastErrorContext     string          `json:"last_error_context,omitempty" db:"last_error_context"`
	CreatedAt            time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at" db:"updated_at"`
}

// Allowed plan status values.
const (
	PlanStatusDraft    = "draft"
	PlanStatusBuilding = "building"
	PlanStatusReady    = "ready"
	PlanStatusActive   = "active"
	PlanStatusCompleted = "completed"
	PlanStatusFailed   = "failed"
	PlanStatusSwapping = "swapping"
)

// CityDNA is the cached cultural descriptor for a city, produced by the LLM
// selector strategy or loaded from the bundled static table.
type CityDNA struct {
	City               string           `json:"city"`
	Language           string           `json:"language"`
	FoodTypicals       []TypicalItem    `json:"food_typicals"`
	DrinkTypicals      []TypicalItem    `json:"drink_typicals"`
	LocalKeywords      []string         `json:"local_keywords"`
	NegativeKeywords   []string         `json:"negative_keywords"`
	Etiquette          []string         `json:"etiquette"`
	NeighborhoodHints  []Neighborhood   `json:"neighborhood_hints"`
}

// TypicalItem is one typical dish or drink entry in a CityDNA.
type TypicalItem struct {
	Name        string   `json:"name"`
	Note        string   `json:"note,omitempty"`
	When        []string `json:"when,omitempty"`
	HowToOrder  string   `json:"how_to_order,omitempty"`
}

// Neighborhood is an optional area hint in a CityDNA.
type Neighborhood struct {
	Name    string   `json:"name"`
	Vibe    []string `json:"vibe,omitempty"`
	BestFor []string `json:"best_for,omitempty"`
}

// SlotOrderTip is a per-slot ordering suggestion inside a LocalGuide.
type SlotOrderTip struct {
	SlotID string   `json:"slot_id"`
	Tips   []string `json:"tips"`
}

// LocalGuide is the weather- and slot-aware rendering of a CityDNA attached
// to a plan for presentation.
type LocalGuide struct {
	Headline          string                    `json:"headline"`
	Summary           string                    `json:"summary"`
	ClimateAdvice     []string                  `json:"climate_advice"`
	LocalTypicals     map[string][]TypicalItem  `json:"local_typicals"`
	PerSlotOrderTips  []SlotOrderTip            `json:"per_slot_order_tips"`
	PracticalNotes    []string                  `json:"practical_notes"`
}
