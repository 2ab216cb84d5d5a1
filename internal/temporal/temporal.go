// Package temporal evaluates weather-derived plan constraints, dayparts,
// category/daypart suitability, and opening-hours status against a
// requested time window.
package temporal

import (
	"strconv"
	"strings"
	"time"

	"github.com/exotic-travel-booking/backend/internal/models"
)

// BuildWeatherProfile derives the coarse boolean flags the planner uses to
// trigger structural changes (indoor-only slots, shortened walks) from a raw
// weather snapshot. A missing FeelsLike reading falls back to a conservative
// "pleasant" assumption rather than biasing the plan toward indoor slots.
func BuildWeatherProfile(w models.WeatherSnapshot, feelsLikeKnown bool) models.WeatherProfile {
	cond := strings.ToLower(w.Condition)
	rain := w.IsRaining || strings.Contains(cond, "rain") || strings.Contains(cond, "drizzle")
	snow := w.IsSnowing || strings.Contains(cond, "snow")
	windy := w.Windy || strings.Contains(cond, "wind")

	if !feelsLikeKnown {
		confidence := w.Confidence
		if confidence == "" {
			confidence = "low"
		}
		return models.WeatherProfile{
			Rain: rain, Snow: snow, Windy: windy,
			Pleasant:   true,
			Confidence: confidence,
		}
	}

	feels := w.FeelsLike
	cold := feels <= 8
	veryCold := feels <= 2
	pleasant := feels >= 10 && feels <= 22 && !rain && !snow && !windy

	confidence := w.Confidence
	if confidence == "" {
		confidence = "high"
	}

	return models.WeatherProfile{
		Cold: cold, VeryCold: veryCold,
		Rain: rain, Snow: snow, Windy: windy,
		Pleasant:   pleasant,
		Confidence: confidence,
	}
}

// Daypart buckets matching the engine's fixed hourly boundaries.
const (
	DaypartMorning   = "morning"
	DaypartMidday    = "midday"
	DaypartAfternoon = "afternoon"
	DaypartEvening   = "evening"
	DaypartLate      = "late"
)

// GetDaypart returns the daypart bucket for dt's local hour.
func GetDaypart(dt time.Time) string {
	h := dt.Hour()
	switch {
	case h >= 6 && h < 11:
		return DaypartMorning
	case h >= 11 && h < 15:
		return DaypartMidday
	case h >= 15 && h < 18:
		return DaypartAfternoon
	case h >= 18 && h < 22:
		return DaypartEvening
	default:
		return DaypartLate
	}
}

// categoryDaypartAllowed is the fixed "no bar at 11am" suitability table.
// Categories absent from this map are always suitable (soft constraint,
// only checked where callers opt in).
var categoryDaypartAllowed = map[string]map[string]bool{
	"bar":           {"evening": true, "late": true},
	"cocktail_bar":  {"evening": true, "late": true},
	"wine_bar":      {"evening": true, "late": true},
	"hotel_bar":     {"evening": true, "late": true},
	"nightclub":     {"late": true},
	"museum":        {"morning": true, "midday": true, "afternoon": true},
	"shopping_area": {"morning": true, "midday": true, "afternoon": true, "evening": true},
	"market":        {"morning": true, "midday": true, "afternoon": true},
	"boutique":      {"morning": true, "midday": true, "afternoon": true, "evening": true},
	"concept_store": {"morning": true, "midday": true, "afternoon": true, "evening": true},
	"vintage":       {"morning": true, "midday": true, "afternoon": true, "evening": true},
	"cafe":          {"morning": true, "midday": true, "afternoon": true, "evening": true},
	"bakery":        {"morning": true, "midday": true, "afternoon": true},
	"dessert":       {"afternoon": true, "evening": true, "late": true},
	"late_food":     {"late": true},
	"fast_food":     {"midday": true, "afternoon": true, "evening": true, "late": true},
	"cinema":        {"evening": true, "late": true, "afternoon": true},
	"theater":       {"evening": true, "late": true},
	"jazz_bar":      {"evening": true, "late": true},
	"cultural_bar":  {"evening": true, "late": true},
	"photo_spot":    {"morning": true, "midday": true, "afternoon": true, "evening": true},
	"viewpoint":     {"morning": true, "midday": true, "afternoon": true, "evening": true},
	"street_art":    {"morning": true, "midday": true, "afternoon": true, "evening": true},
}

// IsCategorySuitable reports whether category is appropriate for daypart.
// A category with no entry in the table is always suitable.
func IsCategorySuitable(category, daypart string) bool {
	allowed, ok := categoryDaypartAllowed[category]
	if !ok {
		return true
	}
	return allowed[daypart]
}

const (
	businessStatusClosedPermanently = "CLOSED_PERMANENTLY"
	businessStatusClosedTemporarily = "CLOSED_TEMPORARILY"
)

// ComputeOpenStatus evaluates whether a place is open for the window
// [start, start+duration). business_status hard-closes take priority over
// the periods table; a place with no periods is "hours_missing" at low
// confidence rather than assumed open or closed.
func ComputeOpenStatus(oh *models.OpeningHours, businessStatus string, start time.Time, durationMin int) models.OpenStatus {
	switch businessStatus {
	case businessStatusClosedPermanently:
		return models.OpenStatus{IsOpen: boolPtr(false), Confidence: "high", Reason: "permanently_closed"}
	case businessStatusClosedTemporarily:
		return models.OpenStatus{IsOpen: boolPtr(false), Confidence: "high", Reason: "temporarily_closed"}
	}

	if oh == nil || len(oh.Periods) == 0 {
		return models.OpenStatus{IsOpen: nil, Confidence: "low", Reason: "hours_missing"}
	}

	end := start.Add(time.Duration(durationMin) * time.Minute)
	wd := int(start.Weekday()) // time.Weekday is already Sunday=0..Saturday=6

	type interval struct{ open, close time.Time }
	var intervals []interval

	for _, p := range oh.Periods {
		if p.Close.Time == "" {
			continue
		}
		oTime := parseHHMM(p.Open.Time)
		cTime := parseHHMM(p.Close.Time)

		deltaOpenDays := mod(p.Open.Day-wd, 7)
		openDt := atLocalTime(start.AddDate(0, 0, deltaOpenDays), oTime)

		deltaCloseDays := mod(p.Close.Day-wd, 7)
		closeDt := atLocalTime(start.AddDate(0, 0, deltaCloseDays), cTime)

		if !closeDt.After(openDt) {
			closeDt = closeDt.AddDate(0, 0, 1)
		}
		intervals = append(intervals, interval{open: openDt, close: closeDt})
	}

	if len(intervals) == 0 {
		return models.OpenStatus{IsOpen: nil, Confidence: "low", Reason: "hours_unusable"}
	}

	for _, iv := range intervals {
		if !iv.open.After(start) && !end.After(iv.close) {
			return models.OpenStatus{IsOpen: boolPtr(true), Confidence: "high", Reason: "open_for_slot"}
		}
	}
	for _, iv := range intervals {
		if !iv.open.After(start) && start.Before(iv.close) && end.After(iv.close) {
			return models.OpenStatus{IsOpen: boolPtr(true), Confidence: "medium", Reason: "open_but_closing_during_slot"}
		}
	}
	return models.OpenStatus{IsOpen: boolPtr(false), Confidence: "high", Reason: "closed_for_slot"}
}

func boolPtr(b bool) *bool { return &b }

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

type hhmm struct{ hour, minute int }

func parseHHMM(s string) hhmm {
	if len(s) != 4 {
		return hhmm{}
	}
	h, errH := strconv.Atoi(s[:2])
	m, errM := strconv.Atoi(s[2:])
	if errH != nil || errM != nil {
		return hhmm{}
	}
	return hhmm{hour: h, minute: m}
}

func atLocalTime(base time.Time, t hhmm) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(), t.hour, t.minute, 0, 0, base.Location())
}
