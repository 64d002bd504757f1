package moon

import (
	"math"
	"time"
)

// Phase names match the eight-phase vocabulary stored in existing journals.
const (
	New            = "New"
	WaxingCrescent = "Waxing Crescent"
	FirstQuarter   = "First Quarter"
	WaxingGibbous  = "Waxing Gibbous"
	Full           = "Full"
	WaningGibbous  = "Waning Gibbous"
	LastQuarter    = "Last Quarter"
	WaningCrescent = "Waning Crescent"
)

// synodicMonth is the mean length of a lunation in days.
const synodicMonth = 29.53058770576

// reference is a known new moon: 2000-01-06 18:14 UTC.
var reference = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

type phaseBand struct {
	name  string
	emoji string
}

var bands = []phaseBand{
	{New, "🌑"},
	{WaxingCrescent, "🌒"},
	{FirstQuarter, "🌓"},
	{WaxingGibbous, "🌔"},
	{Full, "🌕"},
	{WaningGibbous, "🌖"},
	{LastQuarter, "🌗"},
	{WaningCrescent, "🌘"},
}

// Age returns days into the lunation for the given moment, in [0, synodic).
func Age(t time.Time) float64 {
	days := t.Sub(reference).Hours() / 24
	age := math.Mod(days, synodicMonth)
	if age < 0 {
		age += synodicMonth
	}
	return age
}

// PhaseForDate returns the phase name and emoji for a date. The lunation is
// split into eight bands centered on the principal phases, the same carving
// the stored records have always used.
func PhaseForDate(t time.Time) (string, string) {
	if t.IsZero() {
		return "Unknown", "🌑"
	}
	age := Age(t)
	// Each band is an eighth of the cycle, shifted half a band so the
	// principal phases sit at band centers.
	band := synodicMonth / 8
	idx := int(math.Floor((age+band/2)/band)) % len(bands)
	return bands[idx].name, bands[idx].emoji
}
