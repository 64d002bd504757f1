package journal

import (
	"time"

	"tableflip.dev/dreem/pkg/timeutil"
)

// Entry is a finalized, user-saved journal record for one day. DateKey is the
// primary key; one entry per day.
type Entry struct {
	DateKey        string             `json:"dateKey"`
	DateISO        timeutil.Timestamp `json:"dateIso"`
	Text           string             `json:"text"`
	MoonPhase      string             `json:"moonPhase"`
	MoonPhaseEmoji string             `json:"moonPhaseEmoji"`
	AIAnalysis     string             `json:"aiAnalysis,omitempty"`
}

// Draft is an interim save of editor content for one day. An entry for the
// same day supersedes it.
type Draft struct {
	DateKey  string             `json:"dateKey"`
	Text     string             `json:"text"`
	AIResult string             `json:"aiResult"`
	SavedAt  timeutil.Timestamp `json:"savedAt"`
}

// EntryPatch is a partial entry write. Nil fields are left untouched in the
// stored record; this is how the AI-answer path persists aiAnalysis without
// re-supplying text.
type EntryPatch struct {
	DateKey        string              `json:"dateKey"`
	DateISO        *timeutil.Timestamp `json:"dateIso,omitempty"`
	Text           *string             `json:"text,omitempty"`
	MoonPhase      *string             `json:"moonPhase,omitempty"`
	MoonPhaseEmoji *string             `json:"moonPhaseEmoji,omitempty"`
	AIAnalysis     *string             `json:"aiAnalysis,omitempty"`
}

// PatchOf expresses a full entry as a patch.
func PatchOf(e Entry) EntryPatch {
	return EntryPatch{
		DateKey:        e.DateKey,
		DateISO:        &e.DateISO,
		Text:           &e.Text,
		MoonPhase:      &e.MoonPhase,
		MoonPhaseEmoji: &e.MoonPhaseEmoji,
		AIAnalysis:     &e.AIAnalysis,
	}
}

// DisplayItem is one row in the merged entry/draft list.
type DisplayItem struct {
	DateKey        string
	When           time.Time
	Text           string
	MoonPhase      string
	MoonPhaseEmoji string
	AIAnalysis     string
	IsDraft        bool
}
