package journal

import (
	"sort"
	"time"

	"tableflip.dev/dreem/pkg/timeutil"
)

// Reconcile merges entries and drafts into one display list. Entries win:
// every entry is inserted first, and a draft only appears when no entry holds
// its dateKey, so a stray draft left behind by a failed cleanup is masked
// rather than shown twice. The result is sorted newest first.
func Reconcile(entries []Entry, drafts []Draft) []DisplayItem {
	byKey := make(map[string]DisplayItem, len(entries)+len(drafts))

	for _, e := range entries {
		byKey[e.DateKey] = DisplayItem{
			DateKey:        e.DateKey,
			When:           entryTime(e),
			Text:           e.Text,
			MoonPhase:      e.MoonPhase,
			MoonPhaseEmoji: e.MoonPhaseEmoji,
			AIAnalysis:     e.AIAnalysis,
			IsDraft:        false,
		}
	}

	for _, d := range drafts {
		if _, taken := byKey[d.DateKey]; taken {
			continue
		}
		byKey[d.DateKey] = DisplayItem{
			DateKey:    d.DateKey,
			When:       d.SavedAt.Time,
			Text:       d.Text,
			AIAnalysis: d.AIResult,
			IsDraft:    true,
		}
	}

	items := make([]DisplayItem, 0, len(byKey))
	for _, item := range byKey {
		items = append(items, item)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].When.Equal(items[j].When) {
			return items[i].DateKey > items[j].DateKey
		}
		return items[i].When.After(items[j].When)
	})
	return items
}

func entryTime(e Entry) time.Time {
	if !e.DateISO.IsZero() {
		return e.DateISO.Time
	}
	if t, err := timeutil.ParseDateKey(e.DateKey); err == nil {
		return t
	}
	return time.Time{}
}
