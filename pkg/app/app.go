package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/dreem/pkg/ai"
	"tableflip.dev/dreem/pkg/journal"
	"tableflip.dev/dreem/pkg/moon"
	"tableflip.dev/dreem/pkg/session"
	"tableflip.dev/dreem/pkg/store"
	"tableflip.dev/dreem/pkg/timeutil"
)

// Service provides the high-level journal operations shared by the CLI and
// the TUI. It owns the entry/draft commit protocol; the repositories have no
// awareness of each other.
type Service struct {
	Entries *journal.EntryRepository
	Drafts  *journal.DraftRepository
}

// New wires a Service over one Persistence.
func New(p store.Persistence) *Service {
	return &Service{
		Entries: &journal.EntryRepository{Persistence: p},
		Drafts:  &journal.DraftRepository{Persistence: p},
	}
}

// ResidualDraftError reports that the entry mutation succeeded but the paired
// draft cleanup failed. Non-fatal: the reconciler masks the stray draft, and
// the next successful commit for the day clears it.
type ResidualDraftError struct {
	DateKey string
	Err     error
}

func (e *ResidualDraftError) Error() string {
	return fmt.Sprintf("app: entry for %s committed but draft cleanup failed: %v", e.DateKey, e.Err)
}

func (e *ResidualDraftError) Unwrap() error { return e.Err }

// IsResidualDraft reports whether err is the non-fatal leftover-draft
// condition.
func IsResidualDraft(err error) bool {
	var r *ResidualDraftError
	return errors.As(err, &r)
}

// CommitFinal saves a final entry and then retires any draft for the same
// day. The entry write must be durable before the draft delete is attempted,
// so a failure between the two leaves a masked draft rather than lost work.
func (s *Service) CommitFinal(ctx context.Context, patch journal.EntryPatch) error {
	if err := s.Entries.Upsert(ctx, patch); err != nil {
		return err
	}
	if err := s.Drafts.DeleteByKey(ctx, patch.DateKey); err != nil {
		return &ResidualDraftError{DateKey: patch.DateKey, Err: err}
	}
	return nil
}

// CommitDelete removes the entry for a day and then its draft, in that
// order, so no orphaned draft can revive a deleted entry.
func (s *Service) CommitDelete(ctx context.Context, dateKey string) error {
	if err := s.Entries.DeleteByKey(ctx, dateKey); err != nil {
		return err
	}
	if err := s.Drafts.DeleteByKey(ctx, dateKey); err != nil {
		return &ResidualDraftError{DateKey: dateKey, Err: err}
	}
	return nil
}

// SaveDraft persists the editor's interim content for a day.
func (s *Service) SaveDraft(ctx context.Context, data session.EntryData) error {
	return s.Drafts.Upsert(ctx, journal.Draft{
		DateKey:  data.DateKey,
		Text:     data.Text,
		AIResult: data.AIResult,
		SavedAt:  timeutil.Now(),
	})
}

// List returns the reconciled entry/draft display list, newest first.
func (s *Service) List(ctx context.Context) []journal.DisplayItem {
	return journal.Reconcile(s.Entries.FindAll(ctx), s.Drafts.FindAll(ctx))
}

// Day is what the editor loads for one date: persisted content plus where it
// came from.
type Day struct {
	DateKey        string
	Date           time.Time
	Text           string
	AIResult       string
	MoonPhase      string
	MoonPhaseEmoji string
	FromDraft      bool
}

// LoadDay assembles editor content for a date. A final entry wins; otherwise
// an interim draft is resumed; otherwise the day starts blank.
func (s *Service) LoadDay(ctx context.Context, dateKey string) (Day, error) {
	date, err := timeutil.ParseDateKey(dateKey)
	if err != nil {
		return Day{}, err
	}
	phase, emoji := moon.PhaseForDate(date)
	day := Day{DateKey: dateKey, Date: date, MoonPhase: phase, MoonPhaseEmoji: emoji}

	if e, ok := s.Entries.FindByKey(ctx, dateKey); ok {
		day.Text = e.Text
		day.AIResult = e.AIAnalysis
		return day, nil
	}
	if d, ok := s.Drafts.FindByKey(ctx, dateKey); ok {
		day.Text = d.Text
		day.AIResult = d.AIResult
		day.FromDraft = true
	}
	return day, nil
}

// SaveFinal builds the full entry patch for a Save action and commits it.
func (s *Service) SaveFinal(ctx context.Context, day Day, text, aiResult string) error {
	e := journal.Entry{
		DateKey:        day.DateKey,
		DateISO:        timeutil.Timestamp{Time: day.Date},
		Text:           text,
		MoonPhase:      day.MoonPhase,
		MoonPhaseEmoji: day.MoonPhaseEmoji,
		AIAnalysis:     aiResult,
	}
	return s.CommitFinal(ctx, journal.PatchOf(e))
}

// Interpret runs the remote interpretation for a day and persists only the
// aiAnalysis field, leaving text as stored. When the stored entry already
// carries an analysis it is returned as-is without a remote call.
func (s *Service) Interpret(ctx context.Context, client *ai.Client, day Day, text string) (string, error) {
	if e, ok := s.Entries.FindByKey(ctx, day.DateKey); ok && e.AIAnalysis != "" {
		return e.AIAnalysis, nil
	}

	answer, err := client.Interpret(ctx, text, day.Date, day.MoonPhase)
	if err != nil {
		return "", err
	}

	patch := journal.EntryPatch{DateKey: day.DateKey, AIAnalysis: &answer}
	if err := s.Entries.Upsert(ctx, patch); err != nil {
		return "", err
	}
	return answer, nil
}
