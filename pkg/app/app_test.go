package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"tableflip.dev/dreem/pkg/ai"
	"tableflip.dev/dreem/pkg/journal"
	"tableflip.dev/dreem/pkg/session"
	"tableflip.dev/dreem/pkg/store"
	"tableflip.dev/dreem/pkg/timeutil"
)

type testConfig struct {
	path string
}

func (c *testConfig) BasePath() string { return c.path }

func newService(t *testing.T) *Service {
	t.Helper()
	p, err := store.Load(&testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to load persistence: %v", err)
	}
	return New(p)
}

func TestCommitFinalRetiresTheDraft(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	draft := journal.Draft{DateKey: "2026-02-28", Text: "half done", SavedAt: timeutil.Now()}
	if err := svc.Drafts.Upsert(ctx, draft); err != nil {
		t.Fatalf("draft seed failed: %v", err)
	}

	entry := journal.Entry{DateKey: "2026-02-28", Text: "all done"}
	if err := svc.CommitFinal(ctx, journal.PatchOf(entry)); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	if _, ok := svc.Drafts.FindByKey(ctx, "2026-02-28"); ok {
		t.Fatalf("draft survived the final commit")
	}
	got, ok := svc.Entries.FindByKey(ctx, "2026-02-28")
	if !ok {
		t.Fatalf("entry missing after commit")
	}
	if got.Text != "all done" {
		t.Fatalf("unexpected entry text: %q", got.Text)
	}
}

func TestCommitDeleteRemovesEntryAndDraft(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if err := svc.Entries.Upsert(ctx, journal.PatchOf(journal.Entry{DateKey: "2026-02-28", Text: "x"})); err != nil {
		t.Fatalf("entry seed failed: %v", err)
	}
	if err := svc.Drafts.Upsert(ctx, journal.Draft{DateKey: "2026-02-28", Text: "y", SavedAt: timeutil.Now()}); err != nil {
		t.Fatalf("draft seed failed: %v", err)
	}

	if err := svc.CommitDelete(ctx, "2026-02-28"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := svc.Entries.FindByKey(ctx, "2026-02-28"); ok {
		t.Fatalf("entry survived the delete")
	}
	if _, ok := svc.Drafts.FindByKey(ctx, "2026-02-28"); ok {
		t.Fatalf("draft survived the delete, could revive the day")
	}
}

func TestSaveDraftStampsSavedAt(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	data := session.EntryData{DateKey: "2026-02-28", Text: "in progress", AIResult: "partial reading"}
	if err := svc.SaveDraft(ctx, data); err != nil {
		t.Fatalf("save draft failed: %v", err)
	}

	d, ok := svc.Drafts.FindByKey(ctx, "2026-02-28")
	if !ok {
		t.Fatalf("draft missing")
	}
	if d.Text != "in progress" || d.AIResult != "partial reading" {
		t.Fatalf("unexpected draft: %+v", d)
	}
	if d.SavedAt.IsZero() {
		t.Fatalf("draft missing its savedAt")
	}
}

func TestLoadDayPrefersEntryOverDraft(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if err := svc.Entries.Upsert(ctx, journal.PatchOf(journal.Entry{DateKey: "2026-02-28", Text: "final"})); err != nil {
		t.Fatalf("entry seed failed: %v", err)
	}
	if err := svc.Drafts.Upsert(ctx, journal.Draft{DateKey: "2026-02-28", Text: "stale draft", SavedAt: timeutil.Now()}); err != nil {
		t.Fatalf("draft seed failed: %v", err)
	}

	day, err := svc.LoadDay(ctx, "2026-02-28")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if day.FromDraft {
		t.Fatalf("entry should win over the draft")
	}
	if day.Text != "final" {
		t.Fatalf("unexpected text: %q", day.Text)
	}
	if day.MoonPhase == "" || day.MoonPhaseEmoji == "" {
		t.Fatalf("moon phase not computed: %+v", day)
	}
}

func TestLoadDayResumesDraft(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if err := svc.Drafts.Upsert(ctx, journal.Draft{DateKey: "2026-02-28", Text: "resume me", AIResult: "r", SavedAt: timeutil.Now()}); err != nil {
		t.Fatalf("draft seed failed: %v", err)
	}

	day, err := svc.LoadDay(ctx, "2026-02-28")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !day.FromDraft {
		t.Fatalf("expected the draft resumed")
	}
	if day.Text != "resume me" || day.AIResult != "r" {
		t.Fatalf("unexpected day: %+v", day)
	}
}

func TestLoadDayRejectsBadKey(t *testing.T) {
	svc := newService(t)
	if _, err := svc.LoadDay(context.Background(), "02/28/2026"); err == nil {
		t.Fatalf("expected an error for a malformed date")
	}
}

func TestInterpretReusesStoredAnalysis(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"fresh"}}]}`)
	}))
	defer srv.Close()
	client := ai.NewClient("test-key").WithBase(srv.URL)

	stored := "already interpreted"
	if err := svc.Entries.Upsert(ctx, journal.EntryPatch{DateKey: "2026-02-28", AIAnalysis: &stored}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	day, err := svc.LoadDay(ctx, "2026-02-28")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	answer, err := svc.Interpret(ctx, client, day, "the dream")
	if err != nil {
		t.Fatalf("interpret failed: %v", err)
	}
	if answer != "already interpreted" {
		t.Fatalf("expected the stored analysis back, got %q", answer)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("a stored analysis must not trigger a remote call, got %d", calls)
	}
}

func TestInterpretPersistsAnalysisWithoutTouchingText(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"a fresh reading"}}]}`)
	}))
	defer srv.Close()
	client := ai.NewClient("test-key").WithBase(srv.URL)

	if err := svc.Entries.Upsert(ctx, journal.PatchOf(journal.Entry{DateKey: "2026-02-28", Text: "the dream"})); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	day, err := svc.LoadDay(ctx, "2026-02-28")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	answer, err := svc.Interpret(ctx, client, day, day.Text)
	if err != nil {
		t.Fatalf("interpret failed: %v", err)
	}
	if answer != "a fresh reading" {
		t.Fatalf("unexpected answer: %q", answer)
	}

	got, ok := svc.Entries.FindByKey(ctx, "2026-02-28")
	if !ok {
		t.Fatalf("entry missing")
	}
	if got.AIAnalysis != "a fresh reading" {
		t.Fatalf("analysis not persisted: %q", got.AIAnalysis)
	}
	if got.Text != "the dream" {
		t.Fatalf("analysis write clobbered text: %q", got.Text)
	}
}

func TestListMasksResidualDraft(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if err := svc.Entries.Upsert(ctx, journal.PatchOf(journal.Entry{DateKey: "2026-02-28", Text: "final"})); err != nil {
		t.Fatalf("entry seed failed: %v", err)
	}
	if err := svc.Drafts.Upsert(ctx, journal.Draft{DateKey: "2026-02-28", Text: "residue", SavedAt: timeutil.Now()}); err != nil {
		t.Fatalf("draft seed failed: %v", err)
	}

	items := svc.List(ctx)
	if len(items) != 1 {
		t.Fatalf("residual draft leaked into the list: %d items", len(items))
	}
	if items[0].IsDraft || items[0].Text != "final" {
		t.Fatalf("unexpected item: %+v", items[0])
	}
}

// draftDeleteFails wraps a real Persistence but refuses every mutation of the
// drafts namespace, simulating a failure between the entry write and the
// paired draft cleanup.
type draftDeleteFails struct {
	store.Persistence
	err error
}

func (p *draftDeleteFails) Update(ctx context.Context, namespace string, fn func([]json.RawMessage) ([]json.RawMessage, error)) error {
	if namespace == store.NamespaceDrafts {
		return p.err
	}
	return p.Persistence.Update(ctx, namespace, fn)
}

func TestCommitFinalSurvivesDraftDeleteFailure(t *testing.T) {
	real, err := store.Load(&testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to load persistence: %v", err)
	}
	ctx := context.Background()

	// Seed the draft through the healthy store, then break draft mutations.
	if err := New(real).Drafts.Upsert(ctx, journal.Draft{DateKey: "2026-02-28", Text: "half done", SavedAt: timeutil.Now()}); err != nil {
		t.Fatalf("draft seed failed: %v", err)
	}
	svc := New(&draftDeleteFails{Persistence: real, err: errors.New("disk broke")})

	err = svc.CommitFinal(ctx, journal.PatchOf(journal.Entry{DateKey: "2026-02-28", Text: "all done"}))
	if err == nil {
		t.Fatalf("expected the draft cleanup failure to surface")
	}
	if !IsResidualDraft(err) {
		t.Fatalf("expected a residual-draft error, got %v", err)
	}

	// The entry write must have landed before the cleanup was attempted.
	got, ok := svc.Entries.FindByKey(ctx, "2026-02-28")
	if !ok {
		t.Fatalf("entry lost with the failed draft cleanup")
	}
	if got.Text != "all done" {
		t.Fatalf("unexpected entry text: %q", got.Text)
	}

	// The stray draft is still on disk but the reconciler keeps it masked.
	if _, ok := New(real).Drafts.FindByKey(ctx, "2026-02-28"); !ok {
		t.Fatalf("expected the stray draft left behind")
	}
	items := svc.List(ctx)
	if len(items) != 1 || items[0].IsDraft {
		t.Fatalf("stray draft leaked into the list: %+v", items)
	}
}

func TestCommitDeleteSurvivesDraftDeleteFailure(t *testing.T) {
	real, err := store.Load(&testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to load persistence: %v", err)
	}
	ctx := context.Background()

	healthy := New(real)
	if err := healthy.Entries.Upsert(ctx, journal.PatchOf(journal.Entry{DateKey: "2026-02-28", Text: "x"})); err != nil {
		t.Fatalf("entry seed failed: %v", err)
	}
	if err := healthy.Drafts.Upsert(ctx, journal.Draft{DateKey: "2026-02-28", Text: "y", SavedAt: timeutil.Now()}); err != nil {
		t.Fatalf("draft seed failed: %v", err)
	}

	svc := New(&draftDeleteFails{Persistence: real, err: errors.New("disk broke")})
	err = svc.CommitDelete(ctx, "2026-02-28")
	if !IsResidualDraft(err) {
		t.Fatalf("expected a residual-draft error, got %v", err)
	}
	if _, ok := svc.Entries.FindByKey(ctx, "2026-02-28"); ok {
		t.Fatalf("entry survived the delete")
	}
}

func TestResidualDraftErrorUnwraps(t *testing.T) {
	inner := fmt.Errorf("disk broke")
	err := &ResidualDraftError{DateKey: "2026-02-28", Err: inner}

	if !IsResidualDraft(err) {
		t.Fatalf("IsResidualDraft missed its own type")
	}
	if !IsResidualDraft(fmt.Errorf("wrapped: %w", err)) {
		t.Fatalf("IsResidualDraft must see through wrapping")
	}
	if IsResidualDraft(inner) {
		t.Fatalf("unrelated errors must not match")
	}
}
