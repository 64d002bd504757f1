package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"tableflip.dev/dreem/pkg/store"
)

const keyField = "dateKey"

// EntryRepository persists final entries under the entries namespace.
type EntryRepository struct {
	Persistence store.Persistence
}

func (r *EntryRepository) FindAll(ctx context.Context) []Entry {
	records := r.Persistence.Load(ctx, store.NamespaceEntries)
	entries := make([]Entry, 0, len(records))
	for _, raw := range records {
		var e Entry
		if err := json.Unmarshal(raw, &e); err != nil {
			fmt.Fprintf(os.Stderr, "journal: skipping unreadable entry: %v\n", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

func (r *EntryRepository) FindByKey(ctx context.Context, dateKey string) (Entry, bool) {
	raw, ok := store.FindRecord(r.Persistence.Load(ctx, store.NamespaceEntries), keyField, dateKey)
	if !ok {
		return Entry{}, false
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, false
	}
	return e, true
}

// Upsert merges patch into the stored entry for its dateKey, or appends a new
// record. Only the patch's non-nil fields overwrite stored ones.
func (r *EntryRepository) Upsert(ctx context.Context, patch EntryPatch) error {
	if patch.DateKey == "" {
		return fmt.Errorf("journal: entry upsert requires a dateKey")
	}
	return r.Persistence.Update(ctx, store.NamespaceEntries, func(records []json.RawMessage) ([]json.RawMessage, error) {
		return store.UpsertRecord(records, keyField, patch)
	})
}

func (r *EntryRepository) DeleteByKey(ctx context.Context, dateKey string) error {
	return r.Persistence.Update(ctx, store.NamespaceEntries, func(records []json.RawMessage) ([]json.RawMessage, error) {
		next, _ := store.DeleteRecord(records, keyField, dateKey)
		return next, nil
	})
}

// DraftRepository persists interim saves under the drafts namespace,
// isolated from final entries.
type DraftRepository struct {
	Persistence store.Persistence
}

func (r *DraftRepository) FindAll(ctx context.Context) []Draft {
	records := r.Persistence.Load(ctx, store.NamespaceDrafts)
	drafts := make([]Draft, 0, len(records))
	for _, raw := range records {
		var d Draft
		if err := json.Unmarshal(raw, &d); err != nil {
			fmt.Fprintf(os.Stderr, "journal: skipping unreadable draft: %v\n", err)
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts
}

func (r *DraftRepository) FindByKey(ctx context.Context, dateKey string) (Draft, bool) {
	raw, ok := store.FindRecord(r.Persistence.Load(ctx, store.NamespaceDrafts), keyField, dateKey)
	if !ok {
		return Draft{}, false
	}
	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return Draft{}, false
	}
	return d, true
}

func (r *DraftRepository) Upsert(ctx context.Context, draft Draft) error {
	if draft.DateKey == "" {
		return fmt.Errorf("journal: draft upsert requires a dateKey")
	}
	return r.Persistence.Update(ctx, store.NamespaceDrafts, func(records []json.RawMessage) ([]json.RawMessage, error) {
		return store.UpsertRecord(records, keyField, draft)
	})
}

func (r *DraftRepository) DeleteByKey(ctx context.Context, dateKey string) error {
	return r.Persistence.Update(ctx, store.NamespaceDrafts, func(records []json.RawMessage) ([]json.RawMessage, error) {
		next, _ := store.DeleteRecord(records, keyField, dateKey)
		return next, nil
	})
}
