package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"tableflip.dev/dreem/pkg/store"
	"tableflip.dev/dreem/pkg/timeutil"
)

const keyField = "id"

// Repository persists chats under the chats namespace.
type Repository struct {
	Persistence store.Persistence
}

// Create synthesizes a chat with an empty message list and the sentinel
// title, persists it, and returns it.
func (r *Repository) Create(ctx context.Context) (Chat, error) {
	now := time.Now()
	c := Chat{
		ID:        NewID(now),
		Title:     SentinelTitle,
		Messages:  []Message{},
		CreatedAt: timeutil.Timestamp{Time: now},
		UpdatedAt: timeutil.Timestamp{Time: now},
	}
	err := r.Persistence.Update(ctx, store.NamespaceChats, func(records []json.RawMessage) ([]json.RawMessage, error) {
		return store.UpsertRecord(records, keyField, c)
	})
	if err != nil {
		return Chat{}, err
	}
	return c, nil
}

func (r *Repository) FindAll(ctx context.Context) []Chat {
	records := r.Persistence.Load(ctx, store.NamespaceChats)
	chats := make([]Chat, 0, len(records))
	for _, raw := range records {
		var c Chat
		if err := json.Unmarshal(raw, &c); err != nil {
			fmt.Fprintf(os.Stderr, "chat: skipping unreadable chat: %v\n", err)
			continue
		}
		chats = append(chats, c)
	}
	return chats
}

// List returns chats ordered by most recent activity. The ordering is a view
// concern applied at read time; storage order is insertion order.
func (r *Repository) List(ctx context.Context) []Chat {
	chats := r.FindAll(ctx)
	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].UpdatedAt.After(chats[j].UpdatedAt.Time)
	})
	return chats
}

func (r *Repository) FindByID(ctx context.Context, id string) (Chat, bool) {
	raw, ok := store.FindRecord(r.Persistence.Load(ctx, store.NamespaceChats), keyField, id)
	if !ok {
		return Chat{}, false
	}
	var c Chat
	if err := json.Unmarshal(raw, &c); err != nil {
		return Chat{}, false
	}
	return c, true
}

// AppendMessage appends msg to the chat's message list and returns the
// updated chat. Messages are never reordered or removed. When the chat does
// not exist the result is nil with no error; callers must check.
func (r *Repository) AppendMessage(ctx context.Context, chatID string, msg Message) (*Chat, error) {
	var updated *Chat
	err := r.Persistence.Update(ctx, store.NamespaceChats, func(records []json.RawMessage) ([]json.RawMessage, error) {
		raw, ok := store.FindRecord(records, keyField, chatID)
		if !ok {
			return records, nil
		}
		var c Chat
		if err := json.Unmarshal(raw, &c); err != nil {
			return records, nil
		}

		c.Messages = append(c.Messages, msg)
		if c.Title == SentinelTitle && msg.Role == RoleUser {
			c.Title = DeriveTitle(msg.Content)
		}
		c.UpdatedAt = timeutil.Now()

		next, err := store.UpsertRecord(records, keyField, c)
		if err != nil {
			return nil, err
		}
		updated = &c
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove deletes the chat unconditionally.
func (r *Repository) Remove(ctx context.Context, chatID string) error {
	return r.Persistence.Update(ctx, store.NamespaceChats, func(records []json.RawMessage) ([]json.RawMessage, error) {
		next, _ := store.DeleteRecord(records, keyField, chatID)
		return next, nil
	})
}
