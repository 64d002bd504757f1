package chat

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"tableflip.dev/dreem/pkg/store"
	"tableflip.dev/dreem/pkg/timeutil"
)

type testConfig struct {
	path string
}

func (c *testConfig) BasePath() string { return c.path }

func newRepo(t *testing.T) *Repository {
	t.Helper()
	p, err := store.Load(&testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to load persistence: %v", err)
	}
	return &Repository{Persistence: p}
}

func msg(role, content string) Message {
	return Message{
		ID:        "m-" + content,
		Role:      role,
		Content:   content,
		Timestamp: timeutil.Now(),
	}
}

func TestCreateStartsWithSentinelTitle(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	c, err := repo.Create(ctx)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if c.Title != SentinelTitle {
		t.Fatalf("unexpected title: %q", c.Title)
	}
	if len(c.Messages) != 0 {
		t.Fatalf("fresh chat has messages: %d", len(c.Messages))
	}

	got, ok := repo.FindByID(ctx, c.ID)
	if !ok {
		t.Fatalf("created chat not found")
	}
	if got.Title != SentinelTitle {
		t.Fatalf("stored title wrong: %q", got.Title)
	}
}

func TestFirstUserMessageNamesTheChat(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	c, err := repo.Create(ctx)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := repo.AppendMessage(ctx, c.ID, msg(RoleUser, "why do I keep dreaming about trains"))
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if updated == nil {
		t.Fatalf("chat vanished")
	}
	if updated.Title != "why do I keep dreaming about trains" {
		t.Fatalf("title not derived: %q", updated.Title)
	}

	// A later user message must not rename the chat.
	updated, err = repo.AppendMessage(ctx, c.ID, msg(RoleUser, "another question"))
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if updated.Title != "why do I keep dreaming about trains" {
		t.Fatalf("title changed on second message: %q", updated.Title)
	}
}

func TestAssistantMessageLeavesSentinelTitle(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	c, err := repo.Create(ctx)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := repo.AppendMessage(ctx, c.ID, msg(RoleAssistant, "hello, I am Luna"))
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if updated.Title != SentinelTitle {
		t.Fatalf("assistant message renamed the chat: %q", updated.Title)
	}
}

func TestAppendIsOrderedAndAppendOnly(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	c, err := repo.Create(ctx)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for _, content := range []string{"one", "two", "three"} {
		if _, err := repo.AppendMessage(ctx, c.ID, msg(RoleUser, content)); err != nil {
			t.Fatalf("append %q failed: %v", content, err)
		}
	}

	got, ok := repo.FindByID(ctx, c.ID)
	if !ok {
		t.Fatalf("chat not found")
	}
	if len(got.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got.Messages))
	}
	for i, want := range []string{"one", "two", "three"} {
		if got.Messages[i].Content != want {
			t.Fatalf("message %d out of order: %q", i, got.Messages[i].Content)
		}
	}
}

func TestAppendToMissingChat(t *testing.T) {
	repo := newRepo(t)

	updated, err := repo.AppendMessage(context.Background(), "nope", msg(RoleUser, "hello"))
	if err != nil {
		t.Fatalf("missing chat must not error: %v", err)
	}
	if updated != nil {
		t.Fatalf("expected nil result for a missing chat")
	}
}

func TestRemove(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	c, err := repo.Create(ctx)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Remove(ctx, c.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, ok := repo.FindByID(ctx, c.ID); ok {
		t.Fatalf("chat still present after remove")
	}
}

func TestListOrdersByRecentActivity(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	records := []json.RawMessage{
		json.RawMessage(`{"id":"1","title":"older","messages":[],"createdAt":"2026-02-01T08:00:00Z","updatedAt":"2026-02-01T08:00:00Z"}`),
		json.RawMessage(`{"id":"2","title":"newer","messages":[],"createdAt":"2026-02-01T08:00:00Z","updatedAt":"2026-02-28T08:00:00Z"}`),
	}
	if err := repo.Persistence.ReplaceAll(ctx, store.NamespaceChats, records); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	chats := repo.List(ctx)
	if len(chats) != 2 {
		t.Fatalf("expected 2 chats, got %d", len(chats))
	}
	if chats[0].Title != "newer" {
		t.Fatalf("most recent activity should lead: %q", chats[0].Title)
	}
}

func TestDeriveTitleTruncates(t *testing.T) {
	long := strings.Repeat("a", 60)
	got := DeriveTitle(long)
	if got != strings.Repeat("a", 50)+"..." {
		t.Fatalf("unexpected truncation: %q", got)
	}

	short := "short question"
	if DeriveTitle(short) != short {
		t.Fatalf("short titles must pass through")
	}

	// Truncation counts runes, not bytes.
	wide := strings.Repeat("é", 60)
	if DeriveTitle(wide) != strings.Repeat("é", 50)+"..." {
		t.Fatalf("rune truncation wrong: %q", DeriveTitle(wide))
	}
}

func TestNewID(t *testing.T) {
	now := time.UnixMilli(1756700000000)
	if got := NewID(now); got != "1756700000000" {
		t.Fatalf("unexpected id: %q", got)
	}
}
