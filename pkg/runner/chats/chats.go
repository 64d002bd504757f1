package chats

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"tableflip.dev/dreem/pkg/ai"
	"tableflip.dev/dreem/pkg/chat"
	"tableflip.dev/dreem/pkg/printers"
	"tableflip.dev/dreem/pkg/timeutil"
)

// List prints the chat index, newest activity first.
type List struct {
	Repo *chat.Repository
}

func (l *List) Do(ctx context.Context) error {
	if l.Repo == nil {
		return errors.New("can not list chats, no repository")
	}
	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Chats(l.Repo.List(ctx)...)
	return nil
}

// New creates an empty chat.
type New struct {
	Repo *chat.Repository
}

func (n *New) Do(ctx context.Context) error {
	if n.Repo == nil {
		return errors.New("can not create chat, no repository")
	}
	c, err := n.Repo.Create(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("created chat %s\n", c.ID)
	return nil
}

// Show prints one chat's transcript.
type Show struct {
	Repo   *chat.Repository
	ChatID string
}

func (s *Show) Do(ctx context.Context) error {
	if s.Repo == nil {
		return errors.New("can not show chat, no repository")
	}
	c, ok := s.Repo.FindByID(ctx, s.ChatID)
	if !ok {
		return fmt.Errorf("no chat with id %s", s.ChatID)
	}
	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Transcript(c)
	return nil
}

// Send appends a user message and, when a credential is configured, asks Luna
// for the reply. A failed reply leaves the user message stored; nothing is
// rolled back.
type Send struct {
	Repo   *chat.Repository
	Client *ai.Client
	ChatID string
	Text   string
}

func (s *Send) Do(ctx context.Context) error {
	if s.Repo == nil {
		return errors.New("can not send, no repository")
	}

	updated, err := s.Repo.AppendMessage(ctx, s.ChatID, chat.Message{
		ID:        uuid.NewString(),
		Role:      chat.RoleUser,
		Content:   s.Text,
		Timestamp: timeutil.Now(),
	})
	if err != nil {
		return err
	}
	if updated == nil {
		return fmt.Errorf("no chat with id %s", s.ChatID)
	}

	if s.Client == nil {
		return nil
	}

	turns := make([]ai.Turn, 0, len(updated.Messages))
	for _, m := range updated.Messages {
		turns = append(turns, ai.Turn{Role: m.Role, Content: m.Content})
	}

	answer, err := s.Client.Converse(ctx, turns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "luna did not answer: %v\n", err)
		return nil
	}

	final, err := s.Repo.AppendMessage(ctx, s.ChatID, chat.Message{
		ID:        uuid.NewString(),
		Role:      chat.RoleAssistant,
		Content:   answer,
		Timestamp: timeutil.Now(),
	})
	if err != nil {
		return err
	}
	if final == nil {
		return fmt.Errorf("chat %s disappeared mid-conversation", s.ChatID)
	}

	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Transcript(*final)
	return nil
}

// Remove deletes a chat.
type Remove struct {
	Repo   *chat.Repository
	ChatID string
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Repo == nil {
		return errors.New("can not remove chat, no repository")
	}
	if err := r.Repo.Remove(ctx, r.ChatID); err != nil {
		return err
	}
	fmt.Printf("deleted chat %s\n", r.ChatID)
	return nil
}
