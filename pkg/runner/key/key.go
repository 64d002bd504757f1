package key

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"tableflip.dev/dreem/pkg/secret"
)

// Set prompts for the API key without echoing and stores it.
type Set struct {
	Secrets *secret.Store
}

func (s *Set) Do(ctx context.Context) error {
	if s.Secrets == nil {
		return errors.New("can not set key, no secret store")
	}

	fmt.Print("OpenAI API key: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println("")
	if err != nil {
		return fmt.Errorf("read key: %w", err)
	}
	if err := s.Secrets.Set(string(raw)); err != nil {
		return err
	}
	fmt.Println("key saved")
	return nil
}

// Show prints a masked form of the stored key, enough to recognize it.
type Show struct {
	Secrets *secret.Store
}

func (s *Show) Do(ctx context.Context) error {
	if s.Secrets == nil {
		return errors.New("can not show key, no secret store")
	}
	k, ok := s.Secrets.Get()
	if !ok {
		fmt.Println("no key saved")
		return nil
	}
	fmt.Println(mask(k))
	return nil
}

func mask(k string) string {
	if len(k) <= 8 {
		return strings.Repeat("*", len(k))
	}
	return k[:4] + strings.Repeat("*", len(k)-8) + k[len(k)-4:]
}
