package options

import (
	"testing"
	"time"

	"tableflip.dev/dreem/pkg/timeutil"
)

func TestDateKeyDefaultsToToday(t *testing.T) {
	o := &DateOptions{}
	got, err := o.DateKey(nil)
	if err != nil {
		t.Fatalf("default failed: %v", err)
	}
	if got != timeutil.ToDateKey(time.Now()) {
		t.Fatalf("expected today, got %q", got)
	}
}

func TestDateKeyPositionalWinsOverFlag(t *testing.T) {
	o := &DateOptions{OnString: "2026-01-01"}
	got, err := o.DateKey([]string{"2026-02-28"})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got != "2026-02-28" {
		t.Fatalf("positional argument should win, got %q", got)
	}
}

func TestDateKeyRejectsBadInput(t *testing.T) {
	o := &DateOptions{}
	if _, err := o.DateKey([]string{"02/28/2026"}); err == nil {
		t.Fatalf("expected a format error")
	}
}
