package session

import "strings"

func trimmed(s string) string { return strings.TrimSpace(s) }

// Baseline holds the last-persisted text and AI result for the open day.
// Dirtiness is always computed against it, never tracked as a flag, so
// retyping the original content reads as clean again.
type Baseline struct {
	Text     string
	AIResult string
}

// Dirty reports whether live content differs from the baseline.
func (b Baseline) Dirty(text, aiResult string) bool {
	return text != b.Text || aiResult != b.AIResult
}

// Rebaseline moves both sides to just-persisted values, after a Save.
func (b *Baseline) Rebaseline(text, aiResult string) {
	b.Text = text
	b.AIResult = aiResult
}

// RebaselineAI moves only the AI side. A successful interpretation is
// persisted immediately, so it must not hold the text's dirtiness hostage —
// and text edits stay dirty regardless.
func (b *Baseline) RebaselineAI(aiResult string) {
	b.AIResult = aiResult
}
