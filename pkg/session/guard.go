package session

import "sync"

// EntryData is the editor content the guard tracks for one day.
type EntryData struct {
	DateKey  string
	Text     string
	AIResult string
}

// Blank reports whether there is nothing worth keeping.
func (d EntryData) Blank() bool {
	return trimmed(d.Text) == "" && trimmed(d.AIResult) == ""
}

// Guard is the process-wide record of whether an editor currently holds
// unsaved work. Exactly one editor is expected to own it at a time: Update
// and Clear belong to that editor, while any component may Snapshot. The
// mutex exists for cross-goroutine reads (watch refreshes, async AI results),
// not to arbitrate multiple writers. If concurrently live editors ever become
// possible, key the guard by dateKey instead of sharing one instance.
type Guard struct {
	mu         sync.Mutex
	hasChanges bool
	data       *EntryData
}

func NewGuard() *Guard {
	return &Guard{}
}

// Update records the editor's current dirtiness and content.
func (g *Guard) Update(hasChanges bool, data EntryData) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hasChanges = hasChanges
	d := data
	g.data = &d
}

// Clear resets the guard, releasing ownership. Called on editor unmount or
// once a pending decision resolves.
func (g *Guard) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hasChanges = false
	g.data = nil
}

// Snapshot returns the current state. ok is false when no editor owns the
// guard.
func (g *Guard) Snapshot() (hasChanges bool, data EntryData, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.data == nil {
		return false, EntryData{}, false
	}
	return g.hasChanges, *g.data, true
}
