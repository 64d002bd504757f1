package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sort"
	"sync"

	"github.com/peterbourgon/diskv/v3"
)

// Well-known namespace keys. The values are load-bearing: they must match the
// keys earlier releases wrote so existing journals keep working.
const (
	NamespaceEntries = "DREEM_ENTRIES_V1"
	NamespaceDrafts  = "DREEM_DRAFTS_V1"
	NamespaceChats   = "DREEM_CHATS_V1"
	NamespaceTheme   = "DREEM_THEME_PREF_V1"
)

// ErrNotFound reports a raw namespace read with no stored value.
var ErrNotFound = errors.New("store: not found")

// Persistence is the storage contract for dreem. A namespace holds either one
// JSON array of records or one raw scalar payload. There is no per-record
// write primitive: every mutation is a whole-namespace replace, which is what
// Update makes explicit.
type Persistence interface {
	// Load returns the records stored under namespace. A missing namespace or
	// a payload that is not a well-formed JSON array degrades to an empty
	// slice; corruption is never surfaced to callers.
	Load(ctx context.Context, namespace string) []json.RawMessage

	// ReplaceAll atomically replaces the whole namespace with records.
	ReplaceAll(ctx context.Context, namespace string, records []json.RawMessage) error

	// Update runs fn inside a load-mutate-replace cycle while holding the
	// namespace lock, so read-modify-write callers cannot interleave.
	Update(ctx context.Context, namespace string, fn func([]json.RawMessage) ([]json.RawMessage, error)) error

	// ReadRaw and WriteRaw access scalar namespaces (e.g. the theme pref).
	ReadRaw(namespace string) ([]byte, error)
	WriteRaw(namespace string, value []byte) error

	// Namespaces lists the namespaces present on disk, sorted.
	Namespaces(ctx context.Context) []string

	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: flatTransform,
		InverseTransform:  flatInverse,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath, locks: map[string]*sync.Mutex{}}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (p *persistence) lock(namespace string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.locks[namespace]
	if !ok {
		l = &sync.Mutex{}
		p.locks[namespace] = l
	}
	return l
}

func (p *persistence) Load(_ context.Context, namespace string) []json.RawMessage {
	val, err := p.d.Read(namespace)
	if err != nil {
		// Missing namespace reads as an empty collection.
		return []json.RawMessage{}
	}
	var records []json.RawMessage
	if err := json.Unmarshal(val, &records); err != nil {
		// Corrupt or non-array payloads degrade to empty rather than error.
		return []json.RawMessage{}
	}
	return records
}

func (p *persistence) ReplaceAll(_ context.Context, namespace string, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return p.d.Write(namespace, data)
}

func (p *persistence) Update(ctx context.Context, namespace string, fn func([]json.RawMessage) ([]json.RawMessage, error)) error {
	l := p.lock(namespace)
	l.Lock()
	defer l.Unlock()

	records := p.Load(ctx, namespace)
	next, err := fn(records)
	if err != nil {
		return err
	}
	return p.ReplaceAll(ctx, namespace, next)
}

func (p *persistence) ReadRaw(namespace string) ([]byte, error) {
	val, err := p.d.Read(namespace)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

func (p *persistence) WriteRaw(namespace string, value []byte) error {
	return p.d.Write(namespace, value)
}

func (p *persistence) Namespaces(ctx context.Context) []string {
	names := make([]string, 0, 4)
	for key := range p.d.Keys(ctx.Done()) {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}

// Namespaces are flat file names under the base path.
func flatTransform(s string) *diskv.PathKey {
	return &diskv.PathKey{Path: []string{}, FileName: s}
}

func flatInverse(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
