package shoplist

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Makepad-fr/shoplist/internal/model"
	"github.com/Makepad-fr/shoplist/internal/store"
)

// StorageKey is the fixed key the collection is persisted under.
const StorageKey = "shoplist.items"

// LoadFailedMsg is shown when the saved list cannot be read back.
const LoadFailedMsg = "could not load saved items; starting with an empty list"

// Manager is the session state: the in-memory list, the last user-facing
// error and the store it mirrors to. It is not safe for concurrent use;
// every caller drives it from a single event loop.
type Manager struct {
	items List
	err   string

	store  store.Store
	key    string
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option customizes a Manager.
type Option func(*Manager)

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithIDFunc(f func() string) Option {
	return func(m *Manager) { m.newID = f }
}

// WithKey overrides StorageKey, e.g. to keep several lists in one store.
func WithKey(key string) Option {
	return func(m *Manager) { m.key = key }
}

// New returns an empty manager. Call Load before use.
func New(st store.Store, opts ...Option) *Manager {
	m := &Manager{
		items:  List{},
		store:  st,
		key:    StorageKey,
		logger: slog.Default(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(m)
	}
	m.logger = m.logger.With("component", "shoplist")
	return m
}

// Load replaces the in-memory list with the persisted one. A missing key
// yields an empty list; an unreadable or corrupt value yields an empty list
// plus a user-visible message. It never fails.
func (m *Manager) Load(ctx context.Context) {
	m.items = List{}
	m.err = ""

	b, err := m.store.Get(ctx, m.key)
	if errors.Is(err, store.ErrNotFound) {
		m.logger.Debug("no saved items", "key", m.key)
		return
	}
	if err != nil {
		m.logger.Warn("reading saved items", "key", m.key, "error", err)
		m.err = LoadFailedMsg
		return
	}
	l, err := Decode(b)
	if err != nil {
		m.logger.Warn("decoding saved items", "key", m.key, "error", err)
		m.err = LoadFailedMsg
		return
	}
	m.items = l
	m.logger.Debug("loaded items", "count", len(l))
}

// Items returns a copy of the current list.
func (m *Manager) Items() List { return m.items.clone() }

// Len is the number of items.
func (m *Manager) Len() int { return len(m.items) }

// Err is the last user-visible error, or "".
func (m *Manager) Err() string { return m.err }

// ClearErr dismisses the current error.
func (m *Manager) ClearErr() { m.err = "" }

// Remaining counts incomplete items.
func (m *Manager) Remaining() int { return Remaining(m.items) }

// ItemAt returns the item at display position i (0-based).
func (m *Manager) ItemAt(i int) (model.Item, bool) {
	if i < 0 || i >= len(m.items) {
		return model.Item{}, false
	}
	return m.items[i], true
}

// Find looks an item up by id.
func (m *Manager) Find(id string) (model.Item, bool) {
	it, _, ok := m.items.Find(id)
	return it, ok
}

// Lookup resolves a position, id or id prefix. See List.Lookup.
func (m *Manager) Lookup(ref string) (model.Item, error) {
	return m.items.Lookup(ref)
}

// Add validates d, prepends the new item and persists.
func (m *Manager) Add(ctx context.Context, d Draft) (model.Item, error) {
	l, it, err := Add(m.items, d, m.now(), m.newID())
	if err != nil {
		m.err = err.Error()
		return model.Item{}, err
	}
	m.commit(ctx, l)
	m.logger.Debug("item added", "id", it.ID, "name", it.Name)
	return it, nil
}

// Toggle flips completion of id. Unknown ids are ignored.
func (m *Manager) Toggle(ctx context.Context, id string) bool {
	l, ok := Toggle(m.items, id)
	if !ok {
		return false
	}
	m.commit(ctx, l)
	return true
}

// Remove deletes id. Unknown ids are ignored.
func (m *Manager) Remove(ctx context.Context, id string) bool {
	l, ok := Remove(m.items, id)
	if !ok {
		return false
	}
	m.commit(ctx, l)
	return true
}

// Edit applies u to id. On a validation error nothing changes and the
// message is kept in Err so an open edit form can show it.
func (m *Manager) Edit(ctx context.Context, id string, u Update) (bool, error) {
	l, ok, err := Edit(m.items, id, u)
	if err != nil {
		m.err = err.Error()
		return ok, err
	}
	if !ok {
		return false, nil
	}
	m.commit(ctx, l)
	return true, nil
}

func (m *Manager) commit(ctx context.Context, l List) {
	m.items = l
	m.err = ""
	m.persist(ctx)
}

// persist is best-effort: the store is a cache, not the system of record,
// so failures are logged and otherwise ignored.
func (m *Manager) persist(ctx context.Context) {
	b, err := Encode(m.items)
	if err != nil {
		m.logger.Warn("encoding items", "error", err)
		return
	}
	if err := m.store.Set(ctx, m.key, b); err != nil {
		m.logger.Warn("persisting items", "key", m.key, "error", err)
	}
}
