package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/shoplist/internal/config"
	"github.com/Makepad-fr/shoplist/internal/shoplist"
	"github.com/Makepad-fr/shoplist/internal/store/memstore"
	"github.com/Makepad-fr/shoplist/internal/ui"
)

type harness struct {
	t     *testing.T
	cfg   *config.Config
	st    *memstore.Store
	group bool

	stdout, stderr bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ui.SetTheme("mono")
	t.Cleanup(func() { ui.SetTheme("classic") })

	cfg := config.Default()
	cfg.Logging.Level = "error"
	return &harness{t: t, cfg: cfg, st: memstore.New()}
}

func (h *harness) run(args ...string) int {
	h.stdout.Reset()
	h.stderr.Reset()
	opt := Options{Group: h.group, Config: h.cfg, Stdout: &h.stdout, Stderr: &h.stderr}
	if h.st != nil {
		opt.Store = h.st
	}
	return Run(context.Background(), args, opt)
}

func (h *harness) items() shoplist.List {
	h.t.Helper()
	b, err := h.st.Get(context.Background(), shoplist.StorageKey)
	require.NoError(h.t, err)
	l, err := shoplist.Decode(b)
	require.NoError(h.t, err)
	return l
}

func TestRun_Usage(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 2, h.run())
	assert.Equal(t, 0, h.run("help"))
	assert.Contains(t, h.stdout.String(), "Subcommands:")
	assert.Equal(t, 2, h.run("frobnicate"))
	assert.Contains(t, h.stderr.String(), "unknown subcommand: frobnicate")
}

func TestRun_AddAndList(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("add", "-c", "bakery", "Bread"))
	assert.Contains(t, h.stdout.String(), "added Bread ×1 (Bakery)")

	// flags may follow the name
	require.Equal(t, 0, h.run("add", "Free", "range", "eggs", "-q", "12", "-c", "Dairy"))

	l := h.items()
	require.Len(t, l, 2)
	assert.Equal(t, "Free range eggs", l[0].Name)
	assert.Equal(t, 12, l[0].Quantity)
	assert.Equal(t, "Bread", l[1].Name)

	require.Equal(t, 0, h.run("ls"))
	out := h.stdout.String()
	assert.Contains(t, out, "(2 left)")
	assert.Less(t, strings.Index(out, "Free range eggs"), strings.Index(out, "Bread"), "newest first")
	assert.Contains(t, out, "Dairy")
}

func TestRun_AddValidation(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, 2, h.run("add", "-c", "dairy"))
	assert.Equal(t, 2, h.run("add", "-c", "dairy", "   "))
	assert.Contains(t, h.stderr.String(), "name required")
	assert.Equal(t, 2, h.run("add", "-c", "dairy", "-q", "0", "Milk"))
	assert.Contains(t, h.stderr.String(), "quantity must be positive")
	assert.Equal(t, 2, h.run("add", "Milk"))
	assert.Contains(t, h.stderr.String(), "category required")
	assert.Equal(t, 2, h.run("add", "-c", "toys", "Lego"))
	assert.Equal(t, 2, h.run("add", "-q", "lots", "-c", "dairy", "Milk"))

	assert.Equal(t, 0, h.st.Sets())
}

func TestRun_Scenario_MilkDone(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("add", "-c", "dairy", "-q", "2", "Milk"))
	require.Equal(t, 0, h.run("count"))
	assert.Equal(t, "1\n", h.stdout.String())

	require.Equal(t, 0, h.run("done", "1"))
	assert.Contains(t, h.stdout.String(), "checked Milk")
	assert.True(t, h.items()[0].Completed)

	require.Equal(t, 0, h.run("count"))
	assert.Equal(t, "0\n", h.stdout.String())

	require.Equal(t, 0, h.run("done", "1"))
	assert.Contains(t, h.stdout.String(), "unchecked Milk")
}

func TestRun_DoneByIDPrefix(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("add", "-c", "snacks", "Chips"))
	id := h.items()[0].ID

	require.Equal(t, 0, h.run("done", id[:9]))
	assert.True(t, h.items()[0].Completed)
}

func TestRun_RemoveAndErrors(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("add", "-c", "bakery", "Bread"))
	require.Equal(t, 0, h.run("add", "-c", "dairy", "Eggs"))

	assert.Equal(t, 2, h.run("rm"))
	// nine digits cannot prefix a uuid, so this stays a position
	assert.Equal(t, 2, h.run("rm", "700000000"))
	assert.Contains(t, h.stderr.String(), "index out of range")
	assert.Contains(t, h.stderr.String(), "Hint")
	assert.Len(t, h.items(), 2)

	require.Equal(t, 0, h.run("rm", "2"))
	l := h.items()
	require.Len(t, l, 1)
	assert.Equal(t, "Eggs", l[0].Name)
}

func TestRun_Edit(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("add", "-c", "bakery", "Bread"))
	require.Equal(t, 0, h.run("add", "-c", "dairy", "Eggs"))

	require.Equal(t, 0, h.run("edit", "-q", "3", "-n", "Rye bread", "2"))
	l := h.items()
	assert.Equal(t, "Rye bread", l[1].Name)
	assert.Equal(t, 3, l[1].Quantity)
	assert.Equal(t, "Eggs", l[0].Name)

	assert.Equal(t, 2, h.run("edit", "2"))
	assert.Contains(t, h.stderr.String(), "nothing to change")

	assert.Equal(t, 2, h.run("edit", "-n", " ", "2"))
	assert.Contains(t, h.stderr.String(), "name required")
	assert.Equal(t, 2, h.run("edit", "-c", "toys", "2"))
	assert.Contains(t, h.stderr.String(), "category required")
	assert.Equal(t, "Rye bread", h.items()[1].Name)

	require.Equal(t, 0, h.run("edit", "2", "-c", "pantry"))
	assert.Equal(t, "pantry", string(h.items()[1].Category))
}

func TestRun_CorruptStoreFallsBackToEmpty(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.st.Set(context.Background(), shoplist.StorageKey, []byte("{{{")))

	require.Equal(t, 0, h.run("ls"))
	assert.Contains(t, h.stderr.String(), shoplist.LoadFailedMsg)
	assert.Contains(t, h.stdout.String(), "your list is empty")

	// the next mutation replaces the corrupt value
	require.Equal(t, 0, h.run("add", "-c", "dairy", "Milk"))
	assert.Len(t, h.items(), 1)
}

func TestRun_PersistFailureIsSilent(t *testing.T) {
	h := newHarness(t)
	h.st.SetErr = errors.New("read-only")

	assert.Equal(t, 0, h.run("add", "-c", "dairy", "Milk"))
	assert.Contains(t, h.stdout.String(), "added Milk")
	assert.NotContains(t, h.stderr.String(), "read-only")
}

func TestRun_GroupedList(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("add", "-c", "bakery", "Bread"))
	require.Equal(t, 0, h.run("add", "-c", "dairy", "Eggs"))
	require.Equal(t, 0, h.run("done", "2"))

	h.group = true
	require.Equal(t, 0, h.run("ls"))
	out := h.stdout.String()
	toBuy := strings.Index(out, "To buy")
	cart := strings.Index(out, "In the cart")
	require.True(t, toBuy >= 0 && cart > toBuy)
	assert.Contains(t, out, "- To buy")
	assert.Contains(t, out, "x In the cart")
	assert.Greater(t, strings.Index(out, "Bread"), cart)
	assert.Less(t, strings.Index(out, "Eggs"), cart)
}

func TestRun_Categories(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("categories"))
	out := h.stdout.String()
	assert.Contains(t, out, "personal-care")
	assert.Contains(t, out, "Personal Care")
	assert.Equal(t, 9, strings.Count(out, "\n"))
}

func TestRun_FileBackendAcrossRuns(t *testing.T) {
	h := newHarness(t)
	h.st = nil
	h.cfg.Store.Backend = config.BackendFile
	h.cfg.Store.Dir = filepath.Join(t.TempDir(), "data")

	require.Equal(t, 0, h.run("add", "-c", "household", "Soap"))
	require.Equal(t, 0, h.run("ls"))
	assert.Contains(t, h.stdout.String(), "Soap")
}

func TestRun_SQLiteBackendAcrossRuns(t *testing.T) {
	h := newHarness(t)
	h.st = nil
	h.cfg.Store.Backend = config.BackendSQLite
	h.cfg.Store.Path = filepath.Join(t.TempDir(), "shoplist.db")

	require.Equal(t, 0, h.run("add", "-c", "beverages", "-q", "6", "Water"))
	require.Equal(t, 0, h.run("count"))
	assert.Equal(t, "1\n", h.stdout.String())
}
