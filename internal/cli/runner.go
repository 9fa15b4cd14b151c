package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Makepad-fr/shoplist/internal/config"
	"github.com/Makepad-fr/shoplist/internal/logging"
	"github.com/Makepad-fr/shoplist/internal/model"
	"github.com/Makepad-fr/shoplist/internal/shoplist"
	"github.com/Makepad-fr/shoplist/internal/store"
	"github.com/Makepad-fr/shoplist/internal/tui"
	"github.com/Makepad-fr/shoplist/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	Group  bool // list grouped by pending/done
	Config *config.Config

	// Store replaces the configured backend when set (tests).
	Store store.Store

	Stdout io.Writer
	Stderr io.Writer
}

type runner struct {
	opt    Options
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
	errw   io.Writer
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	if opt.Config == nil {
		opt.Config = config.Default()
	}
	if len(args) == 0 {
		PrintHelp(opt.Stderr)
		return 2
	}
	cmd, a := args[0], args[1:]

	r := &runner{opt: opt, cfg: opt.Config, out: opt.Stdout, errw: opt.Stderr}

	logger, closeLog, err := r.newLogger(cmd == "ui")
	if err != nil {
		ui.Fail(r.errw, "log: "+err.Error())
		return 1
	}
	defer closeLog()
	r.logger = logger

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(r.out)
		return 0

	case "ls":
		return r.doList(ctx)

	case "add":
		return r.doAdd(ctx, a)

	case "done":
		if len(a) != 1 {
			ui.Fail(r.errw, "usage: shoplist done <index|id>")
			return 2
		}
		return r.doToggle(ctx, a[0])

	case "rm":
		if len(a) != 1 {
			ui.Fail(r.errw, "usage: shoplist rm <index|id>")
			return 2
		}
		return r.doRemove(ctx, a[0])

	case "edit":
		return r.doEdit(ctx, a)

	case "count":
		return r.doCount(ctx)

	case "categories":
		return r.doCategories()

	case "ui":
		return r.doUI(ctx)
	}

	ui.Fail(r.errw, "unknown subcommand: "+cmd)
	fmt.Fprintln(r.errw)
	PrintHelp(r.errw)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `shoplist - a shopping list for your terminal

Usage:
  shoplist [flags] <subcommand> [args]

Subcommands:
  add -c <category> [-q N] <name...>   Add an item (quantity defaults to 1)
  ls                                   List items (newest first)
  done <index|id>                      Toggle an item bought / not bought
  rm <index|id>                        Remove an item
  edit [-n name] [-q N] [-c category] <index|id>
                                       Change an item
  count                                Print how many items are left
  categories                           Print the available categories
  ui                                   Interactive list

Items are addressed by their 1-based position in 'ls' or by id prefix.
A number past the end of the list is tried as an id prefix.

Examples:
  shoplist add -c dairy -q 2 Milk
  shoplist ls
  shoplist done 1
  shoplist edit -q 6 2
`)
}

// newLogger sends logs to stderr, except in the TUI where they would
// corrupt the screen: there they go to logging.file or nowhere.
func (r *runner) newLogger(interactive bool) (*slog.Logger, func(), error) {
	lc := r.cfg.Logging
	if !interactive {
		return logging.New(lc, r.errw), func() {}, nil
	}
	if lc.File == "" {
		return logging.Discard(), func() {}, nil
	}
	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.New(lc, f), func() { f.Close() }, nil
}

// session opens the store and returns a manager that has not loaded yet.
func (r *runner) session(ctx context.Context) (*shoplist.Manager, func(), error) {
	st := r.opt.Store
	closeFn := func() {}
	if st == nil {
		var err error
		st, err = openStore(ctx, r.cfg.Store, r.logger)
		if err != nil {
			return nil, nil, err
		}
		closeFn = func() {
			if err := st.Close(); err != nil {
				r.logger.Warn("closing store", "error", err)
			}
		}
	}
	return shoplist.New(st, shoplist.WithLogger(r.logger)), closeFn, nil
}

// load opens a session and reads the saved list. A load failure is
// reported but not fatal: the command continues with an empty list.
func (r *runner) load(ctx context.Context) (*shoplist.Manager, func(), bool) {
	m, closeFn, err := r.session(ctx)
	if err != nil {
		ui.Fail(r.errw, "store: "+err.Error())
		return nil, nil, false
	}
	m.Load(ctx)
	if msg := m.Err(); msg != "" {
		ui.Fail(r.errw, msg)
		m.ClearErr()
	}
	return m, closeFn, true
}

// -------------- subcommand impls ----------------

func (r *runner) doList(ctx context.Context) int {
	m, closeFn, ok := r.load(ctx)
	if !ok {
		return 1
	}
	defer closeFn()

	items := m.Items()
	left := m.Remaining()
	done := len(items) - left

	t := ui.Current()
	header := fmt.Sprintf("%s %s  %s %d  %s %d",
		ui.C(t.Title, "Shopping list"), ui.Badge(left),
		ui.C(t.Success, t.SymDone), done,
		ui.C(t.Accent, "Total"), len(items),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(t.Muted, ui.ProgressBar(done, len(items), 28)))
	lines = append(lines, "")

	if r.opt.Group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items, 1)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `shoplist add -c dairy -q 2 Milk`"))
	ui.Panel(r.out, lines)
	return 0
}

func (r *runner) doAdd(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(r.errw)
	qty := fs.Float64("q", 1, "quantity")
	cat := fs.String("c", "", "category ("+categoryValues()+")")
	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return 2
	}
	if len(pos) == 0 {
		ui.Fail(r.errw, "usage: shoplist add -c <category> [-q N] <name...>")
		return 2
	}

	m, closeFn, ok := r.load(ctx)
	if !ok {
		return 1
	}
	defer closeFn()

	it, err := m.Add(ctx, shoplist.Draft{
		Name:     strings.Join(pos, " "),
		Quantity: *qty,
		Category: parseCategoryArg(*cat),
	})
	if err != nil {
		ui.Fail(r.errw, "add: "+err.Error())
		return 2
	}
	ui.OK(r.out, fmt.Sprintf("added %s ×%d (%s)", it.Name, it.Quantity, it.Category.Label()))
	return 0
}

func (r *runner) doToggle(ctx context.Context, ref string) int {
	m, closeFn, ok := r.load(ctx)
	if !ok {
		return 1
	}
	defer closeFn()

	it, code := r.lookup(m, "done", ref)
	if code != 0 {
		return code
	}
	m.Toggle(ctx, it.ID)
	if it.Completed {
		ui.OK(r.out, "unchecked "+it.Name)
	} else {
		ui.OK(r.out, "checked "+it.Name)
	}
	return 0
}

func (r *runner) doRemove(ctx context.Context, ref string) int {
	m, closeFn, ok := r.load(ctx)
	if !ok {
		return 1
	}
	defer closeFn()

	it, code := r.lookup(m, "rm", ref)
	if code != 0 {
		return code
	}
	m.Remove(ctx, it.ID)
	ui.OK(r.out, "removed "+it.Name)
	return 0
}

func (r *runner) doEdit(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(r.errw)
	name := fs.String("n", "", "new name")
	qty := fs.Float64("q", 0, "new quantity")
	cat := fs.String("c", "", "new category ("+categoryValues()+")")
	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return 2
	}
	if len(pos) != 1 {
		ui.Fail(r.errw, "usage: shoplist edit [-n name] [-q N] [-c category] <index|id>")
		return 2
	}

	var u shoplist.Update
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			u.Name = name
		case "q":
			u.Quantity = qty
		case "c":
			c := parseCategoryArg(*cat)
			u.Category = &c
		}
	})
	if u.Name == nil && u.Quantity == nil && u.Category == nil {
		ui.Fail(r.errw, "edit: nothing to change (use -n, -q or -c)")
		return 2
	}

	m, closeFn, ok := r.load(ctx)
	if !ok {
		return 1
	}
	defer closeFn()

	it, code := r.lookup(m, "edit", pos[0])
	if code != 0 {
		return code
	}
	if _, err := m.Edit(ctx, it.ID, u); err != nil {
		ui.Fail(r.errw, "edit: "+err.Error())
		return 2
	}
	got, _ := m.Find(it.ID)
	ui.OK(r.out, fmt.Sprintf("updated %s ×%d (%s)", got.Name, got.Quantity, got.Category.Label()))
	return 0
}

func (r *runner) doCount(ctx context.Context) int {
	m, closeFn, ok := r.load(ctx)
	if !ok {
		return 1
	}
	defer closeFn()
	fmt.Fprintln(r.out, m.Remaining())
	return 0
}

func (r *runner) doCategories() int {
	for _, c := range model.Categories() {
		fmt.Fprintf(r.out, "%-15s %s\n", c, c.Label())
	}
	return 0
}

func (r *runner) doUI(ctx context.Context) int {
	m, closeFn, err := r.session(ctx)
	if err != nil {
		ui.Fail(r.errw, "store: "+err.Error())
		return 1
	}
	defer closeFn()

	if err := tui.Run(ctx, m, tui.Options{LoadDelay: r.cfg.UI.LoadDelay}); err != nil {
		ui.Fail(r.errw, "tui: "+err.Error())
		return 1
	}
	return 0
}

func (r *runner) lookup(m *shoplist.Manager, cmd, ref string) (model.Item, int) {
	it, err := m.Lookup(ref)
	if err != nil {
		ui.Fail(r.errw, cmd+": "+err.Error())
		if errors.Is(err, shoplist.ErrNoMatch) {
			fmt.Fprintln(r.errw, ui.Dim("Hint: run `shoplist ls` to see valid indexes"))
		}
		return model.Item{}, 2
	}
	return it, 0
}

// parseInterspersed lets flags appear before or after positional args.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return pos, nil
		}
		pos = append(pos, rest[0])
		args = rest[1:]
	}
}

// parseCategoryArg accepts values and labels; anything else is passed
// through so validation reports it.
func parseCategoryArg(s string) model.Category {
	if c, ok := model.ParseCategory(s); ok {
		return c
	}
	return model.Category(strings.TrimSpace(s))
}

func categoryValues() string {
	cs := model.Categories()
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
