package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/shoplist/internal/shoplist"
)

// Options configure the interactive list.
type Options struct {
	// LoadDelay holds the loading placeholder on screen before the list
	// is read. Zero loads immediately.
	LoadDelay time.Duration
}

// loadMsg tells the model the startup delay is over.
type loadMsg struct{}

var keys = struct {
	add, edit, toggle, remove key.Binding
}{
	add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	remove: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
}

// Model is the Bubble Tea model for the interactive list. All mutations go
// through the list manager, which persists after each one.
type Model struct {
	ctx   context.Context
	mgr   *shoplist.Manager
	delay time.Duration

	loading bool
	spin    spinner.Model
	list    list.Model

	form     form
	formOpen bool

	width, height int
}

// New builds a model that loads mgr once started.
func New(ctx context.Context, mgr *shoplist.Manager, opt Options) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	extra := func() []key.Binding {
		return []key.Binding{keys.add, keys.edit, keys.toggle, keys.remove}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	return Model{
		ctx:     ctx,
		mgr:     mgr,
		delay:   opt.LoadDelay,
		loading: true,
		spin:    sp,
		list:    l,
		form:    newForm(),
		width:   80,
		height:  24,
	}
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, mgr *shoplist.Manager, opt Options) error {
	p := tea.NewProgram(New(ctx, mgr, opt), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, loadAfter(m.delay))
}

// loadAfter is a tea.Tick, so quitting before it fires simply drops it.
func loadAfter(d time.Duration) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return loadMsg{} }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return loadMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case loadMsg:
		m.mgr.Load(m.ctx)
		m.loading = false
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.loading {
			if msg.String() == "q" || msg.String() == "esc" {
				return m, tea.Quit
			}
			return m, nil
		}
		if m.formOpen {
			return m.updateForm(msg)
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case msg.String() == "q":
			return m, tea.Quit
		case key.Matches(msg, keys.toggle):
			if id, ok := m.selectedID(); ok {
				m.mgr.Toggle(m.ctx, id)
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, keys.remove):
			if id, ok := m.selectedID(); ok {
				m.mgr.Remove(m.ctx, id)
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, keys.add):
			m.mgr.ClearErr()
			m.form.reset()
			m.formOpen = true
			m.resize()
			return m, textinput.Blink
		case key.Matches(msg, keys.edit):
			if id, ok := m.selectedID(); ok {
				if it, found := m.mgr.Find(id); found {
					m.mgr.ClearErr()
					m.form.fill(it)
					m.formOpen = true
					m.resize()
					return m, textinput.Blink
				}
			}
			return m, nil
		}
	}

	if m.loading {
		return m, nil
	}
	if m.formOpen {
		return m, m.form.handle(msg)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		return m, nil
	case "enter":
		if m.form.mode == addForm {
			if _, err := m.mgr.Add(m.ctx, m.form.draft()); err != nil {
				return m, nil
			}
			// stay open for the next item, back at the defaults
			m.form.reset()
			m.refresh()
			m.list.Select(0)
			return m, nil
		}
		if _, err := m.mgr.Edit(m.ctx, m.form.editID, m.form.update()); err != nil {
			return m, nil
		}
		m.closeForm()
		m.refresh()
		return m, nil
	}
	return m, m.form.handle(msg)
}

func (m *Model) closeForm() {
	m.formOpen = false
	m.form.reset()
	m.form.name.Blur()
	m.mgr.ClearErr()
	m.resize()
}

func (m Model) selectedID() (string, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return "", false
	}
	return it.ID, true
}

// refresh copies the manager's list into the widget and updates the title.
func (m *Model) refresh() {
	idx := m.list.Index()
	m.list.SetItems(toListItems(m.mgr.Items()))
	if n := len(m.list.Items()); idx >= n && n > 0 {
		m.list.Select(n - 1)
	}
	m.list.Title = fmt.Sprintf("%s %s",
		titleStyle.Render("Shopping list"),
		badgeStyle.Render(fmt.Sprintf("%d left", m.mgr.Remaining())),
	)
}

func (m *Model) resize() {
	h := m.height - 4
	if m.formOpen {
		h -= 7
	}
	if m.mgr.Err() != "" && !m.formOpen {
		h--
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

func (m Model) View() string {
	if m.loading {
		return panelStyle.Render(m.spin.View() + " Loading your list...")
	}

	var b strings.Builder
	if m.mgr.Len() == 0 {
		b.WriteString(m.list.Title)
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("Your list is empty. Press a to add an item, q to quit."))
	} else {
		b.WriteString(m.list.View())
	}

	if m.formOpen {
		b.WriteString("\n")
		b.WriteString(m.form.view(m.mgr.Err()))
	} else if msg := m.mgr.Err(); msg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("✖ " + msg))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(panelStyle.Render(b.String()))
}
