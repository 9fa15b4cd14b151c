package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/shoplist/internal/model"
)

// listItem adapts model.Item to bubbles/list.Item
type listItem struct {
	model.Item
}

func (i listItem) Title() string {
	box := boxUnchecked
	if i.Completed {
		box = boxChecked
	}
	return fmt.Sprintf("%s %s ×%d", box, i.Name, i.Quantity)
}

func (i listItem) Description() string { return i.Category.Label() }
func (i listItem) FilterValue() string { return i.Name + " " + i.Category.Label() }

// itemDelegate renders one item per line: box, name, quantity, category.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}

	box := mutedStyle.Render(boxUnchecked)
	text := fmt.Sprintf("%s ×%d", it.Name, it.Quantity)
	if it.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	line := fmt.Sprintf("%s %s %s", box, text, mutedStyle.Render("· "+it.Category.Label()))

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprint(w, prefix+line)
}

func toListItems(items []model.Item) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, listItem{Item: it})
	}
	return out
}
