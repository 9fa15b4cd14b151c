package tui

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/shoplist/internal/model"
	"github.com/Makepad-fr/shoplist/internal/shoplist"
)

type formMode int

const (
	addForm formMode = iota
	editForm
)

const (
	fieldName = iota
	fieldQty
	fieldCategory
	fieldCount
)

// form stages input for Add and Edit. It has no life of its own: the
// model opens it, feeds it keys and reads Draft/Update back on submit.
type form struct {
	mode   formMode
	editID string

	name     textinput.Model
	qty      textinput.Model
	category model.Category // "" until the user picks one
	focus    int
}

func newForm() form {
	name := textinput.New()
	name.Prompt = "Name     "
	name.Placeholder = "e.g. Milk"
	name.CharLimit = 200

	qty := textinput.New()
	qty.Prompt = "Quantity "
	qty.CharLimit = 6

	f := form{name: name, qty: qty}
	f.reset()
	return f
}

// reset restores the add defaults: empty name, quantity 1, no category.
func (f *form) reset() {
	f.mode = addForm
	f.editID = ""
	f.name.SetValue("")
	f.qty.SetValue("1")
	f.category = ""
	f.setFocus(fieldName)
}

// fill pre-loads the form with an existing item for editing.
func (f *form) fill(it model.Item) {
	f.mode = editForm
	f.editID = it.ID
	f.name.SetValue(it.Name)
	f.name.CursorEnd()
	f.qty.SetValue(strconv.Itoa(it.Quantity))
	f.category = it.Category
	f.setFocus(fieldName)
}

func (f *form) setFocus(i int) {
	f.focus = (i%fieldCount + fieldCount) % fieldCount
	f.name.Blur()
	f.qty.Blur()
	switch f.focus {
	case fieldName:
		f.name.Focus()
	case fieldQty:
		f.qty.Focus()
	}
}

// quantity parses the quantity field. Unparseable input becomes NaN so the
// list manager rejects it with its usual message.
func (f *form) quantity() float64 {
	q, err := strconv.ParseFloat(strings.TrimSpace(f.qty.Value()), 64)
	if err != nil {
		return math.NaN()
	}
	return q
}

func (f *form) draft() shoplist.Draft {
	return shoplist.Draft{
		Name:     f.name.Value(),
		Quantity: f.quantity(),
		Category: f.category,
	}
}

func (f *form) update() shoplist.Update {
	name := f.name.Value()
	q := f.quantity()
	c := f.category
	return shoplist.Update{Name: &name, Quantity: &q, Category: &c}
}

// handle routes a key to the focused field. Enter and esc are left to
// the caller.
func (f *form) handle(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return nil
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return nil
		}
		if f.focus == fieldCategory {
			switch k.String() {
			case "right", "l", " ":
				f.category = f.category.Next()
			case "left", "h":
				if f.category == "" {
					f.category = model.Categories()[len(model.Categories())-1]
				} else {
					f.category = f.category.Prev()
				}
			}
			return nil
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldQty:
		f.qty, cmd = f.qty.Update(msg)
	}
	return cmd
}

func (f *form) view(errMsg string) string {
	title := "Add item"
	if f.mode == editForm {
		title = "Edit item"
	}
	title = titleStyle.Render(title)
	if errMsg != "" {
		title += "  " + errorStyle.Render(errMsg)
	}

	cat := mutedStyle.Render("choose with ←/→")
	if f.category != "" {
		cat = f.category.Label()
	}
	catLine := "Category ‹ " + cat + " ›"
	if f.focus == fieldCategory {
		catLine = focusStyle.Render("Category") + " ‹ " + cat + " ›"
	}

	lines := []string{
		title,
		f.name.View(),
		f.qty.View(),
		catLine,
		helpStyle.Render("tab next field • enter save • esc cancel"),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}
