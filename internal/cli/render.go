package cli

import (
	"fmt"

	"github.com/Makepad-fr/shoplist/internal/model"
	"github.com/Makepad-fr/shoplist/internal/ui"
)

const maxNameWidth = 60

// flatLines renders items numbered from start.
func flatLines(items []model.Item, start int) []string {
	if len(items) == 0 {
		return []string{ui.C(ui.Current().Muted, "your list is empty")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		out = append(out, itemLine(i+start, it))
	}
	return out
}

func itemLine(n int, it model.Item) string {
	t := ui.Current()
	box, color := t.BoxUnchecked, t.Muted
	if it.Completed {
		box, color = t.BoxChecked, t.Success
	}
	name := it.Name
	if r := []rune(name); len(r) > maxNameWidth {
		name = string(r[:maxNameWidth-3]) + "..."
	}
	return fmt.Sprintf("%s %s %s ×%d  %s",
		ui.Dim(fmt.Sprintf("%2d.", n)), ui.C(color, box), name, it.Quantity,
		ui.C(t.Muted, it.Category.Label()))
}

// groupLines splits pending and bought items. Indexes stay the positions
// shown by the flat listing so they can be passed to done/rm/edit.
func groupLines(items []model.Item) []string {
	t := ui.Current()
	var pend, done []string
	for i, it := range items {
		if it.Completed {
			done = append(done, itemLine(i+1, it))
		} else {
			pend = append(pend, itemLine(i+1, it))
		}
	}
	none := ui.C(t.Muted, "(none)")

	var lines []string
	lines = append(lines, ui.C(t.Pending, t.SymUnchecked+" To buy"))
	if len(pend) == 0 {
		lines = append(lines, none)
	} else {
		lines = append(lines, pend...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Success, t.SymDone+" In the cart"))
	if len(done) == 0 {
		lines = append(lines, none)
	} else {
		lines = append(lines, done...)
	}
	return lines
}
