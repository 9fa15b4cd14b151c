package shoplist

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Makepad-fr/shoplist/internal/model"
)

// Validation errors. Their messages are shown to the user as-is.
var (
	ErrNameRequired     = errors.New("name required")
	ErrQuantityInvalid  = errors.New("quantity must be positive")
	ErrQuantityTooLarge = errors.New("quantity too large")
	ErrCategoryRequired = errors.New("category required")
)

// MaxQuantity is the largest quantity a JSON number carries exactly.
const MaxQuantity = 1 << 53

// Lookup errors.
var (
	ErrNoMatch   = errors.New("no such item")
	ErrAmbiguous = errors.New("ambiguous item reference")
)

// List is the ordered collection, newest first.
// Every operation below returns a new slice and leaves its input untouched.
type List []model.Item

// Draft is the content of the add form.
// Quantity is a float so callers can pass raw numeric input; it is floored.
type Draft struct {
	Name     string
	Quantity float64
	Category model.Category
}

// Update carries the edit form. Nil fields keep the item's current value.
type Update struct {
	Name     *string
	Quantity *float64
	Category *model.Category
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	return name, nil
}

// validateQuantity floors q; anything that does not floor to at least 1 is
// rejected, so 0.5 is as invalid as 0.
func validateQuantity(q float64) (int, error) {
	if math.IsNaN(q) || math.IsInf(q, 0) || q <= 0 {
		return 0, ErrQuantityInvalid
	}
	f := math.Floor(q)
	if f < 1 {
		return 0, ErrQuantityInvalid
	}
	if f > MaxQuantity {
		return 0, ErrQuantityTooLarge
	}
	return int(f), nil
}

func validateCategory(c model.Category) error {
	if !c.Valid() {
		return ErrCategoryRequired
	}
	return nil
}

// Add validates d and prepends a new item. The first failing check wins:
// name, then quantity, then category.
func Add(l List, d Draft, now time.Time, id string) (List, model.Item, error) {
	name, err := validateName(d.Name)
	if err != nil {
		return l, model.Item{}, err
	}
	qty, err := validateQuantity(d.Quantity)
	if err != nil {
		return l, model.Item{}, err
	}
	if err := validateCategory(d.Category); err != nil {
		return l, model.Item{}, err
	}

	it := model.Item{
		ID:        id,
		Name:      name,
		Quantity:  qty,
		Category:  d.Category,
		Completed: false,
		CreatedAt: now.UnixMilli(),
	}
	out := make(List, 0, len(l)+1)
	out = append(out, it)
	out = append(out, l...)
	return out, it, nil
}

// Toggle flips the completion flag of id. ok is false when id is unknown.
func Toggle(l List, id string) (List, bool) {
	i := l.index(id)
	if i < 0 {
		return l, false
	}
	out := l.clone()
	out[i].Completed = !out[i].Completed
	return out, true
}

// Remove drops id from the list. ok is false when id is unknown.
func Remove(l List, id string) (List, bool) {
	i := l.index(id)
	if i < 0 {
		return l, false
	}
	out := make(List, 0, len(l)-1)
	out = append(out, l[:i]...)
	out = append(out, l[i+1:]...)
	return out, true
}

// Edit applies u to id in place. ok is false when id is unknown.
// On a validation error the list is returned unchanged.
func Edit(l List, id string, u Update) (List, bool, error) {
	i := l.index(id)
	if i < 0 {
		return l, false, nil
	}
	cur := l[i]

	name := cur.Name
	if u.Name != nil {
		name = *u.Name
	}
	q := float64(cur.Quantity)
	if u.Quantity != nil {
		q = *u.Quantity
	}
	cat := cur.Category
	if u.Category != nil {
		cat = *u.Category
	}

	name, err := validateName(name)
	if err != nil {
		return l, true, err
	}
	qty, err := validateQuantity(q)
	if err != nil {
		return l, true, err
	}
	if err := validateCategory(cat); err != nil {
		return l, true, err
	}

	out := l.clone()
	out[i].Name = name
	out[i].Quantity = qty
	out[i].Category = cat
	return out, true, nil
}

// Remaining counts items not yet completed.
func Remaining(l List) int {
	n := 0
	for _, it := range l {
		if !it.Completed {
			n++
		}
	}
	return n
}

// Find returns the item with id and its position.
func (l List) Find(id string) (model.Item, int, bool) {
	i := l.index(id)
	if i < 0 {
		return model.Item{}, -1, false
	}
	return l[i], i, true
}

// Lookup resolves a user reference: a 1-based position in display order,
// a full id, or a unique id prefix. A number outside the list is retried
// as an id prefix, since uuids may start with digits.
func (l List) Lookup(ref string) (model.Item, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Item{}, ErrNoMatch
	}
	n, err := strconv.Atoi(ref)
	isNum := err == nil
	if isNum && n >= 1 && n <= len(l) {
		return l[n-1], nil
	}
	if it, _, ok := l.Find(ref); ok {
		return it, nil
	}
	var match *model.Item
	for i := range l {
		if strings.HasPrefix(l[i].ID, ref) {
			if match != nil {
				return model.Item{}, fmt.Errorf("%w: %q", ErrAmbiguous, ref)
			}
			match = &l[i]
		}
	}
	if match != nil {
		return *match, nil
	}
	if isNum {
		return model.Item{}, fmt.Errorf("%w: index out of range: have %d, got %d", ErrNoMatch, len(l), n)
	}
	return model.Item{}, fmt.Errorf("%w: %q", ErrNoMatch, ref)
}

func (l List) index(id string) int {
	for i := range l {
		if l[i].ID == id {
			return i
		}
	}
	return -1
}

func (l List) clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}
