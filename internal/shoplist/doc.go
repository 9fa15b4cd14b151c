// Package shoplist holds the list manager.
//
// The package has two layers. The free functions (Add, Toggle, Remove, Edit,
// Remaining) are pure: they take a List and return a new one. Manager wraps
// them as the session state container, loading the List from a store.Store
// at startup and writing the whole List back after each successful mutation.
//
// Validation failures surface as ErrNameRequired, ErrQuantityInvalid,
// ErrQuantityTooLarge and ErrCategoryRequired. Load never fails; a corrupt or
// unreadable value leaves an empty list and a message in Manager.Err.
package shoplist
