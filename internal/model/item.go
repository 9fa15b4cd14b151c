package model

// Item is the domain model for a shopping-list entry.
// CreatedAt is milliseconds since the Unix epoch.
type Item struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	Category  Category `json:"category"`
	Completed bool     `json:"completed"`
	CreatedAt int64    `json:"createdAt"`
}
