// internal/domain/models/inventory.go
package models

// InventoryItem is a stocked part or product. Name is the item's identifier.
type InventoryItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"` // never negative; 0 means out of stock
}

// OutOfStock reports whether the item has no units left.
func (i InventoryItem) OutOfStock() bool {
	return i.Quantity == 0
}
