package cart

import (
	"time"

	"github.com/google/uuid"
)

// CartEntryDTO is a cart row joined with the item it references.
type CartEntryDTO struct {
	ItemID   uuid.UUID `json:"item_id"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

// AddToCartInput captures an add-or-increment request.
type AddToCartInput struct {
	CustomerID uuid.UUID
	ItemID     uuid.UUID
	Quantity   int
}
