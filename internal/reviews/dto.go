package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/selimkhoury/storefront-backend/pkg/db/models"
)

// ReviewDTO is the transport shape for a single review.
type ReviewDTO struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	ItemID     uuid.UUID `json:"item_id"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	IsFlagged  bool      `json:"is_flagged"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ReviewDetailsDTO joins the review with the reviewer and product names.
type ReviewDetailsDTO struct {
	ID           uuid.UUID `json:"id"`
	CustomerName string    `json:"customer_name"`
	ProductName  string    `json:"product_name"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment,omitempty"`
	IsFlagged    bool      `json:"is_flagged"`
	CreatedAt    time.Time `json:"created_at"`
}

// SubmitReviewInput captures a new review submission.
type SubmitReviewInput struct {
	CustomerID uuid.UUID
	ItemID     uuid.UUID
	Rating     int
	Comment    *string
}

// UpdateReviewInput carries the fields an author may change.
type UpdateReviewInput struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

func FromModel(r *models.Review) *ReviewDTO {
	if r == nil {
		return nil
	}
	return &ReviewDTO{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		ItemID:     r.ItemID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		IsFlagged:  r.IsFlagged,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
