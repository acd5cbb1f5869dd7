package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selimkhoury/storefront-backend/internal/cart"
	"github.com/selimkhoury/storefront-backend/pkg/db/models"
	"github.com/selimkhoury/storefront-backend/pkg/logger"
)

const defaultCartMaxAge = 24 * time.Hour

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Notifier delivers an abandoned-cart notice to the customer.
type Notifier interface {
	NotifyAbandonedCart(ctx context.Context, customerID, itemID uuid.UUID, quantity int) error
}

// AbandonedCartJobParams configure the abandoned cart sweep.
type AbandonedCartJobParams struct {
	Logger   *logger.Logger
	DB       txRunner
	Repo     *cart.Repository
	Notifier Notifier
	MaxAge   time.Duration
}

// NewAbandonedCartJob builds the job that notifies customers about stale
// cart entries and clears them.
func NewAbandonedCartJob(params AbandonedCartJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	maxAge := params.MaxAge
	if maxAge <= 0 {
		maxAge = defaultCartMaxAge
	}
	return &abandonedCartJob{
		logg:     params.Logger,
		db:       params.DB,
		repo:     params.Repo,
		notifier: params.Notifier,
		maxAge:   maxAge,
		now:      time.Now,
	}, nil
}

type abandonedCartJob struct {
	logg     *logger.Logger
	db       txRunner
	repo     *cart.Repository
	notifier Notifier
	maxAge   time.Duration
	now      func() time.Time
}

func (j *abandonedCartJob) Name() string { return "abandoned-cart-sweep" }

func (j *abandonedCartJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.maxAge)
	var swept []models.CartItem
	err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := j.repo.WithTx(tx)
		stale, err := repo.ListAbandoned(ctx, cutoff)
		if err != nil {
			return err
		}
		if len(stale) == 0 {
			return nil
		}
		ids := make([]uuid.UUID, 0, len(stale))
		for _, entry := range stale {
			ids = append(ids, entry.ID)
		}
		if _, err := repo.DeleteByIDs(ctx, ids); err != nil {
			return err
		}
		swept = stale
		return nil
	})
	if err != nil {
		return fmt.Errorf("abandoned cart sweep: %w", err)
	}

	for _, entry := range swept {
		if err := j.notifier.NotifyAbandonedCart(ctx, entry.CustomerID, entry.ItemID, entry.Quantity); err != nil {
			notifyCtx := j.logg.WithField(ctx, "customer_id", entry.CustomerID.String())
			j.logg.Error(notifyCtx, "abandoned cart notification failed", err)
		}
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":       cutoff,
		"rows_swept":   len(swept),
		"max_age_mins": j.maxAge.Minutes(),
	})
	j.logg.Info(logCtx, "abandoned cart sweep complete")
	return nil
}

// LogNotifier logs the abandoned-cart notice instead of delivering it.
// It stands in until a real delivery channel exists.
type LogNotifier struct {
	Logger *logger.Logger
}

// NotifyAbandonedCart records the notice in the application log.
func (n *LogNotifier) NotifyAbandonedCart(ctx context.Context, customerID, itemID uuid.UUID, quantity int) error {
	logCtx := n.Logger.WithFields(ctx, map[string]any{
		"customer_id": customerID.String(),
		"item_id":     itemID.String(),
		"quantity":    quantity,
	})
	n.Logger.Info(logCtx, "cart entry expired; customer should be notified")
	return nil
}
