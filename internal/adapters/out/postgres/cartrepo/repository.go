package cartrepo

import (
	"context"
	"errors"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB, tracker aggregateTracker) *GormCartRepository {
	return &GormCartRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new cart to the database.
func (r *GormCartRepository) Add(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing cart to the database. Line items removed from the
// aggregate since it was loaded are deleted; merged or changed items are
// upserted.
func (r *GormCartRepository) Update(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	// Save upserts associations but never deletes them, so rows for removed
	// items have to be pruned explicitly.
	keptIDs := make([]any, 0, len(dto.Items))
	for _, item := range dto.Items {
		keptIDs = append(keptIDs, item.ID)
	}
	prune := r.db.WithContext(ctx).Where("cart_id = ?", dto.ID)
	if len(keptIDs) > 0 {
		prune = prune.Where("id NOT IN ?", keptIDs)
	}
	if err := prune.Delete(&CartItemDTO{}).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a cart by ID.
func (r *GormCartRepository) Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	if err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
