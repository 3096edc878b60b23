package sessionrepo

import (
	"context"
	"errors"
	"time"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSessionRepository implements SessionRepository using GORM.
type GormSessionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSessionRepository creates a new GORM session repository.
func NewGormSessionRepository(db *gorm.DB, tracker aggregateTracker) *GormSessionRepository {
	return &GormSessionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new session to the database together with its snapshot rows.
func (r *GormSessionRepository) Add(ctx context.Context, aggregate *checkout.Session) error {
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

// Update saves an existing session to the database. The session row is
// written in full so columns for discarded steps are set back to NULL, and
// snapshot rows are replaced wholesale because they carry no domain identity.
func (r *GormSessionRepository) Update(ctx context.Context, aggregate *checkout.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	items := dto.Items
	dto.Items = nil

	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.db.WithContext(ctx).Where("session_id = ?", dto.ID).Delete(&SessionItemDTO{}).Error; err != nil {
		return err
	}
	if len(items) > 0 {
		if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a session by ID.
func (r *GormSessionRepository) Get(ctx context.Context, id kernel.UUID) (*checkout.Session, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SessionDTO
	if err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("checkout session", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindIdleSince retrieves non-consumed sessions that have not changed since
// the cutoff. Consumed sessions are excluded because they must survive for
// idempotency reconciliation.
func (r *GormSessionRepository) FindIdleSince(ctx context.Context, cutoff time.Time) ([]*checkout.Session, error) {
	var dtos []SessionDTO
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("submission_status != ? AND updated_at < ?", checkout.SubmissionConsumed.String(), cutoff).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	sessions := make([]*checkout.Session, 0, len(dtos))
	for _, dto := range dtos {
		session, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

// Delete removes a session and its snapshot rows.
func (r *GormSessionRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Where("session_id = ?", id.Bytes()).Delete(&SessionItemDTO{}).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&SessionDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("checkout session", id.String())
	}

	return nil
}
