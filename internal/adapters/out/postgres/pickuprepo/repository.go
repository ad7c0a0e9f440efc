package pickuprepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pickup"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockNotAvailable is the postgres error code raised by FOR UPDATE NOWAIT
// when another transaction holds the row lock.
const lockNotAvailable = "55P03"

// uniqueViolation is the postgres error code for a broken unique constraint:
// the order_id index (one pickup per order) or the partial driver index (one
// open pickup per driver).
const uniqueViolation = "23505"

// GormPickupRepository implements PickupRepository using GORM.
type GormPickupRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPickupRepository creates a new GORM pickup repository.
func NewGormPickupRepository(db *gorm.DB, tracker aggregateTracker) *GormPickupRepository {
	return &GormPickupRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new pickup with its initial ledger, if any.
func (r *GormPickupRepository) Add(ctx context.Context, aggregate *pickup.Pickup) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	for _, event := range aggregate.Events() {
		dto.Events = append(dto.Events, eventFromDomain(event))
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return mapWriteError(err, aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the pickup row and appends the not yet persisted tail of the
// tracking ledger. Existing ledger rows are never touched.
func (r *GormPickupRepository) Update(ctx context.Context, aggregate *pickup.Pickup) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PickupDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":       dto.Status,
			"driver_id":    dto.DriverID,
			"location":     dto.Location,
			"scheduled_at": dto.ScheduledAt,
			"notes":        dto.Notes,
		})
	if result.Error != nil {
		return mapWriteError(result.Error, aggregate.ID().String())
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	for _, event := range aggregate.NewEvents() {
		eventDTO := eventFromDomain(event)
		if err := r.db.WithContext(ctx).Create(&eventDTO).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a pickup by ID with its full tracking history.
func (r *GormPickupRepository) Get(ctx context.Context, id kernel.UUID) (*pickup.Pickup, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.getOne(ctx, r.db.WithContext(ctx), "id = ?", []any{id.Bytes()}, id.String())
}

// GetForUpdate retrieves a pickup while locking its row with NOWAIT. Lock
// contention surfaces as an error wrapping errs.ErrBusy instead of blocking.
func (r *GormPickupRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*pickup.Pickup, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE", Options: "NOWAIT"})
	return r.getOne(ctx, db, "id = ?", []any{id.Bytes()}, id.String())
}

// GetByOrder retrieves the pickup belonging to an order.
func (r *GormPickupRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*pickup.Pickup, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	return r.getOne(ctx, r.db.WithContext(ctx), "order_id = ?", []any{orderID.Bytes()}, orderID.String())
}

// GetOpenByDriver retrieves the open pickup assigned to a driver. A not found
// result means the driver is available.
func (r *GormPickupRepository) GetOpenByDriver(ctx context.Context, driverID kernel.UUID) (*pickup.Pickup, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	return r.getOne(
		ctx,
		r.db.WithContext(ctx),
		"driver_id = ? AND status IN ?",
		[]any{driverID.Bytes(), []int{int(status.Assigned), int(status.InTransit)}},
		driverID.String(),
	)
}

// GetFirstPending retrieves the oldest pickup still waiting for a driver,
// locking it like GetForUpdate.
func (r *GormPickupRepository) GetFirstPending(ctx context.Context) (*pickup.Pickup, error) {
	db := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "NOWAIT"}).
		Order("created_at")
	return r.getOne(ctx, db, "status = ?", []any{int(status.Pending)}, "first pending")
}

// mapWriteError translates unique violations into errs.ErrDuplicateRecord.
// Command handlers turn the sentinel into the operation-specific conflict.
func mapWriteError(err error, lookup string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("pickup %s: %s: %w", lookup, pgErr.ConstraintName, errs.ErrDuplicateRecord)
	}
	return err
}

func (r *GormPickupRepository) getOne(
	ctx context.Context,
	db *gorm.DB,
	condition string,
	args []any,
	lookup string,
) (*pickup.Pickup, error) {
	var dto PickupDTO
	err := db.First(&dto, append([]any{condition}, args...)...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pickup", lookup)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == lockNotAvailable {
			return nil, fmt.Errorf("pickup %s: %w", lookup, errs.ErrBusy)
		}
		return nil, err
	}

	// Events are loaded separately so the row lock never spans the join.
	err = r.db.WithContext(ctx).
		Where("pickup_id = ?", dto.ID).
		Order("seq").
		Find(&dto.Events).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}
