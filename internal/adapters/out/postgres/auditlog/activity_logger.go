// Package auditlog writes human-readable activity lines to an append-only
// table. The sink runs outside command transactions: a failed audit write is
// logged and dropped, it never rolls back the business change.
package auditlog

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityLogDTO represents one audit line. ActorID is null for actions taken
// by the scheduler.
type ActivityLogDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ActorID   *uuid.UUID `gorm:"type:uuid;index"`
	Message   string
	CreatedAt time.Time
}

// TableName specifies the database table name for audit lines.
func (ActivityLogDTO) TableName() string {
	return "activity_log"
}

// GormActivityLogger implements ports.ActivityLogger on a plain table.
type GormActivityLogger struct {
	db *gorm.DB
}

// NewGormActivityLogger creates an audit sink over the given connection.
func NewGormActivityLogger(db *gorm.DB) *GormActivityLogger {
	return &GormActivityLogger{db: db}
}

// Log appends one audit line. A nil actor marks a scheduler action.
func (l *GormActivityLogger) Log(ctx context.Context, actorID *kernel.UUID, message string) error {
	dto := ActivityLogDTO{
		ID:        uuid.New(),
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if actorID != nil {
		raw := actorID.Bytes()
		dto.ActorID = &raw
	}

	return l.db.WithContext(ctx).Create(&dto).Error
}
