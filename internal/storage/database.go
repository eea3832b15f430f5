package storage

import (
	"fmt"

	"github.com/Ananth-NQI/fraudshield-backend/internal/models"
	"gorm.io/gorm"
)

// DatabaseStore keeps the verification audit trail in PostgreSQL
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore wraps an open gorm connection
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (d *DatabaseStore) RecordEvent(event *models.VerificationEvent) error {
	if err := d.db.Create(event).Error; err != nil {
		return fmt.Errorf("failed to record verification event: %w", err)
	}
	return nil
}

func (d *DatabaseStore) ListEvents(userID string, limit int) ([]*models.VerificationEvent, error) {
	var events []*models.VerificationEvent
	query := d.db.Where("user_id = ?", userID).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list verification events: %w", err)
	}
	return events, nil
}

func (d *DatabaseStore) Ping() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
