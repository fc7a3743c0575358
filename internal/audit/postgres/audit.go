package postgres

import (
	"github.com/frahmantamala/allowance-management/internal/audit"
	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.RepositoryAPI {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(entry *audit.AuditEntry) error {
	return r.db.Create(entry).Error
}

func (r *AuditRepository) List(eventType string, actorID int64, page, limit int) ([]*audit.AuditEntry, int64, error) {
	q := r.db.Model(&audit.AuditEntry{})
	if eventType != "" {
		q = q.Where("event_type = ?", eventType)
	}
	if actorID > 0 {
		q = q.Where("actor_id = ?", actorID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []*audit.AuditEntry
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&entries).Error
	return entries, total, err
}
