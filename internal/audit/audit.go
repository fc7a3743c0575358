package audit

import (
	"time"
)

// AuditEntry is one recorded domain event. Detail keeps the event
// payload as JSON so the trail survives schema drift in the events.
type AuditEntry struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	EventID   string    `json:"event_id" gorm:"not null;uniqueIndex"`
	EventType string    `json:"event_type" gorm:"not null;index"`
	ActorID   int64     `json:"actor_id" gorm:"index"`
	Entity    string    `json:"entity" gorm:"not null"`
	EntityID  int64     `json:"entity_id"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (AuditEntry) TableName() string {
	return "audit_entries"
}

type EntriesResponse struct {
	Entries []*AuditEntry `json:"entries"`
	Page    int           `json:"page"`
	Limit   int           `json:"limit"`
	Total   int64         `json:"total"`
}
