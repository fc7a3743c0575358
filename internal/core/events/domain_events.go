package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeOrderCreated      = "order.created"
	TypeAllowanceIssued   = "allowance.issued"
	TypeBalanceAdjusted   = "allowance.balance_adjusted"
	TypeGroupAssigned     = "allowance_group.assigned"
	TypeResourceMutated   = "resource.mutated"
	TypeOverUsageDetected = "allowance.over_usage_detected"
)

// DomainEvent is the concrete event shape published by services.
type DomainEvent struct {
	ID        string
	Type      string
	Timestamp time.Time
	ActorID   int64
	Entity    string
	EntityID  int64
	Detail    map[string]interface{}
}

func (e DomainEvent) EventType() string     { return e.Type }
func (e DomainEvent) EventID() string       { return e.ID }
func (e DomainEvent) OccurredAt() time.Time { return e.Timestamp }
func (e DomainEvent) Payload() interface{}  { return e.Detail }

func newEvent(eventType string, actorID int64, entity string, entityID int64, detail map[string]interface{}) DomainEvent {
	return DomainEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		ActorID:   actorID,
		Entity:    entity,
		EntityID:  entityID,
		Detail:    detail,
	}
}

func NewOrderCreated(actorID, orderID, employeeID, totalCents int64, orderType string) DomainEvent {
	return newEvent(TypeOrderCreated, actorID, "order", orderID, map[string]interface{}{
		"employee_id": employeeID,
		"total_cents": totalCents,
		"order_type":  orderType,
	})
}

func NewAllowanceIssued(actorID, allowanceID, userID, amountCents int64, month, year int) DomainEvent {
	return newEvent(TypeAllowanceIssued, actorID, "employee_allowance", allowanceID, map[string]interface{}{
		"user_id":      userID,
		"amount_cents": amountCents,
		"month":        month,
		"year":         year,
	})
}

func NewBalanceAdjusted(actorID, allowanceID, deltaCents, balanceCents int64) DomainEvent {
	return newEvent(TypeBalanceAdjusted, actorID, "employee_allowance", allowanceID, map[string]interface{}{
		"delta_cents":   deltaCents,
		"balance_cents": balanceCents,
	})
}

func NewGroupAssigned(actorID, userID, groupID int64) DomainEvent {
	return newEvent(TypeGroupAssigned, actorID, "user", userID, map[string]interface{}{
		"group_id": groupID,
	})
}

func NewOverUsageDetected(userID, allowanceID, overCents int64) DomainEvent {
	return newEvent(TypeOverUsageDetected, 0, "employee_allowance", allowanceID, map[string]interface{}{
		"user_id":    userID,
		"over_cents": overCents,
	})
}

func NewResourceMutated(actorID int64, entity string, entityID int64, action string) DomainEvent {
	return newEvent(TypeResourceMutated, actorID, entity, entityID, map[string]interface{}{
		"action": action,
	})
}
