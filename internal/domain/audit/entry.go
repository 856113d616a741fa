package audit

import (
	"encoding/json"
	"time"

	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Entry is one append-only audit record. Entries are never updated or
// deleted; references to stores, products and users are nullable so an
// entry survives deletion of what it refers to.
type Entry struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Action    string     `gorm:"type:varchar(64);not null;index"`
	StoreID   *uuid.UUID `gorm:"type:uuid;index"`
	ProductID *uuid.UUID `gorm:"type:uuid;index"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	Actor     string     `gorm:"type:varchar(255);not null;default:'system'"`
	Details   []byte     `gorm:"type:jsonb"`
	CreatedAt time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Entry) TableName() string {
	return "audit_entries"
}

// MovementDetails is the details payload written for stock movement entries
type MovementDetails struct {
	MovementID uuid.UUID `json:"movement_id"`
	Quantity   int64     `json:"quantity"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewEntry creates an audit entry with an arbitrary details payload
func NewEntry(action, actor string, details interface{}) (*Entry, error) {
	if action == "" {
		return nil, shared.NewDomainError("INVALID_ACTION", "Audit action is required")
	}
	if actor == "" {
		actor = "system"
	}

	var payload []byte
	if details != nil {
		var err error
		payload, err = json.Marshal(details)
		if err != nil {
			return nil, err
		}
	}

	return &Entry{
		ID:        uuid.New(),
		Action:    action,
		Actor:     actor,
		Details:   payload,
		CreatedAt: time.Now(),
	}, nil
}

// NewMovementEntry creates the audit entry for a reconciled stock movement
func NewMovementEntry(action, actor string, storeID, productID uuid.UUID, userID *uuid.UUID, details MovementDetails) (*Entry, error) {
	entry, err := NewEntry(action, actor, details)
	if err != nil {
		return nil, err
	}
	entry.StoreID = &storeID
	entry.ProductID = &productID
	entry.UserID = userID
	return entry, nil
}

// DecodeDetails unmarshals the details payload into out
func (e *Entry) DecodeDetails(out interface{}) error {
	if len(e.Details) == 0 {
		return nil
	}
	return json.Unmarshal(e.Details, out)
}
