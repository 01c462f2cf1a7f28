package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type ByCustomerID struct {
	CustomerID uuid.UUID
}

func (s ByCustomerID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("customer_id = ?", s.CustomerID)
}

type ByVisitorID struct {
	VisitorID string
}

func (s ByVisitorID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("visitor_id = ?", s.VisitorID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ActiveOrStartedAfter implements the session recency rule: a session counts
// as recent while it is still active or started within the cutoff window.
type ActiveOrStartedAfter struct {
	Cutoff time.Time
}

func (s ActiveOrStartedAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ? OR started_at > ?", "active", s.Cutoff)
}
