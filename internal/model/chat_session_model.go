package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerId   uuid.UUID  `gorm:"type:uuid;not null;index:idx_chat_sessions_customer_visitor,priority:1"`
	VisitorId    string     `gorm:"type:varchar(255);not null;index:idx_chat_sessions_customer_visitor,priority:2"`
	VisitorName  *string    `gorm:"type:varchar(255)"`
	VisitorEmail *string    `gorm:"type:varchar(255)"`
	Status       string     `gorm:"type:varchar(20);not null;default:'active';index"`
	StartedAt    time.Time  `gorm:"autoCreateTime;index"`
	EndedAt      *time.Time
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
