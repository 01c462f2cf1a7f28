package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Message struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId  uuid.UUID      `gorm:"type:uuid;not null;index:idx_messages_session_created,priority:1"`
	SenderType string         `gorm:"type:varchar(20);not null"`
	SenderId   string         `gorm:"type:varchar(255);not null;default:'system'"`
	Content    string         `gorm:"type:text;not null"`
	Metadata   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index:idx_messages_session_created,priority:2"`
}

func (Message) TableName() string {
	return "messages"
}
