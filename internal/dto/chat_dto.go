package dto

import "time"

type SendChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionId string `json:"sessionId" validate:"omitempty"`
}

type SendChatResponse struct {
	Id         string    `json:"id"`
	SessionId  string    `json:"sessionId"`
	CustomerId string    `json:"customerId"`
	Message    string    `json:"message"`
	Response   string    `json:"response"`
	Timestamp  time.Time `json:"timestamp"`
}

type SessionResponse struct {
	Id        string     `json:"id"`
	VisitorId string     `json:"visitorId"`
	Status    string     `json:"status"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
}

type UpdateSessionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active closed"`
}

type MessageResponse struct {
	Id         string                 `json:"id"`
	SenderType string                 `json:"senderType"`
	SenderId   string                 `json:"senderId"`
	Content    string                 `json:"content"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}
