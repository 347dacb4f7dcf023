package healthchat

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/acuhub/portal/core"
)

// Statuses
const (
	StatusActive = "active"
	StatusClosed = "closed"
)

// Priorities
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Message senders
const (
	SenderStudent = "student"
	SenderStaff   = "staff"
)

type Message struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	Sender    string    `json:"sender"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

type Chat struct {
	ID        string      `json:"id"`
	StudentID string      `json:"student_id"`
	StaffID   null.String `json:"staff_id"`
	Status    string      `json:"status"`
	Priority  string      `json:"priority"`
	Messages  []Message   `json:"messages"`
	CreatedAt time.Time   `json:"created_at"` // UTC
	UpdatedAt time.Time   `json:"updated_at"` // UTC
}

// NewChat is the payload to open a consultation chat.
type NewChat struct {
	Priority string `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
}

func (nc *NewChat) Validate(validate *validator.Validate) error {
	nc.Priority = core.CleanString(nc.Priority, true /* lower */)
	if nc.Priority == "" {
		nc.Priority = PriorityNormal
	}
	return validate.Struct(nc)
}

// NewMessage is the payload to post into an existing chat.
type NewMessage struct {
	Content string `json:"message" validate:"required"`
}

func (nm *NewMessage) Validate(validate *validator.Validate) error {
	nm.Content = core.CleanString(nm.Content)
	return validate.Struct(nm)
}

type QueryFilter struct {
	StudentID string `query:"-"`
	Status    string `query:"status"`
}
