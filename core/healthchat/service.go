package healthchat

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/acuhub/portal/core/user"
)

var (
	// errors
	ErrNotFound     = errors.New("chat not found")
	ErrAccessDenied = errors.New("access denied")
)

type (
	Repository interface {
		CreateChat(ctx context.Context, chat Chat) (Chat, error)
		// GetChat returns the chat with its messages, oldest first.
		GetChat(ctx context.Context, id string) (Chat, error)
		// QueryChats returns chats without messages, most recent first.
		QueryChats(ctx context.Context, filter *QueryFilter) ([]Chat, error)
		// AppendMessage stores the message and refreshes the chat's UpdatedAt.
		AppendMessage(ctx context.Context, msg Message) (Message, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create opens a new active chat owned by the student.
func (svc *Service) Create(ctx context.Context, studentID string, nc NewChat) (Chat, error) {
	now := time.Now().UTC()
	chat := Chat{
		StudentID: studentID,
		Status:    StatusActive,
		Priority:  nc.Priority,
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateChat(ctx, chat)
}

// Get returns the chat if the requester may see it: students only their own,
// staff (lecturer/admin) any.
func (svc *Service) Get(ctx context.Context, chatID, requesterID, requesterRole string) (Chat, error) {
	chat, err := svc.repo.GetChat(ctx, chatID)
	if err != nil {
		return Chat{}, err
	}
	if requesterRole == user.RoleStudent && chat.StudentID != requesterID {
		return Chat{}, ErrAccessDenied
	}
	return chat, nil
}

// Query lists chats visible to the requester; students are scoped to their own.
func (svc *Service) Query(ctx context.Context, filter *QueryFilter, requesterID, requesterRole string) ([]Chat, error) {
	if filter == nil {
		filter = new(QueryFilter)
	}
	if requesterRole == user.RoleStudent {
		filter.StudentID = requesterID
	}
	return svc.repo.QueryChats(ctx, filter)
}

// Send appends a message to the chat after an access check.
func (svc *Service) Send(ctx context.Context, chatID, senderID, senderRole string, nm NewMessage) (Message, error) {
	chat, err := svc.repo.GetChat(ctx, chatID)
	if err != nil {
		return Message{}, err
	}
	if senderRole == user.RoleStudent && chat.StudentID != senderID {
		return Message{}, ErrAccessDenied
	}

	sender := SenderStaff
	if senderRole == user.RoleStudent {
		sender = SenderStudent
	}
	msg := Message{
		ChatID:    chatID,
		Sender:    sender,
		SenderID:  senderID,
		Content:   nm.Content,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.AppendMessage(ctx, msg)
}
