package inmem

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/acuhub/portal/core/healthchat"
)

type HealthChatRepository struct {
	mu       sync.RWMutex
	chats    map[string]healthchat.Chat
	messages map[string][]healthchat.Message // keyed by chat ID
}

var _ healthchat.Repository = (*HealthChatRepository)(nil)

func NewHealthChatRepository() *HealthChatRepository {
	return &HealthChatRepository{
		chats:    make(map[string]healthchat.Chat),
		messages: make(map[string][]healthchat.Message),
	}
}

func (repo *HealthChatRepository) CreateChat(ctx context.Context, chat healthchat.Chat) (healthchat.Chat, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	chat.ID = uuid.New().String()
	repo.chats[chat.ID] = chat
	return chat, nil
}

func (repo *HealthChatRepository) GetChat(ctx context.Context, id string) (healthchat.Chat, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	chat, ok := repo.chats[id]
	if !ok {
		return healthchat.Chat{}, healthchat.ErrNotFound
	}
	msgs := repo.messages[id]
	chat.Messages = make([]healthchat.Message, len(msgs))
	copy(chat.Messages, msgs)
	sort.Slice(chat.Messages, func(i, j int) bool {
		return chat.Messages[i].CreatedAt.Before(chat.Messages[j].CreatedAt)
	})
	return chat, nil
}

func (repo *HealthChatRepository) QueryChats(ctx context.Context, filter *healthchat.QueryFilter) ([]healthchat.Chat, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	chats := make([]healthchat.Chat, 0, len(repo.chats))
	for _, chat := range repo.chats {
		if filter != nil {
			if filter.StudentID != "" && chat.StudentID != filter.StudentID {
				continue
			}
			if filter.Status != "" && chat.Status != filter.Status {
				continue
			}
		}
		chats = append(chats, chat)
	}
	sort.Slice(chats, func(i, j int) bool { return chats[i].UpdatedAt.After(chats[j].UpdatedAt) })
	return chats, nil
}

func (repo *HealthChatRepository) AppendMessage(ctx context.Context, msg healthchat.Message) (healthchat.Message, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	chat, ok := repo.chats[msg.ChatID]
	if !ok {
		return healthchat.Message{}, healthchat.ErrNotFound
	}
	msg.ID = uuid.New().String()
	repo.messages[msg.ChatID] = append(repo.messages[msg.ChatID], msg)
	chat.UpdatedAt = msg.CreatedAt
	repo.chats[msg.ChatID] = chat
	return msg, nil
}
