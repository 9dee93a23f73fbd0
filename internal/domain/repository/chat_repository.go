package repository

import (
	"context"
	"time"

	"socialconnect/internal/domain/entity"
)

type ChatRepository interface {
	GetRoom(ctx context.Context, id string) (*entity.ChatRoom, error)
	CreateRoom(ctx context.Context, room *entity.ChatRoom) error
	ListRooms(ctx context.Context, userID string) ([]*entity.ChatRoom, error)
	SubscribeRooms(ctx context.Context, userID string, fn func([]*entity.ChatRoom)) Subscription

	CreateMessage(ctx context.Context, message *entity.ChatMessage) error
	// SetLastMessage merges the last-message snapshot onto the room document.
	// It is issued independently of CreateMessage, not atomically with it.
	SetLastMessage(ctx context.Context, roomID, text string, at time.Time) error
	ListMessages(ctx context.Context, roomID string, limit, offset int) ([]*entity.ChatMessage, error)
	CountMessages(ctx context.Context, roomID string) (int64, error)
	SubscribeMessages(ctx context.Context, roomID string, limit int, fn func([]*entity.ChatMessage)) Subscription
}
