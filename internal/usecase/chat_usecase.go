package usecase

import (
	"context"
	"fmt"

	"socialconnect/internal/domain/entity"
	"socialconnect/internal/domain/repository"
	"socialconnect/pkg/errors"
	"socialconnect/pkg/logger"
)

// messagePageSize caps the live message window per room.
const messagePageSize = 50

type ChatUseCase struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	notifier *NotificationUseCase
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	notifier *NotificationUseCase,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo: chatRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// RoomView is a room enriched with the counterpart's profile for display.
type RoomView struct {
	*entity.ChatRoom
	OtherUser *entity.UserProfile `json:"other_user,omitempty"`
}

// GetOrCreateRoom resolves the deterministic room for the pair, creating the
// shell on first contact. Two initiators racing here both write the same id
// and shape, so the check-then-create race is benign.
func (uc *ChatUseCase) GetOrCreateRoom(ctx context.Context, uid, partnerUID string) (*entity.ChatRoom, error) {
	if uid == partnerUID {
		return nil, errors.BadRequest("You cannot start a chat with yourself", nil)
	}

	if _, err := uc.userRepo.GetByID(ctx, partnerUID); err != nil {
		return nil, err
	}

	roomID := entity.ChatRoomID(uid, partnerUID)

	room, err := uc.chatRepo.GetRoom(ctx, roomID)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	room = &entity.ChatRoom{
		ID:           roomID,
		Participants: []string{uid, partnerUID},
		LastMessage:  "",
	}
	if err := uc.chatRepo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// SendMessage writes the message document and then the room's last-message
// snapshot as two independent operations; a failure between them leaves the
// preview behind the message, which the next send repairs.
func (uc *ChatUseCase) SendMessage(ctx context.Context, uid, roomID, text string) (*entity.ChatMessage, error) {
	room, err := uc.chatRepo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	message := &entity.ChatMessage{
		RoomID:   roomID,
		SenderID: uid,
		Text:     text,
	}
	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if err := uc.chatRepo.SetLastMessage(ctx, roomID, text, message.CreatedAt); err != nil {
		return nil, err
	}

	recipient := room.OtherParticipant(uid)
	if recipient != "" {
		senderName := "Someone"
		if sender, err := uc.userRepo.GetByID(ctx, uid); err == nil && sender.DisplayName != "" {
			senderName = sender.DisplayName
		}
		uc.notifier.NotifyUser(ctx, recipient, senderName,
			fmt.Sprintf("%s sent you a message", senderName),
			map[string]string{"type": "chat_message", "roomId": roomID})
	}

	return message, nil
}

// ListMessages returns one page of a room's history, newest first, along with
// the room's total message count. The requested page size is honored up to
// the live-window ceiling.
func (uc *ChatUseCase) ListMessages(ctx context.Context, roomID string, limit, offset int) ([]*entity.ChatMessage, int64, error) {
	if limit <= 0 || limit > messagePageSize {
		limit = messagePageSize
	}
	if offset < 0 {
		offset = 0
	}

	messages, err := uc.chatRepo.ListMessages(ctx, roomID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.chatRepo.CountMessages(ctx, roomID)
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

func (uc *ChatUseCase) SubscribeMessages(ctx context.Context, roomID string, fn func([]*entity.ChatMessage)) repository.Subscription {
	return uc.chatRepo.SubscribeMessages(ctx, roomID, messagePageSize, fn)
}

func (uc *ChatUseCase) ListRooms(ctx context.Context, uid string) ([]*RoomView, error) {
	rooms, err := uc.chatRepo.ListRooms(ctx, uid)
	if err != nil {
		return nil, err
	}
	return uc.resolveRoomViews(ctx, uid, rooms), nil
}

// SubscribeRooms re-runs the counterpart profile fan-out on every emission of
// the room list.
func (uc *ChatUseCase) SubscribeRooms(ctx context.Context, uid string, fn func([]*RoomView)) repository.Subscription {
	return uc.chatRepo.SubscribeRooms(ctx, uid, func(rooms []*entity.ChatRoom) {
		fn(uc.resolveRoomViews(ctx, uid, rooms))
	})
}

// resolveRoomViews issues one point read per room to attach the counterpart's
// profile.
func (uc *ChatUseCase) resolveRoomViews(ctx context.Context, uid string, rooms []*entity.ChatRoom) []*RoomView {
	views := make([]*RoomView, 0, len(rooms))
	for _, room := range rooms {
		view := &RoomView{ChatRoom: room}

		if otherUID := room.OtherParticipant(uid); otherUID != "" {
			other, err := uc.userRepo.GetByID(ctx, otherUID)
			if err != nil {
				logger.Warn("Failed to resolve counterpart %s for room %s: %v", otherUID, room.ID, err)
			} else {
				view.OtherUser = other
			}
		}

		views = append(views, view)
	}
	return views
}
