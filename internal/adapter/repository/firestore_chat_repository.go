package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"socialconnect/internal/domain/entity"
	"socialconnect/internal/domain/repository"
	"socialconnect/pkg/errors"
	"socialconnect/pkg/logger"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) GetRoom(ctx context.Context, id string) (*entity.ChatRoom, error) {
	doc, err := r.client.Collection("chatRooms").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat room", err)
		}
		return nil, errors.Internal("Failed to get chat room", err)
	}

	var room entity.ChatRoom
	if err := doc.DataTo(&room); err != nil {
		return nil, errors.Internal("Failed to parse chat room data", err)
	}
	room.ID = doc.Ref.ID

	return &room, nil
}

// CreateRoom is a full overwrite. Two initiators racing on the same pair both
// write the identical deterministic id and shape, so last writer wins without
// creating a duplicate room.
func (r *firestoreChatRepository) CreateRoom(ctx context.Context, room *entity.ChatRoom) error {
	if room.CreatedAt.IsZero() {
		room.CreatedAt = time.Now()
	}
	if room.LastMessageTime.IsZero() {
		room.LastMessageTime = room.CreatedAt
	}

	_, err := r.client.Collection("chatRooms").Doc(room.ID).Set(ctx, room)
	if err != nil {
		return errors.Internal("Failed to create chat room", err)
	}
	return nil
}

func (r *firestoreChatRepository) ListRooms(ctx context.Context, userID string) ([]*entity.ChatRoom, error) {
	docs, err := r.roomsQuery(userID).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list chat rooms", err)
	}
	return decodeRooms(docs), nil
}

func (r *firestoreChatRepository) SubscribeRooms(ctx context.Context, userID string, fn func([]*entity.ChatRoom)) repository.Subscription {
	return listenQuery(ctx, r.roomsQuery(userID), func(snap *firestore.QuerySnapshot) {
		docs, err := snap.Documents.GetAll()
		if err != nil {
			logger.Error("Failed to read chat room snapshot for %s: %v", userID, err)
			return
		}
		fn(decodeRooms(docs))
	})
}

func (r *firestoreChatRepository) roomsQuery(userID string) firestore.Query {
	return r.client.Collection("chatRooms").
		Where("participants", "array-contains", userID).
		OrderBy("lastMessageTime", firestore.Desc)
}

func (r *firestoreChatRepository) CreateMessage(ctx context.Context, message *entity.ChatMessage) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()

	_, err := r.client.Collection("chatRooms").Doc(message.RoomID).Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}
	return nil
}

func (r *firestoreChatRepository) SetLastMessage(ctx context.Context, roomID, text string, at time.Time) error {
	_, err := r.client.Collection("chatRooms").Doc(roomID).Set(ctx, map[string]interface{}{
		"lastMessage":     text,
		"lastMessageTime": at,
	}, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update room preview", err)
	}
	return nil
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, roomID string, limit, offset int) ([]*entity.ChatMessage, error) {
	query := r.messagesQuery(roomID, limit)
	if offset > 0 {
		query = query.Offset(offset)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list messages", err)
	}
	return decodeMessages(docs), nil
}

func (r *firestoreChatRepository) CountMessages(ctx context.Context, roomID string) (int64, error) {
	docs, err := r.client.Collection("chatRooms").Doc(roomID).Collection("messages").Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count messages", err)
	}
	return int64(len(docs)), nil
}

func (r *firestoreChatRepository) SubscribeMessages(ctx context.Context, roomID string, limit int, fn func([]*entity.ChatMessage)) repository.Subscription {
	return listenQuery(ctx, r.messagesQuery(roomID, limit), func(snap *firestore.QuerySnapshot) {
		docs, err := snap.Documents.GetAll()
		if err != nil {
			logger.Error("Failed to read message snapshot for room %s: %v", roomID, err)
			return
		}
		fn(decodeMessages(docs))
	})
}

func (r *firestoreChatRepository) messagesQuery(roomID string, limit int) firestore.Query {
	query := r.client.Collection("chatRooms").Doc(roomID).Collection("messages").
		OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	return query
}

func decodeRooms(docs []*firestore.DocumentSnapshot) []*entity.ChatRoom {
	rooms := make([]*entity.ChatRoom, 0, len(docs))
	for _, doc := range docs {
		var room entity.ChatRoom
		if err := doc.DataTo(&room); err != nil {
			logger.Warn("Skipping malformed chat room document %s: %v", doc.Ref.ID, err)
			continue
		}
		room.ID = doc.Ref.ID
		rooms = append(rooms, &room)
	}
	return rooms
}

func decodeMessages(docs []*firestore.DocumentSnapshot) []*entity.ChatMessage {
	messages := make([]*entity.ChatMessage, 0, len(docs))
	for _, doc := range docs {
		var message entity.ChatMessage
		if err := doc.DataTo(&message); err != nil {
			logger.Warn("Skipping malformed message document %s: %v", doc.Ref.ID, err)
			continue
		}
		message.ID = doc.Ref.ID
		messages = append(messages, &message)
	}
	return messages
}
