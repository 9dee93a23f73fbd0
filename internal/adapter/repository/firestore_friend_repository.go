package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"socialconnect/internal/domain/entity"
	"socialconnect/internal/domain/repository"
	"socialconnect/pkg/errors"
	"socialconnect/pkg/logger"
)

type firestoreFriendRepository struct {
	client *firestore.Client
}

func NewFirestoreFriendRepository(client *firestore.Client) repository.FriendRepository {
	return &firestoreFriendRepository{
		client: client,
	}
}

func (r *firestoreFriendRepository) CreateRequest(ctx context.Context, request *entity.FriendRequest) error {
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("friendRequests").Doc(request.ID).Set(ctx, request)
	if err != nil {
		return errors.Internal("Failed to create friend request", err)
	}
	return nil
}

func (r *firestoreFriendRepository) GetRequest(ctx context.Context, id string) (*entity.FriendRequest, error) {
	doc, err := r.client.Collection("friendRequests").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Friend request", err)
		}
		return nil, errors.Internal("Failed to get friend request", err)
	}

	var request entity.FriendRequest
	if err := doc.DataTo(&request); err != nil {
		return nil, errors.Internal("Failed to parse friend request data", err)
	}
	request.ID = doc.Ref.ID

	return &request, nil
}

func (r *firestoreFriendRepository) DeleteRequest(ctx context.Context, id string) error {
	_, err := r.client.Collection("friendRequests").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete friend request", err)
	}
	return nil
}

func (r *firestoreFriendRepository) ListPendingRequests(ctx context.Context, toUID string) ([]*entity.FriendRequest, error) {
	docs, err := r.pendingQuery(toUID).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list friend requests", err)
	}
	return decodeRequests(docs), nil
}

func (r *firestoreFriendRepository) SubscribePendingRequests(ctx context.Context, toUID string, fn func([]*entity.FriendRequest)) repository.Subscription {
	return listenQuery(ctx, r.pendingQuery(toUID), func(snap *firestore.QuerySnapshot) {
		docs, err := snap.Documents.GetAll()
		if err != nil {
			logger.Error("Failed to read friend request snapshot for %s: %v", toUID, err)
			return
		}
		fn(decodeRequests(docs))
	})
}

func (r *firestoreFriendRepository) pendingQuery(toUID string) firestore.Query {
	return r.client.Collection("friendRequests").
		Where("toUid", "==", toUID).
		Where("status", "==", string(entity.FriendRequestPending)).
		OrderBy("createdAt", firestore.Desc)
}

func (r *firestoreFriendRepository) CreateFriendship(ctx context.Context, friendship *entity.Friendship) error {
	if friendship.CreatedAt.IsZero() {
		friendship.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("friends").Doc(friendship.ID).Set(ctx, friendship)
	if err != nil {
		return errors.Internal("Failed to create friendship", err)
	}
	return nil
}

func (r *firestoreFriendRepository) HasFriendship(ctx context.Context, id string) (bool, error) {
	_, err := r.client.Collection("friends").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errors.Internal("Failed to check friendship", err)
	}
	return true, nil
}

func (r *firestoreFriendRepository) ListFriends(ctx context.Context, uid string) ([]*entity.Friendship, error) {
	docs, err := r.client.Collection("friends").Where("uid", "==", uid).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list friends", err)
	}

	var friendships []*entity.Friendship
	for _, doc := range docs {
		var friendship entity.Friendship
		if err := doc.DataTo(&friendship); err != nil {
			logger.Warn("Skipping malformed friendship document %s: %v", doc.Ref.ID, err)
			continue
		}
		friendship.ID = doc.Ref.ID
		friendships = append(friendships, &friendship)
	}

	return friendships, nil
}

func decodeRequests(docs []*firestore.DocumentSnapshot) []*entity.FriendRequest {
	requests := make([]*entity.FriendRequest, 0, len(docs))
	for _, doc := range docs {
		var request entity.FriendRequest
		if err := doc.DataTo(&request); err != nil {
			logger.Warn("Skipping malformed friend request document %s: %v", doc.Ref.ID, err)
			continue
		}
		request.ID = doc.Ref.ID
		requests = append(requests, &request)
	}
	return requests
}
