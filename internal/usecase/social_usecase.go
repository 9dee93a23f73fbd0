package usecase

import (
	"context"
	"fmt"

	"socialconnect/internal/domain/entity"
	"socialconnect/internal/domain/repository"
	"socialconnect/pkg/errors"
)

type SocialUseCase struct {
	followRepo repository.FollowRepository
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
	notifier   *NotificationUseCase
}

func NewSocialUseCase(
	followRepo repository.FollowRepository,
	friendRepo repository.FriendRepository,
	userRepo repository.UserRepository,
	notifier *NotificationUseCase,
) *SocialUseCase {
	return &SocialUseCase{
		followRepo: followRepo,
		friendRepo: friendRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

func (uc *SocialUseCase) Follow(ctx context.Context, uid, targetID string) error {
	if uid == targetID {
		return errors.BadRequest("You cannot follow yourself", nil)
	}

	follow := &entity.Follow{
		ID:          entity.FollowID(uid, targetID),
		FollowerID:  uid,
		FollowingID: targetID,
	}
	return uc.followRepo.Set(ctx, follow)
}

// Unfollow deletes the edge document. Deleting an absent edge is a no-op at
// the data level, so repeated calls are harmless.
func (uc *SocialUseCase) Unfollow(ctx context.Context, uid, targetID string) error {
	return uc.followRepo.Delete(ctx, entity.FollowID(uid, targetID))
}

func (uc *SocialUseCase) IsFollowing(ctx context.Context, uid, targetID string) (bool, error) {
	return uc.followRepo.Exists(ctx, entity.FollowID(uid, targetID))
}

// GetStats runs the two cardinality queries independently; under concurrent
// edge churn they may reflect different snapshots.
func (uc *SocialUseCase) GetStats(ctx context.Context, uid string) (*entity.FollowStats, error) {
	followers, err := uc.followRepo.CountFollowers(ctx, uid)
	if err != nil {
		return nil, err
	}

	following, err := uc.followRepo.CountFollowing(ctx, uid)
	if err != nil {
		return nil, err
	}

	return &entity.FollowStats{
		Followers: followers,
		Following: following,
	}, nil
}

func (uc *SocialUseCase) SendFriendRequest(ctx context.Context, uid, targetUID, targetName string) (*entity.FriendRequest, error) {
	if uid == targetUID {
		return nil, errors.BadRequest("You cannot send a friend request to yourself", nil)
	}

	sender, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	fromName := sender.DisplayName
	if fromName == "" {
		fromName = "Anonymous"
	}

	request := &entity.FriendRequest{
		ID:       entity.FriendRequestID(uid, targetUID),
		FromUID:  uid,
		FromName: fromName,
		ToUID:    targetUID,
		ToName:   targetName,
		Status:   entity.FriendRequestPending,
	}

	if err := uc.friendRepo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	uc.notifier.NotifyUser(ctx, targetUID, "New friend request",
		fmt.Sprintf("%s wants to be your friend", fromName),
		map[string]string{"type": "friend_request", "fromUid": uid})

	return request, nil
}

// RespondToRequest accepts or rejects a pending request. Accepting writes the
// two symmetric friendship edges and then deletes the request as three
// independent writes; there is no transaction across them.
func (uc *SocialUseCase) RespondToRequest(ctx context.Context, uid, requestID string, accept bool) error {
	request, err := uc.friendRepo.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}

	if request.ToUID != uid {
		return errors.Forbidden("Only the recipient can respond to a friend request", nil)
	}

	if !accept {
		return uc.friendRepo.DeleteRequest(ctx, requestID)
	}

	first := &entity.Friendship{
		ID:        entity.FriendshipID(request.FromUID, request.ToUID),
		UID:       request.FromUID,
		FriendUID: request.ToUID,
	}
	if err := uc.friendRepo.CreateFriendship(ctx, first); err != nil {
		return err
	}

	second := &entity.Friendship{
		ID:        entity.FriendshipID(request.ToUID, request.FromUID),
		UID:       request.ToUID,
		FriendUID: request.FromUID,
	}
	if err := uc.friendRepo.CreateFriendship(ctx, second); err != nil {
		return err
	}

	if err := uc.friendRepo.DeleteRequest(ctx, requestID); err != nil {
		return err
	}

	uc.notifier.NotifyUser(ctx, request.FromUID, "Friend request accepted",
		fmt.Sprintf("%s accepted your friend request", request.ToName),
		map[string]string{"type": "friend_accept", "friendUid": request.ToUID})

	return nil
}

func (uc *SocialUseCase) ListPendingRequests(ctx context.Context, uid string) ([]*entity.FriendRequest, error) {
	return uc.friendRepo.ListPendingRequests(ctx, uid)
}

func (uc *SocialUseCase) SubscribePendingRequests(ctx context.Context, uid string, fn func([]*entity.FriendRequest)) repository.Subscription {
	return uc.friendRepo.SubscribePendingRequests(ctx, uid, fn)
}

// ListFriends returns the ids of the caller's friends.
func (uc *SocialUseCase) ListFriends(ctx context.Context, uid string) ([]string, error) {
	friendships, err := uc.friendRepo.ListFriends(ctx, uid)
	if err != nil {
		return nil, err
	}

	friendIDs := make([]string, 0, len(friendships))
	for _, friendship := range friendships {
		friendIDs = append(friendIDs, friendship.FriendUID)
	}
	return friendIDs, nil
}

// GetRelationshipStatus checks, in order, the friendship edge, the outgoing
// request and the incoming request; the first hit wins.
func (uc *SocialUseCase) GetRelationshipStatus(ctx context.Context, uid, targetUID string) (entity.RelationshipStatus, error) {
	isFriend, err := uc.friendRepo.HasFriendship(ctx, entity.FriendshipID(uid, targetUID))
	if err != nil {
		return "", err
	}
	if isFriend {
		return entity.RelationshipFriends, nil
	}

	if _, err := uc.friendRepo.GetRequest(ctx, entity.FriendRequestID(uid, targetUID)); err == nil {
		return entity.RelationshipSent, nil
	} else if !errors.Is(err, "NOT_FOUND") {
		return "", err
	}

	if _, err := uc.friendRepo.GetRequest(ctx, entity.FriendRequestID(targetUID, uid)); err == nil {
		return entity.RelationshipReceived, nil
	} else if !errors.Is(err, "NOT_FOUND") {
		return "", err
	}

	return entity.RelationshipNone, nil
}
