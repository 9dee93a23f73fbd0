package entity

import "time"

// Follow is a directed edge. Its deterministic id guarantees at most one
// edge per ordered pair of users.
type Follow struct {
	ID          string    `json:"id" firestore:"id"`
	FollowerID  string    `json:"follower_id" firestore:"followerId"`
	FollowingID string    `json:"following_id" firestore:"followingId"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}

// FollowID computes the deterministic document id for a follow edge.
func FollowID(followerID, followingID string) string {
	return followerID + "_" + followingID
}

type FollowStats struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestRejected FriendRequestStatus = "rejected"
)

type FriendRequest struct {
	ID        string              `json:"id" firestore:"id"`
	FromUID   string              `json:"from_uid" firestore:"fromUid"`
	FromName  string              `json:"from_name" firestore:"fromName"`
	ToUID     string              `json:"to_uid" firestore:"toUid"`
	ToName    string              `json:"to_name" firestore:"toName"`
	Status    FriendRequestStatus `json:"status" firestore:"status"`
	CreatedAt time.Time           `json:"created_at" firestore:"createdAt"`
}

// FriendRequestID computes the deterministic document id for a request from
// one user to another.
func FriendRequestID(fromUID, toUID string) string {
	return fromUID + "_" + toUID
}

// Friendship is one direction of an undirected relationship. Accepting a
// request writes two symmetric Friendship documents.
type Friendship struct {
	ID        string    `json:"id" firestore:"id"`
	UID       string    `json:"uid" firestore:"uid"`
	FriendUID string    `json:"friend_uid" firestore:"friendUid"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// FriendshipID computes the deterministic document id for one direction of a
// friendship.
func FriendshipID(uid, friendUID string) string {
	return uid + "_" + friendUID
}

type RelationshipStatus string

const (
	RelationshipNone     RelationshipStatus = "none"
	RelationshipSent     RelationshipStatus = "sent"
	RelationshipReceived RelationshipStatus = "received"
	RelationshipFriends  RelationshipStatus = "friends"
)
