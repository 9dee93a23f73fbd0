package entity

import "time"

// Post denormalizes the author's display name and photo at creation time.
// The snapshot is not refreshed when the author later edits their profile.
type Post struct {
	ID         string    `json:"id" firestore:"id"`
	UserID     string    `json:"user_id" firestore:"userId"`
	UserName   string    `json:"user_name" firestore:"userName"`
	UserAvatar string    `json:"user_avatar,omitempty" firestore:"userAvatar,omitempty"`
	Text       string    `json:"text" firestore:"text"`
	TextLower  string    `json:"-" firestore:"textLower"`
	ImageURL   string    `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	Likes      int64     `json:"likes" firestore:"likes"`
	LikedBy    []string  `json:"liked_by" firestore:"likedBy"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time `json:"updated_at" firestore:"updatedAt"`
}

type Comment struct {
	ID         string    `json:"id" firestore:"id"`
	PostID     string    `json:"post_id" firestore:"postId"`
	UserID     string    `json:"user_id" firestore:"userId"`
	UserName   string    `json:"user_name" firestore:"userName"`
	UserAvatar string    `json:"user_avatar,omitempty" firestore:"userAvatar,omitempty"`
	Text       string    `json:"text" firestore:"text"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
