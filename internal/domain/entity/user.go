package entity

import (
	"time"
)

type UserProfile struct {
	ID               string `json:"id" firestore:"id"`
	DisplayName      string `json:"display_name" firestore:"displayName"`
	DisplayNameLower string `json:"-" firestore:"displayNameLower"`
	Email            string `json:"email" firestore:"email"`
	PhotoURL         string `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
	Bio              string `json:"bio,omitempty" firestore:"bio,omitempty"`

	// FCM registration token for the user's current device.
	DeviceToken string `json:"-" firestore:"deviceToken,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
