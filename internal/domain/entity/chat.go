package entity

import (
	"sort"
	"strings"
	"time"
)

type ChatRoom struct {
	ID              string    `json:"id" firestore:"id"`
	Participants    []string  `json:"participants" firestore:"participants"`
	LastMessage     string    `json:"last_message" firestore:"lastMessage"`
	LastMessageTime time.Time `json:"last_message_time" firestore:"lastMessageTime"`
	CreatedAt       time.Time `json:"created_at" firestore:"createdAt"`
}

type ChatMessage struct {
	ID        string    `json:"id" firestore:"id"`
	RoomID    string    `json:"room_id" firestore:"roomId"`
	SenderID  string    `json:"sender_id" firestore:"senderId"`
	Text      string    `json:"text" firestore:"text"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// ChatRoomID computes the deterministic room id for an unordered pair of
// users: the sorted ids joined with an underscore. Both participants derive
// the same id, so at most one room exists per pair.
func ChatRoomID(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}

// OtherParticipant returns the first participant other than uid.
func (r *ChatRoom) OtherParticipant(uid string) string {
	for _, p := range r.Participants {
		if p != uid {
			return p
		}
	}
	return ""
}
