package firebase

import (
	"context"

	"firebase.google.com/go/v4/messaging"
)

type FirebaseMessagingClient struct {
	client *messaging.Client
}

func NewFirebaseMessagingClient(client *messaging.Client) *FirebaseMessagingClient {
	return &FirebaseMessagingClient{
		client: client,
	}
}

// SendToDevice delivers a push notification to a single registration token.
func (f *FirebaseMessagingClient) SendToDevice(ctx context.Context, token, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	_, err := f.client.Send(ctx, message)
	return err
}
