package usecase

import "context"

type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	SignInWithEmailPassword(email, password string) (string, error)
	SendPasswordResetEmail(email string) error
	UpdateUserProfile(ctx context.Context, uid, displayName, photoURL string) error
}

type PushMessenger interface {
	SendToDevice(ctx context.Context, token, title, body string, data map[string]string) error
}
