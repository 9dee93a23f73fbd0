package usecase

import (
	"context"

	"socialconnect/internal/domain/repository"
	"socialconnect/pkg/logger"
)

type NotificationUseCase struct {
	userRepo  repository.UserRepository
	messenger PushMessenger
}

func NewNotificationUseCase(userRepo repository.UserRepository, messenger PushMessenger) *NotificationUseCase {
	return &NotificationUseCase{
		userRepo:  userRepo,
		messenger: messenger,
	}
}

// NotifyUser pushes a notification to the user's registered device. A missing
// token or a delivery failure never fails the operation that triggered the
// push; it is logged and dropped.
func (uc *NotificationUseCase) NotifyUser(ctx context.Context, uid, title, body string, data map[string]string) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		logger.Debug("Push skipped, profile for %s unavailable: %v", uid, err)
		return
	}

	if user.DeviceToken == "" {
		logger.Debug("Push skipped, no device token for %s", uid)
		return
	}

	if err := uc.messenger.SendToDevice(ctx, user.DeviceToken, title, body, data); err != nil {
		logger.Warn("Push delivery to %s failed: %v", uid, err)
	}
}
