package usecase

import (
	"context"
	"strings"

	"socialconnect/internal/domain/entity"
	"socialconnect/internal/domain/repository"
	"socialconnect/pkg/errors"
	"socialconnect/pkg/utils"
)

// searchPageSize caps every directory and post search result set.
const searchPageSize = 20

type ProfileUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewProfileUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *ProfileUseCase {
	return &ProfileUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

type UpdateProfileInput struct {
	DisplayName string
	Bio         string
	Photo       []byte
}

// UpdateProfile merges the provided fields into the caller's profile document.
// When the display name changes, its lowercase derivative is recomputed in the
// same write; the auth record is updated alongside.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, uid string, input UpdateProfileInput) (*entity.UserProfile, error) {
	fields := make(map[string]interface{})

	if input.DisplayName != "" {
		fields["displayName"] = input.DisplayName
		fields["displayNameLower"] = strings.ToLower(input.DisplayName)
	}
	if input.Bio != "" {
		fields["bio"] = input.Bio
	}

	photoURL := ""
	if len(input.Photo) > 0 {
		encoded, err := utils.EncodeInlineImage(input.Photo)
		if err != nil {
			return nil, err
		}
		photoURL = encoded
		fields["photoURL"] = encoded
	}

	if len(fields) == 0 {
		return nil, errors.BadRequest("Nothing to update", nil)
	}

	if err := uc.userRepo.Upsert(ctx, uid, fields); err != nil {
		return nil, err
	}

	if input.DisplayName != "" || photoURL != "" {
		if err := uc.firebaseAuth.UpdateUserProfile(ctx, uid, input.DisplayName, photoURL); err != nil {
			return nil, errors.Internal("Failed to update auth profile", err)
		}
	}

	return uc.userRepo.GetByID(ctx, uid)
}

func (uc *ProfileUseCase) GetProfile(ctx context.Context, uid string) (*entity.UserProfile, error) {
	return uc.userRepo.GetByID(ctx, uid)
}

// Search runs a case-insensitive prefix match on display names, falling back
// to an exact-case range for accounts that predate the lowercase field, then
// to an exact email match.
func (uc *ProfileUseCase) Search(ctx context.Context, term string) ([]*entity.UserProfile, error) {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return nil, nil
	}

	users, err := uc.userRepo.PrefixSearch(ctx, "displayNameLower", strings.ToLower(trimmed), searchPageSize)
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		users, err = uc.userRepo.PrefixSearch(ctx, "displayName", trimmed, searchPageSize)
		if err != nil {
			return nil, err
		}
	}

	if len(users) == 0 {
		user, err := uc.userRepo.GetByEmail(ctx, trimmed)
		if err != nil {
			if errors.Is(err, "NOT_FOUND") {
				return nil, nil
			}
			return nil, err
		}
		users = []*entity.UserProfile{user}
	}

	return users, nil
}

// RegisterDeviceToken persists the FCM registration token onto the profile
// document.
func (uc *ProfileUseCase) RegisterDeviceToken(ctx context.Context, uid, token string) error {
	if token == "" {
		return errors.BadRequest("Device token is required", nil)
	}
	return uc.userRepo.Upsert(ctx, uid, map[string]interface{}{"deviceToken": token})
}

// SubscribeProfile registers a live point listener on a profile document. The
// callback also fires for the owner's own writes.
func (uc *ProfileUseCase) SubscribeProfile(ctx context.Context, uid string, fn func(*entity.UserProfile)) repository.Subscription {
	return uc.userRepo.Subscribe(ctx, uid, fn)
}
