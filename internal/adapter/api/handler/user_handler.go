package handler

import (
	"encoding/base64"

	"github.com/labstack/echo/v4"

	"socialconnect/internal/usecase"
	"socialconnect/pkg/errors"
	"socialconnect/pkg/response"
)

type UserHandler struct {
	profileUseCase *usecase.ProfileUseCase
}

func NewUserHandler(profileUseCase *usecase.ProfileUseCase) *UserHandler {
	return &UserHandler{
		profileUseCase: profileUseCase,
	}
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
	// Photo carries the raw image bytes base64-encoded; it is downscaled and
	// stored inline on the profile document.
	Photo string `json:"photo"`
}

type deviceTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

func (h *UserHandler) GetMe(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.profileUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	var photo []byte
	if req.Photo != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.Photo)
		if err != nil {
			return response.Error(c, errors.BadRequest("Photo must be base64 encoded", err))
		}
		photo = decoded
	}

	uid := c.Get("uid").(string)

	user, err := h.profileUseCase.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Photo:       photo,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.profileUseCase.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) SearchUsers(c echo.Context) error {
	users, err := h.profileUseCase.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, users)
}

func (h *UserHandler) RegisterDeviceToken(c echo.Context) error {
	var req deviceTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	if err := h.profileUseCase.RegisterDeviceToken(c.Request().Context(), uid, req.Token); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "registered"})
}
