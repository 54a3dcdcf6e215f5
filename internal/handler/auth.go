package handler

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ninjabel/SetupCreator/internal/config"
	"github.com/Ninjabel/SetupCreator/internal/model"
	"github.com/Ninjabel/SetupCreator/internal/repository"
	"github.com/Ninjabel/SetupCreator/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}
type loginResp struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
type refreshResp struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func validEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}

// Register creates a user account. No tokens are issued; the client logs
// in afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid input"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if !validEmail(req.Email) || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid input"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not register user"})
	}
	if _, err := h.Users.Create(ctx, req.Email, hash, model.RoleUser); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "User already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not register user"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User successfully registered"})
}

// Login verifies credentials and issues an access/refresh token pair. The
// login path also sweeps every expired refresh token in the store, which
// keeps the table from accumulating dead sessions without a scheduler.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid input"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if !validEmail(req.Email) || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid input"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not log in"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.AuthSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not log in"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshSecret, u.ID, u.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not log in"})
	}

	now := time.Now().UTC()
	if err := h.Tokens.DeleteExpired(ctx, now); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not log in"})
	}
	exp := now.Add(time.Duration(h.Cfg.RefreshTTLDays) * 24 * time.Hour)
	if err := h.Tokens.Store(ctx, u.ID, refresh, exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not log in"})
	}

	return c.JSON(http.StatusOK, loginResp{Token: access.Token, RefreshToken: refresh})
}

// Refresh exchanges a stored refresh token for a new access token. The
// refresh token itself is not rotated: the client keeps using the one it
// has until logout or expiry.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Refresh Token is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Tokens.Get(ctx, strings.TrimSpace(req.RefreshToken))
	if err != nil || time.Now().UTC().After(t.ExpiresAt) {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not refresh token"})
		}
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Refresh token is invalid or has expired"})
	}

	u, err := h.Users.GetByID(ctx, t.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not refresh token"})
	}

	// Access tokens are always signed with the access secret, never the
	// refresh one.
	access, err := utils.NewAccessToken(h.Cfg.AuthSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not refresh token"})
	}
	return c.JSON(http.StatusOK, refreshResp{AccessToken: access.Token, RefreshToken: t.Token})
}

// Logout deletes the refresh-token row if present. Absence is not an
// error; logging out twice with the same token succeeds both times.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Refresh Token is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tokens.Delete(ctx, strings.TrimSpace(req.RefreshToken)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not log out"})
	}
	return c.NoContent(http.StatusNoContent)
}
