package handler

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/applytrack/applytrack-server/internal/config"
	"github.com/applytrack/applytrack-server/internal/repository"
	"github.com/applytrack/applytrack-server/internal/utils"
)

// UserHandler serves profile settings: linked email addresses and
// password changes.
type UserHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Emails *repository.EmailRepo
}

func NewUserHandler(cfg config.Config, users *repository.UserRepo, emails *repository.EmailRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users, Emails: emails}
}

// ListEmails returns the user's addresses, primary first.
func (h *UserHandler) ListEmails(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	emails, err := h.Emails.ListByUser(ctx, u.ID)
	if err != nil {
		c.Logger().Errorf("list emails: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch emails"})
	}
	return c.JSON(http.StatusOK, echo.Map{"emails": emails})
}

// AddEmail links a new address to the account. The first address becomes
// primary automatically.
func (h *UserHandler) AddEmail(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email is required"})
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid email address"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	email, err := h.Emails.Add(ctx, u.ID, req.Email)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Email already added"})
		}
		c.Logger().Errorf("add email: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to add email"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"email": email})
}

// DeleteEmail removes a linked address.
func (h *UserHandler) DeleteEmail(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Email not found"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Emails.Delete(ctx, u.ID, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Email not found"})
		}
		c.Logger().Errorf("delete email: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete email"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Email deleted successfully"})
}

// SetPrimaryEmail marks one address as the account's primary.
func (h *UserHandler) SetPrimaryEmail(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Email not found"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	email, err := h.Emails.SetPrimary(ctx, u.ID, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Email not found"})
		}
		c.Logger().Errorf("set primary email: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update email"})
	}
	return c.JSON(http.StatusOK, echo.Map{"email": email})
}

// ChangePassword verifies the current password before storing a new hash.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Current and new password are required"})
	}
	if len(req.NewPassword) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Password must be at least 8 characters"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.CurrentPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Current password is incorrect"})
	}

	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to change password"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		c.Logger().Errorf("change password: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to change password"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password changed successfully"})
}
