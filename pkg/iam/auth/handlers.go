package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/maprecruit/platform/pkg/iam/user"
	"github.com/maprecruit/platform/pkg/kernel"
	"golang.org/x/crypto/bcrypt"
)

// LoginRequest - DTO for password login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse - DTO returning a fresh session
type LoginResponse struct {
	AccessToken     string           `json:"access_token"`
	UserID          kernel.UserID    `json:"user_id"`
	ActiveCompanyID kernel.CompanyID `json:"active_company_id"`
}

// AuthHandlers provides the password login and identity endpoints
type AuthHandlers struct {
	users  user.UserRepository
	tokens TokenService
}

// NewAuthHandlers creates the auth handlers
func NewAuthHandlers(users user.UserRepository, tokens TokenService) *AuthHandlers {
	return &AuthHandlers{
		users:  users,
		tokens: tokens,
	}
}

// RegisterRoutes mounts the auth endpoints
func (h *AuthHandlers) RegisterRoutes(app *fiber.App, middleware *TokenMiddleware) {
	grp := app.Group("/auth")
	grp.Post("/login", h.Login)
	grp.Get("/me", middleware.Handle(), h.Me)
}

// Login verifies credentials and issues an access token bound to the user's
// active company.
// POST /auth/login
func (h *AuthHandlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidCredentials().WithDetail("parse_error", err.Error())
	}

	account, err := h.users.FindByEmail(c.Context(), req.Email)
	if err != nil {
		// Same response as a wrong password; do not reveal which accounts exist
		return user.ErrInvalidCredentials()
	}

	if !account.IsActive() {
		return user.ErrUserSuspended().WithDetail("user_id", account.ID.String())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return user.ErrInvalidCredentials()
	}

	activeCompany := account.ActiveCompanyID
	if activeCompany.IsEmpty() {
		activeCompany = account.CompanyID
	}

	token, err := h.tokens.GenerateAccessToken(AuthContext{
		UserID:    account.ID,
		RoleID:    account.RoleID,
		CompanyID: activeCompany,
		SessionID: kernel.NewSessionID(uuid.NewString()),
	})
	if err != nil {
		return err
	}

	return c.JSON(LoginResponse{
		AccessToken:     token,
		UserID:          account.ID,
		ActiveCompanyID: activeCompany,
	})
}

// Me returns the account behind the current token.
// GET /auth/me
func (h *AuthHandlers) Me(c *fiber.Ctx) error {
	authCtx, ok := GetAuthContext(c)
	if !ok {
		return ErrMissingToken()
	}

	account, err := h.users.FindByID(c.Context(), authCtx.UserID)
	if err != nil {
		return user.ErrUserNotFound().WithDetail("user_id", authCtx.UserID.String())
	}

	return c.JSON(account)
}
