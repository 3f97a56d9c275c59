// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"taskmanager/internal/delivery/api/middleware"
	"taskmanager/internal/delivery/api/response"
	"taskmanager/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC     usecase.AuthUsecase
	ServerInfo *ServerInfo
	Logger     *slog.Logger
}

// AuthHandler serves registration, sign-in and session endpoints.
type AuthHandler struct {
	authUC     usecase.AuthUsecase
	serverInfo *ServerInfo
	logger     *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC:     params.AuthUC,
		serverInfo: params.ServerInfo,
		logger:     params.Logger,
	}
}

// SignUpRequest represents the request body for registration
type SignUpRequest struct {
	FirstName string `json:"firstName" validate:"required,notblank,max=100"`
	LastName  string `json:"lastName" validate:"required,notblank,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,maxbytes=72"`
}

// SignInRequest represents the request body for sign-in
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// AuthResponse is returned by sign-up and sign-in.
type AuthResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	User      *UserResponse `json:"user"`
}

// SessionResponse is returned by validate-session.
type SessionResponse struct {
	Valid           bool          `json:"valid"`
	ServerStartTime time.Time     `json:"serverStartTime"`
	User            *UserResponse `json:"user"`
}

// SignUp handles account registration
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.authUC.SignUp(c.Request().Context(), &usecase.SignUpInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newAuthResponse(output))
}

// SignIn handles credential verification
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign-in input")
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.authUC.SignIn(c.Request().Context(), &usecase.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAuthResponse(output))
}

// SignOut acknowledges a sign-out. Tokens are stateless; the client discards its copy.
func (h *AuthHandler) SignOut(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"message": "Signed out"})
}

// ValidateSession confirms the bearer token and reports the server start time.
func (h *AuthHandler) ValidateSession(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return unauthorized(c)
	}

	user, err := h.authUC.ValidateSession(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &SessionResponse{
		Valid:           true,
		ServerStartTime: h.serverInfo.StartedAt,
		User:            newUserResponse(user),
	})
}

func newAuthResponse(output *usecase.AuthOutput) *AuthResponse {
	return &AuthResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
		User:      newUserResponse(output.User),
	}
}
