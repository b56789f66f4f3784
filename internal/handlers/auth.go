package handlers

import (
	"net/http"

	"github.com/anonto42/folio/backend/internal/errs"
	"github.com/anonto42/folio/backend/internal/middleware"
	"github.com/anonto42/folio/backend/internal/models"
	"github.com/anonto42/folio/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	users *services.UserService
	gate  *middleware.Gate
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users *services.UserService, gate *middleware.Gate) *AuthHandler {
	return &AuthHandler{users: users, gate: gate}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.POST("/token/:userId", h.RefreshToken)
	g.GET("/user/:userId", h.GetUser, h.gate.Require(middleware.SelfOrAdmin))
	g.PUT("/user/:userId", h.UpdateUser, h.gate.Require(middleware.Self))
	if h.users.FirebaseEnabled() {
		g.POST("/firebase-login", h.FirebaseLogin)
	}
}

// Signup handles local user registration with email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.users.SignUp(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "User created successfully!", "user": user})
}

// Login exchanges credentials for an access and refresh token pair
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	pair, err := h.users.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pair)
}

// FirebaseLogin verifies a Firebase ID token and issues local tokens
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req models.FirebaseLoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.IDToken == "" {
		return errs.Unauthorized("Invalid Firebase ID token")
	}

	pair, err := h.users.FirebaseLogin(c.Request().Context(), req.IDToken)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pair)
}

// RefreshToken issues a new access token for :userId
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req models.RefreshRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	userID := c.Param("userId")
	token, err := h.users.RefreshAccessToken(c.Request().Context(), userID, req.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token, "userId": userID})
}

func (h *AuthHandler) GetUser(c echo.Context) error {
	requester, _ := middleware.PrincipalFrom(c)
	user, err := h.users.GetUser(c.Request().Context(), requester, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User fetched successfully", "user": user})
}

func (h *AuthHandler) UpdateUser(c echo.Context) error {
	var req models.UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	requester, _ := middleware.PrincipalFrom(c)
	user, err := h.users.UpdateUser(c.Request().Context(), requester, c.Param("userId"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User updated", "user": user})
}
