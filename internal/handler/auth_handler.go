package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/KeiviX/expense-manager-app/internal/cqrs"
	"github.com/KeiviX/expense-manager-app/internal/middleware"
	"github.com/KeiviX/expense-manager-app/internal/models"
	"github.com/KeiviX/expense-manager-app/internal/query"
	"github.com/KeiviX/expense-manager-app/internal/storage"
	"github.com/gin-gonic/gin"
)

// UserRegistrar defines the write-side operations used by AuthHandler.
type UserRegistrar interface {
	Register(cqrs.RegisterUserCommand) (*models.User, error)
}

// AuthQuerier defines the read-side operations used by AuthHandler.
type AuthQuerier interface {
	Login(cqrs.LoginCommand) (string, error)
}

type AuthHandler struct {
	commands UserRegistrar
	queries  AuthQuerier
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest accepts both JSON bodies and OAuth2-style form posts
// (the web client submits `username`/`password` form fields).
type LoginRequest struct {
	Email    string `json:"email" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func NewAuthHandler(commands UserRegistrar, queries AuthQuerier) *AuthHandler {
	return &AuthHandler{commands: commands, queries: queries}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	user, err := h.commands.Register(cqrs.RegisterUserCommand{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			middleware.RespondWithError(c, http.StatusBadRequest, "Email already registered")
			return
		}
		log.Printf("Registration failed: %v", err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	token, err := h.queries.Login(cqrs.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, query.ErrInvalidCredentials) {
			c.Header("WWW-Authenticate", "Bearer")
			middleware.RespondWithError(c, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		log.Printf("Login failed: %v", err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me returns the identity resolved by the auth middleware.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.Header("WWW-Authenticate", "Bearer")
		middleware.RespondWithError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	c.JSON(http.StatusOK, user)
}
