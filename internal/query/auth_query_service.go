package query

import (
	"errors"

	"github.com/KeiviX/expense-manager-app/internal/auth"
	"github.com/KeiviX/expense-manager-app/internal/cqrs"
	"github.com/KeiviX/expense-manager-app/internal/models"
)

// ErrInvalidCredentials deliberately covers both an unknown email and a wrong
// password so the API cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("incorrect email or password")

// UserFinder is the lookup surface AuthQueryService reads through.
type UserFinder interface {
	GetByEmail(email string) (*models.User, error)
}

// AuthQueryService handles login. There's no CommandService for auth because
// the operation doesn't mutate application state.
type AuthQueryService struct {
	users  UserFinder
	tokens *auth.TokenService
}

func NewAuthQueryService(users UserFinder, tokens *auth.TokenService) *AuthQueryService {
	return &AuthQueryService{users: users, tokens: tokens}
}

// Login exchanges credentials for a signed bearer token.
func (s *AuthQueryService) Login(cmd cqrs.LoginCommand) (string, error) {
	user, err := s.users.GetByEmail(cmd.Email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if !auth.CheckPassword(cmd.Password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(user.Email)
}
