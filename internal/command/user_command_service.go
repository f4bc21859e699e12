package command

import (
	"context"
	"fmt"
	"log"

	"github.com/KeiviX/expense-manager-app/internal/auth"
	"github.com/KeiviX/expense-manager-app/internal/cqrs"
	"github.com/KeiviX/expense-manager-app/internal/events"
	"github.com/KeiviX/expense-manager-app/internal/models"
)

// UserCreator is the persistence surface UserCommandService writes through.
type UserCreator interface {
	Create(user *models.User) error
}

// UserCommandService registers new users. The plaintext password is hashed
// immediately and never stored or logged.
type UserCommandService struct {
	users     UserCreator
	publisher *events.Publisher
}

func NewUserCommandService(users UserCreator, publisher *events.Publisher) *UserCommandService {
	return &UserCommandService{users: users, publisher: publisher}
}

func (s *UserCommandService) Register(cmd cqrs.RegisterUserCommand) (*models.User, error) {
	passwordHash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		Email:        cmd.Email,
		FullName:     cmd.FullName,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	if err := s.publisher.Publish(context.Background(), events.UserEventsStream, events.UserRegistered, events.UserRegisteredEvent{
		UserID: user.ID,
		Email:  user.Email,
	}); err != nil {
		log.Printf("Failed to publish user.registered event: %v", err)
	}
	return user, nil
}
