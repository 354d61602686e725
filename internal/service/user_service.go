package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/d60-Lab/blog-platform/internal/repository"
	"github.com/d60-Lab/blog-platform/pkg/media"
)

type UserService interface {
	Get(ctx context.Context, userID string) (*UserView, error)
	GetByUsername(ctx context.Context, username string) (*UserView, error)
}

type userService struct {
	users repository.UserRepository
	media *media.Resolver
}

func NewUserService(users repository.UserRepository, m *media.Resolver) UserService {
	return &userService{users: users, media: m}
}

func (s *userService) Get(ctx context.Context, userID string) (*UserView, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	return userView(u, s.media), nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*UserView, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user %q", ErrNotFound, username)
	}
	return userView(u, s.media), nil
}
