package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-platform/internal/model"
	"github.com/d60-Lab/blog-platform/internal/repository"
	"github.com/d60-Lab/blog-platform/pkg/media"
	"github.com/d60-Lab/blog-platform/pkg/token"
)

type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Age      *int   `json:"age" binding:"omitempty,gte=13,lte=120"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult carries the bearer token plus the profile so clients skip a
// follow-up fetch.
type LoginResult struct {
	Token string    `json:"token"`
	User  *UserView `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*UserView, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
}

type authService struct {
	users repository.UserRepository
	maker *token.Maker
	media *media.Resolver
}

func NewAuthService(users repository.UserRepository, maker *token.Maker, m *media.Resolver) AuthService {
	return &authService{users: users, maker: maker, media: m}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*UserView, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}

	taken, err := s.users.ExistsUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: username %q is taken", ErrValidation, username)
	}
	taken, err = s.users.ExistsEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: email %q is already registered", ErrValidation, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
		Password: string(hash),
		Age:      in.Age,
		Bio:      in.Bio,
		Avatar:   in.Avatar,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// A registration racing past the existence checks lands on the unique
		// index; that is still a duplicate, not a storage failure.
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: username or email already registered", ErrValidation)
		}
		return nil, err
	}
	return userView(u, s.media), nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func (s *authService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	// Same error for a missing user and a wrong password, no oracle.
	if u == nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	}
	tok, err := s.maker.Issue(u.ID, u.IsStaff)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: tok, User: userView(u, s.media)}, nil
}
