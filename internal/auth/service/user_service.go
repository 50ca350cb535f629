package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/void-adarsh/Notes-App/config"
	"github.com/void-adarsh/Notes-App/internal/auth/domain"
	"github.com/void-adarsh/Notes-App/internal/auth/dto"
	apperror "github.com/void-adarsh/Notes-App/internal/errors"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type UserService struct {
	repo         domain.UserRepository
	tokenService TokenCodec
	bcryptCost   int
	now          func() time.Time
}

func NewUserService(repo domain.UserRepository, tokenService TokenCodec, cfg *config.Config) *UserService {
	return &UserService{
		repo:         repo,
		tokenService: tokenService,
		bcryptCost:   cfg.BcryptCost,
		now:          time.Now,
	}
}

// ValidEmail reports whether email has the user@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func (s *UserService) Signup(ctx context.Context, input dto.SignupInput) (*dto.AuthResponse, error) {
	if strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, apperror.ErrSignupFieldsRequired
	}
	if !ValidEmail(input.Email) {
		return nil, apperror.ErrInvalidEmail
	}

	existingUser, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, apperror.ErrEmailAlreadyInUse
	}

	// bcrypt falls back to its default cost when given anything below MinCost
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, apperror.ErrLoginFieldsRequired
	}
	if !ValidEmail(input.Email) {
		return nil, apperror.ErrInvalidEmail
	}

	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *UserService) issue(user *domain.User) (*dto.AuthResponse, error) {
	token, err := s.tokenService.Sign(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		User:  dto.NewUserOutput(user),
		Token: token,
	}, nil
}
