package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/void-adarsh/Notes-App/config"
	"github.com/void-adarsh/Notes-App/internal/auth/domain"
	"github.com/void-adarsh/Notes-App/internal/auth/dto"
	"github.com/void-adarsh/Notes-App/internal/auth/service"
	apperror "github.com/void-adarsh/Notes-App/internal/errors"
	"github.com/void-adarsh/Notes-App/internal/mocks"
)

// bcrypt.MinCost keeps the suite fast
var testConfig = &config.Config{BcryptCost: bcrypt.MinCost}

func TestUserService_Signup_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockTokenService := mocks.NewMockTokenCodec(ctrl)

	s := service.NewUserService(mockRepo, mockTokenService, testConfig)

	input := dto.SignupInput{
		Username: "jane",
		Email:    "jane@example.com",
		Password: "password123",
	}

	var created *domain.User
	mockRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *domain.User) error {
		created = u
		return nil
	})
	mockTokenService.EXPECT().Sign(gomock.Any(), input.Email).Return("signed-token", nil)

	resp, err := s.Signup(context.Background(), input)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "signed-token", resp.Token)
	assert.Equal(t, created.ID, resp.User.ID)
	assert.Equal(t, "jane", resp.User.Username)
	assert.Equal(t, input.Email, resp.User.Email)
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, input.Password, created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte(input.Password)))
	assert.NotZero(t, created.CreatedAt)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestUserService_Signup_StoresUsernameAsSent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockTokenService := mocks.NewMockTokenCodec(ctrl)
	s := service.NewUserService(mockRepo, mockTokenService, testConfig)

	input := dto.SignupInput{Username: " jane ", Email: "jane@example.com", Password: "pw"}

	mockRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *domain.User) error {
		assert.Equal(t, " jane ", u.Username)
		return nil
	})
	mockTokenService.EXPECT().Sign(gomock.Any(), input.Email).Return("signed-token", nil)

	resp, err := s.Signup(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, " jane ", resp.User.Username)
}

func TestUserService_Signup_Validation(t *testing.T) {
	tests := []struct {
		name     string
		input    dto.SignupInput
		expected error
	}{
		{"missing username", dto.SignupInput{Email: "a@b.co", Password: "pw"}, apperror.ErrSignupFieldsRequired},
		{"blank username", dto.SignupInput{Username: "   ", Email: "a@b.co", Password: "pw"}, apperror.ErrSignupFieldsRequired},
		{"missing email", dto.SignupInput{Username: "jane", Password: "pw"}, apperror.ErrSignupFieldsRequired},
		{"missing password", dto.SignupInput{Username: "jane", Email: "a@b.co"}, apperror.ErrSignupFieldsRequired},
		{"no at sign", dto.SignupInput{Username: "jane", Email: "jane.example.com", Password: "pw"}, apperror.ErrInvalidEmail},
		{"no tld", dto.SignupInput{Username: "jane", Email: "jane@example", Password: "pw"}, apperror.ErrInvalidEmail},
		{"whitespace inside", dto.SignupInput{Username: "jane", Email: "ja ne@example.com", Password: "pw"}, apperror.ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// no repository call is expected
			s := service.NewUserService(mocks.NewMockUserRepository(ctrl), mocks.NewMockTokenCodec(ctrl), testConfig)

			resp, err := s.Signup(context.Background(), tt.input)
			assert.Equal(t, tt.expected, err)
			assert.Nil(t, resp)
		})
	}
}

func TestUserService_Signup_EmailAlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	s := service.NewUserService(mockRepo, mocks.NewMockTokenCodec(ctrl), testConfig)

	input := dto.SignupInput{Username: "jane", Email: "jane@example.com", Password: "password123"}
	mockRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(&domain.User{ID: "existing-id", Email: input.Email}, nil)

	resp, err := s.Signup(context.Background(), input)

	assert.Equal(t, apperror.ErrEmailAlreadyInUse, err)
	assert.Nil(t, resp)
}

func TestUserService_Signup_RepositoryErrors(t *testing.T) {
	input := dto.SignupInput{Username: "jane", Email: "jane@example.com", Password: "password123"}

	t.Run("lookup fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockUserRepository(ctrl)
		s := service.NewUserService(mockRepo, mocks.NewMockTokenCodec(ctrl), testConfig)

		expectedError := errors.New("database error")
		mockRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, expectedError)

		resp, err := s.Signup(context.Background(), input)
		assert.Equal(t, expectedError, err)
		assert.Nil(t, resp)
	})

	t.Run("create fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockUserRepository(ctrl)
		s := service.NewUserService(mockRepo, mocks.NewMockTokenCodec(ctrl), testConfig)

		expectedError := errors.New("create error")
		mockRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(expectedError)

		resp, err := s.Signup(context.Background(), input)
		assert.Equal(t, expectedError, err)
		assert.Nil(t, resp)
	})

	t.Run("token signing fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockUserRepository(ctrl)
		mockTokenService := mocks.NewMockTokenCodec(ctrl)
		s := service.NewUserService(mockRepo, mockTokenService, testConfig)

		mockRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		mockTokenService.EXPECT().Sign(gomock.Any(), input.Email).Return("", errors.New("sign error"))

		resp, err := s.Signup(context.Background(), input)
		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestUserService_Login(t *testing.T) {
	password := "password123"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		ID:           "64bf2e15ecb9a44fd451cdeb",
		Username:     "jane",
		Email:        "jane@example.com",
		PasswordHash: string(hashedPassword),
	}

	tests := []struct {
		name      string
		input     dto.LoginInput
		setup     func(repo *mocks.MockUserRepository, tokens *mocks.MockTokenCodec)
		expectErr error
	}{
		{
			name:  "success",
			input: dto.LoginInput{Email: user.Email, Password: password},
			setup: func(repo *mocks.MockUserRepository, tokens *mocks.MockTokenCodec) {
				repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
				tokens.EXPECT().Sign(user.ID, user.Email).Return("signed-token", nil)
			},
		},
		{
			name:      "missing password",
			input:     dto.LoginInput{Email: user.Email},
			setup:     func(*mocks.MockUserRepository, *mocks.MockTokenCodec) {},
			expectErr: apperror.ErrLoginFieldsRequired,
		},
		{
			name:      "invalid email",
			input:     dto.LoginInput{Email: "jane", Password: password},
			setup:     func(*mocks.MockUserRepository, *mocks.MockTokenCodec) {},
			expectErr: apperror.ErrInvalidEmail,
		},
		{
			name:  "unknown user",
			input: dto.LoginInput{Email: "ghost@example.com", Password: password},
			setup: func(repo *mocks.MockUserRepository, _ *mocks.MockTokenCodec) {
				repo.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").Return(nil, nil)
			},
			expectErr: apperror.ErrUserNotFound,
		},
		{
			name:  "wrong password",
			input: dto.LoginInput{Email: user.Email, Password: "wrong-password"},
			setup: func(repo *mocks.MockUserRepository, _ *mocks.MockTokenCodec) {
				repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
			},
			expectErr: apperror.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockUserRepository(ctrl)
			mockTokenService := mocks.NewMockTokenCodec(ctrl)
			tt.setup(mockRepo, mockTokenService)

			s := service.NewUserService(mockRepo, mockTokenService, testConfig)
			resp, err := s.Login(context.Background(), tt.input)

			if tt.expectErr != nil {
				assert.Equal(t, tt.expectErr, err)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "signed-token", resp.Token)
			assert.Equal(t, user.ID, resp.User.ID)
			assert.Equal(t, user.Email, resp.User.Email)
		})
	}
}

func TestUserService_Login_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	s := service.NewUserService(mockRepo, mocks.NewMockTokenCodec(ctrl), testConfig)

	expectedError := errors.New("database error")
	mockRepo.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(nil, expectedError)

	resp, err := s.Login(context.Background(), dto.LoginInput{Email: "jane@example.com", Password: "pw"})
	assert.Equal(t, expectedError, err)
	assert.Nil(t, resp)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, service.ValidEmail("user@example.com"))
	assert.True(t, service.ValidEmail("first.last+tag@sub.example.co"))
	assert.False(t, service.ValidEmail(""))
	assert.False(t, service.ValidEmail("user@@example.com"))
	assert.False(t, service.ValidEmail("user@example"))
}
