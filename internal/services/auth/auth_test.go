package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/magabrotheeeer/school-fees-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/school-fees-platform/internal/lib/password"
	"github.com/magabrotheeeer/school-fees-platform/internal/models"
	services "github.com/magabrotheeeer/school-fees-platform/internal/services/auth"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	maker := customjwt.NewJWTMaker("test_secret", time.Hour)

	tests := []struct {
		name        string
		email       string
		username    string
		password    string
		setupMocks  func(r *UserRepoMock)
		wantUserUID string
		wantErr     bool
		errMsg      string
	}{
		{
			name:     "successful registration",
			email:    "accountant@school.org",
			username: "accountant",
			password: "password123",
			setupMocks: func(r *UserRepoMock) {
				r.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "accountant@school.org" &&
						user.Username == "accountant" &&
						user.PasswordHash != "" &&
						user.Role == "user" &&
						user.ClientOrganizationID == "org-001"
				})).Return("some-uuid-string", nil).Once()
			},
			wantUserUID: "some-uuid-string",
			wantErr:     false,
		},
		{
			name:     "repository error",
			email:    "accountant@school.org",
			username: "accountant",
			password: "password123",
			setupMocks: func(r *UserRepoMock) {
				r.On("RegisterUser", mock.Anything, mock.Anything).Return("", errors.New("db error")).Once()
			},
			wantUserUID: "",
			wantErr:     true,
			errMsg:      "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			svc := services.NewAuthService(repo, maker)

			tt.setupMocks(repo)

			got, err := svc.Register(context.Background(), tt.email, tt.username, tt.password, "org-001")
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantUserUID, got)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	rawPassword := "correctpassword"
	hash, err := password.GetHash(rawPassword)
	require.NoError(t, err)

	maker := customjwt.NewJWTMaker("test_secret", time.Hour)

	storedUser := &models.User{
		UUID:                 "550e8400-e29b-41d4-a716-446655440000",
		Email:                "accountant@school.org",
		Username:             "accountant",
		PasswordHash:         hash,
		Role:                 "user",
		ClientOrganizationID: "org-001",
	}

	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(r *UserRepoMock)
		wantErr    bool
	}{
		{
			name:     "successful login",
			username: "accountant",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByUsername", mock.Anything, "accountant").Return(storedUser, nil).Once()
			},
			wantErr: false,
		},
		{
			name:     "wrong password",
			username: "accountant",
			password: "wrongpassword",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByUsername", mock.Anything, "accountant").Return(storedUser, nil).Once()
			},
			wantErr: true,
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, errors.New("not found")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			svc := services.NewAuthService(repo, maker)

			tt.setupMocks(repo)

			token, role, err := svc.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, "user", role)

				claims, parseErr := maker.ParseToken(token)
				require.NoError(t, parseErr)
				assert.Equal(t, "accountant", claims.Username)
				assert.Equal(t, "org-001", claims.ClientOrganizationID)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	maker := customjwt.NewJWTMaker("test_secret", time.Hour)
	repo := new(UserRepoMock)
	svc := services.NewAuthService(repo, maker)

	t.Run("refresh keeps claims and moves expiry", func(t *testing.T) {
		oldToken, err := maker.GenerateToken("accountant", "user", "uid-1", "accountant@school.org", "org-001")
		require.NoError(t, err)

		newToken, err := svc.RefreshToken(context.Background(), oldToken)
		require.NoError(t, err)
		assert.NotEmpty(t, newToken)

		claims, err := maker.ParseToken(newToken)
		require.NoError(t, err)
		assert.Equal(t, "accountant", claims.Username)
		assert.Equal(t, "user", claims.Role)
		assert.Equal(t, "uid-1", claims.UserUID)
		assert.Equal(t, "org-001", claims.ClientOrganizationID)
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Second)
	})

	t.Run("expired token is not refreshable", func(t *testing.T) {
		expiredMaker := customjwt.NewJWTMaker("test_secret", -time.Hour)
		expiredToken, err := expiredMaker.GenerateToken("accountant", "user", "uid-1", "accountant@school.org", "org-001")
		require.NoError(t, err)

		newToken, err := svc.RefreshToken(context.Background(), expiredToken)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
		assert.Empty(t, newToken)
	})

	t.Run("garbage token is not refreshable", func(t *testing.T) {
		newToken, err := svc.RefreshToken(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, services.ErrInvalidToken)
		assert.Empty(t, newToken)
	})
}
