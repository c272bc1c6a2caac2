// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/school-fees-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/school-fees-platform/internal/lib/password"
	"github.com/magabrotheeeer/school-fees-platform/internal/models"
)

// ErrInvalidToken возвращается при попытке обновить невалидный или
// окончательно истекший токен. Обработчик переводит её в HTTP 401 —
// единственный путь, по которому клиент принудительно разлогинивается.
var ErrInvalidToken = errors.New("invalid or expired token")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию, валидацию и обновление JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью "user".
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword, organizationUID string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := &models.User{
		Email:                email,
		Username:             username,
		PasswordHash:         hashed,
		Role:                 "user", // дефолтная роль при регистрации
		ClientOrganizationID: organizationUID,
	}
	return s.users.RegisterUser(ctx, *user)
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", errors.New("invalid credentials")
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.UUID, user.Email, user.ClientOrganizationID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ValidateToken проверяет JWT и возвращает информацию о пользователе, роль и признак валидности.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, string, bool, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, "", false, err
	}
	user := &models.User{
		Username:             claims.Username,
		Role:                 claims.Role,
		UUID:                 claims.UserUID,
		Email:                claims.Email,
		ClientOrganizationID: claims.ClientOrganizationID,
	}
	return user, claims.Role, true, nil
}

// RefreshToken принимает действующий токен и выпускает новый с тем же набором
// claims и сдвинутым сроком жизни. Невалидный или истекший токен обновить
// нельзя — возвращается ErrInvalidToken.
func (s *AuthService) RefreshToken(_ context.Context, token string) (string, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return "", ErrInvalidToken
	}
	return s.jwtMaker.GenerateToken(claims.Username, claims.Role, claims.UserUID, claims.Email, claims.ClientOrganizationID)
}
