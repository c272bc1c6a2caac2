// Package services содержит бизнес-логику для управления классами и учебными годами.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/school-fees-platform/internal/models"
)

// SchoolRepository определяет методы для работы с классами и учебными годами.
type SchoolRepository interface {
	// CreateClass добавляет новый класс и возвращает его ID.
	CreateClass(ctx context.Context, c models.Class) (int, error)
	// ListClasses возвращает активные классы организации.
	ListClasses(ctx context.Context, organizationUID string) ([]*models.Class, error)
	// CreateSession добавляет новый учебный год и возвращает его ID.
	CreateSession(ctx context.Context, sess models.Session) (int, error)
	// ListSessions возвращает активные учебные годы организации.
	ListSessions(ctx context.Context, organizationUID string) ([]*models.Session, error)
}

// SchoolService реализует бизнес-логику работы с классами и учебными годами.
type SchoolService struct {
	repo SchoolRepository
	log  *slog.Logger
}

// NewSchoolService создает новый экземпляр SchoolService.
func NewSchoolService(repo SchoolRepository, log *slog.Logger) *SchoolService {
	return &SchoolService{
		repo: repo,
		log:  log,
	}
}

// CreateClass создает новый класс организации.
func (s *SchoolService) CreateClass(ctx context.Context, organizationUID string, req models.DummyClass) (int, error) {
	class := models.Class{
		Name:                 req.Name,
		ClientOrganizationID: organizationUID,
		IsActive:             true,
	}
	id, err := s.repo.CreateClass(ctx, class)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new class", slog.Int("id", id))
	return id, nil
}

// ListClasses возвращает активные классы организации.
func (s *SchoolService) ListClasses(ctx context.Context, organizationUID string) ([]*models.Class, error) {
	return s.repo.ListClasses(ctx, organizationUID)
}

// CreateSession создает новый учебный год организации.
func (s *SchoolService) CreateSession(ctx context.Context, organizationUID string, req models.DummySession) (int, error) {
	startDate, err := time.Parse("02-01-2006", req.StartDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := time.Parse("02-01-2006", req.EndDate)
	if err != nil {
		return 0, fmt.Errorf("invalid end date: %w", err)
	}
	if !endDate.After(startDate) {
		return 0, fmt.Errorf("session end date must be later than start date")
	}

	session := models.Session{
		Name:                 req.Name,
		StartDate:            startDate,
		EndDate:              endDate,
		ClientOrganizationID: organizationUID,
		IsActive:             true,
	}
	id, err := s.repo.CreateSession(ctx, session)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new session", slog.Int("id", id))
	return id, nil
}

// ListSessions возвращает активные учебные годы организации.
func (s *SchoolService) ListSessions(ctx context.Context, organizationUID string) ([]*models.Session, error) {
	return s.repo.ListSessions(ctx, organizationUID)
}
