// Package services содержит бизнес-логику для управления платежными
// обязательствами учеников и политиками пени.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/school-fees-platform/internal/models"
)

// FeeRepository определяет методы для работы с платежами и политиками пени.
type FeeRepository interface {
	// CreateFee добавляет новое платежное обязательство и возвращает его ID.
	CreateFee(ctx context.Context, fee models.StudentFee) (int, error)
	// ListFeesByStudent возвращает платежи ученика с пагинацией.
	ListFeesByStudent(ctx context.Context, organizationUID, studentUID string, limit, offset int) ([]*models.StudentFee, error)
	// CreateLateFeePolicy добавляет новую политику пени и возвращает её ID.
	CreateLateFeePolicy(ctx context.Context, p models.LateFeePolicy) (int, error)
	// ListLateFeePolicies возвращает активные политики пени организации.
	ListLateFeePolicies(ctx context.Context, organizationUID string) ([]*models.LateFeePolicy, error)
}

// FeeService реализует бизнес-логику работы с платежами и политиками пени.
type FeeService struct {
	repo FeeRepository
	log  *slog.Logger
}

// NewFeeService создает новый экземпляр FeeService.
func NewFeeService(repo FeeRepository, log *slog.Logger) *FeeService {
	return &FeeService{
		repo: repo,
		log:  log,
	}
}

// Create создает новое платежное обязательство со статусом not_started.
func (s *FeeService) Create(ctx context.Context, organizationUID string, req models.DummyFee) (int, error) {
	dueDate, err := time.Parse("02-01-2006", req.DueDate)
	if err != nil {
		return 0, fmt.Errorf("invalid due date: %w", err)
	}

	fee := models.StudentFee{
		StudentUID:           req.StudentUID,
		StudentName:          req.StudentName,
		GuardianEmail:        req.GuardianEmail,
		ClassID:              req.ClassID,
		SessionID:            req.SessionID,
		ClientOrganizationID: organizationUID,
		Amount:               req.Amount,
		DueDate:              dueDate,
		Status:               models.FeeStatusNotStarted,
		IsActive:             true,
	}

	id, err := s.repo.CreateFee(ctx, fee)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new student fee", slog.Int("id", id))
	return id, nil
}

// ListByStudent возвращает платежи ученика в рамках организации.
func (s *FeeService) ListByStudent(ctx context.Context, organizationUID, studentUID string, limit, offset int) ([]*models.StudentFee, error) {
	return s.repo.ListFeesByStudent(ctx, organizationUID, studentUID, limit, offset)
}

// CreatePolicy создает новую политику пени для класса и учебного года.
func (s *FeeService) CreatePolicy(ctx context.Context, organizationUID string, req models.DummyLateFeePolicy) (int, error) {
	policy := models.LateFeePolicy{
		ClassID:              req.ClassID,
		SessionID:            req.SessionID,
		ClientOrganizationID: organizationUID,
		Amount:               req.Amount,
		IsActive:             true,
	}

	id, err := s.repo.CreateLateFeePolicy(ctx, policy)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new late fee policy", slog.Int("id", id))
	return id, nil
}

// ListPolicies возвращает активные политики пени организации.
func (s *FeeService) ListPolicies(ctx context.Context, organizationUID string) ([]*models.LateFeePolicy, error) {
	return s.repo.ListLateFeePolicies(ctx, organizationUID)
}
