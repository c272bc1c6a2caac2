// Package services реализует задачу начисления пени за просроченные платежи.
//
// Задача выполняется раз в сутки либо запускается вручную через HTTP API.
// Каждый просроченный платеж обрабатывается независимо: ошибка по одной
// записи не останавливает прогон, а попадает в итоговую сводку.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/school-fees-platform/internal/lib/dates"
	"github.com/magabrotheeeer/school-fees-platform/internal/lib/sl"
	"github.com/magabrotheeeer/school-fees-platform/internal/models"
)

// FeeRepository описывает операции хранилища, нужные задаче начисления пени.
type FeeRepository interface {
	FindOverdueFees(ctx context.Context, today time.Time) ([]*models.StudentFee, error)
	ResolveFeeContext(ctx context.Context, feeID int) (*models.FeeContext, error)
	FindActiveLateFeePolicy(ctx context.Context, classID, sessionID int) (*models.LateFeePolicy, error)
	LateFeeChargeExists(ctx context.Context, feeID int) (bool, error)
	CreateLateFeeCharge(ctx context.Context, charge models.StudentLateFee) (int, error)
	MarkFeeOverdue(ctx context.Context, feeID int) error
}

// EventPublisher публикует событие о начисленной пене в очередь уведомлений.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// LateFeeService обходит просроченные платежи, начисляет пени по настроенным
// политикам и переводит платежи в статус overdue.
type LateFeeService struct {
	repo      FeeRepository
	publisher EventPublisher
	log       *slog.Logger
}

// NewLateFeeService создает новый экземпляр LateFeeService.
// publisher может быть nil: тогда уведомления не публикуются.
func NewLateFeeService(repo FeeRepository, publisher EventPublisher, log *slog.Logger) *LateFeeService {
	return &LateFeeService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Start запускает ежесуточный цикл начисления пени: один прогон сразу
// и далее по тикеру каждые 24 часа, пока не отменен контекст.
func (s *LateFeeService) Start(ctx context.Context) {
	s.runOnce(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *LateFeeService) runOnce(ctx context.Context) {
	summary, err := s.Run(ctx, time.Now())
	if err != nil {
		s.log.Error("late fee run failed", sl.Err(err))
		return
	}
	s.log.Info("late fee run finished",
		"total", summary.TotalOverdueFees,
		"processed", summary.SuccessfullyProcessed,
		"errors", summary.Errors)
}

// Run выполняет один прогон задачи начисления пени на дату now и возвращает
// сводку. Ошибка возвращается только если не удалось получить список
// просроченных платежей; ошибки по отдельным записям учитываются в сводке.
func (s *LateFeeService) Run(ctx context.Context, now time.Time) (*models.LateFeeSummary, error) {
	const op = "services.latefee.Run"

	today := dates.StartOfDay(now)
	s.log.Info("starting late fee run", "date", today.Format("02-01-2006"))

	fees, err := s.repo.FindOverdueFees(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summary := &models.LateFeeSummary{
		ProcessedDate:    today,
		TotalOverdueFees: len(fees),
	}
	if len(fees) == 0 {
		s.log.Info("no overdue fees found")
		return summary, nil
	}
	s.log.Info("found overdue fees", "count", len(fees))

	for _, fee := range fees {
		if err := s.processFee(ctx, fee, today); err != nil {
			s.log.Error("failed to process overdue fee", "fee_id", fee.ID, sl.Err(err))
			summary.Errors++
			continue
		}
		summary.SuccessfullyProcessed++
	}
	return summary, nil
}

// processFee обрабатывает один просроченный платеж. Паника при обработке
// записи перехватывается и превращается в ошибку этой записи.
func (s *LateFeeService) processFee(ctx context.Context, fee *models.StudentFee, today time.Time) (err error) {
	const op = "services.latefee.processFee"

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", op, r)
		}
	}()

	// Контекст платежа разрешается первым: платеж без класса или учебного
	// года ошибочен независимо от того, была ли уже начислена пеня.
	feeCtx, err := s.repo.ResolveFeeContext(ctx, fee.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	policy, err := s.repo.FindActiveLateFeePolicy(ctx, feeCtx.ClassID, feeCtx.SessionID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if policy == nil {
		// Политика пени не настроена: платеж помечается просроченным без начисления.
		if err := s.repo.MarkFeeOverdue(ctx, fee.ID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}

	exists, err := s.repo.LateFeeChargeExists(ctx, fee.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		// Пеня уже была начислена ранее, осталось только зафиксировать статус.
		if err := s.repo.MarkFeeOverdue(ctx, fee.ID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}

	charge := models.StudentLateFee{
		FeeID:                fee.ID,
		ClientOrganizationID: fee.ClientOrganizationID,
		Amount:               policy.Amount,
		DaysOverdue:          dates.DaysOverdue(fee.DueDate, today),
		AppliedDate:          today,
	}
	inserted, err := s.repo.CreateLateFeeCharge(ctx, charge)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.MarkFeeOverdue(ctx, fee.ID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// inserted == 0 означает, что параллельный прогон успел начислить пеню
	// первым, уведомление в этом случае уже отправлено им.
	if inserted > 0 && s.publisher != nil {
		notice := models.LateFeeNotice{
			GuardianEmail: fee.GuardianEmail,
			StudentName:   fee.StudentName,
			ClassName:     feeCtx.ClassName,
			SessionName:   feeCtx.SessionName,
			Amount:        charge.Amount,
			DaysOverdue:   charge.DaysOverdue,
			AppliedDate:   charge.AppliedDate,
		}
		if err := s.publisher.Publish("latefee.applied", notice); err != nil {
			// Уведомление не критично для начисления, ошибка только логируется.
			s.log.Error("failed to publish late fee notice", "fee_id", fee.ID, sl.Err(err))
		}
	}
	return nil
}
