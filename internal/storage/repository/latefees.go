package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/school-fees-platform/internal/models"
)

// CreateLateFeePolicy вставляет новую политику пени и возвращает её ID.
func (s *Storage) CreateLateFeePolicy(ctx context.Context, p models.LateFeePolicy) (int, error) {
	const op = "storage.CreateLateFeePolicy"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO late_fee_policies (class_id, session_id, client_organization_uid, amount, is_active)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		p.ClassID, p.SessionID, p.ClientOrganizationID, p.Amount, p.IsActive).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListLateFeePolicies возвращает активные политики пени организации.
func (s *Storage) ListLateFeePolicies(ctx context.Context, organizationUID string) ([]*models.LateFeePolicy, error) {
	const op = "storage.ListLateFeePolicies"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, class_id, session_id, client_organization_uid, amount, is_active
			  FROM late_fee_policies
			  WHERE client_organization_uid = $1 AND is_active = true
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, organizationUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []*models.LateFeePolicy
	for rows.Next() {
		var item models.LateFeePolicy
		if err := rows.Scan(&item.ID, &item.ClassID, &item.SessionID,
			&item.ClientOrganizationID, &item.Amount, &item.IsActive); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	err = rows.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindActiveLateFeePolicy ищет активную политику пени для класса и учебного
// года. Если политика не настроена, возвращает (nil, nil): для задачи
// начисления это не ошибка, платеж просто помечается как просроченный.
func (s *Storage) FindActiveLateFeePolicy(ctx context.Context, classID, sessionID int) (*models.LateFeePolicy, error) {
	const op = "storage.FindActiveLateFeePolicy"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, class_id, session_id, client_organization_uid, amount, is_active
			  FROM late_fee_policies
			  WHERE class_id = $1 AND session_id = $2 AND is_active = true
			  LIMIT 1`
	row := s.DB.QueryRowContext(ctx, query, classID, sessionID)

	var result models.LateFeePolicy
	err := row.Scan(&result.ID, &result.ClassID, &result.SessionID,
		&result.ClientOrganizationID, &result.Amount, &result.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// LateFeeChargeExists проверяет, начислена ли уже пеня по платежу.
func (s *Storage) LateFeeChargeExists(ctx context.Context, feeID int) (bool, error) {
	const op = "storage.LateFeeChargeExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM student_late_fees WHERE fee_id = $1)`, feeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// CreateLateFeeCharge начисляет пеню по платежу. Колонка fee_id уникальна,
// вставка идет через ON CONFLICT DO NOTHING: при гонке двух прогонов задачи
// вторая вставка молча не создаст дубликат. Возвращает количество
// вставленных строк (0 — пеня уже была начислена).
func (s *Storage) CreateLateFeeCharge(ctx context.Context, charge models.StudentLateFee) (int, error) {
	const op = "storage.CreateLateFeeCharge"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO student_late_fees (fee_id, client_organization_uid, amount, days_overdue, applied_date)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (fee_id) DO NOTHING`
	result, err := s.DB.ExecContext(ctx, query,
		charge.FeeID, charge.ClientOrganizationID, charge.Amount, charge.DaysOverdue, charge.AppliedDate)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
