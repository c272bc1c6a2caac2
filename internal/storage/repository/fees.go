package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/school-fees-platform/internal/models"
)

// CreateFee вставляет новое платежное обязательство и возвращает его ID.
func (s *Storage) CreateFee(ctx context.Context, fee models.StudentFee) (int, error) {
	const op = "storage.CreateFee"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO student_fees (student_uid, student_name, guardian_email, class_id,
			      session_id, client_organization_uid, amount, due_date, status, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		fee.StudentUID, fee.StudentName, fee.GuardianEmail, fee.ClassID, fee.SessionID,
		fee.ClientOrganizationID, fee.Amount, fee.DueDate, fee.Status, fee.IsActive).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListFeesByStudent возвращает платежи ученика в рамках организации с пагинацией.
func (s *Storage) ListFeesByStudent(ctx context.Context, organizationUID, studentUID string, limit, offset int) ([]*models.StudentFee, error) {
	const op = "storage.ListFeesByStudent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, student_uid, student_name, guardian_email, class_id, session_id,
				client_organization_uid, amount, due_date, status, is_active
			  FROM student_fees
			  WHERE client_organization_uid = $1 AND student_uid = $2 AND is_active = true
			  ORDER BY due_date
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, organizationUID, studentUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []*models.StudentFee
	for rows.Next() {
		var item models.StudentFee
		if err := rows.Scan(&item.ID, &item.StudentUID, &item.StudentName, &item.GuardianEmail,
			&item.ClassID, &item.SessionID, &item.ClientOrganizationID, &item.Amount,
			&item.DueDate, &item.Status, &item.IsActive); err != nil {
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

// FindOverdueFees возвращает активные платежи всех организаций, срок которых
// прошел, а статус еще не переведен в overdue. Фильтра по арендатору нет:
// задача начисления пени обходит всю базу за один прогон.
func (s *Storage) FindOverdueFees(ctx context.Context, today time.Time) ([]*models.StudentFee, error) {
	const op = "storage.FindOverdueFees"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, student_uid, student_name, guardian_email, class_id, session_id,
				client_organization_uid, amount, due_date, status, is_active
			  FROM student_fees
			  WHERE due_date < $1
			    AND status IN ($2, $3)
			    AND is_active = true`
	rows, err := s.DB.QueryContext(ctx, query, today, models.FeeStatusNotStarted, models.FeeStatusPending)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []*models.StudentFee
	for rows.Next() {
		var item models.StudentFee
		if err := rows.Scan(&item.ID, &item.StudentUID, &item.StudentName, &item.GuardianEmail,
			&item.ClassID, &item.SessionID, &item.ClientOrganizationID, &item.Amount,
			&item.DueDate, &item.Status, &item.IsActive); err != nil {
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

// MarkFeeOverdue переводит платеж в статус overdue. Повторный вызов
// для уже просроченного платежа безопасен.
func (s *Storage) MarkFeeOverdue(ctx context.Context, feeID int) error {
	const op = "storage.MarkFeeOverdue"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE student_fees SET status = $1 WHERE id = $2`
	if _, err := s.DB.ExecContext(ctx, query, models.FeeStatusOverdue, feeID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ResolveFeeContext возвращает класс и учебный год платежа. Если класс или
// учебный год удалены или не найдены, возвращается ошибка: такой платеж
// учитывается задачей начисления как ошибочный.
func (s *Storage) ResolveFeeContext(ctx context.Context, feeID int) (*models.FeeContext, error) {
	const op = "storage.ResolveFeeContext"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.name, s.id, s.name
			  FROM student_fees f
			  JOIN classes c ON c.id = f.class_id AND c.is_active = true
			  JOIN sessions s ON s.id = f.session_id AND s.is_active = true
			  WHERE f.id = $1`
	row := s.DB.QueryRowContext(ctx, query, feeID)

	var result models.FeeContext
	if err := row.Scan(&result.ClassID, &result.ClassName, &result.SessionID, &result.SessionName); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}
