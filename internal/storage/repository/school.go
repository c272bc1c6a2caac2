package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/school-fees-platform/internal/models"
)

// CreateClass вставляет новый класс и возвращает его ID.
func (s *Storage) CreateClass(ctx context.Context, c models.Class) (int, error) {
	const op = "storage.CreateClass"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO classes (name, client_organization_uid, is_active)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query, c.Name, c.ClientOrganizationID, c.IsActive).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListClasses возвращает активные классы организации.
func (s *Storage) ListClasses(ctx context.Context, organizationUID string) ([]*models.Class, error) {
	const op = "storage.ListClasses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, client_organization_uid, is_active
			  FROM classes
			  WHERE client_organization_uid = $1 AND is_active = true
			  ORDER BY name`
	rows, err := s.DB.QueryContext(ctx, query, organizationUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []*models.Class
	for rows.Next() {
		var item models.Class
		if err := rows.Scan(&item.ID, &item.Name, &item.ClientOrganizationID, &item.IsActive); err != nil {
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

// CreateSession вставляет новый учебный год и возвращает его ID.
func (s *Storage) CreateSession(ctx context.Context, sess models.Session) (int, error) {
	const op = "storage.CreateSession"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO sessions (name, start_date, end_date, client_organization_uid, is_active)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		sess.Name, sess.StartDate, sess.EndDate, sess.ClientOrganizationID, sess.IsActive).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListSessions возвращает активные учебные годы организации.
func (s *Storage) ListSessions(ctx context.Context, organizationUID string) ([]*models.Session, error) {
	const op = "storage.ListSessions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, start_date, end_date, client_organization_uid, is_active
			  FROM sessions
			  WHERE client_organization_uid = $1 AND is_active = true
			  ORDER BY start_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, organizationUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []*models.Session
	for rows.Next() {
		var item models.Session
		if err := rows.Scan(&item.ID, &item.Name, &item.StartDate, &item.EndDate,
			&item.ClientOrganizationID, &item.IsActive); err != nil {
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
