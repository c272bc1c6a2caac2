package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/school-fees-platform/internal/models"
)

// CreateAnnouncement вставляет новое объявление и возвращает его ID.
func (s *Storage) CreateAnnouncement(ctx context.Context, a models.Announcement) (int, error) {
	const op = "storage.CreateAnnouncement"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO announcements (title, content, client_organization_uid, is_active)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		a.Title, a.Content, a.ClientOrganizationID, a.IsActive).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListAnnouncements возвращает активные объявления организации с пагинацией.
func (s *Storage) ListAnnouncements(ctx context.Context, organizationUID string, limit, offset int) ([]*models.Announcement, error) {
	const op = "storage.ListAnnouncements"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, content, client_organization_uid, is_active, created_at
			  FROM announcements
			  WHERE client_organization_uid = $1 AND is_active = true
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, organizationUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []*models.Announcement
	for rows.Next() {
		var item models.Announcement
		if err := rows.Scan(&item.ID, &item.Title, &item.Content,
			&item.ClientOrganizationID, &item.IsActive, &item.CreatedAt); err != nil {
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

// RemoveAnnouncement скрывает объявление организации (мягкое удаление)
// и возвращает количество изменённых строк.
func (s *Storage) RemoveAnnouncement(ctx context.Context, id int, organizationUID string) (int, error) {
	const op = "storage.RemoveAnnouncement"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE announcements SET is_active = false
			  WHERE id = $1 AND client_organization_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, organizationUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
