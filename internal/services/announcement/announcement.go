// Package services содержит бизнес-логику для управления объявлениями и их кеширования.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/school-fees-platform/internal/models"
)

// AnnouncementRepository определяет методы для работы с объявлениями в хранилище.
type AnnouncementRepository interface {
	// CreateAnnouncement добавляет новое объявление и возвращает его ID.
	CreateAnnouncement(ctx context.Context, a models.Announcement) (int, error)
	// ListAnnouncements возвращает объявления организации с пагинацией.
	ListAnnouncements(ctx context.Context, organizationUID string, limit, offset int) ([]*models.Announcement, error)
	// RemoveAnnouncement скрывает объявление и возвращает количество изменённых строк.
	RemoveAnnouncement(ctx context.Context, id int, organizationUID string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// AnnouncementService реализует бизнес-логику работы с объявлениями, включая кеширование.
type AnnouncementService struct {
	repo  AnnouncementRepository
	cache Cache
	log   *slog.Logger
}

// NewAnnouncementService создает новый экземпляр AnnouncementService.
func NewAnnouncementService(repo AnnouncementRepository, cache Cache, log *slog.Logger) *AnnouncementService {
	return &AnnouncementService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает новое объявление организации и инвалидирует кеш списка.
func (s *AnnouncementService) Create(ctx context.Context, organizationUID string, req models.DummyAnnouncement) (int, error) {
	announcement := models.Announcement{
		Title:                req.Title,
		Content:              req.Content,
		ClientOrganizationID: organizationUID,
		IsActive:             true,
	}

	id, err := s.repo.CreateAnnouncement(ctx, announcement)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new announcement", slog.Int("id", id))

	cacheKey := fmt.Sprintf("announcements:%s", organizationUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate announcements cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return id, nil
}

// List возвращает объявления организации, используя кеш для первой страницы.
func (s *AnnouncementService) List(ctx context.Context, organizationUID string, limit, offset int) ([]*models.Announcement, error) {
	// Кешируется только первая страница: её запрашивают чаще всего.
	cacheable := offset == 0
	cacheKey := fmt.Sprintf("announcements:%s", organizationUID)

	if cacheable {
		var cached []*models.Announcement
		found, err := s.cache.Get(cacheKey, &cached)
		if err != nil {
			s.log.Warn("failed to read announcements cache", slog.String("key", cacheKey), slog.Any("err", err))
		}
		if found && len(cached) >= limit {
			return cached[:limit], nil
		}
	}

	result, err := s.repo.ListAnnouncements(ctx, organizationUID, limit, offset)
	if err != nil {
		return nil, err
	}

	if cacheable && result != nil {
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to cache announcements", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}
	return result, nil
}

// Remove скрывает объявление организации и инвалидирует кеш списка.
func (s *AnnouncementService) Remove(ctx context.Context, id int, organizationUID string) (int, error) {
	cacheKey := fmt.Sprintf("announcements:%s", organizationUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate announcements cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	count, err := s.repo.RemoveAnnouncement(ctx, id, organizationUID)
	if err != nil {
		return 0, err
	}
	return count, nil
}
