// Package models содержит доменные структуры школьной платформы,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Announcement представляет объявление для сотрудников и учеников организации.
type Announcement struct {
	ID                   int       // Идентификатор записи
	Title                string    // Заголовок объявления
	Content              string    // Текст объявления
	ClientOrganizationID string    // Идентификатор организации (арендатора)
	IsActive             bool      // Мягкое удаление: false — объявление скрыто
	CreatedAt            time.Time // Дата создания
}

// DummyAnnouncement используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Announcement.
type DummyAnnouncement struct {
	Title   string `json:"title" validate:"required"`   // Заголовок
	Content string `json:"content" validate:"required"` // Текст
}
