package models

import "time"

// Class представляет учебный класс организации.
type Class struct {
	ID                   int    // Идентификатор записи
	Name                 string // Название класса, например "7B"
	ClientOrganizationID string // Идентификатор организации (арендатора)
	IsActive             bool   // Мягкое удаление
}

// Session представляет учебный год, к которому привязаны платежи и пени.
type Session struct {
	ID                   int       // Идентификатор записи
	Name                 string    // Название, например "2025-2026"
	StartDate            time.Time // Начало учебного года
	EndDate              time.Time // Конец учебного года
	ClientOrganizationID string    // Идентификатор организации (арендатора)
	IsActive             bool      // Мягкое удаление
}

// DummyClass используется для приёма данных из JSON-запроса.
type DummyClass struct {
	Name string `json:"name" validate:"required"` // Название класса
}

// DummySession используется для приёма данных из JSON-запроса.
// Даты приходят в виде строк в формате 02-01-2006.
type DummySession struct {
	Name      string `json:"name" validate:"required"`       // Название учебного года
	StartDate string `json:"start_date" validate:"required"` // Начало в формате 02-01-2006
	EndDate   string `json:"end_date" validate:"required"`   // Конец в формате 02-01-2006
}

// FeeContext связывает платеж с классом и учебным годом.
// Используется задачей начисления пени для поиска подходящей политики.
type FeeContext struct {
	ClassID     int    // Идентификатор класса
	ClassName   string // Название класса
	SessionID   int    // Идентификатор учебного года
	SessionName string // Название учебного года
}
