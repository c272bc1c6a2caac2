package models

import "time"

// Статусы платежного обязательства. Задача начисления пени переводит
// платежи в FeeStatusOverdue; оплату фиксирует внешняя система.
const (
	FeeStatusNotStarted = "not_started"
	FeeStatusPending    = "pending"
	FeeStatusOverdue    = "overdue"
	FeeStatusPaid       = "paid"
)

// StudentFee представляет платежное обязательство ученика:
// сумму к оплате с конкретным сроком в рамках класса и учебного года.
type StudentFee struct {
	ID                   int       // Идентификатор записи
	StudentUID           string    // Уникальный идентификатор ученика
	StudentName          string    // Имя ученика для уведомлений
	GuardianEmail        string    // Почта родителя или опекуна
	ClassID              int       // Класс, к которому относится платеж
	SessionID            int       // Учебный год
	ClientOrganizationID string    // Идентификатор организации (арендатора)
	Amount               float64   // Сумма к оплате
	DueDate              time.Time // Срок оплаты
	Status               string    // Один из FeeStatus*
	IsActive             bool      // Мягкое удаление
}

// DummyFee используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в StudentFee.
// Даты приходят в виде строк, чтобы их можно было валидировать и парсить вручную.
type DummyFee struct {
	StudentUID    string  `json:"student_uid" validate:"required,uuid"`    // Идентификатор ученика
	StudentName   string  `json:"student_name" validate:"required"`        // Имя ученика
	GuardianEmail string  `json:"guardian_email" validate:"required"`      // Почта опекуна
	ClassID       int     `json:"class_id" validate:"required"`            // Класс
	SessionID     int     `json:"session_id" validate:"required"`          // Учебный год
	Amount        float64 `json:"amount" validate:"required,gt=0"`         // Сумма (>0)
	DueDate       string  `json:"due_date" validate:"required"`            // Срок в формате 02-01-2006
}
