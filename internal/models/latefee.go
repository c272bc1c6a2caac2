package models

import "time"

// LateFeePolicy задает размер пени для платежей конкретного класса
// и учебного года. Политика читается задачей начисления, но не изменяется ею.
type LateFeePolicy struct {
	ID                   int     // Идентификатор записи
	ClassID              int     // Класс, к которому применяется политика
	SessionID            int     // Учебный год
	ClientOrganizationID string  // Идентификатор организации (арендатора)
	Amount               float64 // Размер пени
	IsActive             bool    // Мягкое удаление
}

// DummyLateFeePolicy используется для приёма данных из JSON-запроса.
type DummyLateFeePolicy struct {
	ClassID   int     `json:"class_id" validate:"required"`    // Класс
	SessionID int     `json:"session_id" validate:"required"`  // Учебный год
	Amount    float64 `json:"amount" validate:"required,gt=0"` // Размер пени (>0)
}

// StudentLateFee представляет начисленную пеню. На одно платежное
// обязательство создается не более одной записи: fee_id уникален.
type StudentLateFee struct {
	ID                   int       // Идентификатор записи
	FeeID                int       // Платежное обязательство, к которому применена пеня
	ClientOrganizationID string    // Идентификатор организации (арендатора)
	Amount               float64   // Размер пени из политики
	DaysOverdue          int       // Количество дней просрочки на момент начисления
	AppliedDate          time.Time // Дата начисления
}

// LateFeeSummary итог одного прогона задачи начисления пени.
type LateFeeSummary struct {
	ProcessedDate         time.Time // Дата, на которую выполнялся прогон
	TotalOverdueFees      int       // Всего найдено просроченных платежей
	SuccessfullyProcessed int       // Успешно обработано
	Errors                int       // Количество ошибок по отдельным записям
}

// LateFeeNotice сообщение для отправки уведомления о начисленной пене.
// Публикуется в очередь notification.latefee и потребляется сервисом рассылки.
type LateFeeNotice struct {
	GuardianEmail string    `json:"guardian_email"`
	StudentName   string    `json:"student_name"`
	ClassName     string    `json:"class_name"`
	SessionName   string    `json:"session_name"`
	Amount        float64   `json:"amount"`
	DaysOverdue   int       `json:"days_overdue"`
	AppliedDate   time.Time `json:"applied_date"`
}
