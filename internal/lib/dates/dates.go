// Package dates содержит календарные вычисления для задачи начисления пени.
package dates

import (
	"math"
	"time"
)

// StartOfDay обнуляет время, оставляя только дату в UTC.
// Сравнение сроков оплаты ведется по дням, а не по моментам времени.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysOverdue считает количество полных дней просрочки между сроком оплаты
// и текущей датой, округляя вверх. Если срок еще не наступил, возвращает 0.
func DaysOverdue(dueDate, today time.Time) int {
	due := StartOfDay(dueDate)
	now := StartOfDay(today)

	if !due.Before(now) {
		return 0
	}

	diff := now.Sub(due).Hours() / 24
	return int(math.Ceil(diff))
}
