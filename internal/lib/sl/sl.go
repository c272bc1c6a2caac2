// Package sl содержит помощников для структурированного логирования через slog.
package sl

import "log/slog"

// Err оборачивает ошибку в атрибут с ключом "error", чтобы все сервисы
// платформы логировали ошибки в одном поле:
//
//	log.Error("failed to send notice", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
