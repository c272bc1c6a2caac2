// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и принадлежность к организации.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

// User представляет зарегистрированного сотрудника школы.
type User struct {
	UUID                 string // Уникальный идентификатор пользователя
	Email                string // Электронная почта
	Username             string // Имя пользователя (уникальное)
	PasswordHash         string // Хэш пароля пользователя
	Role                 string // Роль пользователя, admin или user
	ClientOrganizationID string // Идентификатор организации (арендатора)
}
