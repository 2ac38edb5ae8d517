package domain

import "errors"

// Доменные ошибки
var (
	// ErrInvalidPhone возвращается когда номер телефона не соответствует формату
	ErrInvalidPhone = errors.New("the phone number is not in a good format")

	// ErrInvalidEmail возвращается когда email не соответствует формату
	ErrInvalidEmail = errors.New("the email is not in a good format")

	// ErrInvalidDate возвращается когда дата окончания программы не задана или не распознана
	ErrInvalidDate = errors.New("the end date of the study program is invalid")

	// ErrInvalidTeam возвращается при попытке создать команду без названия
	ErrInvalidTeam = errors.New("the team name is empty")

	// ErrMissingQuery возвращается когда в запросе нет поля q
	ErrMissingQuery = errors.New("q is required")

	// ErrInvalidParagraphKey возвращается когда ключ абзаца не является целым числом
	ErrInvalidParagraphKey = errors.New("paragraph key is not an integer")
)

// ErrorCode представляет коды ошибок API
type ErrorCode string

const (
	CodeBadRequest ErrorCode = "BAD_REQUEST"    // Некорректный запрос
	CodeInternal   ErrorCode = "INTERNAL_ERROR" // Внутренняя ошибка
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrMissingQuery), errors.Is(err, ErrInvalidParagraphKey):
		return CodeBadRequest
	default:
		return CodeInternal
	}
}
