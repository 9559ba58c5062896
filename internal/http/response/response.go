// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков и перевода доменных ошибок
// в HTTP-статусы.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/home-inventory/internal/models"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status статус запроса ("OK" или "Error").
// Поле Error текст ошибки (опционально, при неуспехе).
// Поле Data данные ответа (опционально, при успехе).
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse структура ошибки для Swagger-документации.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"not found"`
}

const (
	// StatusOK значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at least %s", err.Field(), err.Param()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of [%s]", err.Field(), err.Param()))
		case "len":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be %s characters long", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}

// StatusCode переводит доменную ошибку в HTTP-статус.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidPlan):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrConflict), errors.Is(err, models.ErrTrialAlreadyUsed):
		return http.StatusConflict
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Message возвращает текст ошибки для клиента. Внутренние детали не раскрываются.
func Message(err error) string {
	switch {
	case errors.Is(err, models.ErrValidation):
		// текст после сентинела содержит причину
		msg := err.Error()
		if i := strings.Index(msg, models.ErrValidation.Error()); i >= 0 {
			return msg[i:]
		}
		return models.ErrValidation.Error()
	case errors.Is(err, models.ErrNotFound):
		return models.ErrNotFound.Error()
	case errors.Is(err, models.ErrInvalidPlan):
		return models.ErrInvalidPlan.Error()
	case errors.Is(err, models.ErrConflict):
		return models.ErrConflict.Error()
	case errors.Is(err, models.ErrTrialAlreadyUsed):
		return models.ErrTrialAlreadyUsed.Error()
	case errors.Is(err, models.ErrForbidden):
		return models.ErrForbidden.Error()
	default:
		return "internal error"
	}
}

// RenderError пишет статус и тело ошибки по доменной ошибке err.
func RenderError(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, StatusCode(err))
	render.JSON(w, r, Error(Message(err)))
}

// RenderStatus пишет ошибку с явным статусом.
func RenderStatus(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, Error(msg))
}
