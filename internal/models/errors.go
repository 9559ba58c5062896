package models

import "errors"

// Ошибки домена, общие для сервисов, хранилищ и транспорта.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation error")
	ErrConflict         = errors.New("conflict")
	ErrTrialAlreadyUsed = errors.New("trial already used")
	ErrConfiguration    = errors.New("configuration error")
	ErrInvalidPlan      = errors.New("plan is not active")
	ErrStorage          = errors.New("storage error")
	ErrForbidden        = errors.New("forbidden")
)

// IsDomainError сообщает, содержит ли err одну из ошибок домена (кроме ErrStorage).
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrValidation, ErrConflict, ErrTrialAlreadyUsed,
		ErrConfiguration, ErrInvalidPlan, ErrForbidden,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
