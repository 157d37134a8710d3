package usecase

import "errors"

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeLeadNotFound = "LEAD_NOT_FOUND"
	CodePersistence  = "PERSISTENCE_ERROR"
)

// DomainError is a failure the caller can act on. Its message is safe to
// show to the user.
type DomainError struct {
	Code       string
	Message    string
	Violations []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// AsDomainError unwraps err into a *DomainError when it carries one.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func newValidationFailed(violations []ValidationError) *DomainError {
	return &DomainError{
		Code:       CodeValidation,
		Message:    JoinValidationMessages(violations),
		Violations: violations,
	}
}

// TechnicalError is an infrastructure failure. Its message is for logs
// only; callers flatten it to a generic response.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}
