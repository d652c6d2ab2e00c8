package failure

import (
	"errors"
	"net/http"

	"github.com/lib/pq"

	"roomstack/shared/constant"
)

// Failure is an error the HTTP layer can answer with its Code. Message is shown to the client.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

// BadRequest turns err into a 400 carrying its message. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(message string) error {
	return newFailure(http.StatusBadRequest, message)
}

func NotFound(message string) error {
	return newFailure(http.StatusNotFound, message)
}

func Conflict(message string) error {
	return newFailure(http.StatusConflict, message)
}

// GetCode returns the code of the first Failure in the chain of err, or 500.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsFailure reports whether err carries a Failure anywhere in its chain.
func IsFailure(err error) bool {
	var fail *Failure

	return errors.As(err, &fail)
}

// IsCode reports whether err carries the given HTTP code.
func IsCode(err error, code int) bool {
	return err != nil && GetCode(err) == code
}

// FromStorage maps unique and foreign key violations to a 409 with conflictMsg. Any other
// error is returned unchanged.
func FromStorage(err error, conflictMsg string) error {
	switch StorageCode(err) {
	case constant.PqErrorCodeUniqueViolation, constant.PqErrorCodeFkViolation:
		return Conflict(conflictMsg)
	default:
		return err
	}
}

// StorageCode returns the SQLSTATE of the postgres error in the chain of err, or "".
func StorageCode(err error) string {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return ""
	}

	return string(pqErr.Code)
}
