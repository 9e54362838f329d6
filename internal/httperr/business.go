package httperr

import "errors"

type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindForbidden  Kind = "forbidden"
)

// Reason codes returned in the error_code field.
const (
	CodeInvalidFormat    = "InvalidFormat"
	CodeMissingFields    = "MissingFields"
	CodeInvalidTimeRange = "InvalidTimeRange"
	CodePastDate         = "PastDate"
	CodePastTime         = "PastTime"
	CodeInvalidPage      = "InvalidPage"

	CodeProviderNotFound        = "ProviderNotFound"
	CodeServiceNotFound         = "ServiceNotFound"
	CodeAppointmentNotFound     = "AppointmentNotFound"
	CodeAvailabilityNotFound    = "AvailabilityNotFound"
	CodeProviderProfileNotFound = "ProviderProfileNotFound"

	CodeNotAvailable          = "NotAvailable"
	CodeAlreadyBooked         = "AlreadyBooked"
	CodeInsufficientTime      = "InsufficientTime"
	CodeOverlappingWindow     = "OverlappingWindow"
	CodeAppointmentInProgress = "AppointmentInProgress"

	CodeClientOnly       = "ClientOnly"
	CodeProfessionalOnly = "ProfessionalOnly"
	CodeNotOwner         = "NotOwner"

	CodeUnauthorized = "Unauthorized"
	CodeInternal     = "InternalError"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func Validation(code, message string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func NotFoundErr(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func Conflict(code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func Forbidden(code, message string) error {
	return BusinessError{Kind: KindForbidden, Code: code, Message: message}
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return BusinessError{}, false
}

func IsBusiness(err error, code string) bool {
	be, ok := AsBusiness(err)
	return ok && be.Code == code
}

// CodeOf returns the reason code of err, "ok" for nil and InternalError for
// anything that is not a BusinessError.
func CodeOf(err error) string {
	if err == nil {
		return "ok"
	}
	if be, ok := AsBusiness(err); ok {
		return be.Code
	}
	return CodeInternal
}
