package booking

import (
	"errors"
	"fmt"
)

// Error codes for booking validation and confirmation failures. All of these
// are recoverable: the conversational layer turns them into a request for the
// missing or corrected detail.
const (
	CodeMissingField      = "missingField"
	CodeInvalidTime       = "invalidTime"
	CodeInvalidDuration   = "invalidDuration"
	CodeOutOfHours        = "outOfHours"
	CodeIncompleteBooking = "incompleteBooking"
	CodeMissingPrice      = "missingPrice"
	CodeUnknownActivity   = "unknownActivity"
)

// BookingError carries a machine-readable code plus a message suitable for
// relaying to the end user.
type BookingError struct {
	Code    string
	Field   string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewMissingFieldError(field string) error {
	return &BookingError{
		Code:    CodeMissingField,
		Field:   field,
		Message: fmt.Sprintf("missing %s for the booking", field),
	}
}

func NewInvalidTimeError() error {
	return &BookingError{
		Code:    CodeInvalidTime,
		Field:   "date_time_iso",
		Message: "could not understand the booking time; please give a date and time in Dubai time",
	}
}

func NewInvalidDurationError(msg string) error {
	return &BookingError{
		Code:    CodeInvalidDuration,
		Field:   "duration_min",
		Message: msg,
	}
}

func NewOutOfHoursError() error {
	return &BookingError{
		Code:    CodeOutOfHours,
		Field:   "date_time_iso",
		Message: "tours run 9am to 7pm; that start time plus the selected duration goes beyond closing, please choose an earlier time",
	}
}

func NewIncompleteBookingError() error {
	return &BookingError{
		Code:    CodeIncompleteBooking,
		Message: "the booking is not complete yet",
	}
}

func NewMissingPriceError() error {
	return &BookingError{
		Code:    CodeMissingPrice,
		Message: "no price has been set for this booking yet",
	}
}

// ErrorCode extracts the booking error code, or "" for foreign errors.
func ErrorCode(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
