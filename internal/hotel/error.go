package hotel

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNextID          = errors.New("get next id from generator")
	ErrLogic           = errors.New("logic error")
	ErrRecordNotFound  = errors.New("record not found")
)

// ReservationCode is the closed set of reservation failures. Successful
// reservations return the positive room number instead.
type ReservationCode int

const (
	CodeNoRooms        ReservationCode = -1
	CodeUnknownClient  ReservationCode = -2
	CodeInvalidDates   ReservationCode = -3
	CodeNoAvailability ReservationCode = -4
)

func (c ReservationCode) Error() string {
	switch c {
	case CodeNoRooms:
		return "no rooms"
	case CodeUnknownClient:
		return "unknown client"
	case CodeInvalidDates:
		return "invalid dates"
	case CodeNoAvailability:
		return "no availability for type"
	default:
		return fmt.Sprintf("reservation code %d", int(c))
	}
}

type InputError struct {
	fields map[string][]string
}

func newInputError() *InputError {
	return &InputError{
		fields: make(map[string][]string),
	}
}

func IsInputError(err error) *InputError {
	if err == nil {
		return nil
	}

	var inputError *InputError

	if errors.As(err, &inputError) {
		return inputError
	}

	return nil
}

func (ie *InputError) fieldsCount() int {
	return len(ie.fields)
}

func (ie *InputError) addError(field, msg string) {
	ie.fields[field] = append(ie.fields[field], msg)
}

func (ie *InputError) Error() string {
	return fmt.Sprintf("%+v", ie.fields)
}

// Is makes every InputError match ErrInvalidArgument.
func (ie *InputError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func (ie *InputError) Fields() map[string][]string {
	return ie.fields
}
