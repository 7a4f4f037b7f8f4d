package client

import (
	"errors"
	"fmt"
)

// ErrorKind классифицирует сбой удаленного хранилища
type ErrorKind int

const (
	// KindUnreachable - сеть, таймаут, отказ в соединении
	KindUnreachable ErrorKind = iota + 1
	// KindRejected - статус 4xx/5xx или признак ошибки в теле ответа
	KindRejected
	// KindMalformed - тело ответа не удалось разобрать
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindRejected:
		return "rejected"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// RemoteError - ошибка обращения к серверу
type RemoteError struct {
	Kind   ErrorKind
	Op     string
	Status int
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Op, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// KindOf возвращает вид удаленной ошибки, 0 если err не RemoteError
func KindOf(err error) ErrorKind {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Kind
	}
	return 0
}
