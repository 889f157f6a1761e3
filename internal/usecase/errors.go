package usecase

import (
	"errors"
	"fmt"
)

// Kind is the machine-checkable failure classification. Adapters map kinds
// to transport status codes; the core only ever returns them.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindDuplicateCode   Kind = "duplicate_code"
	KindNotFound        Kind = "not_found"
	KindAlreadyDeleted  Kind = "already_deleted"
	KindProductNotFound Kind = "product_not_found"
	KindCartNotFound    Kind = "cart_not_found"
	KindInactiveProduct Kind = "inactive_product"
	KindInvalidQuantity Kind = "invalid_quantity"
	KindLineNotFound    Kind = "line_not_found"
	KindPageOutOfRange  Kind = "page_out_of_range"
	KindStorage         Kind = "storage"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewError(kind Kind, message string) error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// IsKind reports whether err is a usecase error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}
