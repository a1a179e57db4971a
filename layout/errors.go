package layout

import "errors"

var (
	// ErrInvalidArgument is wrapped by panics raised when a builder method
	// receives an argument it cannot accept, such as negative padding.
	ErrInvalidArgument = errors.New("layout: invalid argument")
	// ErrIllegalState is wrapped by errors raised when an operation is used
	// before the setup it depends on.
	ErrIllegalState = errors.New("layout: illegal state")
)
