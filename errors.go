package arena

import "errors"

var (
	// ErrSizeOverflow is returned when a request's byte size does not fit in an int.
	ErrSizeOverflow = errors.New("arena: allocation size overflows int")
	// ErrPointerType is the panic value (wrapped) for element types that contain Go pointers.
	ErrPointerType = errors.New("arena: element type contains pointers")
)
