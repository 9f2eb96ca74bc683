package capability

import "errors"

var (
	// ErrInvalidItem is returned when a nil or malformed item is granted, revoked or equipped.
	ErrInvalidItem = errors.New("invalid item")

	// ErrItemNotHeld is returned by Equip for an item that was never granted.
	ErrItemNotHeld = errors.New("item not held")

	// ErrDuplicateSubscription is logged when an observer subscribes twice.
	// It is never returned to the caller.
	ErrDuplicateSubscription = errors.New("observer already subscribed")

	// ErrUnknownMode is returned by ParseMode.
	ErrUnknownMode = errors.New("unknown inventory mode")
)
