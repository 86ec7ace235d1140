package app

import "errors"

// ErrNotFound is returned when an order id is unknown to the store.
var ErrNotFound = errors.New("not found")
