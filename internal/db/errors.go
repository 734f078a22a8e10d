package db

import "errors"

// ErrDocNotFound signals a delete aimed at an engine key that no longer
// exists.
var ErrDocNotFound = errors.New("db: document not found")
