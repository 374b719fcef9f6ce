package hierarchy

import "errors"

var (
	// ErrNoRoster means no employee-list file has been uploaded yet.
	ErrNoRoster = errors.New("no employee list uploaded")
)
