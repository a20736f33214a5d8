package feed

import "errors"

var (
	ErrFetchFailed   = errors.New("failed to fetch dataset")
	ErrEmptyDocument = errors.New("empty dataset document")
)
