package wikitext

import (
	"errors"
	"fmt"
)

var (
	ErrNestingDepth     = errors.New("nesting too deep")
	ErrMalformedGallery = errors.New("malformed gallery")
)

type ParseErr struct {
	Err    error
	Offset int
}

func (e *ParseErr) Unwrap() error {
	return e.Err
}

func (e *ParseErr) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Err.Error(), e.Offset)
}
