package libdiff

import "errors"

// ErrTimeout is returned by Diff when its context expires. The returned
// error also wraps the context's error.
var ErrTimeout = errors.New("diff timed out")
