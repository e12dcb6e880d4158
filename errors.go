package zedit

import "errors"

// Errors returned by document operations. Call sites wrap them with the
// offending values, so test with errors.Is.
var (
	// ErrArgument indicates a malformed request, e.g. start > end or a negative position.
	ErrArgument = errors.New("invalid argument")

	// ErrRange indicates an offset or line outside the document.
	ErrRange = errors.New("out of range")

	// ErrUnsupported indicates an operation the document deliberately refuses,
	// such as updating a highlight range in place or replacing the paragraph list.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrInconsistent indicates the document reached a state its edit algorithms
	// do not model. It is always a bug.
	ErrInconsistent = errors.New("internal consistency violation")
)
