package section

import "errors"

// ErrNoHeading means the document contains none of h1-h4 and cannot be
// sectioned. The input is structurally unusable; there is nothing to retry.
var ErrNoHeading = errors.New("no heading tags found in document")

// MalformedTreeError reports a violated parsing invariant, e.g. a link style
// active without a URL or text encountered before any section exists. It is
// a programming-contract failure, not a recoverable input condition.
type MalformedTreeError struct {
	Reason string
}

func (e *MalformedTreeError) Error() string {
	return "malformed section tree: " + e.Reason
}
