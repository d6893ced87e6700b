package toc

import "errors"

// Scan errors are fatal to the build they occur in: the caller never
// receives a partial table of contents.
var (
	// ErrEmptyLinkLabel reports a github-rules heading whose text is empty
	// or whitespace-only while link generation is enabled.
	ErrEmptyLinkLabel = errors.New("empty link label")

	// ErrLinkLabelOverflow reports a github-rules heading text longer than
	// the maximum link label length.
	ErrLinkLabelOverflow = errors.New("link label exceeds maximum length")

	// ErrOrderedListMarkerOverflow reports an ordered-list counter that
	// would exceed the github marker ceiling.
	ErrOrderedListMarkerOverflow = errors.New("ordered list marker exceeds maximum value")
)
