package toc

// Test-only exports.
//
//nolint:gochecknoglobals // Test-only exports
var (
	RecognizeHeading     = recognizeHeading
	ClosingSequenceStart = closingSequenceStart
	BuildAnchorLink      = buildAnchorLink
	IncreaseIndex        = increaseIndex
	FormatLine           = formatLine
)
