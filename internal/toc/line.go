package toc

import (
	"strconv"
	"strings"
)

// Ordered lists require 4-level indentation; unordered lists accept either
// 2 or 4, so 4 is used for both.
const indentWidth = 4

// formatLine renders one TOC entry without a trailing newline; the builder
// appends line separators.
func formatLine(h Heading, ordered, noLinks bool, index int) string {
	marker := "-"
	if ordered {
		marker = strconv.Itoa(index) + "."
	}

	body := h.Text
	if !noLinks {
		body = "[" + h.Text + "](#" + h.Anchor + ")"
	}

	return strings.Repeat(" ", indentWidth*(h.Level-1)) + marker + " " + body
}
