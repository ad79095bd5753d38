package ui

import "time"

// Terminal size thresholds.
const (
	// listMinWidth and listMaxWidth bound the containment list column.
	listMinWidth = 28
	listMaxWidth = 48

	// chromeHeight is the header, tab bar and footer rows.
	chromeHeight = 3
)

// DefaultUIInterval is the store refresh interval when none is configured.
const DefaultUIInterval = time.Second
