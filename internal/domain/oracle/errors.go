package oracle

import "errors"

// ErrNoSign is returned when a valid calendar date falls outside every sign
// range. The sign table covers the whole year, so this indicates a broken
// table rather than bad input.
var ErrNoSign = errors.New("date matched no sign range")
