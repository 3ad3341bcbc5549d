package usage

import "errors"

// ErrLimitReached is returned when charging a search would push Used
// past the plan's limit for the current period.
var ErrLimitReached = errors.New("search limit reached")
