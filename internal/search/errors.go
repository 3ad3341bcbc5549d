package search

import "errors"

var ErrNotFound = errors.New("not found")

// Task failure codes recorded by classifyFailure. Validation problems
// fail the create request itself and never reach a task record.
const (
	ErrorCodeProviderRateLimited = "PROVIDER_RATE_LIMITED"
	ErrorCodeProviderAuth        = "PROVIDER_AUTH"
	ErrorCodeProviderBadRequest  = "PROVIDER_BAD_REQUEST"
	ErrorCodeProvider            = "PROVIDER_ERROR"
	ErrorCodeStorage             = "STORAGE_ERROR"
	ErrorCodeInternal            = "INTERNAL_ERROR"
)
