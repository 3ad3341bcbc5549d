package usage

import "time"

// usagePeriod is the quota window length. Used and JobsScored reset
// when it elapses.
const usagePeriod = 30 * 24 * time.Hour

// Plan defaults applied to any identity seen for the first time. Guests
// and signed-in users currently get the same allowance.
const (
	DefaultPlan        = "Starter"
	DefaultSearchLimit = 10
)

func defaultUsage() Usage {
	return Usage{
		Plan:     DefaultPlan,
		Limit:    DefaultSearchLimit,
		Used:     0,
		ResetsAt: time.Now().UTC().Add(usagePeriod),
	}
}
