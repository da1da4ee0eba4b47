package referral

import (
	"fmt"
	"strings"
)

// Policy decides when a referrer counts as able to help with a query.
type Policy string

const (
	// PolicyFilter runs the relevance filter on the referrer's own candidates
	// and accepts the referrer when at least one is confirmed.
	PolicyFilter Policy = "filter"
	// PolicyThreshold accepts the referrer when its best similarity score
	// reaches the configured minimum. No reasoning call is made.
	PolicyThreshold Policy = "threshold"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyFilter:
		return PolicyFilter, nil
	case PolicyThreshold:
		return PolicyThreshold, nil
	default:
		return "", fmt.Errorf("unknown referral policy %q", s)
	}
}
