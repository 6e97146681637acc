// internal/app/system/jobquery/payrate.go
package jobquery

import (
	"regexp"
	"strconv"
)

// payRatePattern captures the first "$"-prefixed run of digits in a
// descriptor. "$30-38/hour" parses to 30; "Negotiable" does not parse.
//
// This is a deliberate format coupling carried over from the product's
// free-text pay descriptors: filters and sort order depend on exactly this
// rule, so it must not be "improved" to parse ranges or currencies.
var payRatePattern = regexp.MustCompile(`\$(\d+)`)

// ParsePayFloor extracts the numeric lower bound from a pay-rate
// descriptor. ok is false when the descriptor has no parseable figure;
// such postings are excluded whenever a floor filter is active and sort
// with floor 0 under pay-rate ordering.
func ParsePayFloor(desc string) (floor int, ok bool) {
	m := payRatePattern.FindStringSubmatch(desc)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
