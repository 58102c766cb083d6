package domain

import "strings"

// ReturnStatus is the lifecycle state of a ReturnCase.
type ReturnStatus string

const (
	ReturnReceived  ReturnStatus = "RECEIVED"
	ReturnInspected ReturnStatus = "INSPECTED"
	ReturnRestocked ReturnStatus = "RESTOCKED"
	ReturnScrapped  ReturnStatus = "SCRAPPED"
)

var returnStatusCodes = map[string]ReturnStatus{
	"received":  ReturnReceived,
	"inspected": ReturnInspected,
	"restocked": ReturnRestocked,
	"scrapped":  ReturnScrapped,
}

var returnTransitions = map[ReturnStatus][]ReturnStatus{
	ReturnReceived:  {ReturnInspected},
	ReturnInspected: {ReturnRestocked, ReturnScrapped},
}

// ParseReturnStatus returns the status for a given label (case-insensitive).
func ParseReturnStatus(label string) (ReturnStatus, bool) {
	status, ok := returnStatusCodes[strings.ToLower(strings.TrimSpace(label))]

	return status, ok
}

// CanTransition reports whether a return may move from one status to the next.
func (s ReturnStatus) CanTransition(next ReturnStatus) bool {
	for _, allowed := range returnTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
