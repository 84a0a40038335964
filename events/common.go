package events

import (
	"time"
)

// Instead of implementing full value objects, alias types and helper methods are used here ...

type EventTypeString = string
type BookIDString = string
type CustomerIDString = string
type EmployeeIDString = string
type StepUint = uint64
type OccurredAtTS = time.Time

// ToOccurredAt normalizes an event timestamp to UTC with microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
