package game

import "fmt"

// Regulation is the number of quarters in a game. Periods above it are
// overtime: period 5 is OT1, period 6 is OT2, and so on.
const Regulation = 4

// TimeoutPool identifies which timeout allotment a period draws from.
type TimeoutPool int

const (
	BucketFirstHalf TimeoutPool = iota
	BucketSecondHalf
	BucketOvertime
)

// TimeoutBucket returns the allotment pool for the given period.
func TimeoutBucket(period int) TimeoutPool {
	switch {
	case period <= 2:
		return BucketFirstHalf
	case period <= Regulation:
		return BucketSecondHalf
	default:
		return BucketOvertime
	}
}

// IsFirstHalf reports whether the period belongs to the first half.
func IsFirstHalf(period int) bool {
	return period == 1 || period == 2
}

// IsOvertime reports whether the period is an overtime period.
func IsOvertime(period int) bool {
	return period > Regulation
}

// PeriodLabel returns the display label for a period: Q1..Q4, then OT1,
// OT2, ...
func PeriodLabel(period int) string {
	if period <= Regulation {
		return fmt.Sprintf("Q%d", period)
	}
	return fmt.Sprintf("OT%d", period-Regulation)
}
