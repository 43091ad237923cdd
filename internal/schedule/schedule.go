package schedule

import "fmt"

// intervals is the review ladder in hours, indexed by interval progress.
var intervals = [...]int64{2, 4, 6, 16, 34}

// progressDelta is the change applied to interval progress, indexed by score.
var progressDelta = [...]int{Forgot: -3, Hesitant: -1, Instant: 1}

// Progress is the schedule state produced by a single review.
type Progress struct {
	NextReview       int64 // hour index at which the card is due again
	IntervalProgress int
}

// Ladder returns a copy of the review interval ladder in hours.
func Ladder() []int64 {
	out := make([]int64, len(intervals))
	copy(out, intervals[:])
	return out
}

// ComputeProgress returns the next review time and interval progress for a
// card reviewed at hour index now.
//
// An Instant recall advances along the ladder using the progress held
// before this review. Past the end of the ladder the interval grows by
// twice the last rung for every step beyond it. Any other score brings the
// card back after the shortest interval.
func ComputeProgress(score Score, intervalProgress int, now int64) (Progress, error) {
	if !score.IsValid() {
		return Progress{}, fmt.Errorf("%w: %d", ErrInvalidScore, int(score))
	}
	if intervalProgress < 0 {
		return Progress{}, fmt.Errorf("%w: %d", ErrInvalidState, intervalProgress)
	}

	knewImmediately := int(score) == len(progressDelta)-1

	nextReview := now + intervals[0]
	if knewImmediately {
		if intervalProgress < len(intervals) {
			nextReview = now + intervals[intervalProgress]
		} else {
			stepsPast := int64(intervalProgress + 1 - len(intervals))
			nextReview = now + intervals[len(intervals)-1]*stepsPast*2
		}
	}

	newProgress := max(0, intervalProgress+progressDelta[score])

	return Progress{
		NextReview:       nextReview,
		IntervalProgress: newProgress,
	}, nil
}
