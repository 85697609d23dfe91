package services

import "time"

// DoorFrames returns the door-open fractions shown after each of steps equal
// sub-intervals when moving from one fraction to another. The final frame is exactly
// to, so repeated float additions can never leave the door at 0.9999.
func DoorFrames(from, to float64, steps int) []float64 {
	if steps < 1 {
		steps = 1
	}

	increment := (to - from) / float64(steps)
	frames := make([]float64, steps)
	for i := 1; i <= steps; i++ {
		frames[i-1] = clampFraction(from + increment*float64(i))
	}
	frames[steps-1] = to

	return frames
}

// DoorStepDuration splits a door operation into equal pauses.
func DoorStepDuration(total time.Duration, steps int) time.Duration {
	if steps < 1 {
		steps = 1
	}
	return total / time.Duration(steps)
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
