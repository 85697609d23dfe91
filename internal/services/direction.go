package services

import "elevator-sim-service/internal/domain"

// DetermineDirection picks the travel bias from the targets around the cabin.
//
// Targets strictly above and below the current floor are counted. One-sided demand
// wins outright. With demand on both sides a moving cabin keeps its direction, and an
// idle cabin goes up when at least as many targets lie above as below. This is a
// count-based tie-break, not a distance-based one; continuing the current direction
// keeps the cabin from oscillating.
func DetermineDirection(
	currentFloor int,
	status domain.CabinStatus,
	pickupFloors []int,
	destinationFloors []int,
) domain.Direction {
	above, below := 0, 0
	for _, floors := range [][]int{pickupFloors, destinationFloors} {
		for _, f := range floors {
			switch {
			case f > currentFloor:
				above++
			case f < currentFloor:
				below++
			}
		}
	}

	switch {
	case above == 0 && below == 0:
		return domain.DirectionNone
	case below == 0:
		return domain.DirectionUp
	case above == 0:
		return domain.DirectionDown
	}

	switch status {
	case domain.MovingUp:
		return domain.DirectionUp
	case domain.MovingDown:
		return domain.DirectionDown
	}

	if above >= below {
		return domain.DirectionUp
	}
	return domain.DirectionDown
}
