package services

import (
	"elevator-sim-service/internal/domain"
	"slices"
)

// CollectStopsInDirection returns the floors on the chosen side of the cabin,
// nearest first and without duplicates. A floor that is both a destination and a
// pickup target appears once and is served by a single stop.
func CollectStopsInDirection(
	currentFloor int,
	dir domain.Direction,
	pickupFloors []int,
	destinationFloors []int,
) []int {
	if dir == domain.DirectionNone {
		return nil
	}

	seen := make(map[int]struct{})
	stops := make([]int, 0, len(pickupFloors)+len(destinationFloors))

	for _, floors := range [][]int{destinationFloors, pickupFloors} {
		for _, f := range floors {
			if dir == domain.DirectionUp && f <= currentFloor {
				continue
			}
			if dir == domain.DirectionDown && f >= currentFloor {
				continue
			}
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			stops = append(stops, f)
		}
	}

	slices.Sort(stops)
	if dir == domain.DirectionDown {
		slices.Reverse(stops)
	}
	return stops
}
