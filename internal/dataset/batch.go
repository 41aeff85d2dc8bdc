package dataset

import "math/rand"

// Batches groups windows into mini-batches of at most batchSize.
//
// When rng is non-nil the window order is shuffled first (the windows slice
// itself is not modified). The final batch may be smaller than batchSize.
func Batches(windows []Window, batchSize int, rng *rand.Rand) [][]Window {
	if batchSize <= 0 || len(windows) == 0 {
		return nil
	}

	order := make([]Window, len(windows))
	copy(order, windows)
	if rng != nil {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	batches := make([][]Window, 0, (len(order)+batchSize-1)/batchSize)
	for start := 0; start < len(order); start += batchSize {
		end := start + batchSize
		if end > len(order) {
			end = len(order)
		}
		batches = append(batches, order[start:end])
	}
	return batches
}
