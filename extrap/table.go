package extrap

// The Dea epsilon table is condensed: only the two lower diagonals of the
// triangular epsilon table are stored, numbered from the right-hand corner.
// Index n holds the newest sequence value. A refinement round writes the new
// diagonal into slots n, n-2, n-4, ... and the helpers below then drop the
// entries that are no longer needed.

// shiftTable condenses tab after a refinement round that started with the
// newest value at index oldN and computed newelm diagonal elements. n is the
// index of the newest element that is kept. Elements on the parity of oldN
// move down by two, then, if the round truncated the table, the top n+1
// entries are moved to the front.
func shiftTable(tab []float64, n, newelm, oldN int) {
	start := oldN % 2
	for i := 0; i <= newelm; i++ {
		k := start + 2*i
		tab[k] = tab[k+2]
	}

	if oldN != n {
		off := oldN - n
		copy(tab[:n+1], tab[off:off+n+1])
	}
}

// updateHistory records result as the newest of the last three accepted
// results. nres is the number of results recorded before this one.
func updateHistory(history *[3]float64, result float64, nres int) {
	if nres > 2 {
		history[0], history[1], history[2] = history[1], history[2], result
		return
	}
	history[nres] = result
}

// historyDeviation returns the summed distance of result from the recorded
// results, at most the last three.
func historyDeviation(history *[3]float64, result float64, nres int) float64 {
	var sum float64
	for _, h := range history[:min(nres, len(history))] {
		sum += abs(result - h)
	}
	return sum
}
