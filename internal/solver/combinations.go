package solver

// selectionVectors enumerates every non-empty subset of n bundle indexes as
// boolean selection vectors: single-bundle selections first, then pairs, and
// so on up to the full menu, 2^n − 1 vectors in total. Within one subset size
// the chosen indexes advance in lexicographic order. The caller keeps n small;
// the enumeration is deliberately exponential.
func selectionVectors(n int) [][]bool {
	if n <= 0 {
		return nil
	}

	capacity := 0
	if n < 31 {
		capacity = 1<<uint(n) - 1
	}
	vectors := make([][]bool, 0, capacity)

	indexes := make([]int, n)
	for k := 1; k <= n; k++ {
		chosen := indexes[:k]
		for i := range chosen {
			chosen[i] = i
		}
		for {
			vector := make([]bool, n)
			for _, idx := range chosen {
				vector[idx] = true
			}
			vectors = append(vectors, vector)

			// Advance to the next k-combination, rightmost index first.
			i := k - 1
			for i >= 0 && chosen[i] == n-k+i {
				i--
			}
			if i < 0 {
				break
			}
			chosen[i]++
			for j := i + 1; j < k; j++ {
				chosen[j] = chosen[j-1] + 1
			}
		}
	}

	return vectors
}
