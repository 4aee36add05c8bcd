package tips

// NextIndex moves the carousel cursor forward. The cursor grows without
// an upper bound, TipAt wraps it when reading.
func NextIndex(current int) int {
	return current + 1
}

// PrevIndex moves the carousel cursor back, clamped at zero.
func PrevIndex(current int) int {
	return max(0, current-1)
}
