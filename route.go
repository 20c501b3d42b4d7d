package mandel

// route picks the engine for pixel (row, col). It is a pure function of
// its arguments, so every driver computes it without shared state and a
// given configuration always produces the same assignment.
func route(row, col, engines int) int {
	if engines == 1 {
		return 0
	}
	// splitmix64 finalizer over the packed pair.
	h := uint64(uint32(row))<<32 | uint64(uint32(col))
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return int(h % uint64(engines))
}
