package arith

const (
	// NanosPerSecond converts block time (nanoseconds) to whole seconds.
	NanosPerSecond uint64 = 1_000_000_000
	// ScaleFactor is the fixed-point precision of the reward-per-token
	// accumulator. It must be divided back out at settlement.
	ScaleFactor uint64 = 1_000_000_000
)

// Scale returns ScaleFactor as a Uint128.
func Scale() Uint128 {
	return NewUint128(ScaleFactor)
}
