package dataset

// LCG parameters of the reference generator.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// Sequence is a seeded linear congruential generator yielding values in
// [0, 1). Two sequences built from the same seed produce identical output.
// A Sequence is stateful and not safe for concurrent use.
type Sequence struct {
	state int64
}

// NewSequence returns a generator seeded with seed.
func NewSequence(seed int64) *Sequence {
	return &Sequence{state: seed}
}

// Next advances the state and returns state/modulus.
func (s *Sequence) Next() float64 {
	s.state = (s.state*lcgMultiplier + lcgIncrement) % lcgModulus
	if s.state < 0 {
		s.state += lcgModulus
	}
	return float64(s.state) / lcgModulus
}
