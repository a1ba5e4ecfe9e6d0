package cascade

// Source is the deterministic random source the core draws from. The core
// never calls system randomness; every draw flows through an injected Source
// so that identical seeds replay identical games.
type Source interface {
	// Next returns a uniform value in [0, max). max must be > 0.
	Next(max int) int
	// NextRange returns a uniform value in [min, max).
	NextRange(min, max int) int
}

// Stream is a splitmix64-based Source. It is tiny, fast, and trivially
// copyable, which keeps Clone cheap.
type Stream struct {
	state uint64
}

// NewStream creates a stream seeded with the given value.
func NewStream(seed int64) *Stream {
	return &Stream{state: uint64(seed)}
}

// next64 advances the splitmix64 state and returns the next raw value.
func (s *Stream) next64() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Next returns a uniform value in [0, max).
func (s *Stream) Next(max int) int {
	if max <= 0 {
		return 0
	}
	return int(s.next64() % uint64(max))
}

// NextRange returns a uniform value in [min, max).
func (s *Stream) NextRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.Next(max-min)
}

// Clone returns an independent copy at the same state.
func (s *Stream) Clone() *Stream {
	c := *s
	return &c
}

// Domains groups the engine's isolated random streams. Each subsystem draws
// from its own stream so that changing draw order in one subsystem cannot
// perturb another's sequence.
type Domains struct {
	Physics *Stream // diagonal-slide tie breaks
	Refill  *Stream // spawn type draws
	Effects *Stream // homing strikes and other bomb randomness
}

// NewDomains derives three independent streams from one engine seed.
func NewDomains(seed int64) *Domains {
	root := NewStream(seed)
	return &Domains{
		Physics: NewStream(int64(root.next64())),
		Refill:  NewStream(int64(root.next64())),
		Effects: NewStream(int64(root.next64())),
	}
}

// Clone deep-copies all three streams at their current states.
func (d *Domains) Clone() *Domains {
	return &Domains{
		Physics: d.Physics.Clone(),
		Refill:  d.Refill.Clone(),
		Effects: d.Effects.Clone(),
	}
}
