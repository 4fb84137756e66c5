package randutil

// Scripted replays a fixed sequence of draws. IntN consumes the next value
// and reduces it modulo n; Float64 consumes the next value of Floats.
// Once a script runs out it falls back to zero, which keeps tests that only
// care about the first few draws short.
type Scripted struct {
	Ints   []int
	Floats []float64
}

// IntN implements Source.
func (s *Scripted) IntN(n int) int {
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if v < 0 {
		v = -v
	}
	return v % n
}

// Float64 implements Source.
func (s *Scripted) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}
