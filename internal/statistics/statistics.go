package statistics

import (
	"fmt"
	"math"
	"sort"
)

// RoundResult represents the outcome of a single settled round
type RoundResult struct {
	Net       int   // Settlement relative to the stake
	Stake     int   // Amount wagered
	Seed      int64 // RNG seed for this round (for replay)
	Abandoned bool  // Round was escaped before its result
}

// Statistics tracks settlement results across many rounds of one game
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Store all values for median/percentile calculation

	Wins      int
	Losses    int
	Pushes    int
	Abandoned int

	TotalStaked int
	TotalNet    int
	BiggestWin  int
	BiggestLoss int
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	net := float64(result.Net)
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	switch {
	case result.Net > 0:
		s.Wins++
	case result.Net < 0:
		s.Losses++
	default:
		s.Pushes++
	}
	if result.Abandoned {
		s.Abandoned++
	}

	s.TotalStaked += result.Stake
	s.TotalNet += result.Net
	s.BiggestWin = max(s.BiggestWin, result.Net)
	s.BiggestLoss = min(s.BiggestLoss, result.Net)
}

// Mean returns the average settlement per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate is the fraction of rounds that settled positive
func (s *Statistics) WinRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Rounds)
}

// ReturnToPlayer is the share of every staked unit that came back
func (s *Statistics) ReturnToPlayer() float64 {
	if s.TotalStaked == 0 {
		return 0
	}
	return float64(s.TotalStaked+s.TotalNet) / float64(s.TotalStaked)
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)", len(s.Values), s.Rounds)
	}
	if s.Wins+s.Losses+s.Pushes != s.Rounds {
		return fmt.Errorf("wins+losses+pushes (%d) does not match rounds count (%d)", s.Wins+s.Losses+s.Pushes, s.Rounds)
	}
	if math.Abs(s.SumNet-float64(s.TotalNet)) > 1e-6 {
		return fmt.Errorf("net mismatch: SumNet=%.2f, TotalNet=%d", s.SumNet, s.TotalNet)
	}
	return nil
}
