package stats

import (
	"fmt"
	"math"
)

// Moments is an online accumulator for descriptive moments of a float64
// stream: count, min, max, sum, mean and the central moments up to order
// four. Observe updates in O(1); Combine merges two accumulators with the
// pairwise update of Chan et al., so partitions of a stream can be
// accumulated independently and merged in any grouping or order.
type Moments struct {
	count    int64
	min, max float64
	sum      float64
	mean     float64
	m2       float64
	m3       float64
	m4       float64
}

func NewMoments() *Moments {
	return &Moments{min: math.Inf(1), max: math.Inf(-1)}
}

// Observe folds one value into the accumulator.
func (m *Moments) Observe(x float64) {
	m.count++
	n := float64(m.count)

	d := x - m.mean
	dn := d / n
	dn2 := dn * dn
	term := d * dn * (n - 1)

	m.mean += dn
	m.m4 += term*dn2*(n*n-3*n+3) + 6*dn2*m.m2 - 4*dn*m.m3
	m.m3 += term*dn*(n-2) - 3*dn*m.m2
	m.m2 += term

	m.sum += x
	if x < m.min {
		m.min = x
	}
	if x > m.max {
		m.max = x
	}
}

// Combine merges other into m and returns m.
func (m *Moments) Combine(other *Moments) *Moments {
	if other == nil {
		panic("stats: combine target is required")
	}
	if other.count == 0 {
		return m
	}
	if m.count == 0 {
		*m = *other
		return m
	}

	na := float64(m.count)
	nb := float64(other.count)
	n := na + nb
	d := other.mean - m.mean
	d2 := d * d

	m4 := m.m4 + other.m4 +
		d2*d2*na*nb*(na*na-na*nb+nb*nb)/(n*n*n) +
		6*d2*(na*na*other.m2+nb*nb*m.m2)/(n*n) +
		4*d*(na*other.m3-nb*m.m3)/n
	m3 := m.m3 + other.m3 +
		d2*d*na*nb*(na-nb)/(n*n) +
		3*d*(na*other.m2-nb*m.m2)/n
	m2 := m.m2 + other.m2 + d2*na*nb/n

	m.mean += d * nb / n
	m.m2, m.m3, m.m4 = m2, m3, m4
	m.count += other.count
	m.sum += other.sum
	m.min = math.Min(m.min, other.min)
	m.max = math.Max(m.max, other.max)
	return m
}

func (m *Moments) Count() int64 { return m.count }
func (m *Moments) Sum() float64 { return m.sum }

// Min is +Inf and Max is -Inf while the accumulator is empty.
func (m *Moments) Min() float64 { return m.min }
func (m *Moments) Max() float64 { return m.max }

// Mean is NaN while the accumulator is empty.
func (m *Moments) Mean() float64 {
	if m.count == 0 {
		return math.NaN()
	}
	return m.mean
}

// Variance is the sample variance: NaN for fewer than two observations.
func (m *Moments) Variance() float64 {
	if m.count < 2 {
		return math.NaN()
	}
	return m.m2 / float64(m.count-1)
}

func (m *Moments) StdDev() float64 {
	return math.Sqrt(m.Variance())
}

// Skewness is the population skewness, NaN for fewer than three
// observations or a degenerate (zero-variance) stream.
func (m *Moments) Skewness() float64 {
	if m.count < 3 || m.m2 == 0 {
		return math.NaN()
	}
	n := float64(m.count)
	return math.Sqrt(n) * m.m3 / math.Pow(m.m2, 1.5)
}

// Kurtosis is the population excess kurtosis, NaN for fewer than four
// observations or a degenerate stream.
func (m *Moments) Kurtosis() float64 {
	if m.count < 4 || m.m2 == 0 {
		return math.NaN()
	}
	n := float64(m.count)
	return n*m.m4/(m.m2*m.m2) - 3
}

// SameState reports whether two accumulators hold the same moments,
// ignoring the count history that produced them.
func (m *Moments) SameState(other *Moments) bool {
	if m == other {
		return true
	}
	return sameFloat(m.min, other.min) &&
		sameFloat(m.max, other.max) &&
		sameFloat(m.sum, other.sum) &&
		sameFloat(m.mean, other.mean) &&
		sameFloat(m.m2, other.m2) &&
		sameFloat(m.m3, other.m3) &&
		sameFloat(m.m4, other.m4)
}

func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

func (m *Moments) String() string {
	return fmt.Sprintf("Moments[count=%d, min=%g, max=%g, mean=%g, var=%g]",
		m.count, m.min, m.max, m.Mean(), m.Variance())
}
