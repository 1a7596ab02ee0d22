package rng

import (
	"math/rand"
)

// Sequencer единый источник псевдослучайных чисел для генерации уровня.
// Все шаги генерации берут числа из одного потока, поэтому уровень
// полностью воспроизводится по одному сиду.
type Sequencer struct {
	r *rand.Rand
}

// New создаёт последовательность с указанным сидом
func New(seed int64) *Sequencer {
	return &Sequencer{
		r: rand.New(rand.NewSource(seed)),
	}
}

// Seed детерминированно перезапускает поток
func (s *Sequencer) Seed(seed int64) {
	s.r.Seed(seed)
}

// Range возвращает равномерное целое из полуинтервала [lo, hi).
// Для пустого интервала (hi <= lo) возвращает lo, не расходуя поток.
func (s *Sequencer) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Intn(hi-lo)
}

// UnitFloat возвращает равномерное число из [0, 1)
func (s *Sequencer) UnitFloat() float64 {
	return s.r.Float64()
}

// Shuffle перемешивает n элементов через swap (Фишер-Йетс)
func (s *Sequencer) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}

// ShuffleSlice перемешивает срез на месте
func ShuffleSlice[T any](s *Sequencer, xs []T) {
	s.Shuffle(len(xs), func(i, j int) {
		xs[i], xs[j] = xs[j], xs[i]
	})
}
