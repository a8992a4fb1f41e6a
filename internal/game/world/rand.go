package world

// Rand is the randomness source for combat variance, death drop rolls and
// spawn search. *math/rand.Rand satisfies it; tests swap in a fixed source.
type Rand interface {
	Float64() float64
}
