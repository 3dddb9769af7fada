package cave

// Random is the general-purpose generator used for gameplay choices
// (ghost wandering, amoeba growth, pushing) and for random fills when the
// hardware generator is not requested. It is a xorshift32 generator whose
// state is derived from a 32-bit seed with a splitmix step, so seed 0 is valid.
type Random struct {
	state uint32
}

// NewRandom creates a generator seeded with seed.
func NewRandom(seed uint32) *Random {
	r := &Random{}
	r.Reseed(seed)
	return r
}

// Reseed restarts the sequence from seed.
func (r *Random) Reseed(seed uint32) {
	z := uint64(seed) + 0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	r.state = uint32(z) | 1
}

// Int returns the next 32-bit value.
func (r *Random) Int() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// IntRange returns a value in [lo, hi). It returns lo when the range is empty.
func (r *Random) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + int(uint64(r.Int())*uint64(hi-lo)>>32)
}

// Bool returns a random boolean.
func (r *Random) Bool() bool {
	return r.Int()&0x80000000 != 0
}

// Float returns a value in [0, 1).
func (r *Random) Float() float64 {
	return float64(r.Int()) / (1 << 32)
}

// Chance reports true with probability p/1000000.
func (r *Random) Chance(p int) bool {
	return r.IntRange(0, 1000000) < p
}

// C64Random replicates the two-register pseudo-random generator of the
// original 8-bit cave engine. Imported caves and predictable slime depend on
// its exact output, so the transition must not be changed.
type C64Random struct {
	seed1, seed2 int
}

// NewC64Random creates a hardware generator seeded with seed.
func NewC64Random(seed uint16) *C64Random {
	r := &C64Random{}
	r.Reseed(seed)
	return r
}

// Reseed sets seed1 to the high byte and seed2 to the low byte of seed.
func (r *C64Random) Reseed(seed uint16) {
	r.seed1 = int(seed>>8) & 0xFF
	r.seed2 = int(seed) & 0xFF
}

// Seeds returns the two registers.
func (r *C64Random) Seeds() (int, int) {
	return r.seed1, r.seed2
}

// Next advances the registers and returns seed1 (0..255).
func (r *C64Random) Next() int {
	t1 := (r.seed2 & 1) << 7
	t2 := (r.seed2 >> 1) & 0x7F

	v := r.seed2 + (r.seed2&1)<<7
	carry := v >> 8
	v &= 0xFF
	v += carry + 0x13
	carry = v >> 8
	r.seed2 = v & 0xFF

	v = r.seed1 + carry + t1
	carry = v >> 8
	v &= 0xFF
	v += carry + t2
	r.seed1 = v & 0xFF
	return r.seed1
}

// SlimePermeabilityC64 builds the bit mask used by predictable slime:
// a most-significant 1 bit is shifted in count times, starting from zero.
// Slime lets an element through when Next()&mask == 0.
func SlimePermeabilityC64(count int) int {
	perm := 0
	for i := 0; i < count; i++ {
		perm = (0x100 | perm) >> 1
	}
	return perm
}
