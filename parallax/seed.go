package parallax

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// Seed is the 128-bit state a sector's star stream starts from.
type Seed [16]byte

// SeedSource maps a sector to its seed.
type SeedSource interface {
	Seed(plane int, sx, sy int64) Seed
}

// HashSeeds derives seeds by hashing the sector coordinates. The same
// coordinates give the same seed in every process.
type HashSeeds struct {
	// Salt selects a different, equally stable sky.
	Salt uint64
}

// Seed hashes (salt, plane, sx, sy) and expands the 64-bit digest to 128
// bits.
func (h HashSeeds) Seed(plane int, sx, sy int64) Seed {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[0:], h.Salt)
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(plane)))
	binary.LittleEndian.PutUint64(buf[16:], uint64(sx))
	binary.LittleEndian.PutUint64(buf[24:], uint64(sy))

	state := xxhash.Sum64(buf[:])
	var s Seed
	binary.LittleEndian.PutUint64(s[0:], splitmix64(&state))
	binary.LittleEndian.PutUint64(s[8:], splitmix64(&state))
	return s
}

// splitmix64 advances state and returns the next output.
func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

type sectorKey struct {
	plane  int
	sx, sy int64
}

// SessionSeeds draws a random seed the first time a sector is seen and
// remembers it. The sky is stable while the process runs but differs
// between runs. Entries are only ever added.
type SessionSeeds struct {
	rng   *rand.Rand
	seeds map[sectorKey]Seed
}

// NewSessionSeeds creates an empty cache drawing from rng.
func NewSessionSeeds(rng *rand.Rand) *SessionSeeds {
	return &SessionSeeds{
		rng:   rng,
		seeds: make(map[sectorKey]Seed),
	}
}

// Seed returns the cached seed for the sector, creating it if needed.
func (s *SessionSeeds) Seed(plane int, sx, sy int64) Seed {
	k := sectorKey{plane, sx, sy}
	if seed, ok := s.seeds[k]; ok {
		return seed
	}
	var seed Seed
	binary.LittleEndian.PutUint64(seed[0:], s.rng.Uint64())
	binary.LittleEndian.PutUint64(seed[8:], s.rng.Uint64())
	s.seeds[k] = seed
	return seed
}

// Len returns the number of cached sectors.
func (s *SessionSeeds) Len() int {
	return len(s.seeds)
}
