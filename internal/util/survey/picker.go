package survey

import (
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"
)

const (
	LocationStrategyFirst  = "first"
	LocationStrategyHash   = "hash"
	LocationStrategyRandom = "random"
)

var ErrUnknownLocationStrategy = errors.New("survey: unknown location strategy")

// SlotKey identifies the slot a location is being resolved for.
type SlotKey struct {
	RespondentID int
	Day          string
	Timeslot     string
}

// LocationPicker chooses one location when a cell lists several comma separated candidates.
// candidates is never empty.
type LocationPicker interface {
	Pick(candidates []string, key SlotKey) string
}

// NewLocationPicker returns the picker for the configured strategy name.
func NewLocationPicker(strategy string) (LocationPicker, error) {
	switch strategy {
	case "", LocationStrategyFirst:
		return FirstPicker{}, nil
	case LocationStrategyHash:
		return HashPicker{}, nil
	case LocationStrategyRandom:
		return NewRandomPicker(time.Now().UnixNano()), nil
	default:
		return nil, errors.Wrapf(ErrUnknownLocationStrategy, "%q", strategy)
	}
}

// FirstPicker always takes the first listed location.
type FirstPicker struct{}

func (FirstPicker) Pick(candidates []string, _ SlotKey) string {
	return candidates[0]
}

// HashPicker selects a candidate by hashing the slot key, so the same input always
// resolves to the same location while different slots spread over the candidates.
type HashPicker struct{}

func (HashPicker) Pick(candidates []string, key SlotKey) string {
	h := xxh3.HashString(strconv.Itoa(key.RespondentID) + "|" + key.Day + "|" + key.Timeslot)
	return candidates[h%uint64(len(candidates))]
}

// RandomPicker chooses uniformly at random. Runs over the same sheet are not reproducible.
type RandomPicker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomPicker(seed int64) *RandomPicker {
	return &RandomPicker{rnd: rand.New(rand.NewSource(seed))}
}

func (p *RandomPicker) Pick(candidates []string, _ SlotKey) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return candidates[p.rnd.Intn(len(candidates))]
}
