package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const codeLength = 4

// Store owns every live room, keyed by join code. It is the only shared
// registry in the process; rooms never reference each other.
type Store struct {
	mu             sync.Mutex
	rooms          map[string]*Room
	rng            *rand.Rand
	combatTimerSec int
}

// NewStore creates an empty room registry. combatTimerSec seeds every new
// room's countdown length.
func NewStore(combatTimerSec int) *Store {
	return &Store{
		rooms:          make(map[string]*Room),
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		combatTimerSec: combatTimerSec,
	}
}

// Create allocates a room under a fresh 4-character uppercase code.
func (s *Store) Create() *Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := s.newCode()
	r := NewRoom(code, s.combatTimerSec, rand.New(rand.NewSource(s.rng.Int63())))
	s.rooms[code] = r
	logrus.WithField("room", code).Info("room created")
	return r
}

// Get looks up a room by code.
func (s *Store) Get(code string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[code]
	return r, ok
}

// Remove drops a room from the registry and cancels its combat timer.
func (s *Store) Remove(code string) {
	s.mu.Lock()
	r, ok := s.rooms[code]
	delete(s.rooms, code)
	s.mu.Unlock()
	if !ok {
		return
	}
	r.Mu.Lock()
	r.stopCombatTimer()
	r.Mu.Unlock()
	logrus.WithField("room", code).Info("room removed")
}

// DropPlayer removes a disconnected session from every room it occupies,
// tearing down rooms it leaves empty.
func (s *Store) DropPlayer(playerID uuid.UUID) {
	s.mu.Lock()
	snapshot := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		snapshot = append(snapshot, r)
	}
	s.mu.Unlock()

	for _, r := range snapshot {
		if r.Leave(playerID) {
			s.Remove(r.Code)
		}
	}
}

// Len reports how many rooms are live.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

// newCode draws unused 4-char codes until one is free. Assumes s.mu is held.
func (s *Store) newCode() string {
	for {
		b := make([]byte, codeLength)
		for i := range b {
			b[i] = codeAlphabet[s.rng.Intn(len(codeAlphabet))]
		}
		code := string(b)
		if _, taken := s.rooms[code]; !taken {
			return code
		}
	}
}
