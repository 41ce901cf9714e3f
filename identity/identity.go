// Package identity tracks who answers surveys: an explicitly identified
// user when the host called Identify, otherwise a locally generated
// anonymous id that persists across launches. The store never fails outward;
// persistence problems are logged and the in-memory state keeps working.
package identity

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofrs/uuid"

	"github.com/pulselabs/pulse-go/log"
)

type state struct {
	AnonymousID string         `json:"anonymousId"`
	UserID      string         `json:"userId,omitempty"`
	Traits      map[string]any `json:"traits,omitempty"`
}

// Store guards identity state with a single lock; trigger checks and
// identify calls may race from different goroutines.
type Store struct {
	mu    sync.Mutex
	path  string
	state state
}

// NewStore loads persisted identity from path, or starts fresh. An empty
// path places the file in the user config directory.
func NewStore(path string) *Store {
	if path == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(dir, "pulse", "identity.json")
		} else {
			path = "pulse-identity.json"
		}
	}

	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err == nil {
		if err = json.Unmarshal(data, &s.state); err != nil {
			log.Warnf("identity.load.parse: %s", err)
			s.state = state{}
		}
	} else if !os.IsNotExist(err) {
		log.Warnf("identity.load: %s", err)
	}
	return s
}

// UserID returns the identified user id, or the anonymous id when nobody
// has been identified.
func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.UserID != "" {
		return s.state.UserID
	}
	return s.anonymousIDLocked()
}

// AnonymousID returns the persisted anonymous id, generating it on first
// use.
func (s *Store) AnonymousID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anonymousIDLocked()
}

func (s *Store) anonymousIDLocked() string {
	if s.state.AnonymousID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			log.Warnf("identity.anonymous.uuid: %s", err)
			s.state.AnonymousID = fmt.Sprintf("anon-%d", time.Now().UnixNano())
		} else {
			s.state.AnonymousID = id.String()
		}
		s.saveLocked()
	}
	return s.state.AnonymousID
}

// Traits returns a copy of the identified user's traits.
func (s *Store) Traits() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Traits == nil {
		return nil
	}
	traits := make(map[string]any, len(s.state.Traits))
	for k, v := range s.state.Traits {
		traits[k] = v
	}
	return traits
}

// Identify records an explicit identity. Calling it again replaces the
// previous one.
func (s *Store) Identify(userID string, traits map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.UserID = userID
	s.state.Traits = traits
	s.saveLocked()
}

// Reset clears the identified user. The anonymous id persists.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.UserID = ""
	s.state.Traits = nil
	s.saveLocked()
}

func (s *Store) saveLocked() {
	data, err := json.Marshal(s.state)
	if err != nil {
		log.Warnf("identity.save.marshal: %s", err)
		return
	}

	if err = os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		log.Warnf("identity.save.mkdir: %s", err)
		return
	}
	if err = os.WriteFile(s.path, data, 0o600); err != nil {
		log.Warnf("identity.save.write: %s", err)
	}
}
