// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"sync"

	"github.com/google/uuid"
	"laptudirm.com/x/caro/pkg/engine"
	"laptudirm.com/x/caro/pkg/game"
)

// Session is a game between a human and the engine.
type Session struct {
	ID string

	Human      engine.Player
	Difficulty engine.Difficulty

	// mu guards Game and Engine.
	mu     sync.Mutex
	Game   *game.Game
	Engine *engine.Engine
}

// SessionState is the view of a Session sent to clients.
type SessionState struct {
	ID         string            `json:"id"`
	Human      engine.Player     `json:"human"`
	Difficulty engine.Difficulty `json:"difficulty"`
	game.State
}

// State must be called with the session's lock held.
func (session *Session) State() SessionState {
	return SessionState{
		ID:         session.ID,
		Human:      session.Human,
		Difficulty: session.Difficulty,
		State:      session.Game.State(),
	}
}

// MemoryStore keeps the sessions in memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: map[string]*Session{},
	}
}

func (m *MemoryStore) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	return session, ok
}

// Add stores the session under a new random id, which it returns.
func (m *MemoryStore) Add(session *Session) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	session.ID = uuid.NewString()
	m.sessions[session.ID] = session
	return session.ID
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
