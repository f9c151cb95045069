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
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"laptudirm.com/x/caro/pkg/engine"
	"laptudirm.com/x/caro/pkg/game"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newServer() *Server {
	logger := logrus.New()
	logger.SetOutput(bytes.NewBuffer(nil))

	return New(Config{
		Engine: engine.DefaultConfig(),
		Rules:  game.Rules{BombChance: 0, BombTimer: 3},
		Logger: logger,
	})
}

func do(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

type gameResponse struct {
	Outcomes []game.Outcome `json:"outcomes"`
	State    SessionState   `json:"state"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func emptyBoard() string {
	return strings.TrimSuffix(strings.Repeat(strings.Repeat(".", engine.Size)+"/", engine.Size), "/")
}

func TestMoveEndpoint(t *testing.T) {
	router := newServer().Router()

	w := do(t, router, http.MethodPost, "/api/move", `{"board":"`+emptyBoard()+`","difficulty":"hard"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, engine.Center, decode[engine.Move](t, w))

	// x threatens to complete five on the top row
	rows := strings.Split(emptyBoard(), "/")
	rows[0] = "xxxx..........."
	rows[1] = "ooo............"
	w = do(t, router, http.MethodPost, "/api/move", `{"board":"`+strings.Join(rows, "/")+`","difficulty":"medium","player":"x"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, engine.Move{Row: 0, Col: 4}, decode[engine.Move](t, w))

	w = do(t, router, http.MethodPost, "/api/move", `{"board":"","difficulty":"hard"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPost, "/api/move", `{"board":"`+emptyBoard()+`","difficulty":"impossible"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGameLifecycle(t *testing.T) {
	router := newServer().Router()

	w := do(t, router, http.MethodPost, "/api/games", `{"difficulty":"medium","human":"x"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	created := decode[gameResponse](t, w)
	id := created.State.ID
	require.NotEmpty(t, id)
	assert.Empty(t, created.Outcomes)
	assert.Equal(t, engine.X, created.State.Turn)
	assert.Equal(t, engine.Medium, created.State.Difficulty)

	w = do(t, router, http.MethodPost, "/api/games/"+id+"/move", `{"row":7,"col":7}`)
	require.Equal(t, http.StatusOK, w.Code)

	played := decode[gameResponse](t, w)
	require.Len(t, played.Outcomes, 2)
	assert.Equal(t, engine.X, played.Outcomes[0].Player)
	assert.Equal(t, engine.O, played.Outcomes[1].Player)
	assert.Equal(t, 2, played.State.Plies)
	assert.Equal(t, engine.X, played.State.Turn)

	// the cell is taken now
	w = do(t, router, http.MethodPost, "/api/games/"+id+"/move", `{"row":7,"col":7}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPost, "/api/games/"+id+"/move", `{"row":15,"col":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodGet, "/api/games/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, played.State, decode[SessionState](t, w))

	w = do(t, router, http.MethodGet, "/api/games/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodPost, "/api/games/missing/move", `{"row":0,"col":0}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEngineOpens(t *testing.T) {
	router := newServer().Router()

	w := do(t, router, http.MethodPost, "/api/games", `{"difficulty":"hard","human":"o"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	created := decode[gameResponse](t, w)
	require.Len(t, created.Outcomes, 1)
	assert.Equal(t, engine.Center, created.Outcomes[0].Move)
	assert.Equal(t, engine.O, created.State.Turn)
}

func TestConflicts(t *testing.T) {
	s := newServer()
	router := s.Router()

	w := do(t, router, http.MethodPost, "/api/games", `{"difficulty":"easy"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[gameResponse](t, w).State.ID

	session, ok := s.store.Get(id)
	require.True(t, ok)

	session.mu.Lock()
	session.Game.Turn = engine.O
	session.mu.Unlock()

	w = do(t, router, http.MethodPost, "/api/games/"+id+"/move", `{"row":0,"col":0}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	session.mu.Lock()
	session.Game.Turn = engine.X
	session.Game.Status = game.Drawn
	session.mu.Unlock()

	w = do(t, router, http.MethodPost, "/api/games/"+id+"/move", `{"row":0,"col":0}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWebsocketEvents(t *testing.T) {
	s := newServer()
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	w := do(t, s.Router(), http.MethodPost, "/api/games", `{"difficulty":"easy","human":"x"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[gameResponse](t, w).State.ID

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?game=" + id

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws?game=missing", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var hello struct {
		Action string       `json:"action"`
		Data   SessionState `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, "state", hello.Action)
	assert.Equal(t, id, hello.Data.ID)

	w = do(t, s.Router(), http.MethodPost, "/api/games/"+id+"/move", `{"row":3,"col":4}`)
	require.Equal(t, http.StatusOK, w.Code)

	type placed struct {
		Action string `json:"action"`
		Data   struct {
			Player engine.Player `json:"player"`
			Move   engine.Move   `json:"move"`
			Bomb   bool          `json:"bomb"`
		} `json:"data"`
	}

	var first, second placed
	require.NoError(t, conn.ReadJSON(&first))
	require.NoError(t, conn.ReadJSON(&second))

	assert.Equal(t, "placed", first.Action)
	assert.Equal(t, engine.X, first.Data.Player)
	assert.Equal(t, engine.Move{Row: 3, Col: 4}, first.Data.Move)
	assert.False(t, first.Data.Bomb)

	assert.Equal(t, "placed", second.Action)
	assert.Equal(t, engine.O, second.Data.Player)
}

func TestCancelledMoveStillGetsReply(t *testing.T) {
	s := newServer()
	s.config.ThinkDelay = 200 * time.Millisecond
	router := s.Router()

	w := do(t, router, http.MethodPost, "/api/games", `{"difficulty":"medium","human":"x"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[gameResponse](t, w).State.ID

	// the client gives up while the engine is thinking
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodPost, "/api/games/"+id+"/move", strings.NewReader(`{"row":7,"col":7}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))
	require.Error(t, ctx.Err())

	w = do(t, router, http.MethodGet, "/api/games/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	state := decode[SessionState](t, w)
	assert.Equal(t, engine.X, state.Turn)
	assert.Equal(t, 2, state.Plies)

	w = do(t, router, http.MethodPost, "/api/games/"+id+"/move", `{"row":0,"col":0}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStalledClientIsDropped(t *testing.T) {
	wait := writeWait
	writeWait = 50 * time.Millisecond
	t.Cleanup(func() { writeWait = wait })

	s := newServer()
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	w := do(t, s.Router(), http.MethodPost, "/api/games", `{"difficulty":"easy"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[gameResponse](t, w).State.ID

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws?game="+id, nil)
	require.NoError(t, err)
	defer conn.Close()

	var hello Message
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, 1, s.hub.Watchers(id))

	// the client stops reading, so the socket buffers fill up and a write
	// eventually times out
	payload := strings.Repeat("#", 1<<20)
	start := time.Now()
	for i := 0; i < 512 && s.hub.Watchers(id) > 0; i++ {
		s.hub.Broadcast(id, "noise", payload)
	}

	assert.Zero(t, s.hub.Watchers(id))
	assert.Less(t, time.Since(start), 30*time.Second)
}

func TestStore(t *testing.T) {
	store := NewMemoryStore()

	a, b := &Session{}, &Session{}
	idA, idB := store.Add(a), store.Add(b)

	assert.NotEqual(t, idA, idB)
	assert.Equal(t, 2, store.Len())

	got, ok := store.Get(idA)
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = store.Get("nope")
	assert.False(t, ok)
}
