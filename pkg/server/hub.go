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
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"laptudirm.com/x/caro/pkg/engine"
	"laptudirm.com/x/caro/pkg/game"
)

// Message is a single websocket event.
type Message struct {
	Action string `json:"action"`
	Data   any    `json:"data"`
}

// writeWait bounds every write to a client, so a client which stops
// reading is dropped instead of stalling the game it watches.
var writeWait = 5 * time.Second

// client is a single websocket connection. Writes to it are serialized.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) send(message Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return c.conn.WriteJSON(message)
}

// Hub fans game events out to the websocket clients watching each game.
type Hub struct {
	mu    sync.Mutex // guards games
	games map[string]map[*client]struct{}

	log logrus.FieldLogger
}

func NewHub(logger logrus.FieldLogger) *Hub {
	return &Hub{
		games: make(map[string]map[*client]struct{}),
		log:   logger,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// Watch upgrades the request to a websocket which receives the events of
// the game with the given id, starting with the initial message.
func (h *Hub) Watch(c *gin.Context, id string, initial Message) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("ws: upgrade failed")
		return
	}

	cl := &client{conn: conn}

	// hold the client until the initial message is out, so that it comes
	// before any broadcast
	cl.mu.Lock()
	h.mu.Lock()
	if _, ok := h.games[id]; !ok {
		h.games[id] = make(map[*client]struct{})
	}
	h.games[id][cl] = struct{}{}
	h.mu.Unlock()

	err = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err == nil {
		err = conn.WriteJSON(initial)
	}
	cl.mu.Unlock()

	h.log.WithField("game", id).Debug("ws: client connected")
	defer h.drop(id, cl)

	if err != nil {
		return
	}

	// clients only listen, so reading just notices the connection closing
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) drop(id string, cl *client) {
	h.mu.Lock()
	delete(h.games[id], cl)
	if len(h.games[id]) == 0 {
		delete(h.games, id)
	}
	h.mu.Unlock()

	_ = cl.conn.Close()
}

// Watchers returns the number of clients watching the given game.
func (h *Hub) Watchers(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.games[id])
}

func (h *Hub) Broadcast(id string, action string, data any) {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.games[id]))
	for cl := range h.games[id] {
		clients = append(clients, cl)
	}
	h.mu.Unlock()

	message := Message{Action: action, Data: data}
	for _, cl := range clients {
		if err := cl.send(message); err != nil {
			h.log.WithError(err).WithField("game", id).Warn("ws: dropping client")
			h.drop(id, cl)
		}
	}
}

// Events returns the game.Events which broadcast the events of the game
// with the given id.
func (h *Hub) Events(id string) game.Events {
	return hubEvents{hub: h, id: id}
}

type hubEvents struct {
	hub *Hub
	id  string
}

func (events hubEvents) Placed(player engine.Player, move engine.Move, bomb bool) {
	events.hub.Broadcast(events.id, "placed", gin.H{
		"player": player,
		"move":   move,
		"bomb":   bomb,
	})
}

func (events hubEvents) Exploded(detonated, cleared []engine.Move) {
	events.hub.Broadcast(events.id, "exploded", gin.H{
		"detonated": detonated,
		"cleared":   cleared,
	})
}

func (events hubEvents) Ended(status game.Status, winner engine.Player) {
	data := gin.H{"status": status}
	if status == game.Won {
		data["winner"] = winner
	}

	events.hub.Broadcast(events.id, "ended", data)
}
