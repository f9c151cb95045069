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
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"laptudirm.com/x/caro/pkg/engine"
	"laptudirm.com/x/caro/pkg/game"
)

type moveRequest struct {
	Board      string            `json:"board"`
	Difficulty engine.Difficulty `json:"difficulty"`
	Player     *engine.Player    `json:"player"`
}

// handleMove answers a single stateless move query.
func (s *Server) handleMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := engine.ParseBoard(req.Board)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player := engine.O
	if req.Player != nil {
		player = *req.Player
	}

	e := engine.New(player, s.config.Engine, engine.WithLogger(s.log))
	c.JSON(http.StatusOK, e.SelectMove(board, req.Difficulty))
}

type createRequest struct {
	Difficulty engine.Difficulty `json:"difficulty"`
	Human      *engine.Player    `json:"human"`
}

func (s *Server) handleCreateGame(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	human := engine.X
	if req.Human != nil {
		human = *req.Human
	}

	session := &Session{
		Human:      human,
		Difficulty: req.Difficulty,
	}

	// the id is needed by the event hub before the first move, so the
	// session is locked until it is set up
	session.mu.Lock()
	defer session.mu.Unlock()
	id := s.store.Add(session)

	session.Game = game.New(s.config.Rules, game.WithEvents(s.hub.Events(id)))
	session.Engine = engine.New(
		human.Other(), s.config.Engine,
		engine.WithLogger(s.log.WithField("game", id)),
	)

	var outcomes []game.Outcome
	if session.Engine.Player() == session.Game.Turn {
		if outcome, ok := s.reply(session); ok {
			outcomes = append(outcomes, outcome)
		}
	}

	s.log.WithField("game", id).Infof("server: new %s game, human plays %s", session.Difficulty, human)
	c.JSON(http.StatusCreated, gin.H{
		"outcomes": outcomes,
		"state":    session.State(),
	})
}

func (s *Server) handleGetGame(c *gin.Context) {
	session, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	c.JSON(http.StatusOK, session.State())
}

// handlePlay plays the human's move and the engine's reply to it.
func (s *Server) handlePlay(c *gin.Context) {
	session, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	var move engine.Move
	if err := c.ShouldBindJSON(&move); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	switch {
	case session.Game.Status != game.Playing:
		c.JSON(http.StatusConflict, gin.H{"error": game.ErrGameOver.Error()})
		return
	case session.Game.Turn != session.Human:
		c.JSON(http.StatusConflict, gin.H{"error": "not your turn"})
		return
	}

	outcome, err := session.Game.Play(move)
	switch {
	case errors.Is(err, game.ErrGameOver):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcomes := []game.Outcome{outcome}
	if session.Game.Status == game.Playing && session.Game.Turn == session.Engine.Player() {
		s.think()

		if reply, ok := s.reply(session); ok {
			outcomes = append(outcomes, reply)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"outcomes": outcomes,
		"state":    session.State(),
	})
}

// think waits for the configured delay. The human's move is already
// committed, so the engine replies even if the client goes away meanwhile.
func (s *Server) think() {
	if s.config.ThinkDelay > 0 {
		time.Sleep(s.config.ThinkDelay)
	}
}

// reply plays the engine's move in the session's game. The session's lock
// must be held.
func (s *Server) reply(session *Session) (game.Outcome, bool) {
	move := session.Engine.SelectMove(session.Game.Board, session.Difficulty)
	if !move.Valid() {
		return game.Outcome{}, false
	}

	outcome, err := session.Game.Play(move)
	if err != nil {
		s.log.WithError(err).WithField("game", session.ID).Error("server: engine played an illegal move")
		return game.Outcome{}, false
	}

	return outcome, true
}

func (s *Server) handleWS(c *gin.Context) {
	id := c.Query("game")

	session, ok := s.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	session.mu.Lock()
	hello := Message{Action: "state", Data: session.State()}
	session.mu.Unlock()

	s.hub.Watch(c, id, hello)
}
