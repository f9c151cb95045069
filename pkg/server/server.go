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
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"laptudirm.com/x/caro/pkg/engine"
	"laptudirm.com/x/caro/pkg/game"
)

const shutdownTimeout = 5 * time.Second

type Config struct {
	Engine engine.Config
	Rules  game.Rules

	// ThinkDelay is how long the engine waits before replying to a
	// human move.
	ThinkDelay time.Duration

	Logger logrus.FieldLogger
}

type Server struct {
	config Config

	store *MemoryStore
	hub   *Hub
	log   logrus.FieldLogger
}

func New(config Config) *Server {
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}

	return &Server{
		config: config,
		store:  NewMemoryStore(),
		hub:    NewHub(config.Logger),
		log:    config.Logger,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log))

	api := r.Group("/api")
	{
		api.POST("/move", s.handleMove)
		api.POST("/games", s.handleCreateGame)
		api.GET("/games/:id", s.handleGetGame)
		api.POST("/games/:id/move", s.handlePlay)
	}

	r.GET("/ws", s.handleWS)

	return r
}

// Run serves the api on addr until ctx is cancelled, after which the
// server is shut down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		s.log.Infof("server: listening on %s", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		s.log.Info("server: shutting down")

		shutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdown)
	})

	return group.Wait()
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Debug("http: request")
	}
}
