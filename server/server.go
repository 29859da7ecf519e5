package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/vialtech/rutalerta/config"
	"github.com/vialtech/rutalerta/db"
	"github.com/vialtech/rutalerta/server/response"
	"github.com/vialtech/rutalerta/services"
)

// Server aggregates every service behind the HTTP surface.
type Server struct {
	Config            *config.Config
	Logger            *logrus.Logger
	AuthRepository    db.AuthRepository
	AuthService       services.AuthService
	ReportService     services.ReportService
	VoteService       services.VoteService
	UserService       services.UserService
	FixedPointService services.FixedPointService
	Hub               *Hub
}

// Start blocks serving HTTP until ctx is cancelled, then drains for up
// to 10 seconds.
func (s *Server) Start(ctx context.Context) error {
	port := s.Config.Port
	if port == 0 {
		port = 8080
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.setupRouter(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// decode binds and validates a JSON request body.
func decode(c *gin.Context, v interface{}) error {
	return c.ShouldBindJSON(v)
}

// respondAndAbort calls response.JSON and aborts the Context
func respondAndAbort(c *gin.Context, message string, status int, data interface{}, err error) {
	response.JSON(c, message, status, data, err)
	c.Abort()
}
