package server

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()

	// LoggerWithFormatter middleware will write the logs to gin.DefaultWriter
	// By default gin.DefaultWriter = os.Stdout
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	apirouter := router.Group("/api/v1")
	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", s.handleLogin())
	apirouter.GET("/reports", s.handleGetActiveReports())
	apirouter.GET("/fixed-points", s.handleGetFixedPoints())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.POST("/reports", s.submitRateLimit(), s.handleSubmitReport())
	authorized.POST("/reports/:reportID/vote", s.handleCastVote())
	authorized.GET("/reports/live", s.handleReportStream())
	authorized.GET("/me", s.handleShowProfile())
	authorized.PUT("/me/username", s.handleUpdateUsername())
	authorized.PUT("/me/vehicle", s.handleUpdateVehicle())
	authorized.PUT("/me/avatar", s.handleUpdateAvatar())
	authorized.POST("/me/points/redeem", s.handleRedeemPoints())
	authorized.POST("/me/premium/redeem", s.handleRedeemPremium())
	authorized.POST("/fixed-points", s.handleCreateFixedPoint())
}
