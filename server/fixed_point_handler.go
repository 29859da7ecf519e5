package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/vialtech/rutalerta/errors"
	"github.com/vialtech/rutalerta/models"
	"github.com/vialtech/rutalerta/server/response"
)

func (s *Server) handleGetFixedPoints() gin.HandlerFunc {
	return func(c *gin.Context) {
		points, err := s.FixedPointService.GetAllFixedPoints()
		if err != nil {
			response.JSON(c, "", errs.StatusOf(err), nil, err)
			return
		}
		response.JSON(c, "fixed points", http.StatusOK, points, nil)
	}
}

func (s *Server) handleCreateFixedPoint() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.FixedPointRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		point, err := s.FixedPointService.CreateFixedPoint(&req)
		if err != nil {
			response.JSON(c, "", errs.StatusOf(err), nil, err)
			return
		}
		response.JSON(c, "fixed point created", http.StatusCreated, point, nil)
	}
}
