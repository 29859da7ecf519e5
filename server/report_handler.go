package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/vialtech/rutalerta/errors"
	"github.com/vialtech/rutalerta/models"
	"github.com/vialtech/rutalerta/server/response"
)

func (s *Server) handleSubmitReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var req models.ReportRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		result, err := s.ReportService.SubmitReport(userID, &req)
		if err != nil {
			response.JSON(c, "", errs.StatusOf(err), nil, err)
			return
		}

		if s.Hub != nil {
			s.Hub.BroadcastReport(result)
		}

		message := "report created"
		status := http.StatusCreated
		if result.Corroborated {
			message = "report corroborated"
			status = http.StatusOK
		}
		response.JSON(c, message, status, result, nil)
	}
}

func (s *Server) handleGetActiveReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		reports, err := s.ReportService.GetActiveReports()
		if err != nil {
			response.JSON(c, "", errs.StatusOf(err), nil, err)
			return
		}
		response.JSON(c, "active reports", http.StatusOK, reports, nil)
	}
}
