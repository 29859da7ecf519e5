package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/vialtech/rutalerta/errors"
	"github.com/vialtech/rutalerta/models"
	"github.com/vialtech/rutalerta/server/response"
)

func (s *Server) handleCastVote() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		req := models.VoteRequest{ReportID: c.Param("reportID")}
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		result, err := s.VoteService.CastVote(userID, &req)
		if err != nil {
			response.JSON(c, "", errs.StatusOf(err), nil, err)
			return
		}
		response.JSON(c, "vote recorded", http.StatusOK, result, nil)
	}
}
