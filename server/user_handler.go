package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/vialtech/rutalerta/errors"
	"github.com/vialtech/rutalerta/models"
	"github.com/vialtech/rutalerta/server/response"
)

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		profile, err := s.UserService.GetProfile(userID)
		if err != nil {
			response.JSON(c, "", errs.StatusOf(err), nil, err)
			return
		}
		response.JSON(c, "profile", http.StatusOK, profile, nil)
	}
}

func (s *Server) handleUpdateUsername() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		var req models.ProfileRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if err := s.UserService.UpdateUsername(userID, &req); err != nil {
			response.JSON(c, "", errs.StatusOf(err), nil, err)
			return
		}
		response.JSON(c, "username updated", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleUpdateVehicle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		var req models.VehicleRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if err := s.UserService.UpdateVehicle(userID, &req); err != nil {
			response.JSON(c, "", errs.StatusOf(err), nil, err)
			return
		}
		response.JSON(c, "vehicle updated", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleUpdateAvatar() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		var req models.AvatarRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if err := s.UserService.UpdateAvatar(userID, &req); err != nil {
			response.JSON(c, "", errs.StatusOf(err), nil, err)
			return
		}
		response.JSON(c, "avatar updated", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleRedeemPoints() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		var req models.RedeemPointsRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		balance, err := s.UserService.RedeemPoints(userID, &req)
		if err != nil {
			response.JSON(c, "", errs.StatusOf(err), nil, err)
			return
		}
		response.JSON(c, "points redeemed", http.StatusOK, gin.H{"balance": balance}, nil)
	}
}

func (s *Server) handleRedeemPremium() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		balance, err := s.UserService.RedeemPremium(userID)
		if err != nil {
			response.JSON(c, "", errs.StatusOf(err), nil, err)
			return
		}
		response.JSON(c, "premium activated", http.StatusOK, gin.H{"balance": balance}, nil)
	}
}
