package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/vialtech/rutalerta/errors"
	"github.com/vialtech/rutalerta/models"
	"github.com/vialtech/rutalerta/server/response"
)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := decode(c, &user); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		created, err := s.AuthService.SignupUser(&user)
		if err != nil {
			response.JSON(c, "", errs.StatusOf(err), nil, err)
			return
		}
		response.JSON(c, "signup successful", http.StatusCreated, gin.H{
			"id":       created.ID,
			"username": created.Username,
			"email":    created.Email,
		}, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}
		userResponse, err := s.AuthService.LoginUser(&loginRequest)
		if err != nil {
			response.JSON(c, "", errs.StatusOf(err), nil, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, userResponse, nil)
	}
}
