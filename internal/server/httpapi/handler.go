package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/authkeeper/internal/api"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/gin-gonic/gin"
)

type handler struct {
	svc    AuthService
	logger logging.Logger
}

func (h *handler) ping(c *gin.Context) {
	c.JSON(http.StatusOK, api.PingResponse{Status: api.StatusOK})
}

func (h *handler) register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, common.ErrInvalidInput)
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, api.RegisterResponse{
		Message: api.MsgRegistered,
		User:    api.User{ID: user.ID, Email: user.Email},
	})
}

func (h *handler) login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, common.ErrInvalidInput)
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.LoginResponse{
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		User:         api.User{ID: res.User.ID, Email: res.User.Email},
	})
}

func (h *handler) refresh(c *gin.Context) {
	var req api.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, common.ErrInvalidToken)
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.TokenPair{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (h *handler) logout(c *gin.Context) {
	user := authUser(c)
	if err := h.svc.Logout(c.Request.Context(), user.ID); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: api.MsgLoggedOut})
}

func (h *handler) profile(c *gin.Context) {
	user := authUser(c)
	p, err := h.svc.GetProfile(c.Request.Context(), user.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.ProfileResponse{ID: p.ID, Email: p.Email, CreatedAt: p.CreatedAt})
}
