package handlers

import (
	"net/http"
	"time"

	"github.com/VoltEdgeBuilds/learn/internal/application/usecase"
	"github.com/VoltEdgeBuilds/learn/internal/middleware"

	"github.com/gin-gonic/gin"
)

const refreshCookie = "refresh_token"

type AuthHandler struct {
	uc         *usecase.AuthUseCase
	refreshTTL time.Duration
}

func NewAuthHandler(uc *usecase.AuthUseCase, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{uc: uc, refreshTTL: refreshTTL}
}

type lookupReq struct {
	Phone string `json:"phone" binding:"required,phone"`
}

type signupReq struct {
	Phone      string `json:"phone" binding:"required,phone"`
	FirstName  string `json:"first_name" binding:"required,max=100"`
	LastName   string `json:"last_name" binding:"required,max=100"`
	Email      string `json:"email" binding:"required,email"`
	PIN        string `json:"pin" binding:"required,pin"`
	ConfirmPIN string `json:"confirm_pin" binding:"required"`
}

type loginReq struct {
	Phone string `json:"phone" binding:"required,phone"`
	PIN   string `json:"pin" binding:"required"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

// POST /api/v1/auth/lookup
func (h *AuthHandler) Lookup(c *gin.Context) {
	var req lookupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.uc.Lookup(c, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.uc.Signup(c, usecase.SignupInput{
		Phone:      req.Phone,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		PIN:        req.PIN,
		ConfirmPIN: req.ConfirmPIN,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.setRefreshCookie(c, sess.RefreshToken)
	c.JSON(http.StatusCreated, sess)
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.uc.Login(c, req.Phone, req.PIN)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setRefreshCookie(c, sess.RefreshToken)
	c.JSON(http.StatusOK, sess)
}

// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	token := refreshToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token not found"})
		return
	}

	sess, err := h.uc.Refresh(c, token)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setRefreshCookie(c, sess.RefreshToken)
	c.JSON(http.StatusOK, sess)
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.uc.Logout(c, refreshToken(c)); err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(refreshCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GET /api/v1/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.uc.Me(c, c.GetString(middleware.PhoneKey))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"phone":      user.Phone,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
	})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetCookie(refreshCookie, token, int(h.refreshTTL.Seconds()), "/", "", false, true)
}

// refreshToken prefers the cookie and falls back to the JSON body.
func refreshToken(c *gin.Context) string {
	if token, err := c.Cookie(refreshCookie); err == nil && token != "" {
		return token
	}
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return ""
	}
	return req.RefreshToken
}
