// Package auth 處理註冊、登入與登出，登入狀態以 cookie 保存。
package auth

import (
	"errors"
	"net/http"
	"strings"

	"recipe-browser/internal/core/user"
	"recipe-browser/internal/infrastructure/config"
	"recipe-browser/internal/infrastructure/session"
	"recipe-browser/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SignUpRequest 註冊請求
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required,min=6"`
}

// SignInRequest 登入請求
type SignInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Handler 帳號處理程序
type Handler struct {
	users    *user.Service
	sessions session.Store
	cfg      config.SessionConfig
}

// NewHandler 創建帳號處理程序
func NewHandler(users *user.Service, sessions session.Store, cfg config.SessionConfig) *Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = "recipe_session"
	}
	return &Handler{users: users, sessions: sessions, cfg: cfg}
}

// SignUp 註冊並直接登入
func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.MessageResponse{Message: validationMessage(err)})
		return
	}

	status, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if common.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, common.MessageResponse{Message: err.Error()})
			return
		}
		common.LogError("註冊失敗", zap.Error(err), zap.String("request_id", requestid.Get(c)))
		c.JSON(http.StatusInternalServerError, common.MessageResponse{Message: common.ErrInternalError.Message})
		return
	}

	switch status {
	case user.RegisterUsernameTaken:
		c.JSON(http.StatusConflict, common.MessageResponse{Message: common.ErrUsernameTaken.Message})
		return
	case user.RegisterEmailTaken:
		c.JSON(http.StatusConflict, common.MessageResponse{Message: common.ErrEmailTaken.Message})
		return
	}

	if err := h.startSession(c, strings.TrimSpace(req.Username)); err != nil {
		common.LogError("建立登入狀態失敗", zap.Error(err))
	}
	c.JSON(http.StatusCreated, common.MessageResponse{Message: "Sign up successful!"})
}

// SignIn 驗證帳密並設定登入 cookie
func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.MessageResponse{Message: "All fields are required."})
		return
	}

	u, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, common.MessageResponse{Message: common.ErrInvalidCredentials.Message})
			return
		}
		common.LogError("登入失敗", zap.Error(err), zap.String("request_id", requestid.Get(c)))
		c.JSON(http.StatusInternalServerError, common.MessageResponse{Message: common.ErrInternalError.Message})
		return
	}

	if err := h.startSession(c, u.Username); err != nil {
		common.LogError("建立登入狀態失敗", zap.Error(err))
		c.JSON(http.StatusInternalServerError, common.MessageResponse{Message: common.ErrInternalError.Message})
		return
	}
	c.JSON(http.StatusOK, common.MessageResponse{Message: "Sign in successful!"})
}

// SignOut 清除登入狀態
func (h *Handler) SignOut(c *gin.Context) {
	if id, err := c.Cookie(h.cfg.CookieName); err == nil && id != "" {
		if err := h.sessions.Delete(c.Request.Context(), id); err != nil {
			common.LogWarn("刪除登入狀態失敗", zap.Error(err))
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.Secure, true)
	c.JSON(http.StatusOK, common.MessageResponse{Message: "Signed out."})
}

func (h *Handler) startSession(c *gin.Context, username string) error {
	id, err := h.sessions.Create(c.Request.Context(), common.Identity{Username: username})
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, id, int(h.cfg.TTL.Seconds()), "/", "", h.cfg.Secure, true)
	common.LogInfo("使用者登入", zap.String("username", username))
	return nil
}
