package http

import (
	"net/http"

	"github.com/MorgandeCesso/regulus-back/internal/middleware"
	"github.com/MorgandeCesso/regulus-back/internal/user"
	appErrors "github.com/MorgandeCesso/regulus-back/pkg/errors"
	"github.com/MorgandeCesso/regulus-back/pkg/logger"

	"github.com/gin-gonic/gin"
)

type UserHandlers struct {
	uc     user.UserUsecase
	logger *logger.Logger
}

func NewUserHandlers(uc user.UserUsecase, logger *logger.Logger) *UserHandlers {
	return &UserHandlers{uc: uc, logger: logger}
}

type registerRequest struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Email    *string `json:"email" binding:"omitempty,email"`
}

func (h *UserHandlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, appErrors.InvalidArg(err.Error()))
		return
	}

	dto, err := h.uc.Register(c.Request.Context(), user.RegisterCommand{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// Login implements the password grant: form fields username and password.
func (h *UserHandlers) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		respondError(c, appErrors.InvalidArg("username and password are required"))
		return
	}

	tokens, err := h.uc.Login(c.Request.Context(), user.LoginCommand{
		Username: username,
		Password: password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

type refreshRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

func (h *UserHandlers) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, appErrors.InvalidArg(err.Error()))
		return
	}

	tokens, err := h.uc.Refresh(c.Request.Context(), req.AccessToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

func (h *UserHandlers) Logout(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, appErrors.ErrInvalidAccessToken)
		return
	}

	if err := h.uc.Logout(c.Request.Context(), u.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

type verifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

func (h *UserHandlers) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, appErrors.InvalidArg(err.Error()))
		return
	}

	dto, err := h.uc.VerifyEmail(c.Request.Context(), user.VerifyEmailCommand{
		Email: req.Email,
		Code:  req.Code,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func respondError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(appErrors.HTTPStatus(err), gin.H{"error": appErrors.Convert(err)})
}
