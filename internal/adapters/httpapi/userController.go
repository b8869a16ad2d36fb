package httpapi

import (
	"errors"
	"net/http"
	"time"

	"forum/internal/core/errs"
	userPort "forum/internal/ports/user"

	"github.com/gin-gonic/gin"
)

// RefreshTokenCookie holds the refresh token between calls to /accessToken.
const RefreshTokenCookie = "RefreshToken"

type UserController struct {
	uc            UserUseCase
	secureCookies bool
}

func NewUserController(uc UserUseCase, secureCookies bool) *UserController {
	return &UserController{uc: uc, secureCookies: secureCookies}
}

func (ctl *UserController) RegisterUser(c *gin.Context) {
	var req struct {
		UserName string `json:"userName" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	u, err := ctl.uc.RegisterUser(c.Request.Context(), req.UserName, req.Email, req.Password)
	if errors.Is(err, errs.ErrUsernameTaken) {
		unprocessable(c, map[string][]string{"userName": {"'userName' is already taken."}})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (ctl *UserController) LoginUser(c *gin.Context) {
	var req struct {
		UserName string `json:"userName" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := ctl.uc.LoginUser(c.Request.Context(), req.UserName, req.Password)
	if errors.Is(err, errs.ErrInvalidCredentials) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	ctl.setRefreshCookie(c, res.RefreshToken, res.RefreshExpiresAt)
	c.JSON(http.StatusOK, userPort.LoginResponse{AccessToken: res.AccessToken})
}

// RefreshAccessToken trades the refresh cookie for a new access token and a rotated cookie.
func (ctl *UserController) RefreshAccessToken(c *gin.Context) {
	refreshToken, err := c.Cookie(RefreshTokenCookie)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "refresh token missing"})
		return
	}
	res, err := ctl.uc.RefreshAccessToken(c.Request.Context(), refreshToken)
	if errors.Is(err, errs.ErrInvalidRefreshToken) {
		ctl.clearRefreshCookie(c)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	ctl.setRefreshCookie(c, res.RefreshToken, res.RefreshExpiresAt)
	c.JSON(http.StatusOK, userPort.LoginResponse{AccessToken: res.AccessToken})
}

func (ctl *UserController) LogoutUser(c *gin.Context) {
	refreshToken, err := c.Cookie(RefreshTokenCookie)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "refresh token missing"})
		return
	}
	err = ctl.uc.LogoutUser(c.Request.Context(), refreshToken)
	if errors.Is(err, errs.ErrInvalidRefreshToken) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	ctl.clearRefreshCookie(c)
	c.Status(http.StatusOK)
}

func (ctl *UserController) setRefreshCookie(c *gin.Context, value string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshTokenCookie, value, maxAge, "/", "", ctl.secureCookies, true)
}

func (ctl *UserController) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", ctl.secureCookies, true)
}
