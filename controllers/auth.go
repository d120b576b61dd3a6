package controllers

import (
	"net/http"
	"strings"

	"retail-backend/services"
	"retail-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	auth         *services.AuthService
	log          *zap.Logger
	secureCookie bool
}

func NewAuthController(auth *services.AuthService, log *zap.Logger, secureCookie bool) *AuthController {
	return &AuthController{auth: auth, log: log, secureCookie: secureCookie}
}

// Login checks email and password and returns the caller's API credentials.
func (ac *AuthController) Login(c *gin.Context) {
	dict, err := FormDict(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if missing := missingParams(dict, "email", "password"); len(missing) > 0 {
		utils.RespondWithError(c, http.StatusExpectationFailed, "Missing required arguments: "+strings.Join(missing, ", "))
		return
	}

	result, err := ac.auth.Login(c.Request.Context(), dict["email"], dict["password"])
	if err != nil {
		respondError(c, ac.log, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookieName, result.SessionToken, int(ac.auth.SessionTTL().Seconds()), "/", "", ac.secureCookie, true)
	respondMessage(c, result)
}

// Logout drops the session cookie.
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", ac.secureCookie, true)
	respondMessage(c, "Logged out")
}

// LoggedUser reports who the request is running as.
func (ac *AuthController) LoggedUser(c *gin.Context) {
	respondMessage(c, utils.CurrentUser(c))
}

func Ping(c *gin.Context) {
	respondMessage(c, "pong")
}
