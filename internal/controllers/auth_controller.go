package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"buildersite/internal/middleware"
	"buildersite/internal/services"
)

type AuthController struct {
	auth *services.AuthService
	jwt  *middleware.JWT
}

func NewAuthController(auth *services.AuthService, jwt *middleware.JWT) *AuthController {
	return &AuthController{auth: auth, jwt: jwt}
}

func (ctl *AuthController) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	user, err := ctl.auth.Authenticate(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := ctl.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		logrus.WithError(err).Error("Handler: could not sign token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	logrus.WithField("user_id", user.ID).Info("Operator signed in")
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
