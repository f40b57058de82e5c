package controllers

import (
	"crypto/subtle"
	"net/http"

	"github.com/MildKid/DegReviews/config"
	"github.com/MildKid/DegReviews/models"
	"github.com/MildKid/DegReviews/utils"

	"github.com/gin-gonic/gin"
)

// AuthController 管理后台认证控制器
type AuthController struct {
	adminPassword string
}

func NewAuthController(adminPassword string) *AuthController {
	return &AuthController{adminPassword: adminPassword}
}

// AdminLogin 管理员口令登录，换取报表接口的JWT
func (ac *AuthController) AdminLogin(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if ac.adminPassword == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "管理后台未配置"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(ac.adminPassword)) != 1 {
		config.Logger.Warnw("管理员登录失败", "clientIP", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "口令错误"})
		return
	}

	token, err := utils.GenerateToken("admin")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "令牌生成失败"})
		return
	}

	c.JSON(http.StatusOK, models.AdminLoginResponse{Token: token})
}
