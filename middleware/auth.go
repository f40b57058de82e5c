package middleware

import (
	"net/http"

	"github.com/MildKid/DegReviews/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 管理后台认证中间件，保护报表接口
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "未提供认证信息"})
			return
		}

		// 解析 JWT
		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "无效的认证信息"})
			return
		}

		// 将角色存储在 gin.Context 中
		c.Set("role", claims.Role)
		c.Next()
	}
}
