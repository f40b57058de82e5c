package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/MildKid/DegReviews/config"
	"github.com/gin-gonic/gin"
)

// IdentityCookieName 访客身份Cookie的命名空间键
const IdentityCookieName = "oursu_deg_user_uuid"

// 同一请求内缓存已解析身份用的context键
const identityContextKey = "userUUID"

// CookieManager 封装身份Cookie和提交标记Cookie的读写
// 身份只是关联键，不是凭证，服务端不信任它
type CookieManager struct {
	identityTTL time.Duration
}

func NewCookieManager(identityDays int) *CookieManager {
	return &CookieManager{
		identityTTL: time.Duration(identityDays) * 24 * time.Hour,
	}
}

// ResolveIdentity 读取访客身份，没有就铸造一个新UUID写回Cookie
// 同一请求内重复调用不会二次铸造
func (m *CookieManager) ResolveIdentity(c *gin.Context) string {
	if v, exists := c.Get(identityContextKey); exists {
		return v.(string)
	}

	val, err := c.Cookie(IdentityCookieName)
	if err != nil || val == "" {
		val = GenerateID()
		c.SetCookie(IdentityCookieName, val, int(m.identityTTL.Seconds()), "/", "", false, true)
		config.Logger.Infow("铸造新的访客身份", "userUUID", val)
	}

	c.Set(identityContextKey, val)
	return val
}

// MarkerCookieName {date}_{meal} 形式的提交标记Cookie名
// 餐段名里的空格换成连字符，Cookie名不允许空格
func MarkerCookieName(date, meal string) string {
	return fmt.Sprintf("%s_%s", date, strings.ReplaceAll(meal, " ", "-"))
}

// HasMarker 判断该日期该餐段的提交标记Cookie是否存在
func (m *CookieManager) HasMarker(c *gin.Context, date, meal string) bool {
	v, err := c.Cookie(MarkerCookieName(date, meal))
	return err == nil && v != ""
}

// SetMarker 写提交标记Cookie，仅在评价落库成功后调用
func (m *CookieManager) SetMarker(c *gin.Context, date, meal string, ttl time.Duration) {
	c.SetCookie(MarkerCookieName(date, meal), "submitted", int(ttl.Seconds()), "/", "", false, true)
}
