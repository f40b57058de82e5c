package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MildKid/DegReviews/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newAuthRouter(password string) *gin.Engine {
	utils.InitJWT("test-secret")
	ac := NewAuthController(password)
	r := gin.New()
	r.POST("/api/v1/auth/login", ac.AdminLogin)
	return r
}

func postLogin(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminLoginSuccess(t *testing.T) {
	r := newAuthRouter("let-me-in")

	w := postLogin(r, `{"password":"let-me-in"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	token := body["token"].(string)
	claims, err := utils.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestAdminLoginWrongPassword(t *testing.T) {
	r := newAuthRouter("let-me-in")
	w := postLogin(r, `{"password":"guess"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminLoginMissingPassword(t *testing.T) {
	r := newAuthRouter("let-me-in")
	w := postLogin(r, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminLoginUnconfigured(t *testing.T) {
	r := newAuthRouter("")
	w := postLogin(r, `{"password":"anything"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
