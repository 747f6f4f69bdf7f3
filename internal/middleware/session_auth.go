package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"giraffe_quality_v2_202509/internal/model"
)

// ==================== 会话配置 ====================

// SessionCookieName 会话 cookie 名
const SessionCookieName = "gq_session"

// SessionConfig 会话令牌配置
type SessionConfig struct {
	SecretKey  string        // 签名密钥
	SessionTTL time.Duration // 会话有效期
	Issuer     string        // 签发者
}

// DefaultSessionConfig 默认配置
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		SecretKey:  "giraffe-quality-session-secret",
		SessionTTL: 12 * time.Hour,
		Issuer:     "giraffe-quality",
	}
}

// 全局配置
var sessionConfig = DefaultSessionConfig()

// SetSessionConfig 设置会话配置
func SetSessionConfig(cfg *SessionConfig) {
	sessionConfig = cfg
}

// ==================== Claims 定义 ====================

// SessionClaims 会话声明：SessionContext 的令牌形式。
// 每次状态变更（选角色/退出/管理员登录）都重新签发整个令牌，
// 令牌里的两个门彼此独立
type SessionClaims struct {
	Role          string `json:"role"`
	Branch        string `json:"branch,omitempty"`
	AdminLoggedIn bool   `json:"admin_logged_in"`
	jwt.RegisteredClaims
}

// ==================== 令牌签发/解析 ====================

// GenerateSessionToken 把会话上下文签成令牌
func GenerateSessionToken(sess model.SessionContext) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Role:          sess.Role,
		Branch:        sess.Branch,
		AdminLoggedIn: sess.AdminLoggedIn,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionConfig.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionConfig.SessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(sessionConfig.SecretKey))
}

// ParseSessionToken 解析令牌还原会话上下文
func ParseSessionToken(tokenStr string) (model.SessionContext, error) {
	var sess model.SessionContext

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("非预期的签名算法")
		}
		return []byte(sessionConfig.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return sess, errors.New("会话令牌无效")
	}

	sess.Role = claims.Role
	sess.Branch = claims.Branch
	sess.AdminLoggedIn = claims.AdminLoggedIn
	return sess, nil
}

// ==================== 中间件 ====================

const sessionContextKey = "sessionContext"

// SessionMiddleware 从 cookie 还原会话上下文放进请求 context。
// 没有 cookie 或令牌失效时放入零值会话（两个门都未通过），不拦截
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess model.SessionContext
		if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
			if parsed, err := ParseSessionToken(cookie); err == nil {
				sess = parsed
			}
		}
		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// GetSession 取出当前请求的会话上下文
func GetSession(c *gin.Context) model.SessionContext {
	if v, ok := c.Get(sessionContextKey); ok {
		if sess, ok := v.(model.SessionContext); ok {
			return sess
		}
	}
	return model.SessionContext{}
}

// WriteSession 签发新令牌写回 cookie（状态变更后调用）
func WriteSession(c *gin.Context, sess model.SessionContext) error {
	token, err := GenerateSessionToken(sess)
	if err != nil {
		return err
	}
	c.SetCookie(SessionCookieName, token, int(sessionConfig.SessionTTL.Seconds()), "/", "", false, true)
	c.Set(sessionContextKey, sess)
	return nil
}

// RequireRole 角色门：未选择 branch/meta 的会话一律拦截
func RequireRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetSession(c).HasRole() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "请先选择工作模式（分店或总部）"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin 管理员门：与角色门相互独立
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetSession(c).AdminLoggedIn {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "需要管理员登录"})
			c.Abort()
			return
		}
		c.Next()
	}
}
