package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"fintrack/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// SessionCookieName carries the signed session token.
const SessionCookieName = "auth_token"

const authChallenge = `Basic realm="Finance Tracker"`

var (
	jwtSecret []byte
	authCfg   *config.AuthConfig
)

// InitAuth must be called once at startup before the gate is used.
func InitAuth(cfg *config.Config) {
	jwtSecret = []byte(cfg.Auth.Secret)
	authCfg = &cfg.Auth
}

// SessionClaims is the session token payload. There is no per-user
// identity; a valid signature is the whole session.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a session token valid for ttl.
func GenerateSessionToken(ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "session",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseSessionToken validates a session token and returns its claims.
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// CheckPassword compares a candidate against the configured shared secret.
// The secret may be stored as a bcrypt hash; otherwise the comparison is
// constant time.
func CheckPassword(password string) bool {
	if authCfg == nil || authCfg.Password == "" {
		return false
	}
	if strings.HasPrefix(authCfg.Password, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(authCfg.Password), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(authCfg.Password), []byte(password)) == 1
}

// AuthRequired gates a route group behind the shared secret: a valid
// session cookie or HTTP Basic credentials. Anything else gets a
// plain-text 401 with the browser login challenge.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
			if _, err := ParseSessionToken(token); err == nil {
				c.Next()
				return
			}
		}

		if user, pass, ok := c.Request.BasicAuth(); ok && authCfg != nil {
			userOK := subtle.ConstantTimeCompare([]byte(user), []byte(authCfg.Username)) == 1
			if userOK && CheckPassword(pass) {
				c.Next()
				return
			}
		}

		c.Header("WWW-Authenticate", authChallenge)
		c.String(http.StatusUnauthorized, "Access Denied: Please log in.")
		c.Abort()
	}
}
