// utils/auth.go
package utils

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	GuestUser         = "Guest"
	SessionCookieName = "sid"
	ctxUserKey        = "user"
)

// Hash password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// Check password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateHash returns a random lowercase hex token of the given length.
func GenerateHash(length int) (string, error) {
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf)[:length], nil
}

// Generate JWT token
func GenerateToken(subject, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret not set")
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString([]byte(secret))
}

// ParseToken validates a session token and returns its subject.
func ParseToken(tokenString, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	if claims.Subject == "" {
		return "", errors.New("invalid token claims")
	}
	return claims.Subject, nil
}

// CredentialResolver maps presented credentials to a user email.
type CredentialResolver interface {
	ResolveAPIKey(ctx context.Context, key, secret string) (string, error)
	ResolveSession(token string) (string, error)
}

// Auth middleware. Requests may authenticate with "token <key>:<secret>",
// "Bearer <jwt>" or the session cookie. When allowGuest is set, requests
// without credentials run as Guest; presented but invalid credentials are
// always rejected.
func AuthMiddleware(resolver CredentialResolver, allowGuest bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, presented, err := resolveRequestUser(c, resolver)
		if presented && err != nil {
			RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if !presented {
			if !allowGuest {
				RespondWithError(c, http.StatusForbidden, "Not permitted")
				return
			}
			user = GuestUser
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

func resolveRequestUser(c *gin.Context, resolver CredentialResolver) (string, bool, error) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header != "" {
		scheme, value, _ := strings.Cut(header, " ")
		value = strings.TrimSpace(value)
		switch strings.ToLower(scheme) {
		case "token":
			key, secret, ok := strings.Cut(value, ":")
			if !ok {
				return "", true, errors.New("malformed token")
			}
			user, err := resolver.ResolveAPIKey(c.Request.Context(), key, secret)
			return user, true, err
		case "bearer":
			user, err := resolver.ResolveSession(value)
			return user, true, err
		default:
			return "", true, errors.New("unsupported authorization scheme")
		}
	}

	if sid, err := c.Cookie(SessionCookieName); err == nil && sid != "" {
		user, err := resolver.ResolveSession(sid)
		return user, true, err
	}
	return "", false, nil
}

// CurrentUser returns the authenticated user, or Guest.
func CurrentUser(c *gin.Context) string {
	if user := c.GetString(ctxUserKey); user != "" {
		return user
	}
	return GuestUser
}
