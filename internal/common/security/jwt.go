package security

import (
	"errors"
	"time"

	"tedumasters/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateToken mints a signed token for the given user. The jti claim
// identifies the token itself so logout can revoke it individually.
func GenerateToken(userID, username, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"role":     role,
		"jti":      uuid.NewString(),
		"exp":      now.Add(config.AppConfig.JWTExp).Unix(),
		"iat":      now.Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// Helper functions to extract claims, used by middleware and handlers.
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetUsernameFromClaims(claims jwt.MapClaims) (string, error) {
	username, ok := claims["username"].(string)
	if !ok {
		return "", errors.New("username claim is missing or not a string")
	}
	return username, nil
}

func GetUserRoleFromClaims(claims jwt.MapClaims) (string, error) {
	role, ok := claims["role"].(string)
	if !ok {
		return "", errors.New("role claim is missing or not a string")
	}
	return role, nil
}

func GetTokenIDFromClaims(claims jwt.MapClaims) (string, error) {
	jti, ok := claims["jti"].(string)
	if !ok {
		return "", errors.New("jti claim is missing or not a string")
	}
	return jti, nil
}

// GetExpiryFromClaims handles the representations the exp claim takes after a
// decode round-trip (time.Time from jwx, float64 or int64 from raw JSON).
func GetExpiryFromClaims(claims jwt.MapClaims) (time.Time, error) {
	switch exp := claims["exp"].(type) {
	case time.Time:
		return exp, nil
	case float64:
		return time.Unix(int64(exp), 0), nil
	case int64:
		return time.Unix(exp, 0), nil
	}
	return time.Time{}, errors.New("exp claim is missing or has an unexpected type")
}
