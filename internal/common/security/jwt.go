package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"

	"smart_edu_quiz/internal/domain/model"
)

// CookieName is the cookie jwtauth.Verifier reads tokens from.
const CookieName = "jwt"

var (
	TokenAuth *jwtauth.JWTAuth
	tokenExp  time.Duration
)

func InitJWT(key []byte, exp time.Duration) {
	TokenAuth = jwtauth.New("HS256", key, nil)
	tokenExp = exp
}

func TokenTTL() time.Duration {
	return tokenExp
}

func GenerateToken(userID int64, role model.Role) (string, error) {
	claims := jwt.MapClaims{
		"user_id": strconv.FormatInt(userID, 10),
		"role":    string(role),
		"exp":     time.Now().Add(tokenExp).Unix(),
		"iat":     time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// Helper functions to extract claims, used by the auth middleware
func GetUserIDFromClaims(claims jwt.MapClaims) (int64, error) {
	raw, ok := claims["user_id"].(string)
	if !ok {
		return 0, errors.New("user_id claim is missing or not a string")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("user_id claim is not numeric")
	}
	return id, nil
}

func GetUserRoleFromClaims(claims jwt.MapClaims) (model.Role, error) {
	role, ok := claims["role"].(string)
	if !ok || !model.Role(role).Valid() {
		return "", errors.New("role claim is missing or invalid")
	}
	return model.Role(role), nil
}
