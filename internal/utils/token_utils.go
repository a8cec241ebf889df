package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT generates a new JWT token with the given parameters.
func GenerateJWT(userID string, secret string, expiryDuration time.Duration, issuer string, audience string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(expiryDuration)
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		Audience:  jwt.ClaimStrings{audience},
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	signed, err := SignClaims(claims, secret)
	return signed, expiresAt, err
}

// SignClaims signs arbitrary claims with HS256.
func SignClaims(claims jwt.Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseClaims parses tokenString into claims, validating signature, expiry and audience.
func ParseClaims(tokenString string, secretKey string, audience string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return err // expired, signature invalid, wrong audience, ...
	}
	if !token.Valid {
		return jwt.ErrTokenSignatureInvalid
	}
	return nil
}

// ParseAndValidateJWT parses a session-style token and returns its registered claims.
func ParseAndValidateJWT(tokenString string, secretKey string, audience string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	if err := ParseClaims(tokenString, secretKey, audience, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
