package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity es lo que la API necesita saber del usuario autenticado.
type Identity struct {
	UserID   string
	ClinicID string
	Role     string // admin | doctor | staff
}

// Claims del token emitido por el proveedor de autenticación (HS256 con secreto compartido).
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id,omitempty"`
	ClinicID string `json:"clinic_id"`
	Role     string `json:"role"`
}

var errEmptySecret = errors.New("jwt: secret vacío")

// Generate firma un token para userID en clinicID. Lo usa el comando de desarrollo y los tests.
func Generate(secret, userID, clinicID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", errEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:   userID,
		ClinicID: clinicID,
		Role:     role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma (solo HS256) y expiración obligatoria. Si el token no trae user_id,
// el usuario es el subject estándar.
func Parse(secret, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, errEmptySecret
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("jwt: %w", err)
	}

	id := Identity{UserID: claims.UserID, ClinicID: claims.ClinicID, Role: claims.Role}
	if id.UserID == "" {
		id.UserID = claims.Subject
	}
	return id, nil
}
