package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clinica-api/pkg/jwt"
)

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	token, err := jwt.Generate("secreto", "u-1", "c-1", "doctor", "clinica-api", 5)
	require.NoError(t, err)

	id, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, jwt.Identity{UserID: "u-1", ClinicID: "c-1", Role: "doctor"}, id)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", "u-1", "c-1", "admin", "clinica-api", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro", token)
	require.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secreto", "u-1", "c-1", "admin", "clinica-api", -1)
	require.NoError(t, err)

	_, err = jwt.Parse("secreto", token)
	require.Error(t, err)
}

func TestGenerate_SecretoVacio(t *testing.T) {
	_, err := jwt.Generate("", "u-1", "c-1", "admin", "clinica-api", 5)
	require.Error(t, err)

	_, err = jwt.Parse("", "x.y.z")
	require.Error(t, err)
}

// ── tokens del proveedor de autenticación ─────────────────────────────────────

func sign(t *testing.T, method gojwt.SigningMethod, claims gojwt.Claims) string {
	t.Helper()
	tok, err := gojwt.NewWithClaims(method, claims).SignedString([]byte("secreto"))
	require.NoError(t, err)
	return tok
}

func TestParse_UsaSubjectSinUserID(t *testing.T) {
	tok := sign(t, gojwt.SigningMethodHS256, gojwt.MapClaims{
		"sub":       "auth-42",
		"clinic_id": "c-9",
		"role":      "staff",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	id, err := jwt.Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, "auth-42", id.UserID)
	assert.Equal(t, "c-9", id.ClinicID)
	assert.Equal(t, "staff", id.Role)
}

func TestParse_ExigeExpiracion(t *testing.T) {
	tok := sign(t, gojwt.SigningMethodHS256, gojwt.MapClaims{"sub": "u-1", "clinic_id": "c-1"})
	_, err := jwt.Parse("secreto", tok)
	assert.Error(t, err)
}

func TestParse_RechazaOtroAlgoritmo(t *testing.T) {
	tok := sign(t, gojwt.SigningMethodHS512, gojwt.MapClaims{
		"sub": "u-1", "clinic_id": "c-1", "exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err := jwt.Parse("secreto", tok)
	assert.Error(t, err)
}
