package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Clinica-api/internal/application/dto"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/pkg/jwt"
)

// Locals keys para UserID, ClinicID y Role en Fiber.
const (
	LocalUserID   = "user_id"
	LocalClinicID = "clinic_id"
	LocalRole     = "role"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID, ClinicID y Role a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code := bearerToken(c.Get("Authorization"))
		if code != "" {
			return unauthorized(c, code, "se requiere Authorization: Bearer <token>")
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "token inválido o expirado")
		}
		// Toda consulta se filtra por clínica: sin clinic_id no hay nada que servir.
		if id.ClinicID == "" {
			return unauthorized(c, "MISSING_CLINIC", "el token no incluye clinic_id")
		}
		if id.Role != "" && !entity.ValidRole(id.Role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol desconocido: " + id.Role})
		}
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalClinicID, id.ClinicID)
		c.Locals(LocalRole, id.Role)
		return c.Next()
	}
}

// bearerToken extrae el token; code es MISSING_TOKEN o INVALID_TOKEN cuando el header no sirve.
func bearerToken(header string) (token, code string) {
	if strings.TrimSpace(header) == "" {
		return "", "MISSING_TOKEN"
	}
	scheme, rest, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", "INVALID_TOKEN"
	}
	token = strings.TrimSpace(rest)
	if token == "" {
		return "", "MISSING_TOKEN"
	}
	return token, ""
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// RequireRole autoriza solo a los roles indicados. Debe ir DESPUÉS de AuthMiddleware.
//   - 401 MISSING_ROLE si el token no trae el claim role.
//   - 403 FORBIDDEN si el rol no está permitido.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return unauthorized(c, "MISSING_ROLE", "el token no incluye rol")
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol '" + role + "' no tiene acceso a este recurso"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetClinicID devuelve el ClinicID del contexto (después del middleware de auth).
func GetClinicID(c *fiber.Ctx) string {
	return localString(c, LocalClinicID)
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
