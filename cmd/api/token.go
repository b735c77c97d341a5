package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/pkg/config"
	"github.com/jhoicas/Clinica-api/pkg/jwt"
)

// tokenCmd emite un JWT de desarrollo; en producción los tokens vienen del proveedor de autenticación.
func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Genera un token JWT de desarrollo",
		RunE: func(cmd *cobra.Command, args []string) error {
			clinicID, _ := cmd.Flags().GetString("clinic")
			userID, _ := cmd.Flags().GetString("user")
			role, _ := cmd.Flags().GetString("role")

			if !entity.ValidRole(role) {
				return fmt.Errorf("rol inválido %q: use admin, doctor o staff", role)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.App.Env == "production" {
				return fmt.Errorf("token de desarrollo no disponible en production")
			}

			tok, err := jwt.Generate(cfg.JWT.Secret, userID, clinicID, role, cfg.JWT.Issuer, cfg.JWT.Expiration)
			if err != nil {
				return err
			}
			fmt.Println(tok)
			return nil
		},
	}
	cmd.Flags().String("clinic", "clinica-demo", "clinic_id del token")
	cmd.Flags().String("user", "usuario-demo", "user_id del token")
	cmd.Flags().String("role", entity.RoleAdmin, "admin | doctor | staff")
	return cmd
}
