// @title           Clínica API
// @version         1.0
// @description     Pacientes, tratamientos, inventario, pagos y reportes de una clínica.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
package main

import (
	"os"

	"github.com/spf13/cobra"

	_ "github.com/jhoicas/Clinica-api/docs"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinica-api",
		Short: "API de gestión de la clínica",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
