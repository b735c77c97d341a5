// seed_inventory genera el script SQL que carga el catálogo inicial de inventario de una clínica
// a partir de un CSV (name, category, unit, unit_cost, stock, reorder_level, reorder_quantity,
// supplier, expiry_date).
//
// Uso: go run ./cmd/seed_inventory --clinic <id> [--latin1] [--out archivo.sql] catalogo.csv
// Sin --out el script se escribe en la salida estándar.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	var (
		clinicID string
		latin1   bool
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "seed_inventory <catalogo.csv>",
		Short: "Genera SQL con el catálogo inicial de inventario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if clinicID == "" {
				return fmt.Errorf("--clinic es obligatorio")
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("abrir CSV: %w", err)
			}
			defer f.Close()

			var r io.Reader = f
			// Exportaciones de hojas de cálculo en Windows suelen venir en ISO-8859-1
			if latin1 {
				r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
			}
			items, err := parseCatalog(r)
			if err != nil {
				return err
			}

			var w io.Writer = os.Stdout
			if outPath != "" {
				out, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("crear archivo: %w", err)
				}
				defer out.Close()
				w = out
			}
			if err := writeSQL(w, clinicID, items); err != nil {
				return fmt.Errorf("escribir SQL: %w", err)
			}
			if outPath != "" {
				fmt.Fprintf(os.Stderr, "Generado %s: %d artículos\n", outPath, len(items))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&clinicID, "clinic", "", "clinic_id propietario de los artículos")
	cmd.Flags().BoolVar(&latin1, "latin1", false, "el CSV está codificado en ISO-8859-1")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "archivo de salida (por defecto stdout)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
