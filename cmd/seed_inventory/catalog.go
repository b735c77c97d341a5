package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clinica-api/internal/domain/entity"
)

// catalogItem es una fila del catálogo ya validada.
type catalogItem struct {
	Name            string
	Category        string
	Unit            string
	UnitCost        decimal.Decimal
	Stock           int64
	ReorderLevel    int64
	ReorderQuantity int64
	Supplier        string
	ExpiryDate      *time.Time
}

var requiredColumns = []string{"name", "category"}

// parseCatalog lee el CSV del catálogo. Las columnas se resuelven por nombre de cabecera;
// solo name y category son obligatorias.
func parseCatalog(r io.Reader) ([]catalogItem, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("catálogo vacío")
		}
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("falta la columna %q", c)
		}
	}

	var items []catalogItem
	seen := make(map[string]int)
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		it := catalogItem{
			Name:     field("name"),
			Category: strings.ToLower(field("category")),
			Unit:     field("unit"),
			Supplier: field("supplier"),
			UnitCost: decimal.Zero,
		}
		if it.Name == "" {
			continue
		}
		if !entity.ValidCategory(it.Category) {
			return nil, fmt.Errorf("línea %d: categoría inválida %q", line, it.Category)
		}
		key := strings.ToLower(it.Name)
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("línea %d: %q ya aparece en la línea %d", line, it.Name, prev)
		}
		seen[key] = line

		if v := field("unit_cost"); v != "" {
			d, err := decimal.NewFromString(v)
			if err != nil || d.IsNegative() {
				return nil, fmt.Errorf("línea %d: unit_cost inválido %q", line, v)
			}
			it.UnitCost = d
		}
		for name, dst := range map[string]*int64{
			"stock":            &it.Stock,
			"reorder_level":    &it.ReorderLevel,
			"reorder_quantity": &it.ReorderQuantity,
		} {
			v := field(name)
			if v == "" {
				continue
			}
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("línea %d: %s inválido %q", line, name, v)
			}
			*dst = n
		}
		if v := field("expiry_date"); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				return nil, fmt.Errorf("línea %d: expiry_date debe ser AAAA-MM-DD: %q", line, v)
			}
			it.ExpiryDate = &t
		}
		items = append(items, it)
	}
	return items, nil
}

// itemID es determinista por clínica y nombre: volver a ejecutar el script no duplica artículos.
func itemID(clinicID, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(clinicID+"/item/"+strings.ToLower(name))).String()
}

func initialTxID(clinicID, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(clinicID+"/initial/"+strings.ToLower(name))).String()
}

// writeSQL escribe los INSERT de inventory_items y, para cada artículo con stock,
// la transacción de entrada inicial que deja el libro cuadrado con current_stock.
func writeSQL(w io.Writer, clinicID string, items []catalogItem) error {
	var b strings.Builder
	b.WriteString("-- Catálogo inicial de inventario\n")
	fmt.Fprintf(&b, "-- Clínica: %s, %d artículos\n\n", clinicID, len(items))
	b.WriteString("BEGIN;\n\n")

	for _, it := range items {
		id := itemID(clinicID, it.Name)
		expiry := "NULL"
		if it.ExpiryDate != nil {
			expiry = "'" + it.ExpiryDate.Format("2006-01-02") + "'"
		}
		fmt.Fprintf(&b, "INSERT INTO inventory_items (id, clinic_id, name, category, current_stock, unit, unit_cost, reorder_level, reorder_quantity, supplier, expiry_date)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', %d, '%s', %s, %d, %d, '%s', %s)\n",
			id, escapeSQL(clinicID), escapeSQL(it.Name), it.Category, it.Stock, escapeSQL(it.Unit),
			it.UnitCost.StringFixed(2), it.ReorderLevel, it.ReorderQuantity, escapeSQL(it.Supplier), expiry)
		b.WriteString("ON CONFLICT (id) DO NOTHING;\n")

		if it.Stock > 0 {
			fmt.Fprintf(&b, "INSERT INTO inventory_transactions (id, clinic_id, inventory_item_id, type, quantity, balance, reason, reference_type)\n")
			fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', %d, %d, 'Carga inicial de catálogo', '%s')\n",
				initialTxID(clinicID, it.Name), escapeSQL(clinicID), id, entity.TransactionTypeAddition,
				it.Stock, it.Stock, entity.ReferenceTypePurchase)
			b.WriteString("ON CONFLICT (id) DO NOTHING;\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("COMMIT;\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
