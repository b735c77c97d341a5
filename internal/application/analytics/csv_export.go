package analytics

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/jhoicas/Clinica-api/internal/application/dto"
)

// FinancialCSV exporta el reporte financiero: una fila por día y las filas de totales al final.
// Devuelve (contenido, nombre de archivo, error).
func (uc *ReportUseCase) FinancialCSV(ctx context.Context, clinicID string, req dto.ReportRequest) ([]byte, string, error) {
	rep, err := uc.Financial(ctx, clinicID, req)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	rows := [][]string{{"fecha", "ingresos"}}
	for _, d := range rep.DailyRevenue {
		rows = append(rows, []string{d.Date, d.Revenue.StringFixed(2)})
	}
	rows = append(rows,
		[]string{},
		[]string{"total_ingresos", rep.TotalRevenue.StringFixed(2)},
		[]string{"promedio_diario", rep.AverageDailyRevenue.StringFixed(2)},
		[]string{"medicamentos", rep.MedicationAmount.StringFixed(2)},
		[]string{"servicios", rep.ServicesAmount.StringFixed(2)},
		[]string{"pacientes_activos", fmt.Sprint(rep.ActivePatients)},
	)
	if err := w.WriteAll(rows); err != nil {
		return nil, "", fmt.Errorf("reporte csv: %w", err)
	}

	filename := fmt.Sprintf("reporte_financiero_%s_%s.csv", rep.Period.StartDate, rep.Period.EndDate)
	return buf.Bytes(), filename, nil
}
