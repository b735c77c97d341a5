package analytics

import (
	"time"

	"github.com/jhoicas/Clinica-api/internal/application/dto"
	"github.com/jhoicas/Clinica-api/internal/domain"
)

// parsePeriod convierte los strings de fecha en time.Time; aplica valores por defecto si están vacíos.
// end es exclusivo: medianoche del día siguiente a end_date.
func parsePeriod(startStr, endStr string, now time.Time) (start, end time.Time, err error) {
	endDay, err := dto.ParseDate("end_date", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if endDay == nil {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDay = &today
	}
	end = endDay.AddDate(0, 0, 1)

	startDay, err := dto.ParseDate("start_date", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if startDay == nil {
		// Primer día del mes actual
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		startDay = &first
	}
	start = *startDay

	if !start.Before(end) {
		return time.Time{}, time.Time{}, domain.Validation("start_date no puede ser posterior a end_date")
	}
	if end.Sub(start) > maxPeriod {
		return time.Time{}, time.Time{}, domain.Validation("el período no puede superar 366 días")
	}
	return start, end, nil
}

const maxPeriod = 367 * 24 * time.Hour

func within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// days enumera cada día del período en formato YYYY-MM-DD.
func days(start, end time.Time) []string {
	var out []string
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(dto.DateLayout))
	}
	return out
}

func period(start, end time.Time) dto.PeriodDTO {
	return dto.PeriodDTO{
		StartDate: start.Format(dto.DateLayout),
		EndDate:   end.AddDate(0, 0, -1).Format(dto.DateLayout),
	}
}
