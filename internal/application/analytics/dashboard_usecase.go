// Package analytics contiene los casos de uso del dashboard y de los reportes
// financiero, de inventario y de pacientes. Todo se deriva de la caché de estado.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clinica-api/internal/application/dto"
	"github.com/jhoicas/Clinica-api/internal/application/state"
	"github.com/jhoicas/Clinica-api/internal/domain/billing"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
)

const (
	dashboardRecent   = 5 // tratamientos recientes en el widget
	dashboardLowStock = 5 // artículos con stock bajo en el widget
	dashboardMonths   = 6 // meses de ingresos en la gráfica
)

// DashboardUseCase genera el resumen de la clínica.
type DashboardUseCase struct {
	cache *state.Cache
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(cache *state.Cache) *DashboardUseCase {
	return &DashboardUseCase{cache: cache, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO de la clínica.
//
// Sobre una misma foto del estado se calculan en paralelo:
//  1. Totales de pacientes, tratamientos y montos.
//  2. Ingresos cobrados de los últimos 6 meses.
//  3. Widgets de tratamientos recientes y stock bajo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, clinicID string) (*dto.DashboardSummaryDTO, error) {
	snap, err := uc.cache.Snapshot(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: estado de la clínica: %w", err)
	}
	now := uc.now()

	type totalsResult struct {
		revenue, collected, outstanding decimal.Decimal
		lowStock                        int
	}
	type widgetsResult struct {
		recent []dto.RecentTreatmentDTO
		low    []dto.LowStockItemDTO
	}

	totalsCh := make(chan totalsResult, 1)
	monthsCh := make(chan []dto.MonthlyRevenueDTO, 1)
	widgetsCh := make(chan widgetsResult, 1)

	go func() {
		low := 0
		for _, it := range snap.Items {
			if it.IsLowStock() {
				low++
			}
		}
		totalsCh <- totalsResult{
			revenue:     billing.TotalCost(snap.Treatments),
			collected:   billing.TotalPaid(snap.Treatments),
			outstanding: billing.TotalOwed(snap.Treatments),
			lowStock:    low,
		}
	}()
	go func() {
		monthsCh <- monthlyRevenue(snap.Payments, now, dashboardMonths)
	}()
	go func() {
		widgetsCh <- widgetsResult{
			recent: recentTreatments(snap, dashboardRecent),
			low:    lowStockItems(snap.Items, dashboardLowStock),
		}
	}()

	totals := <-totalsCh
	months := <-monthsCh
	widgets := <-widgetsCh

	return &dto.DashboardSummaryDTO{
		TotalPatients:    len(snap.Patients),
		TreatmentCount:   len(snap.Treatments),
		LowStockCount:    totals.lowStock,
		Revenue:          totals.revenue.Round(2),
		Collected:        totals.collected.Round(2),
		Outstanding:      totals.outstanding.Round(2),
		MonthlyRevenue:   months,
		RecentTreatments: widgets.recent,
		LowStockItems:    widgets.low,
		DateLabel:        monthLabel(now),
	}, nil
}

// monthlyRevenue agrupa los pagos completados por mes, del más antiguo al actual.
func monthlyRevenue(payments []*entity.Payment, now time.Time, months int) []dto.MonthlyRevenueDTO {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)
	out := make([]dto.MonthlyRevenueDTO, months)
	for i := range out {
		out[i] = dto.MonthlyRevenueDTO{Month: monthLabel(first.AddDate(0, i, 0)), Revenue: decimal.Zero}
	}
	for _, p := range payments {
		if p.Status != entity.PaymentCompleted || p.PaymentDate.Before(first) {
			continue
		}
		d := p.PaymentDate.In(now.Location())
		idx := (d.Year()-first.Year())*12 + int(d.Month()) - int(first.Month())
		if idx < 0 || idx >= months {
			continue
		}
		out[idx].Revenue = out[idx].Revenue.Add(p.Amount)
	}
	return out
}

func recentTreatments(snap *state.Snapshot, n int) []dto.RecentTreatmentDTO {
	names := make(map[string]string, len(snap.Patients))
	for _, p := range snap.Patients {
		names[p.ID] = p.Name
	}
	// snap.Treatments ya viene ordenado por fecha descendente
	out := make([]dto.RecentTreatmentDTO, 0, n)
	for _, t := range snap.Treatments {
		if len(out) == n {
			break
		}
		name, ok := names[t.PatientID]
		if !ok {
			name = "Paciente desconocido"
		}
		out = append(out, dto.RecentTreatmentDTO{
			ID:            t.ID,
			PatientID:     t.PatientID,
			PatientName:   name,
			Diagnosis:     t.Diagnosis,
			Date:          t.Date.Format(dto.DateLayout),
			TotalCost:     t.TotalCost,
			PaymentStatus: t.PaymentStatus,
		})
	}
	return out
}

func lowStockItems(items []*entity.InventoryItem, n int) []dto.LowStockItemDTO {
	low := make([]*entity.InventoryItem, 0)
	for _, it := range items {
		if it.IsLowStock() {
			low = append(low, it)
		}
	}
	// Los más críticos primero (menor stock)
	sort.SliceStable(low, func(i, j int) bool { return low[i].CurrentStock < low[j].CurrentStock })
	if len(low) > n {
		low = low[:n]
	}
	out := make([]dto.LowStockItemDTO, 0, len(low))
	for _, it := range low {
		out = append(out, dto.LowStockItemDTO{
			ID:           it.ID,
			Name:         it.Name,
			CurrentStock: it.CurrentStock,
			ReorderLevel: it.ReorderLevel,
			Unit:         it.Unit,
		})
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
