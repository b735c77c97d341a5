package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clinica-api/internal/application/dto"
	"github.com/jhoicas/Clinica-api/internal/application/inventory"
	"github.com/jhoicas/Clinica-api/internal/application/state"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
)

const (
	reportTopServices = 5
	reportTopProducts = 5
	reportRecentTx    = 10
)

// ReportUseCase genera los reportes de un período [start_date, end_date] (ambos inclusive).
type ReportUseCase struct {
	cache *state.Cache
	now   func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(cache *state.Cache) *ReportUseCase {
	return &ReportUseCase{cache: cache, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// Financial reporta ingresos cobrados por día (pagos), lo facturado en medicamentos y servicios
// (tratamientos del período), el top 5 de servicios y los pacientes atendidos.
func (uc *ReportUseCase) Financial(ctx context.Context, clinicID string, req dto.ReportRequest) (*dto.FinancialReportDTO, error) {
	start, end, err := parsePeriod(req.StartDate, req.EndDate, uc.now())
	if err != nil {
		return nil, err
	}
	snap, err := uc.cache.Snapshot(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	dayList := days(start, end)
	byDay := make(map[string]decimal.Decimal, len(dayList))
	total := decimal.Zero
	for _, p := range snap.Payments {
		if p.Status != entity.PaymentCompleted || !within(p.PaymentDate, start, end) {
			continue
		}
		key := p.PaymentDate.Format(dto.DateLayout)
		byDay[key] = byDay[key].Add(p.Amount)
		total = total.Add(p.Amount)
	}
	daily := make([]dto.DailyRevenueDTO, 0, len(dayList))
	for _, d := range dayList {
		daily = append(daily, dto.DailyRevenueDTO{Date: d, Revenue: byDay[d]})
	}

	meds, services := decimal.Zero, decimal.Zero
	serviceTotals := make(map[string]*dto.ServiceRevenueDTO)
	active := make(map[string]struct{})
	for _, t := range snap.Treatments {
		if !within(t.Date, start, end) {
			continue
		}
		active[t.PatientID] = struct{}{}
		for _, m := range t.Medications {
			meds = meds.Add(m.TotalCost)
		}
		for _, s := range t.Services {
			services = services.Add(s.Cost)
			row, ok := serviceTotals[s.Name]
			if !ok {
				row = &dto.ServiceRevenueDTO{Name: s.Name, Revenue: decimal.Zero}
				serviceTotals[s.Name] = row
			}
			row.Count++
			row.Revenue = row.Revenue.Add(s.Cost)
		}
	}
	top := make([]dto.ServiceRevenueDTO, 0, len(serviceTotals))
	for _, s := range serviceTotals {
		top = append(top, *s)
	}
	sort.Slice(top, func(i, j int) bool {
		if !top[i].Revenue.Equal(top[j].Revenue) {
			return top[i].Revenue.GreaterThan(top[j].Revenue)
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > reportTopServices {
		top = top[:reportTopServices]
	}

	return &dto.FinancialReportDTO{
		Period:              period(start, end),
		DailyRevenue:        daily,
		TotalRevenue:        total.Round(2),
		AverageDailyRevenue: total.Div(decimal.NewFromInt(int64(len(dayList)))).Round(2),
		MedicationAmount:    meds.Round(2),
		ServicesAmount:      services.Round(2),
		TopServices:         top,
		ActivePatients:      len(active),
	}, nil
}

// Inventory reporta el valor actual por categoría, los medicamentos más recetados del período,
// las entradas/salidas por día y las últimas transacciones.
func (uc *ReportUseCase) Inventory(ctx context.Context, clinicID string, req dto.ReportRequest) (*dto.InventoryReportDTO, error) {
	start, end, err := parsePeriod(req.StartDate, req.EndDate, uc.now())
	if err != nil {
		return nil, err
	}
	snap, err := uc.cache.Snapshot(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]*dto.CategoryValueDTO)
	totalValue := decimal.Zero
	low := 0
	names := make(map[string]string, len(snap.Items))
	for _, it := range snap.Items {
		names[it.ID] = it.Name
		row, ok := byCategory[it.Category]
		if !ok {
			row = &dto.CategoryValueDTO{Category: it.Category, Value: decimal.Zero}
			byCategory[it.Category] = row
		}
		row.Items++
		row.Value = row.Value.Add(it.StockValue())
		totalValue = totalValue.Add(it.StockValue())
		if it.IsLowStock() {
			low++
		}
	}
	categories := make([]dto.CategoryValueDTO, 0, len(byCategory))
	for _, c := range []string{entity.CategoryMedication, entity.CategorySupply, entity.CategoryEquipment} {
		if row, ok := byCategory[c]; ok {
			row.Value = row.Value.Round(2)
			categories = append(categories, *row)
		}
	}

	usage := make(map[string]*dto.ProductUsageDTO)
	for _, t := range snap.Treatments {
		if !within(t.Date, start, end) {
			continue
		}
		for _, m := range t.Medications {
			row, ok := usage[m.InventoryItemID]
			if !ok {
				row = &dto.ProductUsageDTO{InventoryItemID: m.InventoryItemID, Name: m.Name}
				usage[m.InventoryItemID] = row
			}
			row.Quantity += m.Quantity
		}
	}
	top := make([]dto.ProductUsageDTO, 0, len(usage))
	for _, u := range usage {
		top = append(top, *u)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Quantity != top[j].Quantity {
			return top[i].Quantity > top[j].Quantity
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > reportTopProducts {
		top = top[:reportTopProducts]
	}

	dayList := days(start, end)
	moves := make(map[string]*dto.DailyMovementDTO, len(dayList))
	daily := make([]dto.DailyMovementDTO, len(dayList))
	for i, d := range dayList {
		daily[i].Date = d
		moves[d] = &daily[i]
	}
	recent := make([]dto.TransactionResponse, 0, reportRecentTx)
	for _, tx := range snap.Transactions {
		if len(recent) < reportRecentTx {
			recent = append(recent, *inventory.ToTransactionResponse(tx, names[tx.InventoryItemID]))
		}
		if !within(tx.CreatedAt, start, end) {
			continue
		}
		row := moves[tx.CreatedAt.Format(dto.DateLayout)]
		if row == nil {
			continue
		}
		switch tx.Type {
		case entity.TransactionTypeAddition:
			row.Additions += tx.Quantity
		case entity.TransactionTypeDeduction:
			row.Deductions += tx.Quantity
		}
	}

	return &dto.InventoryReportDTO{
		Period:             period(start, end),
		ValueByCategory:    categories,
		TopProducts:        top,
		DailyMovements:     daily,
		TotalItems:         len(snap.Items),
		LowStockItems:      low,
		TotalValue:         totalValue.Round(2),
		RecentTransactions: recent,
	}, nil
}

// ageRanges son los rangos de edad del reporte de pacientes.
var ageRanges = []struct {
	label    string
	min, max int
}{
	{"0-18", 0, 18},
	{"19-35", 19, 35},
	{"36-50", 36, 50},
	{"51-65", 51, 65},
	{"65+", 66, 1 << 30},
}

// Patients reporta la distribución por género y edad de todos los pacientes y las visitas
// nuevas/de retorno por día. Una visita es nueva si es el primer tratamiento del paciente.
func (uc *ReportUseCase) Patients(ctx context.Context, clinicID string, req dto.ReportRequest) (*dto.PatientReportDTO, error) {
	start, end, err := parsePeriod(req.StartDate, req.EndDate, uc.now())
	if err != nil {
		return nil, err
	}
	snap, err := uc.cache.Snapshot(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	genders := []dto.CountDTO{{Label: entity.GenderMale}, {Label: entity.GenderFemale}, {Label: entity.GenderOther}}
	ages := make([]dto.CountDTO, len(ageRanges))
	for i, r := range ageRanges {
		ages[i].Label = r.label
	}
	for _, p := range snap.Patients {
		switch p.Gender {
		case entity.GenderMale:
			genders[0].Count++
		case entity.GenderFemale:
			genders[1].Count++
		default:
			genders[2].Count++
		}
		for i, r := range ageRanges {
			if p.Age >= r.min && p.Age <= r.max {
				ages[i].Count++
				break
			}
		}
	}

	// Primer tratamiento de cada paciente sobre todo el historial
	ordered := append([]*entity.Treatment(nil), snap.Treatments...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })
	first := make(map[string]string, len(snap.Patients))
	for _, t := range ordered {
		if _, ok := first[t.PatientID]; !ok {
			first[t.PatientID] = t.ID
		}
	}

	dayList := days(start, end)
	visits := make([]dto.DailyVisitsDTO, len(dayList))
	byDay := make(map[string]*dto.DailyVisitsDTO, len(dayList))
	for i, d := range dayList {
		visits[i].Date = d
		byDay[d] = &visits[i]
	}
	active := make(map[string]struct{})
	for _, t := range ordered {
		if !within(t.Date, start, end) {
			continue
		}
		active[t.PatientID] = struct{}{}
		row := byDay[t.Date.Format(dto.DateLayout)]
		if row == nil {
			continue
		}
		if first[t.PatientID] == t.ID {
			row.New++
		} else {
			row.Return++
		}
	}

	return &dto.PatientReportDTO{
		Period:         period(start, end),
		Gender:         genders,
		AgeRanges:      ages,
		DailyVisits:    visits,
		TotalPatients:  len(snap.Patients),
		ActivePatients: len(active),
	}, nil
}
