package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clinica-api/internal/domain"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

var (
	_ repository.ClinicRepository               = (*ClinicRepo)(nil)
	_ repository.PatientRepository              = (*PatientRepo)(nil)
	_ repository.InventoryItemRepository        = (*InventoryItemRepo)(nil)
	_ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)
	_ repository.TreatmentRepository            = (*TreatmentRepo)(nil)
	_ repository.PaymentRepository              = (*PaymentRepo)(nil)
)

// ── Clinic ───────────────────────────────────────────────────────────────────

// ClinicRepo implementa ClinicRepository en memoria.
type ClinicRepo struct {
	a access
	s *Store
}

func (r *ClinicRepo) GetByID(_ context.Context, id string) (*entity.Clinic, error) {
	var out *entity.Clinic
	err := r.a.read(func(st *memoryState) error {
		if c, ok := st.clinics[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ClinicRepo) Upsert(_ context.Context, clinic *entity.Clinic) error {
	if err := r.s.injected("clinics.upsert"); err != nil {
		return err
	}
	return r.a.write(func(st *memoryState) error {
		st.clinics[clinic.ID] = *clinic
		return nil
	})
}

// ── Patient ──────────────────────────────────────────────────────────────────

// PatientRepo implementa PatientRepository en memoria.
type PatientRepo struct {
	a access
	s *Store
}

func (r *PatientRepo) Create(_ context.Context, p *entity.Patient) error {
	if err := r.s.injected("patients.create"); err != nil {
		return err
	}
	return r.a.write(func(st *memoryState) error {
		if _, ok := st.patients[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.patients[p.ID] = *p
		return nil
	})
}

func (r *PatientRepo) GetByID(_ context.Context, id string) (*entity.Patient, error) {
	var out *entity.Patient
	err := r.a.read(func(st *memoryState) error {
		if p, ok := st.patients[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *PatientRepo) Update(_ context.Context, p *entity.Patient) error {
	if err := r.s.injected("patients.update"); err != nil {
		return err
	}
	return r.a.write(func(st *memoryState) error {
		if _, ok := st.patients[p.ID]; !ok {
			return domain.ErrNotFound
		}
		st.patients[p.ID] = *p
		return nil
	})
}

func (r *PatientRepo) Delete(_ context.Context, id string) error {
	if err := r.s.injected("patients.delete"); err != nil {
		return err
	}
	return r.a.write(func(st *memoryState) error {
		delete(st.patients, id)
		return nil
	})
}

func (r *PatientRepo) ListByClinic(_ context.Context, clinicID string) ([]*entity.Patient, error) {
	if err := r.s.injected("patients.list"); err != nil {
		return nil, err
	}
	var list []*entity.Patient
	err := r.a.read(func(st *memoryState) error {
		for _, p := range st.patients {
			if p.ClinicID == clinicID {
				cp := p
				list = append(list, &cp)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, err
}

// ── InventoryItem ────────────────────────────────────────────────────────────

// InventoryItemRepo implementa InventoryItemRepository en memoria.
type InventoryItemRepo struct {
	a access
	s *Store
}

func (r *InventoryItemRepo) Create(_ context.Context, it *entity.InventoryItem) error {
	if err := r.s.injected("items.create"); err != nil {
		return err
	}
	return r.a.write(func(st *memoryState) error {
		if _, ok := st.items[it.ID]; ok {
			return domain.ErrDuplicate
		}
		st.items[it.ID] = *it
		return nil
	})
}

func (r *InventoryItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	err := r.a.read(func(st *memoryState) error {
		if it, ok := st.items[id]; ok {
			out = &it
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: dentro de Run el lock exclusivo ya está tomado.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *InventoryItemRepo) Update(_ context.Context, it *entity.InventoryItem) error {
	if err := r.s.injected("items.update"); err != nil {
		return err
	}
	return r.a.write(func(st *memoryState) error {
		cur, ok := st.items[it.ID]
		if !ok {
			return domain.ErrNotFound
		}
		upd := *it
		upd.CurrentStock = cur.CurrentStock
		upd.CreatedAt = cur.CreatedAt
		st.items[it.ID] = upd
		return nil
	})
}

func (r *InventoryItemRepo) UpdateStock(_ context.Context, id string, stock int64) error {
	if err := r.s.injected("items.update_stock"); err != nil {
		return err
	}
	return r.a.write(func(st *memoryState) error {
		cur, ok := st.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		cur.CurrentStock = stock
		st.items[id] = cur
		return nil
	})
}

func (r *InventoryItemRepo) Delete(_ context.Context, id string) error {
	if err := r.s.injected("items.delete"); err != nil {
		return err
	}
	return r.a.write(func(st *memoryState) error {
		delete(st.items, id)
		return nil
	})
}

func (r *InventoryItemRepo) ListByClinic(_ context.Context, clinicID string) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	err := r.a.read(func(st *memoryState) error {
		for _, it := range st.items {
			if it.ClinicID == clinicID {
				cp := it
				list = append(list, &cp)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, err
}

// ── InventoryTransaction ─────────────────────────────────────────────────────

// InventoryTransactionRepo implementa el libro de inventario en memoria.
type InventoryTransactionRepo struct {
	a access
	s *Store
}

func (r *InventoryTransactionRepo) Create(_ context.Context, tx *entity.InventoryTransaction) error {
	if err := r.s.injected("transactions.create"); err != nil {
		return err
	}
	return r.a.write(func(st *memoryState) error {
		st.txSeq++
		tx.Seq = st.txSeq
		st.transactions = append(st.transactions, *tx)
		return nil
	})
}

func (r *InventoryTransactionRepo) ListByItem(_ context.Context, itemID string) ([]*entity.InventoryTransaction, error) {
	return r.list(func(tx entity.InventoryTransaction) bool { return tx.InventoryItemID == itemID })
}

func (r *InventoryTransactionRepo) ListByClinic(_ context.Context, clinicID string) ([]*entity.InventoryTransaction, error) {
	return r.list(func(tx entity.InventoryTransaction) bool { return tx.ClinicID == clinicID })
}

// list devuelve las coincidencias del más reciente al más antiguo (a igual fecha, mayor Seq primero).
func (r *InventoryTransactionRepo) list(match func(entity.InventoryTransaction) bool) ([]*entity.InventoryTransaction, error) {
	var list []*entity.InventoryTransaction
	err := r.a.read(func(st *memoryState) error {
		for i := len(st.transactions) - 1; i >= 0; i-- {
			if match(st.transactions[i]) {
				cp := st.transactions[i]
				list = append(list, &cp)
			}
		}
		return nil
	})
	sort.SliceStable(list, func(i, j int) bool { return list[i].NewerThan(list[j]) })
	return list, err
}

func (r *InventoryTransactionRepo) DeleteByItem(_ context.Context, itemID string) error {
	return r.a.write(func(st *memoryState) error {
		kept := st.transactions[:0:0]
		for _, tx := range st.transactions {
			if tx.InventoryItemID != itemID {
				kept = append(kept, tx)
			}
		}
		st.transactions = kept
		return nil
	})
}

// ── Treatment ────────────────────────────────────────────────────────────────

// TreatmentRepo implementa TreatmentRepository en memoria.
type TreatmentRepo struct {
	a access
	s *Store
}

func copyTreatment(t entity.Treatment) *entity.Treatment {
	t.Medications = append([]entity.TreatmentMedication(nil), t.Medications...)
	t.Services = append([]entity.TreatmentService(nil), t.Services...)
	return &t
}

func (r *TreatmentRepo) Create(_ context.Context, t *entity.Treatment) error {
	if err := r.s.injected("treatments.create"); err != nil {
		return err
	}
	return r.a.write(func(st *memoryState) error {
		if _, ok := st.treatments[t.ID]; ok {
			return domain.ErrDuplicate
		}
		st.treatments[t.ID] = *copyTreatment(*t)
		return nil
	})
}

func (r *TreatmentRepo) GetByID(_ context.Context, id string) (*entity.Treatment, error) {
	var out *entity.Treatment
	err := r.a.read(func(st *memoryState) error {
		if t, ok := st.treatments[id]; ok {
			out = copyTreatment(t)
		}
		return nil
	})
	return out, err
}

func (r *TreatmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Treatment, error) {
	return r.GetByID(ctx, id)
}

func (r *TreatmentRepo) Update(_ context.Context, t *entity.Treatment) error {
	if err := r.s.injected("treatments.update"); err != nil {
		return err
	}
	return r.a.write(func(st *memoryState) error {
		cur, ok := st.treatments[t.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Diagnosis = t.Diagnosis
		cur.Notes = t.Notes
		cur.Date = t.Date
		cur.DueDate = t.DueDate
		cur.UpdatedAt = t.UpdatedAt
		st.treatments[t.ID] = cur
		return nil
	})
}

func (r *TreatmentRepo) UpdatePayment(_ context.Context, id string, amountPaid decimal.Decimal, status string) error {
	if err := r.s.injected("treatments.update_payment"); err != nil {
		return err
	}
	return r.a.write(func(st *memoryState) error {
		cur, ok := st.treatments[id]
		if !ok {
			return domain.ErrNotFound
		}
		cur.AmountPaid = amountPaid
		cur.PaymentStatus = status
		st.treatments[id] = cur
		return nil
	})
}

func (r *TreatmentRepo) Delete(_ context.Context, id string) error {
	if err := r.s.injected("treatments.delete"); err != nil {
		return err
	}
	return r.a.write(func(st *memoryState) error {
		delete(st.treatments, id)
		return nil
	})
}

func (r *TreatmentRepo) ListByPatient(_ context.Context, patientID string) ([]*entity.Treatment, error) {
	return r.list(func(t entity.Treatment) bool { return t.PatientID == patientID })
}

func (r *TreatmentRepo) ListByClinic(_ context.Context, clinicID string) ([]*entity.Treatment, error) {
	return r.list(func(t entity.Treatment) bool { return t.ClinicID == clinicID })
}

func (r *TreatmentRepo) list(match func(entity.Treatment) bool) ([]*entity.Treatment, error) {
	var list []*entity.Treatment
	err := r.a.read(func(st *memoryState) error {
		for _, t := range st.treatments {
			if match(t) {
				list = append(list, copyTreatment(t))
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return list, err
}

// ── Payment ──────────────────────────────────────────────────────────────────

// PaymentRepo implementa PaymentRepository en memoria.
type PaymentRepo struct {
	a access
	s *Store
}

func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	if err := r.s.injected("payments.create"); err != nil {
		return err
	}
	return r.a.write(func(st *memoryState) error {
		st.payments = append(st.payments, *p)
		return nil
	})
}

func (r *PaymentRepo) ListByTreatment(_ context.Context, treatmentID string) ([]*entity.Payment, error) {
	return r.list(func(p entity.Payment) bool { return p.TreatmentID == treatmentID })
}

func (r *PaymentRepo) ListByClinic(_ context.Context, clinicID string) ([]*entity.Payment, error) {
	return r.list(func(p entity.Payment) bool { return p.ClinicID == clinicID })
}

func (r *PaymentRepo) list(match func(entity.Payment) bool) ([]*entity.Payment, error) {
	var list []*entity.Payment
	err := r.a.read(func(st *memoryState) error {
		for i := len(st.payments) - 1; i >= 0; i-- {
			if match(st.payments[i]) {
				cp := st.payments[i]
				list = append(list, &cp)
			}
		}
		return nil
	})
	sort.SliceStable(list, func(i, j int) bool { return list[i].PaymentDate.After(list[j].PaymentDate) })
	return list, err
}
