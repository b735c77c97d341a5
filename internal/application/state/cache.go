// Package state mantiene en memoria el estado de cada clínica (pacientes, inventario,
// tratamientos, pagos) para las lecturas derivadas: saldos, alertas, dashboard y reportes.
//
// Las escrituras siguen el patrón comando: el caso de uso confirma la escritura en el
// almacenamiento y solo entonces aplica el cambio aquí (Put*/Remove*/Append*). Un fallo
// de escritura nunca toca la caché.
package state

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Clinica-api/internal/domain"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

const maxLoadAttempts = 3

// Snapshot es una copia consistente del estado de una clínica. Transacciones y pagos van del más reciente al más antiguo.
type Snapshot struct {
	ClinicID     string
	Patients     []*entity.Patient
	Items        []*entity.InventoryItem
	Transactions []*entity.InventoryTransaction
	Treatments   []*entity.Treatment
	Payments     []*entity.Payment
	LoadedAt     time.Time
}

type clinicState struct {
	patients     map[string]*entity.Patient
	items        map[string]*entity.InventoryItem
	transactions []*entity.InventoryTransaction
	treatments   map[string]*entity.Treatment
	payments     []*entity.Payment
	loadedAt     time.Time
	stale        bool
}

// Cache guarda un clinicState por clínica, cargado en bloque bajo demanda y recargado tras el TTL.
type Cache struct {
	repos repository.Repos
	ttl   time.Duration
	log   zerolog.Logger
	now   func() time.Time

	mu       sync.RWMutex
	clinics  map[string]*clinicState
	versions map[string]uint64
}

// New construye la caché. ttl <= 0 desactiva la recarga periódica.
func New(repos repository.Repos, ttl time.Duration, log zerolog.Logger) *Cache {
	return &Cache{
		repos:    repos,
		ttl:      ttl,
		log:      log.With().Str("component", "state").Logger(),
		now:      time.Now,
		clinics:  make(map[string]*clinicState),
		versions: make(map[string]uint64),
	}
}

// WithClock reemplaza el reloj (tests).
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Snapshot devuelve una copia del estado de la clínica, cargándolo si no existe o expiró.
func (c *Cache) Snapshot(ctx context.Context, clinicID string) (*Snapshot, error) {
	c.mu.RLock()
	st, ok := c.clinics[clinicID]
	fresh := ok && !c.expired(st)
	var snap *Snapshot
	if fresh {
		snap = st.snapshot(clinicID)
	}
	c.mu.RUnlock()
	if fresh {
		return snap, nil
	}

	if err := c.load(ctx, clinicID); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clinics[clinicID].snapshot(clinicID), nil
}

// Invalidate descarta el estado de la clínica; la próxima lectura recarga.
func (c *Cache) Invalidate(clinicID string) {
	c.mu.Lock()
	delete(c.clinics, clinicID)
	c.versions[clinicID]++
	c.mu.Unlock()
}

func (c *Cache) expired(st *clinicState) bool {
	if st.stale {
		return true
	}
	return c.ttl > 0 && c.now().Sub(st.loadedAt) >= c.ttl
}

// load lee todo el estado de la clínica. Si una escritura se aplicó mientras se leía,
// se reintenta; tras maxLoadAttempts se instala marcado como stale.
func (c *Cache) load(ctx context.Context, clinicID string) error {
	for attempt := 1; ; attempt++ {
		c.mu.RLock()
		version := c.versions[clinicID]
		c.mu.RUnlock()

		st, err := c.read(ctx, clinicID)
		if err != nil {
			return err
		}

		c.mu.Lock()
		changed := c.versions[clinicID] != version
		if !changed || attempt >= maxLoadAttempts {
			st.stale = changed
			c.clinics[clinicID] = st
			c.mu.Unlock()
			c.log.Debug().Str("clinic_id", clinicID).
				Int("patients", len(st.patients)).
				Int("items", len(st.items)).
				Int("treatments", len(st.treatments)).
				Msg("estado cargado")
			return nil
		}
		c.mu.Unlock()
	}
}

func (c *Cache) read(ctx context.Context, clinicID string) (*clinicState, error) {
	patients, err := c.repos.Patients.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, domain.Backend("cargar pacientes", err)
	}
	items, err := c.repos.Items.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, domain.Backend("cargar inventario", err)
	}
	txs, err := c.repos.Transactions.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, domain.Backend("cargar transacciones", err)
	}
	treatments, err := c.repos.Treatments.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, domain.Backend("cargar tratamientos", err)
	}
	payments, err := c.repos.Payments.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, domain.Backend("cargar pagos", err)
	}

	st := &clinicState{
		patients:   make(map[string]*entity.Patient, len(patients)),
		items:      make(map[string]*entity.InventoryItem, len(items)),
		treatments: make(map[string]*entity.Treatment, len(treatments)),
		loadedAt:   c.now(),
	}
	for _, p := range patients {
		st.patients[p.ID] = copyPatient(p)
	}
	for _, it := range items {
		st.items[it.ID] = copyItem(it)
	}
	for _, t := range treatments {
		st.treatments[t.ID] = copyTreatment(t)
	}
	for _, tx := range txs {
		cp := *tx
		st.transactions = append(st.transactions, &cp)
	}
	for _, p := range payments {
		cp := *p
		st.payments = append(st.payments, &cp)
	}
	sortTransactions(st.transactions)
	sortPayments(st.payments)
	return st, nil
}

// mutate aplica fn al estado cargado de la clínica y marca la versión.
// Si la clínica no está cargada, solo se incrementa la versión: la próxima carga leerá del almacenamiento.
func (c *Cache) mutate(clinicID string, fn func(st *clinicState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[clinicID]++
	if st, ok := c.clinics[clinicID]; ok {
		fn(st)
	}
}

// PutPatient inserta o reemplaza un paciente confirmado.
func (c *Cache) PutPatient(p *entity.Patient) {
	c.mutate(p.ClinicID, func(st *clinicState) { st.patients[p.ID] = copyPatient(p) })
}

// RemovePatient quita un paciente eliminado.
func (c *Cache) RemovePatient(clinicID, id string) {
	c.mutate(clinicID, func(st *clinicState) { delete(st.patients, id) })
}

// PutItem inserta o reemplaza un artículo confirmado. Si el artículo ya está en caché se
// conserva su CurrentStock: el stock solo lo mueve AppendTransaction.
func (c *Cache) PutItem(it *entity.InventoryItem) {
	c.mutate(it.ClinicID, func(st *clinicState) {
		cp := copyItem(it)
		if prev, ok := st.items[it.ID]; ok {
			cp.CurrentStock = prev.CurrentStock
		}
		st.items[it.ID] = cp
	})
}

// RemoveItem quita un artículo y su historial.
func (c *Cache) RemoveItem(clinicID, id string) {
	c.mutate(clinicID, func(st *clinicState) {
		delete(st.items, id)
		kept := st.transactions[:0]
		for _, tx := range st.transactions {
			if tx.InventoryItemID != id {
				kept = append(kept, tx)
			}
		}
		st.transactions = kept
	})
}

// AppendTransaction agrega una transacción confirmada y sincroniza el stock del artículo con su saldo.
func (c *Cache) AppendTransaction(tx *entity.InventoryTransaction) {
	c.mutate(tx.ClinicID, func(st *clinicState) {
		cp := *tx
		st.transactions = append([]*entity.InventoryTransaction{&cp}, st.transactions...)
		sortTransactions(st.transactions)
		// El stock es el saldo de la transacción más reciente del artículo, aunque los
		// commits lleguen a la caché en otro orden.
		if it, ok := st.items[tx.InventoryItemID]; ok {
			for _, t := range st.transactions {
				if t.InventoryItemID == tx.InventoryItemID {
					it.CurrentStock = t.Balance
					break
				}
			}
		}
	})
}

// PutTreatment inserta o reemplaza un tratamiento confirmado. Una versión más antigua
// (UpdatedAt anterior a la cacheada) se ignora.
func (c *Cache) PutTreatment(t *entity.Treatment) {
	c.mutate(t.ClinicID, func(st *clinicState) {
		if prev, ok := st.treatments[t.ID]; ok && prev.UpdatedAt.After(t.UpdatedAt) {
			return
		}
		st.treatments[t.ID] = copyTreatment(t)
	})
}

// RemoveTreatment quita un tratamiento eliminado.
func (c *Cache) RemoveTreatment(clinicID, id string) {
	c.mutate(clinicID, func(st *clinicState) { delete(st.treatments, id) })
}

// AppendPayment agrega un pago confirmado.
func (c *Cache) AppendPayment(p *entity.Payment) {
	c.mutate(p.ClinicID, func(st *clinicState) {
		cp := *p
		st.payments = append([]*entity.Payment{&cp}, st.payments...)
		sortPayments(st.payments)
	})
}

func (st *clinicState) snapshot(clinicID string) *Snapshot {
	s := &Snapshot{
		ClinicID:     clinicID,
		Patients:     make([]*entity.Patient, 0, len(st.patients)),
		Items:        make([]*entity.InventoryItem, 0, len(st.items)),
		Transactions: make([]*entity.InventoryTransaction, 0, len(st.transactions)),
		Treatments:   make([]*entity.Treatment, 0, len(st.treatments)),
		Payments:     make([]*entity.Payment, 0, len(st.payments)),
		LoadedAt:     st.loadedAt,
	}
	for _, p := range st.patients {
		s.Patients = append(s.Patients, copyPatient(p))
	}
	for _, it := range st.items {
		s.Items = append(s.Items, copyItem(it))
	}
	for _, t := range st.treatments {
		s.Treatments = append(s.Treatments, copyTreatment(t))
	}
	for _, tx := range st.transactions {
		cp := *tx
		s.Transactions = append(s.Transactions, &cp)
	}
	for _, p := range st.payments {
		cp := *p
		s.Payments = append(s.Payments, &cp)
	}
	sort.Slice(s.Patients, func(i, j int) bool { return s.Patients[i].Name < s.Patients[j].Name })
	sort.Slice(s.Items, func(i, j int) bool { return s.Items[i].Name < s.Items[j].Name })
	sort.Slice(s.Treatments, func(i, j int) bool { return s.Treatments[i].Date.After(s.Treatments[j].Date) })
	return s
}

func sortTransactions(list []*entity.InventoryTransaction) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].NewerThan(list[j]) })
}

func sortPayments(list []*entity.Payment) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].PaymentDate.After(list[j].PaymentDate) })
}

func copyPatient(p *entity.Patient) *entity.Patient {
	cp := *p
	return &cp
}

func copyItem(it *entity.InventoryItem) *entity.InventoryItem {
	cp := *it
	if it.ExpiryDate != nil {
		d := *it.ExpiryDate
		cp.ExpiryDate = &d
	}
	return &cp
}

func copyTreatment(t *entity.Treatment) *entity.Treatment {
	cp := *t
	cp.Medications = append([]entity.TreatmentMedication(nil), t.Medications...)
	cp.Services = append([]entity.TreatmentService(nil), t.Services...)
	if t.DueDate != nil {
		d := *t.DueDate
		cp.DueDate = &d
	}
	return &cp
}
