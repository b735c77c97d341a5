// Package memory implementa todos los puertos de persistencia en memoria, con
// transacciones copy-on-begin. Se usa con STORE_DRIVER=memory y en los tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

type memoryState struct {
	clinics      map[string]entity.Clinic
	patients     map[string]entity.Patient
	items        map[string]entity.InventoryItem
	transactions []entity.InventoryTransaction
	treatments   map[string]entity.Treatment
	payments     []entity.Payment
	txSeq        int64
}

func newMemoryState() *memoryState {
	return &memoryState{
		clinics:    map[string]entity.Clinic{},
		patients:   map[string]entity.Patient{},
		items:      map[string]entity.InventoryItem{},
		treatments: map[string]entity.Treatment{},
	}
}

func (s *memoryState) clone() *memoryState {
	c := &memoryState{
		clinics:      make(map[string]entity.Clinic, len(s.clinics)),
		patients:     make(map[string]entity.Patient, len(s.patients)),
		items:        make(map[string]entity.InventoryItem, len(s.items)),
		transactions: append([]entity.InventoryTransaction(nil), s.transactions...),
		treatments:   make(map[string]entity.Treatment, len(s.treatments)),
		payments:     append([]entity.Payment(nil), s.payments...),
		txSeq:        s.txSeq,
	}
	for k, v := range s.clinics {
		c.clinics[k] = v
	}
	for k, v := range s.patients {
		c.patients[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.treatments {
		c.treatments[k] = v
	}
	return c
}

// Store es el almacenamiento en memoria. Run serializa las transacciones; las
// lecturas fuera de una transacción ven siempre el último estado confirmado.
type Store struct {
	mu    sync.RWMutex
	state *memoryState

	failMu   sync.Mutex
	failures map[string]error
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{state: newMemoryState(), failures: map[string]error{}}
}

// FailOn hace que la próxima operación op (ej. "payments.create", "patients.list", "commit") falle con err.
// Pensado para simular fallos del backend en tests.
func (s *Store) FailOn(op string, err error) {
	s.failMu.Lock()
	s.failures[op] = err
	s.failMu.Unlock()
}

func (s *Store) injected(op string) error {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	if err, ok := s.failures[op]; ok {
		delete(s.failures, op)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Repos devuelve los repositorios sobre el estado confirmado (fuera de transacción).
func (s *Store) Repos() repository.Repos {
	return s.bind(access{mu: &s.mu, state: func() *memoryState { return s.state }})
}

// Run ejecuta fn sobre una copia del estado; si fn no falla, la copia reemplaza al estado (commit).
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(s.bind(access{state: func() *memoryState { return work }})); err != nil {
		return err
	}
	if err := s.injected("commit"); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *Store) bind(a access) repository.Repos {
	return repository.Repos{
		Clinics:      &ClinicRepo{a: a, s: s},
		Patients:     &PatientRepo{a: a, s: s},
		Items:        &InventoryItemRepo{a: a, s: s},
		Transactions: &InventoryTransactionRepo{a: a, s: s},
		Treatments:   &TreatmentRepo{a: a, s: s},
		Payments:     &PaymentRepo{a: a, s: s},
	}
}

// access resuelve el estado sobre el que opera un repositorio. mu es nil dentro de
// una transacción (Run ya tiene el lock exclusivo).
type access struct {
	mu    *sync.RWMutex
	state func() *memoryState
}

func (a access) read(fn func(st *memoryState) error) error {
	if a.mu != nil {
		a.mu.RLock()
		defer a.mu.RUnlock()
	}
	return fn(a.state())
}

func (a access) write(fn func(st *memoryState) error) error {
	if a.mu != nil {
		a.mu.Lock()
		defer a.mu.Unlock()
	}
	return fn(a.state())
}
