package repository

// Repos agrupa los repositorios atados a una misma transacción (o al pool fuera de ella).
type Repos struct {
	Clinics      ClinicRepository
	Patients     PatientRepository
	Items        InventoryItemRepository
	Transactions InventoryTransactionRepository
	Treatments   TreatmentRepository
	Payments     PaymentRepository
}
