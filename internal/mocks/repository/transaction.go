package repository

import (
	"context"

	"edrop/internal/domain/repository"
)

// StubTransactionManager runs the transactional closure directly against a
// fixed repository factory, without any real transaction. Tests assert the
// repository interactions instead.
type StubTransactionManager struct {
	Factory repository.RepositoryFactory

	// Err, when set, is returned without invoking the closure, simulating a
	// transaction that cannot even begin.
	Err error
}

func (m *StubTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	if m.Err != nil {
		return m.Err
	}

	return fn(m.Factory)
}

// StubRepositoryFactory hands out whichever mocks the test wired in.
type StubRepositoryFactory struct {
	PickupRepo      repository.PickupRepository
	ProfileRepo     repository.ProfileRepository
	InventoryRepo   repository.InventoryRepository
	LedgerRepo      repository.LedgerRepository
	CertificateRepo repository.CertificateRepository
}

func (f *StubRepositoryFactory) NewPickupRepository() repository.PickupRepository {
	return f.PickupRepo
}

func (f *StubRepositoryFactory) NewProfileRepository() repository.ProfileRepository {
	return f.ProfileRepo
}

func (f *StubRepositoryFactory) NewInventoryRepository() repository.InventoryRepository {
	return f.InventoryRepo
}

func (f *StubRepositoryFactory) NewLedgerRepository() repository.LedgerRepository {
	return f.LedgerRepo
}

func (f *StubRepositoryFactory) NewCertificateRepository() repository.CertificateRepository {
	return f.CertificateRepo
}
