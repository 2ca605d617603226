// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y con DB_DRIVER=memory para levantar la API sin PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/ledger-api/internal/application/billing"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// Store guarda todas las entidades bajo un único RWMutex.
type Store struct {
	mu sync.RWMutex

	companies    map[string]*entity.Company
	users        map[string]*entity.User
	parties      map[string]*entity.Party
	documents    map[string]*entity.Document
	lines        map[string][]*entity.DocumentLine // por documento
	accountHeads map[string]*entity.AccountHead
	expenses     map[string]*entity.Expense
	bankAccounts map[string]*entity.BankAccount

	txMu sync.Mutex // serializa RunDocument
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		companies:    make(map[string]*entity.Company),
		users:        make(map[string]*entity.User),
		parties:      make(map[string]*entity.Party),
		documents:    make(map[string]*entity.Document),
		lines:        make(map[string][]*entity.DocumentLine),
		accountHeads: make(map[string]*entity.AccountHead),
		expenses:     make(map[string]*entity.Expense),
		bankAccounts: make(map[string]*entity.BankAccount),
	}
}

// Repositorios sobre el mismo store.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s} }
func (s *Store) Users() *UserRepo { return &UserRepo{s} }
func (s *Store) Parties() *PartyRepo { return &PartyRepo{s} }
func (s *Store) Documents() *DocumentRepo { return &DocumentRepo{s} }
func (s *Store) AccountHeads() *AccountHeadRepo { return &AccountHeadRepo{s} }
func (s *Store) Expenses() *ExpenseRepo { return &ExpenseRepo{s} }
func (s *Store) BankAccounts() *BankAccountRepo { return &BankAccountRepo{s} }
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s} }

var _ billing.DocumentTxRunner = (*TxRunner)(nil)

// TxRunner emula una transacción: si fn falla, documentos y líneas vuelven a su estado previo.
// Escrituras concurrentes fuera de RunDocument sobre documentos pueden perderse en un rollback.
type TxRunner struct {
	s *Store
}

// RunDocument ejecuta fn con el repositorio de documentos y restaura el snapshot si retorna error.
func (r *TxRunner) RunDocument(ctx context.Context, fn func(docRepo repository.DocumentRepository) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.RLock()
	docs := make(map[string]*entity.Document, len(r.s.documents))
	for k, v := range r.s.documents {
		docs[k] = v
	}
	lines := make(map[string][]*entity.DocumentLine, len(r.s.lines))
	for k, v := range r.s.lines {
		lines[k] = v
	}
	r.s.mu.RUnlock()

	if err := fn(r.s.Documents()); err != nil {
		r.s.mu.Lock()
		r.s.documents, r.s.lines = docs, lines
		r.s.mu.Unlock()
		return err
	}
	return nil
}
