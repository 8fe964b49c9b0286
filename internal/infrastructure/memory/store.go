// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y con STORAGE_DRIVER=memory; los datos se pierden al reiniciar.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/utility-backoffice-api/internal/application/auth"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
)

var _ auth.AuthTxRunner = (*Store)(nil)

// Store contiene todas las tablas. Los valores se guardan por copia para que
// los punteros devueltos no compartan estado con el almacén.
type Store struct {
	mu        sync.RWMutex
	users     map[string]entity.User
	tokens    map[string]entity.PasswordResetToken // clave: token
	requests  map[string]entity.AccountRequest
	consumers map[string]entity.Consumer
	plans     map[string]entity.TariffPlan
	slabs     map[string]entity.TariffSlab
	bills     map[string]entity.Bill
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:     make(map[string]entity.User),
		tokens:    make(map[string]entity.PasswordResetToken),
		requests:  make(map[string]entity.AccountRequest),
		consumers: make(map[string]entity.Consumer),
		plans:     make(map[string]entity.TariffPlan),
		slabs:     make(map[string]entity.TariffSlab),
		bills:     make(map[string]entity.Bill),
	}
}

// view es la base de cada repositorio. Dentro de una transacción el lock ya lo tiene RunAuth.
type view struct {
	s    *Store
	inTx bool
}

func (v view) read(fn func()) {
	if !v.inTx {
		v.s.mu.RLock()
		defer v.s.mu.RUnlock()
	}
	fn()
}

func (v view) write(fn func() error) error {
	if !v.inTx {
		v.s.mu.Lock()
		defer v.s.mu.Unlock()
	}
	return fn()
}

// Repositorios fuera de transacción.
func (s *Store) Users() *UserRepo                     { return &UserRepo{view{s: s}} }
func (s *Store) Tokens() *TokenRepo                   { return &TokenRepo{view{s: s}} }
func (s *Store) AccountRequests() *AccountRequestRepo { return &AccountRequestRepo{view{s: s}} }
func (s *Store) Consumers() *ConsumerRepo             { return &ConsumerRepo{view{s: s}} }
func (s *Store) TariffPlans() *TariffPlanRepo         { return &TariffPlanRepo{view{s: s}} }
func (s *Store) TariffSlabs() *TariffSlabRepo         { return &TariffSlabRepo{view{s: s}} }
func (s *Store) Bills() *BillRepo                     { return &BillRepo{view{s: s}} }
func (s *Store) BillingAnalytics() *AnalyticsRepo     { return &AnalyticsRepo{view{s: s}} }

// RunAuth ejecuta fn con el almacén bloqueado. Si fn falla se restauran las tablas de auth.
func (s *Store) RunAuth(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	tokenRepo repository.PasswordResetTokenRepository,
	requestRepo repository.AccountRequestRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	users := cloneMap(s.users)
	tokens := cloneMap(s.tokens)
	requests := cloneMap(s.requests)

	tx := view{s: s, inTx: true}
	if err := fn(&UserRepo{tx}, &TokenRepo{tx}, &AccountRequestRepo{tx}); err != nil {
		s.users, s.tokens, s.requests = users, tokens, requests
		return err
	}
	return nil
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
