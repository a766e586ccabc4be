// Package accounting contains the per-user accounting session container.
//
// Each signed-in user gets one session holding their categories and
// transactions. Sessions move from Loading to Ready once the initial
// fetch settles; mutations keep the session and the store in step.
package accounting

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
)

// DefaultLoadTimeout bounds a single session load so a hung store call
// cannot pin a session in the loading state.
const DefaultLoadTimeout = 15 * time.Second

// session is the per-user accounting state. Guarded by Aggregator.mu.
type session struct {
	// gen increments on every full load; a finished load applies its
	// result only while the generation it started under is still current.
	gen          uint64
	loading      bool
	categories   []*entity.Category
	transactions []*entity.TransactionWithCategory
}

// Aggregator owns all accounting sessions. It is the only writer of
// session state; callers read through Snapshot copies.
type Aggregator struct {
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
	logger          *slog.Logger
	loadTimeout     time.Duration

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
	logger *slog.Logger,
	loadTimeout time.Duration,
) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if loadTimeout <= 0 {
		loadTimeout = DefaultLoadTimeout
	}
	return &Aggregator{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		logger:          logger,
		loadTimeout:     loadTimeout,
		sessions:        make(map[uuid.UUID]*session),
	}
}

// Activate ensures a session exists for the user, loading its data on
// first access. Activating an already-active user is a no-op.
func (a *Aggregator) Activate(ctx context.Context, userID uuid.UUID) {
	a.mu.Lock()
	if _, ok := a.sessions[userID]; ok {
		a.mu.Unlock()
		return
	}
	s := &session{gen: 1, loading: true}
	a.sessions[userID] = s
	gen := s.gen
	a.mu.Unlock()

	a.load(ctx, userID, gen)
}

// Deactivate discards the user's session. An in-flight load for the
// departed user finds no session and throws its result away.
func (a *Aggregator) Deactivate(userID uuid.UUID) {
	a.mu.Lock()
	delete(a.sessions, userID)
	a.mu.Unlock()
}

// RefreshData reloads the user's categories and transactions from the
// store, activating the session first if needed.
func (a *Aggregator) RefreshData(ctx context.Context, userID uuid.UUID) {
	a.mu.Lock()
	s, ok := a.sessions[userID]
	if !ok {
		s = &session{}
		a.sessions[userID] = s
	}
	s.gen++
	s.loading = true
	gen := s.gen
	a.mu.Unlock()

	a.load(ctx, userID, gen)
}

// Snapshot returns a copy of the user's accounting state, activating
// the session on first access. The returned slices are the caller's own.
func (a *Aggregator) Snapshot(ctx context.Context, userID uuid.UUID) *entity.Snapshot {
	a.mu.RLock()
	_, ok := a.sessions[userID]
	a.mu.RUnlock()
	if !ok {
		a.Activate(ctx, userID)
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	s, ok := a.sessions[userID]
	if !ok {
		return &entity.Snapshot{}
	}

	snap := &entity.Snapshot{
		Categories:   make([]*entity.Category, len(s.categories)),
		Transactions: make([]*entity.TransactionWithCategory, len(s.transactions)),
		Loading:      s.loading,
	}
	copy(snap.Categories, s.categories)
	copy(snap.Transactions, s.transactions)
	return snap
}

// load fetches categories and transactions concurrently and applies the
// result if the session's generation still matches gen. Fetch failures
// are logged and the session settles with whatever data it has.
func (a *Aggregator) load(ctx context.Context, userID uuid.UUID, gen uint64) {
	ctx, cancel := context.WithTimeout(ctx, a.loadTimeout)
	defer cancel()

	var (
		wg           sync.WaitGroup
		categories   []*entity.Category
		transactions []*entity.TransactionWithCategory
		catErr       error
		txnErr       error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		categories, catErr = a.categoryRepo.FindByUser(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		transactions, txnErr = a.transactionRepo.FindByUserWithCategory(ctx, userID)
	}()
	wg.Wait()

	if catErr != nil {
		a.logger.Error("failed to load categories", "user_id", userID, "error", catErr)
	}
	if txnErr != nil {
		a.logger.Error("failed to load transactions", "user_id", userID, "error", txnErr)
	}

	// First sign-in: seed the starter catalog, then read it back.
	if catErr == nil && len(categories) == 0 {
		if err := a.bootstrapDefaults(ctx, userID); err != nil {
			a.logger.Error("failed to bootstrap default categories", "user_id", userID, "error", err)
		} else if reloaded, err := a.categoryRepo.FindByUser(ctx, userID); err != nil {
			a.logger.Error("failed to reload categories after bootstrap", "user_id", userID, "error", err)
		} else {
			categories = reloaded
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.sessions[userID]
	if !ok || s.gen != gen {
		a.logger.Debug("discarding stale load", "user_id", userID, "generation", gen)
		return
	}

	if catErr == nil {
		s.categories = categories
	}
	if txnErr == nil {
		s.transactions = transactions
	}
	s.loading = false
}

// reloadTransactions re-fetches only the transaction list, keeping the
// resolved category data current after a write. The session's
// generation guards against racing a concurrent full load. Mutations
// never activate a session: with no session there is nothing to keep
// current, and the next Snapshot loads everything from the store.
func (a *Aggregator) reloadTransactions(ctx context.Context, userID uuid.UUID) {
	a.mu.RLock()
	s, ok := a.sessions[userID]
	var gen uint64
	if ok {
		gen = s.gen
	}
	a.mu.RUnlock()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, a.loadTimeout)
	defer cancel()

	transactions, err := a.transactionRepo.FindByUserWithCategory(ctx, userID)
	if err != nil {
		a.logger.Error("failed to reload transactions", "user_id", userID, "error", err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok = a.sessions[userID]
	if !ok || s.gen != gen {
		return
	}
	s.transactions = transactions
}

// withSession runs fn against the user's session under the write lock.
// No-op when the user has no session; mutations maintain an existing
// session but rely on the next Snapshot to build one.
func (a *Aggregator) withSession(userID uuid.UUID, fn func(s *session)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if s, ok := a.sessions[userID]; ok {
		fn(s)
	}
}
