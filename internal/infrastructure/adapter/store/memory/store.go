package memory

import (
	"context"
	"sync"

	"github.com/devshark/function-dynamodb-task/internal/domain/entity"
	storeport "github.com/devshark/function-dynamodb-task/internal/domain/port/store"
)

// Store is an in-memory implementation of store.TransactionalStore. A single
// mutex makes every transact write atomic; both guards are evaluated before
// anything is applied, so a rejected write reports every failed guard and
// leaves no partial state. Used by tests and local runs.
type Store struct {
	mu           sync.Mutex
	users        map[string]*entity.User
	transactions map[string]*entity.LedgerRecord
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		users:        make(map[string]*entity.User),
		transactions: make(map[string]*entity.LedgerRecord),
	}
}

// PutUser inserts or replaces a user record. This is the external
// user-creation path; the ledger core never calls it.
func (s *Store) PutUser(user *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = copyUser(user)
}

// GetUser returns a copy of the user record, or nil when absent
func (s *Store) GetUser(_ context.Context, userID string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	return copyUser(user), nil
}

// GetTransaction returns a copy of the ledger record, or nil when absent
func (s *Store) GetTransaction(_ context.Context, idempotencyKey string) (*entity.LedgerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.transactions[idempotencyKey]
	if !ok {
		return nil, nil
	}
	cp := *record
	return &cp, nil
}

// TransactWrite applies the balance update and the ledger insert atomically.
// Guard evaluation happens up front: a violation rejects the whole write with
// per-operation reasons and no state change.
func (s *Store) TransactWrite(_ context.Context, record *entity.LedgerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reasons := [2]storeport.CancellationReason{
		{Code: storeport.ReasonNone},
		{Code: storeport.ReasonNone},
	}
	rejected := false

	user := s.users[record.UserID]

	if record.IsDebit() && (user == nil || !user.CanDebit(record.Amount)) {
		reason := storeport.CancellationReason{Code: storeport.ReasonConditionFailed}
		if user != nil && user.HasBalance() {
			reason.Message = entity.FormatAmount(*user.Balance)
		}
		reasons[storeport.OpBalance] = reason
		rejected = true
	}

	if existing, ok := s.transactions[record.IdempotencyKey]; ok {
		reasons[storeport.OpLedgerInsert] = storeport.CancellationReason{
			Code:           storeport.ReasonConditionFailed,
			ConflictingKey: existing.IdempotencyKey,
		}
		rejected = true
	}

	if rejected {
		return &storeport.TransactCanceledError{Reasons: reasons}
	}

	// Balance update. A credit on a user the store has never seen creates the
	// record, mirroring key-value upsert semantics.
	if user == nil {
		user = &entity.User{
			ID:        record.UserID,
			CreatedAt: record.CreatedAt,
		}
		s.users[record.UserID] = user
	}

	if record.IsCredit() {
		next := record.Amount
		if user.Balance != nil {
			next = user.Balance.Add(record.Amount)
		}
		user.Balance = &next
	} else {
		next := user.Balance.Sub(record.Amount)
		user.Balance = &next
	}
	user.UpdatedAt = record.CreatedAt

	cp := *record
	s.transactions[record.IdempotencyKey] = &cp

	return nil
}

func copyUser(user *entity.User) *entity.User {
	cp := *user
	if user.Balance != nil {
		b := *user.Balance
		cp.Balance = &b
	}
	return &cp
}

// Compile-time check that Store satisfies the transactional store port
var _ storeport.TransactionalStore = (*Store)(nil)
