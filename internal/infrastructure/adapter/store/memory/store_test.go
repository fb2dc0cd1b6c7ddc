package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/devshark/function-dynamodb-task/internal/domain/entity"
	storeport "github.com/devshark/function-dynamodb-task/internal/domain/port/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

func newRecord(key, userID, amount, txType string) *entity.LedgerRecord {
	return &entity.LedgerRecord{
		IdempotencyKey: key,
		UserID:         userID,
		Amount:         decimal.RequireFromString(amount),
		Type:           entity.TransactionType(txType),
		CreatedAt:      fixedTime,
	}
}

func seedUser(store *Store, id, balance string) {
	user := &entity.User{ID: id, CreatedAt: fixedTime, UpdatedAt: fixedTime}
	if balance != "" {
		b := decimal.RequireFromString(balance)
		user.Balance = &b
	}
	store.PutUser(user)
}

func TestStore_GetUser(t *testing.T) {
	ctx := context.Background()

	t.Run("should return nil for an unknown user", func(t *testing.T) {
		store := NewStore()

		user, err := store.GetUser(ctx, "missing")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("should return a copy of the stored user", func(t *testing.T) {
		store := NewStore()
		seedUser(store, "42", "10.00")

		user, err := store.GetUser(ctx, "42")
		require.NoError(t, err)
		require.NotNil(t, user)

		// Mutating the copy must not leak into the store.
		mutated := decimal.RequireFromString("999.00")
		user.Balance = &mutated

		again, _ := store.GetUser(ctx, "42")
		assert.Equal(t, "10.00", entity.FormatAmount(*again.Balance))
	})
}

func TestStore_TransactWrite(t *testing.T) {
	ctx := context.Background()

	t.Run("should credit a seeded unfunded user", func(t *testing.T) {
		store := NewStore()
		seedUser(store, "11", "")

		err := store.TransactWrite(ctx, newRecord("1", "11", "10", "CREDIT"))
		require.NoError(t, err)

		user, _ := store.GetUser(ctx, "11")
		assert.Equal(t, "10.00", entity.FormatAmount(*user.Balance))

		record, _ := store.GetTransaction(ctx, "1")
		require.NotNil(t, record)
		assert.Equal(t, "11", record.UserID)
	})

	t.Run("should create the user row on credit when absent", func(t *testing.T) {
		store := NewStore()

		err := store.TransactWrite(ctx, newRecord("k", "new-user", "5.00", "CREDIT"))
		require.NoError(t, err)

		user, _ := store.GetUser(ctx, "new-user")
		require.NotNil(t, user)
		assert.Equal(t, "5.00", entity.FormatAmount(*user.Balance))
	})

	t.Run("should debit down to zero", func(t *testing.T) {
		store := NewStore()
		seedUser(store, "11", "10.00")

		err := store.TransactWrite(ctx, newRecord("k", "11", "10.00", "DEBIT"))
		require.NoError(t, err)

		user, _ := store.GetUser(ctx, "11")
		assert.Equal(t, "0.00", entity.FormatAmount(*user.Balance))
	})

	t.Run("should reject a debit beyond the balance with the balance guard reason", func(t *testing.T) {
		store := NewStore()
		seedUser(store, "9", "5.00")

		err := store.TransactWrite(ctx, newRecord("5", "9", "10.00", "DEBIT"))
		require.Error(t, err)

		var canceled *storeport.TransactCanceledError
		require.True(t, errors.As(err, &canceled))
		assert.True(t, canceled.Reasons[storeport.OpBalance].ConditionFailed())
		assert.Equal(t, "5.00", canceled.Reasons[storeport.OpBalance].Message)
		assert.False(t, canceled.Reasons[storeport.OpLedgerInsert].ConditionFailed())

		// Nothing was applied.
		user, _ := store.GetUser(ctx, "9")
		assert.Equal(t, "5.00", entity.FormatAmount(*user.Balance))
		record, _ := store.GetTransaction(ctx, "5")
		assert.Nil(t, record)
	})

	t.Run("should reject a debit against a missing balance without a message", func(t *testing.T) {
		store := NewStore()
		seedUser(store, "7", "")

		err := store.TransactWrite(ctx, newRecord("k", "7", "1.00", "DEBIT"))

		var canceled *storeport.TransactCanceledError
		require.True(t, errors.As(err, &canceled))
		assert.True(t, canceled.Reasons[storeport.OpBalance].ConditionFailed())
		assert.Empty(t, canceled.Reasons[storeport.OpBalance].Message)
	})

	t.Run("should reject a duplicate idempotency key with the conflicting key", func(t *testing.T) {
		store := NewStore()
		seedUser(store, "11", "")
		require.NoError(t, store.TransactWrite(ctx, newRecord("1", "11", "10", "CREDIT")))

		err := store.TransactWrite(ctx, newRecord("1", "11", "10", "CREDIT"))
		require.Error(t, err)

		var canceled *storeport.TransactCanceledError
		require.True(t, errors.As(err, &canceled))
		assert.True(t, canceled.Reasons[storeport.OpLedgerInsert].ConditionFailed())
		assert.Equal(t, "1", canceled.Reasons[storeport.OpLedgerInsert].ConflictingKey)

		// The balance moved exactly once.
		user, _ := store.GetUser(ctx, "11")
		assert.Equal(t, "10.00", entity.FormatAmount(*user.Balance))
	})

	t.Run("should report both failed guards on a doubly rejected write", func(t *testing.T) {
		store := NewStore()
		seedUser(store, "9", "20.00")
		require.NoError(t, store.TransactWrite(ctx, newRecord("d1", "9", "15.00", "DEBIT")))

		// Same key again, and the remaining balance no longer covers it.
		err := store.TransactWrite(ctx, newRecord("d1", "9", "15.00", "DEBIT"))
		require.Error(t, err)

		var canceled *storeport.TransactCanceledError
		require.True(t, errors.As(err, &canceled))
		assert.True(t, canceled.Reasons[storeport.OpBalance].ConditionFailed())
		assert.True(t, canceled.Reasons[storeport.OpLedgerInsert].ConditionFailed())
	})

	t.Run("should serialize concurrent writes with distinct keys", func(t *testing.T) {
		store := NewStore()
		seedUser(store, "11", "")

		const writers = 20
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key := string(rune('a' + i))
				_ = store.TransactWrite(ctx, newRecord(key, "11", "1.00", "CREDIT"))
			}(i)
		}
		wg.Wait()

		user, _ := store.GetUser(ctx, "11")
		assert.Equal(t, "20.00", entity.FormatAmount(*user.Balance))
	})
}
