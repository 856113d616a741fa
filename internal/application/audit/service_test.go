package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bazaartech/backend/internal/domain/audit"
	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockEntryRepository is a mock implementation of audit.EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Save(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]audit.Entry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.Entry), args.Error(1)
}

func (m *MockEntryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestServiceRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("persists entry", func(t *testing.T) {
		repo := new(MockEntryRepository)
		svc := NewService(repo, zap.NewNop())

		entry, err := audit.NewEntry("stock_in", "alice", nil)
		require.NoError(t, err)

		repo.On("Save", ctx, entry).Return(nil)
		svc.Record(ctx, entry)
		repo.AssertExpectations(t)
	})

	t.Run("swallows repository failure", func(t *testing.T) {
		repo := new(MockEntryRepository)
		svc := NewService(repo, zap.NewNop())

		entry, err := audit.NewEntry("stock_out", "", nil)
		require.NoError(t, err)

		repo.On("Save", ctx, entry).Return(errors.New("db down"))
		svc.Record(ctx, entry)
		repo.AssertExpectations(t)
	})

	t.Run("nil entry is a no-op", func(t *testing.T) {
		repo := new(MockEntryRepository)
		svc := NewService(repo, zap.NewNop())
		svc.Record(ctx, nil)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestServiceRecordMovement(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEntryRepository)
	svc := NewService(repo, zap.NewNop())

	storeID := uuid.New()
	productID := uuid.New()
	movementID := uuid.New()

	repo.On("Save", ctx, mock.MatchedBy(func(entry *audit.Entry) bool {
		if entry.Action != "stock_remove" || entry.Actor != "system" {
			return false
		}
		var details audit.MovementDetails
		if err := entry.DecodeDetails(&details); err != nil {
			return false
		}
		return details.MovementID == movementID && details.Quantity == 7
	})).Return(nil)

	svc.RecordMovement(ctx, "stock_remove", "system", storeID, productID, nil, audit.MovementDetails{
		MovementID: movementID,
		Quantity:   7,
		Timestamp:  time.Now(),
	})
	repo.AssertExpectations(t)
}

func TestServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("caps page size", func(t *testing.T) {
		repo := new(MockEntryRepository)
		svc := NewService(repo, zap.NewNop())

		repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.PageSize == MaxPageSize
		})).Return([]audit.Entry{}, nil)
		repo.On("Count", ctx, mock.Anything).Return(int64(0), nil)

		_, _, err := svc.List(ctx, ListFilter{PageSize: 5000})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("passes filters through", func(t *testing.T) {
		repo := new(MockEntryRepository)
		svc := NewService(repo, zap.NewNop())

		userID := uuid.New()
		from := time.Now().Add(-time.Hour)

		entry, err := audit.NewEntry("stock_in", "bob", nil)
		require.NoError(t, err)

		repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["action"] == "stock_in" &&
				f.Filters["user_id"] == userID &&
				f.Filters["date_from"] == from
		})).Return([]audit.Entry{*entry}, nil)
		repo.On("Count", ctx, mock.Anything).Return(int64(1), nil)

		entries, total, err := svc.List(ctx, ListFilter{
			Action:   "stock_in",
			UserID:   &userID,
			DateFrom: &from,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, entries, 1)
		assert.Equal(t, "stock_in", entries[0].Action)
		assert.Equal(t, "bob", entries[0].Actor)
	})

	t.Run("propagates query errors", func(t *testing.T) {
		repo := new(MockEntryRepository)
		svc := NewService(repo, zap.NewNop())

		repo.On("FindAll", ctx, mock.Anything).Return(nil, errors.New("db down"))

		_, _, err := svc.List(ctx, ListFilter{})
		assert.Error(t, err)
	})
}
