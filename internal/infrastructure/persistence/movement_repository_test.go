package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockMovementRepository creates a GormStockMovementRepository with a mocked SQL connection
func newMockMovementRepository(t *testing.T) (*GormStockMovementRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStockMovementRepository(gormDB), mock, mockDB
}

func TestGormStockMovementRepository_FindByID(t *testing.T) {
	t.Run("finds existing movement", func(t *testing.T) {
		repo, mock, mockDB := newMockMovementRepository(t)
		defer mockDB.Close()

		movementID := uuid.New()
		storeID := uuid.New()
		productID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "store_id", "product_id", "kind", "quantity", "processed"}).
			AddRow(movementID, storeID, productID, "IN", 10, false)

		mock.ExpectQuery(`SELECT \* FROM "stock_movements" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(movementID, 1).
			WillReturnRows(rows)

		movement, err := repo.FindByID(context.Background(), movementID)
		require.NoError(t, err)
		assert.Equal(t, movementID, movement.ID)
		assert.Equal(t, storeID, movement.StoreID)
		assert.False(t, movement.Processed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockMovementRepository(t)
		defer mockDB.Close()

		movementID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "stock_movements"`).
			WithArgs(movementID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByID(context.Background(), movementID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormStockMovementRepository_MarkProcessed(t *testing.T) {
	t.Run("flips the flag when unprocessed", func(t *testing.T) {
		repo, mock, mockDB := newMockMovementRepository(t)
		defer mockDB.Close()

		movementID := uuid.New()

		// The update must be a compare-and-swap on the processed flag
		mock.ExpectExec(`UPDATE "stock_movements" SET "processed"=\$1,"updated_at"=\$2 WHERE id = \$3 AND processed = \$4`).
			WithArgs(true, sqlmock.AnyArg(), movementID, false).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkProcessed(context.Background(), movementID)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrAlreadyProcessed when no row transitions", func(t *testing.T) {
		repo, mock, mockDB := newMockMovementRepository(t)
		defer mockDB.Close()

		movementID := uuid.New()

		mock.ExpectExec(`UPDATE "stock_movements"`).
			WithArgs(true, sqlmock.AnyArg(), movementID, false).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkProcessed(context.Background(), movementID)
		assert.ErrorIs(t, err, shared.ErrAlreadyProcessed)
	})
}
