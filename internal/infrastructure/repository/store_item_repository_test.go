package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storekeep/pos-api/internal/domain/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.Category{},
		&entity.Product{},
		&entity.StoreItem{},
	))

	return db
}

func seedStoreItem(t *testing.T, db *gorm.DB, upc string, quantity int) {
	product := &entity.Product{Name: "Product " + upc}
	require.NoError(t, db.Create(product).Error)

	require.NoError(t, db.Create(&entity.StoreItem{
		UPC:       upc,
		ProductID: product.ID,
		SalePrice: 1000,
		Quantity:  quantity,
	}).Error)
}

func TestAtomicDecrementQuantity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStoreItemRepository(db)
	ctx := context.Background()

	seedStoreItem(t, db, "100000000001", 10)

	t.Run("decrements when stock suffices", func(t *testing.T) {
		ok, err := repo.AtomicDecrementQuantity(ctx, "100000000001", 6)
		require.NoError(t, err)
		assert.True(t, ok)

		item, err := repo.GetByUPC(ctx, "100000000001")
		require.NoError(t, err)
		assert.Equal(t, 4, item.Quantity)
	})

	t.Run("refuses when stock is short", func(t *testing.T) {
		ok, err := repo.AtomicDecrementQuantity(ctx, "100000000001", 6)
		require.NoError(t, err)
		assert.False(t, ok)

		// Failed decrement leaves the counter untouched
		item, err := repo.GetByUPC(ctx, "100000000001")
		require.NoError(t, err)
		assert.Equal(t, 4, item.Quantity)
	})

	t.Run("drains exactly to zero", func(t *testing.T) {
		ok, err := repo.AtomicDecrementQuantity(ctx, "100000000001", 4)
		require.NoError(t, err)
		assert.True(t, ok)

		item, err := repo.GetByUPC(ctx, "100000000001")
		require.NoError(t, err)
		assert.Equal(t, 0, item.Quantity)

		ok, err = repo.AtomicDecrementQuantity(ctx, "100000000001", 1)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown upc matches no row", func(t *testing.T) {
		ok, err := repo.AtomicDecrementQuantity(ctx, "999999999999", 1)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestGetByUPCs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStoreItemRepository(db)
	ctx := context.Background()

	seedStoreItem(t, db, "100000000001", 5)
	seedStoreItem(t, db, "100000000002", 5)

	items, err := repo.GetByUPCs(ctx, []string{"100000000001", "100000000002", "999999999999"})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = repo.GetByUPCs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetByUPC_NotFoundReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStoreItemRepository(db)

	item, err := repo.GetByUPC(context.Background(), "999999999999")
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestGetByUPC_QueryErrorReturnsNilItem(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStoreItemRepository(db)

	require.NoError(t, db.Migrator().DropTable(&entity.StoreItem{}))

	item, err := repo.GetByUPC(context.Background(), "100000000001")
	require.Error(t, err)
	assert.Nil(t, item)
}
