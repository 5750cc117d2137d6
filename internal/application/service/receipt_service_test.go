package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storekeep/pos-api/internal/domain/entity"
	"github.com/storekeep/pos-api/internal/domain/enum"
	domainRepo "github.com/storekeep/pos-api/internal/domain/repository"
	infraRepo "github.com/storekeep/pos-api/internal/infrastructure/repository"
	"github.com/storekeep/pos-api/pkg/apperror"
	"github.com/storekeep/pos-api/pkg/pagination"
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
		&entity.User{},
		&entity.Category{},
		&entity.Product{},
		&entity.StoreItem{},
		&entity.LoyaltyCard{},
		&entity.Receipt{},
		&entity.ReceiptItem{},
		&entity.IdempotencyKey{},
	))

	return db
}

func newReceiptService(db *gorm.DB) *ReceiptService {
	return NewReceiptService(
		infraRepo.NewReceiptRepository(db),
		infraRepo.NewStoreItemRepository(db),
		infraRepo.NewLoyaltyCardRepository(db),
	)
}

func createCashier(t *testing.T, db *gorm.DB, username string) *entity.User {
	user := &entity.User{
		Username: username,
		Password: "hashed",
		FullName: "Test Cashier",
		Role:     enum.RoleCashier,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createStoreItem(t *testing.T, db *gorm.DB, upc string, priceCents int64, quantity int, promotional bool) *entity.StoreItem {
	product := &entity.Product{Name: "Product " + upc}
	require.NoError(t, db.Create(product).Error)

	item := &entity.StoreItem{
		UPC:           upc,
		ProductID:     product.ID,
		SalePrice:     priceCents,
		Quantity:      quantity,
		IsPromotional: promotional,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func storeItemQuantity(t *testing.T, db *gorm.DB, upc string) int {
	var item entity.StoreItem
	require.NoError(t, db.First(&item, "upc = ?", upc).Error)
	return item.Quantity
}

func TestCreateSale_TotalsAndVAT(t *testing.T) {
	db := setupTestDB(t)
	svc := newReceiptService(db)
	cashier := createCashier(t, db, "cashier1")

	// Promotional item listed at 100.00 sells at 80.00
	createStoreItem(t, db, "100000000001", 10000, 10, true)
	createStoreItem(t, db, "100000000002", 8000, 10, false)

	receipt, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID: cashier.ID,
		Items: []SaleItemInput{
			{UPC: "100000000001", Quantity: 1},
			{UPC: "100000000002", Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, receipt)

	assert.Equal(t, int64(16000), receipt.Total)
	assert.Equal(t, int64(3200), receipt.VAT)
	assert.Len(t, receipt.Items, 2)

	// Promotional markdown is snapshotted on the line
	assert.Equal(t, int64(8000), receipt.Items[0].PriceAtSale)
	assert.Equal(t, int64(8000), receipt.Items[1].PriceAtSale)

	assert.Equal(t, 9, storeItemQuantity(t, db, "100000000001"))
	assert.Equal(t, 9, storeItemQuantity(t, db, "100000000002"))
}

func TestCreateSale_CardDiscountsVATOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := newReceiptService(db)
	cashier := createCashier(t, db, "cashier1")

	createStoreItem(t, db, "100000000001", 10000, 10, true)
	createStoreItem(t, db, "100000000002", 8000, 10, false)

	card := &entity.LoyaltyCard{CardNumber: "4000000000001", FullName: "Card Holder", Discount: 10}
	require.NoError(t, db.Create(card).Error)

	cardNumber := card.CardNumber
	receipt, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID:  cashier.ID,
		CardNumber: &cardNumber,
		Items: []SaleItemInput{
			{UPC: "100000000001", Quantity: 1},
			{UPC: "100000000002", Quantity: 1},
		},
	})
	require.NoError(t, err)

	// Discount applies to the VAT portion only, not the total
	assert.Equal(t, int64(16000), receipt.Total)
	assert.Equal(t, int64(2880), receipt.VAT)
	require.NotNil(t, receipt.CardNumber)
	assert.Equal(t, card.CardNumber, *receipt.CardNumber)
}

func TestCreateSale_UnknownCardIgnored(t *testing.T) {
	db := setupTestDB(t)
	svc := newReceiptService(db)
	cashier := createCashier(t, db, "cashier1")

	createStoreItem(t, db, "100000000001", 10000, 10, false)

	unknown := "4999999999999"
	receipt, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID:  cashier.ID,
		CardNumber: &unknown,
		Items:      []SaleItemInput{{UPC: "100000000001", Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2000), receipt.VAT)
	assert.Nil(t, receipt.CardNumber)
}

func TestCreateSale_UnknownItem(t *testing.T) {
	db := setupTestDB(t)
	svc := newReceiptService(db)
	cashier := createCashier(t, db, "cashier1")

	createStoreItem(t, db, "100000000001", 10000, 10, false)

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID: cashier.ID,
		Items: []SaleItemInput{
			{UPC: "100000000001", Quantity: 1},
			{UPC: "999999999999", Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	// Nothing was persisted and no stock moved
	assert.Equal(t, 10, storeItemQuantity(t, db, "100000000001"))
	var count int64
	db.Model(&entity.Receipt{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateSale_InsufficientStockRejectsWholeSale(t *testing.T) {
	db := setupTestDB(t)
	svc := newReceiptService(db)
	cashier := createCashier(t, db, "cashier1")

	createStoreItem(t, db, "100000000001", 10000, 10, false)
	createStoreItem(t, db, "100000000002", 5000, 2, false)

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID: cashier.ID,
		Items: []SaleItemInput{
			{UPC: "100000000001", Quantity: 1},
			{UPC: "100000000002", Quantity: 5},
		},
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	// The sufficient line must not have been decremented either
	assert.Equal(t, 10, storeItemQuantity(t, db, "100000000001"))
	assert.Equal(t, 2, storeItemQuantity(t, db, "100000000002"))

	var count int64
	db.Model(&entity.Receipt{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateSale_RepeatedUPCLinesCombineForStockCheck(t *testing.T) {
	db := setupTestDB(t)
	svc := newReceiptService(db)
	cashier := createCashier(t, db, "cashier1")

	createStoreItem(t, db, "100000000001", 1000, 10, false)

	receipt, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID: cashier.ID,
		Items: []SaleItemInput{
			{UPC: "100000000001", Quantity: 3},
			{UPC: "100000000001", Quantity: 4},
		},
	})
	require.NoError(t, err)

	assert.Len(t, receipt.Items, 2)
	assert.Equal(t, 3, storeItemQuantity(t, db, "100000000001"))

	// A second sale of the combined size must now fail
	_, err = svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID: cashier.ID,
		Items: []SaleItemInput{
			{UPC: "100000000001", Quantity: 2},
			{UPC: "100000000001", Quantity: 2},
		},
	})
	require.Error(t, err)
	assert.Equal(t, 3, storeItemQuantity(t, db, "100000000001"))
}

func TestCreateSale_PriceSnapshotSurvivesRelisting(t *testing.T) {
	db := setupTestDB(t)
	svc := newReceiptService(db)
	cashier := createCashier(t, db, "cashier1")

	createStoreItem(t, db, "100000000001", 10000, 10, false)

	receipt, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID: cashier.ID,
		Items:     []SaleItemInput{{UPC: "100000000001", Quantity: 2}},
	})
	require.NoError(t, err)

	// Re-price the store item after the sale
	require.NoError(t, db.Model(&entity.StoreItem{}).
		Where("upc = ?", "100000000001").
		Update("sale_price", 99900).Error)

	reloaded, err := svc.GetReceipt(context.Background(), receipt.ID, cashier.ID, false)
	require.NoError(t, err)

	assert.Equal(t, int64(20000), reloaded.Total)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, int64(10000), reloaded.Items[0].PriceAtSale)
}

func TestCreateSale_MissingScanCode(t *testing.T) {
	db := setupTestDB(t)
	svc := newReceiptService(db)
	cashier := createCashier(t, db, "cashier1")

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID: cashier.ID,
		Items:     []SaleItemInput{{UPC: "", Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, apperror.ErrMissingScanCode, apperror.GetAppError(err))
}

func TestGetReceipt_CashierOwnership(t *testing.T) {
	db := setupTestDB(t)
	svc := newReceiptService(db)
	owner := createCashier(t, db, "owner")
	other := createCashier(t, db, "other")

	createStoreItem(t, db, "100000000001", 1000, 10, false)

	receipt, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID: owner.ID,
		Items:     []SaleItemInput{{UPC: "100000000001", Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.GetReceipt(context.Background(), receipt.ID, other.ID, false)
	require.Error(t, err)
	assert.Equal(t, 403, apperror.GetAppError(err).Code)

	// A manager may read any receipt
	got, err := svc.GetReceipt(context.Background(), receipt.ID, other.ID, true)
	require.NoError(t, err)
	assert.Equal(t, receipt.ID, got.ID)
	assert.Equal(t, "Test Cashier", got.CashierName)
}

func TestDeleteReceipt_DoesNotRestoreStock(t *testing.T) {
	db := setupTestDB(t)
	svc := newReceiptService(db)
	cashier := createCashier(t, db, "cashier1")

	createStoreItem(t, db, "100000000001", 1000, 10, false)

	receipt, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID: cashier.ID,
		Items:     []SaleItemInput{{UPC: "100000000001", Quantity: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, 6, storeItemQuantity(t, db, "100000000001"))

	require.NoError(t, svc.DeleteReceipt(context.Background(), receipt.ID))

	var itemCount int64
	db.Model(&entity.ReceiptItem{}).Where("receipt_id = ?", receipt.ID).Count(&itemCount)
	assert.Equal(t, int64(0), itemCount)

	// Sold stock stays sold
	assert.Equal(t, 6, storeItemQuantity(t, db, "100000000001"))
}

func TestAnalytics(t *testing.T) {
	db := setupTestDB(t)
	svc := newReceiptService(db)
	first := createCashier(t, db, "first")
	second := createCashier(t, db, "second")

	createStoreItem(t, db, "100000000001", 1000, 100, false)
	createStoreItem(t, db, "100000000002", 2000, 100, false)

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID: first.ID,
		Items:     []SaleItemInput{{UPC: "100000000001", Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID: second.ID,
		Items: []SaleItemInput{
			{UPC: "100000000001", Quantity: 2},
			{UPC: "100000000002", Quantity: 1},
		},
	})
	require.NoError(t, err)

	sum, err := svc.TotalSales(context.Background(), &domainRepo.SalesFilterParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(3000+2000+2000), sum)

	sum, err = svc.TotalSales(context.Background(), &domainRepo.SalesFilterParams{CashierID: &first.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(3000), sum)

	qty, err := svc.QuantitySold(context.Background(), &domainRepo.SalesFilterParams{UPC: "100000000001"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), qty)

	qty, err = svc.QuantitySold(context.Background(), &domainRepo.SalesFilterParams{UPC: "100000000001", CashierID: &second.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), qty)

	_, err = svc.QuantitySold(context.Background(), &domainRepo.SalesFilterParams{})
	require.Error(t, err)
	assert.Equal(t, apperror.ErrMissingScanCode, apperror.GetAppError(err))
}

func TestListReceipts_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := newReceiptService(db)
	cashier := createCashier(t, db, "cashier1")

	createStoreItem(t, db, "100000000001", 1000, 100, false)

	firstReceipt, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID: cashier.ID,
		Items:     []SaleItemInput{{UPC: "100000000001", Quantity: 1}},
	})
	require.NoError(t, err)

	secondReceipt, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID: cashier.ID,
		Items:     []SaleItemInput{{UPC: "100000000001", Quantity: 1}},
	})
	require.NoError(t, err)

	// Push the second receipt clearly later than the first
	require.NoError(t, db.Model(&entity.Receipt{}).
		Where("id = ?", secondReceipt.ID).
		Update("date", firstReceipt.Date.AddDate(0, 0, 1)).Error)

	result, err := svc.ListReceipts(context.Background(), &domainRepo.ReceiptFilterParams{
		Pagination: pagination.DefaultPagination(),
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, secondReceipt.ID, result.Items[0].ID)
	assert.Equal(t, firstReceipt.ID, result.Items[1].ID)
}
