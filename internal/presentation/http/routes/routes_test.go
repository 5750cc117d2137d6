package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storekeep/pos-api/internal/application/service"
	"github.com/storekeep/pos-api/internal/config"
	"github.com/storekeep/pos-api/internal/domain/entity"
	"github.com/storekeep/pos-api/internal/domain/enum"
	infraRepo "github.com/storekeep/pos-api/internal/infrastructure/repository"
	"github.com/storekeep/pos-api/internal/presentation/http/handler"
	"github.com/storekeep/pos-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *utils.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	userRepo := infraRepo.NewUserRepository(db)
	categoryRepo := infraRepo.NewCategoryRepository(db)
	productRepo := infraRepo.NewProductRepository(db)
	storeItemRepo := infraRepo.NewStoreItemRepository(db)
	cardRepo := infraRepo.NewLoyaltyCardRepository(db)
	receiptRepo := infraRepo.NewReceiptRepository(db)
	idempotencyRepo := infraRepo.NewIdempotencyRepository(db)

	handlers := &Handlers{
		Auth:        handler.NewAuthHandler(service.NewAuthService(userRepo, jwtManager)),
		Category:    handler.NewCategoryHandler(service.NewCategoryService(categoryRepo)),
		Product:     handler.NewProductHandler(service.NewProductService(productRepo, categoryRepo)),
		StoreItem:   handler.NewStoreItemHandler(service.NewStoreItemService(storeItemRepo, productRepo)),
		Employee:    handler.NewEmployeeHandler(service.NewEmployeeService(userRepo)),
		LoyaltyCard: handler.NewLoyaltyCardHandler(service.NewLoyaltyCardService(cardRepo)),
		Receipt:     handler.NewReceiptHandler(service.NewReceiptService(receiptRepo, storeItemRepo, cardRepo)),
	}

	router := Setup(handlers, &Deps{
		JWTManager: jwtManager,
		Cfg: &config.Config{
			App:       config.AppConfig{Name: "pos-api", Env: "test"},
			RateLimit: config.RateLimitConfig{Requests: 100, Duration: 1},
		},
		IdempotencyRepo: idempotencyRepo,
	})

	return router, db, jwtManager
}

func seedStaff(t *testing.T, db *gorm.DB, username string, role enum.Role) *entity.User {
	t.Helper()
	user := &entity.User{
		Username:  username,
		Password:  "not-a-real-hash",
		FullName:  username,
		Role:      role,
		StartDate: time.Now(),
		BirthDate: time.Now().AddDate(-30, 0, 0),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func accessToken(t *testing.T, jwtManager *utils.JWTManager, user *entity.User) string {
	t.Helper()
	token, err := jwtManager.GenerateAccessToken(user.ID, user.Username, user.Role)
	require.NoError(t, err)
	return token
}

func doJSON(router *gin.Engine, method, path, token string, headers map[string]string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateReceiptIsCashierOnly(t *testing.T) {
	router, db, jwtManager := setupTestRouter(t)

	manager := seedStaff(t, db, "boss", enum.RoleManager)
	cashier := seedStaff(t, db, "till", enum.RoleCashier)

	product := &entity.Product{Name: "Milk"}
	require.NoError(t, db.Create(product).Error)
	require.NoError(t, db.Create(&entity.StoreItem{
		UPC:       "100000000001",
		ProductID: product.ID,
		SalePrice: 10000,
		Quantity:  5,
	}).Error)

	body := gin.H{"items": []gin.H{{"upc": "100000000001", "quantity": 1}}}

	w := doJSON(router, http.MethodPost, "/api/v1/receipts", accessToken(t, jwtManager, manager),
		map[string]string{"Idempotency-Key": "mgr-attempt-1"}, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Refused checkout must not touch stock
	var item entity.StoreItem
	require.NoError(t, db.First(&item, "upc = ?", "100000000001").Error)
	assert.Equal(t, 5, item.Quantity)

	w = doJSON(router, http.MethodPost, "/api/v1/receipts", accessToken(t, jwtManager, cashier),
		map[string]string{"Idempotency-Key": "sale-1"}, body)
	assert.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, db.First(&item, "upc = ?", "100000000001").Error)
	assert.Equal(t, 4, item.Quantity)
}

func TestUpdateCustomerAllowsCashiers(t *testing.T) {
	router, db, jwtManager := setupTestRouter(t)

	manager := seedStaff(t, db, "boss", enum.RoleManager)
	cashier := seedStaff(t, db, "till", enum.RoleCashier)

	require.NoError(t, db.Create(&entity.LoyaltyCard{
		CardNumber: "1234567890123",
		FullName:   "Olena Kravets",
		Discount:   10,
	}).Error)

	w := doJSON(router, http.MethodPut, "/api/v1/customers/1234567890123",
		accessToken(t, jwtManager, cashier), nil, gin.H{"phone": "+380671112233"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPut, "/api/v1/customers/1234567890123",
		accessToken(t, jwtManager, manager), nil, gin.H{"discount": 15})
	assert.Equal(t, http.StatusOK, w.Code)

	var card entity.LoyaltyCard
	require.NoError(t, db.First(&card, "card_number = ?", "1234567890123").Error)
	assert.Equal(t, "+380671112233", card.Phone)
	assert.Equal(t, 15, card.Discount)

	// Registration and deletion stay manager actions
	w = doJSON(router, http.MethodPost, "/api/v1/customers",
		accessToken(t, jwtManager, cashier), nil, gin.H{
			"card_number": "9999999990000",
			"full_name":   "Someone New",
		})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodDelete, "/api/v1/customers/1234567890123",
		accessToken(t, jwtManager, cashier), nil, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
