package routes

import (
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"fitstore-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type mockStorage struct{}

func (m *mockStorage) UploadProductImage(file multipart.File, filename, contentType string) (string, error) {
	return "", nil
}
func (m *mockStorage) UploadBannerImage(file multipart.File, filename, contentType string) (string, error) {
	return "", nil
}
func (m *mockStorage) UploadFeedbackImage(file multipart.File, filename, contentType string) (string, error) {
	return "", nil
}
func (m *mockStorage) DeleteFile(objectPath string) error { return nil }
func (m *mockStorage) DownloadAndUploadImage(imageURL, productID string) (string, error) {
	return "", nil
}

func init() {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret-for-routes")
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}

	tables := []string{
		`CREATE TABLE IF NOT EXISTS "users" (
			"id" TEXT PRIMARY KEY, "email" TEXT NOT NULL UNIQUE, "password" TEXT NOT NULL,
			"name" TEXT, "role" TEXT DEFAULT 'customer',
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "products" (
			"id" TEXT PRIMARY KEY, "name" TEXT NOT NULL, "brand" TEXT NOT NULL,
			"category" TEXT NOT NULL, "description" TEXT NOT NULL, "discount" TEXT, "tags" TEXT,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "variants" (
			"id" TEXT PRIMARY KEY, "product_id" TEXT NOT NULL, "sku" TEXT, "size" TEXT NOT NULL,
			"color" TEXT, "flavor" TEXT, "price" REAL NOT NULL, "discount" REAL DEFAULT 0,
			"stock" INTEGER DEFAULT 0, "created_at" DATETIME, "updated_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "product_images" (
			"id" TEXT PRIMARY KEY, "product_id" TEXT NOT NULL, "image_url" TEXT NOT NULL,
			"is_primary" INTEGER DEFAULT 0, "created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "apparel_details" (
			"id" TEXT PRIMARY KEY, "product_id" TEXT NOT NULL UNIQUE, "material" TEXT,
			"gender" TEXT, "fit" TEXT, "care_instructions" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS "equipment_details" (
			"id" TEXT PRIMARY KEY, "product_id" TEXT NOT NULL UNIQUE, "weight" TEXT,
			"dimensions" TEXT, "material" TEXT, "usage" TEXT, "subcategory" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS "nutrition_details" (
			"id" TEXT PRIMARY KEY, "product_id" TEXT NOT NULL UNIQUE, "serving_size" TEXT,
			"calories" TEXT, "protein" TEXT, "carbs" TEXT, "fat" TEXT, "ingredients" TEXT, "allergens" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS "carts" (
			"id" TEXT PRIMARY KEY, "user_id" TEXT NOT NULL UNIQUE,
			"created_at" DATETIME, "updated_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "cart_lines" (
			"id" TEXT PRIMARY KEY, "cart_id" TEXT NOT NULL, "product_id" TEXT NOT NULL,
			"size" TEXT NOT NULL, "color" TEXT, "flavor" TEXT, "quantity" INTEGER NOT NULL,
			"price" REAL NOT NULL, "category" TEXT, "discount" REAL DEFAULT 0, "product_name" TEXT,
			"created_at" DATETIME, "updated_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "feedbacks" (
			"id" TEXT PRIMARY KEY, "user_id" TEXT NOT NULL, "product_id" TEXT NOT NULL,
			"rating" INTEGER NOT NULL, "comment" TEXT, "images" TEXT,
			"created_at" DATETIME, "updated_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "banners" (
			"id" TEXT PRIMARY KEY, "title" TEXT NOT NULL, "category" TEXT NOT NULL UNIQUE,
			"subtitle" TEXT, "offer" TEXT, "image_url" TEXT NOT NULL,
			"created_at" DATETIME, "updated_at" DATETIME
		)`,
	}

	for _, sql := range tables {
		if err := db.Exec(sql).Error; err != nil {
			t.Fatal(err)
		}
	}
	return db
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	db := setupTestDB(t)
	r := gin.New()
	SetupRoutes(r, db, &mockStorage{})
	return r, db
}

func TestHealthCheck(t *testing.T) {
	r, _ := setupRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPublicProductsRoute(t *testing.T) {
	r, _ := setupRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/products", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPublicBannersRoute(t *testing.T) {
	r, _ := setupRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/banners", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestProtectedRouteRequiresAuth(t *testing.T) {
	r, _ := setupRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/cart", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestStockRouteRequiresAuth(t *testing.T) {
	r, _ := setupRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/stock/decrement", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminRouteBlocksNonAdmin(t *testing.T) {
	r, _ := setupRouter(t)
	token, _ := utils.GenerateToken(uuid.New(), "user@test.com", "customer")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/admin/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}
