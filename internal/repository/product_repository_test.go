package repository

import (
	"testing"

	"github.com/souq-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductVariant{}); err != nil {
		t.Fatalf("migrate product/variant failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createRepoProduct(t *testing.T, repo *GormProductRepository, name string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Price:    models.NewMoneyFromInt(1000),
		Stock:    stock,
		IsActive: true,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestDeductStockGuardedAgainstOversell(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createRepoProduct(t, repo, "stock-guard", 5)

	affected, err := repo.DeductStock(product.ID, 3)
	if err != nil {
		t.Fatalf("deduct failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("deduct affected want 1 got %d", affected)
	}

	// 2 left, asking for 3 must not match the guarded row.
	affected, err = repo.DeductStock(product.ID, 3)
	if err != nil {
		t.Fatalf("deduct over stock failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("deduct over stock affected want 0 got %d", affected)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 2 {
		t.Fatalf("stock want 2 got %d", got.Stock)
	}
}

func TestDeductStockRejectsInvalidParams(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	if _, err := repo.DeductStock(0, 1); err == nil {
		t.Fatalf("expected error for zero product id")
	}
	if _, err := repo.DeductStock(1, 0); err == nil {
		t.Fatalf("expected error for zero quantity")
	}
}

func TestRestoreAndAddStock(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createRepoProduct(t, repo, "stock-restore", 1)

	if _, err := repo.RestoreStock(product.ID, 4); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if _, err := repo.AddStock(product.ID, 10); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 15 {
		t.Fatalf("stock want 15 got %d", got.Stock)
	}
}

func TestGetByIDReturnsNilWhenMissing(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	product, err := repo.GetByID(42)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if product != nil {
		t.Fatalf("expected nil product, got %+v", product)
	}
}

func TestListFiltersAddOnsAndActive(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	createRepoProduct(t, repo, "regular", 5)
	addOn := &models.Product{
		Name:     "wrap",
		Price:    models.NewMoneyFromInt(300),
		Stock:    50,
		IsAddOn:  true,
		IsActive: true,
	}
	if err := repo.Create(addOn); err != nil {
		t.Fatalf("create add-on failed: %v", err)
	}
	inactive := createRepoProduct(t, repo, "hidden", 5)
	if err := db.Model(&models.Product{}).Where("id = ?", inactive.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	isAddOn := true
	products, total, err := repo.List(ProductListFilter{OnlyActive: true, IsAddOn: &isAddOn})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(products) != 1 || products[0].Name != "wrap" {
		t.Fatalf("unexpected add-on listing: total=%d products=%+v", total, products)
	}

	products, total, err = repo.List(ProductListFilter{OnlyActive: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("active total want 2 got %d", total)
	}
	for _, p := range products {
		if p.Name == "hidden" {
			t.Fatalf("inactive product leaked into active listing")
		}
	}
}
