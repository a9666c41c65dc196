package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/priyankjain/shopform/pkg/fault"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func TestUserStore_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users := NewUserStore(testDB(t))

	id, err := users.Register(ctx, User{
		FirstName: "Priya",
		LastName:  "Jain",
		Email:     "priya@example.com",
		Password:  "secret",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if id == 0 {
		t.Fatal("Register returned id 0")
	}

	u, err := users.Login(ctx, "priya@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.ID != id || u.FirstName != "Priya" {
		t.Errorf("Login returned %+v, want id %d", u, id)
	}

	if _, err := users.Login(ctx, "priya@example.com", "wrong"); !errors.Is(err, fault.ErrNotFound) {
		t.Errorf("Login with wrong password: err = %v, want ErrNotFound", err)
	}
}

func TestUserStore_DuplicateEmailCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	users := NewUserStore(testDB(t))

	if _, err := users.Register(ctx, User{Email: "a@b.com", Password: "x"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := users.Register(ctx, User{Email: "A@B.COM", Password: "y"}); !errors.Is(err, fault.ErrUniqueViolation) {
		t.Errorf("duplicate register: err = %v, want ErrUniqueViolation", err)
	}
}

func TestProductStore_ListFilters(t *testing.T) {
	ctx := context.Background()
	products := NewProductStore(testDB(t))

	seed := []Product{
		{Name: "Cricket Bat", Description: "willow", Price: 110, Rating: 4, AvailableQty: 8},
		{Name: "Chess Set", Description: "wooden", Price: 24.75, Rating: 5, AvailableQty: 18},
		{Name: "Yoga Mat", Description: "non-slip", Price: 29.99, Rating: 3, AvailableQty: 60},
	}
	for _, p := range seed {
		if _, err := products.Insert(ctx, p); err != nil {
			t.Fatalf("Insert %s: %v", p.Name, err)
		}
	}

	page, err := products.List(ctx, ProductFilter{Search: "chess"}, 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.TotalItems != 1 || page.Items[0].Name != "Chess Set" {
		t.Errorf("search result = %+v, want single Chess Set", page.Items)
	}

	page, err = products.List(ctx, ProductFilter{MinRating: 4}, 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.TotalItems != 2 {
		t.Errorf("min rating filter returned %d items, want 2", page.TotalItems)
	}

	// Newest first: Yoga Mat was inserted last.
	page, err = products.List(ctx, ProductFilter{}, 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Items[0].Name != "Yoga Mat" {
		t.Errorf("first item = %s, want Yoga Mat", page.Items[0].Name)
	}

	// MaxPrice defaults to 1000; lowering it drops the bat.
	page, err = products.List(ctx, ProductFilter{MaxPrice: 50}, 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.TotalItems != 2 {
		t.Errorf("max price filter returned %d items, want 2", page.TotalItems)
	}
}

func TestProductStore_Pagination(t *testing.T) {
	ctx := context.Background()
	products := NewProductStore(testDB(t))

	for i := 0; i < 9; i++ {
		if _, err := products.Insert(ctx, Product{Name: "Item", Price: 10, Rating: 1}); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	page, err := products.List(ctx, ProductFilter{}, 1, 7)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != 7 || page.TotalPages != 2 || page.TotalItems != 9 {
		t.Errorf("page 1 = %d items, %d pages, %d total; want 7, 2, 9",
			len(page.Items), page.TotalPages, page.TotalItems)
	}
	if page.PrevPage != nil || page.NextPage == nil || *page.NextPage != 2 {
		t.Errorf("page 1 links = prev %v next %v, want nil and 2", page.PrevPage, page.NextPage)
	}

	page, err = products.List(ctx, ProductFilter{}, 2, 7)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != 2 || page.NextPage != nil || page.PrevPage == nil || *page.PrevPage != 1 {
		t.Errorf("page 2 = %d items, prev %v next %v; want 2, 1, nil",
			len(page.Items), page.PrevPage, page.NextPage)
	}
}

func TestProductStore_AdjustStockFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	products := NewProductStore(testDB(t))

	id, err := products.Insert(ctx, Product{Name: "Bat", Price: 10, AvailableQty: 3})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := products.AdjustStock(ctx, id, -5); err != nil {
		t.Fatalf("AdjustStock: %v", err)
	}
	p, err := products.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p.AvailableQty != 0 {
		t.Errorf("available_qty = %d, want 0", p.AvailableQty)
	}

	if err := products.AdjustStock(ctx, 999, -1); !errors.Is(err, fault.ErrNotFound) {
		t.Errorf("AdjustStock missing: err = %v, want ErrNotFound", err)
	}
}

func TestCartStore_UpsertAndListings(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	users := NewUserStore(db)
	products := NewProductStore(db)
	cart := NewCartStore(db)

	userID, err := users.Register(ctx, User{Email: "u@x.com", Password: "p"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	productID, err := products.Insert(ctx, Product{Name: "Bat", Price: 10, AvailableQty: 5})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	tr := true
	if err := cart.Upsert(ctx, userID, productID, nil, &tr, 2); err != nil {
		t.Fatalf("Upsert cart: %v", err)
	}

	items, err := cart.CartItems(ctx, userID)
	if err != nil {
		t.Fatalf("CartItems: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 || items[0].Product.Name != "Bat" {
		t.Fatalf("cart items = %+v, want one Bat with quantity 2", items)
	}

	// Adding the wishlist flag keeps the cart flag.
	if err := cart.Upsert(ctx, userID, productID, &tr, nil, 0); err != nil {
		t.Fatalf("Upsert wishlist: %v", err)
	}
	wished, err := cart.WishlistItems(ctx, userID)
	if err != nil {
		t.Fatalf("WishlistItems: %v", err)
	}
	if len(wished) != 1 {
		t.Fatalf("wishlist items = %d, want 1", len(wished))
	}
	items, _ = cart.CartItems(ctx, userID)
	if len(items) != 1 {
		t.Errorf("cart items after wishlist toggle = %d, want 1", len(items))
	}

	// ClearCart keeps wishlist membership.
	if err := cart.ClearCart(ctx, userID); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	items, _ = cart.CartItems(ctx, userID)
	if len(items) != 0 {
		t.Errorf("cart items after clear = %d, want 0", len(items))
	}
	wished, _ = cart.WishlistItems(ctx, userID)
	if len(wished) != 1 {
		t.Errorf("wishlist items after clear = %d, want 1", len(wished))
	}
}

func TestCartStore_QuantityFloorsAtOne(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	users := NewUserStore(db)
	products := NewProductStore(db)
	cart := NewCartStore(db)

	userID, _ := users.Register(ctx, User{Email: "u@x.com", Password: "p"})
	productID, _ := products.Insert(ctx, Product{Name: "Bat", Price: 10})

	tr := true
	if err := cart.Upsert(ctx, userID, productID, nil, &tr, 1); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := cart.AddQuantity(ctx, userID, productID, -5); err != nil {
		t.Fatalf("AddQuantity: %v", err)
	}

	items, err := cart.CartItems(ctx, userID)
	if err != nil {
		t.Fatalf("CartItems: %v", err)
	}
	if items[0].Quantity != 1 {
		t.Errorf("quantity = %d, want 1", items[0].Quantity)
	}
}

func TestRecordStores(t *testing.T) {
	ctx := context.Background()

	db := testDB(t)
	users := NewUserStore(db)
	ownerID, err := users.Register(ctx, User{Email: "owner@x.com", Password: "p"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	stores := map[string]RecordStore{
		"sql":    NewSQLRecordStore(db),
		"memory": NewMemoryRecordStore(),
	}

	for name, rs := range stores {
		t.Run(name, func(t *testing.T) {
			id, err := rs.Save(ctx, ownerID, `{"Name":"Priya"}`)
			if err != nil {
				t.Fatalf("Save: %v", err)
			}

			r, err := rs.LoadByID(ctx, id)
			if err != nil {
				t.Fatalf("LoadByID: %v", err)
			}
			if r.Blob != `{"Name":"Priya"}` || r.OwnerID != ownerID {
				t.Errorf("loaded %+v", r)
			}

			if err := rs.Update(ctx, id, `{"Name":"Updated"}`); err != nil {
				t.Fatalf("Update: %v", err)
			}
			r, _ = rs.LoadByID(ctx, id)
			if r.Blob != `{"Name":"Updated"}` {
				t.Errorf("blob after update = %s", r.Blob)
			}

			// Updating a missing id fails and mutates nothing.
			if err := rs.Update(ctx, id+100, `{}`); !errors.Is(err, fault.ErrNotFound) {
				t.Errorf("Update missing: err = %v, want ErrNotFound", err)
			}
			r, _ = rs.LoadByID(ctx, id)
			if r.Blob != `{"Name":"Updated"}` {
				t.Errorf("blob mutated by failed update: %s", r.Blob)
			}

			if _, err := rs.LoadByID(ctx, id+100); !errors.Is(err, fault.ErrNotFound) {
				t.Errorf("LoadByID missing: err = %v, want ErrNotFound", err)
			}

			records, err := rs.LoadByOwner(ctx, ownerID)
			if err != nil {
				t.Fatalf("LoadByOwner: %v", err)
			}
			if len(records) != 1 {
				t.Errorf("LoadByOwner = %d records, want 1", len(records))
			}

			records, err = rs.LoadByOwner(ctx, ownerID+1)
			if err != nil {
				t.Fatalf("LoadByOwner: %v", err)
			}
			if records == nil || len(records) != 0 {
				t.Errorf("LoadByOwner for stranger = %v, want empty non-nil slice", records)
			}
		})
	}
}
