package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/hoangnd-dev/storefront/internal/catalog"
	"github.com/hoangnd-dev/storefront/pkg/db/models"
	pkgerrors "github.com/hoangnd-dev/storefront/pkg/errors"
)

type stubProducts struct {
	byID map[int]models.Product
}

func (s stubProducts) Get(ctx context.Context, id int) (*models.Product, error) {
	if p, ok := s.byID[id]; ok {
		found := p
		return &found, nil
	}
	return nil, catalog.ErrNotFound
}

func mustDecimal(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestService(t *testing.T, products map[int]models.Product) (Service, *[]int) {
	t.Helper()
	svc, err := NewService(NewMemoryStore(), stubProducts{byID: products}, nil, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	var counts []int
	svc.SubscribeCount(func(count int) { counts = append(counts, count) })
	return svc, &counts
}

func colaCatalog() map[int]models.Product {
	return map[int]models.Product{
		1: {ID: 1, Name: "Cola", Price: mustDecimal("15000"), Category: "Drinks", Image: "assets/img/cola.jpg"},
		2: {ID: 2, Name: "Tea", Price: mustDecimal("12000"), Category: "Drinks"},
	}
}

func TestAddToCartMergesQuantities(t *testing.T) {
	t.Parallel()

	svc, counts := newTestService(t, colaCatalog())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.AddToCart(ctx, 1); err != nil {
			t.Fatalf("AddToCart: %v", err)
		}
	}

	lines, err := svc.Items(ctx)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", lines[0].Quantity)
	}

	total, err := svc.TotalPrice(ctx)
	if err != nil {
		t.Fatalf("TotalPrice: %v", err)
	}
	if !total.Equal(mustDecimal("45000")) {
		t.Fatalf("expected total 45000, got %s", total)
	}

	want := []int{1, 2, 3}
	if len(*counts) != len(want) {
		t.Fatalf("expected %d notifications, got %v", len(want), *counts)
	}
	for i, c := range want {
		if (*counts)[i] != c {
			t.Fatalf("notification %d: expected %d, got %d", i, c, (*counts)[i])
		}
	}
}

func TestAddToCartUnknownProduct(t *testing.T) {
	t.Parallel()

	svc, counts := newTestService(t, colaCatalog())
	ctx := context.Background()

	err := svc.AddToCart(ctx, 99)
	if !pkgerrors.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if len(*counts) != 0 {
		t.Fatalf("no notification expected on failure, got %v", *counts)
	}

	lines, err := svc.Items(ctx)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("cart must be unchanged, got %d lines", len(lines))
	}
}

func TestAddToCartDefaultsMissingImage(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, colaCatalog())
	ctx := context.Background()

	if err := svc.AddToCart(ctx, 2); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	lines, err := svc.Items(ctx)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if lines[0].ProductImage != models.DefaultProductImage {
		t.Fatalf("expected default image, got %q", lines[0].ProductImage)
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	t.Parallel()

	for _, quantity := range []int{0, -1} {
		svc, counts := newTestService(t, colaCatalog())
		ctx := context.Background()

		if err := svc.AddToCart(ctx, 1); err != nil {
			t.Fatalf("AddToCart: %v", err)
		}
		lines, _ := svc.Items(ctx)

		if err := svc.UpdateQuantity(ctx, lines[0].ID, quantity); err != nil {
			t.Fatalf("UpdateQuantity(%d): %v", quantity, err)
		}

		lines, err := svc.Items(ctx)
		if err != nil {
			t.Fatalf("Items: %v", err)
		}
		if len(lines) != 0 {
			t.Fatalf("expected empty cart after quantity %d", quantity)
		}
		if last := (*counts)[len(*counts)-1]; last != 0 {
			t.Fatalf("expected final notification 0, got %d", last)
		}
	}
}

func TestCheckoutScenario(t *testing.T) {
	t.Parallel()

	svc, counts := newTestService(t, colaCatalog())
	ctx := context.Background()

	// Two adds merge into one line of quantity 2.
	if err := svc.AddToCart(ctx, 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if err := svc.AddToCart(ctx, 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	total, _ := svc.TotalPrice(ctx)
	if !total.Equal(mustDecimal("30000")) {
		t.Fatalf("expected 30000, got %s", total)
	}

	lines, _ := svc.Items(ctx)
	if err := svc.UpdateQuantity(ctx, lines[0].ID, 5); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	total, _ = svc.TotalPrice(ctx)
	if !total.Equal(mustDecimal("75000")) {
		t.Fatalf("expected 75000, got %s", total)
	}

	if err := svc.RemoveFromCart(ctx, lines[0].ID); err != nil {
		t.Fatalf("RemoveFromCart: %v", err)
	}
	count, _ := svc.ItemCount(ctx)
	if count != 0 {
		t.Fatalf("expected empty cart, count %d", count)
	}
	if last := (*counts)[len(*counts)-1]; last != 0 {
		t.Fatalf("expected final notification 0, got %d", last)
	}
}

func TestClearCartAlwaysNotifiesZero(t *testing.T) {
	t.Parallel()

	svc, counts := newTestService(t, colaCatalog())
	ctx := context.Background()

	// Clearing an already-empty cart still notifies zero.
	if err := svc.ClearCart(ctx); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	if len(*counts) != 1 || (*counts)[0] != 0 {
		t.Fatalf("expected single zero notification, got %v", *counts)
	}

	if err := svc.AddToCart(ctx, 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if err := svc.ClearCart(ctx); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	if last := (*counts)[len(*counts)-1]; last != 0 {
		t.Fatalf("expected zero notification, got %d", last)
	}
}

func TestSyncProductRefreshesDenormalizedFields(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, colaCatalog())
	ctx := context.Background()

	if err := svc.AddToCart(ctx, 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	edited := &models.Product{ID: 1, Name: "Cola Zero", Price: mustDecimal("17000"), Category: "Diet Drinks", Image: "assets/img/colazero.jpg"}
	if err := svc.SyncProduct(ctx, edited); err != nil {
		t.Fatalf("SyncProduct: %v", err)
	}

	lines, _ := svc.Items(ctx)
	if lines[0].ProductName != "Cola Zero" {
		t.Fatalf("name not synced: %q", lines[0].ProductName)
	}
	if !lines[0].ProductPrice.Equal(mustDecimal("17000")) {
		t.Fatalf("price not synced: %s", lines[0].ProductPrice)
	}
	if lines[0].ProductCategory != "Diet Drinks" {
		t.Fatalf("category not synced: %q", lines[0].ProductCategory)
	}

	// Product without a cart line is a no-op.
	if err := svc.SyncProduct(ctx, &models.Product{ID: 2}); err != nil {
		t.Fatalf("SyncProduct no-op: %v", err)
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	t.Parallel()

	svc, err := NewService(NewMemoryStore(), stubProducts{byID: colaCatalog()}, nil, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	var counts []int
	unsubscribe := svc.SubscribeCount(func(count int) { counts = append(counts, count) })

	ctx := context.Background()
	if err := svc.AddToCart(ctx, 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	unsubscribe()
	if err := svc.AddToCart(ctx, 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	if len(counts) != 1 {
		t.Fatalf("expected one notification before unsubscribe, got %v", counts)
	}
}

type failingStore struct {
	Store
}

func (failingStore) List(ctx context.Context) ([]models.CartLine, error) {
	return nil, fmt.Errorf("disk on fire")
}

func TestStoreFaultBecomesCodedError(t *testing.T) {
	t.Parallel()

	svc, err := NewService(failingStore{Store: NewMemoryStore()}, stubProducts{byID: colaCatalog()}, nil, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.Items(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected INTERNAL_ERROR, got %v", err)
	}
}
