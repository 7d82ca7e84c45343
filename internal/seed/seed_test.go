package seed

import (
	"context"
	"testing"

	"github.com/hoangnd-dev/storefront/internal/catalog"
	"github.com/hoangnd-dev/storefront/pkg/db/models"
)

func TestProductsSeedsEmptyCatalog(t *testing.T) {
	t.Parallel()

	store := catalog.NewMemoryStore()
	ctx := context.Background()

	if err := Products(ctx, store, nil); err != nil {
		t.Fatalf("Products: %v", err)
	}

	listed, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != len(menu()) {
		t.Fatalf("expected %d products, got %d", len(menu()), len(listed))
	}
	for _, p := range listed {
		if p.Image == "" {
			t.Fatalf("product %q left without an image", p.Name)
		}
	}
}

func TestProductsIsIdempotent(t *testing.T) {
	t.Parallel()

	store := catalog.NewMemoryStore()
	ctx := context.Background()

	if err := Products(ctx, store, nil); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := Products(ctx, store, nil); err != nil {
		t.Fatalf("second run: %v", err)
	}

	listed, _ := store.List(ctx)
	if len(listed) != len(menu()) {
		t.Fatalf("expected %d products after rerun, got %d", len(menu()), len(listed))
	}
}

func TestProductsSkipsNonEmptyCatalog(t *testing.T) {
	t.Parallel()

	store := catalog.NewMemoryStore()
	ctx := context.Background()
	if err := store.Add(ctx, &models.Product{Name: "Existing", Category: "Misc"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := Products(ctx, store, nil); err != nil {
		t.Fatalf("Products: %v", err)
	}
	listed, _ := store.List(ctx)
	if len(listed) != 1 {
		t.Fatalf("expected untouched catalog of 1, got %d", len(listed))
	}
}
