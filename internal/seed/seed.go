package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hoangnd-dev/storefront/internal/catalog"
	"github.com/hoangnd-dev/storefront/pkg/db/models"
	"github.com/hoangnd-dev/storefront/pkg/logger"
)

func menu() []models.Product {
	return []models.Product{
		{Name: "Pho Bo", Price: decimal.NewFromInt(55000), Description: "Beef noodle soup with fresh herbs", Image: "assets/img/pho-bo.jpg", Category: "Noodles"},
		{Name: "Bun Cha", Price: decimal.NewFromInt(45000), Description: "Grilled pork with rice noodles and dipping sauce", Image: "assets/img/bun-cha.jpg", Category: "Noodles"},
		{Name: "Banh Mi Thit", Price: decimal.NewFromInt(25000), Description: "Crispy baguette with pork, pate and pickled vegetables", Image: "assets/img/banh-mi.jpg", Category: "Street Food"},
		{Name: "Goi Cuon", Price: decimal.NewFromInt(35000), Description: "Fresh spring rolls with shrimp and herbs", Image: "assets/img/goi-cuon.jpg", Category: "Street Food"},
		{Name: "Com Tam", Price: decimal.NewFromInt(50000), Description: "Broken rice with grilled pork chop and fried egg", Image: "assets/img/com-tam.jpg", Category: "Rice"},
		{Name: "Com Ga Hoi An", Price: decimal.NewFromInt(48000), Description: "Hoi An chicken rice with turmeric and mint", Image: "assets/img/com-ga.jpg", Category: "Rice"},
		{Name: "Ca Phe Sua Da", Price: decimal.NewFromInt(29000), Description: "Iced coffee with condensed milk", Image: "assets/img/ca-phe.jpg", Category: "Drinks"},
		{Name: "Tra Da", Price: decimal.NewFromInt(5000), Description: "Iced green tea", Category: "Drinks"},
		{Name: "Nuoc Mia", Price: decimal.NewFromInt(15000), Description: "Fresh sugarcane juice with kumquat", Image: "assets/img/nuoc-mia.jpg", Category: "Drinks"},
		{Name: "Che Ba Mau", Price: decimal.NewFromInt(30000), Description: "Three-color dessert with beans and coconut milk", Image: "assets/img/che-ba-mau.jpg", Category: "Dessert"},
	}
}

// Products inserts the demo menu when the catalog is empty. Safe to run
// on every startup.
func Products(ctx context.Context, store catalog.Store, logg *logger.Logger) error {
	existing, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("checking catalog before seeding: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, product := range menu() {
		p := product
		if err := store.Add(ctx, &p); err != nil {
			return fmt.Errorf("seeding product %q: %w", p.Name, err)
		}
	}
	if logg != nil {
		logg.Info(logg.WithField(ctx, "count", len(menu())), "catalog seeded with demo menu")
	}
	return nil
}
