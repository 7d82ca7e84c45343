package orders

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hoangnd-dev/storefront/pkg/db/models"
	pkgerrors "github.com/hoangnd-dev/storefront/pkg/errors"
	"github.com/hoangnd-dev/storefront/pkg/types"
)

func newTestService(t *testing.T) Service {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "orders.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Order{}, &models.OrderItem{}))

	repo, err := NewRepository(conn)
	require.NoError(t, err)
	svc, err := NewService(repo, nil)
	require.NoError(t, err)
	return svc
}

func orderRequest(name string) types.OrderRequest {
	return types.OrderRequest{
		CustomerName:    name,
		CustomerPhone:   "0912345678",
		CustomerAddress: "1 Tran Hung Dao, Ha Noi",
		Items: []types.OrderItemRequest{
			{ProductID: 1, ProductName: "Pho Bo", ProductPrice: decimal.NewFromInt(55000), Quantity: 2},
			{ProductID: 2, ProductName: "Banh Mi", ProductPrice: decimal.NewFromInt(25000), Quantity: 1},
		},
	}
}

func TestCreatePersistsOrderWithItems(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, orderRequest("Nguyen Van A"))
	require.NoError(t, err)
	require.NotZero(t, order.ID)

	// Total is recomputed from item snapshots: 2*55000 + 25000.
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(135000)),
		"expected 135000, got %s", order.TotalPrice)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Len(t, listed[0].Items, 2)
	assert.Equal(t, "Pho Bo", listed[0].Items[0].ProductName)
	assert.True(t, listed[0].Items[0].TotalPrice.Equal(decimal.NewFromInt(110000)))
}

func TestCreateRejectsInvalidRequests(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := map[string]func(*types.OrderRequest){
		"missing name":    func(r *types.OrderRequest) { r.CustomerName = "" },
		"missing phone":   func(r *types.OrderRequest) { r.CustomerPhone = "" },
		"missing address": func(r *types.OrderRequest) { r.CustomerAddress = "" },
		"no items":        func(r *types.OrderRequest) { r.Items = nil },
		"zero quantity":   func(r *types.OrderRequest) { r.Items[0].Quantity = 0 },
		"nameless item":   func(r *types.OrderRequest) { r.Items[0].ProductName = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := orderRequest("Nguyen Van A")
			mutate(&req)

			_, err := svc.Create(ctx, req)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed, "expected coded error, got %v", err)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed, "invalid requests must not persist anything")
}

func TestListNewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, orderRequest("First"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, orderRequest("Second"))
	require.NoError(t, err)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, first.ID, listed[1].ID)
}
