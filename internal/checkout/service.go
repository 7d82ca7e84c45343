package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/hoangnd-dev/storefront/pkg/db/models"
	pkgerrors "github.com/hoangnd-dev/storefront/pkg/errors"
	"github.com/hoangnd-dev/storefront/pkg/logger"
	"github.com/hoangnd-dev/storefront/pkg/metrics"
	"github.com/hoangnd-dev/storefront/pkg/types"
)

// cartAccess is the slice of the cart service the checkout flow needs.
type cartAccess interface {
	Items(ctx context.Context) ([]models.CartLine, error)
	TotalPrice(ctx context.Context) (decimal.Decimal, error)
	ClearCart(ctx context.Context) error
}

// orderSubmitter is satisfied by the gateway client.
type orderSubmitter interface {
	SubmitOrder(ctx context.Context, order types.OrderRequest) bool
}

// Form is the checkout input as entered by the customer.
type Form struct {
	Name    string
	Phone   string
	Address string
	Note    string
}

// Document is the snapshot submitted to the gateway, returned so callers
// can render a confirmation.
type Document struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Note            string
	TotalPrice      decimal.Decimal
	OrderedAt       time.Time
	Lines           []models.CartLine
}

// Service runs the one-shot order submission pipeline: validate,
// snapshot the cart, submit, and clear the cart only on confirmed
// acceptance.
type Service interface {
	Submit(ctx context.Context, form Form) (*Document, error)
}

type service struct {
	cart    cartAccess
	gateway orderSubmitter
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
}

func NewService(cart cartAccess, gw orderSubmitter, logg *logger.Logger, m *metrics.StorefrontMetrics) (Service, error) {
	if cart == nil {
		return nil, fmt.Errorf("cart access required")
	}
	if gw == nil {
		return nil, fmt.Errorf("order submitter required")
	}
	return &service{cart: cart, gateway: gw, logg: logg, metrics: m}, nil
}

func (s *service) Submit(ctx context.Context, form Form) (*Document, error) {
	phone, err := validateForm(form)
	if err != nil {
		s.metrics.IncOrderSubmitted("invalid")
		return nil, err
	}

	lines, err := s.cart.Items(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reading cart failed")
	}
	if len(lines) == 0 {
		s.metrics.IncOrderSubmitted("empty_cart")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	total, err := s.cart.TotalPrice(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "totaling cart failed")
	}

	doc := &Document{
		CustomerName:    strings.TrimSpace(form.Name),
		CustomerPhone:   phone,
		CustomerAddress: strings.TrimSpace(form.Address),
		Note:            strings.TrimSpace(form.Note),
		TotalPrice:      total,
		OrderedAt:       time.Now().UTC(),
		Lines:           append([]models.CartLine(nil), lines...),
	}

	if !s.gateway.SubmitOrder(ctx, toOrderRequest(doc)) {
		s.metrics.IncOrderSubmitted("rejected")
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "order could not be placed, please try again")
	}

	// The gateway confirmed acceptance; only now may the cart be emptied.
	if err := s.cart.ClearCart(ctx); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "order accepted but cart clear failed", err)
		}
		return doc, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart failed")
	}

	s.metrics.IncOrderSubmitted("accepted")
	if s.logg != nil {
		s.logg.Info(ctx, "order submitted")
	}
	return doc, nil
}

// validateForm checks the customer fields and returns the normalized
// phone number. Failures are accumulated so the customer sees every
// problem at once.
func validateForm(form Form) (string, error) {
	var problems error
	if strings.TrimSpace(form.Name) == "" {
		problems = multierr.Append(problems, fmt.Errorf("name is required"))
	}
	if strings.TrimSpace(form.Address) == "" {
		problems = multierr.Append(problems, fmt.Errorf("address is required"))
	}

	phone := normalizePhone(form.Phone)
	switch {
	case phone == "":
		problems = multierr.Append(problems, fmt.Errorf("phone is required"))
	case !strings.HasPrefix(phone, "0"):
		problems = multierr.Append(problems, fmt.Errorf("phone must start with 0"))
	case len(phone) < 10 || len(phone) > 11:
		problems = multierr.Append(problems, fmt.Errorf("phone must be 10-11 digits"))
	}

	if problems != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, problems, "invalid checkout form")
	}
	return phone, nil
}

// normalizePhone keeps digits only, so "091 234-5678" validates the same
// as "0912345678".
func normalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func toOrderRequest(doc *Document) types.OrderRequest {
	items := make([]types.OrderItemRequest, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		items = append(items, types.OrderItemRequest{
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			ProductPrice: line.ProductPrice,
			Quantity:     line.Quantity,
			TotalPrice:   line.Total(),
		})
	}
	return types.OrderRequest{
		CustomerName:    doc.CustomerName,
		CustomerPhone:   doc.CustomerPhone,
		CustomerAddress: doc.CustomerAddress,
		Note:            doc.Note,
		TotalPrice:      doc.TotalPrice,
		Items:           items,
	}
}
