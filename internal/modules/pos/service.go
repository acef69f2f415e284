package pos

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/retailos/internal/apperror"
	"github.com/georgemunganga/retailos/internal/database"
	"github.com/georgemunganga/retailos/internal/validate"
)

const (
	DefaultReceiptLimit = 50
	DefaultLineLimit    = 200

	retryBaseDelay = 50 * time.Millisecond
)

var (
	ErrEmptyCart           = fmt.Errorf("%w: cart is empty", apperror.ErrValidation)
	ErrUnknownStoreContext = fmt.Errorf("%w: unknown store context", apperror.ErrForbidden)
)

// Service defines POS business logic. Every call is scoped to storeID.
type Service interface {
	// Checkout sells the cart as one receipt: all lines are applied or none.
	Checkout(ctx context.Context, storeID uuid.UUID, req CheckoutRequest) (*Receipt, error)
	ListReceipts(ctx context.Context, storeID uuid.UUID, limit int) ([]*Receipt, error)
	GetReceipt(ctx context.Context, storeID uuid.UUID, receiptID string) (*Receipt, error)
	ListLines(ctx context.Context, storeID uuid.UUID, limit int) ([]*SaleLine, error)
}

type service struct {
	repo        Repository
	maxAttempts int
	now         func() time.Time
}

// NewService creates a POS service. maxAttempts bounds how often a checkout
// is tried when the database reports lock contention.
func NewService(repo Repository, maxAttempts int) Service {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &service{repo: repo, maxAttempts: maxAttempts, now: time.Now}
}

func (s *service) Checkout(ctx context.Context, storeID uuid.UUID, req CheckoutRequest) (*Receipt, error) {
	if storeID == uuid.Nil {
		return nil, ErrUnknownStoreContext
	}
	if len(req.Cart) == 0 {
		return nil, ErrEmptyCart
	}
	for i := range req.Cart {
		req.Cart[i].Code = strings.TrimSpace(req.Cart[i].Code)
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	receipt := &Receipt{
		ReceiptID:  generateReceiptID(now),
		StoreID:    storeID,
		SellerName: strings.TrimSpace(req.SellerName),
		PayCash:    req.PayCash,
		PayCard:    req.PayCard,
		CreatedAt:  now,
	}
	for _, c := range req.Cart {
		receipt.Lines = append(receipt.Lines, &SaleLine{
			StoreID:    storeID,
			ReceiptID:  receipt.ReceiptID,
			Code:       c.Code,
			Qty:        c.Qty,
			SellerName: receipt.SellerName,
			PayCash:    receipt.PayCash,
			PayCard:    receipt.PayCard,
			CreatedAt:  now,
		})
	}

	if err := s.checkoutWithRetry(ctx, receipt); err != nil {
		if errors.Is(err, apperror.ErrInsufficientStock) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", apperror.ErrCheckoutFailed, err)
	}

	receipt.Total = total(receipt.Lines)
	return receipt, nil
}

// checkoutWithRetry repeats the whole transaction with exponential backoff
// while the failure is transient contention.
func (s *service) checkoutWithRetry(ctx context.Context, receipt *Receipt) error {
	delay := retryBaseDelay
	for attempt := 1; ; attempt++ {
		err := s.repo.Checkout(ctx, receipt)
		if err == nil || !database.IsTransient(err) || attempt >= s.maxAttempts {
			return err
		}
		log.Printf("pos: checkout %s attempt %d hit contention, retrying in %s: %v",
			receipt.ReceiptID, attempt, delay, err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}

func (s *service) ListReceipts(ctx context.Context, storeID uuid.UUID, limit int) ([]*Receipt, error) {
	if limit <= 0 {
		limit = DefaultReceiptLimit
	}
	return s.repo.ListReceipts(ctx, storeID, limit)
}

func (s *service) GetReceipt(ctx context.Context, storeID uuid.UUID, receiptID string) (*Receipt, error) {
	return s.repo.GetReceipt(ctx, storeID, strings.TrimSpace(receiptID))
}

func (s *service) ListLines(ctx context.Context, storeID uuid.UUID, limit int) ([]*SaleLine, error) {
	if limit <= 0 {
		limit = DefaultLineLimit
	}
	return s.repo.ListLines(ctx, storeID, limit)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// generateReceiptID creates REC-YYYYMMDD-HHMMSSmmm-XXXXXX from the UTC clock
// and six random hex digits.
func generateReceiptID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("REC-%s%03d-%s", now.Format("20060102-150405"), now.Nanosecond()/int(time.Millisecond), suffix)
}

func total(lines []*SaleLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.PriceSell.Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	return sum
}
