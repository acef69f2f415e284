package shop

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/retailos/internal/apperror"
	"github.com/georgemunganga/retailos/internal/modules/auth"
	"github.com/georgemunganga/retailos/internal/modules/employee"
	"github.com/georgemunganga/retailos/internal/modules/inventory"
	"github.com/georgemunganga/retailos/internal/modules/pos"
	"github.com/georgemunganga/retailos/internal/modules/user"
	"github.com/georgemunganga/retailos/internal/tenant"
)

// Action is one request of the action protocol. The unexported method keeps
// the set of variants closed to this package; each variant carries its own
// execution, so a new kind cannot be added without handling it.
type Action interface {
	run(ctx context.Context, s *services) (interface{}, error)
}

// Kinds of the action protocol, as sent in the "action" field.
const (
	KindRegister     = "register"
	KindLogin        = "login"
	KindAddEmployee  = "add_employee"
	KindEditEmployee = "edit_employee"
	KindReceive      = "receive"
	KindRestock      = "restock"
	KindEditItem     = "edit_item"
	KindCheckout     = "checkout"
)

var variants = map[string]func() Action{
	KindRegister:     func() Action { return &registerAction{} },
	KindLogin:        func() Action { return &loginAction{} },
	KindAddEmployee:  func() Action { return &addEmployeeAction{} },
	KindEditEmployee: func() Action { return &editEmployeeAction{} },
	KindReceive:      func() Action { return &receiveAction{} },
	KindRestock:      func() Action { return &restockAction{} },
	KindEditItem:     func() Action { return &editItemAction{} },
	KindCheckout:     func() Action { return &checkoutAction{} },
}

// Decode turns a request body into its action variant.
func Decode(body []byte) (Action, error) {
	var envelope struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}
	newAction, ok := variants[envelope.Action]
	if !ok {
		return nil, fmt.Errorf("%w: unknown action %q", apperror.ErrValidation, envelope.Action)
	}
	a := newAction()
	if err := json.Unmarshal(body, a); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperror.ErrValidation, envelope.Action, err)
	}
	return a, nil
}

type success struct {
	Success bool `json:"success"`
}

var acknowledged = success{Success: true}

// scoped is embedded by every action that works on one store's data.
type scoped struct {
	StoreID string `json:"storeId"`
}

func (s scoped) store(ctx context.Context) (uuid.UUID, error) {
	return tenant.Resolve(ctx, s.StoreID)
}

// ── accounts ──────────────────────────────────────────────────────────────────

type registerAction struct {
	user.RegisterRequest
}

func (a *registerAction) run(ctx context.Context, s *services) (interface{}, error) {
	return s.auth.Register(ctx, a.RegisterRequest)
}

type loginAction struct {
	auth.LoginRequest
}

func (a *loginAction) run(ctx context.Context, s *services) (interface{}, error) {
	return s.auth.Login(ctx, a.Login, a.Password)
}

// ── employees ─────────────────────────────────────────────────────────────────

type addEmployeeAction struct {
	scoped
	employee.AddRequest
}

func (a *addEmployeeAction) run(ctx context.Context, s *services) (interface{}, error) {
	storeID, err := a.store(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.employees.Add(ctx, storeID, a.AddRequest); err != nil {
		return nil, err
	}
	return acknowledged, nil
}

type editEmployeeAction struct {
	scoped
	employee.EditRequest
}

func (a *editEmployeeAction) run(ctx context.Context, s *services) (interface{}, error) {
	storeID, err := a.store(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.employees.Edit(ctx, storeID, a.EditRequest); err != nil {
		return nil, err
	}
	return acknowledged, nil
}

// ── inventory ─────────────────────────────────────────────────────────────────

type receiveAction struct {
	scoped
	inventory.ReceiveRequest
}

func (a *receiveAction) run(ctx context.Context, s *services) (interface{}, error) {
	storeID, err := a.store(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.inventory.Receive(ctx, storeID, a.ReceiveRequest); err != nil {
		return nil, err
	}
	return acknowledged, nil
}

type restockAction struct {
	scoped
	inventory.RestockRequest
}

func (a *restockAction) run(ctx context.Context, s *services) (interface{}, error) {
	storeID, err := a.store(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.inventory.Restock(ctx, storeID, a.RestockRequest); err != nil {
		return nil, err
	}
	return acknowledged, nil
}

type editItemAction struct {
	scoped
	inventory.EditRequest
}

func (a *editItemAction) run(ctx context.Context, s *services) (interface{}, error) {
	storeID, err := a.store(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.inventory.EditItem(ctx, storeID, a.EditRequest); err != nil {
		return nil, err
	}
	return acknowledged, nil
}

// ── checkout ──────────────────────────────────────────────────────────────────

type checkoutAction struct {
	scoped
	pos.CheckoutRequest
}

type checkoutResult struct {
	Success   bool            `json:"success"`
	ReceiptID string          `json:"receiptId"`
	Change    decimal.Decimal `json:"change"`
}

func (a *checkoutAction) run(ctx context.Context, s *services) (interface{}, error) {
	storeID, err := a.store(ctx)
	if err != nil {
		return nil, err
	}
	receipt, err := s.sales.Checkout(ctx, storeID, a.CheckoutRequest)
	if err != nil {
		return nil, err
	}
	return checkoutResult{Success: true, ReceiptID: receipt.ReceiptID, Change: receipt.Change()}, nil
}
