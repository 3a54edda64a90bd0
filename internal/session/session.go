// Package session holds the per-customer ordering state and drives the
// basket, composer, classifier and transition codec against the backend.
//
// Every mutation the backend accepts is followed by a resync: the delivery
// list is fetched again and reclassified. No partial client-side patching of
// delivery state is done.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"fooddelivery/internal/basket"
	"fooddelivery/internal/delivery"
	"fooddelivery/internal/model"
	"fooddelivery/internal/order"
	"fooddelivery/internal/transition"
)

var (
	ErrUnknownMenuItem = errors.New("item is not in the current search results")
	ErrInvalidTip      = errors.New("tip must be positive")
)

// Backend is the network collaborator. *service.Client implements it.
type Backend interface {
	SearchFoods(ctx context.Context, query string) ([]model.MenuItem, error)
	ListDeliveries(ctx context.Context) ([]model.DeliveryRecord, error)
	GetDelivery(ctx context.Context, orderID string) (*model.DeliveryRecord, error)
	CreateOrder(ctx context.Context, req model.OrderRequest) (model.OrderAck, error)
	Dispatch(ctx context.Context, d transition.Descriptor) error
	AddTip(ctx context.Context, orderID string, tip decimal.Decimal) error
	AssignDeliveryMan(ctx context.Context, orderID, deliveryManID string) error
}

// State is an immutable view of a session. Slices are replaced on every
// change and must not be modified by callers.
type State struct {
	CustomerID    string                 `json:"customerId"`
	Query         string                 `json:"query"`
	SearchResults []model.MenuItem       `json:"searchResults"`
	Basket        []model.BasketLine     `json:"basket"`
	Active        []model.DeliveryRecord `json:"active"`
	Completed     []model.DeliveryRecord `json:"completed"`
	LastOrder     *model.OrderAck        `json:"lastOrder,omitempty"`
	LastError     string                 `json:"lastError,omitempty"`
	RefreshedAt   time.Time              `json:"refreshedAt"`
}

type Session struct {
	mu       sync.Mutex
	backend  Backend
	composer *order.Composer
	now      func() time.Time
	state    State
}

func New(customerID string, backend Backend, composer *order.Composer) *Session {
	return &Session{
		backend:  backend,
		composer: composer,
		now:      time.Now,
		state: State{
			CustomerID:    customerID,
			SearchResults: []model.MenuItem{},
			Basket:        []model.BasketLine{},
			Active:        []model.DeliveryRecord{},
			Completed:     []model.DeliveryRecord{},
		},
	}
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Search(ctx context.Context, query string) ([]model.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.backend.SearchFoods(ctx, query)
	if err != nil {
		return nil, s.fail(err)
	}

	s.state.Query = query
	s.state.SearchResults = items
	s.state.LastError = ""
	return items, nil
}

// AddToBasket merges the search result with the given id into the basket.
func (s *Session) AddToBasket(itemID string) ([]model.BasketLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.state.SearchResults {
		if item.ID == itemID {
			s.state.Basket = basket.Add(s.state.Basket, item)
			s.state.LastError = ""
			return s.state.Basket, nil
		}
	}
	return nil, s.fail(fmt.Errorf("add %s: %w", itemID, ErrUnknownMenuItem))
}

func (s *Session) RemoveFromBasket(itemID string) []model.BasketLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Basket = basket.Remove(s.state.Basket, itemID)
	return s.state.Basket
}

// SubmitOrder composes an order out of the current basket and sends it. On
// success the basket is emptied and deliveries are resynced.
func (s *Session) SubmitOrder(ctx context.Context, address string) (model.OrderRequest, model.OrderAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, err := s.composer.Compose(s.state.Basket, s.state.CustomerID, address)
	if err != nil {
		return model.OrderRequest{}, model.OrderAck{}, s.fail(fmt.Errorf("compose order: %w", err))
	}

	ack, err := s.backend.CreateOrder(ctx, req)
	if err != nil {
		return model.OrderRequest{}, model.OrderAck{}, s.fail(err)
	}

	slog.Info("order submitted",
		"customer_id", s.state.CustomerID,
		"order_id", ack.OrderID,
		"restaurant_id", req.RestaurantID,
		"delivery_charge", req.DeliveryCharge.StringFixed(2),
	)

	s.state.Basket = []model.BasketLine{}
	s.state.LastOrder = &ack
	s.state.LastError = ""
	s.resync(ctx)
	return req, ack, nil
}

// Act decodes a selector token and performs the transition it names.
func (s *Session) Act(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orderID, action, err := transition.Decode(token)
	if err != nil {
		return s.fail(err)
	}

	d, err := transition.Resolve(orderID, action)
	if err != nil {
		return s.fail(err)
	}

	if err := s.backend.Dispatch(ctx, d); err != nil {
		return s.fail(err)
	}

	slog.Info("transition dispatched", "order_id", orderID, "action", action)
	s.state.LastError = ""
	s.resync(ctx)
	return nil
}

func (s *Session) AddTip(ctx context.Context, orderID string, tip decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !tip.IsPositive() {
		return s.fail(ErrInvalidTip)
	}
	if err := s.backend.AddTip(ctx, orderID, tip); err != nil {
		return s.fail(err)
	}

	s.state.LastError = ""
	s.resync(ctx)
	return nil
}

func (s *Session) AssignDeliveryMan(ctx context.Context, orderID, deliveryManID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.AssignDeliveryMan(ctx, orderID, deliveryManID); err != nil {
		return s.fail(err)
	}

	s.state.LastError = ""
	s.resync(ctx)
	return nil
}

// Delivery fetches a single delivery without touching the cached lists.
func (s *Session) Delivery(ctx context.Context, orderID string) (*model.DeliveryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.backend.GetDelivery(ctx, orderID)
	if err != nil {
		return nil, s.fail(err)
	}
	return d, nil
}

// Refresh fetches and reclassifies deliveries.
func (s *Session) Refresh(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refresh(ctx); err != nil {
		return s.state, s.fail(err)
	}
	s.state.LastError = ""
	return s.state, nil
}

func (s *Session) refresh(ctx context.Context) error {
	records, err := s.backend.ListDeliveries(ctx)
	if err != nil {
		return err
	}
	s.state.Active, s.state.Completed = delivery.Classify(records)
	s.state.RefreshedAt = s.now()
	return nil
}

// resync runs after an accepted mutation. Its failure does not undo the
// mutation; it is kept as the session's last error.
func (s *Session) resync(ctx context.Context) {
	if err := s.refresh(ctx); err != nil {
		slog.Warn("resync failed", "customer_id", s.state.CustomerID, "error", err)
		s.state.LastError = err.Error()
	}
}

func (s *Session) fail(err error) error {
	s.state.LastError = err.Error()
	return err
}
