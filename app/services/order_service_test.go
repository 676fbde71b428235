package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bloom/app/models"
	"github.com/shashiranjanraj/bloom/app/services"
)

// memOrderStore is an in-memory OrderStore.
type memOrderStore struct {
	orders map[uint]models.Order
	nextID uint
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{orders: map[uint]models.Order{}, nextID: 1}
}

func (m *memOrderStore) CreateWithItems(o *models.Order) error {
	o.ID = m.nextID
	m.nextID++
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	m.orders[o.ID] = *o
	return nil
}

func (m *memOrderStore) FindByID(id uint) (models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return models.Order{}, assert.AnError
	}
	return o, nil
}

func (m *memOrderStore) Save(o *models.Order) error {
	m.orders[o.ID] = *o
	return nil
}

func guestReq() services.CreateOrderRequest {
	key := "sess-1"
	return services.CreateOrderRequest{
		SessionKey:      &key,
		CustomerName:    "Анна",
		CustomerPhone:   "+79991234567",
		DeliveryAddress: "Москва, ул. Ленина 1",
		DeliveryTime:    time.Now().Add(3 * time.Hour),
		PaymentMethod:   models.PaymentCash,
		Items: []services.OrderLine{
			{ProductID: 1, Quantity: 2, Price: 2500},
			{ProductID: 3, Quantity: 1, Price: 1200},
		},
	}
}

func TestCreateComputesTotalAndStatus(t *testing.T) {
	svc := services.NewOrderServiceWith(newMemOrderStore())

	order, err := svc.Create(guestReq())
	require.NoError(t, err)

	assert.Equal(t, models.StatusNew, order.Status)
	assert.InDelta(t, 6200, order.TotalPrice, 0.001)
	assert.Len(t, order.Items, 2)
	assert.NotZero(t, order.ID)
}

func TestCreateValidation(t *testing.T) {
	svc := services.NewOrderServiceWith(newMemOrderStore())

	cases := []struct {
		name   string
		mutate func(*services.CreateOrderRequest)
	}{
		{"blank name", func(r *services.CreateOrderRequest) { r.CustomerName = "  " }},
		{"blank phone", func(r *services.CreateOrderRequest) { r.CustomerPhone = "" }},
		{"blank address", func(r *services.CreateOrderRequest) { r.DeliveryAddress = "" }},
		{"past delivery", func(r *services.CreateOrderRequest) { r.DeliveryTime = time.Now().Add(-time.Hour) }},
		{"no items", func(r *services.CreateOrderRequest) { r.Items = nil }},
		{"zero quantity", func(r *services.CreateOrderRequest) { r.Items[0].Quantity = 0 }},
		{"bad payment", func(r *services.CreateOrderRequest) { r.PaymentMethod = "crypto" }},
		{"no identity", func(r *services.CreateOrderRequest) { r.SessionKey = nil }},
		{"both identities", func(r *services.CreateOrderRequest) {
			uid := uint(5)
			r.UserID = &uid
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := guestReq()
			tc.mutate(&req)
			_, err := svc.Create(req)
			assert.ErrorIs(t, err, services.ErrValidation)
		})
	}
}

func TestCreateIgnoresCallerTotal(t *testing.T) {
	svc := services.NewOrderServiceWith(newMemOrderStore())
	req := guestReq()
	req.Items = []services.OrderLine{{ProductID: 1, Quantity: 1, Price: 900}}

	order, err := svc.Create(req)
	require.NoError(t, err)
	assert.InDelta(t, 900, order.TotalPrice, 0.001)
}

func TestTransitionChangesStatusOnce(t *testing.T) {
	store := newMemOrderStore()
	svc := services.NewOrderServiceWith(store)
	order, err := svc.Create(guestReq())
	require.NoError(t, err)

	updated, changed, err := svc.Transition(order.ID, models.StatusConfirmed)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.StatusConfirmed, updated.Status)

	// Same status again: no change reported, no error.
	_, changed, err = svc.Transition(order.ID, models.StatusConfirmed)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestTransitionUnknownStatus(t *testing.T) {
	svc := services.NewOrderServiceWith(newMemOrderStore())
	order, err := svc.Create(guestReq())
	require.NoError(t, err)

	_, _, err = svc.Transition(order.ID, "shipped")
	assert.ErrorIs(t, err, services.ErrUnknownStatus)
}

func TestCancelGuard(t *testing.T) {
	cancellable := []models.OrderStatus{
		models.StatusNew, models.StatusConfirmed, models.StatusProcessing,
	}
	for _, from := range cancellable {
		store := newMemOrderStore()
		svc := services.NewOrderServiceWith(store)
		order, err := svc.Create(guestReq())
		require.NoError(t, err)

		order.Status = from
		require.NoError(t, store.Save(&order))

		_, changed, err := svc.Transition(order.ID, models.StatusCancelled)
		require.NoError(t, err, "from %s", from)
		assert.True(t, changed)
	}

	blocked := []models.OrderStatus{
		models.StatusInProgress, models.StatusDelivered, models.StatusCancelled,
	}
	for _, from := range blocked {
		store := newMemOrderStore()
		svc := services.NewOrderServiceWith(store)
		order, err := svc.Create(guestReq())
		require.NoError(t, err)

		order.Status = from
		require.NoError(t, store.Save(&order))

		// Cancelling again is a guard failure too, not a no-op.
		_, _, err = svc.Transition(order.ID, models.StatusCancelled)
		assert.ErrorIs(t, err, services.ErrCancelGuard, "from %s", from)
	}
}

func TestPermissiveTransitionsByDefault(t *testing.T) {
	store := newMemOrderStore()
	svc := services.NewOrderServiceWith(store)
	order, err := svc.Create(guestReq())
	require.NoError(t, err)

	// Backwards and skipping moves are allowed without sequence enforcement.
	_, changed, err := svc.Transition(order.ID, models.StatusDelivered)
	require.NoError(t, err)
	assert.True(t, changed)

	_, changed, err = svc.Transition(order.ID, models.StatusNew)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestEnforcedSequenceBlocksSkips(t *testing.T) {
	store := newMemOrderStore()
	svc := services.NewOrderServiceWith(store)
	svc.EnforceSequence = true

	order, err := svc.Create(guestReq())
	require.NoError(t, err)

	_, _, err = svc.Transition(order.ID, models.StatusDelivered)
	assert.ErrorIs(t, err, services.ErrValidation)

	_, changed, err := svc.Transition(order.ID, models.StatusConfirmed)
	require.NoError(t, err)
	assert.True(t, changed)

	// Cancellation stays available under enforcement.
	_, changed, err = svc.Transition(order.ID, models.StatusCancelled)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestRecomputeTotal(t *testing.T) {
	store := newMemOrderStore()
	svc := services.NewOrderServiceWith(store)
	order, err := svc.Create(guestReq())
	require.NoError(t, err)

	// Simulate an item edit outside the engine.
	order.Items[0].Quantity = 1
	require.NoError(t, store.Save(&order))

	updated, err := svc.RecomputeTotal(order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3700, updated.TotalPrice, 0.001)
}
