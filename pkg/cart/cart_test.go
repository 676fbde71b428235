package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bloom/pkg/cart"
	"github.com/shashiranjanraj/bloom/pkg/session"
)

func TestAddAccumulatesQuantity(t *testing.T) {
	s := session.New()
	c := cart.FromSession(s)

	c.Add(1, "Букет роз", 2500, 2, false)
	c.Add(1, "Букет роз", 2500, 3, false)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 5, c.TotalQuantity())
	assert.InDelta(t, 12500, c.Total(), 0.001)
}

func TestAddReplaceSetsAbsoluteQuantity(t *testing.T) {
	s := session.New()
	c := cart.FromSession(s)

	c.Add(1, "Букет роз", 2500, 2, false)
	c.Add(1, "Букет роз", 2500, 1, true)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestReplaceToZeroRemovesLine(t *testing.T) {
	s := session.New()
	c := cart.FromSession(s)

	c.Add(1, "Букет роз", 2500, 2, false)
	c.Add(1, "Букет роз", 2500, 0, true)

	assert.True(t, c.IsEmpty())
}

func TestUnitPriceLockedAtFirstAdd(t *testing.T) {
	s := session.New()
	c := cart.FromSession(s)

	c.Add(1, "Букет роз", 2500, 1, false)
	// Catalog price changed between adds; the cart keeps the original.
	c.Add(1, "Букет роз", 3000, 1, false)

	items := c.Items()
	require.Len(t, items, 1)
	assert.InDelta(t, 2500, items[0].UnitPrice, 0.001)
	assert.InDelta(t, 5000, c.Total(), 0.001)
}

func TestCartPersistsAcrossLoads(t *testing.T) {
	s := session.New()

	cart.FromSession(s).Add(7, "Тюльпаны", 1800, 2, false)

	reloaded := cart.FromSession(s)
	items := reloaded.Items()
	require.Len(t, items, 1)
	assert.Equal(t, uint(7), items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestClearYieldsFreshEmptyCart(t *testing.T) {
	s := session.New()
	c := cart.FromSession(s)
	c.Add(1, "Букет роз", 2500, 2, false)

	c.Clear()

	assert.True(t, cart.FromSession(s).IsEmpty())
	assert.Zero(t, cart.FromSession(s).TotalQuantity())
}

func TestRemove(t *testing.T) {
	s := session.New()
	c := cart.FromSession(s)
	c.Add(1, "Букет роз", 2500, 1, false)
	c.Add(2, "Тюльпаны", 1800, 1, false)

	c.Remove(1)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, uint(2), items[0].ProductID)
}
