package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/bloom/app/models"
)

func TestCanBeCancelled(t *testing.T) {
	cases := []struct {
		status models.OrderStatus
		want   bool
	}{
		{models.StatusNew, true},
		{models.StatusConfirmed, true},
		{models.StatusProcessing, true},
		{models.StatusInProgress, false},
		{models.StatusDelivered, false},
		{models.StatusCancelled, false},
	}
	for _, tc := range cases {
		o := models.Order{Status: tc.status}
		assert.Equal(t, tc.want, o.CanBeCancelled(), "status %s", tc.status)
	}
}

func TestStatusSequenceIndex(t *testing.T) {
	assert.Equal(t, 0, models.StatusNew.SequenceIndex())
	assert.Equal(t, 4, models.StatusDelivered.SequenceIndex())
	assert.Equal(t, -1, models.StatusCancelled.SequenceIndex())
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "Новый", models.StatusNew.Label())
	assert.Equal(t, "В процессе доставки", models.StatusInProgress.Label())
	assert.Equal(t, "Отменен", models.StatusCancelled.Label())
	assert.True(t, models.StatusProcessing.Valid())
	assert.False(t, models.OrderStatus("shipped").Valid())
}

func TestItemsTotal(t *testing.T) {
	o := models.Order{Items: []models.OrderItem{
		{Quantity: 2, Price: 2500},
		{Quantity: 1, Price: 1200},
	}}
	assert.InDelta(t, 6200, o.ItemsTotal(), 0.001)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "red-roses-bouquet", models.Slugify("Red Roses  Bouquet"))
	assert.Equal(t, "розы", models.Slugify("Розы"))
	assert.Equal(t, "bouquet-25", models.Slugify(" Bouquet #25! "))
}
