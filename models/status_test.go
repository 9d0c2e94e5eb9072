package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItemStatus(t *testing.T) {
	testCases := []struct {
		token string
		want  ItemStatus
	}{
		{"pending", ItemStatusPending},
		{"Pending", ItemStatusPending},
		{"PENDING", ItemStatusPending},
		{"confirmed", ItemStatusConfirmed},
		{"Preparing", ItemStatusPreparing},
		{"ready", ItemStatusReady},
		{"Ready", ItemStatusReady},
		{"served", ItemStatusServed},
		{"Served", ItemStatusServed},
		{"Serve", ItemStatusServed},
		{"serve", ItemStatusServed},
		{"SERVE", ItemStatusServed},
		{"cancelled", ItemStatusCancelled},
		{"  ready  ", ItemStatusReady},
	}

	for _, tc := range testCases {
		got, err := ParseItemStatus(tc.token)
		require.NoError(t, err, "token %q", tc.token)
		assert.Equal(t, tc.want, got, "token %q", tc.token)
	}
}

func TestParseItemStatusUnknown(t *testing.T) {
	for _, token := range []string{"", "bogus", "complete", "Complete", "done"} {
		_, err := ParseItemStatus(token)
		require.Error(t, err, "token %q", token)

		appErr, ok := AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, ErrKindValidation, appErr.Kind)
		assert.Contains(t, appErr.Message, "Unknown status value")
	}
}

func TestParseOrderStatus(t *testing.T) {
	testCases := []struct {
		token string
		want  OrderStatus
	}{
		{"pending", OrderStatusPending},
		{"confirmed", OrderStatusConfirmed},
		{"Preparing", OrderStatusPreparing},
		{"ready", OrderStatusReady},
		// Orders have no served state; serving maps to ready.
		{"Serve", OrderStatusReady},
		{"Served", OrderStatusReady},
		{"served", OrderStatusReady},
		{"Complete", OrderStatusComplete},
		{"complete", OrderStatusComplete},
		{"COMPLETE", OrderStatusComplete},
		{"cancelled", OrderStatusCancelled},
	}

	for _, tc := range testCases {
		got, err := ParseOrderStatus(tc.token)
		require.NoError(t, err, "token %q", tc.token)
		assert.Equal(t, tc.want, got, "token %q", tc.token)
	}

	_, err := ParseOrderStatus("nonsense")
	require.Error(t, err)
}

func TestOverallOrderStatus(t *testing.T) {
	testCases := []struct {
		name  string
		items []ItemStatus
		want  OrderStatus
	}{
		{"no items", nil, OrderStatusPending},
		{"empty slice", []ItemStatus{}, OrderStatusPending},
		{"single pending", []ItemStatus{ItemStatusPending}, OrderStatusPending},
		{"cancelled wins over everything", []ItemStatus{ItemStatusServed, ItemStatusCancelled, ItemStatusReady}, OrderStatusCancelled},
		{"all served is complete", []ItemStatus{ItemStatusServed, ItemStatusServed}, OrderStatusComplete},
		{"ready and served is ready", []ItemStatus{ItemStatusReady, ItemStatusServed}, OrderStatusReady},
		{"all ready", []ItemStatus{ItemStatusReady, ItemStatusReady}, OrderStatusReady},
		{"preparing beats pending", []ItemStatus{ItemStatusPending, ItemStatusPreparing}, OrderStatusPreparing},
		{"preparing beats confirmed", []ItemStatus{ItemStatusConfirmed, ItemStatusPreparing}, OrderStatusPreparing},
		{"confirmed beats pending", []ItemStatus{ItemStatusPending, ItemStatusConfirmed}, OrderStatusConfirmed},
		{"served with pending is pending", []ItemStatus{ItemStatusServed, ItemStatusPending}, OrderStatusPending},
		{"ready with pending is pending", []ItemStatus{ItemStatusReady, ItemStatusPending}, OrderStatusPending},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, OverallOrderStatus(tc.items))
		})
	}
}

func TestComputeOrderStats(t *testing.T) {
	items := []OrderItem{
		{Status: ItemStatusReady},
		{Status: ItemStatusServed},
		{Status: ItemStatusPreparing},
	}

	stats := ComputeOrderStats(items)
	assert.Equal(t, 3, stats.TotalItems)
	assert.Equal(t, map[string]int{"ready": 1, "served": 1, "preparing": 1}, stats.StatusCounts)
	assert.False(t, stats.AllItemsReady)
	assert.False(t, stats.AllItemsServed)
	assert.True(t, stats.HasPreparingItems)

	allServed := ComputeOrderStats([]OrderItem{{Status: ItemStatusServed}})
	assert.True(t, allServed.AllItemsReady)
	assert.True(t, allServed.AllItemsServed)

	// No items: the all-* flags hold vacuously.
	empty := ComputeOrderStats(nil)
	assert.Equal(t, 0, empty.TotalItems)
	assert.True(t, empty.AllItemsReady)
	assert.True(t, empty.AllItemsServed)
	assert.False(t, empty.HasPreparingItems)
}
