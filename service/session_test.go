package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerniceZTT/gwsample_end/models"
)

func newTestSource() *fakeSource {
	orders := sampleOrders()
	return &fakeSource{
		fakeBackend: &fakeBackend{orders: orders},
		orders:      orders,
		partners: []models.BusinessPartner{
			{BusinessPartnerID: "0100000000", CompanyName: "SAP"},
		},
		products: []models.Product{
			{ProductID: "HT-1000", Name: "Notebook Basic 15", Category: "Notebooks"},
		},
	}
}

func TestSessionRegistry_CreateAppliesInitialGrouping(t *testing.T) {
	source := newTestSource()
	registry := NewSessionRegistry(source, time.Hour, models.GroupFieldDeliveryStatus)

	session, err := registry.Create()
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, models.GroupFieldDeliveryStatus, session.Coordinator.GroupField())
	require.Len(t, source.lists, 1)
	assert.Equal(t, []models.SortKey{{Field: "DeliveryStatus", Group: true}}, source.lists[0].currentSort())

	got, ok := registry.Get(session.ID)
	require.True(t, ok)
	assert.Same(t, session, got)
}

func TestSessionRegistry_SessionsAreIsolated(t *testing.T) {
	source := newTestSource()
	registry := NewSessionRegistry(source, time.Hour, models.GroupFieldNone)

	a, err := registry.Create()
	require.NoError(t, err)
	b, err := registry.Create()
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, models.GroupFieldNone, a.Coordinator.GroupField())

	_, err = a.Coordinator.ExecuteSearch(context.Background(), models.SearchCriteria{SalesOrderID: "0500000001"})
	require.NoError(t, err)

	countA, err := a.Coordinator.RecordCount(context.Background())
	require.NoError(t, err)
	countB, err := b.Coordinator.RecordCount(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, countA)
	assert.Equal(t, 3, countB)
	assert.Len(t, a.Notifications.Drain(), 1)
	assert.Empty(t, b.Notifications.Drain())
}

func TestSessionRegistry_Sweep(t *testing.T) {
	source := newTestSource()
	registry := NewSessionRegistry(source, time.Hour, models.GroupFieldNone)

	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	registry.now = func() time.Time { return now }

	old, err := registry.Create()
	require.NoError(t, err)

	now = now.Add(50 * time.Minute)
	fresh, err := registry.Create()
	require.NoError(t, err)

	now = now.Add(20 * time.Minute)
	assert.Equal(t, 1, registry.Sweep())

	_, ok := registry.Get(old.ID)
	assert.False(t, ok)
	_, ok = registry.Get(fresh.ID)
	assert.True(t, ok)
	assert.Equal(t, 1, registry.Len())
}

func TestMessageQueue(t *testing.T) {
	q := NewMessageQueue(2)
	q.Notify(Notification{Level: NotificationToast, Message: "one"})
	q.Notify(Notification{Level: NotificationError, Message: "two"})
	q.Notify(Notification{Level: NotificationInfo, Message: "three"})

	items := q.Drain()
	require.Len(t, items, 2)
	assert.Equal(t, "two", items[0].Message)
	assert.Equal(t, "three", items[1].Message)
	assert.False(t, items[0].Time.IsZero())

	assert.Equal(t, []Notification{}, q.Drain())
}
