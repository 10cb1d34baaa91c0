package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BerniceZTT/gwsample_end/models"
)

func TestCountActiveFilters(t *testing.T) {
	tests := []struct {
		name     string
		criteria models.SearchCriteria
		want     int
	}{
		{"empty", models.SearchCriteria{}, 0},
		{"whitespace only", models.SearchCriteria{SalesOrderID: "  ", CustomerName: "\t"}, 0},
		{"customer id and name count once", models.SearchCriteria{CustomerID: "C1", CustomerName: "SAP"}, 1},
		{"product name is not counted", models.SearchCriteria{ProductName: "Notebook"}, 0},
		{"all", models.SearchCriteria{SalesOrderID: "1", CustomerName: "SAP", ProductID: "HT-1000", ProductName: "Notebook"}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountActiveFilters(tt.criteria))
		})
	}
}

func TestMatchOrder(t *testing.T) {
	order := sampleOrders()[0]

	assert.True(t, MatchOrder(order, models.SearchCriteria{}))
	assert.True(t, MatchOrder(order, models.SearchCriteria{ProductID: "HT-1001", CustomerName: "sa"}))
	assert.True(t, MatchOrder(order, models.SearchCriteria{CustomerID: "C1", CustomerName: "nobody"}))
	assert.False(t, MatchOrder(order, models.SearchCriteria{ProductID: "HT-1030"}))
	assert.False(t, MatchOrder(order, models.SearchCriteria{SalesOrderID: "0500000002", ProductID: "HT-1000"}))
	assert.False(t, MatchOrder(order, models.SearchCriteria{CustomerID: "C2", ProductID: "HT-1000"}))
}

func TestBuildProxyFilter(t *testing.T) {
	assert.Equal(t,
		[]models.Predicate{models.NewFilter(FieldSalesOrderID, models.FilterOperatorEQ, NoMatchSentinel)},
		BuildProxyFilter(nil))

	got := BuildProxyFilter(sampleOrders()[:2])
	assert.Len(t, got, 1)
	assert.True(t, got[0].IsGroup())
	assert.False(t, got[0].And)
	assert.Equal(t, "0500000002", got[0].Filters[1].Value)
}
