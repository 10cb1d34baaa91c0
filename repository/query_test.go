package repository

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/BerniceZTT/gwsample_end/models"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name    string
		filters []models.Predicate
		want    bson.M
	}{
		{
			name:    "empty",
			filters: []models.Predicate{},
			want:    bson.M{},
		},
		{
			name:    "single eq",
			filters: []models.Predicate{models.NewFilter("CustomerID", models.FilterOperatorEQ, "C1")},
			want:    bson.M{"customerId": "C1"},
		},
		{
			name:    "contains escapes regex",
			filters: []models.Predicate{models.NewFilter("CustomerName", models.FilterOperatorContains, "A.B")},
			want:    bson.M{"customerName": bson.M{"$regex": `A\.B`}},
		},
		{
			name: "and of eq and or group",
			filters: []models.Predicate{
				models.NewFilter("DeliveryStatus", models.FilterOperatorEQ, "D"),
				models.NewOrFilter(
					models.NewFilter("SalesOrderID", models.FilterOperatorEQ, "1"),
					models.NewFilter("SalesOrderID", models.FilterOperatorEQ, "2"),
				),
			},
			want: bson.M{"$and": []bson.M{
				{"deliveryStatus": "D"},
				{"$or": []bson.M{{"salesOrderId": "1"}, {"salesOrderId": "2"}}},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildQuery(tt.filters, salesOrderFields)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("query mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildQuery_UnknownField(t *testing.T) {
	_, err := buildQuery([]models.Predicate{models.NewFilter("Secret", models.FilterOperatorEQ, "x")}, salesOrderFields)
	assert.Error(t, err)

	_, err = buildQuery([]models.Predicate{models.NewFilter("Name", models.FilterOperatorEQ, "x")}, productFields)
	assert.NoError(t, err)
}

func TestBuildSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "salesOrderId", Value: 1}}, buildSort(nil, salesOrderFields, "salesOrderId"))

	got := buildSort([]models.SortKey{{Field: "BillingStatus", Group: true}}, salesOrderFields, "salesOrderId")
	assert.Equal(t, bson.D{{Key: "billingStatus", Value: 1}, {Key: "salesOrderId", Value: 1}}, got)

	got = buildSort([]models.SortKey{{Field: "SalesOrderID", Descending: true}, {Field: "Unknown"}}, salesOrderFields, "salesOrderId")
	assert.Equal(t, bson.D{{Key: "salesOrderId", Value: -1}}, got)
}
