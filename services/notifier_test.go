package services

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"surfrepair-backend/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureServer(t *testing.T, status int) (*httptest.Server, *url.Values) {
	t.Helper()
	var captured url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.URL.Query()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func testRepair() *models.Repair {
	return &models.Repair{
		RepairNumber: 12345,
		CustomerName: "Kelly Slater",
		BoardModel:   "Lost Driver (5'11)",
		Construction: models.ConstructionPolyester,
		Status:       models.StatusPending,
		DeliveryDate: time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC),
		Seller:       "staff@surfshop.fr",
		Subtotal:     140,
		DiscountType: models.DiscountPercentage,
		Total:        140,
		Annotations: []models.RepairAnnotation{
			{
				TypeName:       "Small Ding",
				Quantity:       2,
				Side:           models.SideTop,
				Location:       "nose",
				PricePolyester: 45,
				PriceEpoxy:     55,
			},
			{
				TypeName:       "Fin Box Repair",
				Quantity:       1,
				Side:           models.SideBottom,
				Location:       "tail",
				PricePolyester: 95,
				PriceEpoxy:     105,
			},
		},
	}
}

func testCustomer() *models.Customer {
	return &models.Customer{
		ID:        uuid.New(),
		FirstName: "Kelly",
		LastName:  "Slater",
		Email:     "kelly@surfshop.fr",
		Phone:     "+33612345678",
		Country:   "France",
		Type:      models.TierCustomer,
	}
}

func TestSendNewRepairPayload(t *testing.T) {
	srv, captured := captureServer(t, http.StatusOK)

	n := NewNotifier(logrus.New())
	n.newRepairURL = srv.URL

	repair := testRepair()
	customer := testCustomer()
	require.NoError(t, n.SendNewRepair(repair, customer))

	got := *captured
	assert.Equal(t, "Kelly", got.Get("customer_first_name"))
	assert.Equal(t, "FR", got.Get("customer_country"))
	assert.Equal(t, "12345", got.Get("repair_id"))
	assert.Equal(t, "2026-03-06", got.Get("delivery_date"))
	assert.Equal(t, "140.00", got.Get("total_price"))
	assert.Equal(t, "2", got.Get("repair_count"))
	assert.Equal(t, "Small Ding", got.Get("repair_1_type"))
	assert.Equal(t, "2", got.Get("repair_1_quantity"))
	assert.Equal(t, "45.00", got.Get("repair_1_price"))
	assert.Equal(t, "Fin Box Repair", got.Get("repair_2_type"))
	assert.Equal(t, "tail", got.Get("repair_2_location"))
}

func TestSendNewCustomerPayload(t *testing.T) {
	srv, captured := captureServer(t, http.StatusOK)

	n := NewNotifier(logrus.New())
	n.newCustomerURL = srv.URL

	require.NoError(t, n.SendNewCustomer(testCustomer()))

	got := *captured
	assert.Equal(t, "Kelly", got.Get("firstname"))
	assert.Equal(t, "Slater", got.Get("lastname"))
	assert.Equal(t, models.TierCustomer, got.Get("type"))
}

func TestSendDeliveryReminderPayload(t *testing.T) {
	srv, captured := captureServer(t, http.StatusOK)

	n := NewNotifier(logrus.New())
	n.reminderURL = srv.URL

	require.NoError(t, n.SendDeliveryReminder(testRepair()))

	got := *captured
	assert.Equal(t, "12345", got.Get("repair_id"))
	assert.Equal(t, "Kelly Slater", got.Get("customer_name"))
	assert.Equal(t, "2026-03-06", got.Get("delivery_date"))
}

func TestPostReportsServerError(t *testing.T) {
	srv, _ := captureServer(t, http.StatusInternalServerError)

	n := NewNotifier(logrus.New())
	n.newRepairURL = srv.URL

	err := n.SendNewRepair(testRepair(), testCustomer())
	assert.Error(t, err)
}

func TestPostSkipsUnconfiguredHook(t *testing.T) {
	n := NewNotifier(logrus.New())
	n.newRepairURL = ""

	assert.NoError(t, n.SendNewRepair(testRepair(), testCustomer()))
}
