package controllers

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"surfrepair-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCustomerCSVRecords(t *testing.T) {
	customers := []models.Customer{
		{
			FirstName:  "Kelly",
			LastName:   "Slater",
			Email:      "kelly@surfshop.fr",
			Phone:      "+33612345678",
			City:       "Hossegor",
			PostalCode: "40150",
			Country:    "France",
			Type:       models.TierTeamRider,
			Surfboards: []models.Surfboard{
				{Brand: "Lost", Model: "Driver", Size: "5'11", Construction: models.ConstructionPolyester},
				{Brand: "Firewire", Model: "Seaside", Size: "5'6", Construction: models.ConstructionEpoxy},
			},
			Model: gorm.Model{CreatedAt: time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)},
		},
	}

	records := customerCSVRecords(customers)

	require.Len(t, records, 2)
	assert.Equal(t, customerCSVHeader, records[0])

	row := records[1]
	require.Len(t, row, len(customerCSVHeader))
	assert.Equal(t, "Kelly", row[0])
	assert.Equal(t, "kelly@surfshop.fr", row[2])
	assert.Equal(t, models.TierTeamRider, row[10])
	assert.Equal(t, "Lost Driver (5'11); Firewire Seaside (5'6)", row[11])
	assert.Equal(t, "2026-02-01", row[12])
}

func TestCustomerCSVRecordsEmpty(t *testing.T) {
	records := customerCSVRecords(nil)

	require.Len(t, records, 1)
	assert.Equal(t, customerCSVHeader, records[0])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("client went away")
}

func TestWriteCustomersCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCustomersCSV(&buf, nil))
	assert.Contains(t, buf.String(), "First Name")

	// A broken connection mid-stream surfaces as an error for logging
	assert.Error(t, writeCustomersCSV(failingWriter{}, nil))
}
