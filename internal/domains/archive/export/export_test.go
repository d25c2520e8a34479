package export_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hotelier/internal/domains/archive/export"
	"hotelier/internal/domains/archive/model/dto"
	occDto "hotelier/internal/domains/occupancy/model/dto"
	resModel "hotelier/internal/domains/resource/model"
)

func TestWrite(t *testing.T) {
	archives := []dto.ArchiveResponse{
		{
			BookingID:   12,
			GuestName:   "Ayesha Khan",
			BookingType: resModel.KindRoom,
			TotalAmount: decimal.NewFromInt(220),
			PaidAmount:  decimal.NewFromInt(220),
			Occupancy:   []occDto.OccupancyResponse{{Kind: resModel.KindRoom, ResourceID: 5}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, archives))

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)

	defer file.Close()

	rows, err := file.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Booking ID", rows[0][0])
	assert.Equal(t, "12", rows[1][0])
	assert.Equal(t, "Ayesha Khan", rows[1][1])
	assert.Equal(t, "room 5", rows[1][3])
	assert.Equal(t, "220", rows[1][6])
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, nil))

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)

	defer file.Close()

	rows, err := file.GetRows(export.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
