package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/till/internal/export"
	"github.com/MrJamesThe3rd/till/internal/ledger"
)

var art = time.FixedZone("ART", -3*60*60)

func sample() []*ledger.Movement {
	return []*ledger.Movement{
		{
			ID:            uuid.MustParse("11111111-1111-1111-1111-111111111111"),
			CreatedAt:     time.Date(2024, 3, 10, 11, 5, 0, 0, time.UTC),
			Type:          ledger.TypeOpening,
			PaymentMethod: ledger.PaymentCash,
			Total:         100000,
			Status:        ledger.StatusCompleted,
		},
		{
			ID:            uuid.MustParse("22222222-2222-2222-2222-222222222222"),
			CreatedAt:     time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC),
			Type:          "delivery",
			PaymentMethod: ledger.PaymentTransfer,
			Total:         45050,
			Status:        ledger.StatusPending,
			CustomerName:  "José",
		},
		{
			ID:        uuid.MustParse("33333333-3333-3333-3333-333333333333"),
			CreatedAt: time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC),
			Type:      ledger.TypeCounter,
			Total:     1200,
			Status:    ledger.StatusCompleted,
		},
	}
}

func TestWriteMovements(t *testing.T) {
	r := ledger.NewDateRange(time.Date(2024, 3, 10, 0, 0, 0, 0, art), time.Date(2024, 3, 10, 0, 0, 0, 0, art), art)

	var buf bytes.Buffer
	require.NoError(t, export.WriteMovements(&buf, sample(), r, export.Options{}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, []string{"id", "date", "movement_type", "customer", "payment_method", "total", "status"}, records[0])
	assert.Equal(t, []string{
		"11111111-1111-1111-1111-111111111111", "2024-03-10 08:05", "opening", "Till opening", "cash", "1000.00", "completed",
	}, records[1])
	assert.Equal(t, []string{
		"22222222-2222-2222-2222-222222222222", "2024-03-10 12:30", "delivery", "José", "transfer", "450.50", "pending",
	}, records[2])
	assert.Equal(t, []string{
		"33333333-3333-3333-3333-333333333333", "2024-03-10 17:00", "counter", "Counter", "other", "12.00", "completed",
	}, records[3])
}

func TestWriteMovements_Windows1252Semicolon(t *testing.T) {
	r := ledger.Today(time.Date(2024, 3, 10, 12, 0, 0, 0, art), art)

	var buf bytes.Buffer
	require.NoError(t, export.WriteMovements(&buf, sample()[1:2], r, export.Options{
		Comma:   ';',
		Charset: export.CharsetWindows1252,
	}))

	// "é" is a single 0xE9 byte in windows-1252.
	assert.Contains(t, buf.String(), "Jos\xe9;transfer;450.50")
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("id;date;movement_type")))
}

func TestWriteMovements_UnknownCharset(t *testing.T) {
	var buf bytes.Buffer
	err := export.WriteMovements(&buf, sample(), ledger.DateRange{}, export.Options{Charset: "ebcdic"})
	assert.Error(t, err)
}

func TestService_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().ListMovements(gomock.Any(), gomock.Any()).Return(sample(), nil)

	svc := export.NewService(ledger.NewService(repo))
	r := ledger.Today(time.Date(2024, 3, 10, 12, 0, 0, 0, art), art)

	var buf bytes.Buffer
	n, err := svc.Export(context.Background(), uuid.New(), r, &buf, export.Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Contains(t, buf.String(), "Till opening")
}

func TestService_Export_InvalidRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := export.NewService(ledger.NewService(ledger.NewMockRepository(ctrl)))
	r := ledger.NewDateRange(time.Date(2024, 3, 11, 0, 0, 0, 0, art), time.Date(2024, 3, 10, 0, 0, 0, 0, art), art)

	var buf bytes.Buffer
	_, err := svc.Export(context.Background(), uuid.New(), r, &buf, export.Options{})
	assert.ErrorIs(t, err, ledger.ErrInvalidRange)
	assert.Zero(t, buf.Len())
}

func TestService_ExportToDir(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().ListMovements(gomock.Any(), gomock.Any()).Return(sample(), nil)

	svc := export.NewService(ledger.NewService(repo))
	r := ledger.NewDateRange(time.Date(2024, 3, 1, 0, 0, 0, 0, art), time.Date(2024, 3, 10, 0, 0, 0, 0, art), art)
	dir := filepath.Join(t.TempDir(), "exports")

	path, n, err := svc.ExportToDir(context.Background(), uuid.New(), r, dir, export.Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, filepath.Join(dir, "till_20240301_20240310.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "José")
}

func TestService_ExportToDir_RemovesPartialFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().ListMovements(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))

	svc := export.NewService(ledger.NewService(repo))
	r := ledger.Today(time.Date(2024, 3, 10, 12, 0, 0, 0, art), art)
	dir := t.TempDir()

	_, _, err := svc.ExportToDir(context.Background(), uuid.New(), r, dir, export.Options{})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, export.FileName(r)))
	assert.True(t, os.IsNotExist(statErr))
}

func TestSummary(t *testing.T) {
	r := ledger.Today(time.Date(2024, 3, 10, 12, 0, 0, 0, art), art)
	snap := ledger.Snapshot{
		OpeningBalance:    100000,
		TotalCashInDrawer: 150000,
		TotalRevenue:      80000,
		TotalOrders:       2,
		TopProducts:       []ledger.ProductTotal{{Name: "Pizza", Quantity: 3, Revenue: 3400}},
	}

	body := export.Summary(r, snap)

	for _, sub := range []string{
		"Till report 2024-03-10",
		"Opening balance:   1000.00",
		"Cash in drawer:    1500.00",
		"Revenue:           800.00 (2 orders)",
		"* Pizza x3 | 34.00",
	} {
		assert.Contains(t, body, sub)
	}
}
