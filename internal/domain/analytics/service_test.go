// internal/domain/analytics/service_test.go
package analytics

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/your-org/storefront/internal/config"
)

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewService(gormDB, &config.Config{}), mock
}

func TestGetSalesByStatus(t *testing.T) {
	svc, mock := newMockService(t)

	rows := sqlmock.NewRows([]string{"status", "count", "value"}).
		AddRow("pending", 5, 12500).
		AddRow("delivered", 3, 9900).
		AddRow("cancelled", 1, 1500)

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) as count`).WillReturnRows(rows)

	data, err := svc.GetSalesByStatus()
	require.NoError(t, err)
	require.Len(t, data, 3)
	assert.Equal(t, "pending", data[0].Status)
	assert.Equal(t, int64(5), data[0].Count)
	assert.Equal(t, int64(12500), data[0].Value)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTopProducts(t *testing.T) {
	svc, mock := newMockService(t)

	rows := sqlmock.NewRows([]string{"product_id", "product_name", "sku", "total_sold", "revenue"}).
		AddRow(1, "Classic Tee", "TSHIRT-1", 42, 50400).
		AddRow(2, "Ceramic Mug", "MUG-1", 17, 25500)

	mock.ExpectQuery(`SELECT oi\.product_id`).
		WithArgs(5).
		WillReturnRows(rows)

	data, err := svc.GetTopProducts(5)
	require.NoError(t, err)
	require.Len(t, data, 2)
	assert.Equal(t, "TSHIRT-1", data[0].SKU)
	assert.Equal(t, int64(42), data[0].TotalSold)
	assert.Equal(t, int64(50400), data[0].Revenue)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTopProducts_DefaultsLimit(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT oi\.product_id`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "product_name", "sku", "total_sold", "revenue"}))

	data, err := svc.GetTopProducts(0)
	require.NoError(t, err)
	assert.Empty(t, data)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDailyRevenue(t *testing.T) {
	svc, mock := newMockService(t)

	rows := sqlmock.NewRows([]string{"date", "value", "count"}).
		AddRow("2026-08-29", 4400, 2).
		AddRow("2026-08-30", 1500, 1)

	mock.ExpectQuery(`SELECT DATE\(created_at\) as date`).
		WillReturnRows(rows)

	data, err := svc.GetDailyRevenue(7)
	require.NoError(t, err)
	require.Len(t, data, 2)
	assert.Equal(t, "2026-08-29", data[0].Date)
	assert.Equal(t, int64(4400), data[0].Value)
	assert.Equal(t, int64(2), data[0].Count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
