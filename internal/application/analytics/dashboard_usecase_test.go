package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/utility-backoffice-api/internal/application/analytics"
	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/internal/infrastructure/memory"
)

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Consumers().Create(ctx, &entity.Consumer{ID: "C1", FullName: "Carlos", Email: "c1@x.com", MobileNumber: "1", Active: true}))
	require.NoError(t, store.Consumers().Create(ctx, &entity.Consumer{ID: "C2", FullName: "Diana", Email: "c2@x.com", MobileNumber: "2", Active: true}))

	bills := []entity.Bill{
		{ID: "B1", ConsumerID: "C1", UtilityType: "ELECTRICITY", Month: 3, Year: 2025, UnitsConsumed: 150, Amount: decimal.NewFromInt(850), Status: entity.BillStatusPaid},
		{ID: "B2", ConsumerID: "C1", UtilityType: "WATER", Month: 3, Year: 2025, UnitsConsumed: 20, Amount: decimal.NewFromInt(60), Status: entity.BillStatusGenerated},
		{ID: "B3", ConsumerID: "C2", UtilityType: "ELECTRICITY", Month: 3, Year: 2025, UnitsConsumed: 50, Amount: decimal.NewFromInt(250), Status: entity.BillStatusGenerated},
		{ID: "B4", ConsumerID: "C2", UtilityType: "ELECTRICITY", Month: 4, Year: 2025, UnitsConsumed: 75, Amount: decimal.NewFromInt(375), Status: entity.BillStatusGenerated},
	}
	for i := range bills {
		bills[i].GeneratedAt = time.Now()
		require.NoError(t, store.Bills().Create(ctx, &bills[i]))
	}
	return store
}

func newDashboard(store *memory.Store) *analytics.DashboardUseCase {
	return analytics.NewDashboardUseCase(store.BillingAnalytics(), store.Bills(), store.Consumers())
}

func TestBillsSummary(t *testing.T) {
	uc := newDashboard(seed(t))

	s, err := uc.BillsSummary(context.Background(), 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalBills)
	assert.Equal(t, 1, s.PaidBills)
	assert.Equal(t, 2, s.UnpaidBills)
}

func TestConsumptionYPromedio(t *testing.T) {
	uc := newDashboard(seed(t))
	ctx := context.Background()

	total, err := uc.ConsumptionSummary(ctx, 3, 2025)
	require.NoError(t, err)
	require.Len(t, total, 2)
	assert.Equal(t, "ELECTRICITY", total[0].UtilityType)
	assert.Equal(t, int64(200), total[0].TotalUnits)

	avg, err := uc.AverageConsumption(ctx, 3, 2025)
	require.NoError(t, err)
	require.Len(t, avg, 2)
	assert.True(t, decimal.NewFromInt(100).Equal(avg[0].AverageUnits))
}

func TestConsumerBillingSummary(t *testing.T) {
	uc := newDashboard(seed(t))

	rows, err := uc.ConsumerBillingSummary(context.Background(), 3, 2025)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "C1", rows[0].ConsumerID)
	assert.True(t, decimal.NewFromInt(910).Equal(rows[0].TotalAmount))
	assert.True(t, decimal.NewFromInt(850).Equal(rows[0].PaidAmount))
	assert.True(t, decimal.NewFromInt(60).Equal(rows[0].UnpaidAmount))
}

func TestTotales(t *testing.T) {
	uc := newDashboard(seed(t))
	ctx := context.Background()

	month, err := uc.TotalBilledForMonth(ctx, 4, 2025)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(375).Equal(month.TotalBilled))

	all, err := uc.TotalBilled(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1535).Equal(all.TotalBilled))
}

func TestConsumerBillingHistory(t *testing.T) {
	uc := newDashboard(seed(t))

	h, err := uc.ConsumerBillingHistory(context.Background(), "C2")
	require.NoError(t, err)
	assert.Equal(t, "Diana", h.FullName)
	assert.Equal(t, 2, h.TotalBills)
	assert.True(t, decimal.NewFromInt(625).Equal(h.UnpaidAmount))
	assert.True(t, h.PaidAmount.IsZero())

	_, err = uc.ConsumerBillingHistory(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
