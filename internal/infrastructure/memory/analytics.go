package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
)

var _ repository.BillingAnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agrega sobre las facturas en memoria.
type AnalyticsRepo struct{ view }

func (r *AnalyticsRepo) period(month, year int) []entity.Bill {
	var out []entity.Bill
	r.read(func() {
		for _, b := range r.s.bills {
			if (month == 0 || b.Month == month) && (year == 0 || b.Year == year) {
				out = append(out, b)
			}
		}
	})
	return out
}

func (r *AnalyticsRepo) GetBillsSummary(_ context.Context, month, year int) (repository.BillsSummaryResult, error) {
	var res repository.BillsSummaryResult
	for _, b := range r.period(month, year) {
		res.TotalBills++
		if b.IsPaid() {
			res.PaidBills++
		} else {
			res.UnpaidBills++
		}
	}
	return res, nil
}

func (r *AnalyticsRepo) GetConsumptionByUtility(_ context.Context, month, year int) ([]repository.ConsumptionResult, error) {
	byUtility := map[string]*repository.ConsumptionResult{}
	for _, b := range r.period(month, year) {
		c, ok := byUtility[b.UtilityType]
		if !ok {
			c = &repository.ConsumptionResult{UtilityType: b.UtilityType}
			byUtility[b.UtilityType] = c
		}
		c.TotalUnits += b.UnitsConsumed
		c.BillCount++
	}
	out := make([]repository.ConsumptionResult, 0, len(byUtility))
	for _, c := range byUtility {
		c.AverageUnits = decimal.NewFromInt(c.TotalUnits).DivRound(decimal.NewFromInt(int64(c.BillCount)), 2)
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UtilityType < out[j].UtilityType })
	return out, nil
}

func (r *AnalyticsRepo) GetConsumerBilling(_ context.Context, month, year int) ([]repository.ConsumerBillingResult, error) {
	byConsumer := map[string]*repository.ConsumerBillingResult{}
	for _, b := range r.period(month, year) {
		c, ok := byConsumer[b.ConsumerID]
		if !ok {
			c = &repository.ConsumerBillingResult{
				ConsumerID:   b.ConsumerID,
				TotalAmount:  decimal.Zero,
				PaidAmount:   decimal.Zero,
				UnpaidAmount: decimal.Zero,
			}
			byConsumer[b.ConsumerID] = c
		}
		c.TotalBills++
		c.TotalAmount = c.TotalAmount.Add(b.Amount)
		if b.IsPaid() {
			c.PaidAmount = c.PaidAmount.Add(b.Amount)
		} else {
			c.UnpaidAmount = c.UnpaidAmount.Add(b.Amount)
		}
	}
	out := make([]repository.ConsumerBillingResult, 0, len(byConsumer))
	for _, c := range byConsumer {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalAmount.GreaterThan(out[j].TotalAmount) })
	return out, nil
}

func (r *AnalyticsRepo) GetTotalBilled(_ context.Context, month, year int) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, b := range r.period(month, year) {
		total = total.Add(b.Amount)
	}
	return total, nil
}
