package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
)

var _ repository.BillingAnalyticsRepository = (*BillingAnalyticsRepo)(nil)

// BillingAnalyticsRepo consultas de solo lectura para el dashboard de facturación.
type BillingAnalyticsRepo struct {
	q Querier
}

// NewBillingAnalyticsRepository construye el adaptador de analítica.
func NewBillingAnalyticsRepository(q Querier) *BillingAnalyticsRepo {
	return &BillingAnalyticsRepo{q: q}
}

// periodFilter: $1 mes y $2 año; cero desactiva cada condición.
const periodFilter = `($1 = 0 OR month = $1) AND ($2 = 0 OR year = $2)`

// GetBillsSummary cuenta facturas totales, pagadas y pendientes del período.
func (r *BillingAnalyticsRepo) GetBillsSummary(ctx context.Context, month, year int) (repository.BillsSummaryResult, error) {
	const query = `
	SELECT
	    COUNT(*)                                   AS total_bills,
	    COUNT(*) FILTER (WHERE status = 'PAID')      AS paid_bills,
	    COUNT(*) FILTER (WHERE status = 'GENERATED') AS unpaid_bills
	FROM bills
	WHERE ` + periodFilter

	var res repository.BillsSummaryResult
	if err := r.q.QueryRow(ctx, query, month, year).Scan(&res.TotalBills, &res.PaidBills, &res.UnpaidBills); err != nil {
		return res, fmt.Errorf("analytics.GetBillsSummary: %w", err)
	}
	return res, nil
}

// GetConsumptionByUtility total y promedio de unidades por servicio, ordenado por servicio.
func (r *BillingAnalyticsRepo) GetConsumptionByUtility(ctx context.Context, month, year int) ([]repository.ConsumptionResult, error) {
	const query = `
	SELECT
	    utility_type,
	    SUM(units_consumed)::BIGINT                      AS total_units,
	    ROUND(AVG(units_consumed)::NUMERIC, 2)           AS average_units,
	    COUNT(*)                                         AS bill_count
	FROM bills
	WHERE ` + periodFilter + `
	GROUP BY utility_type
	ORDER BY utility_type`

	rows, err := r.q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetConsumptionByUtility: %w", err)
	}
	defer rows.Close()

	var results []repository.ConsumptionResult
	for rows.Next() {
		var row repository.ConsumptionResult
		if err := rows.Scan(&row.UtilityType, &row.TotalUnits, &row.AverageUnits, &row.BillCount); err != nil {
			return nil, fmt.Errorf("analytics.GetConsumptionByUtility scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetConsumerBilling totales por consumidor ordenados por monto facturado descendente.
func (r *BillingAnalyticsRepo) GetConsumerBilling(ctx context.Context, month, year int) ([]repository.ConsumerBillingResult, error) {
	query := `
	SELECT
	    consumer_id::TEXT,
	    COUNT(*)                                                          AS total_bills,
	    COALESCE(SUM(amount), 0)                                          AS total_amount,
	    COALESCE(SUM(amount) FILTER (WHERE status = '` + entity.BillStatusPaid + `'), 0)      AS paid_amount,
	    COALESCE(SUM(amount) FILTER (WHERE status = '` + entity.BillStatusGenerated + `'), 0) AS unpaid_amount
	FROM bills
	WHERE ` + periodFilter + `
	GROUP BY consumer_id
	ORDER BY total_amount DESC`

	rows, err := r.q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetConsumerBilling: %w", err)
	}
	defer rows.Close()

	var results []repository.ConsumerBillingResult
	for rows.Next() {
		var row repository.ConsumerBillingResult
		if err := rows.Scan(&row.ConsumerID, &row.TotalBills, &row.TotalAmount, &row.PaidAmount, &row.UnpaidAmount); err != nil {
			return nil, fmt.Errorf("analytics.GetConsumerBilling scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTotalBilled suma de montos facturados en el período.
func (r *BillingAnalyticsRepo) GetTotalBilled(ctx context.Context, month, year int) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM bills WHERE `+periodFilter, month, year).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("analytics.GetTotalBilled: %w", err)
	}
	return total, nil
}
