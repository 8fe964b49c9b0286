package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/utility-backoffice-api/internal/application/billing"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "850,00", money(decimal.NewFromInt(850)))
	assert.Equal(t, "1.234.567,50", money(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-1.000,00", money(decimal.NewFromInt(-1000)))
}

func TestRangeLabel(t *testing.T) {
	max := int64(100)
	assert.Equal(t, "0 – 100 u", rangeLabel(entity.BillLine{MinUnits: 0, MaxUnits: &max}))
	assert.Equal(t, "Desde 300 u", rangeLabel(entity.BillLine{MinUnits: 300}))
}

func TestGenerateBillPDF(t *testing.T) {
	max := int64(100)
	now := time.Date(2025, 3, 31, 10, 0, 0, 0, time.UTC)
	doc := appbilling.BillDocument{
		Bill: &entity.Bill{
			ID: "9f1c2d3e-aaaa-bbbb-cccc-000000000000", ConsumerID: "C1", UtilityType: entity.UtilityElectricity,
			Month: 3, Year: 2025, UnitsConsumed: 150,
			EnergyCharge: decimal.NewFromInt(850), FixedCharge: decimal.Zero, Amount: decimal.NewFromInt(850),
			Status: entity.BillStatusGenerated, GeneratedAt: now, DueDate: now.AddDate(0, 0, 15),
			Lines: []entity.BillLine{
				{MinUnits: 0, MaxUnits: &max, Units: 100, RatePerUnit: decimal.NewFromInt(5), Amount: decimal.NewFromInt(500)},
				{MinUnits: 100, Units: 50, RatePerUnit: decimal.NewFromInt(7), Amount: decimal.NewFromInt(350)},
			},
		},
		Consumer: &entity.Consumer{ID: "C1", FullName: "Carlos Ruiz", Email: "c@x.com"},
		Plan:     &entity.TariffPlan{PlanCode: "R1"},
	}

	out, err := NewMarotoPDFGenerator("Empresa de Servicios").GenerateBillPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateBillPDF_DocumentoIncompleto(t *testing.T) {
	_, err := NewMarotoPDFGenerator("x").GenerateBillPDF(context.Background(), appbilling.BillDocument{})
	assert.Error(t, err)
}
