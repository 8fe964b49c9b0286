package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/utility-backoffice-api/internal/domain/billing"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
)

func bound(n int64) *int64 { return &n }

func slab(min int64, max *int64, rate int64) *entity.TariffSlab {
	return &entity.TariffSlab{MinUnits: min, MaxUnits: max, RatePerUnit: decimal.NewFromInt(rate)}
}

// Caso de referencia: [0–100 @ 5, 100–300 @ 7], consumo 150 → 850.
func TestTieredCharge_DosTramos(t *testing.T) {
	slabs := []*entity.TariffSlab{slab(0, bound(100), 5), slab(100, bound(300), 7)}

	total, lines := billing.TieredCharge(150, slabs)

	assert.True(t, decimal.NewFromInt(850).Equal(total), "esperado 850, obtenido %s", total)
	require.Len(t, lines, 2)
	assert.Equal(t, int64(100), lines[0].Units)
	assert.Equal(t, int64(50), lines[1].Units)
}

func TestTieredCharge_OrdenaTramos(t *testing.T) {
	slabs := []*entity.TariffSlab{slab(100, bound(300), 7), slab(0, bound(100), 5)}

	total, _ := billing.TieredCharge(150, slabs)

	assert.True(t, decimal.NewFromInt(850).Equal(total))
}

func TestTieredCharge_DentroDelPrimerTramo(t *testing.T) {
	slabs := []*entity.TariffSlab{slab(0, bound(100), 5), slab(100, bound(300), 7)}

	total, lines := billing.TieredCharge(40, slabs)

	assert.True(t, decimal.NewFromInt(200).Equal(total))
	assert.Len(t, lines, 1)
}

func TestTieredCharge_TramoAbierto(t *testing.T) {
	slabs := []*entity.TariffSlab{slab(0, bound(100), 5), slab(100, nil, 7)}

	total, _ := billing.TieredCharge(1000, slabs)

	// 100×5 + 900×7
	assert.True(t, decimal.NewFromInt(6800).Equal(total))
}

func TestTieredCharge_ExcedenteSobreUltimoTramo(t *testing.T) {
	slabs := []*entity.TariffSlab{slab(0, bound(100), 5), slab(100, bound(300), 7)}

	total, lines := billing.TieredCharge(350, slabs)

	// 100×5 + 200×7 + 50×7
	assert.True(t, decimal.NewFromInt(2250).Equal(total))
	require.Len(t, lines, 3)
	assert.Equal(t, int64(50), lines[2].Units)
}

func TestTieredCharge_ConsumoCeroOSinTramos(t *testing.T) {
	total, lines := billing.TieredCharge(0, []*entity.TariffSlab{slab(0, nil, 5)})
	assert.True(t, total.IsZero())
	assert.Nil(t, lines)

	total, _ = billing.TieredCharge(10, nil)
	assert.True(t, total.IsZero())
}

func TestTieredCharge_TarifaDecimal(t *testing.T) {
	rate, _ := decimal.NewFromString("0.125")
	slabs := []*entity.TariffSlab{{MinUnits: 0, RatePerUnit: rate}}

	total, _ := billing.TieredCharge(3, slabs)

	// 0.375 redondeado a 2 decimales
	assert.Equal(t, "0.38", total.StringFixed(2))
}

func TestTariffSlab_Overlaps(t *testing.T) {
	a := slab(0, bound(100), 5)
	b := slab(100, bound(300), 7)
	c := slab(50, bound(150), 6)
	open := slab(200, nil, 9)

	assert.False(t, a.Overlaps(b), "tramos contiguos no se solapan")
	assert.True(t, a.Overlaps(c))
	assert.True(t, b.Overlaps(open))
	assert.False(t, a.Overlaps(open))
}

func TestTieredCharge_HuecoEntreTramosNoSeCobra(t *testing.T) {
	slabs := []*entity.TariffSlab{slab(0, bound(100), 5), slab(200, bound(300), 7)}

	total, lines := billing.TieredCharge(150, slabs)
	assert.True(t, decimal.NewFromInt(500).Equal(total), "obtenido %s", total)
	require.Len(t, lines, 1)

	total, lines = billing.TieredCharge(250, slabs)
	assert.True(t, decimal.NewFromInt(850).Equal(total), "obtenido %s", total)
	require.Len(t, lines, 2)
	assert.Equal(t, int64(200), lines[1].MinUnits)
	assert.Equal(t, int64(50), lines[1].Units)
}
