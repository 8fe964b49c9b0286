package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	domainbilling "github.com/jhoicas/utility-backoffice-api/internal/domain/billing"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
	"github.com/jhoicas/utility-backoffice-api/pkg/logger"
	"github.com/jhoicas/utility-backoffice-api/pkg/metrics"
)

const defaultDueDays = 15

// BillUseCase generación, consulta y pago de facturas.
type BillUseCase struct {
	billRepo     repository.BillRepository
	consumerRepo repository.ConsumerRepository
	planRepo     repository.TariffPlanRepository
	slabRepo     repository.TariffSlabRepository
	cfg          Config
	log          *logger.Logger
	metrics      *metrics.Metrics
	now          func() time.Time
}

// NewBillUseCase construye el caso de uso.
func NewBillUseCase(
	billRepo repository.BillRepository,
	consumerRepo repository.ConsumerRepository,
	planRepo repository.TariffPlanRepository,
	slabRepo repository.TariffSlabRepository,
	cfg Config,
	log *logger.Logger,
	m *metrics.Metrics,
) *BillUseCase {
	if cfg.DueDays <= 0 {
		cfg.DueDays = defaultDueDays
	}
	if log == nil {
		log = logger.Nop()
	}
	return &BillUseCase{
		billRepo:     billRepo,
		consumerRepo: consumerRepo,
		planRepo:     planRepo,
		slabRepo:     slabRepo,
		cfg:          cfg,
		log:          log,
		metrics:      m,
		now:          time.Now,
	}
}

// Generate factura el consumo de un período con el plan activo del servicio.
//
// Errores:
//   - ErrConsumerNotFound / ErrConsumerInactive si el consumidor no es facturable.
//   - ErrNoActiveTariffPlan si el servicio no tiene plan activo.
//   - ErrBillAlreadyGenerated si el período ya fue facturado para ese servicio.
func (uc *BillUseCase) Generate(ctx context.Context, in dto.GenerateBillRequest) (*dto.BillResponse, error) {
	utility, err := ParseUtilityType(in.UtilityType)
	if err != nil {
		return nil, err
	}
	if in.UnitsConsumed < 0 {
		return nil, domain.ErrInvalidInput
	}

	consumer, err := uc.consumerRepo.GetByID(ctx, in.ConsumerID)
	if err != nil {
		return nil, err
	}
	if consumer == nil {
		return nil, domain.ErrConsumerNotFound
	}
	if !consumer.Active {
		return nil, domain.ErrConsumerInactive
	}

	plan, err := uc.planRepo.GetActiveByUtility(ctx, utility)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNoActiveTariffPlan
	}

	exists, err := uc.billRepo.ExistsForPeriod(ctx, consumer.ID, utility, in.Month, in.Year)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrBillAlreadyGenerated
	}

	slabs, err := uc.slabRepo.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	if len(slabs) == 0 {
		return nil, domain.ErrPlanWithoutSlabs
	}
	energy, charges := domainbilling.TieredCharge(in.UnitsConsumed, slabs)

	now := uc.now()
	bill := &entity.Bill{
		ID:            uuid.New().String(),
		ConsumerID:    consumer.ID,
		UtilityType:   utility,
		PlanID:        plan.ID,
		Month:         in.Month,
		Year:          in.Year,
		UnitsConsumed: in.UnitsConsumed,
		EnergyCharge:  energy,
		FixedCharge:   plan.FixedCharge,
		Amount:        energy.Add(plan.FixedCharge).Round(2),
		Status:        entity.BillStatusGenerated,
		GeneratedAt:   now,
		DueDate:       now.AddDate(0, 0, uc.cfg.DueDays),
		Lines:         toBillLines(charges),
	}
	if err := uc.billRepo.Create(ctx, bill); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrBillAlreadyGenerated
		}
		return nil, err
	}
	uc.metrics.BillGenerated(utility)
	uc.log.Info().Str("bill_id", bill.ID).Str("consumer_id", consumer.ID).
		Str("utility_type", utility).Str("amount", bill.Amount.StringFixed(2)).Msg("factura generada")
	return ToBillResponse(bill), nil
}

// MarkPaid pasa la factura a PAID. Marcar una factura ya pagada no es error.
func (uc *BillUseCase) MarkPaid(ctx context.Context, id string) error {
	bill, err := uc.billRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if bill == nil {
		return domain.ErrBillNotFound
	}
	if bill.IsPaid() {
		return nil
	}
	// Si otro pago ganó la carrera la factura ya está PAID: mismo resultado.
	_, err = uc.billRepo.MarkPaid(ctx, id, uc.now())
	return err
}

// GetByID obtiene una factura.
func (uc *BillUseCase) GetByID(ctx context.Context, id string) (*dto.BillResponse, error) {
	bill, err := uc.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrBillNotFound
	}
	return ToBillResponse(bill), nil
}

// ListByConsumer facturas de un consumidor, de la más reciente a la más antigua.
func (uc *BillUseCase) ListByConsumer(ctx context.Context, consumerID string) ([]*dto.BillResponse, error) {
	return uc.List(ctx, dto.BillQuery{ConsumerID: consumerID})
}

// List facturas filtradas; los filtros vacíos no aplican.
func (uc *BillUseCase) List(ctx context.Context, q dto.BillQuery) ([]*dto.BillResponse, error) {
	bills, err := uc.billRepo.List(ctx, repository.BillFilter{
		Status:     q.Status,
		Month:      q.Month,
		Year:       q.Year,
		ConsumerID: q.ConsumerID,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BillResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, ToBillResponse(b))
	}
	return out, nil
}

func toBillLines(charges []domainbilling.SlabCharge) []entity.BillLine {
	lines := make([]entity.BillLine, 0, len(charges))
	for _, c := range charges {
		lines = append(lines, entity.BillLine{
			MinUnits:    c.MinUnits,
			MaxUnits:    c.MaxUnits,
			Units:       c.Units,
			RatePerUnit: c.RatePerUnit,
			Amount:      c.Amount,
		})
	}
	return lines
}
