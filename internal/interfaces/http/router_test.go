package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/utility-backoffice-api/internal/application/analytics"
	"github.com/jhoicas/utility-backoffice-api/internal/application/auth"
	"github.com/jhoicas/utility-backoffice-api/internal/application/billing"
	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
	"github.com/jhoicas/utility-backoffice-api/internal/application/ports"
	"github.com/jhoicas/utility-backoffice-api/internal/application/usecase"
	"github.com/jhoicas/utility-backoffice-api/internal/infrastructure/memory"
	"github.com/jhoicas/utility-backoffice-api/internal/infrastructure/security"
	apphttp "github.com/jhoicas/utility-backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/utility-backoffice-api/pkg/logger"
)

// capturingPublisher guarda los eventos publicados para leer contraseñas temporales y tokens.
type capturingPublisher struct {
	mu       sync.Mutex
	approved []ports.AccountApprovedEvent
	resets   []ports.PasswordResetRequestedEvent
}

func (p *capturingPublisher) PublishAccountApproved(_ context.Context, e ports.AccountApprovedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.approved = append(p.approved, e)
	return nil
}

func (p *capturingPublisher) PublishAccountRejected(context.Context, ports.AccountRejectedEvent) error {
	return nil
}

func (p *capturingPublisher) PublishPasswordReset(_ context.Context, e ports.PasswordResetRequestedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resets = append(p.resets, e)
	return nil
}

type stubPDF struct{}

func (stubPDF) GenerateBillPDF(context.Context, billing.BillDocument) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

type apiFixture struct {
	app        *fiber.App
	pub        *capturingPublisher
	adminToken string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	pub := &capturingPublisher{}
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	log := logger.Nop()

	authUC := auth.NewAuthUseCase(store.Users(), store, hasher, pub, auth.Config{
		JWT:           auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer},
		ResetTokenTTL: 15 * time.Minute,
		NotifyTimeout: time.Second,
	}, log, nil)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.FiberErrorHandler(log)})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:           authUC,
		AccountRequestUC: auth.NewAccountRequestUseCase(store.AccountRequests(), store.Users(), store, hasher, pub, time.Second, log, nil),
		UserUC:           usecase.NewUserUseCase(store.Users()),
		ConsumerUC:       usecase.NewConsumerUseCase(store.Consumers()),
		TariffUC:         billing.NewTariffUseCase(store.TariffPlans(), store.TariffSlabs()),
		BillUC:           billing.NewBillUseCase(store.Bills(), store.Consumers(), store.TariffPlans(), store.TariffSlabs(), billing.Config{DueDays: 15}, log, nil),
		BillPDF:          billing.NewPDFUseCase(store.Bills(), store.Consumers(), store.TariffPlans(), stubPDF{}),
		DashboardUC:      analytics.NewDashboardUseCase(store.BillingAnalytics(), store.Bills(), store.Consumers()),
		JWTSecret:        testJWTSecret,
		Log:              log,
	})

	_, err := authUC.Register(context.Background(), dto.RegisterRequest{
		Username: "admin", Email: "admin@utility.test", Password: "Admin123!", Role: "ADMIN",
	})
	require.NoError(t, err)

	f := &apiFixture{app: app, pub: pub}
	f.adminToken = f.login(t, "admin", "Admin123!").AccessToken
	return f
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (f *apiFixture) login(t *testing.T, username, password string) dto.LoginResponse {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: username, Password: password})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestAPI_Login(t *testing.T) {
	f := newAPI(t)

	out := f.login(t, "admin", "Admin123!")
	assert.Equal(t, "Bearer", out.TokenType)
	assert.Equal(t, "ADMIN", out.Role)
	assert.False(t, out.PasswordChangeRequired)

	resp := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin", Password: "otra-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "nadie", Password: "Admin123!"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin"})
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", errBody.Code)
	require.Len(t, errBody.Details, 1)
	assert.Equal(t, "password", errBody.Details[0].Field)
}

func TestAPI_Register_SoloAdminYDuplicados(t *testing.T) {
	f := newAPI(t)
	in := dto.RegisterRequest{Username: "cajero", Email: "cajero@utility.test", Password: "Cajero123", Role: "STAFF"}

	resp := f.do(t, http.MethodPost, "/api/auth/register", "", in)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/auth/register", f.adminToken, in)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.RegisterResponse](t, resp)
	assert.Equal(t, "STAFF", created.User.Role)

	resp = f.do(t, http.MethodPost, "/api/auth/register", f.adminToken, in)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	staffToken := f.login(t, "cajero", "Cajero123").AccessToken
	other := dto.RegisterRequest{Username: "otro1", Email: "otro@utility.test", Password: "Otro12345"}
	resp = f.do(t, http.MethodPost, "/api/auth/register", staffToken, other)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_Usuarios_ConsultaYBajaLogica(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/auth/register", f.adminToken,
		dto.RegisterRequest{Username: "cajero", Email: "cajero@utility.test", Password: "Cajero123", Role: "STAFF"})
	staff := decode[dto.RegisterResponse](t, resp).User
	staffToken := f.login(t, "cajero", "Cajero123").AccessToken

	resp = f.do(t, http.MethodGet, "/api/auth/users/"+staff.ID, staffToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/auth/users", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	users := decode[[]dto.UserResponse](t, f.do(t, http.MethodGet, "/api/auth/users", f.adminToken, nil))
	assert.Len(t, users, 2)

	resp = f.do(t, http.MethodDelete, "/api/auth/users/"+staff.ID, f.adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	got := decode[dto.UserResponse](t, f.do(t, http.MethodGet, "/api/auth/users/"+staff.ID, f.adminToken, nil))
	assert.False(t, got.Active)

	resp = f.do(t, http.MethodDelete, "/api/auth/users/no-existe", f.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_SolicitudDeCuenta_AprobacionYCambioDeContrasena(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/account-requests", "", dto.AccountRequestCreate{
		Name: "Ana Pérez", Email: "ana@example.com", Phone: "3001234567", Address: "Calle 1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	req := decode[dto.AccountRequestResponse](t, resp)
	assert.Equal(t, "PENDING", req.Status)

	pending := decode[[]dto.AccountRequestResponse](t, f.do(t, http.MethodGet, "/api/account-requests/pending", f.adminToken, nil))
	require.Len(t, pending, 1)

	resp = f.do(t, http.MethodPut, "/api/account-requests/review", f.adminToken, dto.AccountRequestReview{RequestID: req.ID, Decision: "maybe"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPut, "/api/account-requests/review", f.adminToken, dto.AccountRequestReview{RequestID: req.ID, Decision: "approve"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "APPROVED", decode[dto.AccountRequestResponse](t, resp).Status)

	resp = f.do(t, http.MethodPut, "/api/account-requests/review", f.adminToken, dto.AccountRequestReview{RequestID: req.ID, Decision: "REJECT"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	require.Len(t, f.pub.approved, 1)
	temp := f.pub.approved[0].TemporaryPassword

	session := f.login(t, "ana@example.com", temp)
	assert.True(t, session.PasswordChangeRequired)
	assert.Equal(t, "CONSUMER", session.Role)

	resp = f.do(t, http.MethodGet, "/api/tariffs/plans", session.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "PASSWORD_CHANGE_REQUIRED", decode[dto.ErrorResponse](t, resp).Code)

	resp = f.do(t, http.MethodPut, "/api/auth/change-password", session.AccessToken,
		dto.ChangePasswordRequest{OldPassword: temp, NewPassword: "NuevaClave1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	session = f.login(t, "ana@example.com", "NuevaClave1")
	assert.False(t, session.PasswordChangeRequired)
	resp = f.do(t, http.MethodGet, "/api/tariffs/plans", session.AccessToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/consumers", session.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_RestablecimientoDeContrasena(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/auth/forgot-password", "", dto.ForgotPasswordRequest{Email: "desconocido@utility.test"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.Empty(t, f.pub.resets)

	resp = f.do(t, http.MethodPost, "/api/auth/forgot-password", "", dto.ForgotPasswordRequest{Email: "ADMIN@utility.test"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	require.Len(t, f.pub.resets, 1)
	token := f.pub.resets[0].Token

	reset := dto.ResetPasswordRequest{ResetToken: token, NewPassword: "OtraClave9"}
	resp = f.do(t, http.MethodPost, "/api/auth/reset-password", "", reset)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/auth/reset-password", "", reset)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decode[dto.ErrorResponse](t, resp).Code)

	f.login(t, "admin", "OtraClave9")
}

func TestAPI_FacturacionCompleta(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/tariffs/plans", f.adminToken, map[string]any{
		"utility_type": "electricity", "plan_code": "RES-01", "description": "Residencial",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	plan := decode[dto.TariffPlanResponse](t, resp)
	assert.Equal(t, "ELECTRICITY", plan.UtilityType)

	hundred, threeHundred := int64(100), int64(300)
	for _, slab := range []map[string]any{
		{"plan_id": plan.ID, "min_units": 0, "max_units": hundred, "rate_per_unit": "5"},
		{"plan_id": plan.ID, "min_units": 100, "max_units": threeHundred, "rate_per_unit": "7"},
	} {
		resp = f.do(t, http.MethodPost, "/api/tariffs/slabs", f.adminToken, slab)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}
	resp = f.do(t, http.MethodPost, "/api/tariffs/slabs", f.adminToken, map[string]any{
		"plan_id": plan.ID, "min_units": 50, "max_units": 150, "rate_per_unit": "6",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	tariff := decode[dto.TariffResponse](t, f.do(t, http.MethodGet, "/api/tariffs?utility_type=ELECTRICITY", f.adminToken, nil))
	assert.Equal(t, plan.ID, tariff.Plan.ID)
	assert.Len(t, tariff.Slabs, 2)

	resp = f.do(t, http.MethodPost, "/api/consumers", f.adminToken, dto.CreateConsumerRequest{
		FullName: "Carlos Ruiz", Email: "carlos@example.com", MobileNumber: "3109876543", Address: "Carrera 7",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	consumer := decode[dto.ConsumerResponse](t, resp)

	gen := dto.GenerateBillRequest{ConsumerID: consumer.ID, UtilityType: "ELECTRICITY", Month: 3, Year: 2025, UnitsConsumed: 150}
	resp = f.do(t, http.MethodPost, "/api/bills", f.adminToken, gen)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	bill := decode[dto.BillResponse](t, resp)
	assert.True(t, decimal.NewFromInt(850).Equal(bill.Amount), "150 unidades: 100×5 + 50×7")
	assert.Equal(t, "GENERATED", bill.Status)
	assert.Len(t, bill.Lines, 2)

	resp = f.do(t, http.MethodPost, "/api/bills", f.adminToken, gen)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	for i := 0; i < 2; i++ {
		resp = f.do(t, http.MethodPut, "/api/bills/"+bill.ID+"/mark-paid", f.adminToken, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()
	}
	got := decode[dto.BillResponse](t, f.do(t, http.MethodGet, "/api/bills/"+bill.ID, f.adminToken, nil))
	assert.Equal(t, "PAID", got.Status)
	require.NotNil(t, got.PaidAt)

	paid := decode[[]dto.BillResponse](t, f.do(t, http.MethodGet, "/api/bills?status=PAID&month=3&year=2025", f.adminToken, nil))
	assert.Len(t, paid, 1)
	resp = f.do(t, http.MethodGet, "/api/bills?status=VOID", f.adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	byConsumer := decode[[]dto.BillResponse](t, f.do(t, http.MethodGet, "/api/bills/consumer/"+consumer.ID, f.adminToken, nil))
	assert.Len(t, byConsumer, 1)

	resp = f.do(t, http.MethodGet, "/api/bills/"+bill.ID+"/pdf", f.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "factura_ELECTRICITY_202503_")
	resp.Body.Close()

	summary := decode[dto.BillsSummaryDTO](t, f.do(t, http.MethodGet, "/api/dashboard/billing/bills-summary?month=3&year=2025", f.adminToken, nil))
	assert.Equal(t, 1, summary.TotalBills)
	assert.Equal(t, 1, summary.PaidBills)
	assert.Equal(t, 0, summary.UnpaidBills)

	resp = f.do(t, http.MethodGet, "/api/dashboard/billing/bills-summary", f.adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	total := decode[dto.TotalBilledResponse](t, f.do(t, http.MethodGet, "/api/dashboard/billing/total-billed", f.adminToken, nil))
	assert.True(t, decimal.NewFromInt(850).Equal(total.TotalBilled))

	history := decode[dto.ConsumerBillingHistoryDTO](t, f.do(t, http.MethodGet, "/api/dashboard/billing/consumer/"+consumer.ID, f.adminToken, nil))
	assert.Equal(t, "Carlos Ruiz", history.FullName)
	assert.Equal(t, 1, history.TotalBills)
	assert.True(t, decimal.NewFromInt(850).Equal(history.PaidAmount))

	deactivated := decode[dto.DeactivatePlanResponse](t, f.do(t, http.MethodPut, "/api/tariffs/plans/"+plan.ID+"/deactivate", f.adminToken, nil))
	assert.Equal(t, "RES-01", deactivated.PlanCode)
	resp = f.do(t, http.MethodPut, "/api/tariffs/plans/no-existe/deactivate", f.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	inactive := decode[[]dto.TariffPlanResponse](t, f.do(t, http.MethodGet, "/api/tariffs/plans?active=false", f.adminToken, nil))
	assert.Len(t, inactive, 1)
	active := decode[[]dto.TariffPlanResponse](t, f.do(t, http.MethodGet, "/api/tariffs/plans/active", f.adminToken, nil))
	assert.Empty(t, active)
}

func TestAPI_RutaDesconocida(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/no-existe", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_IDMalformadoEsNoEncontrado(t *testing.T) {
	f := newAPI(t)
	cases := []struct {
		method, path string
		body         any
	}{
		{http.MethodGet, "/api/auth/users/U1", nil},
		{http.MethodGet, "/api/bills/abc", nil},
		{http.MethodGet, "/api/consumers/abc", nil},
		{http.MethodPut, "/api/tariffs/plans/x/deactivate", nil},
		{http.MethodDelete, "/api/tariffs/slabs/x", nil},
		{http.MethodPut, "/api/account-requests/review", dto.AccountRequestReview{RequestID: "abc", Decision: "APPROVE"}},
	}
	for _, tc := range cases {
		resp := f.do(t, tc.method, tc.path, f.adminToken, tc.body)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "%s %s", tc.method, tc.path)
		resp.Body.Close()
	}
}

func TestAPI_SolicitudDeCuenta_EmailDemasiadoLargo(t *testing.T) {
	f := newAPI(t)
	domain := strings.Repeat(strings.Repeat("b", 60)+".", 5) + "com"
	resp := f.do(t, http.MethodPost, "/api/account-requests", "", dto.AccountRequestCreate{
		Name: "Ana Gómez", Email: "ana@" + domain, Phone: "3001234567", Address: "Calle 1",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_Facturas_RolConsumidorNoLeeFacturas(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/auth/register", f.adminToken,
		dto.RegisterRequest{Username: "cliente", Email: "cliente@utility.test", Password: "Cliente123", Role: "CONSUMER"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	token := f.login(t, "cliente", "Cliente123").AccessToken

	for _, path := range []string{
		"/api/bills/6f9619ff-8b86-d011-b42d-00c04fc964ff",
		"/api/bills/6f9619ff-8b86-d011-b42d-00c04fc964ff/pdf",
		"/api/bills/consumer/6f9619ff-8b86-d011-b42d-00c04fc964ff",
	} {
		resp := f.do(t, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
		resp.Body.Close()
	}
}
