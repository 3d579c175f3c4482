package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/megastore-web/internal/application/session"
	"github.com/jhoicas/megastore-web/internal/domain"
	"github.com/jhoicas/megastore-web/internal/domain/entity"
	"github.com/jhoicas/megastore-web/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fakeSales struct {
	repository.SaleRepository
	report    *entity.SalesReport
	reportErr error
	stats     *entity.CustomerStatistics
	statsErr  error
	period    string
}

func (f *fakeSales) Report(_ context.Context, period string) (*entity.SalesReport, error) {
	f.period = period
	return f.report, f.reportErr
}

func (f *fakeSales) CustomerStatistics(context.Context) (*entity.CustomerStatistics, error) {
	return f.stats, f.statsErr
}

type fakeDocs struct {
	period string
	stats  *entity.CustomerStatistics
}

func (f *fakeDocs) SaleReceipt(context.Context, *entity.Sale) ([]byte, error) { return nil, nil }

func (f *fakeDocs) SalesReport(_ context.Context, period string, _ *entity.SalesReport, stats *entity.CustomerStatistics) ([]byte, error) {
	f.period = period
	f.stats = stats
	return []byte("%PDF"), nil
}

func adminCtx() context.Context {
	u := entity.User{ID: 1, Roles: []entity.Role{{Name: entity.RoleAdmin}}}
	return session.WithContext(context.Background(), &session.Session{User: u, Token: "tok"})
}

func sampleData() *fakeSales {
	return &fakeSales{
		report: &entity.SalesReport{
			TotalSales:  decimal.NewFromInt(30000),
			TotalOrders: 4,
			TopProducts: map[string]int{"Remera": 5, "Buzo": 9, "Gorra": 5, "Media": 1, "Short": 2, "Campera": 3},
		},
		stats: &entity.CustomerStatistics{
			AverageOrderValue: decimal.RequireFromString("7500.5"),
			FavoriteProducts:  map[string]int{"Buzo": 3},
			PurchaseFrequency: map[string]int{"juan@mail.com": 2, "ana@mail.com": 4},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_ResumenDelPeriodo(t *testing.T) {
	sales := sampleData()
	uc := NewDashboardUseCase(sales, &fakeDocs{})
	uc.now = func() time.Time { return time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC) }

	page, err := uc.GetSummary(adminCtx(), "weekly")
	require.NoError(t, err)
	assert.Equal(t, "weekly", sales.period)
	assert.Equal(t, "Febrero 2026", page.DateLabel)
	assert.True(t, page.Periods[1].Selected)

	r := page.Report.Data
	assert.Equal(t, "$ 30.000,00", r.TotalSales)
	assert.Equal(t, "$ 7.500,00", r.AverageTicket)
	require.Len(t, r.TopProducts, 5)
	assert.Equal(t, Ranked{Name: "Buzo", Count: 9}, r.TopProducts[0])
	assert.Equal(t, Ranked{Name: "Gorra", Count: 5}, r.TopProducts[1], "empate resuelto alfabéticamente")

	c := page.Customers.Data
	assert.Equal(t, "$ 7.500,50", c.AverageOrderValue)
	assert.Equal(t, "ana@mail.com", c.PurchaseFrequency[0].Name)
}

func TestDashboard_PeriodoDesconocidoEsMensual(t *testing.T) {
	sales := sampleData()
	_, err := NewDashboardUseCase(sales, &fakeDocs{}).GetSummary(adminCtx(), "anual")
	require.NoError(t, err)
	assert.Equal(t, repository.PeriodMonthly, sales.period)
}

func TestDashboard_ErrorDeUnaFuenteNoTapaLaOtra(t *testing.T) {
	sales := sampleData()
	sales.statsErr = &domain.RemoteError{Kind: domain.KindServer, Status: 500}

	page, err := NewDashboardUseCase(sales, &fakeDocs{}).GetSummary(adminCtx(), "daily")
	require.NoError(t, err)
	assert.Equal(t, "Error al cargar las estadísticas de clientes.", page.Customers.Error)
	assert.Empty(t, page.Report.Error)
	assert.Equal(t, 4, page.Report.Data.TotalOrders)
}

func TestDashboard_SinRolAdmin(t *testing.T) {
	ctx := session.WithContext(context.Background(), &session.Session{User: entity.User{ID: 2}})
	_, err := NewDashboardUseCase(sampleData(), &fakeDocs{}).GetSummary(ctx, "daily")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = NewDashboardUseCase(sampleData(), &fakeDocs{}).GetSummary(context.Background(), "daily")
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestDashboard_ExportarPDF(t *testing.T) {
	docs := &fakeDocs{}
	pdf, err := NewDashboardUseCase(sampleData(), docs).Export(adminCtx(), "daily")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "daily", docs.period)
	assert.NotNil(t, docs.stats)
}

func TestDashboard_ExportarSinReporteFalla(t *testing.T) {
	sales := sampleData()
	sales.reportErr = errors.New("timeout")
	_, err := NewDashboardUseCase(sales, &fakeDocs{}).Export(adminCtx(), "daily")
	require.Error(t, err)
	assert.Equal(t, "No se pudo exportar el reporte.", ExportMessage(err))
}

func TestRank_SinLimite(t *testing.T) {
	got := Rank(map[string]int{"a": 1, "b": 2}, 0)
	assert.Equal(t, []Ranked{{"b", 2}, {"a", 1}}, got)
}
