// Package analytics contiene los casos de uso de la pantalla de Estadísticas del panel:
// reporte de ventas por período, estadísticas de clientes y su exportación a PDF.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/megastore-web/internal/application/fetch"
	"github.com/jhoicas/megastore-web/internal/application/ports"
	"github.com/jhoicas/megastore-web/internal/application/session"
	"github.com/jhoicas/megastore-web/internal/domain"
	"github.com/jhoicas/megastore-web/internal/domain/entity"
	"github.com/jhoicas/megastore-web/internal/domain/repository"
	"github.com/jhoicas/megastore-web/pkg/money"
)

const (
	dashboardTopProducts = 5 // filas de los rankings

	msgLoadReport    = "Error al cargar el reporte de ventas."
	msgLoadCustomers = "Error al cargar las estadísticas de clientes."
	msgExport        = "No se pudo exportar el reporte."
)

// PeriodLabels etiqueta visible de cada período aceptado por /sales/reports.
var PeriodLabels = map[string]string{
	repository.PeriodDaily:   "Diario",
	repository.PeriodWeekly:  "Semanal",
	repository.PeriodMonthly: "Mensual",
}

// Ranked par nombre/cantidad para las tablas de ranking.
type Ranked struct {
	Name  string
	Count int
}

// PeriodOption período seleccionable.
type PeriodOption struct {
	Code     string
	Label    string
	Selected bool
}

// ReportView reporte de ventas formateado.
type ReportView struct {
	TotalSales    string
	TotalOrders   int
	AverageTicket string
	TopProducts   []Ranked
}

// CustomersView estadísticas de clientes formateadas.
type CustomersView struct {
	AverageOrderValue string
	FavoriteProducts  []Ranked
	PurchaseFrequency []Ranked
}

// StatsPage pantalla de Estadísticas.
type StatsPage struct {
	Period    string
	Periods   []PeriodOption
	Report    fetch.State[ReportView]
	Customers fetch.State[CustomersView]
	DateLabel string
}

// DashboardUseCase arma la pantalla de Estadísticas.
//
// Fuente de datos: SaleRepository (GET /sales/reports y /sales/customer-statistics).
// No agrega ventas por su cuenta; los totales los calcula la API.
type DashboardUseCase struct {
	sales repository.SaleRepository
	docs  ports.DocumentGenerator
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(sales repository.SaleRepository, docs ports.DocumentGenerator) *DashboardUseCase {
	return &DashboardUseCase{sales: sales, docs: docs, now: time.Now}
}

// NormalizePeriod devuelve period si es conocido, o "monthly".
func NormalizePeriod(period string) string {
	if _, ok := PeriodLabels[period]; ok {
		return period
	}
	return repository.PeriodMonthly
}

func requireAdmin(ctx context.Context) error {
	s, err := session.Require(ctx)
	if err != nil {
		return err
	}
	if !s.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// GetSummary construye la pantalla para el período indicado.
//
// Dos llamadas en paralelo:
//  1. Report(period)        → totales y productos más vendidos
//  2. CustomerStatistics()  → ticket promedio, favoritos y frecuencia de compra
func (uc *DashboardUseCase) GetSummary(ctx context.Context, period string) (*StatsPage, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	period = NormalizePeriod(period)

	// ── Goroutines para paralelizar las 2 consultas a la API ──────────────────
	reportCh := make(chan fetch.State[*entity.SalesReport], 1)
	statsCh := make(chan fetch.State[*entity.CustomerStatistics], 1)

	go func() {
		reportCh <- fetch.Run(ctx, uc.sales.Report, period, msgLoadReport)
	}()
	go func() {
		statsCh <- fetch.Run(ctx, func(ctx context.Context, _ struct{}) (*entity.CustomerStatistics, error) {
			return uc.sales.CustomerStatistics(ctx)
		}, struct{}{}, msgLoadCustomers)
	}()

	report := <-reportCh
	stats := <-statsCh

	// ── Construir la vista ─────────────────────────────────────────────────────
	page := &StatsPage{
		Period:    period,
		Periods:   periodOptions(period),
		Report:    fetch.State[ReportView]{Loaded: report.Loaded, Error: report.Error},
		Customers: fetch.State[CustomersView]{Loaded: stats.Loaded, Error: stats.Error},
		DateLabel: monthLabel(uc.now()),
	}
	if report.Data != nil {
		page.Report.Data = toReportView(report.Data)
	}
	if stats.Data != nil {
		page.Customers.Data = toCustomersView(stats.Data)
	}
	return page, nil
}

// Export genera el PDF del reporte del período. Sin reporte no hay PDF; las estadísticas
// de clientes son opcionales.
func (uc *DashboardUseCase) Export(ctx context.Context, period string) ([]byte, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	period = NormalizePeriod(period)

	type statsResult struct {
		stats *entity.CustomerStatistics
		err   error
	}
	statsCh := make(chan statsResult, 1)
	go func() {
		s, err := uc.sales.CustomerStatistics(ctx)
		statsCh <- statsResult{s, err}
	}()

	report, err := uc.sales.Report(ctx, period)
	stats := <-statsCh
	if err != nil {
		return nil, fmt.Errorf("estadísticas: reporte %s: %w", period, err)
	}
	pdf, err := uc.docs.SalesReport(ctx, period, report, stats.stats)
	if err != nil {
		return nil, fmt.Errorf("estadísticas: pdf: %w", err)
	}
	return pdf, nil
}

// ExportMessage mensaje a mostrar si Export falla.
func ExportMessage(err error) string { return domain.UserMessage(err, msgExport) }

func periodOptions(selected string) []PeriodOption {
	out := make([]PeriodOption, 0, len(PeriodLabels))
	for _, p := range []string{repository.PeriodDaily, repository.PeriodWeekly, repository.PeriodMonthly} {
		out = append(out, PeriodOption{Code: p, Label: PeriodLabels[p], Selected: p == selected})
	}
	return out
}

func toReportView(r *entity.SalesReport) ReportView {
	avg := decimal.Zero
	if r.TotalOrders > 0 {
		avg = r.TotalSales.Div(decimal.NewFromInt(int64(r.TotalOrders))).Round(2)
	}
	return ReportView{
		TotalSales:    money.Format(r.TotalSales),
		TotalOrders:   r.TotalOrders,
		AverageTicket: money.Format(avg),
		TopProducts:   Rank(r.TopProducts, dashboardTopProducts),
	}
}

func toCustomersView(s *entity.CustomerStatistics) CustomersView {
	return CustomersView{
		AverageOrderValue: money.Format(s.AverageOrderValue),
		FavoriteProducts:  Rank(s.FavoriteProducts, dashboardTopProducts),
		PurchaseFrequency: Rank(s.PurchaseFrequency, 0),
	}
}

// Rank ordena un mapa nombre→cantidad de mayor a menor (desempate alfabético) y
// corta en limit filas (0 = sin límite).
func Rank(m map[string]int, limit int) []Ranked {
	out := make([]Ranked, 0, len(m))
	for k, v := range m {
		out = append(out, Ranked{Name: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
