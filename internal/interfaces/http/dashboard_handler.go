package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/megastore-web/internal/application/analytics"
	"github.com/jhoicas/megastore-web/internal/application/usecase"
	"github.com/jhoicas/megastore-web/internal/domain/entity"
)

const pathSales = "/dashboard/sales"

// DashboardHandler inicio del panel, ventas y estadísticas.
type DashboardHandler struct {
	stats *appanalytics.DashboardUseCase
	sales *usecase.SalesUseCase
	guard *SessionGuard
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(stats *appanalytics.DashboardUseCase, sales *usecase.SalesUseCase, guard *SessionGuard) *DashboardHandler {
	return &DashboardHandler{stats: stats, sales: sales, guard: guard}
}

// Home GET /dashboard
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	return render(c, "dashboard/home", layoutDashboard, fiber.Map{"Title": "Inicio"})
}

// Stats reporte de ventas del período y estadísticas de clientes.
// GET /dashboard/stats?period=daily|weekly|monthly
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	page, err := h.stats.GetSummary(c.UserContext(), c.Query("period"))
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return render(c, "dashboard/stats", layoutDashboard, fiber.Map{"Title": "Estadísticas", "Page": page})
}

// ExportStats PDF del reporte del período.
// GET /dashboard/stats/export.pdf?period=
func (h *DashboardHandler) ExportStats(c *fiber.Ctx) error {
	period := appanalytics.NormalizePeriod(c.Query("period"))
	pdf, err := h.stats.Export(c.UserContext(), period)
	if err != nil {
		if isSessionError(err) {
			return h.guard.Handle(c, err)
		}
		h.guard.log.Error().Err(err).Str("period", period).Msg("exportar reporte")
		return fiber.NewError(fiber.StatusBadGateway, appanalytics.ExportMessage(err))
	}
	c.Attachment(fmt.Sprintf("reporte-ventas-%s.pdf", period))
	return c.Send(pdf)
}

// ─── Ventas ───────────────────────────────────────────────────────────────────

// Sales GET /dashboard/sales?page=&q=
func (h *DashboardHandler) Sales(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	page, err := h.sales.List(c.UserContext(), q)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return render(c, "dashboard/sales", layoutDashboard, fiber.Map{"Title": "Ventas", "Page": page, "Base": pathSales})
}

// Sale detalle de una venta con sus transiciones.
// GET /dashboard/sales/:id
func (h *DashboardHandler) Sale(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	return h.renderSale(c, id, "")
}

func (h *DashboardHandler) renderSale(c *fiber.Ctx, id int64, msg string) error {
	sale, err := h.sales.Detail(c.UserContext(), id)
	if err != nil {
		return h.guard.Handle(c, err)
	}
	return render(c, "dashboard/sale", layoutDashboard, fiber.Map{
		"Title": fmt.Sprintf("Venta #%d", id),
		"Sale":  sale,
		"Error": msg,
	})
}

// ConfirmTransition GET /dashboard/sales/:id/transition?status=
func (h *DashboardHandler) ConfirmTransition(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	status := c.Query("status")
	label, ok := entity.SaleStatusLabels[status]
	if !ok || status == entity.SaleInProcess {
		return fiber.ErrBadRequest
	}
	return renderConfirm(c, ConfirmView{
		Title:   "Cambiar estado",
		Message: fmt.Sprintf("¿Marcar la venta #%d como %s?", id, label),
		Action:  fmt.Sprintf("%s/%d/transition?status=%s", pathSales, id, status),
		Cancel:  fmt.Sprintf("%s/%d", pathSales, id),
	})
}

// Transition POST /dashboard/sales/:id/transition?status=
// Si la API rechaza el cambio se vuelve al detalle con el mensaje.
func (h *DashboardHandler) Transition(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.sales.Transition(c.UserContext(), id, c.Query("status")); err != nil {
		msg, ok := failure(err)
		if !ok {
			return h.guard.Handle(c, err)
		}
		return h.renderSale(c, id, msg)
	}
	return redirect(c, fmt.Sprintf("%s/%d", pathSales, id))
}
