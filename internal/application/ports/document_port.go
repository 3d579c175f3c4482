package ports

import (
	"context"

	"github.com/jhoicas/megastore-web/internal/domain/entity"
)

// DocumentGenerator define el puerto de salida para los PDF descargables.
// El adaptador (maroto) solo conoce entidades; el formateo de montos es suyo.
type DocumentGenerator interface {
	// SaleReceipt comprobante de una compra confirmada.
	SaleReceipt(ctx context.Context, sale *entity.Sale) ([]byte, error)
	// SalesReport reporte de ventas del período con las estadísticas de clientes (stats puede ser nil).
	SalesReport(ctx context.Context, period string, report *entity.SalesReport, stats *entity.CustomerStatistics) ([]byte, error)
}
