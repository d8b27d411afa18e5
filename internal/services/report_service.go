package services

import (
	"bytes"
	"fmt"
	"time"

	"warung/internal/models"
	"warung/internal/repositories"

	"github.com/jung-kurt/gofpdf"
)

// Number of calendar days covered by the daily breakdown and size of the
// best-seller ranking.
const (
	dailyStatsDays = 7
	topItemsLimit  = 5
)

// ReportService computes sales aggregates over the order store. Nothing is
// cached; every call recomputes from the store.
type ReportService struct {
	orderRepo repositories.OrderRepository
}

// NewReportService creates a new ReportService.
func NewReportService(orderRepo repositories.OrderRepository) *ReportService {
	return &ReportService{
		orderRepo: orderRepo,
	}
}

// DashboardStats aggregates total revenue and order count, pending order
// count, the last seven days of daily revenue and the top five selling items.
func (s *ReportService) DashboardStats() (*models.DashboardStats, error) {
	revenue, count, err := s.orderRepo.TotalSales()
	if err != nil {
		return nil, err
	}

	pending, err := s.orderRepo.CountByStatus(models.OrderPending)
	if err != nil {
		return nil, err
	}

	daily, err := s.orderRepo.DailyStats(dailyStatsDays)
	if err != nil {
		return nil, err
	}

	topItems, err := s.orderRepo.TopSellingItems(topItemsLimit)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		TotalRevenue:    revenue,
		TotalOrders:     count,
		PendingOrders:   pending,
		DailyStats:      daily,
		TopSellingItems: topItems,
	}, nil
}

// ExportDashboardPDF renders the dashboard aggregates into a PDF document
// and returns it as bytes ready for download.
func (s *ReportService) ExportDashboardPDF() ([]byte, error) {
	stats, err := s.DashboardStats()
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Admin Dashboard Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, "Generated on: "+time.Now().Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	// Summary block
	pdf.SetFont("Helvetica", "BU", 14)
	pdf.CellFormat(0, 10, "Summary Statistics", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total Revenue: $%.2f", stats.TotalRevenue), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Total Orders: %d", stats.TotalOrders), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Pending Orders: %d", stats.PendingOrders), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	// Top selling items
	pdf.SetFont("Helvetica", "BU", 14)
	pdf.CellFormat(0, 10, "Top Selling Items", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	for i, item := range stats.TopSellingItems {
		pdf.CellFormat(0, 8, fmt.Sprintf("%d. %s - %d sold", i+1, item.Name, item.TotalSold), "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	// Daily breakdown table
	pdf.SetFont("Helvetica", "BU", 14)
	pdf.CellFormat(0, 10, "Last 7 Days Performance", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(60, 8, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, "Revenue", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, "Orders", "1", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	for _, day := range stats.DailyStats {
		pdf.CellFormat(60, 8, day.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, fmt.Sprintf("$%.2f", day.Revenue), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, fmt.Sprintf("%d", day.Orders), "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
