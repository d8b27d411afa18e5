package handlers

import (
	"log"

	"warung/internal/middleware"
	"warung/internal/models"
	"warung/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles HTTP requests for admin sales reports.
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// RegisterRoutes registers the reporting routes. The router passed in must
// already require authentication.
func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	reportRoutes := router.Group("/reports", middleware.RequireRoles(models.RoleAdmin))
	reportRoutes.Get("/dashboard", h.HandleDashboardStats)
	reportRoutes.Get("/export-pdf", h.HandleExportPDF)
}

// HandleDashboardStats returns the aggregate sales statistics.
func (h *ReportHandler) HandleDashboardStats(c *fiber.Ctx) error {
	stats, err := h.reportService.DashboardStats()
	if err != nil {
		log.Printf("Error computing dashboard stats: %v", err)
		return serviceError(c, err)
	}
	return c.JSON(stats)
}

// HandleExportPDF streams the dashboard report as a PDF attachment.
func (h *ReportHandler) HandleExportPDF(c *fiber.Ctx) error {
	report, err := h.reportService.ExportDashboardPDF()
	if err != nil {
		log.Printf("PDF Export Error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate PDF report",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=dashboard_report.pdf`)
	return c.Send(report)
}
