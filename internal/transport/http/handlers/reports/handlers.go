package reportshandler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"crewops/internal/domain/eligibility"
	"crewops/internal/transport/http/api"
	"crewops/internal/transport/http/middleware"
	"crewops/internal/transport/http/shared"
)

type Handler struct {
	Engine *eligibility.Service
}

func NewHandler(engine *eligibility.Service) *Handler {
	return &Handler{Engine: engine}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/availability.csv", h.handleAvailabilityCSV)
		r.Get("/availability.xlsx", h.handleAvailabilityXLSX)
		r.Get("/eligibility.pdf", h.handleEligibilityPDF)
	})
}

func (h *Handler) availabilityRange(w http.ResponseWriter, r *http.Request) ([]eligibility.CrewAvailability, bool) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	start, startOK := v.Date("startDate", r.URL.Query().Get("startDate"))
	end, endOK := v.Date("endDate", r.URL.Query().Get("endDate"))
	if startOK && endOK {
		v.DateOrder("startDate", start, "endDate", end)
	}
	if v.Respond(w, requestID) {
		return nil, false
	}

	availability, err := h.Engine.CalculateAvailability(r.Context(), eligibility.DateOf(start), eligibility.DateOf(end), "")
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "engine_error", "availability projection failed", requestID)
		return nil, false
	}
	return availability, true
}

var availabilityHeader = []string{
	"date", "totalCaptains", "availableCaptains", "onLeaveCaptains",
	"totalFirstOfficers", "availableFirstOfficers", "onLeaveFirstOfficers", "meetsMinimum",
}

func availabilityRow(day eligibility.CrewAvailability) []string {
	return []string{
		day.Date.String(),
		strconv.Itoa(day.TotalCaptains),
		strconv.Itoa(day.AvailableCaptains),
		strconv.Itoa(day.OnLeaveCaptains),
		strconv.Itoa(day.TotalFirstOfficers),
		strconv.Itoa(day.AvailableFirstOfficers),
		strconv.Itoa(day.OnLeaveFirstOfficers),
		strconv.FormatBool(day.MeetsMinimum),
	}
}

func (h *Handler) handleAvailabilityCSV(w http.ResponseWriter, r *http.Request) {
	availability, ok := h.availabilityRange(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="availability.csv"`)

	writer := csv.NewWriter(w)
	_ = writer.Write(availabilityHeader)
	for _, day := range availability {
		_ = writer.Write(availabilityRow(day))
	}
	writer.Flush()
}

func (h *Handler) handleAvailabilityXLSX(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	availability, ok := h.availabilityRange(w, r)
	if !ok {
		return
	}

	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	sheet := "Availability"
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_error", "failed to build workbook", requestID)
		return
	}
	for col, title := range availabilityHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = file.SetCellValue(sheet, cell, title)
	}
	for rowIdx, day := range availability {
		for col, value := range availabilityRow(day) {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			_ = file.SetCellValue(sheet, cell, value)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="availability.xlsx"`)
	if err := file.Write(w); err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_error", "failed to write workbook", requestID)
	}
}

func (h *Handler) handleEligibilityPDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	rosterPeriod := r.URL.Query().Get("rosterPeriod")
	v := shared.NewValidator()
	v.Required("rosterPeriod", rosterPeriod, "roster period is required")
	if v.Respond(w, requestID) {
		return
	}

	result, err := h.Engine.CheckBulkEligibility(r.Context(), rosterPeriod)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "roster period evaluation failed", requestID)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Leave Eligibility Summary")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Roster period: %s", rosterPeriod))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Eligible: %d", len(result.Eligible)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Requires review: %d", len(result.RequiresReview)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Should deny: %d", len(result.ShouldDeny)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Recommendations")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	ids := make([]string, 0, len(result.Recommendations))
	for id := range result.Recommendations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		check := result.Recommendations[id]
		pdf.Cell(0, 6, fmt.Sprintf("%s: %s", id, check.Recommendation))
		pdf.Ln(5)
		for _, reason := range check.Reasons {
			pdf.Cell(0, 6, "  - "+reason)
			pdf.Ln(5)
		}
	}
	if len(result.Errors) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Evaluation errors")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, bulkErr := range result.Errors {
			pdf.Cell(0, 6, fmt.Sprintf("%s: %s", bulkErr.RequestID, bulkErr.Message))
			pdf.Ln(5)
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="eligibility.pdf"`)
	if err := pdf.Output(w); err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_error", "failed to write pdf", requestID)
	}
}
