package interfaces

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	planapp "taloyhtio-cloud/internal/planning/application"
)

// BuildPlanPDF renders a minimal PDF of a long-term renovation plan.
func BuildPlanPDF(plan *planapp.Plan) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Long-Term Renovation Plan")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Company: %s", plan.CompanyID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", plan.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Horizon: %d-%d", plan.CurrentYear, plan.CurrentYear+plan.HorizonYears))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total cost: %.2f", plan.TotalCost))
	pdf.Ln(5)
	if plan.Synergy.TotalSavings > 0 {
		pdf.Cell(0, 6, fmt.Sprintf("Bundling savings: %.2f", plan.Synergy.TotalSavings))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(50, 6, "Component", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Due", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Condition", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Priority", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Estimated cost", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, item := range plan.Items {
		pdf.CellFormat(50, 6, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", item.DueYear), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, item.Condition.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, item.Priority.Label, "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", item.EstimatedCost), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildPlanXLSX renders a minimal XLSX of a long-term renovation plan.
func BuildPlanXLSX(plan *planapp.Plan) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	itemsSheet := "items"
	yearsSheet := "years"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(itemsSheet)
	f.NewSheet(yearsSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Long-Term Renovation Plan")
	_ = f.SetCellValue(summarySheet, "A3", "Company")
	_ = f.SetCellValue(summarySheet, "B3", plan.CompanyID)
	_ = f.SetCellValue(summarySheet, "A4", "Generated")
	_ = f.SetCellValue(summarySheet, "B4", plan.GeneratedAt.Format(time.RFC3339))
	_ = f.SetCellValue(summarySheet, "A5", "First year")
	_ = f.SetCellValue(summarySheet, "B5", plan.CurrentYear)
	_ = f.SetCellValue(summarySheet, "A6", "Horizon years")
	_ = f.SetCellValue(summarySheet, "B6", plan.HorizonYears)
	_ = f.SetCellValue(summarySheet, "A7", "Total cost")
	_ = f.SetCellValue(summarySheet, "B7", plan.TotalCost)
	_ = f.SetCellValue(summarySheet, "A8", "Bundling savings")
	_ = f.SetCellValue(summarySheet, "B8", plan.Synergy.TotalSavings)

	_ = f.SetCellValue(itemsSheet, "A1", "Component")
	_ = f.SetCellValue(itemsSheet, "B1", "Category")
	_ = f.SetCellValue(itemsSheet, "C1", "Due year")
	_ = f.SetCellValue(itemsSheet, "D1", "Condition")
	_ = f.SetCellValue(itemsSheet, "E1", "Remaining %")
	_ = f.SetCellValue(itemsSheet, "F1", "Priority")
	_ = f.SetCellValue(itemsSheet, "G1", "Estimated cost")
	for i, item := range plan.Items {
		row := i + 2
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("A%d", row), item.Name)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("B%d", row), item.Category)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("C%d", row), item.DueYear)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("D%d", row), item.Condition.Status)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("E%d", row), item.Condition.Percentage)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("F%d", row), item.Priority.Label)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("G%d", row), item.EstimatedCost)
	}

	years := make([]int, 0, len(plan.YearTotals))
	for year := range plan.YearTotals {
		years = append(years, year)
	}
	sort.Ints(years)
	_ = f.SetCellValue(yearsSheet, "A1", "Year")
	_ = f.SetCellValue(yearsSheet, "B1", "Cost")
	for i, year := range years {
		row := i + 2
		_ = f.SetCellValue(yearsSheet, fmt.Sprintf("A%d", row), year)
		_ = f.SetCellValue(yearsSheet, fmt.Sprintf("B%d", row), plan.YearTotals[year])
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
