package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/torebek/gigledger/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

func (g *Generator) Generate(report model.ClientReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Best clients by amount paid", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s - %s", formatDate(report.PeriodStart), formatDate(report.PeriodEnd)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	headers := []string{"#", "Client", "Client ID", "Amount paid"}
	colWidths := []float64{12, 58, 78, 32}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)

	for i, client := range report.Clients {
		row := []string{
			fmt.Sprintf("%d", i+1),
			client.FullName,
			client.ID.String(),
			formatAmount(client.Paid),
		}
		drawTableRow(pdf, g.fontName, row, colWidths, false)
	}

	pdf.Ln(2)
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total paid: %s", formatAmount(report.TotalPaid())), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cells []string, widths []float64, header bool) {
	if header {
		pdf.SetFont(fontName, "B", 10)
	} else {
		pdf.SetFont(fontName, "", 10)
	}
	for i, cell := range cells {
		align := "L"
		if i == 0 || i == len(cells)-1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, cell, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}
