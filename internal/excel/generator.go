package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/torebek/gigledger/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(report model.ClientReport) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Best clients"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Period start")
	set("B1", formatDate(report.PeriodStart))
	set("A2", "Period end")
	set("B2", formatDate(report.PeriodEnd))
	set("A3", "Clients ranked")
	set("B3", len(report.Clients))
	set("A4", "Total paid")
	set("B4", report.TotalPaid())

	tableRow := 6
	set(fmt.Sprintf("A%d", tableRow), "#")
	set(fmt.Sprintf("B%d", tableRow), "Client")
	set(fmt.Sprintf("C%d", tableRow), "Client ID")
	set(fmt.Sprintf("D%d", tableRow), "Amount paid")

	for i, client := range report.Clients {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), i+1)
		set(fmt.Sprintf("B%d", row), client.FullName)
		set(fmt.Sprintf("C%d", row), client.ID.String())
		set(fmt.Sprintf("D%d", row), client.Paid)
	}

	_ = file.SetColWidth(sheet, "A", "A", 6)
	_ = file.SetColWidth(sheet, "B", "B", 32)
	_ = file.SetColWidth(sheet, "C", "C", 40)
	_ = file.SetColWidth(sheet, "D", "D", 16)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}
