package workhour

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// buildPeriodWorkbook renders the per-employee period summaries into an
// xlsx sheet, one row per employee.
func buildPeriodWorkbook(start, end time.Time, summaries []PeriodSummaryResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Espelho de Ponto"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 30)
	f.SetColWidth(sheetName, "B", "G", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	title := fmt.Sprintf("Espelho de Ponto %s a %s", start.Format("02/01/2006"), end.Format("02/01/2006"))
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", "G1")
	f.SetCellStyle(sheetName, "A1", "G1", headerStyle)

	headers := []string{"Funcionário", "Trabalhado", "Previsto", "Extra", "Faltante", "Dias Trabalhados", "Faltas"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, fmt.Sprintf("%s2", col), h)
		f.SetCellStyle(sheetName, fmt.Sprintf("%s2", col), fmt.Sprintf("%s2", col), headerStyle)
	}

	for i, s := range summaries {
		row := i + 3
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), s.UserName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), formatSigned(s.WorkedSeconds))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), formatSigned(s.ExpectedSeconds))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), formatSigned(s.ExtraSeconds))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), formatSigned(s.MissingSeconds))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), s.DaysWorked)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), s.Absences)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
