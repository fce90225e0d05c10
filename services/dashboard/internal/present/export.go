package present

import (
	"encoding/csv"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"

	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/models"
)

// ExportFormat names a download format.
type ExportFormat string

const (
	CSVFormat     ExportFormat = "csv"
	XLSXFormat    ExportFormat = "xlsx"
	ParquetFormat ExportFormat = "parquet"
)

// ExportBaseName is the file name stem of every download.
const ExportBaseName = "shrimp_data"

// ParseExportFormat validates a format name.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(s); f {
	case CSVFormat, XLSXFormat, ParquetFormat:
		return f, nil
	}
	return "", goerr.New("unsupported export format", goerr.V("format", s))
}

// FileName returns the download name, e.g. shrimp_data.csv.
func (f ExportFormat) FileName() string {
	return ExportBaseName + "." + string(f)
}

// ContentType returns the MIME type served for f.
func (f ExportFormat) ContentType() string {
	switch f {
	case XLSXFormat:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ParquetFormat:
		return "application/vnd.apache.parquet"
	default:
		return "text/csv"
	}
}

// Export writes rows to w in format f.
func Export(w io.Writer, f ExportFormat, rows []models.Measurement) error {
	switch f {
	case CSVFormat:
		return WriteCSV(w, BuildTable(rows))
	case XLSXFormat:
		return WriteXLSX(w, rows)
	case ParquetFormat:
		return WriteParquet(w, rows)
	}
	return goerr.New("unsupported export format", goerr.V("format", string(f)))
}

// utf8BOM makes spreadsheet tools detect UTF-8 in the Korean header.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the display table as BOM-prefixed UTF-8 CSV.
func WriteCSV(w io.Writer, t Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return goerr.Wrap(err, "failed to write BOM")
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return goerr.Wrap(err, "failed to write CSV header")
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return goerr.Wrap(err, "failed to write CSV rows")
	}
	return nil
}

const xlsxSheet = "shrimp_data"

// WriteXLSX writes rows as a single-sheet workbook. Counts stay numeric so
// spreadsheets can sum them.
func WriteXLSX(w io.Writer, rows []models.Measurement) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return goerr.Wrap(err, "failed to name sheet")
	}

	for i, header := range Header() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(xlsxSheet, cell, header); err != nil {
			return goerr.Wrap(err, "failed to write header cell", goerr.V("cell", cell))
		}
	}

	for i, r := range rows {
		values := []any{
			r.Region,
			r.FarmOwner,
			r.PondType,
			r.PondNumber,
			r.SamplingDate.Format(models.DateLayout),
			string(r.VibrioType),
			r.VibrioCount,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
				return goerr.Wrap(err, "failed to write cell", goerr.V("cell", cell))
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return goerr.Wrap(err, "failed to write workbook")
	}
	return nil
}

// ParquetRecord is one exported row. Columns keep their source names.
type ParquetRecord struct {
	Region       string `parquet:"region,snappy"`
	FarmOwner    string `parquet:"farm_owner,snappy"`
	PondType     string `parquet:"pond_type,snappy"`
	PondNumber   int32  `parquet:"pond_number,snappy"`
	SamplingDate string `parquet:"sampling_date,snappy"`
	VibrioType   string `parquet:"vibrio_type,snappy"`
	VibrioCount  int64  `parquet:"vibrio_count,snappy"`
}

// WriteParquet writes rows as a Parquet file.
func WriteParquet(w io.Writer, rows []models.Measurement) error {
	records := make([]ParquetRecord, len(rows))
	for i, r := range rows {
		records[i] = ParquetRecord{
			Region:       r.Region,
			FarmOwner:    r.FarmOwner,
			PondType:     r.PondType,
			PondNumber:   int32(r.PondNumber),
			SamplingDate: r.SamplingDate.Format(models.DateLayout),
			VibrioType:   string(r.VibrioType),
			VibrioCount:  r.VibrioCount,
		}
	}

	writer := parquet.NewGenericWriter[ParquetRecord](w)
	if _, err := writer.Write(records); err != nil {
		_ = writer.Close()
		return goerr.Wrap(err, "failed to write parquet rows")
	}
	if err := writer.Close(); err != nil {
		return goerr.Wrap(err, "failed to close parquet writer")
	}
	return nil
}
