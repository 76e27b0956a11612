package simpleexcel

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"reflect"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Constants & Types
// =============================================================================

const (
	SectionDirectionHorizontal = "horizontal"
	SectionDirectionVertical   = "vertical"

	// maxSheetName is the longest sheet name Excel accepts.
	maxSheetName = 31

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv"
)

// FormatterFunc rewrites a cell value before it is written.
type FormatterFunc func(interface{}) interface{}

// DataExporter is the main entry point for exporting data.
type DataExporter struct {
	template *ReportTemplate
	// data holds data bound to specific section IDs (for YAML flow)
	data map[string]interface{}
	// sheets holds manually added sheets (for programmatic flow)
	sheets     []*SheetBuilder
	formatters map[string]FormatterFunc
}

// ReportTemplate represents the YAML structure.
type ReportTemplate struct {
	Sheets []SheetTemplate `yaml:"sheets"`
}

// SheetTemplate represents a sheet in the YAML.
type SheetTemplate struct {
	Name     string          `yaml:"name"`
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig defines a section of data in a sheet. Data must be a slice of
// structs, struct pointers or map[string]interface{}. When Columns is empty
// they are derived from the element type.
type SectionConfig struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Data        interface{}    `yaml:"-"`
	ShowHeader  bool           `yaml:"show_header"`
	Direction   string         `yaml:"direction"`
	Position    string         `yaml:"position"` // e.g. "A1"
	TitleStyle  *StyleTemplate `yaml:"title_style"`
	HeaderStyle *StyleTemplate `yaml:"header_style"`
	Columns     []ColumnConfig `yaml:"columns"`
}

// ColumnConfig defines a column in a section.
type ColumnConfig struct {
	FieldName     string        `yaml:"field_name"` // struct field name or map key
	Header        string        `yaml:"header"`
	Width         float64       `yaml:"width"`
	FormatterName string        `yaml:"formatter"`
	Formatter     FormatterFunc `yaml:"-"`
}

// StyleTemplate defines basic styling.
type StyleTemplate struct {
	Font *FontTemplate `yaml:"font"`
	Fill *FillTemplate `yaml:"fill"`
}

type FontTemplate struct {
	Bold  bool   `yaml:"bold"`
	Color string `yaml:"color"` // hex color
}

type FillTemplate struct {
	Color string `yaml:"color"` // hex color
}

type sheet struct {
	name     string
	sections []*SectionConfig
}

// =============================================================================
// Constructors
// =============================================================================

func NewDataExporter() *DataExporter {
	return &DataExporter{
		data:       make(map[string]interface{}),
		formatters: make(map[string]FormatterFunc),
	}
}

// NewDataExporterFromYamlConfig parses an inline YAML report template.
func NewDataExporterFromYamlConfig(config string) (*DataExporter, error) {
	return newFromTemplate(strings.NewReader(config))
}

func NewDataExporterFromYamlFile(path string) (*DataExporter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open yaml file: %w", err)
	}
	defer f.Close()
	return newFromTemplate(f)
}

func newFromTemplate(r io.Reader) (*DataExporter, error) {
	var tmpl ReportTemplate
	if err := yaml.NewDecoder(r).Decode(&tmpl); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	e := NewDataExporter()
	e.template = &tmpl
	return e, nil
}

// =============================================================================
// Fluent API
// =============================================================================

// AddSheet starts a new sheet builder.
func (e *DataExporter) AddSheet(name string) *SheetBuilder {
	sb := &SheetBuilder{
		exporter: e,
		name:     SheetName(name),
	}
	e.sheets = append(e.sheets, sb)
	return sb
}

// GetSheet returns the programmatic sheet with the given name, or nil.
func (e *DataExporter) GetSheet(name string) *SheetBuilder {
	for _, sb := range e.sheets {
		if sb.name == name {
			return sb
		}
	}
	return nil
}

// BindSectionData binds data to a section ID (for YAML-based export).
func (e *DataExporter) BindSectionData(id string, data interface{}) *DataExporter {
	e.data[id] = data
	return e
}

// RegisterFormatter makes fn available to columns that set FormatterName.
func (e *DataExporter) RegisterFormatter(name string, fn FormatterFunc) *DataExporter {
	e.formatters[name] = fn
	return e
}

// collectSheets returns programmatic sheets followed by template sheets with
// their bound data. Template sheets sharing a name with a programmatic sheet
// are appended to it.
func (e *DataExporter) collectSheets() ([]sheet, error) {
	var out []sheet
	index := make(map[string]int)

	for _, sb := range e.sheets {
		index[sb.name] = len(out)
		out = append(out, sheet{name: sb.name, sections: sb.sections})
	}

	if e.template != nil {
		for _, st := range e.template.Sheets {
			name := SheetName(st.Name)
			sections := make([]*SectionConfig, len(st.Sections))
			for j := range st.Sections {
				sec := st.Sections[j]
				if data, ok := e.data[sec.ID]; ok {
					sec.Data = data
				}
				sections[j] = &sec
			}
			if i, ok := index[name]; ok {
				out[i].sections = append(out[i].sections, sections...)
				continue
			}
			index[name] = len(out)
			out = append(out, sheet{name: name, sections: sections})
		}
	}

	for _, s := range out {
		for _, sec := range s.sections {
			if err := e.prepareSection(sec); err != nil {
				return nil, fmt.Errorf("sheet %q: %w", s.name, err)
			}
		}
	}
	return out, nil
}

func (e *DataExporter) prepareSection(sec *SectionConfig) error {
	if sec.Data != nil {
		if v := indirect(reflect.ValueOf(sec.Data)); v.Kind() != reflect.Slice {
			return fmt.Errorf("section %q: data must be a slice, got %v", sec.Title, v.Kind())
		}
	}
	if len(sec.Columns) == 0 && sec.Data != nil {
		cols, err := ColumnsOf(sec.Data)
		if err != nil {
			return fmt.Errorf("section %q: %w", sec.Title, err)
		}
		sec.Columns = cols
	}
	for i := range sec.Columns {
		col := &sec.Columns[i]
		if col.Formatter == nil && col.FormatterName != "" {
			fn, ok := e.formatters[col.FormatterName]
			if !ok {
				return fmt.Errorf("column %q: unknown formatter %q", col.FieldName, col.FormatterName)
			}
			col.Formatter = fn
		}
	}
	return nil
}

// rows extracts the formatted cell values of a section's data.
func rows(sec *SectionConfig) [][]interface{} {
	if sec.Data == nil {
		return nil
	}
	v := indirect(reflect.ValueOf(sec.Data))
	out := make([][]interface{}, v.Len())
	for i := 0; i < v.Len(); i++ {
		item := v.Index(i)
		row := make([]interface{}, len(sec.Columns))
		for j, col := range sec.Columns {
			val := extractValue(item, col.FieldName)
			if col.Formatter != nil {
				val = col.Formatter(val)
			}
			row[j] = CellValue(val)
		}
		out[i] = row
	}
	return out
}

// buildExcel creates an Excel file in memory and returns it
func (e *DataExporter) buildExcel() (*excelize.File, error) {
	sheets, err := e.collectSheets()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			f.Close()
			return nil, err
		}
		if err := renderSections(f, s.name, s.sections); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// ExportToExcel generates the Excel file on disk.
func (e *DataExporter) ExportToExcel(ctx context.Context, path string) error {
	f, err := e.buildExcel()
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// ToBytes exports the Excel file to an in-memory byte slice.
func (e *DataExporter) ToBytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := e.ToWriter(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToWriter writes the Excel file to the provided io.Writer.
func (e *DataExporter) ToWriter(w io.Writer) error {
	f, err := e.buildExcel()
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}

// StreamToResponse writes the Excel file directly to an HTTP response writer.
func (e *DataExporter) StreamToResponse(w http.ResponseWriter, filename string) error {
	w.Header().Set("Content-Type", ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Transfer-Encoding", "binary")
	return e.ToWriter(w)
}

// ToCSV writes every section of every sheet as CSV. Sections are separated
// by an empty line; titles and headers are emitted as their own records.
func (e *DataExporter) ToCSV(w io.Writer) error {
	sheets, err := e.collectSheets()
	if err != nil {
		return err
	}

	csvWriter := csv.NewWriter(w)
	first := true
	for _, s := range sheets {
		for _, sec := range s.sections {
			if !first {
				if err := csvWriter.Write(nil); err != nil {
					return err
				}
			}
			first = false

			if sec.Title != "" {
				if err := csvWriter.Write([]string{sec.Title}); err != nil {
					return err
				}
			}
			if sec.ShowHeader {
				headers := make([]string, len(sec.Columns))
				for i, col := range sec.Columns {
					headers[i] = col.Header
				}
				if err := csvWriter.Write(headers); err != nil {
					return err
				}
			}
			for i, row := range rows(sec) {
				record := make([]string, len(row))
				for j, val := range row {
					record[j] = TextValue(val)
				}
				if err := csvWriter.Write(record); err != nil {
					return fmt.Errorf("error writing CSV row %d: %w", i+1, err)
				}
			}
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// ToCSVBytes exports as CSV and returns it as a byte slice.
func (e *DataExporter) ToCSVBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.ToCSV(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToJSON writes the first section holding data as an array of objects keyed
// by column header.
func (e *DataExporter) ToJSON(w io.Writer) error {
	sheets, err := e.collectSheets()
	if err != nil {
		return err
	}

	data := []map[string]interface{}{}
found:
	for _, s := range sheets {
		for _, sec := range s.sections {
			if sec.Data == nil {
				continue
			}
			for _, row := range rows(sec) {
				m := make(map[string]interface{}, len(row))
				for j, col := range sec.Columns {
					m[col.Header] = row[j]
				}
				data = append(data, m)
			}
			break found
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ToJSONString exports the data as a JSON string.
func (e *DataExporter) ToJSONString() (string, error) {
	var buf bytes.Buffer
	if err := e.ToJSON(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SheetName trims name to the length Excel accepts.
func SheetName(name string) string {
	if len(name) > maxSheetName {
		return name[:maxSheetName]
	}
	return name
}

// =============================================================================
// SheetBuilder
// =============================================================================

type SheetBuilder struct {
	exporter *DataExporter
	name     string
	sections []*SectionConfig
}

func (sb *SheetBuilder) AddSection(config *SectionConfig) *SheetBuilder {
	sb.sections = append(sb.sections, config)
	return sb
}

func (sb *SheetBuilder) Build() *DataExporter {
	return sb.exporter
}

// =============================================================================
// Rendering Logic
// =============================================================================

func renderSections(f *excelize.File, sheet string, sections []*SectionConfig) error {
	maxRow := 1            // next available row for vertical sections
	nextColHorizontal := 1 // next available col for horizontal sections

	for _, sec := range sections {
		startCol, startRow := 1, maxRow
		if sec.Direction == SectionDirectionHorizontal {
			startCol, startRow = nextColHorizontal, 1
		}
		if sec.Position != "" {
			c, r, err := excelize.CellNameToCoordinates(sec.Position)
			if err != nil {
				return fmt.Errorf("section %q: %w", sec.Title, err)
			}
			startCol, startRow = c, r
		}
		currentRow := startRow

		if sec.Title != "" {
			cell, _ := excelize.CoordinatesToCellName(startCol, currentRow)
			if err := f.SetCellValue(sheet, cell, sec.Title); err != nil {
				return err
			}
			endCell := cell
			if len(sec.Columns) > 1 {
				endCell, _ = excelize.CoordinatesToCellName(startCol+len(sec.Columns)-1, currentRow)
				if err := f.MergeCell(sheet, cell, endCell); err != nil {
					return err
				}
			}
			if err := applyStyle(f, sheet, cell, endCell, sec.TitleStyle); err != nil {
				return err
			}
			currentRow++
		}

		if sec.ShowHeader {
			for i, col := range sec.Columns {
				cell, _ := excelize.CoordinatesToCellName(startCol+i, currentRow)
				if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
					return err
				}
				if err := applyStyle(f, sheet, cell, cell, sec.HeaderStyle); err != nil {
					return err
				}
				if col.Width > 0 {
					colName, _ := excelize.ColumnNumberToName(startCol + i)
					if err := f.SetColWidth(sheet, colName, colName, col.Width); err != nil {
						return err
					}
				}
			}
			currentRow++
		}

		for _, row := range rows(sec) {
			cell, _ := excelize.CoordinatesToCellName(startCol, currentRow)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("error writing row %d: %w", currentRow, err)
			}
			currentRow++
		}

		// leave a blank row before the next vertical section
		if currentRow+1 > maxRow {
			maxRow = currentRow + 1
		}
		nextColHorizontal = startCol + len(sec.Columns) + 1
	}
	return nil
}

func applyStyle(f *excelize.File, sheet, from, to string, tmpl *StyleTemplate) error {
	if tmpl == nil {
		return nil
	}
	styleID, err := createStyle(f, tmpl)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, from, to, styleID)
}

func createStyle(f *excelize.File, tmpl *StyleTemplate) (int, error) {
	style := &excelize.Style{}
	if tmpl.Font != nil {
		style.Font = &excelize.Font{
			Bold:  tmpl.Font.Bold,
			Color: strings.TrimPrefix(tmpl.Font.Color, "#"),
		}
	}
	if tmpl.Fill != nil {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Color:   []string{strings.TrimPrefix(tmpl.Fill.Color, "#")},
			Pattern: 1,
		}
	}
	return f.NewStyle(style)
}
