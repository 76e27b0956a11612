package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/locvowork/empdept/pkg/simpleexcel"
)

// Export formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// ErrUnsupportedFormat is returned for an export format other than FormatXLSX or FormatCSV.
var ErrUnsupportedFormat = errors.New("unsupported export format")

var headerStyle = &simpleexcel.StyleTemplate{
	Font: &simpleexcel.FontTemplate{Bold: true, Color: "#FFFFFF"},
	Fill: &simpleexcel.FillTemplate{Color: "#4F81BD"},
}

// Export runs the named report and writes it in the requested format.
// It returns the bytes together with their content type.
func (s *EmployeeService) Export(ctx context.Context, name, format string) ([]byte, string, error) {
	format = strings.ToLower(format)
	if format != FormatXLSX && format != FormatCSV {
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	exporter, err := s.Exporter(ctx, name)
	if err != nil {
		return nil, "", err
	}
	if format == FormatCSV {
		data, err := exporter.ToCSVBytes()
		return data, simpleexcel.ContentTypeCSV, err
	}
	data, err := exporter.ToBytes()
	return data, simpleexcel.ContentTypeXLSX, err
}

// Exporter runs the named report and lays it out as a single titled sheet.
func (s *EmployeeService) Exporter(ctx context.Context, name string) (*simpleexcel.DataExporter, error) {
	res, err := s.Run(ctx, name)
	if err != nil {
		return nil, err
	}

	exporter := simpleexcel.NewDataExporter()
	exporter.AddSheet(name).AddSection(&simpleexcel.SectionConfig{
		Title:       describe(name),
		ShowHeader:  true,
		HeaderStyle: headerStyle,
		Data:        res.Rows,
	})
	return exporter, nil
}

func describe(name string) string {
	for _, r := range catalog {
		if r.Name == name {
			return r.Description
		}
	}
	return name
}
