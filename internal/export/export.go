package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"emotiview/internal/artifact"
	"emotiview/internal/tabular"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

const sheetName = "Sheet1"

// WriteCSV writes rows as CSV.
func WriteCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteXLSX writes rows as a single-sheet workbook at path.
func WriteXLSX(path string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, val); err != nil {
				return err
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// Rows flattens one artifact file into exportable rows, dispatching on the
// detected family. Signal descriptors carry no data and are rejected.
func Rows(path string) ([][]string, error) {
	data, err := artifact.ReadBytes(path)
	if err != nil {
		return nil, err
	}
	family, err := artifact.Detect(data)
	if err != nil {
		return nil, err
	}
	switch family {
	case artifact.FamilyPlot:
		rec, err := artifact.DecodePlot(data)
		if err != nil {
			return nil, err
		}
		return RecordRows(rec)
	case artifact.FamilyGrouped:
		rec, err := artifact.DecodeGrouped(data)
		if err != nil {
			return nil, err
		}
		return RecordRows(rec)
	case artifact.FamilyTable:
		t, err := tabular.Decode(data)
		if err != nil {
			return nil, err
		}
		return TableRows(t), nil
	}
	return nil, artifact.SchemaErr("", "cannot export a %s artifact", family)
}

// File exports one artifact to outDir in the given format and returns the
// output path. The output keeps the input's stem.
func File(path, outDir, format string) (string, error) {
	rows, err := Rows(path)
	if err != nil {
		return "", err
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := filepath.Join(outDir, stem+"."+format)

	switch format {
	case FormatCSV:
		f, err := os.Create(out)
		if err != nil {
			return "", err
		}
		if err := WriteCSV(f, rows); err != nil {
			f.Close()
			return "", err
		}
		if err := f.Close(); err != nil {
			return "", err
		}
	case FormatXLSX:
		if err := WriteXLSX(out, rows); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
	return out, nil
}

// All exports every path concurrently. The first failure cancels the rest.
func All(ctx context.Context, paths []string, outDir, format string, log *slog.Logger) ([]string, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	outs := make([]string, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := File(path, outDir, format)
			if err != nil {
				return fmt.Errorf("export %s: %w", path, err)
			}
			log.Info("exported artifact", "input", path, "output", out)
			outs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outs, nil
}
