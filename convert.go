package dbfconv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Convert streams every live record from rd to out as CSV: one header row
// of field names, then one row per record in the order produced. It
// returns the number of data rows written. Fields containing the
// separator, a quote or a newline are quoted per RFC 4180 by the csv
// writer; output is UTF-8.
func Convert(logger log.Logger, rd *Reader, out io.Writer) (int, error) {
	h := rd.Header()
	level.Debug(logger).Log("msg", "schema decoded",
		"fields", len(rd.Fields()), "declared_records", h.NumRecords)
	for _, f := range rd.Fields() {
		level.Debug(logger).Log("msg", "field",
			"name", f.Name, "type", string(f.Type), "length", f.Length, "decimal", f.Decimal)
	}

	w := csv.NewWriter(out)
	if err := w.Write(rd.FieldNames()); err != nil {
		return 0, fmt.Errorf("write output: %w", err)
	}
	rows := 0
	for {
		record, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("read input: %w", err)
		}
		if err := w.Write(record); err != nil {
			return rows, fmt.Errorf("write output: %w", err)
		}
		rows++
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return rows, fmt.Errorf("write output: %w", err)
	}
	return rows, nil
}

// ConvertFile converts the DBF file at inPath into a CSV file at outPath,
// truncating any existing output. The input path is checked before the
// output file is created, so a missing input never leaves an empty output
// behind. Errors are logged with their phase before being returned.
func ConvertFile(logger log.Logger, inPath, outPath, encoding string) (int, error) {
	if _, err := os.Stat(inPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrInputNotFound, inPath)
		}
		return 0, fmt.Errorf("stat input: %w", err)
	}

	level.Info(logger).Log("msg", "reading input", "path", inPath)
	in, err := os.Open(inPath)
	if err != nil {
		level.Error(logger).Log("msg", "open input failed", "path", inPath, "err", err)
		return 0, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	rd, err := NewReader(in, encoding)
	if err != nil {
		level.Error(logger).Log("msg", "header parse failed", "path", inPath, "err", err)
		return 0, err
	}

	level.Info(logger).Log("msg", "writing output", "path", outPath)
	out, err := os.Create(outPath)
	if err != nil {
		level.Error(logger).Log("msg", "create output failed", "path", outPath, "err", err)
		return 0, fmt.Errorf("create output: %w", err)
	}
	rows, err := Convert(logger, rd, out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	if err != nil {
		level.Error(logger).Log("msg", "conversion failed", "err", err)
		return rows, err
	}
	level.Info(logger).Log("msg", "conversion complete", "rows", rows)
	return rows, nil
}
