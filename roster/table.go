// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// ReadTable reads every row of a .csv or .xlsx file. The Issues name rows
// that had to be repaired; table labels them.
func ReadTable(src Source, table string) ([][]string, []Issue, error) {
	if src.Path == "" {
		return nil, nil, ErrMissingInput
	}

	f, err := os.Open(src.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrapf(ErrMissingInput, "open %s", src.Path)
		}
		return nil, nil, errors.Wrapf(err, "open %s", src.Path)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(src.Path)); ext {
	case ".csv", ".txt", "":
		return ReadCSV(f, table)
	case ".xlsx", ".xlsm":
		rows, err := ReadXLSX(f, src.Sheet)
		return rows, nil, err
	default:
		return nil, nil, errors.Errorf("unsupported table format %q", ext)
	}
}

// ReadCSV reads comma separated rows. Rows may have any number of fields
// and stray quotes are kept as text.
//
// A record may not span lines: an unclosed quote would otherwise swallow
// every following row. Such a record is re-split on plain commas from its
// first line, reported as an Issue, and reading resumes on the next line.
func ReadCSV(r io.Reader, table string) ([][]string, []Issue, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "read csv")
	}
	lines := strings.Split(string(data), "\n")

	var (
		rows   [][]string
		issues []Issue
	)

	for start := 0; start < len(lines); {
		cr := csv.NewReader(strings.NewReader(strings.Join(lines[start:], "\n")))
		cr.FieldsPerRecord = -1
		cr.LazyQuotes = true
		cr.TrimLeadingSpace = true

		resume := len(lines)
		for {
			rec, err := cr.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, nil, errors.Wrap(err, "read csv")
			}

			first, _ := cr.FieldPos(0)
			if !spansLines(cr, rec, first) {
				rows = append(rows, rec)
				continue
			}

			at := start + first // 1-based line number
			issues = append(issues, Issue{table, len(rows) + 1,
				fmt.Sprintf("unbalanced quote on line %d, fields split on commas", at)})
			rows = append(rows, splitLine(lines[at-1]))
			resume = at
			break
		}
		start = resume
	}

	return rows, issues, nil
}

// splitLine splits like a plain comma join, dropping stray quotes.
func splitLine(line string) []string {
	fields := strings.Split(strings.TrimSuffix(line, "\r"), ",")
	for i, v := range fields {
		fields[i] = strings.Trim(strings.TrimSpace(v), `"`)
	}
	return fields
}

func spansLines(cr *csv.Reader, rec []string, first int) bool {
	if last, _ := cr.FieldPos(len(rec) - 1); last != first {
		return true
	}
	for _, v := range rec {
		if strings.ContainsAny(v, "\r\n") {
			return true
		}
	}
	return false
}

// ReadXLSX reads the rows of one sheet, the first one when sheet is empty.
func ReadXLSX(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open xlsx")
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, errors.New("xlsx file does not contain any sheets")
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheet)
	}
	return rows, nil
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
