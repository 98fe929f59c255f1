package data

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Sheet1"

// headerAliases maps every accepted header name to its column. The
// Indonesian names are the ones found in spreadsheets written by the
// original catalog application.
var headerAliases = map[string]string{
	"title":            "Title",
	"judul":            "Title",
	"author":           "Author",
	"penulis":          "Author",
	"yearpublished":    "YearPublished",
	"tahun terbit":     "YearPublished",
	"status":           "Status",
	"filesizemb":       "FileSizeMB",
	"ukuran file (mb)": "FileSizeMB",
	"fileformat":       "FileFormat",
	"format file":      "FileFormat",
	"pagecount":        "PageCount",
	"jumlah halaman":   "PageCount",
	"weightgrams":      "WeightGrams",
	"berat (gram)":     "WeightGrams",
	"coverimagepath":   "CoverImagePath",
	"foto sampul":      "CoverImagePath",
	"id":               "ID",
}

// XLSXStorage keeps the catalog in a single spreadsheet file.
type XLSXStorage struct {
	path string
}

func NewXLSXStorage(path string) *XLSXStorage {
	return &XLSXStorage{path: path}
}

func (s *XLSXStorage) Path() string {
	return s.path
}

func (s *XLSXStorage) Load() ([]Book, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrStorageMissing, s.path)
		}
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make(map[string]int)
	for i, name := range rows[0] {
		if col, ok := headerAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
			header[col] = i
		}
	}
	if _, ok := header["Title"]; !ok {
		return nil, fmt.Errorf("spreadsheet %s has no title column", s.path)
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		r, err := parseRow(row, header)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, r)
	}

	return FromRecords(records)
}

func (s *XLSXStorage) Save(books []Book) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range ToRecords(books) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := recordCells(r)
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".bookshelf-*.xlsx")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	// CreateTemp uses 0600; keep the catalog's mode instead
	mode := fs.FileMode(0644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

func (s *XLSXStorage) Close() error {
	return nil
}

func recordCells(r Record) []interface{} {
	row := []interface{}{r.Title, r.Author, r.YearPublished, r.Status, nil, nil, nil, nil, nil, r.ID}
	if r.FileSizeMB != nil {
		row[4] = *r.FileSizeMB
	}
	if r.FileFormat != nil {
		row[5] = *r.FileFormat
	}
	if r.PageCount != nil {
		row[6] = *r.PageCount
	}
	if r.WeightGrams != nil {
		row[7] = *r.WeightGrams
	}
	if r.CoverImagePath != nil {
		row[8] = *r.CoverImagePath
	}
	return row
}

func parseRow(row []string, header map[string]int) (Record, error) {
	cell := func(col string) string {
		i, ok := header[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	r := Record{
		Title:  cell("Title"),
		Author: cell("Author"),
		Status: cell("Status"),
		ID:     cell("ID"),
	}

	var err error
	if v := cell("YearPublished"); v != "" {
		if r.YearPublished, err = parseWhole(v); err != nil {
			return Record{}, fmt.Errorf("year: %w", err)
		}
	}
	if v := cell("FileSizeMB"); v != "" {
		size, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Record{}, fmt.Errorf("file size: %w", err)
		}
		r.FileSizeMB = &size
	}
	if v := cell("FileFormat"); v != "" {
		r.FileFormat = &v
	}
	if v := cell("PageCount"); v != "" {
		pages, err := parseWhole(v)
		if err != nil {
			return Record{}, fmt.Errorf("page count: %w", err)
		}
		r.PageCount = &pages
	}
	if v := cell("WeightGrams"); v != "" {
		weight, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Record{}, fmt.Errorf("weight: %w", err)
		}
		r.WeightGrams = &weight
	}
	if v := cell("CoverImagePath"); v != "" {
		r.CoverImagePath = &v
	}
	return r, nil
}

// parseWhole reads integers that spreadsheet tools may have stored as
// floats ("412" or "412.0"). Fractions are rejected.
func parseWhole(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int(f), nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
