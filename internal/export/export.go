// Package export reads and writes the parts inventory as an Excel workbook.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/01moynul/binner-golang/internal/models"
	"github.com/01moynul/binner-golang/internal/storage"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet written by WriteParts.
const SheetName = "Parts"

// ContentType is the MIME type of .xlsx workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type column struct {
	header string
	get    func(p *models.Part) any
	set    func(p *models.Part, v string) error
}

var columns = []column{
	{"Part Number", func(p *models.Part) any { return p.PartNumber }, func(p *models.Part, v string) error { p.PartNumber = v; return nil }},
	{"Quantity", func(p *models.Part) any { return p.Quantity }, setInt(func(p *models.Part) *int64 { return &p.Quantity })},
	{"Low Stock Threshold", func(p *models.Part) any { return p.LowStockThreshold }, setInt(func(p *models.Part) *int64 { return &p.LowStockThreshold })},
	{"Manufacturer", func(p *models.Part) any { return p.Manufacturer }, func(p *models.Part, v string) error { p.Manufacturer = v; return nil }},
	{"Manufacturer Part Number", func(p *models.Part) any { return p.ManufacturerPartNumber }, func(p *models.Part, v string) error { p.ManufacturerPartNumber = v; return nil }},
	{"DigiKey Part Number", func(p *models.Part) any { return p.DigiKeyPartNumber }, func(p *models.Part, v string) error { p.DigiKeyPartNumber = v; return nil }},
	{"Mouser Part Number", func(p *models.Part) any { return p.MouserPartNumber }, func(p *models.Part, v string) error { p.MouserPartNumber = v; return nil }},
	{"Description", func(p *models.Part) any { return p.Description }, func(p *models.Part, v string) error { p.Description = v; return nil }},
	{"Part Type Id", func(p *models.Part) any { return optional(p.PartTypeID) }, setOptionalInt(func(p *models.Part) **int64 { return &p.PartTypeID })},
	{"Mounting Type Id", func(p *models.Part) any { return p.MountingTypeID }, setInt(func(p *models.Part) *int64 { return &p.MountingTypeID })},
	{"Project Id", func(p *models.Part) any { return optional(p.ProjectID) }, setOptionalInt(func(p *models.Part) **int64 { return &p.ProjectID })},
	{"Keywords", func(p *models.Part) any { return strings.Join(p.Keywords, ",") }, func(p *models.Part, v string) error { p.Keywords = splitList(v); return nil }},
	{"Datasheet Url", func(p *models.Part) any { return p.DatasheetURL }, func(p *models.Part, v string) error { p.DatasheetURL = v; return nil }},
	{"Location", func(p *models.Part) any { return p.Location }, func(p *models.Part, v string) error { p.Location = v; return nil }},
	{"Bin Number", func(p *models.Part) any { return p.BinNumber }, func(p *models.Part, v string) error { p.BinNumber = v; return nil }},
	{"Bin Number 2", func(p *models.Part) any { return p.BinNumber2 }, func(p *models.Part, v string) error { p.BinNumber2 = v; return nil }},
	{"Cost", func(p *models.Part) any { return p.Cost }, func(p *models.Part, v string) error {
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid cost %q", v)
		}
		p.Cost = f
		return nil
	}},
}

// Headers lists the column headers in sheet order.
func Headers() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.header
	}
	return out
}

// NewWorkbook builds a workbook with a bold header row and one row per part.
// The caller must Close the file.
func NewWorkbook(parts []*models.Part) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, err
	}

	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	for i, c := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, c.header); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellStyle(SheetName, cell, cell, boldStyle); err != nil {
			f.Close()
			return nil, err
		}
	}

	for r, p := range parts {
		row := make([]any, len(columns))
		for i, c := range columns {
			row[i] = c.get(p)
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", r+2, err)
		}
	}
	return f, nil
}

// WriteParts writes the parts workbook to w.
func WriteParts(w io.Writer, parts []*models.Part) error {
	f, err := NewWorkbook(parts)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write excel: %w", err)
	}
	return nil
}

// Sheet is a parsed parts worksheet.
type Sheet struct {
	// Columns are the recognized headers, in sheet order.
	Columns []string
	Rows    []Row
}

// Row is one non-blank data row.
type Row struct {
	// Line is the 1-based worksheet row number.
	Line int
	// Part holds the row's values over a zero part.
	Part  *models.Part
	cells []cell
}

type cell struct {
	col   column
	value string
}

// Apply copies the row's values onto dst. Fields whose column is not in the
// sheet are left untouched.
func (r Row) Apply(dst *models.Part) error {
	for _, c := range r.cells {
		if err := c.col.set(dst, c.value); err != nil {
			return fmt.Errorf("row %d, %s: %w", r.Line, c.col.header, err)
		}
	}
	return nil
}

// ReadSheet parses the first worksheet. Headers are matched case-insensitively
// and unknown columns are ignored. Blank rows are skipped; a row with data but
// no part number is an error.
func ReadSheet(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open excel: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read excel: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("workbook is empty")
	}

	sheet := &Sheet{}
	index := make(map[int]column)
	seen := make(map[string]bool)
	for i, h := range rows[0] {
		key := normalizeHeader(h)
		for _, c := range columns {
			if normalizeHeader(c.header) != key || seen[c.header] {
				continue
			}
			seen[c.header] = true
			index[i] = c
			sheet.Columns = append(sheet.Columns, c.header)
		}
	}
	if !seen["Part Number"] {
		return nil, errors.New("missing Part Number column")
	}

	for n, values := range rows[1:] {
		if blank(values) {
			continue
		}
		row := Row{Line: n + 2, Part: &models.Part{}}
		for i := 0; i < len(rows[0]); i++ {
			c, ok := index[i]
			if !ok {
				continue
			}
			var v string
			if i < len(values) {
				v = strings.TrimSpace(values[i])
			}
			row.cells = append(row.cells, cell{col: c, value: v})
		}
		if err := row.Apply(row.Part); err != nil {
			return nil, err
		}
		if row.Part.PartNumber == "" {
			return nil, fmt.Errorf("row %d: part number is required", row.Line)
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

// ReadParts parses the first worksheet into parts. See ReadSheet.
func ReadParts(r io.Reader) ([]*models.Part, error) {
	sheet, err := ReadSheet(r)
	if err != nil {
		return nil, err
	}
	parts := make([]*models.Part, len(sheet.Rows))
	for i, row := range sheet.Rows {
		parts[i] = row.Part
	}
	return parts, nil
}

// ImportResult counts the outcome of Import.
type ImportResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
}

// ImportStore is the part of storage.Provider Import reads and writes.
type ImportStore interface {
	storage.PartStore
	GetProject(ctx context.Context, projectID int64) (*models.Project, error)
	GetPartTypes(ctx context.Context) ([]*models.PartType, error)
}

type importPlan struct {
	part   *models.Part
	update bool
}

// Import upserts the sheet's parts by part number within the caller's scope.
// An existing part only takes the columns present in the sheet. Repeated part
// numbers are merged in sheet order.
//
// Every row is resolved and its project and part type references checked
// before the first write, so a bad sheet fails with ErrInvalidArgument and
// leaves the inventory unchanged.
func Import(ctx context.Context, store ImportStore, sheet *Sheet) (ImportResult, error) {
	var result ImportResult

	types, err := store.GetPartTypes(ctx)
	if err != nil {
		return result, fmt.Errorf("list part types: %w", err)
	}
	knownTypes := make(map[int64]bool, len(types))
	for _, pt := range types {
		knownTypes[pt.PartTypeID] = true
	}
	knownProjects := make(map[int64]bool)

	var plans []*importPlan
	byNumber := make(map[string]*importPlan)
	for _, row := range sheet.Rows {
		number := row.Part.PartNumber
		plan, ok := byNumber[number]
		switch {
		case ok:
			if err := row.Apply(plan.part); err != nil {
				return result, fmt.Errorf("%w: %v", storage.ErrInvalidArgument, err)
			}
		default:
			existing, err := store.GetPartByNumber(ctx, number)
			switch {
			case err == nil:
				merged := *existing
				if err := row.Apply(&merged); err != nil {
					return result, fmt.Errorf("%w: %v", storage.ErrInvalidArgument, err)
				}
				plan = &importPlan{part: &merged, update: true}
			case errors.Is(err, storage.ErrNotFound):
				fresh := *row.Part
				plan = &importPlan{part: &fresh}
			default:
				return result, fmt.Errorf("look up %s: %w", number, err)
			}
			byNumber[number] = plan
			plans = append(plans, plan)
		}

		if id := plan.part.PartTypeID; id != nil && !knownTypes[*id] {
			return result, fmt.Errorf("%w: row %d: part type %d does not exist", storage.ErrInvalidArgument, row.Line, *id)
		}
		if id := plan.part.ProjectID; id != nil && !knownProjects[*id] {
			if _, err := store.GetProject(ctx, *id); err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return result, fmt.Errorf("%w: row %d: project %d does not exist", storage.ErrInvalidArgument, row.Line, *id)
				}
				return result, fmt.Errorf("look up project %d: %w", *id, err)
			}
			knownProjects[*id] = true
		}
	}

	for _, plan := range plans {
		p := plan.part
		if plan.update {
			if _, err := store.UpdatePart(ctx, p); err != nil {
				return result, fmt.Errorf("update %s: %w", p.PartNumber, err)
			}
			result.Updated++
			continue
		}
		if _, err := store.AddPart(ctx, p); err != nil {
			return result, fmt.Errorf("add %s: %w", p.PartNumber, err)
		}
		result.Added++
	}
	return result, nil
}

// PartLister is the listing half of storage.PartStore.
type PartLister interface {
	GetParts(ctx context.Context, req models.PaginatedRequest) ([]*models.Part, error)
}

// AllParts pages through every part in scope at the largest page size.
func AllParts(ctx context.Context, store PartLister) ([]*models.Part, error) {
	var all []*models.Part
	for page := 1; page <= models.MaxPage; page++ {
		batch, err := store.GetParts(ctx, models.PaginatedRequest{Page: page, Results: models.MaxResults})
		if err != nil {
			return nil, fmt.Errorf("list parts page %d: %w", page, err)
		}
		all = append(all, batch...)
		if len(batch) < models.MaxResults {
			break
		}
	}
	return all, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), ""))
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func optional(v *int64) any {
	if v == nil {
		return ""
	}
	return *v
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseInt(v string) (int64, error) {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", v)
	}
	return int64(f), nil
}

func setInt(field func(*models.Part) *int64) func(*models.Part, string) error {
	return func(p *models.Part, v string) error {
		if v == "" {
			return nil
		}
		n, err := parseInt(v)
		if err != nil {
			return err
		}
		*field(p) = n
		return nil
	}
}

func setOptionalInt(field func(*models.Part) **int64) func(*models.Part, string) error {
	return func(p *models.Part, v string) error {
		if v == "" {
			return nil
		}
		n, err := parseInt(v)
		if err != nil {
			return err
		}
		*field(p) = &n
		return nil
	}
}
