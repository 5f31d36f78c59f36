package models

import (
	"time"
)

// Part is the model for the 'parts' table.
// Nullable foreign keys are pointers so they serialize as null instead of 0.
type Part struct {
	PartID                 int64   `json:"partId" db:"part_id"`
	Quantity               int64   `json:"quantity" db:"quantity"`
	LowStockThreshold      int64   `json:"lowStockThreshold" db:"low_stock_threshold"`
	PartNumber             string  `json:"partNumber" db:"part_number"`
	ManufacturerPartNumber string  `json:"manufacturerPartNumber" db:"manufacturer_part_number"`
	Manufacturer           string  `json:"manufacturer" db:"manufacturer"`
	DigiKeyPartNumber      string  `json:"digiKeyPartNumber" db:"digikey_part_number"`
	MouserPartNumber       string  `json:"mouserPartNumber" db:"mouser_part_number"`
	Description            string  `json:"description" db:"description"`
	PartTypeID             *int64  `json:"partTypeId" db:"part_type_id"`
	MountingTypeID         int64   `json:"mountingTypeId" db:"mounting_type_id"`
	ProjectID              *int64  `json:"projectId" db:"project_id"`
	DatasheetURL           string  `json:"datasheetUrl" db:"datasheet_url"`
	Location               string  `json:"location" db:"location"`
	BinNumber              string  `json:"binNumber" db:"bin_number"`
	BinNumber2             string  `json:"binNumber2" db:"bin_number2"`
	Cost                   float64 `json:"cost" db:"cost"`

	// Keywords are stored as a single comma-joined column.
	Keywords []string `json:"keywords" db:"keywords"`

	DateCreatedUtc time.Time `json:"dateCreatedUtc" db:"date_created_utc"`
	UserID         *int64    `json:"userId,omitempty" db:"user_id"`
}

// IsLowStock reports whether the quantity on hand is at or below the threshold.
func (p *Part) IsLowStock() bool {
	return p.LowStockThreshold > 0 && p.Quantity <= p.LowStockThreshold
}

// PartFilterColumns maps the UI "by" filter names onto part columns.
var PartFilterColumns = map[string]string{
	"location":   "location",
	"binNumber":  "bin_number",
	"binNumber2": "bin_number2",
}

// PartSortColumns is the whitelist of sortable part columns, keyed by JSON name.
var PartSortColumns = map[string]string{
	"partId":                 "part_id",
	"partNumber":             "part_number",
	"quantity":               "quantity",
	"lowStockThreshold":      "low_stock_threshold",
	"manufacturerPartNumber": "manufacturer_part_number",
	"manufacturer":           "manufacturer",
	"digiKeyPartNumber":      "digikey_part_number",
	"mouserPartNumber":       "mouser_part_number",
	"description":            "description",
	"location":               "location",
	"binNumber":              "bin_number",
	"binNumber2":             "bin_number2",
	"cost":                   "cost",
	"datasheetUrl":           "datasheet_url",
	"dateCreatedUtc":         "date_created_utc",
}
