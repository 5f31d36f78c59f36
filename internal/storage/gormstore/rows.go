package gormstore

import (
	"strings"
	"time"

	"github.com/01moynul/binner-golang/internal/models"
)

type partRow struct {
	PartID                 int64   `gorm:"column:part_id;primaryKey;autoIncrement"`
	Quantity               int64   `gorm:"column:quantity;not null;default:0"`
	LowStockThreshold      int64   `gorm:"column:low_stock_threshold;not null;default:0"`
	PartNumber             string  `gorm:"column:part_number;size:255;not null;index"`
	ManufacturerPartNumber string  `gorm:"column:manufacturer_part_number;size:255"`
	Manufacturer           string  `gorm:"column:manufacturer;size:255"`
	DigiKeyPartNumber      string  `gorm:"column:digikey_part_number;size:255"`
	MouserPartNumber       string  `gorm:"column:mouser_part_number;size:255"`
	Description            string  `gorm:"column:description;type:text"`
	PartTypeID             *int64  `gorm:"column:part_type_id"`
	MountingTypeID         int64   `gorm:"column:mounting_type_id;not null;default:0"`
	ProjectID              *int64  `gorm:"column:project_id"`
	Keywords               string  `gorm:"column:keywords;type:text"`
	DatasheetURL           string  `gorm:"column:datasheet_url;size:2048"`
	Location               string  `gorm:"column:location;size:255"`
	BinNumber              string  `gorm:"column:bin_number;size:255"`
	BinNumber2             string  `gorm:"column:bin_number2;size:255"`
	Cost                   float64 `gorm:"column:cost;not null;default:0"`

	DateCreatedUtc time.Time `gorm:"column:date_created_utc;not null"`
	UserID         *int64    `gorm:"column:user_id;index"`

	PartType *partTypeRow `gorm:"foreignKey:PartTypeID;references:PartTypeID;constraint:OnDelete:SET NULL"`
	Project  *projectRow  `gorm:"foreignKey:ProjectID;references:ProjectID;constraint:OnDelete:SET NULL"`
}

func (partRow) TableName() string { return "parts" }

// partUpdateColumns are overwritten by UpdatePart, zero values included.
var partUpdateColumns = []string{
	"quantity", "low_stock_threshold", "part_number", "manufacturer_part_number", "manufacturer",
	"digikey_part_number", "mouser_part_number", "description", "part_type_id", "mounting_type_id",
	"project_id", "keywords", "datasheet_url", "location", "bin_number", "bin_number2", "cost",
}

func newPartRow(p *models.Part) *partRow {
	return &partRow{
		PartID:                 p.PartID,
		Quantity:               p.Quantity,
		LowStockThreshold:      p.LowStockThreshold,
		PartNumber:             p.PartNumber,
		ManufacturerPartNumber: p.ManufacturerPartNumber,
		Manufacturer:           p.Manufacturer,
		DigiKeyPartNumber:      p.DigiKeyPartNumber,
		MouserPartNumber:       p.MouserPartNumber,
		Description:            p.Description,
		PartTypeID:             p.PartTypeID,
		MountingTypeID:         p.MountingTypeID,
		ProjectID:              p.ProjectID,
		Keywords:               joinKeywords(p.Keywords),
		DatasheetURL:           p.DatasheetURL,
		Location:               p.Location,
		BinNumber:              p.BinNumber,
		BinNumber2:             p.BinNumber2,
		Cost:                   p.Cost,
		DateCreatedUtc:         p.DateCreatedUtc.UTC(),
		UserID:                 p.UserID,
	}
}

func (r *partRow) model() *models.Part {
	return &models.Part{
		PartID:                 r.PartID,
		Quantity:               r.Quantity,
		LowStockThreshold:      r.LowStockThreshold,
		PartNumber:             r.PartNumber,
		ManufacturerPartNumber: r.ManufacturerPartNumber,
		Manufacturer:           r.Manufacturer,
		DigiKeyPartNumber:      r.DigiKeyPartNumber,
		MouserPartNumber:       r.MouserPartNumber,
		Description:            r.Description,
		PartTypeID:             r.PartTypeID,
		MountingTypeID:         r.MountingTypeID,
		ProjectID:              r.ProjectID,
		Keywords:               splitKeywords(r.Keywords),
		DatasheetURL:           r.DatasheetURL,
		Location:               r.Location,
		BinNumber:              r.BinNumber,
		BinNumber2:             r.BinNumber2,
		Cost:                   r.Cost,
		DateCreatedUtc:         r.DateCreatedUtc.UTC(),
		UserID:                 r.UserID,
	}
}

type projectRow struct {
	ProjectID      int64     `gorm:"column:project_id;primaryKey;autoIncrement"`
	Name           string    `gorm:"column:name;size:255;not null"`
	Description    string    `gorm:"column:description;type:text"`
	Location       string    `gorm:"column:location;size:255"`
	DateCreatedUtc time.Time `gorm:"column:date_created_utc;not null"`
	UserID         *int64    `gorm:"column:user_id;index"`
}

func (projectRow) TableName() string { return "projects" }

func newProjectRow(p *models.Project) *projectRow {
	return &projectRow{
		ProjectID:      p.ProjectID,
		Name:           p.Name,
		Description:    p.Description,
		Location:       p.Location,
		DateCreatedUtc: p.DateCreatedUtc.UTC(),
		UserID:         p.UserID,
	}
}

func (r *projectRow) model() *models.Project {
	return &models.Project{
		ProjectID:      r.ProjectID,
		Name:           r.Name,
		Description:    r.Description,
		Location:       r.Location,
		DateCreatedUtc: r.DateCreatedUtc.UTC(),
		UserID:         r.UserID,
	}
}

type partTypeRow struct {
	PartTypeID       int64     `gorm:"column:part_type_id;primaryKey;autoIncrement"`
	ParentPartTypeID *int64    `gorm:"column:parent_part_type_id"`
	Name             string    `gorm:"column:name;size:255;not null;index"`
	DateCreatedUtc   time.Time `gorm:"column:date_created_utc;not null"`
	UserID           *int64    `gorm:"column:user_id;index"`
}

func (partTypeRow) TableName() string { return "part_types" }

func (r *partTypeRow) model() *models.PartType {
	return &models.PartType{
		PartTypeID:       r.PartTypeID,
		ParentPartTypeID: r.ParentPartTypeID,
		Name:             r.Name,
		DateCreatedUtc:   r.DateCreatedUtc.UTC(),
		UserID:           r.UserID,
	}
}

type credentialRow struct {
	CredentialID   int64      `gorm:"column:credential_id;primaryKey;autoIncrement"`
	Provider       string     `gorm:"column:provider;size:64;not null;index:idx_oauth_credentials_provider"`
	AccessToken    string     `gorm:"column:access_token;type:text;not null"`
	RefreshToken   string     `gorm:"column:refresh_token;type:text"`
	DateCreatedUtc time.Time  `gorm:"column:date_created_utc;not null"`
	DateExpiresUtc *time.Time `gorm:"column:date_expires_utc"`
	UserID         *int64     `gorm:"column:user_id;index:idx_oauth_credentials_provider"`
}

func (credentialRow) TableName() string { return "oauth_credentials" }

func newCredentialRow(c *models.OAuthCredential) *credentialRow {
	row := &credentialRow{
		Provider:       c.Provider,
		AccessToken:    c.AccessToken,
		RefreshToken:   c.RefreshToken,
		DateCreatedUtc: c.DateCreatedUtc.UTC(),
		UserID:         c.UserID,
	}
	if !c.DateExpiresUtc.IsZero() {
		expires := c.DateExpiresUtc.UTC()
		row.DateExpiresUtc = &expires
	}
	return row
}

func (r *credentialRow) model() *models.OAuthCredential {
	c := &models.OAuthCredential{
		Provider:       r.Provider,
		AccessToken:    r.AccessToken,
		RefreshToken:   r.RefreshToken,
		DateCreatedUtc: r.DateCreatedUtc.UTC(),
		UserID:         r.UserID,
	}
	if r.DateExpiresUtc != nil {
		c.DateExpiresUtc = r.DateExpiresUtc.UTC()
	}
	return c
}

type userRow struct {
	UserID         int64     `gorm:"column:user_id;primaryKey;autoIncrement"`
	Email          string    `gorm:"column:email;size:255;not null;uniqueIndex"`
	Name           string    `gorm:"column:name;size:255"`
	PasswordHash   string    `gorm:"column:password_hash;size:255;not null"`
	DateCreatedUtc time.Time `gorm:"column:date_created_utc;not null"`
}

func (userRow) TableName() string { return "users" }

func (r *userRow) model() *models.User {
	return &models.User{
		UserID:         r.UserID,
		Email:          r.Email,
		Name:           r.Name,
		PasswordHash:   r.PasswordHash,
		DateCreatedUtc: r.DateCreatedUtc.UTC(),
	}
}

func joinKeywords(keywords []string) string {
	items := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			items = append(items, k)
		}
	}
	return strings.Join(items, ",")
}

func splitKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
