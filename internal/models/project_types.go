package models

import "time"

// Project is the model for the 'projects' table. A project groups parts.
type Project struct {
	ProjectID      int64     `json:"projectId" db:"project_id"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description" db:"description"`
	Location       string    `json:"location" db:"location"`
	DateCreatedUtc time.Time `json:"dateCreatedUtc" db:"date_created_utc"`
	UserID         *int64    `json:"userId,omitempty" db:"user_id"`
}

// ProjectSortColumns is the whitelist of sortable project columns.
var ProjectSortColumns = map[string]string{
	"projectId":      "project_id",
	"name":           "name",
	"location":       "location",
	"dateCreatedUtc": "date_created_utc",
}

// PartType is the model for the 'part_types' table.
type PartType struct {
	PartTypeID       int64     `json:"partTypeId" db:"part_type_id"`
	ParentPartTypeID *int64    `json:"parentPartTypeId" db:"parent_part_type_id"`
	Name             string    `json:"name" db:"name"`
	DateCreatedUtc   time.Time `json:"dateCreatedUtc" db:"date_created_utc"`
	UserID           *int64    `json:"userId,omitempty" db:"user_id"`
}
