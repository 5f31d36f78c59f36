// Package storage defines the data-access contract shared by every storage provider.
//
// All methods read the optional user scope from the context (see requestctx). When a
// user is present, reads and writes are restricted to that user's rows; anonymous
// calls see every row.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/01moynul/binner-golang/internal/models"
)

var (
	// ErrNotFound is returned when an update or lookup targets a missing record.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned on unique key violations.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInvalidArgument is returned for filters or keys the store cannot apply,
	// including references to projects or part types that do not exist.
	ErrInvalidArgument = errors.New("invalid argument")
)

// NotFound wraps ErrNotFound with the entity name and key that missed.
func NotFound(entity string, key any) error {
	return fmt.Errorf("%w for %s = %v", ErrNotFound, entity, key)
}

// Provider is the storage abstraction consumed by the HTTP handlers and the CLI.
type Provider interface {
	PartStore
	ProjectStore
	PartTypeStore
	CredentialStore
	UserStore

	// Close releases the underlying connection pool.
	Close() error
}

type PartStore interface {
	AddPart(ctx context.Context, part *models.Part) (*models.Part, error)
	// UpdatePart overwrites every mutable column. It returns ErrNotFound when
	// the part does not exist in the caller's scope.
	UpdatePart(ctx context.Context, part *models.Part) (*models.Part, error)
	DeletePart(ctx context.Context, partID int64) (bool, error)
	GetPart(ctx context.Context, partID int64) (*models.Part, error)
	GetPartByNumber(ctx context.Context, partNumber string) (*models.Part, error)
	GetParts(ctx context.Context, req models.PaginatedRequest) ([]*models.Part, error)
	// GetPartsByValue filters on one of models.PartFilterColumns.
	GetPartsByValue(ctx context.Context, by, value string, req models.PaginatedRequest) ([]*models.Part, error)
	FindParts(ctx context.Context, keywords string) ([]models.SearchResult[*models.Part], error)
	GetLowStockParts(ctx context.Context, req models.PaginatedRequest) ([]*models.Part, error)
	GetPartsCount(ctx context.Context) (int64, error)
}

type ProjectStore interface {
	AddProject(ctx context.Context, project *models.Project) (*models.Project, error)
	UpdateProject(ctx context.Context, project *models.Project) (*models.Project, error)
	DeleteProject(ctx context.Context, projectID int64) (bool, error)
	GetProject(ctx context.Context, projectID int64) (*models.Project, error)
	GetProjectByName(ctx context.Context, name string) (*models.Project, error)
	GetProjects(ctx context.Context, req models.PaginatedRequest) ([]*models.Project, error)
}

type PartTypeStore interface {
	// GetOrCreatePartType returns the existing type with the same name in scope,
	// inserting it first if needed.
	GetOrCreatePartType(ctx context.Context, partType *models.PartType) (*models.PartType, error)
	GetPartTypes(ctx context.Context) ([]*models.PartType, error)
}

type CredentialStore interface {
	GetOAuthCredential(ctx context.Context, provider string) (*models.OAuthCredential, error)
	SaveOAuthCredential(ctx context.Context, credential *models.OAuthCredential) (*models.OAuthCredential, error)
	RemoveOAuthCredential(ctx context.Context, provider string) error
}

type UserStore interface {
	AddUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// BuiltInPartTypes are seeded with no owner on first run and visible to every user.
var BuiltInPartTypes = []string{
	"Resistor", "Capacitor", "Inductor", "Diode", "LED", "Transistor", "IC", "Connector",
	"Crystal", "Relay", "Switch", "Fuse", "Sensor", "Module", "Other",
}

// Search ranks shared by providers.
const (
	RankExactPartNumber = 100
	RankPartNumber      = 90
	RankOtherField      = 50
)

// RankPart scores how well a part matched a keyword search.
func RankPart(part *models.Part, keywords string) int {
	kw := strings.ToLower(strings.TrimSpace(keywords))
	pn := strings.ToLower(part.PartNumber)
	switch {
	case kw != "" && pn == kw:
		return RankExactPartNumber
	case kw != "" && strings.Contains(pn, kw):
		return RankPartNumber
	default:
		return RankOtherField
	}
}

// RankParts wraps matched parts in search results ordered by rank, best first.
func RankParts(parts []*models.Part, keywords string) []models.SearchResult[*models.Part] {
	results := make([]models.SearchResult[*models.Part], 0, len(parts))
	for _, p := range parts {
		results = append(results, models.SearchResult[*models.Part]{Result: p, Rank: RankPart(p, keywords)})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rank > results[j].Rank
	})
	return results
}

// LikePattern turns user keywords into a substring LIKE pattern.
// Wildcards typed by the user are left in place.
func LikePattern(keywords string) string {
	return "%" + strings.TrimSpace(keywords) + "%"
}
