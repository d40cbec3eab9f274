package partner

import (
	"strings"
	"time"

	"github.com/wms/backend/internal/domain/shared"
)

// LocationStatus represents the status of a storage location
type LocationStatus string

const (
	LocationStatusActive   LocationStatus = "active"
	LocationStatusInactive LocationStatus = "inactive"
)

// LocationKind distinguishes the physical type of a storage location
type LocationKind string

const (
	LocationKindAmbient LocationKind = "ambient"
	LocationKindChilled LocationKind = "chilled"
	LocationKindFrozen  LocationKind = "frozen"
)

// StorageLocation represents a physical place where inventory lots are held
type StorageLocation struct {
	shared.BaseAggregateRoot
	Code        string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string         `gorm:"type:varchar(200);not null"`
	Kind        LocationKind   `gorm:"type:varchar(20);not null;default:'ambient'"`
	Description string         `gorm:"type:text"`
	Status      LocationStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (StorageLocation) TableName() string {
	return "storage_locations"
}

// NewStorageLocation creates a new storage location
func NewStorageLocation(code, name string, kind LocationKind) (*StorageLocation, error) {
	if err := validatePartnerCode(code); err != nil {
		return nil, err
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}
	if kind == "" {
		kind = LocationKindAmbient
	}
	switch kind {
	case LocationKindAmbient, LocationKindChilled, LocationKindFrozen:
	default:
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown storage location kind")
	}

	return &StorageLocation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Kind:              kind,
		Status:            LocationStatusActive,
	}, nil
}

// Update updates the location's information
func (l *StorageLocation) Update(name, description string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}

	l.Name = name
	l.Description = description
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// Activate marks the location as usable
func (l *StorageLocation) Activate() error {
	if l.Status == LocationStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Location is already active")
	}

	l.Status = LocationStatusActive
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// Deactivate marks the location as unusable for new stock
func (l *StorageLocation) Deactivate() error {
	if l.Status == LocationStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Location is already inactive")
	}

	l.Status = LocationStatusInactive
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// IsActive returns true if the location can hold new stock
func (l *StorageLocation) IsActive() bool {
	return l.Status == LocationStatusActive
}
