package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/shared"
)

// LocationService handles storage location business operations
type LocationService struct {
	locationRepo partner.StorageLocationRepository
}

// NewLocationService creates a new LocationService
func NewLocationService(locationRepo partner.StorageLocationRepository) *LocationService {
	return &LocationService{
		locationRepo: locationRepo,
	}
}

// Create creates a new storage location
func (s *LocationService) Create(ctx context.Context, req CreateLocationRequest) (*LocationResponse, error) {
	exists, err := s.locationRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Location with this code already exists")
	}

	location, err := partner.NewStorageLocation(req.Code, req.Name, partner.LocationKind(req.Kind))
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := location.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}

	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}

	response := ToLocationResponse(location)
	return &response, nil
}

// GetByID retrieves a storage location by ID
func (s *LocationService) GetByID(ctx context.Context, locationID uuid.UUID) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	response := ToLocationResponse(location)
	return &response, nil
}

// List retrieves storage locations with filtering and pagination
func (s *LocationService) List(ctx context.Context, filter ListFilter) ([]LocationResponse, int64, error) {
	domainFilter := buildFilter(filter)

	locations, err := s.locationRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.locationRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToLocationResponses(locations), total, nil
}

// Update updates a storage location
func (s *LocationService) Update(ctx context.Context, locationID uuid.UUID, req UpdateLocationRequest) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	name := location.Name
	description := location.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}

	if err := location.Update(name, description); err != nil {
		return nil, err
	}

	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}

	response := ToLocationResponse(location)
	return &response, nil
}

// Activate activates a storage location
func (s *LocationService) Activate(ctx context.Context, locationID uuid.UUID) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	if err := location.Activate(); err != nil {
		return nil, err
	}

	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}

	response := ToLocationResponse(location)
	return &response, nil
}

// Deactivate deactivates a storage location
func (s *LocationService) Deactivate(ctx context.Context, locationID uuid.UUID) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	if err := location.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}

	response := ToLocationResponse(location)
	return &response, nil
}

// Delete deletes a storage location
func (s *LocationService) Delete(ctx context.Context, locationID uuid.UUID) error {
	if _, err := s.locationRepo.FindByID(ctx, locationID); err != nil {
		return err
	}

	return s.locationRepo.Delete(ctx, locationID)
}
