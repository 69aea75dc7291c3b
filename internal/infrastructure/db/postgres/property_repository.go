package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/staynest/booking-api/internal/core/domain"
)

// PropertyRepository implements ports.PropertyRepository with GORM.
type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	row := propertyRow{
		Name:          p.Name,
		PricePerNight: p.PricePerNight,
		Description:   p.Description,
		Location:      p.Location,
		HostID:        p.HostID,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("insert property: %w", err)
	}

	p.ID = row.ID
	return nil
}

// FindByName returns nil, nil when no property has that name.
func (r *PropertyRepository) FindByName(ctx context.Context, name string) (*domain.Property, error) {
	var row propertyRow
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find property: %w", err)
	}

	p := propertyFromRow(row)
	return &p, nil
}
