package license

import (
	"context"

	"github.com/confidence-group/hr-analytics-go/internal/domain/license"
)

type LicenseServiceImpl struct {
	license.LicenseRepository
}

func NewLicenseService(licenseRepository license.LicenseRepository) license.LicenseService {
	return &LicenseServiceImpl{LicenseRepository: licenseRepository}
}

// Get implements license.LicenseService.
func (s *LicenseServiceImpl) Get(ctx context.Context) (license.License, error) {
	l, err := s.LicenseRepository.Get(ctx)
	if err != nil {
		return license.License{}, err
	}
	l.Normalize()
	return l, nil
}

// Update implements license.LicenseService.
func (s *LicenseServiceImpl) Update(ctx context.Context, l license.License) (license.License, error) {
	l.Normalize()
	if err := s.LicenseRepository.Upsert(ctx, l); err != nil {
		return license.License{}, err
	}
	return s.LicenseRepository.Get(ctx)
}
