package scanner

import (
    "context"
    "errors"
    "fmt"

    "github.com/go-playground/validator/v10"

    "librefind/internal/domain"
    "librefind/internal/ports"
)

// MaxPackages bounds the size of one submitted inventory.
const MaxPackages = 5000

var ErrInvalidInventory = errors.New("invalid inventory")

type Service struct {
    scans    ports.ScanRepository
    validate *validator.Validate
}

func New(scans ports.ScanRepository) *Service {
    return &Service{scans: scans, validate: validator.New()}
}

type enqueueInput struct {
    DeviceID *string                   `validate:"omitempty,min=1,max=128"`
    Packages []domain.InstalledPackage `validate:"max=5000,dive"`
}

// Enqueue stores the submitted inventory and queues it for classification.
func (s *Service) Enqueue(ctx context.Context, deviceID *string, pkgs []domain.InstalledPackage) (string, error) {
    if err := s.validate.Struct(enqueueInput{DeviceID: deviceID, Packages: pkgs}); err != nil {
        return "", fmt.Errorf("%w: %v", ErrInvalidInventory, err)
    }
    seen := make(map[string]struct{}, len(pkgs))
    for _, p := range pkgs {
        if _, dup := seen[p.PackageName]; dup {
            return "", fmt.Errorf("%w: duplicate package %s", ErrInvalidInventory, p.PackageName)
        }
        seen[p.PackageName] = struct{}{}
    }
    return s.scans.Create(ctx, deviceID, pkgs)
}

func (s *Service) Status(ctx context.Context, scanID string) (string, float64, error) {
    return s.scans.Status(ctx, scanID)
}

// Result returns the scan with its classified list once completed.
func (s *Service) Result(ctx context.Context, scanID string) (domain.Scan, error) {
    return s.scans.Get(ctx, scanID)
}
