package profiles

import (
    "context"

    "librefind/internal/domain"
    "librefind/internal/ports"
)

// Service serves the latest sovereignty profile per device.
type Service struct {
    scores ports.ScoreRepository
}

func New(scores ports.ScoreRepository) *Service { return &Service{scores: scores} }

func (s *Service) GetLatest(ctx context.Context, deviceID string) (domain.Scan, error) {
    exists, scan, err := s.scores.GetLatestByDevice(ctx, deviceID)
    if err != nil {
        return domain.Scan{}, err
    }
    if !exists || scan.Score == nil {
        return domain.Scan{}, domain.ErrNotFound
    }
    return scan, nil
}
