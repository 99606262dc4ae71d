package score

import "librefind/internal/domain"

// Thresholds are the FOSS percentages at which a device reaches each tier.
type Thresholds struct {
    Sovereign     float64
    Transitioning float64
}

func DefaultThresholds() Thresholds {
    return Thresholds{Sovereign: 70, Transitioning: 40}
}

// Level maps a FOSS percentage onto a tier.
func (t Thresholds) Level(percentage float64) domain.SovereigntyLevel {
    switch {
    case percentage >= t.Sovereign:
        return domain.LevelSovereign
    case percentage >= t.Transitioning:
        return domain.LevelTransitioning
    }
    return domain.LevelCaptured
}

// Percentage is 100*foss/total, or 0 for an empty inventory.
func Percentage(foss, total int) float64 {
    if total == 0 {
        return 0
    }
    return float64(foss) / float64(total) * 100
}

// Compute reduces a classified list into counts, percentage and tier.
func Compute(apps []domain.ClassifiedApp, t Thresholds) domain.SovereigntyScore {
    s := domain.SovereigntyScore{TotalApps: len(apps)}
    for _, a := range apps {
        switch a.Status {
        case domain.StatusFOSS:
            s.FossCount++
        case domain.StatusProprietary:
            s.ProprietaryCount++
        default:
            s.UnknownCount++
        }
    }
    s.Percentage = Percentage(s.FossCount, s.TotalApps)
    s.Level = t.Level(s.Percentage)
    if s.TotalApps == 0 {
        s.Level = domain.LevelCaptured
    }
    return s
}
