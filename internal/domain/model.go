package domain

import (
    "net/url"
    "strings"
    "time"

    "golang.org/x/net/publicsuffix"
)

// Core domain models used internally. API types mirror openapi.yaml and
// sit in internal/api; keep these decoupled where helpful.

// InstalledPackage is a read-only snapshot of one package taken at scan time.
type InstalledPackage struct {
    PackageName   string  `json:"package_name" yaml:"package_name" validate:"required,max=255"`
    Label         string  `json:"label,omitempty" yaml:"label,omitempty"`
    Installer     *string `json:"installer,omitempty" yaml:"installer,omitempty"`
    Fingerprint   string  `json:"signing_fingerprint,omitempty" yaml:"signing_fingerprint,omitempty"`
    System        bool    `json:"system,omitempty" yaml:"system,omitempty"`
    UpdatedSystem bool    `json:"updated_system,omitempty" yaml:"updated_system,omitempty"`
}

// UserFacing reports whether the package belongs in an inventory: user apps
// plus system apps the user has updated.
func (p InstalledPackage) UserFacing() bool {
    return !p.System || p.UpdatedSystem
}

// Status is the classification label assigned to a package.
type Status string

const (
    StatusFOSS        Status = "FOSS"
    StatusProprietary Status = "PROP"
    StatusUnknown     Status = "UNKN"
)

// SortWeight orders statuses most concerning first.
func (s Status) SortWeight() int {
    switch s {
    case StatusProprietary:
        return 0
    case StatusUnknown:
        return 1
    case StatusFOSS:
        return 2
    }
    return 3
}

func (s Status) Valid() bool {
    return s == StatusFOSS || s == StatusProprietary || s == StatusUnknown
}

type ClassifiedApp struct {
    PackageName       string  `json:"package_name"`
    Label             string  `json:"label"`
    Status            Status  `json:"status"`
    Installer         *string `json:"installer,omitempty"`
    KnownAlternatives int     `json:"known_alternatives"`
}

// Vote categories used by the clients today. The vote map accepts any category.
const (
    VotePrivacy   = "privacy"
    VoteUsability = "usability"
)

type Alternative struct {
    ID          string         `json:"id" yaml:"id"`
    Name        string         `json:"name" yaml:"name"`
    PackageName string         `json:"package_name" yaml:"package_name"`
    License     string         `json:"license" yaml:"license"`
    RepoURL     string         `json:"repo_url" yaml:"repo_url"`
    FdroidID    string         `json:"fdroid_id" yaml:"fdroid_id"`
    IconURL     *string        `json:"icon_url,omitempty" yaml:"icon_url,omitempty"`
    Description string         `json:"description" yaml:"description"`
    Votes       map[string]int `json:"votes" yaml:"votes"`
}

// TotalScore is the sum of all vote categories.
func (a Alternative) TotalScore() int {
    total := 0
    for _, n := range a.Votes {
        total += n
    }
    return total
}

func (a Alternative) PrivacyVotes() int   { return a.Votes[VotePrivacy] }
func (a Alternative) UsabilityVotes() int { return a.Votes[VoteUsability] }

// RepoDomain returns the registrable domain hosting the source repository
// (e.g. "github.com", "codeberg.org"), or "" when RepoURL is not a URL.
func (a Alternative) RepoDomain() string {
    u, err := url.Parse(a.RepoURL)
    if err != nil || u.Hostname() == "" {
        return ""
    }
    host := strings.ToLower(u.Hostname())
    registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
    if err != nil {
        return host
    }
    return registrable
}

type ProprietaryTarget struct {
    ID           string   `json:"id" yaml:"id"`
    PackageName  string   `json:"package_name" yaml:"package_name"`
    Name         string   `json:"name" yaml:"name"`
    Icon         string   `json:"icon" yaml:"icon"`
    Category     string   `json:"category" yaml:"category"`
    Alternatives []string `json:"alternatives" yaml:"alternatives"`
}

type SovereigntyLevel string

const (
    LevelSovereign     SovereigntyLevel = "SOVEREIGN"
    LevelTransitioning SovereigntyLevel = "TRANSITIONING"
    LevelCaptured      SovereigntyLevel = "CAPTURED"
)

type SovereigntyScore struct {
    TotalApps        int              `json:"total_apps"`
    FossCount        int              `json:"foss_count"`
    ProprietaryCount int              `json:"proprietary_count"`
    UnknownCount     int              `json:"unknown_count"`
    Percentage       float64          `json:"percentage"`
    Level            SovereigntyLevel `json:"level"`
}

type SubmissionStatus string

const (
    SubmissionPending  SubmissionStatus = "pending"
    SubmissionApproved SubmissionStatus = "approved"
    SubmissionRejected SubmissionStatus = "rejected"
)

// ParseSubmissionStatus maps stored values onto the tri-state, treating
// anything unrecognised as pending.
func ParseSubmissionStatus(s string) SubmissionStatus {
    switch SubmissionStatus(strings.ToLower(s)) {
    case SubmissionApproved:
        return SubmissionApproved
    case SubmissionRejected:
        return SubmissionRejected
    }
    return SubmissionPending
}

type Submission struct {
    ID                 string           `json:"id"`
    ProprietaryPackage string           `json:"proprietary_package"`
    AlternativeID      string           `json:"alternative_id"`
    UserID             string           `json:"user_id"`
    Timestamp          time.Time        `json:"timestamp"`
    Status             SubmissionStatus `json:"status"`
}

type Scan struct {
    ID         string
    DeviceID   *string
    Status     string // queued|running|completed|failed
    Progress   float64
    CreatedAt  time.Time
    StartedAt  *time.Time
    FinishedAt *time.Time
    Apps       []ClassifiedApp
    Score      *SovereigntyScore
}

// SanitizeKey turns a package name into a document key. The transform is
// one-way; distinct names that differ only in '.' vs '_' collide.
func SanitizeKey(packageName string) string {
    return strings.ReplaceAll(packageName, ".", "_")
}

var ErrNotFound = errString("not found")

type errString string

func (e errString) Error() string { return string(e) }
