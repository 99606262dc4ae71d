package config

import (
    "errors"
    "fmt"
    "os"
    "strings"
    "time"

    "github.com/joho/godotenv"
)

const (
    DriverPostgres = "postgres"
    DriverBadger   = "badger"

    // SignatureModeVerify requires the live signing fingerprint to match the
    // registry; SignatureModeKnown trusts any package listed in the registry.
    SignatureModeVerify = "verify"
    SignatureModeKnown  = "known"
)

type Config struct {
    Env         string
    ListenAddr  string
    LogLevel    string
    DatabaseURL string
    StoreDriver string
    BadgerPath  string
    ScanWorkers int

    StoreTimeout     time.Duration
    TrustedInstaller string
    SignatureMode    string
    SignaturesFile   string

    VoteRate  float64
    VoteBurst int

    TierSovereign     float64
    TierTransitioning float64
}

func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

// Load reads configuration from the environment. A .env file in the working
// directory, if present, is loaded first and never overrides real variables.
func Load() (Config, error) {
    _ = godotenv.Load()

    cfg := Config{
        Env:               getenv("APP_ENV", "development"),
        ListenAddr:        getenv("LISTEN_ADDR", ":8080"),
        LogLevel:          getenv("LOG_LEVEL", "info"),
        DatabaseURL:       os.Getenv("DATABASE_URL"),
        StoreDriver:       strings.ToLower(getenv("STORE_DRIVER", DriverPostgres)),
        BadgerPath:        os.Getenv("BADGER_PATH"),
        ScanWorkers:       getenvInt("SCAN_WORKERS", 0),
        StoreTimeout:      getenvDuration("STORE_TIMEOUT", 5*time.Second),
        TrustedInstaller:  getenv("TRUSTED_INSTALLER", "org.fdroid.fdroid"),
        SignatureMode:     strings.ToLower(getenv("SIGNATURE_MODE", SignatureModeVerify)),
        SignaturesFile:    os.Getenv("SIGNATURES_FILE"),
        VoteRate:          getenvFloat("VOTE_RATE", 1),
        VoteBurst:         getenvInt("VOTE_BURST", 5),
        TierSovereign:     getenvFloat("TIER_SOVEREIGN", 70),
        TierTransitioning: getenvFloat("TIER_TRANSITIONING", 40),
    }
    return cfg, cfg.Validate()
}

// Validate reports configuration problems. A missing DATABASE_URL with the
// postgres driver is returned as a warning-grade error so callers can decide.
func (c Config) Validate() error {
    var errs []error
    switch c.StoreDriver {
    case DriverPostgres:
        if c.DatabaseURL == "" {
            errs = append(errs, fmt.Errorf("DATABASE_URL not set"))
        }
    case DriverBadger:
    default:
        errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
    }
    if !c.KnownSignatureMode() {
        errs = append(errs, fmt.Errorf("unknown SIGNATURE_MODE %q", c.SignatureMode))
    }
    if c.TierTransitioning > c.TierSovereign {
        errs = append(errs, fmt.Errorf("TIER_TRANSITIONING (%v) above TIER_SOVEREIGN (%v)", c.TierTransitioning, c.TierSovereign))
    }
    return errors.Join(errs...)
}

// KnownSignatureMode reports whether SignatureMode is one of the supported modes.
func (c Config) KnownSignatureMode() bool {
    return c.SignatureMode == SignatureModeVerify || c.SignatureMode == SignatureModeKnown
}

// VerifySignatures is true unless the lenient mode was asked for explicitly,
// so an unrecognised mode keeps fingerprint checks on.
func (c Config) VerifySignatures() bool {
    return c.SignatureMode != SignatureModeKnown
}

func getenvInt(key string, def int) int {
    if v := os.Getenv(key); v != "" {
        var out int
        _, err := fmt.Sscanf(v, "%d", &out)
        if err == nil { return out }
    }
    return def
}

func getenvFloat(key string, def float64) float64 {
    if v := os.Getenv(key); v != "" {
        var out float64
        _, err := fmt.Sscanf(v, "%g", &out)
        if err == nil { return out }
    }
    return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
    if v := os.Getenv(key); v != "" {
        if d, err := time.ParseDuration(v); err == nil { return d }
    }
    return def
}
