package config

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
    t.Setenv("STORE_DRIVER", "badger")
    t.Setenv("DATABASE_URL", "")

    cfg, err := Load()
    require.NoError(t, err)
    assert.Equal(t, ":8080", cfg.ListenAddr)
    assert.Equal(t, DriverBadger, cfg.StoreDriver)
    assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
    assert.Equal(t, "org.fdroid.fdroid", cfg.TrustedInstaller)
    assert.Equal(t, SignatureModeVerify, cfg.SignatureMode)
    assert.Equal(t, 70.0, cfg.TierSovereign)
    assert.Equal(t, 40.0, cfg.TierTransitioning)
}

func TestLoadOverrides(t *testing.T) {
    t.Setenv("STORE_DRIVER", "postgres")
    t.Setenv("DATABASE_URL", "postgres://localhost/librefind")
    t.Setenv("SCAN_WORKERS", "4")
    t.Setenv("STORE_TIMEOUT", "250ms")
    t.Setenv("SIGNATURE_MODE", "KNOWN")
    t.Setenv("VOTE_RATE", "0.5")

    cfg, err := Load()
    require.NoError(t, err)
    assert.Equal(t, 4, cfg.ScanWorkers)
    assert.Equal(t, 250*time.Millisecond, cfg.StoreTimeout)
    assert.Equal(t, SignatureModeKnown, cfg.SignatureMode)
    assert.Equal(t, 0.5, cfg.VoteRate)
}

func TestValidate(t *testing.T) {
    base := Config{StoreDriver: DriverBadger, SignatureMode: SignatureModeVerify, TierSovereign: 70, TierTransitioning: 40}
    assert.NoError(t, base.Validate())

    pg := base
    pg.StoreDriver = DriverPostgres
    assert.ErrorContains(t, pg.Validate(), "DATABASE_URL")

    bad := base
    bad.StoreDriver = "mongo"
    bad.SignatureMode = "maybe"
    err := bad.Validate()
    assert.ErrorContains(t, err, "STORE_DRIVER")
    assert.ErrorContains(t, err, "SIGNATURE_MODE")

    tiers := base
    tiers.TierTransitioning = 80
    assert.Error(t, tiers.Validate())
}

func TestVerifySignaturesFailsClosed(t *testing.T) {
    for mode, want := range map[string]bool{
        SignatureModeVerify: true,
        SignatureModeKnown:  false,
        "verfy":             true,
        "":                  true,
    } {
        cfg := Config{SignatureMode: mode}
        assert.Equal(t, want, cfg.VerifySignatures(), "mode %q", mode)
        assert.Equal(t, mode == SignatureModeVerify || mode == SignatureModeKnown, cfg.KnownSignatureMode(), "mode %q", mode)
    }
}
