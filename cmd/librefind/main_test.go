package main

import (
    "bytes"
    "os"
    "path/filepath"
    "strings"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/zap"

    badgerstore "librefind/internal/adapters/badger"
    "librefind/internal/config"
)

const seedYAML = `
solutions:
  - id: signal
    name: Signal
    package_name: org.thoughtcrime.securesms
    license: AGPL-3.0
    repo_url: https://github.com/signalapp/Signal-Android
    votes: {privacy: 3}
  - id: conversations
    name: Conversations
    package_name: eu.siacs.conversations
    license: GPL-3.0
    repo_url: https://codeberg.org/iNPUTmice/Conversations
    votes: {privacy: 4, usability: 1}
targets:
  - package_name: com.whatsapp
    name: WhatsApp
    category: messaging
    alternatives: [signal, conversations]
`

const manifestYAML = `
device_id: pixel-7
packages:
  - package_name: com.whatsapp
    label: WhatsApp
    install_source: {installing_package: com.android.vending}
  - package_name: org.schabi.newpipe
    label: NewPipe
    installer: org.fdroid.fdroid
  - package_name: com.android.settings
    system: true
`

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
    t.Helper()
    kdb, err := badgerstore.Open(badgerstore.InMemoryConfig())
    require.NoError(t, err)
    t.Cleanup(func() { _ = kdb.Close() })

    var out bytes.Buffer
    return &app{
        out: &out,
        cfg: &config.Config{
            StoreDriver:       config.DriverBadger,
            SignatureMode:     config.SignatureModeVerify,
            StoreTimeout:      time.Second,
            TierSovereign:     70,
            TierTransitioning: 40,
        },
        log:   zap.NewNop(),
        store: kdb,
    }, &out
}

func writeFile(t *testing.T, name, body string) string {
    t.Helper()
    path := filepath.Join(t.TempDir(), name)
    require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
    return path
}

func run(a *app, out *bytes.Buffer, args ...string) (string, error) {
    out.Reset()
    cmd := newRootCmd(a)
    cmd.SetArgs(args)
    cmd.SetErr(&bytes.Buffer{})
    err := cmd.Execute()
    return out.String(), err
}

func seeded(t *testing.T) (*app, *bytes.Buffer) {
    a, out := newTestApp(t)
    got, err := run(a, out, "seed", writeFile(t, "knowledge.yaml", seedYAML))
    require.NoError(t, err)
    assert.Equal(t, "seeded 1 targets and 2 solutions\n", got)
    return a, out
}

func TestScan(t *testing.T) {
    a, out := seeded(t)

    got, err := run(a, out, "scan", "--manifest", writeFile(t, "pixel-7.yaml", manifestYAML))
    require.NoError(t, err)

    lines := strings.Split(got, "\n")
    require.GreaterOrEqual(t, len(lines), 3)
    assert.Contains(t, lines[0], "STATUS")
    assert.Regexp(t, `^PROP\s+com\.whatsapp\s+WhatsApp\s+com\.android\.vending\s+2$`, lines[1])
    assert.Regexp(t, `^FOSS\s+org\.schabi\.newpipe\s+NewPipe\s+org\.fdroid\.fdroid\s+-$`, lines[2])
    assert.NotContains(t, got, "com.android.settings")
    assert.Contains(t, got, "50.0% FOSS (1 of 2 apps, 1 proprietary, 0 unknown): TRANSITIONING")
}

func TestScanRequiresManifest(t *testing.T) {
    a, out := newTestApp(t)
    _, err := run(a, out, "scan")
    assert.Error(t, err)

    _, err = run(a, out, "scan", "--manifest", filepath.Join(t.TempDir(), "missing.yaml"))
    assert.Error(t, err)
}

func TestAlternativesAndVotes(t *testing.T) {
    a, out := seeded(t)

    got, err := run(a, out, "alternatives", "com.whatsapp")
    require.NoError(t, err)
    assert.Less(t, strings.Index(got, "conversations"), strings.Index(got, "signal"), "ranked by score")
    assert.Contains(t, got, "codeberg.org")

    for i := 0; i < 3; i++ {
        got, err = run(a, out, "vote", "signal", "privacy", "--user", "bob")
        require.NoError(t, err)
        assert.Equal(t, "voted for signal (privacy)\n", got)
    }
    got, err = run(a, out, "alternatives", "com.whatsapp")
    require.NoError(t, err)
    assert.Less(t, strings.Index(got, "signal"), strings.Index(got, "conversations"), "signal now leads 6 to 5")

    _, err = run(a, out, "vote", "nope", "privacy", "--user", "bob")
    assert.Error(t, err)

    got, err = run(a, out, "alternatives", "com.example.unknown")
    require.NoError(t, err)
    assert.Equal(t, "no known alternatives for com.example.unknown\n", got)
}

func TestProposeAndSubmissions(t *testing.T) {
    a, out := seeded(t)

    got, err := run(a, out, "submissions", "--user", "alice")
    require.NoError(t, err)
    assert.Equal(t, "no submissions\n", got)

    _, err = run(a, out, "propose", "com.whatsapp", "signal", "--user", "alice")
    require.NoError(t, err)

    got, err = run(a, out, "submissions", "--user", "alice")
    require.NoError(t, err)
    assert.Contains(t, got, "com.whatsapp")
    assert.Contains(t, got, "pending")
}

func TestScanRejectsUnknownSignatureMode(t *testing.T) {
    a, out := seeded(t)
    a.cfg.SignatureMode = "verfy"

    _, err := run(a, out, "scan", "--manifest", writeFile(t, "pixel-7.yaml", manifestYAML))
    assert.ErrorContains(t, err, "SIGNATURE_MODE")
}
