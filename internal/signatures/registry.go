// Package signatures holds the expected signing-certificate fingerprints of
// FOSS packages that are also distributed through non-FOSS channels.
package signatures

import (
    "fmt"
    "io"
    "os"
    "strings"

    "gopkg.in/yaml.v3"
)

// builtin is compiled into the binary; LoadFile replaces it with a larger set.
var builtin = map[string]string{
    "org.thoughtcrime.securesms": "29F34E5F27F211B424BC5BF9D67162C0EEAD9270", // Signal
    "org.mozilla.firefox":        "A78B62A5165B4494B2FEAD9E76A280D22D937FEA",
    "org.telegram.messenger":     "EBE9705F19BFFA8EA97E5B784F6E8F0D5C2F67F9",
    "org.schabi.newpipe":         "F051D8DA13C4D89DEF37A41939224974C6C23C6E",
    "com.fsck.k9":                "68D498D891DE759B2957A5A9968EF9C0F4B7DCE4",
    "org.videolan.vlc":           "D79DCC1BD8A22FE70B9BC7F8DCF1E2DE81D0C5E2",
}

// Registry is read-only after construction and safe for concurrent use.
type Registry struct {
    known map[string]string
}

// Default returns the compiled-in registry.
func Default() *Registry {
    return New(builtin)
}

// New copies entries into a registry. Fingerprints are stored normalized.
func New(entries map[string]string) *Registry {
    known := make(map[string]string, len(entries))
    for pkg, fp := range entries {
        known[pkg] = normalize(fp)
    }
    return &Registry{known: known}
}

// IsKnown reports whether the package has a registered fingerprint.
func (r *Registry) IsKnown(packageName string) bool {
    _, ok := r.known[packageName]
    return ok
}

// Matches reports whether fingerprint equals the registered one, ignoring
// case and ':' separators. Unknown packages and empty fingerprints never match.
func (r *Registry) Matches(packageName, fingerprint string) bool {
    want, ok := r.known[packageName]
    if !ok || fingerprint == "" {
        return false
    }
    return want == normalize(fingerprint)
}

func (r *Registry) Len() int { return len(r.known) }

type fileFormat struct {
    Signatures []struct {
        Package     string `yaml:"package"`
        Fingerprint string `yaml:"fingerprint"`
    } `yaml:"signatures"`
}

// Load parses a YAML data file of the form
//
//  signatures:
//    - package: org.mozilla.firefox
//      fingerprint: A78B62A5...
func Load(r io.Reader) (*Registry, error) {
    var f fileFormat
    if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
        return nil, fmt.Errorf("decode signatures: %w", err)
    }
    entries := make(map[string]string, len(f.Signatures))
    for i, s := range f.Signatures {
        if s.Package == "" || s.Fingerprint == "" {
            return nil, fmt.Errorf("signature entry %d: package and fingerprint are required", i)
        }
        entries[s.Package] = s.Fingerprint
    }
    return New(entries), nil
}

func LoadFile(path string) (*Registry, error) {
    f, err := os.Open(path)
    if err != nil {
        return nil, err
    }
    defer f.Close()
    return Load(f)
}

func normalize(fp string) string {
    return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(fp), ":", ""))
}
