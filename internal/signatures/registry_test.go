package signatures

import (
    "strings"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
    r := Default()
    assert.Equal(t, 6, r.Len())
    assert.True(t, r.IsKnown("org.mozilla.firefox"))
    assert.False(t, r.IsKnown("com.example.tracker"))
}

func TestMatches(t *testing.T) {
    r := Default()
    assert.True(t, r.Matches("org.mozilla.firefox", "A78B62A5165B4494B2FEAD9E76A280D22D937FEA"))
    assert.True(t, r.Matches("org.mozilla.firefox", "a78b62a5165b4494b2fead9e76a280d22d937fea"))
    assert.True(t, r.Matches("org.mozilla.firefox", "A7:8B:62:A5:16:5B:44:94:B2:FE:AD:9E:76:A2:80:D2:2D:93:7F:EA"))
    assert.False(t, r.Matches("org.mozilla.firefox", "0000"))
    assert.False(t, r.Matches("org.mozilla.firefox", ""))
    assert.False(t, r.Matches("com.example.tracker", "A78B62A5165B4494B2FEAD9E76A280D22D937FEA"))
}

func TestLoad(t *testing.T) {
    r, err := Load(strings.NewReader(`
signatures:
  - package: org.example.notes
    fingerprint: ab:cd
`))
    require.NoError(t, err)
    assert.Equal(t, 1, r.Len())
    assert.True(t, r.Matches("org.example.notes", "ABCD"))
    assert.False(t, r.IsKnown("org.mozilla.firefox"))

    _, err = Load(strings.NewReader("signatures:\n  - package: x\n"))
    assert.Error(t, err)

    r, err = Load(strings.NewReader(""))
    require.NoError(t, err)
    assert.Equal(t, 0, r.Len())
}
