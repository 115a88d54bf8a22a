package share

import (
	"bytes"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToken(t *testing.T) {
	a, err := NewToken()
	require.NoError(t, err)
	b, err := NewToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, url.PathEscape(a), "token must be URL-safe")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestNewToken_ReadError(t *testing.T) {
	orig := randReader
	randReader = failingReader{}
	defer func() { randReader = orig }()

	tok, err := NewToken()
	assert.Error(t, err)
	assert.Empty(t, tok)
}

func TestNewToken_Deterministic(t *testing.T) {
	orig := randReader
	randReader = bytes.NewReader(make([]byte, TokenBytes))
	defer func() { randReader = orig }()

	tok, err := NewToken()
	require.NoError(t, err)
	assert.Equal(t, "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", tok)
}

func TestBuildLinks(t *testing.T) {
	links := BuildLinks("https://example.com/", "tok123", "Roof & Walls")

	assert.Equal(t, "https://example.com/projects/shared/tok123/", links.Share)

	wa, err := url.Parse(links.WhatsApp)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", wa.Host)
	assert.Equal(t, "Check out this project: Roof & Walls\nhttps://example.com/projects/shared/tok123/", wa.Query().Get("text"))

	mail, err := url.Parse(links.Mailto)
	require.NoError(t, err)
	assert.Equal(t, "mailto", mail.Scheme)
	q := mail.Query()
	assert.Equal(t, "Shared Project: Roof & Walls", q.Get("subject"))
	assert.Equal(t, "I'd like to share this project with you:\n\nRoof & Walls\n\nView it here: https://example.com/projects/shared/tok123/", q.Get("body"))
	assert.NotContains(t, links.Mailto, "+")
}

func TestBuildLinks_Encoding(t *testing.T) {
	links := BuildLinks("http://x", "t", "A+B/C")

	assert.Equal(t,
		"https://wa.me/?text=Check%20out%20this%20project%3A%20A%2BB/C%0Ahttp%3A//x/projects/shared/t/",
		links.WhatsApp)
	assert.Equal(t,
		"mailto:?subject=Shared%20Project%3A%20A%2BB/C&body=I%27d%20like%20to%20share%20this%20project%20with%20you%3A%0A%0AA%2BB/C%0A%0AView%20it%20here%3A%20http%3A//x/projects/shared/t/",
		links.Mailto)
}

func TestBuildLinks_RelativeWithoutBase(t *testing.T) {
	links := BuildLinks("", "abc", "P")
	assert.Equal(t, "/projects/shared/abc/", links.Share)
}
