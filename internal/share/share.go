// Package share issues share-link tokens and derives the channel URLs that
// point at a project's public share page.
package share

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// TokenBytes is the amount of entropy in a token. Encoded, a token is 64 characters.
const TokenBytes = 48

var randReader io.Reader = rand.Reader

// NewToken returns a URL-safe random token.
func NewToken() (string, error) {
	b := make([]byte, TokenBytes)
	if _, err := io.ReadFull(randReader, b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Links holds the URLs a share link is published through.
type Links struct {
	Share    string
	WhatsApp string
	Mailto   string
}

// SharePath is the path of the public share page for token.
func SharePath(token string) string {
	return "/projects/shared/" + token + "/"
}

// BuildLinks derives every channel URL from the token. baseURL is scheme and
// host without a trailing slash; an empty baseURL yields relative share URLs.
func BuildLinks(baseURL, token, projectName string) Links {
	shareURL := strings.TrimRight(baseURL, "/") + SharePath(token)

	message := fmt.Sprintf("Check out this project: %s\n%s", projectName, shareURL)
	subject := fmt.Sprintf("Shared Project: %s", projectName)
	body := fmt.Sprintf("I'd like to share this project with you:\n\n%s\n\nView it here: %s", projectName, shareURL)

	return Links{
		Share:    shareURL,
		WhatsApp: "https://wa.me/?text=" + escape(message),
		Mailto:   "mailto:?subject=" + escape(subject) + "&body=" + escape(body),
	}
}

// escaper keeps "/" literal and writes spaces as %20, the encoding share
// targets have always received for these links.
var escaper = strings.NewReplacer("+", "%20", "%2F", "/")

// escape percent-encodes s for use in a query value. QueryEscape turns a
// literal "+" into %2B, so every "+" left in its output is a space.
func escape(s string) string {
	return escaper.Replace(url.QueryEscape(s))
}
