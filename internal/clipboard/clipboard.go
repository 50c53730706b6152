// Package clipboard reads a download URL from the system clipboard.
package clipboard

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"

	"mediagrab/internal/util"
)

const maxURLLength = 2048

var (
	ErrClipboardRead = errors.New("failed to read from clipboard")
	ErrInvalidURL    = errors.New("clipboard does not contain a valid URL")
)

// reader is swapped in tests.
var reader = clipboard.ReadAll

// ReadURL returns the URL held in the clipboard.
func ReadURL() (string, error) {
	text, err := reader()
	if err != nil {
		return "", errors.Join(ErrClipboardRead, err)
	}
	return parseURL(text)
}

// parseURL accepts a single line with an explicit scheme. Unlike --url, bare
// hosts are refused: any copied word would otherwise pass as one.
func parseURL(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > maxURLLength || strings.ContainsAny(text, "\n\r") || !strings.Contains(text, "://") {
		return "", ErrInvalidURL
	}
	u, err := util.NormalizeURL(text)
	if err != nil {
		return "", errors.Join(ErrInvalidURL, err)
	}
	return u, nil
}
