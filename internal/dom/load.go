package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// MaxDocumentSize bounds how much markup a single load will read.
const MaxDocumentSize = 20 * 1024 * 1024

// Parse parses a UTF-8 markup string and returns the document root.
func Parse(markup string) (Node, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return Wrap(root), nil
}

// MustParse is Parse for fixtures known to be well formed.
func MustParse(markup string) Node {
	n, err := Parse(markup)
	if err != nil {
		panic(err)
	}
	return n
}

// Load reads a document, transcoding to UTF-8 from the declared content type or
// from a detected charset when the bytes are not valid UTF-8.
func Load(r io.Reader, contentType string) (Node, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if len(data) > MaxDocumentSize {
		return nil, fmt.Errorf("document exceeds maximum size of %d bytes", MaxDocumentSize)
	}

	var reader io.Reader = bytes.NewReader(data)
	switch {
	case strings.Contains(strings.ToLower(contentType), "charset="):
		if cr, err := charset.NewReader(reader, contentType); err == nil {
			reader = cr
		}
	case !utf8.Valid(data):
		if cr, err := charset.NewReaderLabel(DetectCharset(data), reader); err == nil {
			reader = cr
		}
	}

	root, err := html.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return Wrap(root), nil
}

// DetectCharset guesses the charset label of raw markup.
func DetectCharset(data []byte) string {
	detector := chardet.NewHtmlDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}
