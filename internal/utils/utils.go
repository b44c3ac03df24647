package utils

import (
	"errors"
	"fmt"
	"math"
	"mime"
	"os"
	"regexp"
	"strings"
)

// Static error definitions for better error handling.
var (
	// ErrInvalidHeader indicates a header line without a "Name: value" or "Name;" shape.
	ErrInvalidHeader = errors.New("invalid header")
)

var (
	// textContentTypePatterns is a slice of regular expressions that match content types
	// considered to be text-based. This includes "text/*", JSON and XML types and form data.
	//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
	textContentTypePatterns = []*regexp.Regexp{
		regexp.MustCompile("^text/.+"),
		regexp.MustCompile(`^application/([a-z0-9.+-]+\+)?json$`),
		regexp.MustCompile(`^application/([a-z0-9.+-]+\+)?xml$`),
		regexp.MustCompile("^application/x-www-form-urlencoded$"),
	}

	// headerNamePattern matches an HTTP token as used in header names.
	//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
	headerNamePattern = regexp.MustCompile("^[!#$%&'*+.^_`|~0-9A-Za-z-]+$")
)

// SafeUint64ToInt64 converts a uint64 value to an int64 safely,
// ensuring that the value does not exceed the maximum limit of int64.
func SafeUint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(val)
}

// IsFileExist checks if a file exists at the specified path.
// It returns true if the file exists and is not a directory, false if the file does not exist,
// and an error if there was an issue accessing the file.
func IsFileExist(path string) (bool, error) {
	stat, err := os.Stat(path)
	if err == nil {
		return !stat.IsDir(), nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

// IsTextContentType checks if the given content type represents a text-based format.
// It also checks that the charset, if present, is either "utf-8" or "us-ascii".
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}

// ParseHeaderLine splits a command line header into name and value.
// "Name: value" sends a value, "Name;" sends the header with an empty value.
func ParseHeaderLine(line string) (string, string, error) {
	if name, ok := strings.CutSuffix(strings.TrimSpace(line), ";"); ok && !strings.Contains(name, ":") {
		name = strings.TrimSpace(name)
		if !headerNamePattern.MatchString(name) {
			return "", "", fmt.Errorf("%w: %q", ErrInvalidHeader, line)
		}

		return name, "", nil
	}

	name, value, found := strings.Cut(line, ":")
	if !found {
		return "", "", fmt.Errorf("%w: %q, expected \"Name: value\"", ErrInvalidHeader, line)
	}

	name = strings.TrimSpace(name)
	if !headerNamePattern.MatchString(name) {
		return "", "", fmt.Errorf("%w: bad name in %q", ErrInvalidHeader, line)
	}

	value = strings.TrimSpace(value)
	if value == "" || strings.ContainsAny(value, "\r\n\x00") {
		return "", "", fmt.Errorf("%w: bad value in %q, use \"%s;\" for an empty value", ErrInvalidHeader, line, name)
	}

	return name, value, nil
}
