package flows

import (
	"fmt"
	"regexp"
)

// TokenExtractor pulls a challenge token out of a service response message.
//
// The service currently embeds tokens in human-readable text, which couples
// this client to its phrasing. The interface isolates that coupling: if a
// structured response field ever replaces the pattern, only the extractor
// changes, not the flows.
type TokenExtractor interface {
	// Extract returns the token found in msg. A message that does not
	// match yields an *ExtractionError, never an empty token.
	Extract(msg string) (string, error)
}

// ExtractionError reports a response message that did not contain the
// expected token. It is a service-error variant: the request succeeded but
// the flow cannot continue, and it must not silently proceed.
type ExtractionError struct {
	// What names the missing token, e.g. "verification token".
	What string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not retrieve %s", e.What)
}

// RegexpExtractor extracts the first capture group of a pattern.
type RegexpExtractor struct {
	re   *regexp.Regexp
	what string
}

// NewRegexpExtractor compiles pattern, whose first capture group is the
// token. what names the token in error messages.
func NewRegexpExtractor(pattern, what string) (*RegexpExtractor, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid token pattern %q: %w", pattern, err)
	}
	return &RegexpExtractor{re: re, what: what}, nil
}

func (e *RegexpExtractor) Extract(msg string) (string, error) {
	m := e.re.FindStringSubmatch(msg)
	if len(m) < 2 || m[1] == "" {
		return "", &ExtractionError{What: e.what}
	}
	return m[1], nil
}

// NewVerificationTokenExtractor matches the registration response,
// e.g. "User registered. Verification token sent: XYZ".
func NewVerificationTokenExtractor() *RegexpExtractor {
	e, _ := NewRegexpExtractor(`Verification token sent: (.*)`, "verification token")
	return e
}

// NewResetTokenExtractor matches the forgot-password response,
// e.g. "Reset link sent with token: T1".
func NewResetTokenExtractor() *RegexpExtractor {
	e, _ := NewRegexpExtractor(`token: (.*)`, "reset token")
	return e
}
