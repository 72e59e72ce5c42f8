package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrInvalidCode     = errors.New("invalid code")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrInvalidFeedback = errors.New("invalid feedback")
	ErrInvalidAction   = errors.New("invalid action")
)

// NormalizeCode strips all whitespace and uppercases the code with full
// Unicode case mapping, so ß becomes SS.
func NormalizeCode(code string) string {
	return upper(strings.Join(strings.Fields(code), ""))
}

func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// ValidateCode checks a normalized code against the listing rules.
func ValidateCode(code string) error {
	n := utf8.RuneCountInString(code)
	if n < MinCodeLength || n > MaxCodeLength {
		return fmt.Errorf("%w: %q must be %d-%d characters", ErrInvalidCode, code, MinCodeLength, MaxCodeLength)
	}
	for _, r := range code {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidCode, code, r)
		}
	}
	return nil
}

// ValidatePrice checks a price against the listing range.
func ValidatePrice(price float64) error {
	if price < MinPrice || price > MaxPrice {
		return fmt.Errorf("%w: %v must be between %d and %d", ErrInvalidPrice, price, MinPrice, MaxPrice)
	}
	return nil
}

// ParsePrice parses a price as typed into the form.
func ParsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidPrice, s)
	}
	return v, ValidatePrice(v)
}

// NewSubmitRequest builds a validated submit request from form input.
func NewSubmitRequest(code, price, server string) (SubmitRequest, error) {
	code = NormalizeCode(code)
	if err := ValidateCode(code); err != nil {
		return SubmitRequest{}, err
	}
	p, err := ParsePrice(price)
	if err != nil {
		return SubmitRequest{}, err
	}
	if server = strings.TrimSpace(server); server == "" {
		server = DefaultServer
	}
	return SubmitRequest{Code: code, Price: p, Server: server}, nil
}

// NewFeedbackRequest builds a validated feedback report.
func NewFeedbackRequest(code, reason string) (FeedbackRequest, error) {
	code = upper(strings.TrimSpace(code))
	reason = strings.TrimSpace(reason)
	if code == "" || reason == "" {
		return FeedbackRequest{}, fmt.Errorf("%w: code and reason are required", ErrInvalidFeedback)
	}
	if len(reason) > MaxFeedbackReason {
		return FeedbackRequest{}, fmt.Errorf("%w: reason exceeds %d bytes", ErrInvalidFeedback, MaxFeedbackReason)
	}
	return FeedbackRequest{Code: code, Reason: reason}, nil
}

// NormalizeAction validates a feedback resolution action.
func NormalizeAction(action string) (string, error) {
	action = strings.ToLower(strings.TrimSpace(action))
	if action != ActionKeep && action != ActionDelete {
		return "", fmt.Errorf("%w: %q (want %s or %s)", ErrInvalidAction, action, ActionKeep, ActionDelete)
	}
	return action, nil
}

// ValidSort reports whether s is a feed sort order the API understands.
func ValidSort(s string) bool {
	return s == SortByTime || s == SortByPrice
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
