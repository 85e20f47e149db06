package contact

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrFieldsRequired = errors.New("all fields are required")
	ErrInvalidEmail   = errors.New("invalid email address")
)

// local@domain.tld, exactly one @ and no whitespace anywhere. Whitespace covers
// the unicode separators, vertical tab and BOM along with the ascii set.
var emailRegex = regexp.MustCompile(`^[^\s\p{Z}\v\x{FEFF}@]+@[^\s\p{Z}\v\x{FEFF}@]+\.[^\s\p{Z}\v\x{FEFF}@]+$`)

// Submission is one contact form message. It is never stored.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate checks presence first, then the email shape, and stops at the first failure.
func (s Submission) Validate() error {
	for _, field := range []string{s.Name, s.Email, s.Subject, s.Message} {
		if strings.TrimSpace(field) == "" {
			return ErrFieldsRequired
		}
	}
	if !ValidEmail(s.Email) {
		return ErrInvalidEmail
	}
	return nil
}

func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
