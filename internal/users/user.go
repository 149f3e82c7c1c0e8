// Package users is the user directory managed by the demo application.
package users

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when no user has the requested id.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidUser is wrapped by every FieldError.
	ErrInvalidUser = errors.New("invalid user")
)

// User is one directory entry.
type User struct {
	ID      int
	Name    string
	Surname string
	Email   string
	Added   time.Time
	Edited  *time.Time
}

// FullName returns "Name Surname".
func (u User) FullName() string {
	return strings.TrimSpace(u.Name + " " + u.Surname)
}

// FieldError reports a single invalid field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Is makes every FieldError match ErrInvalidUser.
func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidUser
}

// Validate checks the editable fields of u.
// Name and surname are required, the email must be a bare address, and no
// field may contain the file separator.
func Validate(u User) error {
	var errs []error
	for _, f := range []struct {
		name, value string
	}{
		{"name", u.Name},
		{"surname", u.Surname},
		{"email", u.Email},
	} {
		switch {
		case strings.TrimSpace(f.value) == "":
			errs = append(errs, &FieldError{Field: f.name, Reason: "is required"})
		case strings.ContainsAny(f.value, string(separator)+"\n\r"):
			errs = append(errs, &FieldError{Field: f.name, Reason: "contains a forbidden character"})
		}
	}
	if strings.TrimSpace(u.Email) != "" {
		if addr, err := mail.ParseAddress(u.Email); err != nil || addr.Address != u.Email || !dottedDomain(addr.Address) {
			errs = append(errs, &FieldError{Field: "email", Reason: "is not a valid address"})
		}
	}
	return errors.Join(errs...)
}

func dottedDomain(addr string) bool {
	at := strings.LastIndex(addr, "@")
	return at >= 0 && strings.Contains(addr[at+1:], ".")
}
