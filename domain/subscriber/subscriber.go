// Package subscriber provides newsletter subscriber value types and validation.
package subscriber

import (
	"errors"
	"strings"
	"time"
)

// Subscriber is a registered newsletter subscriber (immutable value type).
type Subscriber struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// Input is the submitted form or JSON body.
type Input struct {
	Name  string `json:"name" example:"Ada"`
	Email string `json:"email" example:"ada@example.com"`
}

// Validation errors.
var (
	ErrNameRequired  = errors.New("name is required")
	ErrEmailRequired = errors.New("email is required")
	ErrEmailInvalid  = errors.New("email is invalid")
)

// ErrAlreadySubscribed is returned by stores when the email is taken.
var ErrAlreadySubscribed = errors.New("subscriber: email already subscribed")

// Normalize trims whitespace and lowercases the email domain.
func (in Input) Normalize() Input {
	out := Input{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
	}
	if at := strings.LastIndexByte(out.Email, '@'); at >= 0 {
		out.Email = out.Email[:at] + strings.ToLower(out.Email[at:])
	}
	return out
}

// Validate checks a normalized input.
// Returns the field name and error of the first failure.
func Validate(in Input) (field string, err error) {
	if in.Name == "" {
		return "name", ErrNameRequired
	}
	if in.Email == "" {
		return "email", ErrEmailRequired
	}
	local, domain, ok := strings.Cut(in.Email, "@")
	if !ok || local == "" || domain == "" || strings.Contains(domain, "@") {
		return "email", ErrEmailInvalid
	}
	if strings.ContainsAny(in.Email, " \t\r\n") {
		return "email", ErrEmailInvalid
	}
	return "", nil
}
