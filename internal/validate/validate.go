// Package validate collects field-level violations instead of failing on the
// first one. All string checks trim before measuring, and callers are
// expected to persist the trimmed value.
package validate

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

func (e *Errs) Add(f *ErrField) {
	if f != nil {
		*e = append(*e, *f)
	}
}

// Err returns the collected violations as an error, or nil when empty.
func (e Errs) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Helpers

func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

// MinLen and MaxLen count characters, not bytes, so multibyte input is
// measured the way users see it.
func MinLen(field, value string, min int) *ErrField {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < min {
		return &ErrField{Field: field, Msg: "must be at least " + strconv.Itoa(min) + " characters"}
	}
	return nil
}

func MaxLen(field, value string, max int) *ErrField {
	if utf8.RuneCountInString(strings.TrimSpace(value)) > max {
		return &ErrField{Field: field, Msg: "must be at most " + strconv.Itoa(max) + " characters"}
	}
	return nil
}

func Email(field, value string) *ErrField {
	v := strings.TrimSpace(value)
	at := strings.Index(v, "@")
	if at < 1 || at == len(v)-1 {
		return &ErrField{Field: field, Msg: "must be a valid email address"}
	}
	return nil
}

// Future enforces the creation-time rule: the instant must be strictly after
// now. Updates never call this.
func Future(field string, t, now time.Time) *ErrField {
	if !t.After(now) {
		return &ErrField{Field: field, Msg: "cannot be in the past"}
	}
	return nil
}
