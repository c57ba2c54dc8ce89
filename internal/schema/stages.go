package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// TrimSpace strips leading and trailing whitespace from a string value.
func TrimSpace(v interface{}) (interface{}, error) {
	s, ok := v.(string)
	if !ok {
		return v, nil
	}
	return strings.TrimSpace(s), nil
}

// Lower lowercases a string value.
func Lower(v interface{}) (interface{}, error) {
	s, ok := v.(string)
	if !ok {
		return v, nil
	}
	return strings.ToLower(s), nil
}

// MinLen fails when a string value is shorter than n characters.
func MinLen(n int) StageFunc {
	return func(v interface{}) (interface{}, error) {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		if len(s) < n {
			return nil, fmt.Errorf("must be at least %d characters long", n)
		}
		return s, nil
	}
}

// MaxLen fails when a string value is longer than n characters.
func MaxLen(n int) StageFunc {
	return func(v interface{}) (interface{}, error) {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		if len(s) > n {
			return nil, fmt.Errorf("must be at most %d characters long", n)
		}
		return s, nil
	}
}

// Match fails when a string value does not match re.
func Match(re *regexp.Regexp, reason string) StageFunc {
	return func(v interface{}) (interface{}, error) {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		if !re.MatchString(s) {
			return nil, fmt.Errorf("%s", reason)
		}
		return s, nil
	}
}

// OneOf fails when a string value is not one of the allowed values.
func OneOf(allowed ...string) StageFunc {
	return func(v interface{}) (interface{}, error) {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		for _, a := range allowed {
			if s == a {
				return s, nil
			}
		}
		return nil, fmt.Errorf("must be one of %s", strings.Join(allowed, ", "))
	}
}
