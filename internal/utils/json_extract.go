package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseEmbeddedJSON extracts and parses the first JSON object found in a
// script payload. Marketplace pages inline application state as
// `<marker> = {...};` inside scripts, so the input usually carries an
// assignment prefix, a trailing semicolon, and occasionally sloppy JSON
// (trailing commas). The strategies are tried in order:
//   - direct parse
//   - balanced-brace extraction of the first object
//   - extraction plus cleanup of common formatting issues
func ParseEmbeddedJSON(input string, target interface{}) error {
	if input == "" {
		return fmt.Errorf("empty input")
	}

	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	extracted := ExtractJSONObject(input)
	if extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
		if cleaned := cleanJSON(extracted); cleaned != "" {
			if err := json.Unmarshal([]byte(cleaned), target); err == nil {
				return nil
			}
		}
	}

	return fmt.Errorf("no parseable JSON object in input: %s", truncateString(input, 100))
}

// ExtractJSONObject returns the first balanced {...} object in the input, or
// "" when none exists. Braces inside string literals are ignored.
func ExtractJSONObject(input string) string {
	start := strings.Index(input, "{")
	if start < 0 {
		return ""
	}
	return extractBalanced(input[start:], '{', '}')
}

// extractBalanced extracts content with balanced delimiters, honoring JSON
// string escaping.
func extractBalanced(input string, open, close rune) string {
	depth := 0
	inString := false
	escape := false
	start := 0

	for i, ch := range input {
		if escape {
			escape = false
			continue
		}

		if ch == '\\' {
			escape = true
			continue
		}

		if ch == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		if ch == open {
			if depth == 0 {
				start = i
			}
			depth++
		} else if ch == close {
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}

	return ""
}

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// cleanJSON fixes the formatting issues seen in inline state blobs: BOMs,
// trailing commas, raw control characters.
func cleanJSON(input string) string {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	s = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`).ReplaceAllString(s, "")
	return s
}

// truncateString truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
