package generate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/flowgenhq/flowgen/pkg/models"
)

// ParseError indicates no well-formed JSON task array could be recovered
// from the generation response.
type ParseError struct {
	Reason  string
	Snippet string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("%s (response: %q)", e.Reason, e.Snippet)
	}
	return e.Reason
}

// fencedArrayRe matches a markdown code fence whose content is a JSON
// array. Models routinely wrap output this way despite instructions.
var fencedArrayRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\[.*?\\])\\s*```")

// ExtractTasks recovers the task array from raw generation text. Strategy,
// in order: a fenced code block containing an array, then the first
// balanced top-level array literal anywhere in the text. Greedy matching
// is deliberately avoided: with multiple arrays in one response a greedy
// pattern spans them all and produces garbage, so the first balanced
// array wins.
func ExtractTasks(raw string) ([]models.TaskSpec, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, &ParseError{Reason: "empty response"}
	}

	candidate := ""
	if m := fencedArrayRe.FindStringSubmatch(text); m != nil {
		candidate = m[1]
	} else if arr, ok := findBalancedArray(text); ok {
		candidate = arr
	} else {
		return nil, &ParseError{
			Reason:  "no JSON array found in response",
			Snippet: snippet(text),
		}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &elements); err != nil {
		return nil, &ParseError{
			Reason:  fmt.Sprintf("response is not a valid JSON array: %v", err),
			Snippet: snippet(candidate),
		}
	}

	tasks := make([]models.TaskSpec, 0, len(elements))
	for i, el := range elements {
		trimmed := strings.TrimSpace(string(el))
		if !strings.HasPrefix(trimmed, "{") {
			return nil, &ParseError{
				Reason: fmt.Sprintf("element at index %d is not an object", i),
			}
		}
		var task models.TaskSpec
		if err := json.Unmarshal(el, &task); err != nil {
			return nil, &ParseError{
				Reason: fmt.Sprintf("task at index %d is malformed: %v", i, err),
			}
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// findBalancedArray locates the first '[' in the text and returns the
// substring up to its matching ']', tracking nesting depth and skipping
// brackets inside JSON string literals.
func findBalancedArray(text string) (string, bool) {
	start := strings.IndexByte(text, '[')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}

// snippet bounds diagnostic excerpts of model output.
func snippet(s string) string {
	const limit = 200
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
