package symbol

import (
	"fmt"
	"strconv"
	"strings"
)

// PreProcessor transforms the assembled prompt parts before the request is
// rendered. Processors run in order and may rewrite any section.
type PreProcessor func(parts *PromptParts, subject Symbol, operands []Symbol) error

// PostProcessor transforms the raw backend reply. The first processor in a
// chain receives the reply text (or structured data); later processors
// receive the previous processor's output.
type PostProcessor func(value any) (any, error)

// StripPostProcessor trims surrounding whitespace and quotes from textual
// replies. Non-textual values pass through unchanged.
func StripPostProcessor(value any) (any, error) {
	text, ok := value.(string)
	if !ok {
		return value, nil
	}
	text = strings.TrimSpace(text)
	text = strings.Trim(text, "'\"")
	return strings.TrimSpace(text), nil
}

// BoolPostProcessor parses a yes/no style reply into a bool.
func BoolPostProcessor(value any) (any, error) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	text, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("cannot parse %T as bool", value)
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0", "":
		return false, nil
	default:
		// Verbose replies are judged by their leading word only.
		first := strings.Fields(strings.ToLower(text))[0]
		first = strings.Trim(first, ".,;:!'\"")
		return first == "true" || first == "yes", nil
	}
}

// IntPostProcessor parses the reply into an int.
func IntPostProcessor(value any) (any, error) {
	if n, ok := value.(int); ok {
		return n, nil
	}
	text, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("cannot parse %T as int", value)
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("reply is not an integer: %w", err)
	}
	return n, nil
}

// ListPostProcessor splits a textual reply into a list of trimmed,
// non-empty lines. Replies already shaped as lists pass through.
func ListPostProcessor(value any) (any, error) {
	if list, ok := value.([]any); ok {
		return list, nil
	}
	text, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("cannot parse %T as list", value)
	}
	var out []any
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		if line != "" {
			out = append(out, line)
		}
	}
	if out == nil {
		out = []any{}
	}
	return out, nil
}

// CodePostProcessor extracts the content of the first fenced code block, or
// returns the reply unchanged when no fence is present.
func CodePostProcessor(value any) (any, error) {
	text, ok := value.(string)
	if !ok {
		return value, nil
	}
	start := strings.Index(text, "```")
	if start < 0 {
		return text, nil
	}
	rest := text[start+3:]
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		// Drop the language hint on the opening fence.
		rest = rest[nl+1:]
	}
	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest), nil
}
