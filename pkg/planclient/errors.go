package planclient

import (
	"encoding/json"
	"sort"
	"strings"
)

// ValidationError carries the service's field-level rejections. Callers keep
// their in-progress plan and surface the first message per field next to the
// corresponding input, plus Summary() as the combined notice.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.fieldNames(), ", ")
}

// First returns the first message recorded for a field, or "".
func (e *ValidationError) First(field string) string {
	msgs := e.Fields[field]
	if len(msgs) == 0 {
		return ""
	}
	return msgs[0]
}

// Summary renders one line per field, suitable for a combined warning box.
func (e *ValidationError) Summary() string {
	var lines []string
	for _, f := range e.fieldNames() {
		lines = append(lines, f+": "+e.Fields[f][0])
	}
	return strings.Join(lines, "\n")
}

func (e *ValidationError) fieldNames() []string {
	out := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// parseValidationError reads the service's 422 envelope; nil when the body
// is not a field-validation response.
func parseValidationError(body []byte) *ValidationError {
	var envelope struct {
		Error struct {
			Code    string              `json:"code"`
			Message string              `json:"message"`
			Fields  map[string][]string `json:"fields"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	if envelope.Error.Code != "VALIDATION_FAILED" || len(envelope.Error.Fields) == 0 {
		return nil
	}
	return &ValidationError{Message: envelope.Error.Message, Fields: envelope.Error.Fields}
}
