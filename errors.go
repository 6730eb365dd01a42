package conform

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType    = "invalid_type"
	CodeConst          = "const"
	CodeInvalidEnum    = "invalid_enum"
	CodeTooSmall       = "too_small"
	CodeTooBig         = "too_big"
	CodeNotMultiple    = "not_multiple"
	CodeTooShort       = "too_short"
	CodeTooLong        = "too_long"
	CodePattern        = "pattern"
	CodeRequired       = "required"
	CodeUnknownKey     = "unknown_key"
	CodeTooFewItems    = "too_few_items"
	CodeTooManyItems   = "too_many_items"
	CodeContains       = "contains"
	CodeTooFewProps    = "too_few_properties"
	CodeTooManyProps   = "too_many_properties"
	CodeAnyOf          = "any_of"
	CodeOneOfNone      = "one_of_none"
	CodeUnionAmbiguous = "union_ambiguous"
	CodeNot            = "not"
	CodeDepthExceeded  = "depth_exceeded"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string `json:"path"` // JSON Pointer (for example: /items/2/price).
	Code    string `json:"code"` // One of the codes listed above.
	Message string `json:"message,omitempty"`
	// Params carries structured parameters (e.g., {"min":1, "got":0}) for i18n
	// and observability.
	Params map[string]any `json:"params,omitempty"`
}

func (it Issue) String() string {
	if it.Message == "" || it.Message == it.Code {
		return fmt.Sprintf("%s at %s", it.Code, it.Path)
	}
	return fmt.Sprintf("%s at %s: %s", it.Code, it.Path, it.Message)
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Err returns iss as an error, or nil when there are no issues.
func (iss Issues) Err() error {
	if len(iss) == 0 {
		return nil
	}
	return iss
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
