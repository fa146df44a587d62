package judge

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	markerPass  = "PASS"
	markerFail  = "FAIL:"
	markerError = "ERROR:"

	// longer reprs are cut so the marker line stays well inside the output cap
	reprLimit = 2000
)

// trailer evaluates both expressions and reports through the real stdout, so a
// candidate that swaps sys.stdout cannot swallow the marker. The expressions arrive
// as string literals and are compiled in eval mode ahead of the try block: anything
// that is not exactly one expression, blank included, fails like a syntax error.
const trailer = `
import sys as _llmeet_sys
_llmeet_token = "{{token}}"

def _llmeet_repr(value):
    text = repr(value)
    if len(text) > {{repr_limit}}:
        text = text[:{{repr_limit}}] + "..."
    return text

def _llmeet_emit(line):
    _llmeet_sys.__stdout__.write("\n" + _llmeet_token + " " + line + "\n")
    _llmeet_sys.__stdout__.flush()

_llmeet_input = compile({{input}}.strip(), "<input>", "eval")
_llmeet_expected = compile({{expected}}.strip(), "<expected>", "eval")

try:
    result = eval(_llmeet_input, globals())
    expected = eval(_llmeet_expected, globals())
    if result == expected:
        _llmeet_emit("PASS")
    else:
        _llmeet_emit("FAIL: Expected " + _llmeet_repr(expected) + ", got " + _llmeet_repr(result))
except Exception as e:
    _llmeet_emit("ERROR: " + type(e).__name__ + ": " + str(e))
`

// newToken returns a per-run nonce. Candidate output cannot forge a marker without it.
func newToken() string {
	return "__llmeet_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// composeScript lays out setup code, candidate code and the trailer, in that order.
func composeScript(setupCode, sourceCode, inputExpr, expectedExpr, token string) string {
	r := strings.NewReplacer(
		"{{token}}", token,
		"{{repr_limit}}", strconv.Itoa(reprLimit),
		"{{input}}", strconv.Quote(inputExpr),
		"{{expected}}", strconv.Quote(expectedExpr),
	)

	var sb strings.Builder
	if setupCode != "" {
		sb.WriteString(setupCode)
		sb.WriteString("\n\n")
	}
	sb.WriteString(sourceCode)
	sb.WriteString("\n")
	sb.WriteString(r.Replace(trailer))
	return sb.String()
}

// findMarker returns the text following the last token on stdout, up to the end of that line.
func findMarker(stdout, token string) (string, bool) {
	prefix := token + " "
	idx := strings.LastIndex(stdout, prefix)
	if idx < 0 {
		return "", false
	}
	line := stdout[idx+len(prefix):]
	if nl := strings.IndexByte(line, '\n'); nl >= 0 {
		line = line[:nl]
	}
	line = strings.TrimRight(line, "\r ")

	if line == markerPass || strings.HasPrefix(line, markerFail) || strings.HasPrefix(line, markerError) {
		return line, true
	}
	return "", false
}
