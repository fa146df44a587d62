package judge

import (
	"strings"
	"testing"
)

func TestComposeScriptOrder(t *testing.T) {
	script := composeScript("CONSTANT = 42", "def f():\n    return CONSTANT", "f()", "42", "tok")

	setupAt := strings.Index(script, "CONSTANT = 42")
	sourceAt := strings.Index(script, "def f():")
	trailerAt := strings.Index(script, `_llmeet_token = "tok"`)
	if setupAt < 0 || sourceAt < 0 || trailerAt < 0 {
		t.Fatalf("script is missing a section:\n%s", script)
	}
	if !(setupAt < sourceAt && sourceAt < trailerAt) {
		t.Fatalf("sections out of order: setup=%d source=%d trailer=%d", setupAt, sourceAt, trailerAt)
	}
	if !strings.Contains(script, `compile("f()".strip(), "<input>", "eval")`) {
		t.Fatalf("input expression not compiled as a literal:\n%s", script)
	}
	if strings.Contains(script, "{{") {
		t.Fatalf("unreplaced placeholder left in script:\n%s", script)
	}
}

func TestComposeScriptDoesNotExpandPlaceholdersInUserText(t *testing.T) {
	script := composeScript("", "x = '{{token}}'", "'{{expected}}'", "1", "tok")
	if !strings.Contains(script, "x = '{{token}}'") || !strings.Contains(script, "'{{expected}}'") {
		t.Fatalf("user text was rewritten:\n%s", script)
	}
}

func TestComposeScriptQuotesExpressions(t *testing.T) {
	script := composeScript("", "", "f(\"a\")\n", "'\\n'", "tok")
	if !strings.Contains(script, `compile("f(\"a\")\n".strip(), "<input>", "eval")`) {
		t.Fatalf("input expression not escaped:\n%s", script)
	}
	if !strings.Contains(script, `compile("'\\n'".strip(), "<expected>", "eval")`) {
		t.Fatalf("expected expression not escaped:\n%s", script)
	}
}

func TestNewTokenIsUnique(t *testing.T) {
	a, b := newToken(), newToken()
	if a == b {
		t.Fatalf("tokens must differ, got %q twice", a)
	}
	if !strings.HasPrefix(a, "__llmeet_") {
		t.Fatalf("unexpected token format %q", a)
	}
}

func TestFindMarker(t *testing.T) {
	tests := []struct {
		name   string
		stdout string
		want   string
		wantOK bool
	}{
		{name: "pass", stdout: "noise\ntok PASS\n", want: "PASS", wantOK: true},
		{name: "fail", stdout: "\ntok FAIL: Expected 5, got -1\n", want: "FAIL: Expected 5, got -1", wantOK: true},
		{name: "error", stdout: "tok ERROR: ZeroDivisionError: division by zero\r\n", want: "ERROR: ZeroDivisionError: division by zero", wantOK: true},
		{name: "last marker wins", stdout: "tok FAIL: x\ntok PASS\n", want: "PASS", wantOK: true},
		{name: "candidate print without token", stdout: "PASS\n", wantOK: false},
		{name: "wrong token", stdout: "other PASS\n", wantOK: false},
		{name: "token with junk", stdout: "tok PASSED\n", wantOK: false},
		{name: "empty", stdout: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := findMarker(tt.stdout, "tok")
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("findMarker() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
