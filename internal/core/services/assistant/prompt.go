package assistant

import (
	"fmt"
	"strings"

	"gitlab.com/llmeet.net/internal/domain"
)

const (
	contextAck = "I understand the problem. I'm ready to help you work through it. What would you like to discuss?"
	ackRequest = "\n\nPlease acknowledge you understand the problem context."
)

func systemPrompt(p *domain.Problem, code string) string {
	var sb strings.Builder
	sb.WriteString("You are a helpful coding assistant helping a developer solve a programming problem.\n")
	sb.WriteString("This is an \"LLM allowed\" interview - the candidate gets ONE chance to deploy their solution to production.\n\n")
	fmt.Fprintf(&sb, "## Problem: %s\nType: %s\nPriority: %s\n\n", p.Title, p.Type, p.Priority)
	fmt.Fprintf(&sb, "## Description:\n%s\n\n", p.Description)
	fmt.Fprintf(&sb, "## Test Cases:\n%s\n\n", formatTests(p.Tests))
	fmt.Fprintf(&sb, "## Current Code:\n```python\n%s\n```\n\n", code)
	sb.WriteString(`## Guidelines:
- Help the user understand the problem and guide them toward a solution
- Provide hints and explanations rather than complete solutions unless asked
- If sharing code, use markdown code blocks
- Be concise and focused on the coding task
- If the user's code has bugs, help them identify and fix the issues
- Remember: they only get ONE deployment attempt, so help them be confident before deploying
`)
	return sb.String()
}

// formatTests lists visible tests only; hidden ones are counted, never shown.
func formatTests(tests []domain.TestCase) string {
	lines := make([]string, 0, len(tests)+1)
	visible := 0
	for _, t := range tests {
		if t.IsHidden {
			continue
		}
		visible++
		lines = append(lines, fmt.Sprintf("Test %d: %s → %s", visible, t.InputExpression, t.ExpectedExpression))
	}
	if hidden := len(tests) - visible; hidden > 0 {
		lines = append(lines, fmt.Sprintf("(+ %d hidden tests)", hidden))
	}
	return strings.Join(lines, "\n")
}

func conversation(p *domain.Problem, req ChatRequest) []domain.ChatMessage {
	msgs := make([]domain.ChatMessage, 0, len(req.History)+3)
	msgs = append(msgs,
		domain.ChatMessage{Role: domain.RoleUser, Content: systemPrompt(p, req.Code) + ackRequest},
		domain.ChatMessage{Role: domain.RoleModel, Content: contextAck},
	)
	for _, m := range req.History {
		if m.Role != domain.RoleModel {
			m.Role = domain.RoleUser
		}
		msgs = append(msgs, m)
	}
	return append(msgs, domain.ChatMessage{Role: domain.RoleUser, Content: req.Message})
}

func completionPrompt(p *domain.Problem, before, after string) string {
	return fmt.Sprintf(`You are a code completion assistant. Complete the Python code at the cursor position.

## Problem Context: %s
%s

## Code before cursor:
`+"```python\n%s\n```"+`

## Code after cursor:
`+"```python\n%s\n```"+`

## Instructions:
- Provide ONLY the code that should be inserted at the cursor position
- Do not include any explanation, markdown formatting, or code fences
- The completion should logically continue from the code before the cursor
- Keep completions concise (1-3 lines typically)
- If the cursor is at the end of a line, complete that line or add the next logical line
`, p.Title, p.Description, before, after)
}

// stripFences removes a surrounding ``` block the model adds despite being told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines[1:], "\n")
}
