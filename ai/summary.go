package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"checkitsa/risk"
)

const summarySystemPrompt = `You are the explanation writer for CheckItSA, a scam-check tool for South African consumers.

RULES:
- Explain the result in 2-3 short sentences of plain language
- Only use the findings provided; never invent details about the target
- If the verdict is dangerous or high risk, end with one concrete safety step
- No markdown, no emojis, no preamble`

const summaryUserPrompt = `Check type: %s
Target: %s
Score: %d/100
Verdict: %s
Findings:
%s

Write the consumer-facing explanation.`

// Summarize produces the human-readable message for a finished check. When
// the client is nil (no API key configured) or the call fails, it falls
// back to a locally built message so the endpoint never depends on the AI
// being up.
func Summarize(ctx context.Context, c *GeminiClient, kind, target string, score int, verdict string, signals []risk.Signal) string {
	if c == nil {
		return fallbackMessage(target, score, verdict, signals)
	}

	var findings []string
	for _, s := range signals {
		if !s.Triggered {
			continue
		}
		line := fmt.Sprintf("- %s (weight %+d)", s.Name, s.Weight)
		if s.Evidence != "" {
			line += ": " + s.Evidence
		}
		findings = append(findings, line)
	}
	if len(findings) == 0 {
		findings = []string{"- no risk indicators triggered"}
	}

	prompt := fmt.Sprintf(summaryUserPrompt, kind, target, score, verdict, strings.Join(findings, "\n"))
	text, err := c.Generate(ctx, summarySystemPrompt, prompt)
	if err != nil {
		log.Printf("[ai] summary failed, using fallback: %v", err)
		return fallbackMessage(target, score, verdict, signals)
	}
	return strings.TrimSpace(text)
}

func fallbackMessage(target string, score int, verdict string, signals []risk.Signal) string {
	var names []string
	for _, s := range signals {
		if s.Triggered && s.Weight > 0 {
			names = append(names, strings.ReplaceAll(s.Name, "_", " "))
		}
	}
	if len(names) == 0 {
		return fmt.Sprintf("%s scored %d/100 (%s). No risk indicators were found.", target, score, verdict)
	}
	return fmt.Sprintf("%s scored %d/100 (%s). Concerns: %s.", target, score, verdict, strings.Join(names, ", "))
}
