package openai

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/chidung091/hr-scanning-sub001/internal/scoring"
)

const systemPrompt = `You are an experienced technical recruiter evaluating a candidate's CV against a job description and a set of weighted criteria.
Return your answer STRICTLY as a single JSON object with this schema:
{
  "score": <number 1-10, weighted overall fit>,
  "strengths": ["<short strength>", ...],
  "weaknesses": ["<short weakness>", ...],
  "explanation": "<2-4 sentence justification>",
  "recommendation": "<one of: recommended, maybe, not_recommended>"
}
Do not include any text outside the JSON object.`

func buildUserPrompt(input scoring.Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Job title: %s\n\n", input.JobTitle)
	if input.JobRequirements != "" {
		fmt.Fprintf(&b, "Requirements:\n%s\n\n", input.JobRequirements)
	}
	if input.NiceToHave != "" {
		fmt.Fprintf(&b, "Nice to have:\n%s\n\n", input.NiceToHave)
	}

	if len(input.Criteria) > 0 {
		b.WriteString("Weighted evaluation criteria:\n")
		for _, criterion := range input.Criteria {
			fmt.Fprintf(&b, "- %s (weight %.2f)", criterion.Name, criterion.Weight)
			if criterion.Description != "" {
				fmt.Fprintf(&b, ": %s", criterion.Description)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(input.Answers) > 0 {
		b.WriteString("Questionnaire answers:\n")
		for _, key := range sortedKeys(input.Answers) {
			fmt.Fprintf(&b, "Q%s: %s\n", key, input.Answers[key])
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Candidate CV:\n%s\n", input.CVText)
	return b.String()
}

// sortedKeys orders question numbers numerically so Q10 follows Q9, not Q1.
// Non-numeric keys sort after the numeric ones.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aErr := strconv.Atoi(keys[i])
		b, bErr := strconv.Atoi(keys[j])
		switch {
		case aErr == nil && bErr == nil:
			return a < b
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}
