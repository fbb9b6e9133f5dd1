package authoring

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write self-contained quiz questions for language and general knowledge practice.

Rules:
- Every question must be answerable without any source text.
- Use only the formats listed in the schema.
- mcq_single: exactly one entry in "answers" and three distractors.
- mcq_multiple and list_pick: every correct option in "answers", wrong ones in "distractors".
- word_fill: "sentence_parts" has one more element than "answers"; each answer fills the gap between two parts.
- fill_blanks_dropdown: as word_fill, plus one option list per blank in "options_for_blanks" that contains the correct answer.
- order_phrase: "answers" holds the phrase chunks in the correct order.
- categorization_multiple: list the categories and assign every item to one of them.
- Leave fields a format does not use as empty arrays.
- Do not repeat any question from the "already written" list.`

// buildUserMessage constructs the request text for one batch.
func buildUserMessage(input Input, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	if input.Kind != "" {
		fmt.Fprintf(&b, "Format: %s only\n", input.Kind)
	} else {
		b.WriteString("Format: a mix of the available formats\n")
	}
	fmt.Fprintf(&b, "Number of questions: %d\n", input.count(cfg))

	b.WriteString("\nAlready written:\n")
	b.WriteString(buildDedup(input.Existing, cfg.MaxPriorQuestions))
	return b.String()
}

// buildDedup formats existing prompts for the request, keeping the most
// recent max. Returns "None" when there are none.
func buildDedup(prompts []string, max int) string {
	if len(prompts) == 0 {
		return "None"
	}
	if max > 0 && len(prompts) > max {
		prompts = prompts[len(prompts)-max:]
	}

	var b strings.Builder
	for i, p := range prompts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return strings.TrimRight(b.String(), "\n")
}
