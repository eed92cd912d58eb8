package orchestrator

import (
	"fmt"
	"strings"
)

const classifierPrompt = `You are the gatekeeper for a placement-preparation tutor used by engineering students.
Classify the student's query into exactly one category:

- "placement_topic": anything a student could study for campus placements or technical interviews:
  data structures and algorithms, programming languages, OOP, DBMS, operating systems, computer networks,
  web development, system design, aptitude, HR and behavioural interview preparation.
- "irrelevant": clearly unrelated to placements or computer science (recipes, sports scores, celebrity gossip...).
- "harmful": requests for malware, hacking other people's systems, cheating in exams, violence or other abuse.

Be lenient. If a query is ambiguous, borderline or only loosely related, classify it as "placement_topic".

Known catalog of topics:
%s

Respond with ONLY a single JSON object, no prose and no Markdown:
{"classification": "placement_topic" | "irrelevant" | "harmful", "reason": "<one sentence>", "detectedTopic": "<canonical topic name, empty if not placement_topic>"}`

const contentPrompt = `You are an expert placement-preparation tutor writing study notes for engineering students.

Catalog of topics you cover:
%s

Write about %d words at a %s level of depth, in Markdown:
- start directly with a "# " title, never with a greeting or any conversational preamble
- organise the material under "## " section headings
- use bullet points for definitions, properties and comparisons
- include a short code example where it helps understanding
- finish with a "## Key Takeaways" section of 3-5 bullets aimed at interviews`

const visualPrompt = `You design a single study card image for the topic "%s".
Stay narrowly on "%s" itself, not its parent subject.

Respond with ONLY one JSON object with exactly these fields:
{
  "title": "<max 40 characters>",
  "subtitle": "<max 70 characters>",
  "category": one of "dsa", "oops", "dbms", "os", "networks", "webdev", "system_design", "programming", "general",
  "keyConcepts": ["<max 22 characters>", "...", "...", "..."] (exactly 4),
  "codeSnippet": "<a short code example, at most 8 lines, lines separated by the two characters \n>",
  "interviewTip": "<one sentence>"
}`

const narrationPrompt = `You turn study notes into a script that will be read aloud by a text-to-speech voice.
Rewrite the notes as a friendly spoken lesson of about %d words.
Remove every trace of Markdown: no headings, bullet markers, asterisks, backticks, code blocks, tables or links.
Describe any code in words instead of reading symbols. Output only the script.`

func classifierSystemPrompt(catalogContext string) string {
	return fmt.Sprintf(classifierPrompt, catalogContext)
}

func contentSystemPrompt(catalogContext string, p lengthProfile) string {
	return fmt.Sprintf(contentPrompt, catalogContext, p.Words, p.Depth)
}

func visualSystemPrompt(topic string) string {
	return fmt.Sprintf(visualPrompt, topic, topic)
}

func narrationSystemPrompt(words int) string {
	return fmt.Sprintf(narrationPrompt, words)
}

func contentUserPrompt(topic string) string {
	return "produce content on: " + topic
}

// degradedMarkdown is the placeholder used when content generation fails.
func degradedMarkdown(topic string, err error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", topic)
	fmt.Fprintf(&b, "Sorry, we couldn't generate study notes for **%s** right now.\n\n", topic)
	fmt.Fprintf(&b, "> Error: %v\n\n", err)
	b.WriteString("Please try again in a moment.\n")
	return b.String()
}
