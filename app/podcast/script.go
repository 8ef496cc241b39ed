package podcast

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// transitions are cycled between stories to keep the script sounding like a
// presenter rather than a list.
var transitions = map[string][]string{
	"professional": {
		"Moving on to our next story.",
		"In other developments.",
		"Turning to the next headline.",
		"Our next story.",
	},
	"casual": {
		"Okay, next up.",
		"And here's another one for you.",
		"Moving right along.",
		"Now, get this.",
	},
	"energetic": {
		"But wait, there's more!",
		"Next up, and this is a big one.",
		"And we're not done yet!",
		"Here comes the next story.",
	},
}

var titleCaser = cases.Title(language.English)

type scriptItem struct {
	Headline string
	Summary  string
}

// buildScript assembles the spoken podcast text: an intro naming the
// category, one segment per article joined by style-dependent transitions,
// and a short outro.
func buildScript(category, style string, items []scriptItem) string {
	phrases, ok := transitions[style]
	if !ok {
		phrases = transitions["professional"]
	}

	topic := "Top Stories"
	if category != "" && !strings.EqualFold(category, "general") {
		topic = titleCaser.String(category)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Welcome to your personalized news briefing. Today we're covering %s.\n\n", topic)

	for i, item := range items {
		if i > 0 {
			b.WriteString(phrases[(i-1)%len(phrases)])
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s. %s\n\n", strings.TrimRight(item.Headline, "."), item.Summary)
	}

	b.WriteString("That's all for this briefing. Thanks for listening, and see you next time.")

	return b.String()
}

// chunkScript splits a script into pieces no longer than limit, preferring
// sentence boundaries. A single sentence longer than the limit is split
// mid-sentence as a last resort.
func chunkScript(script string, limit int) []string {
	script = strings.TrimSpace(script)
	if script == "" {
		return nil
	}
	if len(script) <= limit {
		return []string{script}
	}

	var chunks []string
	var current strings.Builder

	for _, sentence := range splitSentences(script) {
		for len(sentence) > limit {
			if current.Len() > 0 {
				chunks = append(chunks, strings.TrimSpace(current.String()))
				current.Reset()
			}
			chunks = append(chunks, strings.TrimSpace(sentence[:limit]))
			sentence = sentence[limit:]
		}

		if current.Len()+len(sentence)+1 > limit && current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
	}

	if strings.TrimSpace(current.String()) != "" {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	return chunks
}

func splitSentences(text string) []string {
	var sentences []string
	start := 0

	for i, r := range text {
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			s := strings.TrimSpace(text[start : i+1])
			if s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}
