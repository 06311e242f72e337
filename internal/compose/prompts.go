package compose

import (
	"fmt"
	"strings"

	"github.com/calebmartin/inkwell/internal/rotation"
)

// buildPostPrompt creates the prompt for generating a post body.
func buildPostPrompt(topic rotation.Topic) string {
	tags := "general software development"
	if len(topic.Tags) > 0 {
		tags = strings.Join(topic.Tags, ", ")
	}

	return fmt.Sprintf(`You are a technical blog writer with a casual, clear writing style. Write a blog post titled "%s".

What the post should cover:
%s

Style guidelines:
- Casual, conversational tone but still informative and clear
- Include practical code examples where they illustrate a point
- Use plain markdown: headings, fenced code blocks, short paragraphs
- Keep it engaging and developer-friendly
- Write as if you're sharing knowledge with a fellow developer

Related tags: %s

Write only the post body in markdown. Do not include a title heading, YAML frontmatter, or any explanation of what you wrote.`,
		topic.Title,
		topic.About,
		tags)
}
