package compose

import (
	"fmt"

	"github.com/calebmartin/inkwell/internal/rotation"
)

// FallbackBody produces a stand-in post body when generation fails, so
// the pipeline still writes a file and the rotation is not wasted. The
// error note makes the placeholder easy to find and rewrite by hand.
func FallbackBody(topic rotation.Topic, genErr error) string {
	return fmt.Sprintf(`This post about **%s** is a placeholder.

%s

> Automatic generation failed for this topic (%v). Replace this body with
> real content, or delete the file to let a later rotation pick the topic
> up again.
`, topic.Title, topic.About, genErr)
}
