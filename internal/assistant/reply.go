package assistant

import (
	"encoding/json"
	"fmt"
	"strings"
)

// annotation is the subset of a message annotation the citation rewrite needs.
// The SDK exposes annotations untyped, so they are re-decoded through JSON.
type annotation struct {
	Text         string `json:"text"`
	FileCitation *struct {
		FileID string `json:"file_id"`
	} `json:"file_citation"`
}

// rewriteCitations replaces inline citation markers with bracketed indices and
// appends a "Sources:" list resolved through fileName. Annotations that cannot
// be decoded or resolved are skipped; the reply text is always returned.
func rewriteCitations(reply string, rawAnnotations []any, fileName func(fileID string) (string, error)) string {
	var citations []string

	for index, raw := range rawAnnotations {
		blob, err := json.Marshal(raw)
		if err != nil {
			continue
		}
		var ann annotation
		if err := json.Unmarshal(blob, &ann); err != nil {
			continue
		}
		if ann.Text == "" || !strings.Contains(reply, ann.Text) {
			continue
		}

		reply = strings.ReplaceAll(reply, ann.Text, fmt.Sprintf("[%d]", index))

		if ann.FileCitation == nil {
			continue
		}
		name, err := fileName(ann.FileCitation.FileID)
		if err != nil {
			continue
		}
		citations = append(citations, fmt.Sprintf("[%d] %s", index, name))
	}

	if len(citations) > 0 {
		reply += "\n\nSources:\n" + strings.Join(citations, "\n")
	}
	return reply
}
