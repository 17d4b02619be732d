package assistant

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteCitations(t *testing.T) {
	reply := "Go is compiled【4:0†source】 and garbage-collected【4:1†source】."
	annotations := []any{
		map[string]any{
			"text":          "【4:0†source】",
			"file_citation": map[string]any{"file_id": "file-1"},
		},
		map[string]any{
			"text":          "【4:1†source】",
			"file_citation": map[string]any{"file_id": "file-2"},
		},
	}
	names := map[string]string{"file-1": "intro.pdf", "file-2": "gc.md"}

	got := rewriteCitations(reply, annotations, func(fileID string) (string, error) {
		return names[fileID], nil
	})

	want := "Go is compiled[0] and garbage-collected[1].\n\nSources:\n[0] intro.pdf\n[1] gc.md"
	assert.Equal(t, want, got)
}

func TestRewriteCitations_NoAnnotations(t *testing.T) {
	got := rewriteCitations("plain reply", nil, func(string) (string, error) {
		t.Fatal("file lookup must not be called")
		return "", nil
	})
	assert.Equal(t, "plain reply", got)
}

func TestRewriteCitations_LookupFailure(t *testing.T) {
	reply := "cited【1†src】 text"
	annotations := []any{
		map[string]any{
			"text":          "【1†src】",
			"file_citation": map[string]any{"file_id": "file-gone"},
		},
	}

	got := rewriteCitations(reply, annotations, func(string) (string, error) {
		return "", fmt.Errorf("404")
	})

	// the marker is still rewritten, but no source list appears
	assert.Equal(t, "cited[0] text", got)
}

func TestRewriteCitations_MarkerNotInReply(t *testing.T) {
	annotations := []any{
		map[string]any{
			"text":          "【9†stale】",
			"file_citation": map[string]any{"file_id": "file-1"},
		},
	}

	got := rewriteCitations("unrelated reply", annotations, func(string) (string, error) {
		t.Fatal("file lookup must not be called")
		return "", nil
	})
	assert.Equal(t, "unrelated reply", got)
}
