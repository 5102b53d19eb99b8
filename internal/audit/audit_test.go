package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditor_SaveJSON(t *testing.T) {
	auditDir := t.TempDir()
	auditor := NewAuditor(auditDir)

	payload := map[string]any{
		"doi":   "10.1000/audit.1",
		"title": "Payload under audit",
	}

	filename, err := auditor.SaveJSON("json_feed", payload)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "json_feed_"))
	assert.True(t, strings.HasSuffix(filename, ".json"))

	// The file holds the payload back.
	data, err := os.ReadFile(filepath.Join(auditDir, filename))
	require.NoError(t, err)

	var restored map[string]any
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, "10.1000/audit.1", restored["doi"])
}

func TestAuditor_SaveJSON_CreatesDirectory(t *testing.T) {
	auditDir := filepath.Join(t.TempDir(), "nested", "audit")
	auditor := NewAuditor(auditDir)

	_, err := auditor.SaveJSON("csv_file", []string{"payload"})
	require.NoError(t, err)

	info, err := os.Stat(auditDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestAuditor_SaveJSON_UniqueFilenames(t *testing.T) {
	auditor := NewAuditor(t.TempDir())

	first, err := auditor.SaveJSON("json_feed", "one")
	require.NoError(t, err)
	second, err := auditor.SaveJSON("json_feed", "two")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
