package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKeyFormat(t *testing.T) {
	key := ObjectKey("attachments", "report.pdf")

	require.True(t, strings.HasPrefix(key, "attachments/"))
	assert.True(t, strings.HasSuffix(key, "-report.pdf"))

	// prefix/<millis>-<uuid 5 частей>-<имя>
	parts := strings.Split(strings.TrimPrefix(key, "attachments/"), "-")
	require.GreaterOrEqual(t, len(parts), 7)
}

func TestObjectKeySanitizesWhitespace(t *testing.T) {
	key := ObjectKey("attachments", "годовой отчёт  2026.pdf")

	assert.NotContains(t, key, " ")
	assert.True(t, strings.HasSuffix(key, "годовой_отчёт_2026.pdf"))
}

func TestObjectKeyUnique(t *testing.T) {
	a := ObjectKey("attachments", "a.txt")
	b := ObjectKey("attachments", "a.txt")
	assert.NotEqual(t, a, b)
}
