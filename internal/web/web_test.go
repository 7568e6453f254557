package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexTemplate(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "index.html", map[string]interface{}{
		"field":    "images",
		"accept":   ".jpg,.jpeg,.png,.webp",
		"maxFiles": 100,
	}))

	page := buf.String()
	assert.Contains(t, page, `action="/convert"`)
	assert.Contains(t, page, `name="images"`)
	assert.Contains(t, page, `accept=".jpg,.jpeg,.png,.webp"`)
	assert.Contains(t, page, "multiple")
	assert.Contains(t, page, "Up to 100 images")
}
