package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTML(t *testing.T) {
	t.Run("Strips event handlers", func(t *testing.T) {
		out := string(HTML(`<img src=x onerror=alert(1)>hi`))
		assert.NotContains(t, out, "onerror")
		assert.NotContains(t, out, "alert(1)")
		assert.Contains(t, out, "hi")
	})

	t.Run("Strips scripts", func(t *testing.T) {
		out := string(HTML(`<p>hola</p><script>alert(1)</script>`))
		assert.Equal(t, "<p>hola</p>", out)
	})

	t.Run("Strips javascript links", func(t *testing.T) {
		out := string(HTML(`<a href="javascript:alert(1)">x</a>`))
		assert.NotContains(t, out, "javascript:")
	})

	t.Run("Keeps formatting", func(t *testing.T) {
		out := string(HTML(`<p><strong>Importante</strong> <em>nota</em></p>`))
		assert.Equal(t, `<p><strong>Importante</strong> <em>nota</em></p>`, out)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "", string(HTML("")))
	})
}

func TestText(t *testing.T) {
	assert.Equal(t, "hi", Text(`<img src=x onerror=alert(1)>hi`))
	assert.Equal(t, "Hola mundo", Text(`<b>Hola</b> mundo`))
}
