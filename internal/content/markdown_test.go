package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogPost_RenderHTML(t *testing.T) {
	post := BlogPost{
		ID: 1,
		Content: "# CI/CD for Web3\n\n" +
			"Some **bold** text.\n\n" +
			"| Tool | Use |\n|---|---|\n| Hardhat | tests |\n\n" +
			"<script>alert(1)</script>\n",
	}

	html, err := post.RenderHTML()
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, `<h1 id="`)
	assert.Contains(t, out, `>CI/CD for Web3</h1>`)
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, "<table>")
	assert.NotContains(t, out, "<script>")
}
