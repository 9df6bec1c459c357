package postmarktx_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/postmarktx"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("renders template data to html", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"boo.md": &fstest.MapFile{Data: []byte("{{.msg}}")},
		}
		r := postmarktx.NewRenderer(fsys)

		res, err := r.Render("boo.md", map[string]any{"msg": "Boo"})
		require.NoError(t, err)
		assert.Equal(t, "<p>Boo</p>\n", res.HTML)
		assert.Equal(t, "Boo", res.Text)
	})

	t.Run("frontmatter subject is extracted", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"welcome.md": &fstest.MapFile{Data: []byte(
				"---\nsubject: Welcome aboard\ntag: welcome\n---\nHello **{{.Name}}**",
			)},
		}
		r := postmarktx.NewRenderer(fsys)

		res, err := r.Render("welcome.md", map[string]any{"Name": "Ada"})
		require.NoError(t, err)
		assert.Equal(t, "Welcome aboard", res.Subject)
		assert.Equal(t, "welcome", res.Metadata["tag"])
		assert.Equal(t, "<p>Hello <strong>Ada</strong></p>\n", res.HTML)
		assert.Equal(t, "Hello **Ada**", res.Text)
	})

	t.Run("layout wraps rendered content", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"boo.md":            &fstest.MapFile{Data: []byte("{{.msg}}")},
			"layouts/base.html": &fstest.MapFile{Data: []byte("<html><body>{{.Content}}</body></html>")},
		}
		r := postmarktx.NewRendererWithConfig(fsys, postmarktx.RendererConfig{Layout: "base.html"})

		res, err := r.Render("boo.md", map[string]any{"msg": "Boo"})
		require.NoError(t, err)
		assert.Equal(t, "<html><body><p>Boo</p>\n</body></html>", res.HTML)
	})

	t.Run("missing template", func(t *testing.T) {
		t.Parallel()

		r := postmarktx.NewRenderer(fstest.MapFS{})
		_, err := r.Render("nope.md", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, postmarktx.ErrTemplateNotFound)
	})

	t.Run("missing layout", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"boo.md": &fstest.MapFile{Data: []byte("Boo")},
		}
		r := postmarktx.NewRendererWithConfig(fsys, postmarktx.RendererConfig{Layout: "base.html"})

		_, err := r.Render("boo.md", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, postmarktx.ErrLayoutNotFound)
	})

	t.Run("execution error propagates", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"bad.md": &fstest.MapFile{Data: []byte(`{{call .missing}}`)},
		}
		r := postmarktx.NewRenderer(fsys)

		_, err := r.Render("bad.md", map[string]any{})
		require.Error(t, err)
		assert.ErrorIs(t, err, postmarktx.ErrRenderFailed)
	})

	t.Run("malformed frontmatter", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"bad.md": &fstest.MapFile{Data: []byte("---\nsubject: [unclosed\n---\nBody")},
		}
		r := postmarktx.NewRenderer(fsys)

		_, err := r.Render("bad.md", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, postmarktx.ErrRenderFailed)
	})

	t.Run("repeated render reuses the parsed template", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"boo.md": &fstest.MapFile{Data: []byte("{{.msg}}")},
		}
		r := postmarktx.NewRenderer(fsys)

		first, err := r.Render("boo.md", map[string]any{"msg": "One"})
		require.NoError(t, err)
		second, err := r.Render("boo.md", map[string]any{"msg": "Two"})
		require.NoError(t, err)

		assert.Equal(t, "<p>One</p>\n", first.HTML)
		assert.Equal(t, "<p>Two</p>\n", second.HTML)
	})
}

func TestClient_RenderEmail(t *testing.T) {
	t.Parallel()

	newRenderClient := func(t *testing.T, fsys fstest.MapFS) *postmarktx.Client {
		t.Helper()
		client, err := postmarktx.New(
			postmarktx.Config{ServerToken: "test-server-token"},
			postmarktx.WithSender(&recordingSender{}),
			postmarktx.WithRenderer(postmarktx.NewRenderer(fsys)),
		)
		require.NoError(t, err)
		return client
	}

	t.Run("builds message from rendered template", func(t *testing.T) {
		t.Parallel()

		client := newRenderClient(t, fstest.MapFS{
			"boo.md": &fstest.MapFile{Data: []byte("{{.msg}}")},
		})

		msg, err := client.RenderEmail(
			"a@b.com", []string{"b@c.com"}, "Subj", "boo.md", map[string]any{"msg": "Boo"},
		)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", msg.From)
		assert.Equal(t, []string{"b@c.com"}, msg.To)
		assert.Equal(t, "Subj", msg.Subject)
		assert.Equal(t, "<p>Boo</p>", msg.HTMLBody)
		assert.Equal(t, "Boo", msg.TextBody)
	})

	t.Run("empty subject falls back to frontmatter", func(t *testing.T) {
		t.Parallel()

		client := newRenderClient(t, fstest.MapFS{
			"welcome.md": &fstest.MapFile{Data: []byte("---\nsubject: From Template\n---\nHi")},
		})

		msg, err := client.RenderEmail(
			"a@b.com", []string{"b@c.com"}, "", "welcome.md", nil,
		)
		require.NoError(t, err)
		assert.Equal(t, "From Template", msg.Subject)
	})

	t.Run("render failure propagates unchanged", func(t *testing.T) {
		t.Parallel()

		client := newRenderClient(t, fstest.MapFS{})

		_, err := client.RenderEmail("a@b.com", []string{"b@c.com"}, "Subj", "nope.md", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, postmarktx.ErrTemplateNotFound)
	})

	t.Run("no renderer configured", func(t *testing.T) {
		t.Parallel()

		client, err := postmarktx.New(
			postmarktx.Config{ServerToken: "test-server-token"},
			postmarktx.WithSender(&recordingSender{}),
		)
		require.NoError(t, err)

		_, err = client.RenderEmail("a@b.com", []string{"b@c.com"}, "Subj", "boo.md", nil)
		assert.ErrorIs(t, err, postmarktx.ErrNoRenderer)
	})
}
