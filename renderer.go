package postmarktx

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"path"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
)

// Renderer turns markdown email templates with YAML frontmatter into HTML
// and plain-text bodies. Templates are identified by filename on an fs.FS,
// so they can live on disk in development and in an embed.FS in production.
type Renderer struct {
	fsys fs.FS
	cfg  RendererConfig
	md   goldmark.Markdown

	// Parsed structure is cached; rendered output never is.
	mu        sync.RWMutex
	templates map[string]*cachedTemplate
	layouts   map[string]*htmltemplate.Template
}

type cachedTemplate struct {
	meta *emailTemplate
	tmpl *texttemplate.Template
}

// RendererConfig configures template lookup.
type RendererConfig struct {
	TemplateDir string // Default: "."
	LayoutDir   string // Default: "layouts"
	Layout      string // Optional HTML layout file; empty renders bare markdown HTML
}

// NewRenderer creates a renderer with default config.
func NewRenderer(fsys fs.FS) *Renderer {
	return NewRendererWithConfig(fsys, RendererConfig{})
}

// NewRendererWithConfig creates a renderer with custom config.
func NewRendererWithConfig(fsys fs.FS, cfg RendererConfig) *Renderer {
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = "."
	}
	if cfg.LayoutDir == "" {
		cfg.LayoutDir = "layouts"
	}
	return &Renderer{
		fsys:      fsys,
		cfg:       cfg,
		md:        goldmark.New(),
		templates: make(map[string]*cachedTemplate),
		layouts:   make(map[string]*htmltemplate.Template),
	}
}

// RenderResult is a rendered template: final HTML, the plain-text body
// (processed markdown before HTML conversion), the frontmatter subject and
// the full metadata map.
type RenderResult struct {
	Metadata map[string]any
	Subject  string
	HTML     string
	Text     string
}

// Render executes the named template with data, converts the result from
// markdown to HTML and, when a layout is configured, wraps it.
// Failures wrap ErrTemplateNotFound, ErrLayoutNotFound or ErrRenderFailed
// and propagate to the caller unchanged.
func (r *Renderer) Render(name string, data any) (*RenderResult, error) {
	cached, err := r.getTemplate(name)
	if err != nil {
		return nil, err
	}

	var markdown bytes.Buffer
	if err := cached.tmpl.Execute(&markdown, data); err != nil {
		return nil, fmt.Errorf("%w: failed to execute template %s: %v", ErrRenderFailed, name, err)
	}

	var html bytes.Buffer
	if err := r.md.Convert(markdown.Bytes(), &html); err != nil {
		return nil, fmt.Errorf("%w: failed to convert markdown: %v", ErrRenderFailed, err)
	}

	finalHTML := html.String()
	if r.cfg.Layout != "" {
		layout, err := r.getLayout(r.cfg.Layout)
		if err != nil {
			return nil, err
		}
		var wrapped bytes.Buffer
		err = layout.Execute(&wrapped, map[string]any{
			"Content":  htmltemplate.HTML(finalHTML),
			"Metadata": cached.meta.Metadata,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: failed to execute layout: %v", ErrRenderFailed, err)
		}
		finalHTML = wrapped.String()
	}

	return &RenderResult{
		Metadata: cached.meta.Metadata,
		Subject:  cached.meta.Subject(),
		HTML:     finalHTML,
		Text:     markdown.String(),
	}, nil
}

func (r *Renderer) getTemplate(name string) (*cachedTemplate, error) {
	r.mu.RLock()
	cached, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.templates[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fsys, path.Join(r.cfg.TemplateDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}

	parsed, err := parseEmailTemplate(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	tmpl, err := texttemplate.New(name).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse template body: %v", ErrRenderFailed, err)
	}

	cached = &cachedTemplate{meta: parsed, tmpl: tmpl}
	r.templates[name] = cached
	return cached, nil
}

func (r *Renderer) getLayout(name string) (*htmltemplate.Template, error) {
	r.mu.RLock()
	layout, ok := r.layouts[name]
	r.mu.RUnlock()
	if ok {
		return layout, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if layout, ok := r.layouts[name]; ok {
		return layout, nil
	}

	content, err := fs.ReadFile(r.fsys, path.Join(r.cfg.LayoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}

	layout, err = htmltemplate.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse layout: %v", ErrRenderFailed, err)
	}

	r.layouts[name] = layout
	return layout, nil
}
