package postmarktx

import "errors"

var (
	// ErrInvalidConfig indicates required configuration is missing or malformed.
	ErrInvalidConfig = errors.New("postmarktx: invalid config")

	// ErrInvalidMessage indicates a message failed validation before dispatch.
	ErrInvalidMessage = errors.New("postmarktx: invalid message")

	// ErrSendFailed indicates the provider rejected or failed to deliver a batch.
	ErrSendFailed = errors.New("postmarktx: failed to send email")

	// ErrNoUnitOfWork is returned when a transaction-deferred send is requested
	// but no unit of work is present in the context.
	ErrNoUnitOfWork = errors.New("postmarktx: no unit of work in context")

	// ErrNoRenderer is returned by RenderEmail when the client was built
	// without a template renderer.
	ErrNoRenderer = errors.New("postmarktx: no template renderer configured")

	// ErrTemplateNotFound indicates the named template does not exist.
	ErrTemplateNotFound = errors.New("postmarktx: template not found")

	// ErrLayoutNotFound indicates the configured layout file does not exist.
	ErrLayoutNotFound = errors.New("postmarktx: layout not found")

	// ErrRenderFailed indicates template rendering failed.
	ErrRenderFailed = errors.New("postmarktx: failed to render template")

	// ErrInvalidFrontmatter indicates malformed YAML frontmatter in a template.
	ErrInvalidFrontmatter = errors.New("postmarktx: invalid frontmatter")
)
