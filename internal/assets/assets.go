package assets

// Names of the built-in assets.
const (
	// DefaultStyleName is the built-in stylesheet.
	DefaultStyleName = "default"
	// IndexTemplateName renders a chapter with content.
	IndexTemplateName = "index"
	// BlankTemplateName renders the placeholder page of a chapter without content.
	BlankTemplateName = "blank"
)
