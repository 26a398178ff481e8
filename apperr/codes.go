package apperr

// Input errors.
const (
	// ErrInvalidInput means one or more records or the name line failed validation.
	ErrInvalidInput = "INVALID_INPUT"

	// ErrInputUnreadable means the input file could not be read or decoded.
	ErrInputUnreadable = "INPUT_UNREADABLE"

	// ErrInputTooLarge means the input exceeds the configured size limit.
	ErrInputTooLarge = "INPUT_TOO_LARGE"
)

// Template errors.
const (
	// ErrTemplateFetch means the template could not be retrieved.
	ErrTemplateFetch = "TEMPLATE_FETCH_FAILED"

	// ErrTemplateLoad means the template bytes are not a valid PDF form.
	ErrTemplateLoad = "TEMPLATE_LOAD_FAILED"

	// ErrSerialize means the filled form could not be written out.
	ErrSerialize = "SERIALIZE_FAILED"
)

// Per-field and output errors.
const (
	// ErrFieldWrite means a single form field could not be written.
	ErrFieldWrite = "FIELD_WRITE_FAILED"

	// ErrUnsupportedFormat means the requested output format is unknown or disabled.
	ErrUnsupportedFormat = "UNSUPPORTED_FORMAT"

	// ErrRasterize means the first page could not be rendered to an image.
	ErrRasterize = "RASTERIZE_FAILED"
)

// Configuration errors.
const (
	// ErrProfileInvalid means the YAML profile could not be read or parsed.
	ErrProfileInvalid = "PROFILE_INVALID"
)

// Messages shown to the user, kept identical across the CLI and MCP surfaces.
const (
	MsgInvalidInput  = "Invalid input file format. Please check your file."
	MsgTemplateFetch = "Failed to load the PDF from the server. Please try again later."
	MsgTemplateLoad  = "Failed to load the PDF document."
)
