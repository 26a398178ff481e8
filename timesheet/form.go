package timesheet

import "context"

// FormHandle is a loaded fillable document.
type FormHandle interface {
	// SetField writes text into the named field. It fails when the field
	// does not exist or cannot hold text.
	SetField(name, value string) error
	// Serialize returns the document with every written value applied.
	Serialize() ([]byte, error)
}

// FormLoader opens template bytes as a FormHandle.
type FormLoader interface {
	Load(ctx context.Context, data []byte) (FormHandle, error)
}
