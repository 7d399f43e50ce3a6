package document

import "fmt"

// Context is the document representation the analysis tools operate over.
// Exactly one implementation is active per session: inline extracted text or
// a handle to a remotely uploaded file. It is shared read-only by all tools.
type Context interface {
	// DisplayName is the human-readable name of the source document.
	DisplayName() string
	// PromptSection renders the document for inclusion in a specialist prompt.
	PromptSection() string
}

// InlineText carries the plain text extracted from a local PDF.
type InlineText struct {
	Name string
	Text string
}

func (d InlineText) DisplayName() string { return d.Name }

func (d InlineText) PromptSection() string {
	return "Financial Report Text:\n---\n" + d.Text + "\n---"
}

// RemoteHandle references a file uploaded to the provider. ResourceName is
// the server-side identifier used for deletion; URI is what prompts reference.
type RemoteHandle struct {
	ResourceName string
	URI          string
	MIMEType     string
	Display      string
}

func (d RemoteHandle) DisplayName() string { return d.Display }

func (d RemoteHandle) PromptSection() string {
	return fmt.Sprintf(
		"The financial report %q has been uploaded and is available at %s (%s).\nAnswer using the contents of that uploaded file.",
		d.Display, d.URI, d.MIMEType)
}
