package ingest

// Kind classifies a FileDescriptor after boundary validation.
type Kind int

const (
	KindInvalid Kind = iota
	KindPath
	KindInline
)

// FileDescriptor is one caller-supplied file. Exactly one of Path/Content
// should be set; Content wins when both are present. Type, when set,
// overrides any inferred content type.
type FileDescriptor struct {
	Path    string `json:"path,omitempty"`
	Content string `json:"content,omitempty"`
	Name    string `json:"name,omitempty"`
	Type    string `json:"type,omitempty"`
}

// Kind reports how the descriptor will be processed.
func (d FileDescriptor) Kind() Kind {
	switch {
	case d.Content != "":
		return KindInline
	case d.Path != "":
		return KindPath
	default:
		return KindInvalid
	}
}
