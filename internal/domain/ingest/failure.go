package ingest

import "errors"

// Kind classifies a pipeline failure. Downstream stages branch on the kind,
// never on message text.
type Kind string

const (
	KindNoInput            Kind = "no_input"
	KindUnsupportedType    Kind = "unsupported_type"
	KindFetchError         Kind = "fetch_error"
	KindExtractionError    Kind = "extraction_error"
	KindNoTextDetected     Kind = "no_text_detected"
	KindSummarizationError Kind = "summarization_error"
	KindCanceled           Kind = "canceled"
)

// Failure is the single error type extractors are allowed to return. Library
// faults never cross the extractor boundary unwrapped.
type Failure struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return f.Message + ": " + f.Err.Error()
	}
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// NewFailure builds a Failure with an optional underlying cause.
func NewFailure(kind Kind, message string, err error) *Failure {
	return &Failure{Kind: kind, Message: message, Err: err}
}

// IsKind reports whether err carries the given failure kind.
func IsKind(err error, kind Kind) bool {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Kind == kind
	}
	return false
}

// KindOf returns the failure kind carried by err. Foreign errors classify as
// extraction errors so that no caller ever sees an unclassified fault.
func KindOf(err error) Kind {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Kind
	}
	return KindExtractionError
}
