package augment

// FailureKind classifies why an augmentation attempt produced no text.
type FailureKind string

const (
	FailureNone      FailureKind = ""
	FailureTimeout   FailureKind = "timeout"
	FailureTransport FailureKind = "transport"
	FailureMalformed FailureKind = "malformed"
)

// Outcome is success(Text) or failure(Failure, Err).
type Outcome struct {
	Text    string
	Failure FailureKind
	Err     error
}

func Success(text string) Outcome {
	return Outcome{Text: text}
}

func Failed(kind FailureKind, err error) Outcome {
	return Outcome{Failure: kind, Err: err}
}

func (o Outcome) OK() bool {
	return o.Failure == FailureNone
}

// Label is the metrics/log label for the outcome.
func (o Outcome) Label() string {
	if o.OK() {
		return "success"
	}
	return string(o.Failure)
}
