package entity

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeFailure
	OutcomeWarning
)

func (k OutcomeKind) Marker() string {
	switch k {
	case OutcomeFailure:
		return "❌"
	case OutcomeWarning:
		return "⚠️"
	default:
		return "✅"
	}
}

// Outcome is the textual result of a tool action. Err carries the soft error
// class (ErrIndexNotFound, ErrStaleElement, ...) when the action had no effect.
type Outcome struct {
	Kind    OutcomeKind
	Message string
	Err     error
}

func Success(msg string) Outcome { return Outcome{Kind: OutcomeSuccess, Message: msg} }

func Warning(err error, msg string) Outcome {
	return Outcome{Kind: OutcomeWarning, Message: msg, Err: err}
}

func Failure(err error, msg string) Outcome {
	return Outcome{Kind: OutcomeFailure, Message: msg, Err: err}
}

func (o Outcome) String() string {
	return o.Kind.Marker() + " " + o.Message
}

// Completion is the terminal signal returned by the done tool.
type Completion struct {
	Done             bool   `json:"done"`
	Success          bool   `json:"success"`
	ExtractedContent string `json:"extracted_content"`
}
