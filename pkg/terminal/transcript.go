package terminal

// Kind classifies a transcript line for rendering.
type Kind int

const (
	// KindText is ordinary informational output.
	KindText Kind = iota
	// KindError marks a failure line.
	KindError
	// KindCommand echoes a submitted command behind its prompt.
	KindCommand
)

// Line is one entry in the terminal transcript.
type Line struct {
	Kind   Kind
	Prompt string // set for KindCommand only
	Text   string
}

// String renders the line as plain text.
func (l Line) String() string {
	if l.Kind == KindCommand {
		return l.Prompt + l.Text
	}
	return l.Text
}

func text(s string) Line  { return Line{Kind: KindText, Text: s} }
func errln(s string) Line { return Line{Kind: KindError, Text: s} }
