package model

// AnswerValue holds one answer in whichever variant the question type uses
type AnswerValue struct {
	Text     string            `json:"text,omitempty" bson:"text,omitempty"`         // text, textarea, date
	Number   *float64          `json:"number,omitempty" bson:"number,omitempty"`     // number
	Option   string            `json:"option,omitempty" bson:"option,omitempty"`     // radio
	Options  []string          `json:"options,omitempty" bson:"options,omitempty"`   // checkbox
	Table    map[string]string `json:"table,omitempty" bson:"table,omitempty"`       // table cells
	FileRef  string            `json:"fileRef,omitempty" bson:"fileRef,omitempty"`   // uploaded file name
	VoiceRef string            `json:"voiceRef,omitempty" bson:"voiceRef,omitempty"` // recording id
}

// Empty reports whether no variant carries a value.
func (v AnswerValue) Empty() bool {
	return v.Text == "" && v.Number == nil && v.Option == "" && len(v.Options) == 0 &&
		len(v.Table) == 0 && v.FileRef == "" && v.VoiceRef == ""
}

// Answers maps question id to its current value
type Answers map[string]AnswerValue

// Has reports whether a non-empty answer exists for the question.
func (a Answers) Has(questionID string) bool {
	v, ok := a[questionID]
	return ok && !v.Empty()
}

// Clone returns a deep copy so stored answers never alias live session state.
func (a Answers) Clone() Answers {
	if a == nil {
		return nil
	}
	out := make(Answers, len(a))
	for id, v := range a {
		if v.Options != nil {
			opts := make([]string, len(v.Options))
			copy(opts, v.Options)
			v.Options = opts
		}
		if v.Table != nil {
			cells := make(map[string]string, len(v.Table))
			for k, cell := range v.Table {
				cells[k] = cell
			}
			v.Table = cells
		}
		if v.Number != nil {
			n := *v.Number
			v.Number = &n
		}
		out[id] = v
	}
	return out
}
