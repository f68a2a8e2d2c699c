package model

// QuestionType defines the input kind of a question
type QuestionType string

const (
	QuestionTypeText     QuestionType = "text"
	QuestionTypeTextarea QuestionType = "textarea"
	QuestionTypeNumber   QuestionType = "number"
	QuestionTypeRadio    QuestionType = "radio"    // single choice from Options
	QuestionTypeCheckbox QuestionType = "checkbox" // multi choice from Options
	QuestionTypeDate     QuestionType = "date"
	QuestionTypeTable    QuestionType = "table" // tabular cell-key -> value
	QuestionTypeFile     QuestionType = "file"  // file name reference
	QuestionTypeVoice    QuestionType = "voice" // recording id reference
)

// Question is one entry of a survey's ordered question list.
//
// Conditional children carry ParentID + TriggerValues: the child is shown only
// while the parent's current answer matches one of the trigger values. Children
// follow their parent in the ordered list and are evaluated top-down.
type Question struct {
	ID            string       `json:"id" bson:"id"`
	Type          QuestionType `json:"type" bson:"type"`
	Prompt        string       `json:"prompt" bson:"prompt"`
	Required      bool         `json:"required" bson:"required"`
	Options       []string     `json:"options,omitempty" bson:"options,omitempty"`
	ParentID      string       `json:"parentId,omitempty" bson:"parentId,omitempty"`
	TriggerValues []string     `json:"triggerValues,omitempty" bson:"triggerValues,omitempty"`
}

// Conditional reports whether the question is a conditional child.
func (q *Question) Conditional() bool {
	return q.ParentID != ""
}

// TriggeredBy reports whether the parent answer reveals this child.
// Radio parents match on the selected option, checkbox parents on any
// selected option.
func (q *Question) TriggeredBy(parent AnswerValue) bool {
	for _, trigger := range q.TriggerValues {
		if parent.Option == trigger {
			return true
		}
		for _, opt := range parent.Options {
			if opt == trigger {
				return true
			}
		}
	}
	return false
}
