package domain

import "fmt"

// Coordinates locates a square on the map.
type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// QuestionKind tells which option list a QuestionContainer carries.
type QuestionKind int

const (
	StringQuestion QuestionKind = iota
	CoordinatesQuestion
)

// QuestionContainer is one question of the ask/answer protocol, answered by
// an index into its options.
type QuestionContainer struct {
	Kind        QuestionKind
	Question    string
	Options     []string
	Coordinates []Coordinates
}

// NewStringQuestion builds a string-choice question.
func NewStringQuestion(question string, options []string) QuestionContainer {
	return QuestionContainer{Kind: StringQuestion, Question: question, Options: append([]string(nil), options...)}
}

// NewCoordinatesQuestion builds a coordinate-choice question.
func NewCoordinatesQuestion(question string, coords []Coordinates) QuestionContainer {
	return QuestionContainer{Kind: CoordinatesQuestion, Question: question, Coordinates: append([]Coordinates(nil), coords...)}
}

// Len is the number of valid answers.
func (q QuestionContainer) Len() int {
	if q.Kind == CoordinatesQuestion {
		return len(q.Coordinates)
	}
	return len(q.Options)
}

// Valid reports whether choice indexes one of the options.
func (q QuestionContainer) Valid(choice int) bool {
	return choice >= 0 && choice < q.Len()
}

// IndexOf returns the option index of c, or -1.
func (q QuestionContainer) IndexOf(c Coordinates) int {
	for i, o := range q.Coordinates {
		if o == c {
			return i
		}
	}
	return -1
}
