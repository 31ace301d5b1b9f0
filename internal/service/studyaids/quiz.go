package studyaids

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// QuizQuestion is one multiple-choice bar-exam question.
type QuizQuestion struct {
	Question           string   `json:"question"`
	Choices            []string `json:"choices"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
	Explanation        string   `json:"explanation"`
	Citation           string   `json:"citation"`
}

// ParseQuizReply extracts a quiz question from a model reply. Models are
// asked for bare JSON but sometimes wrap it in code fences or prose, so the
// parse is lenient: the first JSON object in the reply wins.
func ParseQuizReply(raw string) (*QuizQuestion, error) {
	payload := extractJSON(raw)
	if payload == "" {
		return nil, fmt.Errorf("no JSON object in reply")
	}

	parsed := gjson.Parse(payload)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("reply is not a JSON object")
	}

	question := parsed.Get("question").String()
	if question == "" {
		return nil, fmt.Errorf("missing question field")
	}

	choicesResult := parsed.Get("choices")
	if !choicesResult.IsArray() {
		return nil, fmt.Errorf("missing choices array")
	}
	choices := make([]string, 0, 4)
	for _, c := range choicesResult.Array() {
		choices = append(choices, c.String())
	}
	if len(choices) != 4 {
		return nil, fmt.Errorf("expected 4 choices, got %d", len(choices))
	}

	idxResult := parsed.Get("correct_answer_index")
	if !idxResult.Exists() {
		return nil, fmt.Errorf("missing correct_answer_index field")
	}
	idx := int(idxResult.Int())
	if idx < 0 || idx >= len(choices) {
		return nil, fmt.Errorf("correct_answer_index %d out of range", idx)
	}

	return &QuizQuestion{
		Question:           question,
		Choices:            choices,
		CorrectAnswerIndex: idx,
		Explanation:        parsed.Get("explanation").String(),
		Citation:           parsed.Get("citation").String(),
	}, nil
}

// extractJSON returns the first top-level JSON object in the reply, stripping
// any code fences or surrounding prose.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

// FallbackQuestion is the canned question substituted when generation fails
// or the reply cannot be parsed. It keeps the quiz UI in a consistent state.
func FallbackQuestion(subject string) *QuizQuestion {
	return &QuizQuestion{
		Question: fmt.Sprintf("Question generation for %s is temporarily unavailable. Which of the following should you do?", subject),
		Choices: []string{
			"Try generating the question again",
			"Assume the quiz is broken permanently",
			"Skip studying this subject",
			"Answer without reading the question",
		},
		CorrectAnswerIndex: 0,
		Explanation:        "The question service failed to respond. Retrying usually resolves transient generation errors.",
		Citation:           "",
	}
}
