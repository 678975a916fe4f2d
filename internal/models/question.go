package models

import (
	"encoding/json"
	"fmt"
	"regexp"
)

type QuestionKind string

const (
	MultipleChoice QuestionKind = "multiple_choice"
	TrueFalse      QuestionKind = "true_false"
	Cloze          QuestionKind = "cloze"
	WordBank       QuestionKind = "word_bank"
	Conversation   QuestionKind = "conversation"
	MatchPairs     QuestionKind = "match_pairs"
	ShortText      QuestionKind = "short_text"
)

// AllQuestionKinds lists every supported kind, in presentation order.
var AllQuestionKinds = []QuestionKind{
	MultipleChoice,
	TrueFalse,
	Cloze,
	WordBank,
	Conversation,
	MatchPairs,
	ShortText,
}

func (k QuestionKind) Valid() bool {
	for _, kind := range AllQuestionKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Choice is a selectable option: an answer choice, a word-bank token,
// a conversation reply or one side of a match pair.
type Choice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ConversationTurn is one exchange in a conversation question. Exactly one
// reply must be selected per turn.
type ConversationTurn struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Replies []Choice `json:"replies"`
}

// Per-kind payloads. The payload shape is fully determined by the question
// kind; no two kinds share a shape.

type ChoicePayload struct {
	Choices []Choice `json:"choices"`
}

type ClozePayload struct {
	// BlankOptions maps each {{blankId}} token in the question text to the
	// choices legal for that blank.
	BlankOptions map[string][]Choice `json:"blankOptions"`
}

type WordBankPayload struct {
	Tokens []Choice `json:"tokens"`
}

type ConversationPayload struct {
	Turns []ConversationTurn `json:"turns"`
}

type MatchPairsPayload struct {
	Left  []Choice `json:"left"`
	Right []Choice `json:"right"`
}

type ShortTextPayload struct {
	Placeholder string `json:"placeholder"`
	MinLength   int    `json:"minLength"`
	MaxLength   int    `json:"maxLength"`
}

// QuizQuestion is the tagged union delivered by the backend. Exactly one of
// the payload fields is populated, matching QuestionType.
type QuizQuestion struct {
	QuestionID   string       `json:"questionId"`
	QuestionType QuestionKind `json:"questionType"`
	QuestionText string       `json:"questionText"`

	Choice       *ChoicePayload       `json:"-"`
	Cloze        *ClozePayload        `json:"-"`
	WordBank     *WordBankPayload     `json:"-"`
	Conversation *ConversationPayload `json:"-"`
	MatchPairs   *MatchPairsPayload   `json:"-"`
	ShortText    *ShortTextPayload    `json:"-"`
}

// questionEnvelope is the wire form: common fields plus a raw payload that is
// decoded according to the type tag.
type questionEnvelope struct {
	QuestionID   string          `json:"questionId"`
	QuestionType QuestionKind    `json:"questionType"`
	QuestionText string          `json:"questionText"`
	Payload      json.RawMessage `json:"payload"`
}

func (q *QuizQuestion) UnmarshalJSON(data []byte) error {
	var env questionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	q.QuestionID = env.QuestionID
	q.QuestionType = env.QuestionType
	q.QuestionText = env.QuestionText

	if len(env.Payload) == 0 {
		return fmt.Errorf("question %s: missing payload", env.QuestionID)
	}

	switch env.QuestionType {
	case MultipleChoice, TrueFalse:
		q.Choice = &ChoicePayload{}
		return decodePayload(env, q.Choice)
	case Cloze:
		q.Cloze = &ClozePayload{}
		return decodePayload(env, q.Cloze)
	case WordBank:
		q.WordBank = &WordBankPayload{}
		return decodePayload(env, q.WordBank)
	case Conversation:
		q.Conversation = &ConversationPayload{}
		return decodePayload(env, q.Conversation)
	case MatchPairs:
		q.MatchPairs = &MatchPairsPayload{}
		return decodePayload(env, q.MatchPairs)
	case ShortText:
		q.ShortText = &ShortTextPayload{}
		return decodePayload(env, q.ShortText)
	default:
		return fmt.Errorf("question %s: unsupported question type %q", env.QuestionID, env.QuestionType)
	}
}

func decodePayload(env questionEnvelope, dest interface{}) error {
	if err := json.Unmarshal(env.Payload, dest); err != nil {
		return fmt.Errorf("question %s: invalid %s payload: %w", env.QuestionID, env.QuestionType, err)
	}
	return nil
}

func (q QuizQuestion) MarshalJSON() ([]byte, error) {
	var payload interface{}
	switch q.QuestionType {
	case MultipleChoice, TrueFalse:
		payload = q.Choice
	case Cloze:
		payload = q.Cloze
	case WordBank:
		payload = q.WordBank
	case Conversation:
		payload = q.Conversation
	case MatchPairs:
		payload = q.MatchPairs
	case ShortText:
		payload = q.ShortText
	default:
		return nil, fmt.Errorf("question %s: unsupported question type %q", q.QuestionID, q.QuestionType)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(questionEnvelope{
		QuestionID:   q.QuestionID,
		QuestionType: q.QuestionType,
		QuestionText: q.QuestionText,
		Payload:      raw,
	})
}

var blankTokenPattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// BlankIDs extracts the blank identifiers present in the current cloze
// template, in order of appearance. Completeness is always judged against
// the template, never against historically seen blank keys.
func (q *QuizQuestion) BlankIDs() []string {
	if q.QuestionType != Cloze {
		return nil
	}
	matches := blankTokenPattern.FindAllStringSubmatch(q.QuestionText, -1)
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m[1])
	}
	return ids
}
