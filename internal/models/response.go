package models

// Response is the learner's answer for a single question, in the shape the
// backend expects for the question's kind. It is built up locally as a draft
// and only submitted once complete.
type Response struct {
	// multiple_choice
	ChoiceID string `json:"choiceId,omitempty"`
	// true_false
	Value *bool `json:"value,omitempty"`
	// cloze: blankId -> choiceId, and conversation: turnId -> replyId
	Answers map[string]string `json:"answers,omitempty"`
	// match_pairs: leftId -> rightId
	Pairs map[string]string `json:"pairs,omitempty"`
	// word_bank: token ids in selected order
	TokenOrder []string `json:"tokenOrder,omitempty"`
	// short_text
	Text string `json:"text,omitempty"`
}

// Clone returns a deep copy so a staged draft can never alias live state.
func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}
	out := &Response{
		ChoiceID: r.ChoiceID,
		Text:     r.Text,
	}
	if r.Value != nil {
		v := *r.Value
		out.Value = &v
	}
	if r.Answers != nil {
		out.Answers = make(map[string]string, len(r.Answers))
		for k, v := range r.Answers {
			out.Answers[k] = v
		}
	}
	if r.Pairs != nil {
		out.Pairs = make(map[string]string, len(r.Pairs))
		for k, v := range r.Pairs {
			out.Pairs[k] = v
		}
	}
	if r.TokenOrder != nil {
		out.TokenOrder = append([]string(nil), r.TokenOrder...)
	}
	return out
}
