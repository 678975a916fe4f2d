package models

// SubmitRequest is the body posted when answering the current question.
type SubmitRequest struct {
	AttemptID  string    `json:"attemptId" validate:"required"`
	QuestionID string    `json:"questionId" validate:"required"`
	Response   *Response `json:"response" validate:"required"`
}

// SubmitResult is the backend's authoritative verdict for one submission.
// When QuizCompleted is set the quiz reached a terminal state and
// NextQuestion is absent; otherwise NextQuestion carries the question the
// learner advances to on the next explicit continue.
type SubmitResult struct {
	Correct        bool               `json:"correct"`
	Explanation    string             `json:"explanation,omitempty"`
	QuizCompleted  bool               `json:"quizCompleted"`
	Status         QuizStatus         `json:"status"`
	QuestionIndex  int                `json:"questionIndex"`
	TotalQuestions int                `json:"totalQuestions"`
	CorrectCount   int                `json:"correctCount"`
	EarnedScore    int                `json:"earnedScore"`
	MaxScore       int                `json:"maxScore"`
	Hearts         LessonHeartsStatus `json:"hearts"`
	NextQuestion   *QuizQuestion      `json:"nextQuestion,omitempty"`
	Passed         *bool              `json:"passed,omitempty"`

	WrongQuestionIDs []string `json:"wrongQuestionIds,omitempty"`
}
