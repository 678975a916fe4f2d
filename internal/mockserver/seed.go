package mockserver

import "github.com/lumilearn/quiz-runner/internal/models"

func boolPtr(v bool) *bool { return &v }

// SeedLessons returns the bundled sample content: one lesson exercising
// every question kind, used when no workbook or database is configured.
func SeedLessons() []*LessonContent {
	return []*LessonContent{
		{
			LessonID: "lesson-basics-1",
			Title:    "Everyday Greetings",
			Questions: []*QuestionContent{
				{
					Question: &models.QuizQuestion{
						QuestionID:   "q-mc-1",
						QuestionType: models.MultipleChoice,
						QuestionText: "Which word is a greeting?",
						Choice: &models.ChoicePayload{Choices: []models.Choice{
							{ID: "c1", Text: "Hello"},
							{ID: "c2", Text: "Table"},
							{ID: "c3", Text: "Seven"},
							{ID: "c4", Text: "Green"},
						}},
					},
					Answer:      &AnswerKey{ChoiceID: "c1"},
					Points:      10,
					Explanation: "\"Hello\" is the standard greeting.",
				},
				{
					Question: &models.QuizQuestion{
						QuestionID:   "q-tf-1",
						QuestionType: models.TrueFalse,
						QuestionText: "\"Good night\" is used when meeting someone in the morning.",
						Choice: &models.ChoicePayload{Choices: []models.Choice{
							{ID: "true", Text: "True"},
							{ID: "false", Text: "False"},
						}},
					},
					Answer:      &AnswerKey{Value: boolPtr(false)},
					Points:      10,
					Explanation: "\"Good night\" is a farewell, not a morning greeting.",
				},
				{
					Question: &models.QuizQuestion{
						QuestionID:   "q-cloze-1",
						QuestionType: models.Cloze,
						QuestionText: "{{b1}} morning! How {{b2}} you?",
						Cloze: &models.ClozePayload{BlankOptions: map[string][]models.Choice{
							"b1": {
								{ID: "b1o1", Text: "Good"},
								{ID: "b1o2", Text: "Fast"},
							},
							"b2": {
								{ID: "b2o1", Text: "are"},
								{ID: "b2o2", Text: "good"},
							},
						}},
					},
					Answer: &AnswerKey{ClozeTexts: map[string]string{
						"b1": "Good",
						"b2": "are",
					}},
					Points: 15,
				},
				{
					Question: &models.QuizQuestion{
						QuestionID:   "q-wb-1",
						QuestionType: models.WordBank,
						QuestionText: "Build the sentence: \"Nice to meet you\"",
						WordBank: &models.WordBankPayload{Tokens: []models.Choice{
							{ID: "t1", Text: "Nice"},
							{ID: "t2", Text: "to"},
							{ID: "t3", Text: "meet"},
							{ID: "t4", Text: "you"},
						}},
					},
					Answer: &AnswerKey{TokenOrder: []string{"t1", "t2", "t3", "t4"}},
					Points: 15,
				},
				{
					Question: &models.QuizQuestion{
						QuestionID:   "q-conv-1",
						QuestionType: models.Conversation,
						QuestionText: "Pick the best reply for each line.",
						Conversation: &models.ConversationPayload{Turns: []models.ConversationTurn{
							{
								ID:     "turn1",
								Prompt: "Hi, how are you?",
								Replies: []models.Choice{
									{ID: "r1", Text: "Fine, thanks!"},
									{ID: "r2", Text: "It is Tuesday."},
								},
							},
							{
								ID:     "turn2",
								Prompt: "See you tomorrow!",
								Replies: []models.Choice{
									{ID: "r3", Text: "Goodbye!"},
									{ID: "r4", Text: "Two coffees, please."},
								},
							},
						}},
					},
					Answer: &AnswerKey{TurnReplies: map[string]string{
						"turn1": "r1",
						"turn2": "r3",
					}},
					Points: 20,
				},
				{
					Question: &models.QuizQuestion{
						QuestionID:   "q-mp-1",
						QuestionType: models.MatchPairs,
						QuestionText: "Match the greeting to the time of day.",
						MatchPairs: &models.MatchPairsPayload{
							Left: []models.Choice{
								{ID: "l1", Text: "Good morning"},
								{ID: "l2", Text: "Good afternoon"},
								{ID: "l3", Text: "Good night"},
							},
							Right: []models.Choice{
								{ID: "r1", Text: "Before noon"},
								{ID: "r2", Text: "After noon"},
								{ID: "r3", Text: "Bedtime"},
							},
						},
					},
					Answer: &AnswerKey{Pairs: map[string]string{
						"l1": "r1",
						"l2": "r2",
						"l3": "r3",
					}},
					Points: 20,
				},
				{
					Question: &models.QuizQuestion{
						QuestionID:   "q-st-1",
						QuestionType: models.ShortText,
						QuestionText: "Type the one-word greeting you say when answering the phone.",
						ShortText: &models.ShortTextPayload{
							Placeholder: "Your answer",
							MinLength:   2,
							MaxLength:   20,
						},
					},
					Answer: &AnswerKey{AcceptedTexts: []string{"Hello", "Hi"}},
					Points: 10,
				},
			},
		},
	}
}
