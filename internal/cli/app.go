package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/lumilearn/quiz-runner/internal/board"
	"github.com/lumilearn/quiz-runner/internal/config"
	"github.com/lumilearn/quiz-runner/internal/gateway"
	"github.com/lumilearn/quiz-runner/internal/hearts"
	"github.com/lumilearn/quiz-runner/internal/models"
	"github.com/lumilearn/quiz-runner/internal/session"
)

const heartsPollInterval = time.Minute

var errQuit = errors.New("quit")

// App is the interactive terminal front-end for one lesson quiz session.
type App struct {
	cfg    *config.Config
	runner *session.Runner
	in     *bufio.Reader
	out    io.Writer
	logger *slog.Logger
}

// Run plays a lesson quiz session on the terminal until the learner finishes
// or quits.
func Run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, logger *slog.Logger) error {
	client := gateway.NewClient(cfg.BackendURL, cfg.HTTPTimeout)

	broadcaster := hearts.NewBroadcaster(logger)
	defer broadcaster.Close()

	cancelSub, err := broadcaster.Subscribe(func(status models.LessonHeartsStatus) {
		logger.Debug("Hearts changed", "hearts_remaining", status.HeartsRemaining)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to hearts updates: %w", err)
	}
	defer cancelSub()

	runner := session.NewRunner(cfg.LessonID, client, broadcaster, logger)
	defer runner.Close()

	pollCtx, cancelPoll := context.WithCancel(ctx)
	defer cancelPoll()
	poller := hearts.NewPoller(func(ctx context.Context) (models.LessonHeartsStatus, error) {
		state, err := client.FetchLessonQuizState(ctx, cfg.LessonID)
		if err != nil {
			return models.LessonHeartsStatus{}, err
		}
		return state.Hearts, nil
	}, broadcaster, heartsPollInterval, logger)
	go poller.Run(pollCtx)

	app := &App{
		cfg:    cfg,
		runner: runner,
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger,
	}

	if err := runner.Load(ctx); err != nil {
		return err
	}

	err = app.loop(ctx)
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
		fmt.Fprintln(out, "\nBye!")
		return nil
	}
	return err
}

func (a *App) loop(ctx context.Context) error {
	for {
		state := a.runner.State()
		if state == nil {
			return session.ErrNotLoaded
		}

		switch {
		case state.Status == models.QuizBlockedHearts:
			if err := a.showBlocked(ctx, state); err != nil {
				return err
			}
		case state.Status.Terminal():
			if err := a.showSummary(ctx, state); err != nil {
				return err
			}
		case state.CanAnswer && state.CurrentQuestion != nil:
			if err := a.playQuestion(ctx, state); err != nil {
				return err
			}
		default:
			return fmt.Errorf("quiz is in an unplayable state: %s", state.Status)
		}
	}
}

// playQuestion renders the current question, collects a complete response,
// submits it and shows the verdict.
func (a *App) playQuestion(ctx context.Context, state *models.LessonQuizState) error {
	question := state.CurrentQuestion

	fmt.Fprintf(a.out, "\n[%d/%d]  Hearts: %d\n", state.QuestionIndex+1, state.TotalQuestions, state.Hearts.HeartsRemaining)
	fmt.Fprintln(a.out, question.QuestionText)

	draft, err := a.collectResponse(state)
	if err != nil {
		return err
	}

	a.runner.SetDraft(draft)
	feedback, err := a.runner.Submit(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Submission failed: %v\n", err)
		return nil
	}

	if feedback.Correct {
		fmt.Fprintln(a.out, "\nCorrect!")
	} else {
		fmt.Fprintln(a.out, "\nWrong.")
	}
	if feedback.Explanation != "" {
		fmt.Fprintln(a.out, feedback.Explanation)
	}

	fmt.Fprint(a.out, "Press Enter to continue... ")
	if _, err := a.readLine(); err != nil {
		return err
	}
	return a.runner.Continue()
}

func (a *App) collectResponse(state *models.LessonQuizState) (*models.Response, error) {
	question := state.CurrentQuestion
	switch question.QuestionType {
	case models.MultipleChoice, models.TrueFalse:
		return a.collectChoice(question)
	case models.Cloze:
		return a.collectCloze(question)
	case models.WordBank:
		return a.collectWordBank(question)
	case models.Conversation:
		return a.collectConversation(question)
	case models.MatchPairs:
		return a.collectMatchPairs(question, state.AttemptID)
	case models.ShortText:
		return a.collectShortText(question)
	default:
		return nil, fmt.Errorf("unsupported question type: %s", question.QuestionType)
	}
}

func (a *App) collectChoice(question *models.QuizQuestion) (*models.Response, error) {
	b, err := board.NewChoiceBoard(question)
	if err != nil {
		return nil, err
	}

	choices := b.Choices()
	for i, choice := range choices {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, choice.Text)
	}

	idx, err := a.pickNumber("Your answer", len(choices))
	if err != nil {
		return nil, err
	}
	b.Select(choices[idx].ID)
	return b.Draft(), nil
}

func (a *App) collectCloze(question *models.QuizQuestion) (*models.Response, error) {
	b, err := board.NewClozeBoard(question)
	if err != nil {
		return nil, err
	}

	for _, blankID := range question.BlankIDs() {
		options := b.Options()
		fmt.Fprintf(a.out, "\nBlank %q:\n", blankID)
		for i, chip := range options {
			fmt.Fprintf(a.out, "  %d. %s\n", i+1, chip.Text)
		}

		for {
			idx, err := a.pickNumber("Pick an option", len(options))
			if err != nil {
				return nil, err
			}
			b.SelectOption(options[idx].Key)
			b.TapBlank(blankID)
			if msg := b.Error(); msg != "" {
				fmt.Fprintf(a.out, "  %s\n", msg)
				continue
			}
			break
		}
	}
	return b.Draft(), nil
}

func (a *App) collectWordBank(question *models.QuizQuestion) (*models.Response, error) {
	b, err := board.NewWordBankBoard(question)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(a.out, "Pick the tokens in order:")
	for len(b.Available()) > 0 {
		available := b.Available()
		for i, token := range available {
			fmt.Fprintf(a.out, "  %d. %s\n", i+1, token.Text)
		}

		idx, err := a.pickNumber("Next token", len(available))
		if err != nil {
			return nil, err
		}
		b.Select(available[idx].ID)
		fmt.Fprintf(a.out, "So far: %s\n", a.sentenceSoFar(question, b.Selected()))
	}
	return b.Draft(), nil
}

func (a *App) sentenceSoFar(question *models.QuizQuestion, tokenIDs []string) string {
	texts := make(map[string]string, len(question.WordBank.Tokens))
	for _, token := range question.WordBank.Tokens {
		texts[token.ID] = token.Text
	}
	words := make([]string, 0, len(tokenIDs))
	for _, id := range tokenIDs {
		words = append(words, texts[id])
	}
	return strings.Join(words, " ")
}

func (a *App) collectConversation(question *models.QuizQuestion) (*models.Response, error) {
	b, err := board.NewConversationBoard(question)
	if err != nil {
		return nil, err
	}

	for _, turn := range b.Turns() {
		fmt.Fprintf(a.out, "\n> %s\n", turn.Prompt)
		for i, reply := range turn.Replies {
			fmt.Fprintf(a.out, "  %d. %s\n", i+1, reply.Text)
		}

		idx, err := a.pickNumber("Your reply", len(turn.Replies))
		if err != nil {
			return nil, err
		}
		b.SelectReply(turn.ID, turn.Replies[idx].ID)
	}
	return b.Draft(), nil
}

func (a *App) collectMatchPairs(question *models.QuizQuestion, seed string) (*models.Response, error) {
	b, err := board.NewMatchBoard(question, seed)
	if err != nil {
		return nil, err
	}

	left := b.Left()
	right := b.Right()
	for b.PairCount() < len(left) {
		fmt.Fprintln(a.out)
		for i, item := range left {
			mark := " "
			if _, ok := b.Pair(item.ID); ok {
				mark = "*"
			}
			fmt.Fprintf(a.out, "  %s %d. %s\n", mark, i+1, item.Text)
		}

		leftIdx, err := a.pickNumber("Left item", len(left))
		if err != nil {
			return nil, err
		}
		for i, item := range right {
			fmt.Fprintf(a.out, "  %d. %s\n", i+1, item.Text)
		}
		rightIdx, err := a.pickNumber("Matches with", len(right))
		if err != nil {
			return nil, err
		}

		b.SelectLeft(left[leftIdx].ID)
		b.SelectRight(right[rightIdx].ID)
	}
	return b.Draft(), nil
}

func (a *App) collectShortText(question *models.QuizQuestion) (*models.Response, error) {
	b, err := board.NewShortTextBoard(question)
	if err != nil {
		return nil, err
	}

	prompt := "Your answer"
	if b.Placeholder() != "" {
		prompt = b.Placeholder()
	}

	for {
		fmt.Fprintf(a.out, "%s: ", prompt)
		line, err := a.readLine()
		if err != nil {
			return nil, err
		}
		b.SetText(line)
		if draft := b.Draft(); strings.TrimSpace(draft.Text) != "" {
			return draft, nil
		}
		fmt.Fprintln(a.out, "Please type an answer.")
	}
}

// showSummary renders the terminal screen for a finished quiz and handles
// the restart choices.
func (a *App) showSummary(ctx context.Context, state *models.LessonQuizState) error {
	summary := a.runner.Summary()
	if summary == nil {
		// Loaded into an already finished quiz; rebuild the numbers from the
		// state so the screen still renders.
		summary = &models.QuizSummary{
			TotalQuestions:   state.TotalQuestions,
			CorrectCount:     state.CorrectCount,
			EarnedScore:      state.EarnedScore,
			MaxScore:         state.MaxScore,
			Passed:           state.Status == models.QuizPassed,
			WrongQuestionIDs: state.WrongQuestionIDs,
		}
	}

	fmt.Fprintln(a.out)
	if summary.Passed {
		fmt.Fprintln(a.out, "=== Lesson passed! ===")
	} else {
		fmt.Fprintln(a.out, "=== Quiz failed ===")
	}
	fmt.Fprintf(a.out, "Score: %d/%d  Accuracy: %d%%\n", summary.EarnedScore, summary.MaxScore, summary.Accuracy())

	if summary.Passed {
		fmt.Fprintln(a.out, "  1. Continue")
		fmt.Fprintln(a.out, "  2. Quit")
		choice, err := a.pickNumber("Choose", 2)
		if err != nil {
			return err
		}
		if choice == 0 {
			return a.showProgress(ctx)
		}
		return errQuit
	}

	options := []string{"Try the full quiz again"}
	actions := []models.RestartMode{models.RestartFull}
	if len(summary.WrongQuestionIDs) > 0 {
		options = append([]string{fmt.Sprintf("Redo the %d wrong questions", len(summary.WrongQuestionIDs))}, options...)
		actions = append([]models.RestartMode{models.RestartWrongOnly}, actions...)
	}
	options = append(options, "Leave")

	if !state.CanRestart {
		fmt.Fprintln(a.out, "Out of hearts; come back after a refill.")
		return errQuit
	}

	for i, option := range options {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, option)
	}
	choice, err := a.pickNumber("Choose", len(options))
	if err != nil {
		return err
	}
	if choice >= len(actions) {
		return errQuit
	}

	if err := a.runner.Restart(ctx, actions[choice]); err != nil {
		fmt.Fprintf(a.out, "Restart failed: %v\n", err)
	}
	return nil
}

func (a *App) showBlocked(ctx context.Context, state *models.LessonQuizState) error {
	fmt.Fprintln(a.out, "\nYou're out of hearts.")
	if refill := state.Hearts.RefillTime(); !refill.IsZero() {
		fmt.Fprintf(a.out, "Next heart at %s.\n", refill.Local().Format(time.Kitchen))
	}
	fmt.Fprintln(a.out, "  1. Check again")
	fmt.Fprintln(a.out, "  2. Quit")

	choice, err := a.pickNumber("Choose", 2)
	if err != nil {
		return err
	}
	if choice != 0 {
		return errQuit
	}
	return a.runner.Load(ctx)
}

func (a *App) showProgress(ctx context.Context) error {
	detail, err := a.runner.Progress(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\nLesson %s: completed=%v best score=%d xp=%d\n",
		detail.LessonID, detail.Completed, detail.BestScore, detail.XPEarned)
	return errQuit
}

func (a *App) pickNumber(prompt string, count int) (int, error) {
	for {
		fmt.Fprintf(a.out, "%s [1-%d, q to quit]: ", prompt, count)
		line, err := a.readLine()
		if err != nil {
			return 0, err
		}
		if strings.EqualFold(line, "q") {
			return 0, errQuit
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= count {
			return n - 1, nil
		}
		fmt.Fprintf(a.out, "Please enter a number between 1 and %d.\n", count)
	}
}

func (a *App) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
