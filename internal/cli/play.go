package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"element-quiz/internal/app"
	"element-quiz/internal/domain"
	"element-quiz/internal/quiz"
	"github.com/spf13/cobra"
)

// NewPlayCmd runs a quiz in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		mode       string
		element    int
		kinds      []string
		categories []string
		length     int
		userID     string
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req, err := playRequest(userID, mode, element, kinds, categories, length)
			if err != nil {
				return err
			}
			cfg, log, err := loadConfig(*configPath, os.Stderr)
			if err != nil {
				return err
			}
			d, err := buildService(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer d.Close()
			return playQuiz(ctx, d.service, req, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(domain.ModeMemorization), "memorization, category-test or big-game")
	cmd.Flags().IntVar(&element, "element", 1, "atomic number of the element to memorize")
	cmd.Flags().StringSliceVar(&kinds, "kind", nil, "question kinds to ask (default: all)")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "element categories for category-test")
	cmd.Flags().IntVar(&length, "length", 0, "number of questions (0 uses the mode default)")
	cmd.Flags().StringVar(&userID, "user", "local", "user id results are recorded under")
	return cmd
}

func playRequest(userID, rawMode string, element int, rawKinds, categories []string, length int) (app.StartRequest, error) {
	mode, err := domain.ParseMode(rawMode)
	if err != nil {
		return app.StartRequest{}, fmt.Errorf("%w: %q", err, rawMode)
	}
	kinds := make([]quiz.Kind, 0, len(rawKinds))
	for _, raw := range rawKinds {
		kind, err := quiz.ParseKind(raw)
		if err != nil {
			return app.StartRequest{}, err
		}
		kinds = append(kinds, kind)
	}
	return app.StartRequest{
		UserID:     userID,
		Mode:       mode,
		Element:    element,
		Kinds:      kinds,
		Categories: categories,
		Length:     length,
	}, nil
}

// playQuiz drives one session over a line-oriented terminal. Options are
// numbered from 1; end of input abandons the session.
func playQuiz(ctx context.Context, service *app.QuizService, req app.StartRequest, in io.Reader, out io.Writer) error {
	snap, err := service.Start(ctx, req)
	if err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)

	for snap.State != quiz.StateScore {
		fmt.Fprintf(out, "\n[%d/%d] %s  %s\n", snap.Index+1, snap.Total, snap.Symbol, snap.Prompt)
		for i, opt := range snap.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
		}

		choice, ok := readChoice(scanner, out, len(snap.Options))
		if !ok {
			service.Abandon(ctx, snap.SessionID)
			fmt.Fprintln(out, "\nquiz abandoned")
			return scanner.Err()
		}
		res, err := service.Answer(ctx, snap.SessionID, snap.Options[choice-1])
		if err != nil {
			return err
		}
		if res.Correct {
			fmt.Fprintln(out, "Correct!")
		} else {
			fmt.Fprintf(out, "Wrong, the answer is %s\n", res.CorrectAnswer)
		}

		if snap, err = service.Advance(ctx, snap.SessionID); err != nil {
			return err
		}
	}

	result, err := service.Result(ctx, snap.SessionID)
	if err != nil {
		return err
	}
	service.Abandon(ctx, snap.SessionID)

	fmt.Fprintf(out, "\nScore: %d/%d\n", result.Correct, result.Total)
	if result.Mode == domain.ModeMemorization {
		if result.Learned {
			fmt.Fprintln(out, "Element learned!")
		} else {
			fmt.Fprintf(out, "Keep practicing: %s\n", strings.Join(result.Missed, ", "))
		}
	}
	return nil
}

func readChoice(scanner *bufio.Scanner, out io.Writer, count int) (int, bool) {
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return 0, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err == nil && n >= 1 && n <= count {
			return n, true
		}
		fmt.Fprintf(out, "enter a number between 1 and %d\n", count)
	}
}
