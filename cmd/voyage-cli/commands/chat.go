// README: Interactive planning dialogue in the terminal.
package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"voyage/internal/ai"
	"voyage/internal/config"
	"voyage/internal/modules/dialogue"
	"voyage/internal/modules/imagesearch"
	"voyage/internal/modules/itinerary"
	"voyage/internal/types"
)

var ChatCmd = &cobra.Command{
	Use:     "chat",
	Aliases: []string{"c"},
	Short:   "Plan a trip by chatting with the assistant",
	Long: `Starts a planning dialogue against the configured provider
(VOYAGE_AI_PROVIDER). Pick a listed option by number or type free text.
Type "quit" to leave.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		key := cfg.AI.GeminiKey
		if cfg.AI.Provider == "openai" {
			key = cfg.AI.OpenAIKey
		}
		provider, err := ai.NewProvider(ctx, cfg.AI.Provider, key, ai.Options{
			ChatModel:    cfg.AI.ChatModel,
			PlanModel:    cfg.AI.PlanModel,
			HistoryLimit: cfg.AI.HistoryLimit,
		})
		if err != nil {
			return err
		}
		defer provider.Close()

		var searcher itinerary.ImageSearcher
		if cfg.Images.MapsKey != "" {
			places, err := imagesearch.NewPlacesSearcher(cfg.Images.MapsKey, cfg.Images.PhotoBaseURL, cfg.Images.MaxWidth)
			if err != nil {
				return err
			}
			searcher = places
		}

		driver := dialogue.NewDriver(provider, itinerary.NewEnricher(searcher, cfg.Images.Concurrency), dialogue.Config{
			ChatTimeout:   cfg.AI.ChatTimeout,
			PlanTimeout:   cfg.AI.PlanTimeout,
			EnrichTimeout: cfg.Images.Timeout,
		}, nil)
		return runChat(ctx, driver, cmd.InOrStdin(), cmd.OutOrStdout(), Format)
	},
}

// runChat drives the dialogue until an itinerary is produced, the input
// ends, or the user types quit.
func runChat(ctx context.Context, driver *dialogue.Driver, in io.Reader, out io.Writer, format string) error {
	scanner := bufio.NewScanner(in)
	widget, _ := dialogue.WidgetFor(types.UINone, dialogue.Preferences{})
	printWidget(out, widget)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "quit") || strings.EqualFold(line, "exit") {
			return nil
		}
		text := pickOption(widget, line)

		if driver.IsFinal() {
			fmt.Fprintln(out, "Generating your itinerary...")
		}
		outcome, err := driver.Send(ctx, text)
		if err != nil {
			if errors.Is(err, dialogue.ErrItineraryFailed) || errors.Is(err, dialogue.ErrGenerationTimeout) {
				fmt.Fprintf(out, "%v\nChoose the option again to retry.\n", err)
				continue
			}
			return err
		}

		if outcome.Final {
			return render(out, format, outcome.Itinerary)
		}
		fmt.Fprintln(out, outcome.Message.Content)
		widget, _ = dialogue.WidgetFor(outcome.Message.UI, dialogue.Extract(driver.Messages()))
		printWidget(out, widget)
	}
}

func printWidget(out io.Writer, w *dialogue.Widget) {
	if w == nil {
		return
	}
	if w.Title != "" {
		fmt.Fprintf(out, "%s\n", w.Title)
	}
	if w.Kind == dialogue.WidgetCounter {
		fmt.Fprintf(out, "  (enter a number from %d to %d)\n", w.Min, w.Max)
		return
	}
	for i, opt := range w.Options {
		if opt.Description != "" {
			fmt.Fprintf(out, "  %d. %s - %s\n", i+1, opt.Title, opt.Description)
		} else {
			fmt.Fprintf(out, "  %d. %s\n", i+1, opt.Title)
		}
	}
}

// pickOption maps a numbered choice (or a day count for the counter) to the
// value the widget would send. Anything else is passed through as typed.
func pickOption(w *dialogue.Widget, line string) string {
	if w == nil {
		return line
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return line
	}
	if w.Kind == dialogue.WidgetCounter {
		if n >= w.Min && n <= w.Max {
			return dialogue.DurationValue(n)
		}
		return line
	}
	if n >= 1 && n <= len(w.Options) {
		return w.Options[n-1].Value
	}
	return line
}
