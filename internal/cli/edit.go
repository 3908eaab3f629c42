package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/theplant/datefilter"
	"github.com/theplant/datefilter/internal/repl"
	"github.com/theplant/datefilter/mbql"
	"github.com/theplant/datefilter/session"
)

func (a *app) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [clause]",
		Short: "Edit a filter interactively",
		Long: `Start an editing session from the default filter, or from an existing clause,
and build the clause with "commit". Type "help" for the list of commands.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			e := session.New(s.column,
				session.WithLogger(a.log),
				session.WithMetrics(session.NewMetrics(reg)),
			)
			if len(args) == 1 {
				c, err := mbql.Parse([]byte(args[0]))
				if err != nil {
					return err
				}
				if err := e.Open(c); err != nil {
					return err
				}
			} else {
				e.Start(nil)
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "\033[31m>\033[0m ",
				AutoComplete:    completer(),
				InterruptPrompt: "^C",
				EOFPrompt:       "quit",

				HistorySearchFold:   true,
				FuncFilterInputRune: filterInput,
				Stdin:               io.NopCloser(cmd.InOrStdin()),
				Stdout:              cmd.OutOrStdout(),
			})
			if err != nil {
				return errors.Wrap(err, "start readline")
			}
			defer rl.Close()

			err = runREPL(rl, e, cmd.OutOrStdout())
			logMetrics(a.log, reg)
			return err
		},
	}
}

type lineReader interface {
	Readline() (string, error)
}

func runREPL(lines lineReader, e *session.Editor, w io.Writer) error {
	printDraft(w, e)
	for {
		line, err := lines.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read line")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		cmd, err := repl.Parse(line)
		if err != nil {
			fmt.Fprintln(w, "error:", err)
			continue
		}

		switch cmd.Kind {
		case repl.KindQuit:
			return nil
		case repl.KindHelp:
			fmt.Fprintln(w, repl.Help)
		case repl.KindShow:
			printDraft(w, e)
			fmt.Fprintln(w, "state:", e.State())
		case repl.KindCommit:
			c, err := e.Commit()
			if err != nil {
				fmt.Fprintln(w, "error:", err)
				continue
			}
			data, err := c.MarshalJSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(w, string(data))
		case repl.KindDiscard:
			e.Discard()
			e.Start(nil)
			fmt.Fprintln(w, "discarded")
			printDraft(w, e)
		default:
			if err := cmd.Apply(e); err != nil && !errors.Is(err, datefilter.ErrInvalidOffsetUnit) {
				fmt.Fprintln(w, "error:", err)
				continue
			}
			printDraft(w, e)
		}
	}
}

func printDraft(w io.Writer, e *session.Editor) {
	if err := e.Validate(); err != nil {
		fmt.Fprintf(w, "%s (invalid: %s)\n", e.DisplayName(), err)
		return
	}
	fmt.Fprintln(w, e.DisplayName())
}

func completer() *readline.PrefixCompleter {
	units := lo.Map(datefilter.Units, func(u datefilter.Unit, _ int) readline.PrefixCompleterInterface {
		return readline.PcItem(string(u))
	})
	directions := lo.Map(datefilter.Directions, func(d datefilter.Direction, _ int) readline.PrefixCompleterInterface {
		return readline.PcItem(string(d))
	})
	shortcuts := lo.Map(datefilter.Shortcuts(), func(s datefilter.Shortcut, _ int) readline.PrefixCompleterInterface {
		return readline.PcItem(s.Name)
	})

	return readline.NewPrefixCompleter(
		readline.PcItem(string(repl.KindValue)),
		readline.PcItem(string(repl.KindUnit), units...),
		readline.PcItem(string(repl.KindDirection), directions...),
		readline.PcItem(string(repl.KindCurrent)),
		readline.PcItem(string(repl.KindOffset)),
		readline.PcItem(string(repl.KindOffsetValue)),
		readline.PcItem(string(repl.KindOffsetUnit), units...),
		readline.PcItem(string(repl.KindNoOffset)),
		readline.PcItem(string(repl.KindShortcut), shortcuts...),
		readline.PcItem(string(repl.KindShow)),
		readline.PcItem(string(repl.KindCommit)),
		readline.PcItem(string(repl.KindDiscard)),
		readline.PcItem(string(repl.KindHelp)),
		readline.PcItem(string(repl.KindQuit)),
	)
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func logMetrics(log zerolog.Logger, g prometheus.Gatherer) {
	families, err := g.Gather()
	if err != nil {
		log.Error().Err(err).Msg("gather session metrics")
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			ev := log.Debug().Str("metric", mf.GetName()).Float64("value", m.GetCounter().GetValue())
			for _, l := range m.GetLabel() {
				ev = ev.Str(l.GetName(), l.GetValue())
			}
			ev.Msg("session metric")
		}
	}
}
