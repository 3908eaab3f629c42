package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/theplant/datefilter"
	"github.com/theplant/datefilter/mbql"
)

func (a *app) describeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe [shortcut | clause]",
		Short: "Print the display name, clause and range of a filter",
		Long: `Describe a relative date filter.

The filter is read from a shortcut name ("Previous 30 days"), from a clause
(["time-interval",["field","Created At",null],-30,"day"]) or, without
arguments, from the flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}

			name, f, err := a.filterFromArgs(cmd, args)
			if err != nil {
				return err
			}
			a.log.Debug().Str("filter", f.Description()).Msg("describing filter")

			return NewOutputWriter(cmd.OutOrStdout(), s.output, s.now).Write([]Row{newRow(name, f, s)})
		},
	}

	cmd.Flags().String("direction", string(datefilter.DirectionPrevious), "previous, next or current")
	cmd.Flags().String("unit", string(datefilter.UnitDay), "minute, hour, day, week, month, quarter or year")
	cmd.Flags().Int("value", 30, "Number of units")
	cmd.Flags().Bool("include-current", false, "Include the current period")
	cmd.Flags().Int("offset-value", 0, "Start the range this many offset units away (default 7 when only --offset-unit is set)")
	cmd.Flags().String("offset-unit", "", "Unit of the offset (default: --unit)")
	return cmd
}

func (a *app) filterFromArgs(cmd *cobra.Command, args []string) (string, datefilter.Relative, error) {
	if len(args) > 0 {
		arg := strings.TrimSpace(strings.Join(args, " "))
		if strings.HasPrefix(arg, "[") {
			c, err := mbql.Parse([]byte(arg))
			if err != nil {
				return "", datefilter.Relative{}, err
			}
			f, err := datefilter.FromClause(c)
			return "", f, err
		}
		s, ok := datefilter.FindShortcut(arg)
		if !ok {
			return "", datefilter.Relative{}, errors.Errorf("unknown shortcut %q", arg)
		}
		return s.Name, s.Filter, nil
	}

	flags := cmd.Flags()
	direction, err := datefilter.ParseDirection(lookup(flags.GetString("direction")))
	if err != nil {
		return "", datefilter.Relative{}, err
	}
	unit, err := datefilter.ParseUnit(lookup(flags.GetString("unit")))
	if err != nil {
		return "", datefilter.Relative{}, err
	}
	value, _ := flags.GetInt("value")

	f := datefilter.Default().SetUnit(unit).SetValue(value).SetDirection(direction)
	if direction == datefilter.DirectionCurrent {
		return "", f, nil
	}
	if include, _ := flags.GetBool("include-current"); include {
		f = f.ToggleCurrentInterval()
	}
	offsetValue, _ := flags.GetInt("offset-value")
	offsetUnit, _ := flags.GetString("offset-unit")
	if offsetValue != 0 || offsetUnit != "" {
		offset := f.DefaultOffset()
		if offsetValue != 0 {
			offset.Value = offsetValue
		}
		if offsetUnit != "" {
			if offset.Unit, err = datefilter.ParseUnit(offsetUnit); err != nil {
				return "", datefilter.Relative{}, err
			}
		}
		// a rejected offset is kept and reported in the output
		f, _ = f.AddOffset(offset)
	}

	name := ""
	if s, ok := f.Shortcut(); ok {
		name = s.Name
	}
	return name, f, nil
}

func lookup(s string, _ error) string {
	return s
}
