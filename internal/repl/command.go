package repl

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/theplant/datefilter"
	"github.com/theplant/datefilter/session"
)

type Kind string

const (
	KindValue       Kind = "value"
	KindUnit        Kind = "unit"
	KindDirection   Kind = "direction"
	KindCurrent     Kind = "current"
	KindOffset      Kind = "offset"
	KindOffsetValue Kind = "offset-value"
	KindOffsetUnit  Kind = "offset-unit"
	KindNoOffset    Kind = "no-offset"
	KindShortcut    Kind = "shortcut"
	KindShow        Kind = "show"
	KindCommit      Kind = "commit"
	KindDiscard     Kind = "discard"
	KindHelp        Kind = "help"
	KindQuit        Kind = "quit"
)

var (
	ErrEmptyCommand   = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("wrong arguments")
)

const Help = `value N                        set the number of units
unit U                         set the unit (minute, hour, day, week, month, quarter, year)
direction D                    previous, next or current
current                        toggle inclusion of the current period
offset N U [ago|from now]      start the range N units away
offset-value N                 change the offset value
offset-unit U                  change the offset unit
no-offset                      remove the offset
shortcut NAME                  replace the filter with a shortcut
show                           print the filter
commit                         build the clause
discard                        drop the filter
help                           print this help
quit                           leave`

// Command is one parsed editing command.
type Command struct {
	Kind      Kind
	Value     int
	Unit      datefilter.Unit
	Direction datefilter.Direction
	Shortcut  string
}

// Parse reads one line of input.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmptyCommand
	}
	kind, args := Kind(strings.ToLower(fields[0])), fields[1:]

	usage := func(format string) error {
		return errors.Wrapf(ErrUsage, "usage: %s %s", kind, format)
	}

	switch kind {
	case KindValue, KindOffsetValue:
		if len(args) != 1 {
			return Command{}, usage("N")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return Command{}, errors.Wrapf(err, "parse %s", kind)
		}
		return Command{Kind: kind, Value: n}, nil

	case KindUnit, KindOffsetUnit:
		if len(args) != 1 {
			return Command{}, usage("U")
		}
		u, err := datefilter.ParseUnit(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: kind, Unit: u}, nil

	case KindDirection:
		if len(args) != 1 {
			return Command{}, usage("D")
		}
		d, err := datefilter.ParseDirection(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: kind, Direction: d}, nil

	case KindOffset:
		return parseOffset(args, usage)

	case KindShortcut:
		if len(args) == 0 {
			return Command{}, usage("NAME")
		}
		return Command{Kind: kind, Shortcut: strings.Join(args, " ")}, nil

	case KindCurrent, KindNoOffset, KindShow, KindCommit, KindDiscard, KindHelp, KindQuit:
		if len(args) != 0 {
			return Command{}, usage("")
		}
		return Command{Kind: kind}, nil

	case "exit":
		return Command{Kind: KindQuit}, nil
	}

	return Command{}, errors.Wrapf(ErrUnknownCommand, "%q", fields[0])
}

func parseOffset(args []string, usage func(string) error) (Command, error) {
	if len(args) < 2 {
		return Command{}, usage("N U [ago|from now]")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return Command{}, errors.Wrap(err, "parse offset")
	}
	u, err := datefilter.ParseUnit(args[1])
	if err != nil {
		return Command{}, err
	}
	cmd := Command{Kind: KindOffset, Value: n, Unit: u}

	switch suffix := strings.ToLower(strings.Join(args[2:], " ")); suffix {
	case "":
	case datefilter.DirectionPrevious.OffsetSuffix():
		cmd.Direction = datefilter.DirectionPrevious
	case datefilter.DirectionNext.OffsetSuffix():
		cmd.Direction = datefilter.DirectionNext
	default:
		return Command{}, usage("N U [ago|from now]")
	}
	return cmd, nil
}

// Edits reports whether the command changes the draft filter.
func (c Command) Edits() bool {
	return lo.Contains([]Kind{
		KindValue, KindUnit, KindDirection, KindCurrent, KindOffset,
		KindOffsetValue, KindOffsetUnit, KindNoOffset, KindShortcut,
	}, c.Kind)
}

// Apply runs an editing command against the session.
func (c Command) Apply(e *session.Editor) error {
	switch c.Kind {
	case KindValue:
		return e.SetValue(c.Value)
	case KindUnit:
		return e.SetUnit(c.Unit)
	case KindDirection:
		return e.SetDirection(c.Direction)
	case KindCurrent:
		return e.ToggleCurrentInterval()
	case KindOffset:
		if c.Direction != "" {
			if err := e.SetDirection(c.Direction); err != nil {
				return err
			}
		}
		return e.AddOffset(datefilter.Offset{Unit: c.Unit, Value: c.Value})
	case KindOffsetValue:
		return e.SetOffsetValue(c.Value)
	case KindOffsetUnit:
		return e.SetOffsetUnit(c.Unit)
	case KindNoOffset:
		return e.RemoveOffset()
	case KindShortcut:
		s, ok := datefilter.FindShortcut(c.Shortcut)
		if !ok {
			return errors.Errorf("unknown shortcut %q", c.Shortcut)
		}
		return e.Apply(func(datefilter.Relative) datefilter.Relative { return s.Filter })
	}
	return errors.Errorf("%s does not edit the filter", c.Kind)
}
