package cli

import (
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/viper"

	"github.com/theplant/datefilter"
)

const (
	keyVerbose   = "datefilter.verbose"
	keyLocal     = "datefilter.local"
	keyColumn    = "datefilter.column"
	keyWeekStart = "datefilter.week_start"
	keyTimezone  = "datefilter.timezone"
	keyOutput    = "datefilter.output"
	keyNow       = "datefilter.now"
)

func (a *app) initConfig(configFile string) {
	a.v.SetConfigType("toml")
	a.v.AddConfigPath("$HOME/.datefilter")
	a.v.AddConfigPath(".")
	a.v.SetConfigName("datefilter")

	if configFile != "" {
		a.v.SetConfigFile(configFile)
	}

	err := a.v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		a.log.Debug().Msg("No config file found, using defaults as a base")
	} else if err != nil {
		a.log.Error().Err(err).Msg("Error loading config file")
	}

	a.log.Debug().Str("file", a.v.ConfigFileUsed()).Msg("loaded config from file")
}

func (a *app) initLogLevel() {
	switch min(2, a.v.GetInt(keyVerbose)) {
	case 2:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func (a *app) initLogging(stderr io.Writer) {
	writer := stderr
	if a.v.GetBool(keyLocal) {
		writer = zerolog.ConsoleWriter{
			Out:        stderr,
			TimeFormat: time.RFC3339,
		}
	}

	a.log = zerolog.New(writer).
		With().
		Timestamp().
		Logger()
}

func (a *app) traceConfig() {
	for _, k := range a.v.AllKeys() {
		a.log.Trace().Msgf("%s=%v", k, a.v.Get(k))
	}
}

// settings are the resolved values every command works with.
type settings struct {
	column      string
	output      string
	now         time.Time
	resolveOpts []datefilter.ResolveOption
}

var weekdays = []time.Weekday{
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday,
}

func parseWeekday(s string) (time.Weekday, error) {
	d, ok := lo.Find(weekdays, func(d time.Weekday) bool {
		return strings.EqualFold(d.String(), strings.TrimSpace(s))
	})
	if !ok {
		return 0, errors.Errorf("unknown weekday %q", s)
	}
	return d, nil
}

func (a *app) settings() (*settings, error) {
	s := &settings{
		column: a.v.GetString(keyColumn),
		output: a.v.GetString(keyOutput),
		now:    time.Now(),
	}
	if !lo.Contains([]string{"text", "json"}, s.output) {
		return nil, errors.Errorf("unsupported output format %q", s.output)
	}

	if raw := a.v.GetString(keyNow); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errors.Wrap(err, "parse now")
		}
		s.now = t
	}

	weekStart, err := parseWeekday(a.v.GetString(keyWeekStart))
	if err != nil {
		return nil, err
	}
	s.resolveOpts = append(s.resolveOpts, datefilter.WithWeekStart(weekStart))

	if tz := a.v.GetString(keyTimezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, errors.Wrapf(err, "load timezone %q", tz)
		}
		s.resolveOpts = append(s.resolveOpts, datefilter.WithLocation(loc))
	}
	return s, nil
}
