package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FromLabel = "from"
	ToLabel   = "to"
)

// Metrics counts what editing sessions do. A nil *Metrics records nothing.
type Metrics struct {
	Transitions     *prometheus.CounterVec
	Commits         prometheus.Counter
	RejectedCommits prometheus.Counter
}

// NewMetrics creates the session counters and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datefilter_session_transitions_total",
			Help: "State transitions of filter editing sessions",
		}, []string{FromLabel, ToLabel}),
		Commits: factory.NewCounter(prometheus.CounterOpts{
			Name: "datefilter_session_commits_total",
			Help: "Filters committed into a query clause",
		}),
		RejectedCommits: factory.NewCounter(prometheus.CounterOpts{
			Name: "datefilter_session_rejected_commits_total",
			Help: "Commits refused because the draft filter was invalid",
		}),
	}
}

func (m *Metrics) observeTransition(from, to State) {
	if m == nil {
		return
	}
	m.Transitions.With(prometheus.Labels{FromLabel: string(from), ToLabel: string(to)}).Inc()
}

func (m *Metrics) observeCommit(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.Commits.Inc()
		return
	}
	m.RejectedCommits.Inc()
}
