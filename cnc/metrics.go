package cnc

import "github.com/prometheus/client_golang/prometheus"

const (
	statusOK        = "ok"
	statusError     = "error"
	statusUnhandled = "unhandled"
)

// Metrics counts executed commands by name and outcome.
type Metrics struct {
	CommandsTotal *prometheus.CounterVec
}

// NewMetrics creates the command counters and registers them with reg. A nil
// reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		CommandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cnc_commands_total",
				Help: "Total number of executed commands by command and status.",
			},
			[]string{"command", "status"},
		),
	}

	if reg != nil {
		if err := reg.Register(m.CommandsTotal); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(name CommandName, status string) {
	if m == nil {
		return
	}
	m.CommandsTotal.WithLabelValues(string(name), status).Inc()
}
