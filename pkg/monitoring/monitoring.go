package monitoring

import (
	"fmt"

	"github.com/joltarchive/joltarchive/pkg/config"
	"github.com/joltarchive/joltarchive/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "joltarchive"

// Transfer results.
const (
	Ok     = "ok"
	Cached = "cached"
	Failed = "failed"
)

// Monitoring keeps the stats of a single archiver run.
// There is no one to scrape a short-lived CLI process, so the stats
// are dumped into a node exporter textfile at the end instead.
type Monitoring struct {
	conf config.Monitoring
	tag  string
	log  *logger.Logger
	reg  *prometheus.Registry

	games     prometheus.Counter
	builds    *prometheus.CounterVec
	transfers *prometheus.CounterVec
	bytes     prometheus.Counter
	pages     prometheus.Counter
}

// New creates new run stats.
// The tag param specifies owner label for logs.
func New(conf config.Monitoring, tag string, log *logger.Logger) *Monitoring {
	if log == nil {
		log = logger.Nop()
	}
	m := &Monitoring{
		conf: conf,
		tag:  tag,
		log:  log,
		reg:  prometheus.NewRegistry(),
		games: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "games_total", Help: "Games processed.",
		}),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "builds_total", Help: "Builds seen, by resolution state.",
		}, []string{"state"}),
		transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "transfers_total", Help: "File transfers, by result.",
		}, []string{"result"}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "transferred_bytes_total", Help: "Bytes written to disk.",
		}),
		pages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "pages_total", Help: "CheerpJ runner pages written.",
		}),
	}
	m.reg.MustRegister(m.games, m.builds, m.transfers, m.bytes, m.pages)
	return m
}

func (m *Monitoring) Game() { m.games.Inc() }

// Build counts a build as resolved or skipped.
func (m *Monitoring) Build(resolved bool) {
	state := "skipped"
	if resolved {
		state = "resolved"
	}
	m.builds.WithLabelValues(state).Inc()
}

func (m *Monitoring) Transfer(result string, bytes int64) {
	m.transfers.WithLabelValues(result).Inc()
	if bytes > 0 {
		m.bytes.Add(float64(bytes))
	}
}

func (m *Monitoring) Page() { m.pages.Inc() }

// Write dumps the stats into the configured textfile.
// Does nothing without one.
func (m *Monitoring) Write() error {
	if m.conf.MetricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(m.conf.MetricsFile, m.reg); err != nil {
		return fmt.Errorf("metrics textfile: %w", err)
	}
	m.log.Debug().Msgf("[%v] stats saved to %v", m.tag, m.conf.MetricsFile)
	return nil
}

func (m *Monitoring) String() string {
	return fmt.Sprintf("monitoring::%s", m.conf.MetricsFile)
}
