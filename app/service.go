// Package app wires the coverage pipeline: schedule parsing, co-teach
// resolution, assignment, persistence, reporting and publication.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/coverage/config"
	"github.com/kilianp07/coverage/core/assign"
	"github.com/kilianp07/coverage/core/coteach"
	"github.com/kilianp07/coverage/core/ledger"
	coremetrics "github.com/kilianp07/coverage/core/metrics"
	"github.com/kilianp07/coverage/core/model"
	"github.com/kilianp07/coverage/core/notify"
	"github.com/kilianp07/coverage/core/report"
	"github.com/kilianp07/coverage/core/roster"
	"github.com/kilianp07/coverage/infra/logger"
	_ "github.com/kilianp07/coverage/infra/metrics" // registers metrics sinks
	"github.com/kilianp07/coverage/infra/mqtt"
)

// ErrNoRoster is returned when neither the request nor the configuration
// names a schedule file.
var ErrNoRoster = errors.New("no roster path configured")

// Result is everything one run produced.
type Result struct {
	RunID       string
	Outcome     *assign.Outcome
	Report      string
	ReportPath  string
	ExportPath  string
	Unknown     []string
	Resolutions []coteach.Resolution
	Fairness    float64
}

// Service runs coverage assignments against the configured schedule and ledger.
type Service struct {
	cfg      *config.Config
	parser   *roster.Parser
	resolver *coteach.Resolver
	store    ledger.Store
	sink     coremetrics.Sink
	notifier notify.Notifier
	feed     *notify.Broadcaster
	writer   *report.Writer
	log      logger.Logger
	now      func() time.Time

	// runs share the ledger file; one at a time
	mu sync.Mutex
}

// Deps overrides the collaborators built from configuration. Nil fields are
// built from cfg.
type Deps struct {
	Store    ledger.Store
	Sink     coremetrics.Sink
	Notifier notify.Notifier
	Logger   logger.Logger
	Now      func() time.Time
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	return NewWithDeps(cfg, Deps{})
}

// NewWithDeps creates a Service using the given collaborators.
func NewWithDeps(cfg *config.Config, d Deps) (*Service, error) {
	if cfg == nil {
		cfg = &config.Config{}
		cfg.SetDefaults()
	}
	logg := d.Logger
	if logg == nil {
		logg = logger.New("service")
	}
	s := &Service{
		cfg:      cfg,
		parser:   roster.NewParser(logg),
		resolver: coteach.NewResolver(logg),
		writer:   report.NewWriter(cfg.Report.Dir),
		log:      logg,
		now:      d.Now,
		store:    d.Store,
		sink:     d.Sink,
		notifier: d.Notifier,
		feed:     notify.NewBroadcaster(0),
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.store == nil {
		store, err := ledger.NewStore(cfg.Ledger.Module())
		if err != nil {
			return nil, fmt.Errorf("ledger store: %w", err)
		}
		s.store = store
	}
	if s.sink == nil {
		sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
		if err != nil {
			_ = s.store.Close()
			return nil, fmt.Errorf("metrics sink: %w", err)
		}
		s.sink = sink
	}
	if s.notifier == nil {
		if cfg.Notify.Enabled {
			n, err := mqtt.NewPahoNotifier(cfg.Notify.MQTT)
			if err != nil {
				_ = s.store.Close()
				return nil, fmt.Errorf("mqtt notifier: %w", err)
			}
			s.notifier = n
		} else {
			s.notifier = notify.Nop{}
		}
	}
	s.notifier = notify.Multi{s.notifier, s.feed}
	return s, nil
}

func (s *Service) rosterSource(path, sheet string) (string, string, error) {
	if path == "" {
		path, sheet = s.cfg.Roster.Path, s.cfg.Roster.Sheet
	}
	if path == "" {
		return "", "", ErrNoRoster
	}
	return path, sheet, nil
}

// Roster parses the schedule at path, or the configured one when path is empty.
func (s *Service) Roster(path, sheet string) (*model.Roster, error) {
	path, sheet, err := s.rosterSource(path, sheet)
	if err != nil {
		return model.NewRoster(), err
	}
	return s.parser.ParseFile(path, sheet)
}

// Subscribe streams the messages of completed runs. Call cancel when done.
func (s *Service) Subscribe() (<-chan notify.Message, func()) {
	return s.feed.Subscribe()
}

// Ledger loads the usage ledger. An unreadable ledger is returned empty.
func (s *Service) Ledger(ctx context.Context) *ledger.Ledger {
	return ledger.LoadOrEmpty(ctx, s.store, s.log)
}

// Run executes one coverage run. Failing to parse the schedule or to persist
// the ledger or report aborts the run; notification and metrics failures are
// only logged.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	path, sheet, err := s.rosterSource(req.RosterPath, req.Sheet)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res := &Result{RunID: uuid.NewString()}
	ros, err := s.parser.ParseFile(path, sheet)
	if err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	res.Unknown = ros.MarkOut(req.Out...)
	for _, name := range res.Unknown {
		s.log.Warnf("%s is not on the roster", name)
	}
	for name, pref := range req.Preferences {
		if st, ok := ros.Get(name); ok {
			st.Preference = model.ParsePreference(pref)
		}
	}

	res.Resolutions = s.resolver.ResolveFile(ros, path, sheet)

	l := ledger.LoadOrEmpty(ctx, s.store, s.log)
	res.Outcome = assign.NewEngine(l, s.log).Run(ros, assign.Day{Date: req.Date, Even: req.EvenDay})
	if err := s.store.Save(ctx, l); err != nil {
		return nil, fmt.Errorf("save ledger: %w", err)
	}
	res.Fairness = l.Fairness(ros.Names())

	res.Report = report.Render(res.Outcome)
	if res.ReportPath, err = s.writer.Write(res.Outcome); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	if f := s.cfg.Report.Export; f != "" {
		if res.ExportPath, err = s.writer.Export(res.Outcome, f); err != nil {
			return nil, fmt.Errorf("export report: %w", err)
		}
	}

	s.publish(ctx, res, ros.Len())
	s.log.Infof("run %s for %s: %d periods, %d unassigned", res.RunID, req.Date, len(res.Outcome.Results), res.Outcome.Unassigned())
	return res, nil
}

func (s *Service) publish(ctx context.Context, res *Result, staff int) {
	now := s.now()
	msg := notify.Message{ID: uuid.NewString(), RunID: res.RunID, Outcome: res.Outcome, Report: res.Report, SentAt: now}
	if err := s.notifier.Notify(ctx, msg); err != nil {
		s.log.Errorf("notify: %v", err)
	}
	if err := s.sink.RecordCoverage(coremetrics.Events(res.RunID, res.Outcome, now)); err != nil {
		s.log.Errorf("record coverage: %v", err)
	}
	if fr, ok := s.sink.(coremetrics.FairnessRecorder); ok {
		ev := coremetrics.FairnessEvent{RunID: res.RunID, Date: res.Outcome.Date, Score: res.Fairness, Staff: staff, Time: now}
		if err := fr.RecordFairness(ev); err != nil {
			s.log.Errorf("record fairness: %v", err)
		}
	}
	if err := coremetrics.Flush(s.sink); err != nil {
		s.log.Errorf("flush metrics: %v", err)
	}
}

// Close releases the ledger store, the metrics sink and the notifier.
func (s *Service) Close() error {
	return errors.Join(s.store.Close(), coremetrics.Close(s.sink), s.notifier.Close())
}
