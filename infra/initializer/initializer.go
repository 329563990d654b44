package initializer

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	infra_eventbus "github.com/amirasaad/banksystem/infra/eventbus"
	"github.com/amirasaad/banksystem/pkg/config"
	"github.com/amirasaad/banksystem/pkg/domain/bank"
	"github.com/amirasaad/banksystem/pkg/handler"
	"github.com/amirasaad/banksystem/pkg/metrics"
	"github.com/amirasaad/banksystem/pkg/sequence"
	"github.com/prometheus/client_golang/prometheus"
)

// Deps holds everything an entry point needs to drive a bank.
type Deps struct {
	Config   *config.App
	Logger   *slog.Logger
	EventBus *infra_eventbus.MemoryEventBus
	Metrics  *metrics.Collector
	Registry *prometheus.Registry
	Bank     *bank.Bank
}

// Option adjusts how dependencies are built. Used by tests to pin identifiers and time.
type Option func(*options)

type options struct {
	accountNumbers sequence.Generator
	customerIDs    sequence.Generator
	now            func() time.Time
}

// WithSequences draws identifiers from the given generators instead of the process-wide ones.
func WithSequences(accountNumbers, customerIDs sequence.Generator) Option {
	return func(o *options) {
		o.accountNumbers = accountNumbers
		o.customerIDs = customerIDs
	}
}

// WithClock sets the clock handed to the bank.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// InitializeDependencies wires logging, the event bus, metrics, the audit
// trail and the bank from cfg. Log output goes to logOut.
func InitializeDependencies(cfg *config.App, logOut io.Writer, opts ...Option) (*Deps, error) {
	if cfg == nil || cfg.Bank == nil || cfg.Metrics == nil {
		return nil, fmt.Errorf("%w: bank and metrics sections are required", config.ErrInvalidConfig)
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	deps := &Deps{Config: cfg}
	deps.Logger = SetupLogger(logOut, cfg.Log)
	deps.EventBus = infra_eventbus.NewWithMemory(deps.Logger)

	deps.Registry = prometheus.NewRegistry()
	deps.Metrics = metrics.NewCollector(cfg.Metrics.Namespace)
	if err := deps.Metrics.Register(deps.Registry); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	deps.Metrics.Subscribe(deps.EventBus)

	handler.RegisterAll(deps.EventBus, handler.Audit(deps.Logger))

	b, err := bank.New(cfg.Bank.Name, cfg.Bank.BranchCode,
		bank.WithEventBus(deps.EventBus),
		bank.WithLogger(deps.Logger),
		bank.WithAccountNumbers(o.accountNumbers),
		bank.WithCustomerIDs(o.customerIDs),
		bank.WithClock(o.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bank: %w", err)
	}
	deps.Bank = b

	deps.Logger.Info("Bank initialized",
		"bank", cfg.Bank.Name,
		"branch", cfg.Bank.BranchCode,
		"env", cfg.Env,
	)
	return deps, nil
}
