// Package metrics exposes ledger activity as Prometheus metrics fed from the event bus.
package metrics

import (
	"context"

	"github.com/amirasaad/banksystem/pkg/domain/common"
	"github.com/amirasaad/banksystem/pkg/domain/events"
	"github.com/amirasaad/banksystem/pkg/eventbus"
	"github.com/amirasaad/banksystem/pkg/money"
	"github.com/prometheus/client_golang/prometheus"
)

// Operation label values for declined_total.
const (
	OperationWithdraw = "withdraw"
	OperationTransfer = "transfer"
)

// Kind label values for transactions_total and amount_total.
const (
	KindDeposit  = "deposit"
	KindWithdraw = "withdraw"
	KindTransfer = "transfer"
)

// Collector counts ledger events.
type Collector struct {
	transactions   *prometheus.CounterVec
	amounts        *prometheus.CounterVec
	declined       *prometheus.CounterVec
	accountsOpened *prometheus.CounterVec
	customers      prometheus.Gauge
}

// NewCollector creates a collector whose metrics live under namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{
		transactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_total",
				Help:      "Total number of applied ledger operations per kind",
			},
			[]string{"kind"},
		),
		amounts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "amount_total",
				Help:      "Total amount moved per operation kind, in currency units",
			},
			[]string{"kind"},
		),
		declined: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "declined_total",
				Help:      "Total number of operations refused by account policy",
			},
			[]string{"operation"},
		),
		accountsOpened: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "accounts_opened_total",
				Help:      "Total number of accounts opened per account kind",
			},
			[]string{"kind"},
		),
		customers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "customers",
				Help:      "Current number of registered customers",
			},
		),
	}
}

// Register registers all metrics with the given registerer.
func (c *Collector) Register(registry prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		c.transactions,
		c.amounts,
		c.declined,
		c.accountsOpened,
		c.customers,
	}

	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// Subscribe registers the collector's handler for every event type on bus.
func (c *Collector) Subscribe(bus eventbus.Bus) {
	for _, et := range events.All() {
		bus.Register(et.String(), c.Handle)
	}
}

// Handle updates the metrics for a single event. Unknown events are ignored.
func (c *Collector) Handle(_ context.Context, e common.Event) error {
	switch ev := e.(type) {
	case events.AccountOpenedEvent:
		c.accountsOpened.WithLabelValues(ev.Kind).Inc()
	case events.DepositedEvent:
		c.record(KindDeposit, ev.Amount)
	case events.WithdrawnEvent:
		c.record(KindWithdraw, ev.Amount)
	case events.WithdrawalDeclinedEvent:
		c.declined.WithLabelValues(OperationWithdraw).Inc()
	case events.TransferCompletedEvent:
		c.record(KindTransfer, ev.Amount)
	case events.TransferDeclinedEvent:
		c.declined.WithLabelValues(OperationTransfer).Inc()
	case events.CustomerAddedEvent:
		c.customers.Inc()
	case events.CustomerRemovedEvent:
		c.customers.Dec()
	}
	return nil
}

func (c *Collector) record(kind string, amount money.Money) {
	c.transactions.WithLabelValues(kind).Inc()
	c.amounts.WithLabelValues(kind).Add(amount.Decimal().InexactFloat64())
}

// Transactions returns the applied-operation counter for kind.
func (c *Collector) Transactions(kind string) prometheus.Counter {
	return c.transactions.WithLabelValues(kind)
}

// Amounts returns the moved-amount counter for kind.
func (c *Collector) Amounts(kind string) prometheus.Counter {
	return c.amounts.WithLabelValues(kind)
}

// Declined returns the declined counter for operation.
func (c *Collector) Declined(operation string) prometheus.Counter {
	return c.declined.WithLabelValues(operation)
}

// AccountsOpened returns the opened-accounts counter for an account kind name.
func (c *Collector) AccountsOpened(kind string) prometheus.Counter {
	return c.accountsOpened.WithLabelValues(kind)
}

// Customers returns the registered-customers gauge.
func (c *Collector) Customers() prometheus.Gauge {
	return c.customers
}
