package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	UpdatesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crm_bot_updates_received_total",
		Help: "Inbound webhook updates, including skipped ones.",
	})

	UpdatesSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crm_bot_updates_skipped_total",
		Help: "Updates acknowledged without handling.",
	}, []string{"reason"})

	DealsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crm_bot_deals_created_total",
		Help: "Deals appended to the record store.",
	})

	RepliesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crm_bot_replies_sent_total",
		Help: "Replies delivered through the message gateway.",
	})

	HandlerFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crm_bot_handler_failures_total",
		Help: "Updates that ended with an internal error in the ack.",
	})
)
