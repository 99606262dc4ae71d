package metrics

import (
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

var (
    // Classifications counts packages labeled, by status and deciding step.
    Classifications = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "librefind_classifications_total",
        Help: "Packages classified, by status and deciding step",
    }, []string{"status", "step"})

    // ScanDuration tracks full classification runs.
    ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
        Name:    "librefind_scan_duration_seconds",
        Help:    "Duration of a full inventory classification",
        Buckets: prometheus.DefBuckets,
    })

    // StoreCalls counts knowledge store calls by operation and outcome
    // (ok, not_found, error).
    StoreCalls = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "librefind_store_calls_total",
        Help: "Knowledge store calls by operation and outcome",
    }, []string{"op", "outcome"})

    // VoteConflicts counts optimistic vote transactions that had to retry.
    VoteConflicts = promauto.NewCounter(prometheus.CounterOpts{
        Name: "librefind_vote_conflicts_total",
        Help: "Vote transactions retried after a write conflict",
    })

    // ScansSuperseded counts dashboard rescans cancelled by a newer request.
    ScansSuperseded = promauto.NewCounter(prometheus.CounterOpts{
        Name: "librefind_scans_superseded_total",
        Help: "In-flight rescans cancelled by a newer request",
    })
)

// Outcome labels used with StoreCalls.
const (
    OutcomeOK       = "ok"
    OutcomeNotFound = "not_found"
    OutcomeError    = "error"
)
