package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// DraftSavesTotal counts draft persist attempts by outcome.
	DraftSavesTotal *prometheus.CounterVec
	// PersistenceFailuresTotal counts store operations that failed and were
	// swallowed (the session keeps running on in-memory state).
	PersistenceFailuresTotal *prometheus.CounterVec
	// NormalizeRepairsTotal counts loads that required the normalizer to
	// repair a persisted document.
	NormalizeRepairsTotal *prometheus.CounterVec
	// LogoUploadsTotal counts logo ingestion outcomes.
	LogoUploadsTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		DraftSavesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draft_saves_total",
			Help:      "Count of draft persist attempts by outcome.",
		}, []string{"result"})
		PersistenceFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_failures_total",
			Help:      "Count of swallowed key-value store failures by operation.",
		}, []string{"op"})
		NormalizeRepairsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "normalize_repairs_total",
			Help:      "Count of loads where the normalizer repaired a document.",
		}, []string{"document"})
		LogoUploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logo_uploads_total",
			Help:      "Count of logo ingestion outcomes.",
		}, []string{"result"})

		mustRegisterCollector(reg, DraftSavesTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				DraftSavesTotal = v
			}
		})
		mustRegisterCollector(reg, PersistenceFailuresTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PersistenceFailuresTotal = v
			}
		})
		mustRegisterCollector(reg, NormalizeRepairsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				NormalizeRepairsTotal = v
			}
		})
		mustRegisterCollector(reg, LogoUploadsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				LogoUploadsTotal = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
