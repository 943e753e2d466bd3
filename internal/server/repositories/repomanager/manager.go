// Package repomanager opens the persisted store, applies migrations, and
// hands out the per-kind repositories.
package repomanager

import (
	"github.com/dmitrijs2005/healthtracker/internal/server/repositories/metrics"
	"github.com/dmitrijs2005/healthtracker/internal/server/repositories/symptoms"
)

type RepositoryManager interface {
	Symptoms() symptoms.Repository
	Metrics() metrics.Repository
	Close() error
}
