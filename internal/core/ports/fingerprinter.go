package ports

import "go.trai.ch/ccplan/internal/core/domain"

// Fingerprinter digests planning results.
//
//go:generate mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// Fingerprint returns a digest of every provider in reg. Equal registries have
	// equal fingerprints.
	Fingerprint(reg *domain.Registry) string
}
