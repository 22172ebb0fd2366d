package store

import (
	"github.com/liborw/fiogo/pkg/domain"
)

// Store is where the CLI puts parsed transactions. The client library
// itself never writes anywhere.
type Store interface {
	Write([]*domain.Transaction) error
}
