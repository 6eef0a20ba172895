// Package metrics exposes prometheus collectors for wallet operations.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "qswallet"

// Unlock results
const (
	ResultSuccess       = "success"
	ResultWrongPassword = "wrong_password"
	ResultBanned        = "banned"
	ResultCorrupted     = "corrupted"
	ResultNoWallet      = "no_wallet"
	ResultStorageError  = "storage_error"
	ResultInvalid       = "invalid"
	ResultFailure       = "failure"
)

// Metrics holds the wallet collectors. A nil *Metrics records nothing.
type Metrics struct {
	unlockAttempts *prometheus.CounterVec
	bansStarted    prometheus.Counter
	operations     *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		unlockAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unlock_attempts_total",
			Help:      "Wallet decryption attempts by result.",
		}, []string{"result"}),
		bansStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lockout_bans_total",
			Help:      "Failed attempts that started or extended a lockout ban.",
		}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Wallet session operations by name and result.",
		}, []string{"op", "result"}),
	}

	err := errors.Join(
		reg.Register(m.unlockAttempts),
		reg.Register(m.bansStarted),
		reg.Register(m.operations),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ObserveUnlock counts one decryption attempt by result.
func (m *Metrics) ObserveUnlock(result string) {
	if m == nil {
		return
	}
	m.unlockAttempts.WithLabelValues(result).Inc()
}

// ObserveBan counts a failure that started a ban.
func (m *Metrics) ObserveBan() {
	if m == nil {
		return
	}
	m.bansStarted.Inc()
}

// ObserveOperation counts one session operation by outcome.
func (m *Metrics) ObserveOperation(op string, ok bool) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if !ok {
		result = ResultFailure
	}
	m.operations.WithLabelValues(op, result).Inc()
}
