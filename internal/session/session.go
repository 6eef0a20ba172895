// Package session is the wallet state machine presented to callers.
//
// Every operation returns a bool (or a nil/zero value) instead of an error
// and never panics. The reason for the most recent failure is available from
// Err and matches the credstore, crypto and mnemonic sentinels. Concurrent
// callers that need the reason for their own call use the error-returning
// forms (Create, Unlock, Restore, ...) instead of Err.
package session

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/AlexZinkM/qsafe-wallet/internal/credstore"
	"github.com/AlexZinkM/qsafe-wallet/internal/keys"
	"github.com/AlexZinkM/qsafe-wallet/internal/lockout"
	"github.com/AlexZinkM/qsafe-wallet/internal/metrics"
	"github.com/AlexZinkM/qsafe-wallet/internal/mnemonic"
	"github.com/AlexZinkM/qsafe-wallet/internal/model"
)

// Failure reasons reported by the session itself.
var (
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrWeakPassword  = errors.New("password is too weak")
	ErrLocked        = errors.New("wallet is locked")
	ErrInternal      = errors.New("internal error")
)

// State is the lifecycle position of the wallet as seen by the session.
type State int

const (
	StateNoWallet State = iota
	StateLocked
	StateUnlocked
)

// String returns the wire name of the state.
func (s State) String() string {
	switch s {
	case StateNoWallet:
		return "no_wallet"
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithMetrics records operation outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// WithEngine sets the mnemonic engine, e.g. a strict one.
func WithEngine(e *mnemonic.Engine) Option {
	return func(s *Session) { s.engine = e }
}

// WithNetwork selects the derivation path for new and restored wallets.
func WithNetwork(n keys.Network) Option {
	return func(s *Session) { s.network = n }
}

// WithMinPasswordScore rejects new passwords rated below score.
func WithMinPasswordScore(score int) Option {
	return func(s *Session) { s.minScore = score }
}

// Session holds the unlocked wallet, if any, on top of a credential store.
// It is safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	store    *credstore.Store
	engine   *mnemonic.Engine
	network  keys.Network
	minScore int
	log      *zap.Logger
	metrics  *metrics.Metrics

	secrets   *credstore.WalletSecrets
	seedShown bool
	lastErr   error
}

// New returns a locked session over store with a loose mnemonic engine on
// mainnet.
func New(store *credstore.Store, opts ...Option) *Session {
	s := &Session{
		store:   store,
		engine:  mnemonic.NewEngine(false),
		network: keys.Mainnet,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("session")
	return s
}

// CreateWallet generates a 12-word wallet, persists it under password and
// unlocks it. The new phrase stays visible until hidden or confirmed.
func (s *Session) CreateWallet(password []byte) bool {
	_, _, err := s.Create(password)
	return err == nil
}

// Create is CreateWallet returning the new phrase and address, or the reason
// it failed.
func (s *Session) Create(password []byte) (phrase, address string, err error) {
	err = s.run("create", func() error {
		if err := checkPassword(password, s.minScore); err != nil {
			return err
		}
		generated, err := s.engine.Generate(mnemonic.Strength128)
		if err != nil {
			return err
		}
		secrets, err := s.build(generated)
		if err != nil {
			return err
		}
		if err := s.store.Save(secrets, password); err != nil {
			secrets.Wipe()
			return err
		}

		s.adopt(secrets)
		s.seedShown = true
		phrase, address = string(generated), secrets.Address()
		s.log.Info("wallet created", zap.String("address", address))
		return nil
	})
	return phrase, address, err
}

// UnlockWallet decrypts the stored wallet. It fails without touching the
// failure record while a ban is active.
func (s *Session) UnlockWallet(password []byte) bool {
	_, err := s.Unlock(password)
	return err == nil
}

// Unlock is UnlockWallet returning the unlocked address, or the reason it
// failed. A wrong password yields a *credstore.WrongPasswordError and an active
// ban a *credstore.BannedError.
func (s *Session) Unlock(password []byte) (address string, err error) {
	err = s.run("unlock", func() error {
		if len(password) == 0 {
			return ErrEmptyPassword
		}
		secrets, err := s.store.Load(password)
		if err != nil {
			return err
		}
		s.adopt(secrets)
		address = secrets.Address()
		return nil
	})
	return address, err
}

// RestoreWallet rebuilds a wallet from phrase and persists it under password
// with the backup already confirmed. Nothing is written when the phrase is
// rejected.
func (s *Session) RestoreWallet(phrase string, password []byte) bool {
	_, err := s.Restore(phrase, password)
	return err == nil
}

// Restore is RestoreWallet returning the restored address, or the reason it
// failed.
func (s *Session) Restore(phrase string, password []byte) (address string, err error) {
	err = s.run("restore", func() error {
		if err := s.engine.Check(phrase); err != nil {
			return err
		}
		if err := checkPassword(password, s.minScore); err != nil {
			return err
		}
		secrets, err := s.build(mnemonic.Normalize(phrase))
		if err != nil {
			return err
		}
		if err := s.store.Save(secrets, password); err != nil {
			secrets.Wipe()
			return err
		}
		if err := s.store.SetBackupConfirmed(true); err != nil {
			s.log.Error("restored wallet saved without backup flag", zap.Error(err))
		}

		s.adopt(secrets)
		address = secrets.Address()
		s.log.Info("wallet restored", zap.String("address", address))
		return nil
	})
	return address, err
}

// LockWallet drops the in-memory secrets. Persisted state is untouched.
func (s *Session) LockWallet() {
	s.run("lock", func() error {
		s.discard()
		return nil
	})
}

// DeleteWallet removes the stored wallet. Any active ban stays in force.
func (s *Session) DeleteWallet() bool {
	return s.Delete() == nil
}

// Delete is DeleteWallet returning the reason it failed.
func (s *Session) Delete() error {
	return s.run("delete", func() error {
		s.discard()
		return s.store.Remove()
	})
}

// ShowSeedPhrase reveals the held phrase. It has no effect while locked.
func (s *Session) ShowSeedPhrase() {
	s.safely(func() {
		s.seedShown = s.secrets != nil
	})
}

// HideSeedPhrase hides the phrase again.
func (s *Session) HideSeedPhrase() {
	s.safely(func() {
		s.seedShown = false
	})
}

// SeedPhrase returns the held phrase while it is shown.
func (s *Session) SeedPhrase() (phrase string, ok bool) {
	s.safely(func() {
		if s.secrets != nil && s.seedShown {
			phrase, ok = string(s.secrets.Mnemonic), true
		}
	})
	return phrase, ok
}

// ConfirmSeedPhraseSaved records that the user backed up the phrase and
// hides it.
func (s *Session) ConfirmSeedPhraseSaved() bool {
	return s.ConfirmBackup() == nil
}

// ConfirmBackup is ConfirmSeedPhraseSaved returning the reason it failed.
func (s *Session) ConfirmBackup() error {
	return s.run("confirm_backup", func() error {
		if s.secrets == nil {
			return ErrLocked
		}
		if err := s.store.SetBackupConfirmed(true); err != nil {
			return err
		}
		s.seedShown = false
		return nil
	})
}

// CheckSeedPhraseWord reports whether word is the index-th (0-based) word of
// the held phrase. It is false when locked or out of range.
func (s *Session) CheckSeedPhraseWord(index int, word string) (match bool) {
	s.safely(func() {
		if s.secrets == nil {
			return
		}
		words := s.secrets.Mnemonic.Words()
		if index < 0 || index >= len(words) {
			return
		}
		match = words[index] == word
	})
	return match
}

// ChangePassword re-encrypts the stored wallet. oldPassword is subject to
// the same lockout as UnlockWallet.
func (s *Session) ChangePassword(oldPassword, newPassword []byte) bool {
	return s.Rekey(oldPassword, newPassword) == nil
}

// Rekey is ChangePassword returning the reason it failed.
func (s *Session) Rekey(oldPassword, newPassword []byte) error {
	return s.run("change_password", func() error {
		if len(oldPassword) == 0 {
			return ErrEmptyPassword
		}
		if err := checkPassword(newPassword, s.minScore); err != nil {
			return err
		}
		return s.store.Rekey(oldPassword, newPassword)
	})
}

// SignMessage signs msg with the unlocked ML-DSA key.
func (s *Session) SignMessage(msg []byte) (sig []byte, ok bool) {
	sig, _, err := s.Sign(msg)
	return sig, err == nil
}

// Sign is SignMessage also returning the public key that verifies sig, or
// the reason it failed.
func (s *Session) Sign(msg []byte) (sig, publicKey []byte, err error) {
	err = s.run("sign", func() error {
		if s.secrets == nil {
			return ErrLocked
		}
		sig = s.secrets.KeyPair.Sign(msg)
		publicKey = s.secrets.KeyPair.PublicKey()
		return nil
	})
	return sig, publicKey, err
}

// VerifyMessage checks sig over msg against the unlocked public key.
func (s *Session) VerifyMessage(msg, sig []byte) (valid bool) {
	s.safely(func() {
		if s.secrets == nil {
			return
		}
		valid = keys.Verify(s.secrets.KeyPair.PublicKey(), msg, sig)
	})
	return valid
}

// PublicKey returns the unlocked public key, nil when locked.
func (s *Session) PublicKey() (pub []byte) {
	s.safely(func() {
		if s.secrets != nil {
			pub = s.secrets.KeyPair.PublicKey()
		}
	})
	return pub
}

// IsUnlocked reports whether secrets are held in memory.
func (s *Session) IsUnlocked() (unlocked bool) {
	s.safely(func() {
		unlocked = s.secrets != nil
	})
	return unlocked
}

// HasWallet reports whether a wallet is stored.
func (s *Session) HasWallet() (has bool) {
	s.safely(func() {
		has = s.store.Exists()
	})
	return has
}

// State returns StateNoWallet when nothing is stored or the store cannot be
// read.
func (s *Session) State() (state State) {
	s.safely(func() {
		switch {
		case s.secrets != nil:
			state = StateUnlocked
		case s.store.Exists():
			state = StateLocked
		default:
			state = StateNoWallet
		}
	})
	return state
}

// Address is available while locked from the cleartext metadata.
func (s *Session) Address() (addr string) {
	s.safely(func() {
		if s.secrets != nil {
			addr = s.secrets.Address()
			return
		}
		if meta, err := s.store.Meta(); err == nil {
			addr = meta.Address
		}
	})
	return addr
}

// Meta returns the wallet metadata, nil when there is none.
func (s *Session) Meta() (meta *model.WalletMeta) {
	s.safely(func() {
		m, err := s.store.Meta()
		if err != nil {
			return
		}
		meta = m
	})
	return meta
}

// BanInfo returns the active ban, nil when not banned.
func (s *Session) BanInfo() (info *lockout.BanInfo) {
	s.safely(func() {
		i, err := s.store.BanInfo()
		if err != nil {
			s.log.Error("failed to read ban info", zap.Error(err))
			return
		}
		info = i
	})
	return info
}

// AttemptsUntilBan is the number of wrong passwords left before a ban.
func (s *Session) AttemptsUntilBan() (left int) {
	s.safely(func() {
		rec, err := s.store.FailureRecord()
		if err != nil {
			return
		}
		left = lockout.AttemptsUntilBan(rec)
	})
	return left
}

// Err returns why the last failed operation failed, nil after a success.
// With concurrent callers the last operation may not be the caller's own.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// build derives and protects the key pair for phrase.
func (s *Session) build(phrase mnemonic.Mnemonic) (*credstore.WalletSecrets, error) {
	seed, err := s.engine.ToSeed(phrase, "")
	if err != nil {
		return nil, err
	}
	path := keys.PathFor(s.network)
	raw, err := keys.Derive(seed, path)
	if err != nil {
		clear(seed)
		return nil, err
	}
	kp, err := keys.Protect(raw)
	if err != nil {
		clear(seed)
		return nil, err
	}
	return &credstore.WalletSecrets{
		Mnemonic: phrase,
		Seed:     seed,
		KeyPair:  kp,
		Path:     path,
		Network:  s.network,
	}, nil
}

func (s *Session) adopt(secrets *credstore.WalletSecrets) {
	s.discard()
	s.secrets = secrets
}

func (s *Session) discard() {
	s.secrets.Wipe()
	s.secrets = nil
	s.seedShown = false
}

// run executes a state-changing operation under the session lock, records
// its outcome and returns it. Panics are converted to ErrInternal.
func (s *Session) run(op string, fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("recovered panic", zap.String("op", op), zap.Any("panic", r))
			err = ErrInternal
		}
		s.lastErr = err
		s.metrics.ObserveOperation(op, err == nil)
	}()

	if err = fn(); err != nil {
		s.log.Info("operation failed", zap.String("op", op), zap.Error(err))
	}
	return err
}

// safely runs fn under the session lock, swallowing panics.
func (s *Session) safely(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("recovered panic", zap.Any("panic", r))
		}
	}()
	fn()
}
