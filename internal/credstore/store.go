// Package credstore persists one encrypted wallet blob, its cleartext
// metadata and the lockout failure record in a storage.KV.
//
// All operations are serialised by a single mutex so that concurrent unlock
// attempts cannot race on the failure record.
package credstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AlexZinkM/qsafe-wallet/internal/crypto"
	"github.com/AlexZinkM/qsafe-wallet/internal/lockout"
	"github.com/AlexZinkM/qsafe-wallet/internal/metrics"
	"github.com/AlexZinkM/qsafe-wallet/internal/model"
	"github.com/AlexZinkM/qsafe-wallet/internal/storage"
)

// Persisted record names
const (
	KeyEncryptedBlob = "wallet.encryptedBlob"
	KeyMeta          = "wallet.meta"
	KeyFailAttempts  = "wallet.failAttempts"
	KeyLastFail      = "wallet.lastFail"
)

// Store persists one encrypted wallet and its failure record in a KV.
// All operations are serialised by a single mutex.
type Store struct {
	mu      sync.Mutex
	kv      storage.KV
	params  crypto.Params
	now     func() time.Time
	log     *zap.Logger
	metrics *metrics.Metrics
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithMetrics records unlock results and bans on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithClock overrides time.Now, mainly for lockout tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithParams sets the scrypt cost used for new encryptions.
func WithParams(p crypto.Params) Option {
	return func(s *Store) { s.params = p }
}

// New returns a store over kv using DefaultParams for new encryptions.
func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		params: crypto.DefaultParams(),
		now:    time.Now,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("credstore")
	return s
}

// Exists reports whether an encrypted blob is present.
func (s *Store) Exists() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.kv.Get(KeyEncryptedBlob)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.log.Error("failed to check wallet blob", zap.Error(err))
	}
	return err == nil
}

// Save encrypts secrets under password and writes a fresh metadata record
// with hasBackup=false. Any previous wallet in the slot is replaced.
func (s *Store) Save(secrets *WalletSecrets, password []byte) error {
	if err := secrets.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	plaintext, err := json.Marshal(secrets.toStored())
	if err != nil {
		return fmt.Errorf("failed to marshal wallet secrets: %w", err)
	}
	defer clear(plaintext)

	blob, err := crypto.Encrypt(plaintext, password, s.params)
	if err != nil {
		return fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	now := s.now().UnixMilli()
	meta := model.WalletMeta{
		Address:    secrets.Address(),
		CreatedAt:  now,
		LastAccess: now,
		HasBackup:  false,
	}

	if err := s.kv.Set(KeyEncryptedBlob, blob); err != nil {
		s.log.Error("failed to write wallet blob", zap.Error(err))
		return err
	}
	if err := s.writeMeta(meta); err != nil {
		s.log.Error("failed to write wallet meta, rolling back blob", zap.Error(err))
		if rmErr := s.kv.Remove(KeyEncryptedBlob); rmErr != nil {
			s.log.Error("failed to roll back wallet blob", zap.Error(rmErr))
		}
		return err
	}

	s.log.Info("wallet saved", zap.String("address", meta.Address))
	return nil
}

// Load decrypts the stored wallet. While a ban is active it returns a
// *BannedError without attempting decryption or counting a failure. A wrong
// password records a failure; a successful decryption clears the failure
// record and bumps lastAccess.
func (s *Store) Load(password []byte) (*WalletSecrets, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plaintext, err := s.open(password)
	if err != nil {
		return nil, err
	}
	defer clear(plaintext)

	var stored model.StoredSecrets
	if err := json.Unmarshal(plaintext, &stored); err != nil {
		s.log.Error("wallet payload is not valid JSON", zap.Error(err))
		s.metrics.ObserveUnlock(metrics.ResultCorrupted)
		return nil, fmt.Errorf("%w: bad payload", ErrCorrupted)
	}
	secrets, err := fromStored(stored)
	if err != nil {
		s.log.Error("wallet payload is incomplete", zap.Error(err))
		s.metrics.ObserveUnlock(metrics.ResultCorrupted)
		return nil, err
	}

	s.touch(secrets.Address())
	s.metrics.ObserveUnlock(metrics.ResultSuccess)
	s.log.Info("wallet unlocked", zap.String("address", secrets.Address()))
	return secrets, nil
}

// Rekey re-encrypts the stored blob under newPassword. oldPassword goes
// through the same lockout checks and failure counting as Load.
func (s *Store) Rekey(oldPassword, newPassword []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	plaintext, err := s.open(oldPassword)
	if err != nil {
		return err
	}
	defer clear(plaintext)

	blob, err := crypto.Encrypt(plaintext, newPassword, s.params)
	if err != nil {
		return fmt.Errorf("failed to encrypt wallet: %w", err)
	}
	if err := s.kv.Set(KeyEncryptedBlob, blob); err != nil {
		s.log.Error("failed to write re-encrypted blob", zap.Error(err))
		return err
	}

	s.metrics.ObserveUnlock(metrics.ResultSuccess)
	s.log.Info("wallet password changed")
	return nil
}

// open runs the ban check and decryption and maintains the failure record.
// It must be called with s.mu held.
func (s *Store) open(password []byte) ([]byte, error) {
	rec, err := s.readFailureRecord()
	if err != nil {
		s.log.Error("failed to read failure record", zap.Error(err))
		s.metrics.ObserveUnlock(metrics.ResultStorageError)
		return nil, err
	}
	if info := lockout.Info(rec, s.now()); info != nil {
		s.log.Warn("unlock refused while banned",
			zap.Int("attempts", info.Attempts),
			zap.Int("remainingSeconds", info.RemainingSeconds),
		)
		s.metrics.ObserveUnlock(metrics.ResultBanned)
		return nil, &BannedError{Info: *info}
	}

	blob, err := s.kv.Get(KeyEncryptedBlob)
	if errors.Is(err, storage.ErrNotFound) {
		s.metrics.ObserveUnlock(metrics.ResultNoWallet)
		return nil, ErrNoWallet
	}
	if err != nil {
		s.log.Error("failed to read wallet blob", zap.Error(err))
		s.metrics.ObserveUnlock(metrics.ResultStorageError)
		return nil, err
	}

	plaintext, err := crypto.Decrypt(blob, password)
	switch {
	case errors.Is(err, crypto.ErrDecryptionFailed):
		rec = lockout.RecordFailure(rec, s.now())
		if werr := s.writeFailureRecord(rec); werr != nil {
			s.log.Error("failed to persist failure record", zap.Error(werr))
		}
		ban := lockout.Info(rec, rec.LastFailureAt)
		if ban != nil {
			s.metrics.ObserveBan()
		}
		s.log.Warn("wallet decryption failed", zap.Int("attempts", rec.Attempts))
		s.metrics.ObserveUnlock(metrics.ResultWrongPassword)
		return nil, &WrongPasswordError{Attempts: rec.Attempts, Ban: ban}
	case errors.Is(err, crypto.ErrEmptyInput):
		s.metrics.ObserveUnlock(metrics.ResultInvalid)
		return nil, err
	case err != nil:
		s.log.Error("wallet blob is malformed", zap.Error(err))
		s.metrics.ObserveUnlock(metrics.ResultCorrupted)
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	if err := s.clearFailureRecord(); err != nil {
		s.log.Error("failed to reset failure record", zap.Error(err))
	}
	return plaintext, nil
}

// touch updates lastAccess, recreating a missing or unreadable meta record.
func (s *Store) touch(address string) {
	now := s.now().UnixMilli()
	meta, err := s.readMeta()
	if err != nil {
		s.log.Warn("rebuilding wallet meta", zap.Error(err))
		meta = &model.WalletMeta{Address: address, CreatedAt: now}
	}
	meta.LastAccess = now
	if err := s.writeMeta(*meta); err != nil {
		s.log.Error("failed to update last access", zap.Error(err))
	}
}

// Meta returns the cleartext metadata record.
func (s *Store) Meta() (*model.WalletMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readMeta()
}

// UpdateMeta applies the non-nil fields of patch.
func (s *Store) UpdateMeta(patch model.MetaPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta, err := s.readMeta()
	if err != nil {
		return err
	}
	if patch.Address != nil {
		meta.Address = *patch.Address
	}
	if patch.LastAccess != nil {
		meta.LastAccess = *patch.LastAccess
	}
	if patch.HasBackup != nil {
		meta.HasBackup = *patch.HasBackup
	}
	return s.writeMeta(*meta)
}

// SetBackupConfirmed updates only the hasBackup flag.
func (s *Store) SetBackupConfirmed(confirmed bool) error {
	return s.UpdateMeta(model.MetaPatch{HasBackup: &confirmed})
}

// Remove deletes the blob and metadata. The failure record is kept so an
// active ban outlives the wallet.
func (s *Store) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := errors.Join(s.kv.Remove(KeyEncryptedBlob), s.kv.Remove(KeyMeta))
	if err != nil {
		s.log.Error("failed to remove wallet", zap.Error(err))
		return err
	}
	s.log.Info("wallet removed")
	return nil
}

// FailureRecord returns the current failure record, nil when absent.
func (s *Store) FailureRecord() (*lockout.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readFailureRecord()
}

// BanInfo returns the active ban, or nil.
func (s *Store) BanInfo() (*lockout.BanInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.readFailureRecord()
	if err != nil {
		return nil, err
	}
	return lockout.Info(rec, s.now()), nil
}

func (s *Store) readMeta() (*model.WalletMeta, error) {
	raw, err := s.kv.Get(KeyMeta)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoWallet
	}
	if err != nil {
		return nil, err
	}
	var meta model.WalletMeta
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, fmt.Errorf("%w: bad meta: %v", ErrCorrupted, err)
	}
	return &meta, nil
}

func (s *Store) writeMeta(meta model.WalletMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet meta: %w", err)
	}
	return s.kv.Set(KeyMeta, string(data))
}

// readFailureRecord treats an unparsable counter as absent.
func (s *Store) readFailureRecord() (*lockout.Record, error) {
	raw, err := s.kv.Get(KeyFailAttempts)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	attempts, err := strconv.Atoi(raw)
	if err != nil || attempts <= 0 {
		s.log.Warn("ignoring malformed failure counter")
		return nil, nil
	}

	rec := &lockout.Record{Attempts: attempts}
	rawLast, err := s.kv.Get(KeyLastFail)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		if ms, perr := strconv.ParseInt(rawLast, 10, 64); perr == nil {
			rec.LastFailureAt = time.UnixMilli(ms)
		}
	}
	return rec, nil
}

func (s *Store) writeFailureRecord(rec *lockout.Record) error {
	if rec == nil {
		return s.clearFailureRecord()
	}
	return errors.Join(
		s.kv.Set(KeyFailAttempts, strconv.Itoa(rec.Attempts)),
		s.kv.Set(KeyLastFail, strconv.FormatInt(rec.LastFailureAt.UnixMilli(), 10)),
	)
}

func (s *Store) clearFailureRecord() error {
	return errors.Join(s.kv.Remove(KeyFailAttempts), s.kv.Remove(KeyLastFail))
}
