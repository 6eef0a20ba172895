package model

// WalletMeta is the cleartext record stored next to the encrypted blob
type WalletMeta struct {
	Address    string `json:"address"`
	CreatedAt  int64  `json:"createdAt"`  // epoch ms
	LastAccess int64  `json:"lastAccess"` // epoch ms
	HasBackup  bool   `json:"hasBackup"`
}

// MetaPatch is a partial WalletMeta update; nil fields are left unchanged
type MetaPatch struct {
	Address    *string
	LastAccess *int64
	HasBackup  *bool
}

// StoredKeyPair is the protected key pair as hex strings
type StoredKeyPair struct {
	PrivateKey string `json:"privateKey"`
	PublicKey  string `json:"publicKey"`
}

// StoredSecrets is the plaintext that gets encrypted into wallet.encryptedBlob
type StoredSecrets struct {
	Mnemonic string        `json:"mnemonic"`
	Seed     string        `json:"seed"` // hex, 64 bytes
	KeyPair  StoredKeyPair `json:"keyPair"`
	Path     string        `json:"path,omitempty"`
	Network  string        `json:"network,omitempty"`
}
