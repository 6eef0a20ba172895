package crypto

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

var testParams = Params{N: 1 << 4, R: 8, P: 1}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	require := require.New(t)
	plaintext := []byte(`{"mnemonic":"one two three"}`)

	encoded, err := Encrypt(plaintext, []byte("Secret123!"), testParams)
	require.NoError(err)
	require.NotContains(encoded, "mnemonic")

	out, err := Decrypt(encoded, []byte("Secret123!"))
	require.NoError(err)
	require.Equal(plaintext, out)
}

func TestEncryptIsRandomised(t *testing.T) {
	a, err := Encrypt([]byte("same"), []byte("pw"), testParams)
	require.NoError(t, err)
	b, err := Encrypt([]byte("same"), []byte("pw"), testParams)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestDecryptWrongPassword(t *testing.T) {
	encoded, err := Encrypt([]byte("payload"), []byte("right"), testParams)
	require.NoError(t, err)

	_, err = Decrypt(encoded, []byte("wrong"))
	require.ErrorIs(t, err, ErrDecryptionFailed)
	require.NotErrorIs(t, err, ErrMalformedCiphertext)
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	require := require.New(t)
	encoded, err := Encrypt([]byte("payload"), []byte("pw"), testParams)
	require.NoError(err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(err)
	var env envelope
	require.NoError(json.Unmarshal(raw, &env))

	ct, err := base64.StdEncoding.DecodeString(env.CipherText)
	require.NoError(err)
	ct[0] ^= 0xff
	env.CipherText = base64.StdEncoding.EncodeToString(ct)
	raw, err = json.Marshal(env)
	require.NoError(err)

	_, err = Decrypt(base64.StdEncoding.EncodeToString(raw), []byte("pw"))
	require.ErrorIs(err, ErrDecryptionFailed)
}

func TestDecryptMalformed(t *testing.T) {
	good, err := Encrypt([]byte("payload"), []byte("pw"), testParams)
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(good)
	require.NoError(t, err)

	mutate := func(f func(*envelope)) string {
		var env envelope
		require.NoError(t, json.Unmarshal(raw, &env))
		f(&env)
		b, err := json.Marshal(env)
		require.NoError(t, err)
		return base64.StdEncoding.EncodeToString(b)
	}

	tests := []struct {
		name    string
		encoded string
	}{
		{"not base64", "%%%"},
		{"not json", base64.StdEncoding.EncodeToString([]byte("nope"))},
		{"version", mutate(func(e *envelope) { e.Version = 9 })},
		{"kdf", mutate(func(e *envelope) { e.KDF = "md5" })},
		{"params", mutate(func(e *envelope) { e.N = 3 })},
		{"huge n", mutate(func(e *envelope) { e.N = 1 << 30 })},
		{"huge r", mutate(func(e *envelope) { e.R = 4096 })},
		{"huge p", mutate(func(e *envelope) { e.P = 1024 })},
		{"memory", mutate(func(e *envelope) { e.N, e.R, e.P = 1<<22, 8, 1 })},
		{"zero r", mutate(func(e *envelope) { e.R = 0 })},
		{"salt", mutate(func(e *envelope) { e.Salt = "AAAA" })},
		{"nonce", mutate(func(e *envelope) { e.Nonce = "!" })},
		{"ciphertext", mutate(func(e *envelope) { e.CipherText = "" })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(tt.encoded, []byte("pw"))
			require.ErrorIs(t, err, ErrMalformedCiphertext)
			require.NotErrorIs(t, err, ErrDecryptionFailed)
		})
	}
}

func TestEmptyInputs(t *testing.T) {
	_, err := Encrypt(nil, []byte("pw"), testParams)
	require.ErrorIs(t, err, ErrEmptyInput)
	_, err = Encrypt([]byte("x"), nil, testParams)
	require.ErrorIs(t, err, ErrEmptyInput)
	_, err = Decrypt("anything", nil)
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())
	require.Error(t, Params{N: 1000, R: 8, P: 1}.Validate())
	require.Error(t, Params{N: 16, R: 0, P: 1}.Validate())

	require.Error(t, Params{N: 16, R: 33, P: 1}.Validate())
	require.Error(t, Params{N: 16, R: 8, P: 17}.Validate())
	require.Error(t, Params{N: 1 << 21, R: 8, P: 1}.Validate())
	require.NoError(t, Params{N: 1 << 20, R: 8, P: 16}.Validate())
	require.Equal(t, int64(256<<20), DefaultParams().Memory())

	_, err := Encrypt([]byte("x"), []byte("pw"), Params{N: 15, R: 1, P: 1})
	require.Error(t, err)
	_, err = Encrypt([]byte("x"), []byte("pw"), Params{N: 16, R: 4096, P: 1024})
	require.Error(t, err)
}

func TestInspectRejectsExpensiveParams(t *testing.T) {
	env := envelope{Version: envelopeVersion, KDF: kdfScrypt, N: 1 << 22, R: 4096, P: 1024}
	b, err := json.Marshal(env)
	require.NoError(t, err)

	_, err = Inspect(base64.StdEncoding.EncodeToString(b))
	require.ErrorIs(t, err, ErrMalformedCiphertext)
}

func TestInspect(t *testing.T) {
	encoded, err := Encrypt([]byte("x"), []byte("pw"), testParams)
	require.NoError(t, err)

	p, err := Inspect(encoded)
	require.NoError(t, err)
	require.Equal(t, testParams, p)
}
