package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileManager(t *testing.T) *CredentialManager {
	t.Helper()
	cm, err := newCredentialManager(t.TempDir(), false)
	require.NoError(t, err)
	return cm
}

func TestStoreAndGetCredential(t *testing.T) {
	cm := newFileManager(t)

	err := cm.StoreCredential("snowflake-password", "password", "s3cret", map[string]string{
		"account": "xy12345.us-east-1",
	})
	require.NoError(t, err)

	cred, err := cm.GetCredential("snowflake-password")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cred.Value)
	assert.Equal(t, "password", cred.Type)
	assert.Equal(t, "xy12345.us-east-1", cred.Metadata["account"])
	assert.False(t, cred.Encrypted)
}

func TestCredentialStoredEncryptedOnDisk(t *testing.T) {
	cm := newFileManager(t)

	require.NoError(t, cm.StoreCredential("pw", "password", "plaintext-value", nil))

	raw, err := cm.loadCredentialFile("pw")
	require.NoError(t, err)
	assert.True(t, raw.Encrypted)
	assert.NotEqual(t, "plaintext-value", raw.Value)
}

func TestListAndDeleteCredentials(t *testing.T) {
	cm := newFileManager(t)

	require.NoError(t, cm.StoreCredential("a", "password", "1", nil))
	require.NoError(t, cm.StoreCredential("b", "password", "2", nil))

	names, err := cm.ListCredentials()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, names)

	require.NoError(t, cm.DeleteCredential("a"))
	names, err = cm.ListCredentials()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	cm := newFileManager(t)

	ciphertext, err := cm.encrypt("hello")
	require.NoError(t, err)
	assert.NotEqual(t, "hello", ciphertext)

	plaintext, err := cm.decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "hello", plaintext)
}

func TestMasterKeyPersistsAcrossManagers(t *testing.T) {
	dir := t.TempDir()

	first, err := newCredentialManager(dir, false)
	require.NoError(t, err)
	require.NoError(t, first.StoreCredential("pw", "password", "value", nil))

	second, err := newCredentialManager(dir, false)
	require.NoError(t, err)

	cred, err := second.GetCredential("pw")
	require.NoError(t, err)
	assert.Equal(t, "value", cred.Value)
}

func TestGetMissingCredential(t *testing.T) {
	cm := newFileManager(t)

	_, err := cm.GetCredential("nope")
	assert.Error(t, err)
}
