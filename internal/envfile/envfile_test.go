package envfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_LayoutAndOrder(t *testing.T) {
	out := string(Render(NewSettings("ABC123", DefaultJWTSecret, "8080")))

	want := `# Telegram Bot Configuration
TELEGRAM_BOT_TOKEN=ABC123
TELEGRAM_WEBHOOK_URL=https://your-domain.com/webhook

# Database Configuration
DATABASE_PATH=./data/shop.db

# JWT Secret for Authentication
JWT_SECRET=your-super-secret-jwt-key-2024

# Server Configuration
PORT=8080
NODE_ENV=development

# File Upload Configuration
UPLOAD_PATH=./uploads
MAX_FILE_SIZE=10485760

# Admin Configuration
ADMIN_USERNAME=admin
ADMIN_PASSWORD=admin123
`
	assert.Equal(t, want, out)

	var keys []string
	for _, line := range strings.Split(out, "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keys = append(keys, strings.SplitN(line, "=", 2)[0])
	}
	assert.Equal(t, RequiredKeys, keys)
}

func TestRender_ParsesWithAllKeys(t *testing.T) {
	values, err := godotenv.Unmarshal(string(Render(NewSettings("", "s3cret", "3000"))))
	require.NoError(t, err)

	assert.Empty(t, Missing(values))
	assert.Equal(t, "", values[KeyBotToken])
	assert.Equal(t, "s3cret", values[KeyJWTSecret])
	assert.Equal(t, "10485760", values[KeyMaxFileSize])
}

func TestValueOrDefault(t *testing.T) {
	assert.Equal(t, DefaultJWTSecret, JWTSecretOrDefault(""))
	assert.Equal(t, DefaultJWTSecret, JWTSecretOrDefault("   "))
	assert.Equal(t, "mine", JWTSecretOrDefault("mine"))

	assert.Equal(t, "3000", PortOrDefault(""))
	assert.Equal(t, "8080", PortOrDefault("8080"))

	assert.Equal(t, "", BotTokenValue(""))
	assert.Equal(t, "123:abc", BotTokenValue("123:abc"))
}

func TestWriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	exists, err := Exists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, Write(path, NewSettings("tok", "sec", "9000")))

	exists, err = Exists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	values, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "tok", values[KeyBotToken])
	assert.Equal(t, "9000", values[KeyPort])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWrite_Failure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", ".env")

	err := Write(path, NewSettings("tok", "sec", "9000"))
	require.Error(t, err)

	var werr *WriteError
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, path, werr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestMissing(t *testing.T) {
	missing := Missing(map[string]string{
		KeyBotToken: "x",
		KeyPort:     "3000",
	})
	assert.Equal(t, []string{
		KeyWebhookURL, KeyDatabase, KeyJWTSecret, KeyNodeEnv,
		KeyUploadPath, KeyMaxFileSize, KeyAdminUser, KeyAdminPass,
	}, missing)
}
