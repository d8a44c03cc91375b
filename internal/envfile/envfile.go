// Package envfile models the backend's environment file: the settings the
// setup wizard collects, their fixed defaults, and the on-disk key=value
// format.
package envfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	KeyBotToken    = "TELEGRAM_BOT_TOKEN"
	KeyWebhookURL  = "TELEGRAM_WEBHOOK_URL"
	KeyDatabase    = "DATABASE_PATH"
	KeyJWTSecret   = "JWT_SECRET"
	KeyPort        = "PORT"
	KeyNodeEnv     = "NODE_ENV"
	KeyUploadPath  = "UPLOAD_PATH"
	KeyMaxFileSize = "MAX_FILE_SIZE"
	KeyAdminUser   = "ADMIN_USERNAME"
	KeyAdminPass   = "ADMIN_PASSWORD"
)

const (
	DefaultWebhookURL   = "https://your-domain.com/webhook"
	DefaultDatabasePath = "./data/shop.db"
	DefaultJWTSecret    = "your-super-secret-jwt-key-2024"
	DefaultPort         = "3000"
	DefaultNodeEnv      = "development"
	DefaultUploadPath   = "./uploads"
	DefaultMaxFileSize  = "10485760"
	DefaultAdminUser    = "admin"
	DefaultAdminPass    = "admin123"
)

// RequiredKeys lists every key a persisted file must carry, in file order.
var RequiredKeys = []string{
	KeyBotToken,
	KeyWebhookURL,
	KeyDatabase,
	KeyJWTSecret,
	KeyPort,
	KeyNodeEnv,
	KeyUploadPath,
	KeyMaxFileSize,
	KeyAdminUser,
	KeyAdminPass,
}

// Settings is the configuration record written once per setup run.
type Settings struct {
	BotToken      string
	WebhookURL    string
	DatabasePath  string
	JWTSecret     string
	Port          string
	NodeEnv       string
	UploadPath    string
	MaxFileSize   string
	AdminUsername string
	AdminPassword string
}

// NewSettings fills every field the operator is never asked about with its
// fixed default. The three answers are resolved by the caller.
func NewSettings(botToken, jwtSecret, port string) Settings {
	return Settings{
		BotToken:      botToken,
		WebhookURL:    DefaultWebhookURL,
		DatabasePath:  DefaultDatabasePath,
		JWTSecret:     jwtSecret,
		Port:          port,
		NodeEnv:       DefaultNodeEnv,
		UploadPath:    DefaultUploadPath,
		MaxFileSize:   DefaultMaxFileSize,
		AdminUsername: DefaultAdminUser,
		AdminPassword: DefaultAdminPass,
	}
}

// BotTokenValue returns the answer unchanged. Empty tokens are accepted.
func BotTokenValue(answer string) string {
	return answer
}

// JWTSecretOrDefault returns answer, or DefaultJWTSecret when the answer is blank.
func JWTSecretOrDefault(answer string) string {
	return valueOrDefault(answer, DefaultJWTSecret)
}

// PortOrDefault returns answer, or DefaultPort when the answer is blank.
func PortOrDefault(answer string) string {
	return valueOrDefault(answer, DefaultPort)
}

func valueOrDefault(answer, fallback string) string {
	if strings.TrimSpace(answer) == "" {
		return fallback
	}
	return answer
}

type section struct {
	comment string
	entries [][2]string
}

func (s Settings) sections() []section {
	return []section{
		{"Telegram Bot Configuration", [][2]string{
			{KeyBotToken, s.BotToken},
			{KeyWebhookURL, s.WebhookURL},
		}},
		{"Database Configuration", [][2]string{
			{KeyDatabase, s.DatabasePath},
		}},
		{"JWT Secret for Authentication", [][2]string{
			{KeyJWTSecret, s.JWTSecret},
		}},
		{"Server Configuration", [][2]string{
			{KeyPort, s.Port},
			{KeyNodeEnv, s.NodeEnv},
		}},
		{"File Upload Configuration", [][2]string{
			{KeyUploadPath, s.UploadPath},
			{KeyMaxFileSize, s.MaxFileSize},
		}},
		{"Admin Configuration", [][2]string{
			{KeyAdminUser, s.AdminUsername},
			{KeyAdminPass, s.AdminPassword},
		}},
	}
}

// Render produces the env file contents. The output is deterministic:
// commented sections, keys in RequiredKeys order, values unquoted.
func Render(s Settings) []byte {
	var buf bytes.Buffer
	for i, sec := range s.sections() {
		if i > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "# %s\n", sec.comment)
		for _, kv := range sec.entries {
			fmt.Fprintf(&buf, "%s=%s\n", kv[0], kv[1])
		}
	}
	return buf.Bytes()
}

// WriteError reports a failure to persist the env file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Write persists s to path in a single whole-buffer write.
func Write(path string, s Settings) error {
	if err := os.WriteFile(path, Render(s), 0o600); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// Exists reports whether an env file is already present at path.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", path, err)
}

// Read parses an existing env file.
func Read(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return values, nil
}

// Missing returns the required keys absent from values, in file order.
func Missing(values map[string]string) []string {
	var missing []string
	for _, key := range RequiredKeys {
		if _, ok := values[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}
