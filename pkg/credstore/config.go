package credstore

// Config holds store settings loadable from the environment. An empty Path
// means the caller should fall back to DefaultPath.
type Config struct {
	Path string `env:"HIREDESK_CREDENTIALS_FILE"`
}
