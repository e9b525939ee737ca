package bot

// Config represents the configuration for the bot
type Config struct {
	// Bot token from BotFather
	Token string
	// Chat that receives the daily digest
	ChatID int64
	// Default number of entries listed by /top
	DefaultTopSize int
	// Upper bound for /top N
	MaxTopSize int
	// Long polling timeout in seconds
	UpdateTimeout int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() Config {
	return Config{
		DefaultTopSize: 5,
		MaxTopSize:     25,
		UpdateTimeout:  60,
	}
}
