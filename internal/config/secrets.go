package config

// RedactedConfig returns a shallow copy of cfg with sensitive fields replaced
// by the redaction placeholder "***". Use this when logging or printing the
// active configuration so the bot token is never accidentally exposed.
func RedactedConfig(cfg *Config) Config {
	out := *cfg // shallow copy of the top-level struct

	out.Telegram = cfg.Telegram
	redact(&out.Telegram.Token)

	out.Redis = cfg.Redis
	redact(&out.Redis.Password)

	// Copy slices so callers cannot mutate the original through the
	// redacted copy. Chat IDs double as credentials, so mask those too.
	if cfg.Telegram.ChatIDs != nil {
		out.Telegram.ChatIDs = make([]string, len(cfg.Telegram.ChatIDs))
		for i, id := range cfg.Telegram.ChatIDs {
			masked := id
			redact(&masked)
			out.Telegram.ChatIDs[i] = masked
		}
	}
	if cfg.Instruments != nil {
		out.Instruments = make([]InstrumentConfig, len(cfg.Instruments))
		copy(out.Instruments, cfg.Instruments)
	}

	return out
}

const redacted = "***"

// redact replaces a non-empty string with the redacted placeholder.
func redact(s *string) {
	if *s != "" {
		*s = redacted
	}
}
