package config

func (c *Config) GetBotToken() string {
	return c.v.GetString("bot_token")
}

// GetGuildID returns the development guild for command registration.
// Empty means commands register globally.
func (c *Config) GetGuildID() string {
	return c.v.GetString("guild_id")
}

func (c *Config) GetFirebaseProjectID() string {
	return c.v.GetString("firebase_project_id")
}

func (c *Config) GetGoogleCredentialsFile() string {
	return c.v.GetString("google_credentials_file")
}

func (c *Config) GetDataBackend() string {
	return c.v.GetString("data_backend")
}

func (c *Config) GetPostgresDSN() string {
	return c.v.GetString("postgres_dsn")
}

func (c *Config) GetYouTubeAPIKey() string {
	return c.v.GetString("youtube_api_key")
}

func (c *Config) GetYouTubeChannelID() string {
	return c.v.GetString("youtube_channel_id")
}

func (c *Config) GetModActionLogChannelID() string {
	return c.v.GetString("mod_action_log_channel_id")
}

func (c *Config) GetLogChannelID() string {
	return c.v.GetString("log_channel_id")
}

func (c *Config) GetDatabasePath() string {
	return c.v.GetString("database_path")
}

func (c *Config) GetHealthAddr() string {
	return c.v.GetString("health_addr")
}

func (c *Config) GetOpsKeywords() []string {
	return c.v.GetStringSlice("ops_keywords")
}
