package guildsettings

var DBSchemas = []string{`
CREATE TABLE IF NOT EXISTS guild_settings (
	guild_id BIGINT PRIMARY KEY,

	prefix TEXT,
	calendar_message_url TEXT
);
`}
