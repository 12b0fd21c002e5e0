package calendar

var DBSchemas = []string{`
CREATE TABLE IF NOT EXISTS guild_events (
	id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),

	guild_id BIGINT NOT NULL,
	user_id BIGINT NOT NULL,

	name TEXT NOT NULL,
	timestamp TIMESTAMP NOT NULL,
	repeat repeat_time
);
`, `
CREATE INDEX IF NOT EXISTS guild_events_guild_id_idx ON guild_events(guild_id);
`}
