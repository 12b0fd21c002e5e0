package scheduler

import (
	"database/sql"
	"time"

	"emperror.dev/errors"
	"github.com/gofrs/uuid"
	"github.com/guildcal/guildcal/common"
	"github.com/guildcal/guildcal/repeattime"
)

// ScheduledMessage is a single row in scheduled_messages
type ScheduledMessage struct {
	ID        uuid.UUID                 `db:"id"`
	GuildID   int64                     `db:"guild_id"`
	ChannelID int64                     `db:"channel_id"`
	UserID    int64                     `db:"user_id"`
	Text      string                    `db:"text"`
	Timestamp time.Time                 `db:"timestamp"`
	Repeat    repeattime.NullRepeatTime `db:"repeat"`
}

var (
	ErrNoGuild     = errors.NewPlain("scheduled message is missing a guild id")
	ErrNoChannel   = errors.NewPlain("scheduled message is missing a channel id")
	ErrNoUser      = errors.NewPlain("scheduled message is missing a user id")
	ErrNoText      = errors.NewPlain("scheduled message has no text")
	ErrNoTimestamp = errors.NewPlain("scheduled message is missing a timestamp")
)

// Validate is the write boundary check, the schema itself carries no foreign
// keys so bogus snowflakes have to be rejected here
func (m *ScheduledMessage) Validate() error {
	if m.GuildID == 0 {
		return ErrNoGuild
	}
	if m.ChannelID == 0 {
		return ErrNoChannel
	}
	if m.UserID == 0 {
		return ErrNoUser
	}
	if m.Text == "" {
		return ErrNoText
	}
	if m.Timestamp.IsZero() {
		return ErrNoTimestamp
	}
	if m.Repeat.Valid && !m.Repeat.RepeatTime.IsValid() {
		return repeattime.ErrUnknownRepeatTime
	}

	return nil
}

// NextSend returns when the message should be queued again after being sent,
// and false if it was a one-off
func (m *ScheduledMessage) NextSend() (time.Time, bool) {
	if !m.Repeat.Valid {
		return time.Time{}, false
	}

	return m.Repeat.RepeatTime.Next(m.Timestamp), true
}

const selectMessageCols = `SELECT id, guild_id, channel_id, user_id, text, timestamp, repeat FROM scheduled_messages`

// FetchByID returns the scheduled message with the given id, nil if there is none
func FetchByID(id uuid.UUID) (*ScheduledMessage, error) {
	const q = selectMessageCols + ` WHERE id = $1;`

	msg := &ScheduledMessage{}
	err := common.SQLX.Get(msg, q, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStackIf(err)
	}

	return msg, nil
}

// FetchForGuild returns all of the guild's scheduled messages, soonest first
func FetchForGuild(guildID int64) ([]*ScheduledMessage, error) {
	const q = selectMessageCols + ` WHERE guild_id = $1 ORDER BY timestamp ASC;`

	var msgs []*ScheduledMessage
	err := common.SQLX.Select(&msgs, q, guildID)
	if err != nil {
		return nil, errors.WithStackIf(err)
	}

	return msgs, nil
}

// FetchDue returns all messages scheduled at or before t, across all guilds,
// this is what the sender process polls on
func FetchDue(t time.Time) ([]*ScheduledMessage, error) {
	const q = selectMessageCols + ` WHERE timestamp <= $1 ORDER BY timestamp ASC;`

	var msgs []*ScheduledMessage
	err := common.SQLX.Select(&msgs, q, t.UTC())
	if err != nil {
		return nil, errors.WithStackIf(err)
	}

	return msgs, nil
}

// Save validates and upserts the message, assigning an id on first save
func (m *ScheduledMessage) Save() error {
	if err := m.Validate(); err != nil {
		return err
	}

	if m.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return errors.WithStackIf(err)
		}
		m.ID = id
	}

	const q = `INSERT INTO scheduled_messages (id, guild_id, channel_id, user_id, text, timestamp, repeat)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id)
	DO UPDATE SET
		guild_id = excluded.guild_id,
		channel_id = excluded.channel_id,
		user_id = excluded.user_id,
		text = excluded.text,
		timestamp = excluded.timestamp,
		repeat = excluded.repeat;`

	_, err := common.PQ.Exec(q, m.ID, m.GuildID, m.ChannelID, m.UserID, m.Text, m.Timestamp.UTC(), m.Repeat)
	if err != nil {
		return errors.WithStackIf(err)
	}

	metricsMessagesQueued.Inc()
	return nil
}

// Reschedule moves a repeating message to its next send time and saves it,
// one-off messages are deleted instead. Intended to be called by the sender
// after a successful send.
func (m *ScheduledMessage) Reschedule() error {
	next, ok := m.NextSend()
	if !ok {
		return m.Delete()
	}

	m.Timestamp = next
	logger.WithField("id", m.ID).WithField("next", next).Info("rescheduled repeating message")
	return m.Save()
}

// Delete removes the message, clearing the id so the struct can be saved
// again as a new message
func (m *ScheduledMessage) Delete() error {
	const q = `DELETE FROM scheduled_messages WHERE id = $1;`

	_, err := common.PQ.Exec(q, m.ID)
	if err != nil {
		return errors.WithStackIf(err)
	}

	m.ID = uuid.Nil
	return nil
}
