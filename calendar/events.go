package calendar

import (
	"database/sql"
	"time"

	"emperror.dev/errors"
	"github.com/gofrs/uuid"
	"github.com/guildcal/guildcal/common"
	"github.com/guildcal/guildcal/repeattime"
)

// Event is a single row in guild_events
type Event struct {
	ID        uuid.UUID                 `db:"id"`
	GuildID   int64                     `db:"guild_id"`
	UserID    int64                     `db:"user_id"`
	Name      string                    `db:"name"`
	Timestamp time.Time                 `db:"timestamp"`
	Repeat    repeattime.NullRepeatTime `db:"repeat"`
}

var (
	ErrNoGuild     = errors.NewPlain("event is missing a guild id")
	ErrNoUser      = errors.NewPlain("event is missing a user id")
	ErrNoName      = errors.NewPlain("event is missing a name")
	ErrNoTimestamp = errors.NewPlain("event is missing a timestamp")
)

// Validate is the write boundary check, the schema itself carries no foreign
// keys so bogus snowflakes have to be rejected here
func (e *Event) Validate() error {
	if e.GuildID == 0 {
		return ErrNoGuild
	}
	if e.UserID == 0 {
		return ErrNoUser
	}
	if e.Name == "" {
		return ErrNoName
	}
	if e.Timestamp.IsZero() {
		return ErrNoTimestamp
	}
	if e.Repeat.Valid && !e.Repeat.RepeatTime.IsValid() {
		return repeattime.ErrUnknownRepeatTime
	}

	return nil
}

// NextOccurrence returns the time the event fires again after the stored
// timestamp, and false if the event does not repeat
func (e *Event) NextOccurrence() (time.Time, bool) {
	if !e.Repeat.Valid {
		return time.Time{}, false
	}

	return e.Repeat.RepeatTime.Next(e.Timestamp), true
}

const selectEventCols = `SELECT id, guild_id, user_id, name, timestamp, repeat FROM guild_events`

// FetchByID returns the event with the given id, nil if there is none
func FetchByID(id uuid.UUID) (*Event, error) {
	const q = selectEventCols + ` WHERE id = $1;`

	event := &Event{}
	err := common.SQLX.Get(event, q, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStackIf(err)
	}

	return event, nil
}

// FetchByName returns the guild's event with the given name (case
// insensitive), nil if there is none
func FetchByName(guildID int64, name string) (*Event, error) {
	const q = selectEventCols + ` WHERE guild_id = $1 AND LOWER(name) = LOWER($2);`

	event := &Event{}
	err := common.SQLX.Get(event, q, guildID, name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStackIf(err)
	}

	return event, nil
}

// ListOptions narrows FetchAllForGuild, the zero value matches everything
type ListOptions struct {
	// NameFilter fuzzy matches the event name, case insensitive
	NameFilter string
	// Month only returns events starting in the given month, any year
	Month time.Month
}

// FetchAllForGuild returns the guild's events, optionally narrowed down
func FetchAllForGuild(guildID int64, opts ListOptions) ([]*Event, error) {
	var events []*Event
	var err error

	switch {
	case opts.NameFilter != "":
		const q = selectEventCols + ` WHERE guild_id = $1 AND LOWER(name) LIKE '%' || LOWER($2) || '%';`
		err = common.SQLX.Select(&events, q, guildID, opts.NameFilter)
	case opts.Month != 0:
		const q = selectEventCols + ` WHERE guild_id = $1 AND EXTRACT(MONTH FROM guild_events.timestamp) = $2;`
		err = common.SQLX.Select(&events, q, guildID, int(opts.Month))
	default:
		const q = selectEventCols + ` WHERE guild_id = $1;`
		err = common.SQLX.Select(&events, q, guildID)
	}

	if err != nil {
		return nil, errors.WithStackIf(err)
	}

	return events, nil
}

// Save validates and upserts the event, assigning an id on first save
func (e *Event) Save() error {
	if err := e.Validate(); err != nil {
		return err
	}

	if e.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return errors.WithStackIf(err)
		}
		e.ID = id
	}

	const q = `INSERT INTO guild_events (id, guild_id, user_id, name, timestamp, repeat)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id)
	DO UPDATE SET
		guild_id = excluded.guild_id,
		user_id = excluded.user_id,
		name = excluded.name,
		timestamp = excluded.timestamp,
		repeat = excluded.repeat;`

	_, err := common.PQ.Exec(q, e.ID, e.GuildID, e.UserID, e.Name, e.Timestamp.UTC(), e.Repeat)
	if err != nil {
		return errors.WithStackIf(err)
	}

	metricsEventsSaved.Inc()
	return nil
}

// Delete removes the event, clearing the id so the struct can be saved again
// as a new event
func (e *Event) Delete() error {
	const q = `DELETE FROM guild_events WHERE id = $1;`

	_, err := common.PQ.Exec(q, e.ID)
	if err != nil {
		return errors.WithStackIf(err)
	}

	logger.WithField("guild", e.GuildID).WithField("event", e.Name).Info("deleted calendar event")

	e.ID = uuid.Nil
	return nil
}
