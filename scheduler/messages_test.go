package scheduler

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/guildcal/guildcal/common"
	"github.com/guildcal/guildcal/common/testutils"
	"github.com/guildcal/guildcal/repeattime"
	"github.com/jmoiron/sqlx"
)

func TestMain(m *testing.M) {
	initQueries := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		repeattime.GuardedCreateType,
	}
	initQueries = append(initQueries, DBSchemas...)

	conn, err := testutils.InitPQ([]string{"scheduled_messages"}, initQueries)
	if err != nil {
		fmt.Println("Postgres unavailable, running only the pure tests: ", err)
	} else {
		common.PQ = conn
		common.SQLX = sqlx.NewDb(conn, "postgres")
	}

	os.Exit(m.Run())
}

func requirePQ(t *testing.T) {
	if common.PQ == nil {
		t.Skip("needs postgres")
	}
}

func testMessage(guildID int64, text string, ts time.Time) *ScheduledMessage {
	return &ScheduledMessage{
		GuildID:   guildID,
		ChannelID: 400,
		UserID:    500,
		Text:      text,
		Timestamp: ts,
	}
}

func TestSaveFetchRoundTrip(t *testing.T) {
	requirePQ(t)
	defer testutils.ClearTables(common.PQ, "scheduled_messages")

	msg := testMessage(2000, "happy new year!", time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC))
	msg.Repeat = repeattime.From(repeattime.Yearly)

	if err := msg.Save(); err != nil {
		t.Fatal(err)
	}
	if msg.ID == uuid.Nil {
		t.Fatal("expected an id to be assigned on save")
	}

	fetched, err := FetchByID(msg.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fetched == nil {
		t.Fatal("expected to find the saved message")
	}

	if fetched.Text != msg.Text || fetched.ChannelID != 400 {
		t.Errorf("round trip mismatch: %#v", fetched)
	}
	if !fetched.Repeat.Valid || fetched.Repeat.RepeatTime != repeattime.Yearly {
		t.Errorf("expected yearly repeat, got %#v", fetched.Repeat)
	}
}

func TestNullRepeatAccepted(t *testing.T) {
	requirePQ(t)
	defer testutils.ClearTables(common.PQ, "scheduled_messages")

	msg := testMessage(2001, "one off", time.Date(2022, time.June, 1, 12, 0, 0, 0, time.UTC))
	if err := msg.Save(); err != nil {
		t.Fatal(err)
	}

	fetched, err := FetchByID(msg.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fetched.Repeat.Valid {
		t.Error("expected NULL repeat to survive the round trip")
	}

	if _, ok := fetched.NextSend(); ok {
		t.Error("a one-off message has no next send time")
	}
}

func TestFetchDue(t *testing.T) {
	requirePQ(t)
	defer testutils.ClearTables(common.PQ, "scheduled_messages")

	now := time.Date(2022, time.June, 15, 12, 0, 0, 0, time.UTC)

	past := testMessage(2002, "past", now.Add(-time.Hour))
	future := testMessage(2002, "future", now.Add(time.Hour))
	if err := past.Save(); err != nil {
		t.Fatal(err)
	}
	if err := future.Save(); err != nil {
		t.Fatal(err)
	}

	due, err := FetchDue(now)
	if err != nil {
		t.Fatal(err)
	}

	if len(due) != 1 || due[0].Text != "past" {
		t.Errorf("expected only the past message to be due, got %#v", due)
	}
}

func TestRescheduleRepeating(t *testing.T) {
	requirePQ(t)
	defer testutils.ClearTables(common.PQ, "scheduled_messages")

	ts := time.Date(2022, time.June, 1, 9, 0, 0, 0, time.UTC)
	msg := testMessage(2003, "standup", ts)
	msg.Repeat = repeattime.From(repeattime.Daily)
	if err := msg.Save(); err != nil {
		t.Fatal(err)
	}

	id := msg.ID
	if err := msg.Reschedule(); err != nil {
		t.Fatal(err)
	}

	fetched, err := FetchByID(id)
	if err != nil {
		t.Fatal(err)
	}
	if fetched == nil {
		t.Fatal("expected the repeating message to still exist")
	}
	if !fetched.Timestamp.Equal(ts.AddDate(0, 0, 1)) {
		t.Errorf("expected the timestamp to move a day forward, got %v", fetched.Timestamp)
	}
}

func TestRescheduleOneOffDeletes(t *testing.T) {
	requirePQ(t)
	defer testutils.ClearTables(common.PQ, "scheduled_messages")

	msg := testMessage(2004, "once", time.Date(2022, time.June, 1, 9, 0, 0, 0, time.UTC))
	if err := msg.Save(); err != nil {
		t.Fatal(err)
	}

	id := msg.ID
	if err := msg.Reschedule(); err != nil {
		t.Fatal(err)
	}

	fetched, err := FetchByID(id)
	if err != nil {
		t.Fatal(err)
	}
	if fetched != nil {
		t.Error("expected the one-off message to be deleted after sending")
	}
}

func TestValidate(t *testing.T) {
	ts := time.Date(2022, time.June, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		msg  *ScheduledMessage
		err  error
	}{
		{"missing guild", &ScheduledMessage{ChannelID: 1, UserID: 1, Text: "x", Timestamp: ts}, ErrNoGuild},
		{"missing channel", &ScheduledMessage{GuildID: 1, UserID: 1, Text: "x", Timestamp: ts}, ErrNoChannel},
		{"missing user", &ScheduledMessage{GuildID: 1, ChannelID: 1, Text: "x", Timestamp: ts}, ErrNoUser},
		{"missing text", &ScheduledMessage{GuildID: 1, ChannelID: 1, UserID: 1, Timestamp: ts}, ErrNoText},
		{"missing timestamp", &ScheduledMessage{GuildID: 1, ChannelID: 1, UserID: 1, Text: "x"}, ErrNoTimestamp},
		{"ok", &ScheduledMessage{GuildID: 1, ChannelID: 1, UserID: 1, Text: "x", Timestamp: ts}, nil},
	}

	for _, c := range cases {
		if err := c.msg.Validate(); err != c.err {
			t.Errorf("%s: expected %v, got %v", c.name, c.err, err)
		}
	}
}
