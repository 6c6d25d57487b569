package conversation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/adelinv/replyscore/internal/helpscout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamThread(id string, body string, createdAt time.Time) helpscout.Thread {
	return helpscout.Thread{
		ID:        json.Number(id),
		Type:      "message",
		Body:      body,
		CreatedBy: helpscout.AuthorRef{Author: helpscout.AuthorTeam},
		CreatedAt: createdAt,
	}
}

func customerThread(id string, body string, createdAt time.Time) helpscout.Thread {
	return helpscout.Thread{
		ID:        json.Number(id),
		Type:      "customer",
		Body:      body,
		CreatedBy: helpscout.AuthorRef{Author: helpscout.AuthorCustomer},
		CreatedAt: createdAt,
	}
}

func TestSelectLatestTeamReply_PicksNewestTeamMessage(t *testing.T) {
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	threads := []helpscout.Thread{
		teamThread("1", "First reply", base),
		customerThread("2", "A question", base.Add(time.Hour)),
		teamThread("3", "Second reply", base.Add(2*time.Hour)),
		customerThread("4", "Thanks", base.Add(3*time.Hour)),
	}

	reply := SelectLatestTeamReply(threads)
	require.NotNil(t, reply)
	assert.Equal(t, "Second reply", reply.Text)
	assert.Equal(t, "3", reply.SourceThreadID)
	assert.Equal(t, helpscout.AuthorTeam, reply.Author)
}

func TestSelectLatestTeamReply_OrderIndependent(t *testing.T) {
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	forward := []helpscout.Thread{
		teamThread("1", "Old", base),
		teamThread("2", "New", base.Add(time.Hour)),
	}
	reversed := []helpscout.Thread{forward[1], forward[0]}

	a := SelectLatestTeamReply(forward)
	b := SelectLatestTeamReply(reversed)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, "New", a.Text)
	assert.Equal(t, a.Text, b.Text)
}

func TestSelectLatestTeamReply_StableTieBreak(t *testing.T) {
	at := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	threads := []helpscout.Thread{
		teamThread("1", "Listed first", at),
		teamThread("2", "Listed second", at),
	}

	reply := SelectLatestTeamReply(threads)
	require.NotNil(t, reply)
	assert.Equal(t, "Listed first", reply.Text)
}

func TestSelectLatestTeamReply_SkipsNotesAndEmptyBodies(t *testing.T) {
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	note := helpscout.Thread{
		ID:        json.Number("5"),
		Type:      "note",
		Body:      "Internal note, newest of all",
		CreatedBy: helpscout.AuthorRef{Author: helpscout.AuthorTeam},
		CreatedAt: base.Add(3 * time.Hour),
	}
	empty := teamThread("6", "   <br> ", base.Add(2*time.Hour))
	real := teamThread("7", "Actual reply", base)

	reply := SelectLatestTeamReply([]helpscout.Thread{note, empty, real})
	require.NotNil(t, reply)
	assert.Equal(t, "Actual reply", reply.Text)
}

func TestSelectLatestTeamReply_AcceptsReplyType(t *testing.T) {
	thread := helpscout.Thread{
		ID:        json.Number("1"),
		Type:      "reply",
		Body:      "Reply-typed thread",
		CreatedBy: helpscout.AuthorRef{Author: helpscout.AuthorTeam},
		CreatedAt: time.Now(),
	}

	reply := SelectLatestTeamReply([]helpscout.Thread{thread})
	require.NotNil(t, reply)
	assert.Equal(t, "Reply-typed thread", reply.Text)
}

func TestSelectLatestTeamReply_NoneFound(t *testing.T) {
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	assert.Nil(t, SelectLatestTeamReply(nil))
	assert.Nil(t, SelectLatestTeamReply([]helpscout.Thread{
		customerThread("1", "Only the customer talked", base),
	}))
}

func TestSelectLatestTeamReply_StripsHTML(t *testing.T) {
	thread := teamThread("1", "<p>Thanks for   reaching out!</p><br><p>Best regards</p>", time.Now())

	reply := SelectLatestTeamReply([]helpscout.Thread{thread})
	require.NotNil(t, reply)
	assert.Equal(t, "Thanks for reaching out! Best regards", reply.Text)
}
