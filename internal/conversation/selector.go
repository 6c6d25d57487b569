package conversation

import (
	"sort"
	"time"

	"github.com/adelinv/replyscore/internal/helpscout"
)

// SelectedReply is the team message chosen for evaluation. It lives
// only for the duration of one webhook request.
type SelectedReply struct {
	Text           string
	CreatedAt      time.Time
	Author         helpscout.Author
	SourceThreadID string
}

// SelectLatestTeamReply returns the most recent team-authored message
// with a non-empty body, or nil when the conversation has none.
//
// The thread list arrives in no guaranteed order, so it is sorted by
// creation time descending first. The sort is stable: threads sharing
// a timestamp keep their original relative order.
func SelectLatestTeamReply(threads []helpscout.Thread) *SelectedReply {
	sorted := make([]helpscout.Thread, len(threads))
	copy(sorted, threads)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	for _, thread := range sorted {
		if !thread.IsMessage() || thread.Author() != helpscout.AuthorTeam {
			continue
		}
		text := CleanBody(thread.Body)
		if text == "" {
			continue
		}
		return &SelectedReply{
			Text:           text,
			CreatedAt:      thread.CreatedAt,
			Author:         thread.Author(),
			SourceThreadID: thread.ID.String(),
		}
	}

	return nil
}
