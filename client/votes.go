package client

import (
	"context"
	"sync"
	"time"

	"ecowastehunt-be/models"

	"github.com/sirupsen/logrus"
)

// VoteLedger tracks the current user's vote on one report and keeps the
// displayed counters consistent under rapid toggling. Counter updates are
// optimistic: they apply immediately and a fire-and-forget request tells the
// server afterwards. A failed sync is logged and swallowed; the next full
// report fetch is the source of truth, no rollback happens here.
type VoteLedger struct {
	mu sync.Mutex

	api      *Client
	log      *logrus.Logger
	reportID string

	current   models.VoteType
	upvotes   int
	downvotes int
}

// NewVoteLedger seeds the ledger from a fetched report detail.
func NewVoteLedger(api *Client, detail *ReportDetail, log *logrus.Logger) *VoteLedger {
	if log == nil {
		log = logrus.New()
	}
	current := detail.UserVote
	if !current.Valid() || current == "" {
		current = models.VoteNone
	}
	return &VoteLedger{
		api:       api,
		log:       log,
		reportID:  detail.Report.ID.Hex(),
		current:   current,
		upvotes:   detail.Report.Upvotes,
		downvotes: detail.Report.Downvotes,
	}
}

// CastVote applies an up or down vote. Voting the current direction again
// retracts it; voting the other direction moves the vote. Counters never go
// negative and at most one direction is active at a time.
func (l *VoteLedger) CastVote(target models.VoteType) {
	if target != models.VoteUp && target != models.VoteDown {
		return
	}

	l.mu.Lock()
	if l.current == target {
		if target == models.VoteUp {
			l.upvotes--
		} else {
			l.downvotes--
		}
		l.current = models.VoteNone
	} else {
		switch l.current {
		case models.VoteUp:
			l.upvotes--
		case models.VoteDown:
			l.downvotes--
		}
		if target == models.VoteUp {
			l.upvotes++
		} else {
			l.downvotes++
		}
		l.current = target
	}
	if l.upvotes < 0 {
		l.upvotes = 0
	}
	if l.downvotes < 0 {
		l.downvotes = 0
	}
	state := l.current
	l.mu.Unlock()

	go l.sync(state)
}

func (l *VoteLedger) sync(state models.VoteType) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := l.api.CastVote(ctx, l.reportID, state); err != nil {
		l.log.WithError(err).WithField("report_id", l.reportID).Warn("vote sync failed")
	}
}

// Current returns the active vote direction, VoteNone when there is none.
func (l *VoteLedger) Current() models.VoteType {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// Counts returns the displayed upvote and downvote counters.
func (l *VoteLedger) Counts() (upvotes, downvotes int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.upvotes, l.downvotes
}
