package client

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ecowastehunt-be/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestLedger(t *testing.T, upvotes, downvotes int, current models.VoteType) *VoteLedger {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Vote recorded"}`))
	}))
	t.Cleanup(srv.Close)

	api := New(srv.URL, &MemoryTokenStore{}, nil)
	detail := &ReportDetail{
		Report: models.WasteReport{
			ID:        primitive.NewObjectID(),
			Upvotes:   upvotes,
			Downvotes: downvotes,
		},
		UserVote: current,
	}
	return NewVoteLedger(api, detail, nil)
}

func TestCastVote_FreshUpvote(t *testing.T) {
	ledger := newTestLedger(t, 5, 2, models.VoteNone)

	ledger.CastVote(models.VoteUp)

	up, down := ledger.Counts()
	assert.Equal(t, 6, up)
	assert.Equal(t, 2, down)
	assert.Equal(t, models.VoteUp, ledger.Current())
}

func TestCastVote_RepeatedCallRetracts(t *testing.T) {
	ledger := newTestLedger(t, 5, 2, models.VoteNone)

	ledger.CastVote(models.VoteUp)
	ledger.CastVote(models.VoteUp)

	up, down := ledger.Counts()
	assert.Equal(t, 5, up)
	assert.Equal(t, 2, down)
	assert.Equal(t, models.VoteNone, ledger.Current())
}

func TestCastVote_SwitchDirection(t *testing.T) {
	ledger := newTestLedger(t, 5, 2, models.VoteNone)

	ledger.CastVote(models.VoteUp)
	ledger.CastVote(models.VoteDown)

	up, down := ledger.Counts()
	assert.Equal(t, 5, up)
	assert.Equal(t, 3, down)
	assert.Equal(t, models.VoteDown, ledger.Current())
}

func TestCastVote_CountersNeverNegative(t *testing.T) {
	ledger := newTestLedger(t, 0, 0, models.VoteNone)

	sequence := []models.VoteType{
		models.VoteDown, models.VoteDown, models.VoteUp,
		models.VoteUp, models.VoteDown, models.VoteUp, models.VoteUp,
	}
	for _, v := range sequence {
		ledger.CastVote(v)
		up, down := ledger.Counts()
		assert.GreaterOrEqual(t, up, 0)
		assert.GreaterOrEqual(t, down, 0)
	}
}

func TestCastVote_AtMostOneDirectionActive(t *testing.T) {
	ledger := newTestLedger(t, 10, 10, models.VoteNone)

	ledger.CastVote(models.VoteUp)
	ledger.CastVote(models.VoteDown)
	ledger.CastVote(models.VoteDown)
	ledger.CastVote(models.VoteUp)

	up, down := ledger.Counts()
	assert.Equal(t, 11, up)
	assert.Equal(t, 10, down)
	assert.Equal(t, models.VoteUp, ledger.Current())
}

func TestCastVote_IgnoresInvalidTarget(t *testing.T) {
	ledger := newTestLedger(t, 5, 2, models.VoteNone)

	ledger.CastVote(models.VoteNone)

	up, down := ledger.Counts()
	assert.Equal(t, 5, up)
	assert.Equal(t, 2, down)
	assert.Equal(t, models.VoteNone, ledger.Current())
}

func TestCastVote_StartingFromExistingVote(t *testing.T) {
	ledger := newTestLedger(t, 5, 2, models.VoteUp)

	ledger.CastVote(models.VoteUp)

	up, down := ledger.Counts()
	assert.Equal(t, 4, up)
	assert.Equal(t, 2, down)
	assert.Equal(t, models.VoteNone, ledger.Current())
}
