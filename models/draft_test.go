package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() ReportDraft {
	return ReportDraft{
		Title:       "Overflowing bins",
		Description: "Garbage piling up next to the park entrance",
		Location: Location{
			Address:     "12 Tran Phu",
			City:        "Hanoi",
			Coordinates: [2]float64{105.8542, 21.0285},
		},
		WasteType: "general",
		Priority:  5,
		Images:    []LocalImage{{ID: 1, URI: "/tmp/a.jpg"}},
	}
}

func TestValidateDraft_Valid(t *testing.T) {
	assert.Empty(t, ValidateDraft(validDraft()))
}

func TestValidateDraft_TitleErrorComesFirst(t *testing.T) {
	d := validDraft()
	d.Title = "   "
	d.WasteType = ""
	d.Images = nil

	errs := ValidateDraft(d)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0], "title")
}

func TestValidateDraft_Order(t *testing.T) {
	d := ReportDraft{}
	errs := ValidateDraft(d)
	require.Len(t, errs, 5)
	assert.Contains(t, errs[0], "title")
	assert.Contains(t, errs[1], "description")
	assert.Contains(t, errs[2], "address")
	assert.Contains(t, errs[3], "waste type")
	assert.Contains(t, errs[4], "photo")
}

func TestValidateDraft_LengthBounds(t *testing.T) {
	d := validDraft()
	d.Title = strings.Repeat("x", 101)
	errs := ValidateDraft(d)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "100")

	d = validDraft()
	d.Description = strings.Repeat("x", 501)
	errs = ValidateDraft(d)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "500")
}

func TestValidateDraft_LengthBoundsCountRunes(t *testing.T) {
	// 60 characters of a 3-byte rune: well under the 100-character limit
	// even though the byte length is 180.
	d := validDraft()
	d.Title = strings.Repeat("ộ", 60)
	assert.Empty(t, ValidateDraft(d))

	d = validDraft()
	d.Title = strings.Repeat("ộ", 101)
	errs := ValidateDraft(d)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "100")

	d = validDraft()
	d.Description = strings.Repeat("ộ", 500)
	assert.Empty(t, ValidateDraft(d))
}

func TestValidateDraft_TooManyImages(t *testing.T) {
	d := validDraft()
	d.Images = make([]LocalImage, 6)
	errs := ValidateDraft(d)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "5 photos")
}

func TestValidateDraft_UnknownWasteType(t *testing.T) {
	d := validDraft()
	d.WasteType = "plasma"
	errs := ValidateDraft(d)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "waste type")
}

func TestNormalize_TrimsAndDedupesTags(t *testing.T) {
	d := validDraft()
	d.Title = "  spaced out  "
	d.Tags = []string{"park", "urgent", "park", " urgent ", ""}

	d.Normalize()

	assert.Equal(t, "spaced out", d.Title)
	assert.Equal(t, []string{"park", "urgent"}, d.Tags)
}

func TestNormalize_DedupeLeavesOriginalSliceAlone(t *testing.T) {
	tags := []string{"a", "a", "b"}

	d := validDraft()
	d.Tags = tags
	d.Normalize()

	assert.Equal(t, []string{"a", "b"}, d.Tags)
	assert.Equal(t, []string{"a", "a", "b"}, tags, "caller's slice must not be rewritten")
}

func TestPriorityColor(t *testing.T) {
	assert.Equal(t, TierCritical, PriorityColor(10))
	assert.Equal(t, TierCritical, PriorityColor(7))
	assert.Equal(t, TierWarning, PriorityColor(6))
	assert.Equal(t, TierWarning, PriorityColor(4))
	assert.Equal(t, TierOK, PriorityColor(3))
	assert.Equal(t, TierOK, PriorityColor(1))
}

func TestSeverityRank(t *testing.T) {
	assert.Equal(t, 0, SeverityLevel("").Rank())
	assert.Equal(t, 1, SeverityLow.Rank())
	assert.Equal(t, 2, SeverityMedium.Rank())
	assert.Equal(t, 3, SeverityHigh.Rank())
	assert.Equal(t, 4, SeverityCritical.Rank())
}

func TestEnumValidity(t *testing.T) {
	for _, wt := range WasteTypes {
		assert.True(t, wt.Valid())
	}
	assert.False(t, WasteType("PLASTIC").Valid(), "enum keys are canonical lower-case")
	assert.True(t, StatusInProgress.Valid())
	assert.False(t, ReportStatus("archived").Valid())
	assert.True(t, VoteUp.Valid())
	assert.False(t, VoteType("sideways").Valid())
}
