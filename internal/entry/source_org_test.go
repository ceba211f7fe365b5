package entry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilterOrgEntriesPolicy(t *testing.T) {
	valid := &OrgEntry{
		BookID:      1,
		AgeGroup:    0,
		Parody:      "Touhou Project",
		ReleaseDate: time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	wrongAge := &OrgEntry{BookID: 2, AgeGroup: 1, Parody: "Touhou Project",
		ReleaseDate: time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)}
	wrongParody := &OrgEntry{BookID: 3, AgeGroup: 0, Parody: "Other",
		ReleaseDate: time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)}
	noDate := &OrgEntry{BookID: 4, AgeGroup: 0, Parody: "Touhou Project"}
	tooOld := &OrgEntry{BookID: 5, AgeGroup: 0, Parody: "Touhou Project",
		ReleaseDate: time.Date(2002, 1, 1, 0, 0, 0, 0, time.UTC)}

	result := FilterOrgEntries([]*OrgEntry{valid, wrongAge, wrongParody, noDate, tooOld})
	assert.Equal(t, []*OrgEntry{valid}, result)
}

func TestOrgEntryArtistsCombinesAuthorsAndCircles(t *testing.T) {
	e := &OrgEntry{
		BookID:   1,
		Authors:  []string{"Alice"},
		Circles:  []string{"Wonderland Circle"},
	}
	assert.Equal(t, []string{"Alice", "Wonderland Circle"}, e.Artists())
}
