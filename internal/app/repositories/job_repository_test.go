package repositories

import (
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selin/campushub/internal/app/models"
)

func jobFilterSQL(t *testing.T, params GetAllJobsParams) (string, []interface{}) {
	t.Helper()
	builder := squirrel.Select("j.id").From("jobs j").PlaceholderFormat(squirrel.Dollar)
	sql, args, err := applyJobFilters(builder, params).ToSql()
	require.NoError(t, err)
	return sql, args
}

func TestJobFiltersOpenOnlyExcludesClosedAndExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sql, args := jobFilterSQL(t, GetAllJobsParams{OpenOnly: true, Now: now})

	assert.Equal(t, "SELECT j.id FROM jobs j WHERE j.status = $1 AND j.application_deadline >= $2", sql)
	assert.Equal(t, []interface{}{models.JobStatusActive, now}, args)
}

func TestJobFiltersAdminStatusFilter(t *testing.T) {
	status := models.JobStatusDraft
	sql, args := jobFilterSQL(t, GetAllJobsParams{Status: &status})

	assert.Equal(t, "SELECT j.id FROM jobs j WHERE j.status = $1", sql)
	assert.Equal(t, []interface{}{models.JobStatusDraft}, args)
}

func TestJobFiltersAdminUnfiltered(t *testing.T) {
	sql, args := jobFilterSQL(t, GetAllJobsParams{})

	assert.Equal(t, "SELECT j.id FROM jobs j", sql)
	assert.Empty(t, args)
}

func TestJobFiltersLocationCaseInsensitive(t *testing.T) {
	location := "Istanbul"
	sql, args := jobFilterSQL(t, GetAllJobsParams{Location: &location})

	assert.Equal(t, "SELECT j.id FROM jobs j WHERE LOWER(j.location) LIKE $1", sql)
	assert.Equal(t, []interface{}{"%istanbul%"}, args)
}

func TestJobFiltersTypeAndLocationType(t *testing.T) {
	jobType := models.JobTypeInternship
	locationType := "remote"
	sql, args := jobFilterSQL(t, GetAllJobsParams{JobType: &jobType, LocationType: &locationType})

	assert.Equal(t, "SELECT j.id FROM jobs j WHERE j.job_type = $1 AND j.location_type = $2", sql)
	assert.Equal(t, []interface{}{models.JobTypeInternship, "remote"}, args)
}

func TestJobFiltersSearchSpansTitleCompanyLocation(t *testing.T) {
	search := "Acme"
	sql, args := jobFilterSQL(t, GetAllJobsParams{Search: &search})

	assert.Equal(t, "SELECT j.id FROM jobs j WHERE (LOWER(j.title) LIKE $1 OR LOWER(j.company) LIKE $2 OR LOWER(j.location) LIKE $3)", sql)
	assert.Equal(t, []interface{}{"%acme%", "%acme%", "%acme%"}, args)
}
