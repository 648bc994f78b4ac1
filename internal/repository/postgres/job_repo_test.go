package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/localjobs/localjobs-api/internal/domain"
	"github.com/localjobs/localjobs-api/internal/repository"
	"github.com/localjobs/localjobs-api/internal/repository/postgres"
	"github.com/localjobs/localjobs-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestJobRepository_Search_Visibility(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewJobRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().AsBusiness("Acme").Verified().Build(t, testDB.DB)

	testutil.NewJobBuilder(owner).WithTitle("Visible open job").Build(t, testDB.DB)
	testutil.NewJobBuilder(owner).WithTitle("Closed job").WithStatus(domain.JobStatusClosed).Build(t, testDB.DB)
	testutil.NewJobBuilder(owner).WithTitle("Inactive job").Inactive().Build(t, testDB.DB)

	jobs, err := repo.Search(ctx, repository.JobFilter{Limit: 20})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Visible open job", jobs[0].Title)

	count, err := repo.Count(ctx, repository.JobFilter{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestJobRepository_Search_Filters(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewJobRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().AsBusiness("Acme").Verified().Build(t, testDB.DB)

	// 25 jobs in Algiers priced 100..2500 step 100
	for i := 1; i <= 25; i++ {
		testutil.NewJobBuilder(owner).
			WithTitle("Garden maintenance work").
			WithCity("Algiers").
			WithPrice(float64(i * 100)).
			Build(t, testDB.DB)
	}
	testutil.NewJobBuilder(owner).
		WithTitle("Plumbing repair visit").
		WithCity("Oran").
		WithCategory("plumbing").
		WithPrice(700).
		Build(t, testDB.DB)

	tests := []struct {
		name      string
		filter    repository.JobFilter
		wantCount int64
		wantLen   int
	}{
		{
			name: "city and price range",
			filter: repository.JobFilter{
				City:     "Algiers",
				MinPrice: floatPtr(500),
				MaxPrice: floatPtr(1000),
				Limit:    10,
			},
			wantCount: 6, // 500, 600, ..., 1000
			wantLen:   6,
		},
		{
			name: "free-text search matches title",
			filter: repository.JobFilter{
				Search: "plumbing",
				Limit:  20,
			},
			wantCount: 1,
			wantLen:   1,
		},
		{
			name: "category exact match",
			filter: repository.JobFilter{
				Category: "plumbing",
				Limit:    20,
			},
			wantCount: 1,
			wantLen:   1,
		},
		{
			name: "inverted price range yields empty set",
			filter: repository.JobFilter{
				MinPrice: floatPtr(1000),
				MaxPrice: floatPtr(500),
				Limit:    20,
			},
			wantCount: 0,
			wantLen:   0,
		},
		{
			name: "pagination returns one page, count returns all",
			filter: repository.JobFilter{
				City:  "Algiers",
				Limit: 10,
			},
			wantCount: 25,
			wantLen:   10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := repo.Search(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, jobs, tt.wantLen)

			count, err := repo.Count(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestJobRepository_Search_Ordering(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewJobRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().AsBusiness("Acme").Verified().Build(t, testDB.DB)

	base := time.Now().Add(-time.Hour)
	testutil.NewJobBuilder(owner).WithTitle("oldest posting here").WithCreatedAt(base).Build(t, testDB.DB)
	testutil.NewJobBuilder(owner).WithTitle("middle posting here").WithCreatedAt(base.Add(time.Minute)).Build(t, testDB.DB)
	testutil.NewJobBuilder(owner).WithTitle("newest posting here").WithCreatedAt(base.Add(2 * time.Minute)).Build(t, testDB.DB)

	jobs, err := repo.Search(ctx, repository.JobFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "newest posting here", jobs[0].Title)
	assert.Equal(t, "oldest posting here", jobs[2].Title)

	// Offset paginates in the same order
	jobs, err = repo.Search(ctx, repository.JobFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "oldest posting here", jobs[0].Title)
}

func TestJobRepository_IncrementViews(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewJobRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().AsBusiness("Acme").Verified().Build(t, testDB.DB)
	job := testutil.NewJobBuilder(owner).Build(t, testDB.DB)

	require.NoError(t, repo.IncrementViews(ctx, job.ID))
	require.NoError(t, repo.IncrementViews(ctx, job.ID))

	got, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Views)
}
