package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/localjobs/localjobs-api/internal/domain"
	"github.com/localjobs/localjobs-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jobsListResponse struct {
	Success bool `json:"success"`
	Jobs    []struct {
		ID    string  `json:"id"`
		Title string  `json:"title"`
		Price float64 `json:"price"`
	} `json:"jobs"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func validJobPayload() map[string]interface{} {
	return map[string]interface{}{
		"title":       "Paint the office walls",
		"description": "Two rooms need a fresh coat of paint before Monday.",
		"category":    "painting",
		"tags":        []string{"paint", "indoor"},
		"price":       5000.0,
		"jobType":     "one-time",
		"duration":    "2 days",
		"city":        "Algiers",
		"address":     "12 Rue Didouche Mourad",
	}
}

// Covers the verification flow end to end: an unverified business is turned
// away until an admin flips the flag.
func TestJobHandler_Create_VerificationFlow(t *testing.T) {
	ts := testutil.NewTestServer(t)

	bizBuilder := testutil.NewUserBuilder().
		WithEmail("acme@example.com").
		AsBusiness("Acme Services")
	business, _ := bizBuilder.Build(t, ts.DB.DB)
	bizToken := bizBuilder.Authenticate(t, ts)

	adminBuilder := testutil.NewUserBuilder().
		WithEmail("admin@example.com").
		AsAdmin()
	adminBuilder.Build(t, ts.DB.DB)
	adminToken := adminBuilder.Authenticate(t, ts)

	// Unverified business is rejected
	resp := doRequest(t, http.MethodPost, ts.APIURL("/jobs"), bizToken, validJobPayload())
	testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "pending verification")
	resp.Body.Close()

	// Admin verifies the account
	resp = doRequest(t, http.MethodPatch,
		ts.APIURL("/admin/users/"+business.ID.String()+"/verification"),
		adminToken, map[string]bool{"isVerified": true})
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	resp.Body.Close()

	// Same token now passes: verification is re-read per request
	resp = doRequest(t, http.MethodPost, ts.APIURL("/jobs"), bizToken, validJobPayload())
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var result struct {
		Job struct {
			BusinessID   string `json:"businessId"`
			BusinessName string `json:"businessName"`
			Status       string `json:"status"`
		} `json:"job"`
	}
	testutil.AssertJSONResponse(t, resp, &result)
	assert.Equal(t, business.ID.String(), result.Job.BusinessID)
	assert.Equal(t, "Acme Services", result.Job.BusinessName)
	assert.Equal(t, "open", result.Job.Status)
}

// A role change in storage takes effect on the next request even though the
// old token remains cryptographically valid.
func TestJobHandler_Create_RoleReResolution(t *testing.T) {
	ts := testutil.NewTestServer(t)

	builder := testutil.NewUserBuilder().
		WithEmail("demoted@example.com").
		AsBusiness("Soon Demoted").
		Verified()
	business, _ := builder.Build(t, ts.DB.DB)
	token := builder.Authenticate(t, ts)

	resp := doRequest(t, http.MethodPost, ts.APIURL("/jobs"), token, validJobPayload())
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	resp.Body.Close()

	// Demote the account while the token is still live
	require.NoError(t, ts.DB.DB.Model(business).Update("user_type", domain.UserTypeUser).Error)

	resp = doRequest(t, http.MethodPost, ts.APIURL("/jobs"), token, validJobPayload())
	defer resp.Body.Close()
	testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "access denied")
}

func TestJobHandler_List_Filters(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, _ := testutil.NewUserBuilder().AsBusiness("Acme").Verified().Build(t, ts.DB.DB)

	// 25 jobs in Algiers priced 100..2500 step 100
	for i := 1; i <= 25; i++ {
		testutil.NewJobBuilder(owner).
			WithCity("Algiers").
			WithPrice(float64(i * 100)).
			Build(t, ts.DB.DB)
	}

	t.Run("city and price range", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet,
			ts.APIURL("/jobs?city=Algiers&minPrice=500&maxPrice=1000&limit=10&page=1"), "", nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result jobsListResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, int64(6), result.Total)
		require.Len(t, result.Jobs, 6)
		for _, job := range result.Jobs {
			assert.GreaterOrEqual(t, job.Price, 500.0)
			assert.LessOrEqual(t, job.Price, 1000.0)
		}
	})

	t.Run("limit is capped at 100", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, ts.APIURL("/jobs?limit=500"), "", nil)
		defer resp.Body.Close()

		var result jobsListResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, 100, result.Limit)
	})

	t.Run("non-positive page becomes page one", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, ts.APIURL("/jobs?page=-2"), "", nil)
		defer resp.Body.Close()

		var result jobsListResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, int64(25), result.Total)
	})

	t.Run("inverted price range is empty, not an error", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, ts.APIURL("/jobs?minPrice=1000&maxPrice=500"), "", nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result jobsListResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, int64(0), result.Total)
		assert.Empty(t, result.Jobs)
	})

	t.Run("malformed price filter is rejected", func(t *testing.T) {
		for _, query := range []string{"minPrice=abc", "maxPrice=12x", "page=one", "limit=ten"} {
			resp := doRequest(t, http.MethodGet, ts.APIURL("/jobs?"+query), "", nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "query %q", query)
			resp.Body.Close()
		}
	})
}

func TestJobHandler_UpdateDelete_Ownership(t *testing.T) {
	ts := testutil.NewTestServer(t)

	ownerBuilder := testutil.NewUserBuilder().WithEmail("owner@example.com").AsBusiness("Owner Co").Verified()
	owner, _ := ownerBuilder.Build(t, ts.DB.DB)
	ownerToken := ownerBuilder.Authenticate(t, ts)

	rivalBuilder := testutil.NewUserBuilder().WithEmail("rival@example.com").AsBusiness("Rival Co").Verified()
	rivalBuilder.Build(t, ts.DB.DB)
	rivalToken := rivalBuilder.Authenticate(t, ts)

	adminBuilder := testutil.NewUserBuilder().WithEmail("admin@example.com").AsAdmin()
	adminBuilder.Build(t, ts.DB.DB)
	adminToken := adminBuilder.Authenticate(t, ts)

	job := testutil.NewJobBuilder(owner).Build(t, ts.DB.DB)
	jobURL := ts.APIURL("/jobs/" + job.ID.String())

	patch := map[string]interface{}{"price": 9999.0}

	// A rival business is refused regardless of token validity
	resp := doRequest(t, http.MethodPatch, jobURL, rivalToken, patch)
	testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "not authorized")
	resp.Body.Close()

	resp = doRequest(t, http.MethodDelete, jobURL, rivalToken, nil)
	testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	resp.Body.Close()

	// The owner may patch
	resp = doRequest(t, http.MethodPatch, jobURL, ownerToken, patch)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	resp.Body.Close()

	// An admin may delete any job
	resp = doRequest(t, http.MethodDelete, jobURL, adminToken, nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = doRequest(t, http.MethodGet, jobURL, "", nil)
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	resp.Body.Close()
}

func TestJobHandler_SaveFlow(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, _ := testutil.NewUserBuilder().AsBusiness("Acme").Verified().Build(t, ts.DB.DB)
	job := testutil.NewJobBuilder(owner).Build(t, ts.DB.DB)

	seekerBuilder := testutil.NewUserBuilder().WithEmail("seeker@example.com")
	seekerBuilder.Build(t, ts.DB.DB)
	seekerToken := seekerBuilder.Authenticate(t, ts)

	bizBuilder := testutil.NewUserBuilder().WithEmail("biz@example.com").AsBusiness("Other Co").Verified()
	bizBuilder.Build(t, ts.DB.DB)
	bizToken := bizBuilder.Authenticate(t, ts)

	savePayload := map[string]string{"jobId": job.ID.String()}

	// Saving is a seeker-only feature
	resp := doRequest(t, http.MethodPost, ts.APIURL("/jobs/save"), bizToken, savePayload)
	testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	resp.Body.Close()

	// First save succeeds
	resp = doRequest(t, http.MethodPost, ts.APIURL("/jobs/save"), seekerToken, savePayload)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	resp.Body.Close()

	// Second save is a conflict
	resp = doRequest(t, http.MethodPost, ts.APIURL("/jobs/save"), seekerToken, savePayload)
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "already saved")
	resp.Body.Close()

	// Unsave, then re-save succeeds
	resp = doRequest(t, http.MethodDelete, ts.APIURL(fmt.Sprintf("/jobs/%s/save", job.ID)), seekerToken, nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = doRequest(t, http.MethodPost, ts.APIURL("/jobs/save"), seekerToken, savePayload)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	resp.Body.Close()

	// Saved job shows up in favorites and on the detail view
	resp = doRequest(t, http.MethodGet, ts.APIURL("/favorites"), seekerToken, nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var favorites struct {
		Jobs []struct {
			JobID    string `json:"jobId"`
			JobTitle string `json:"jobTitle"`
		} `json:"jobs"`
		Total int64 `json:"total"`
	}
	testutil.AssertJSONResponse(t, resp, &favorites)
	resp.Body.Close()
	require.Len(t, favorites.Jobs, 1)
	assert.Equal(t, job.ID.String(), favorites.Jobs[0].JobID)

	resp = doRequest(t, http.MethodGet, ts.APIURL("/jobs/"+job.ID.String()), seekerToken, nil)
	defer resp.Body.Close()
	var detail struct {
		IsSaved bool `json:"isSaved"`
		Job     struct {
			Views int `json:"views"`
		} `json:"job"`
	}
	testutil.AssertJSONResponse(t, resp, &detail)
	assert.True(t, detail.IsSaved)
	assert.Equal(t, 1, detail.Job.Views)

	// Saving a job that does not exist is a 404
	resp = doRequest(t, http.MethodPost, ts.APIURL("/jobs/save"), seekerToken,
		map[string]string{"jobId": "3f9d78f0-0000-0000-0000-000000000000"})
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	resp.Body.Close()
}

func TestJobHandler_Create_RequiresAuth(t *testing.T) {
	ts := testutil.NewTestServer(t)

	seekerBuilder := testutil.NewUserBuilder().WithEmail("seeker@example.com")
	seekerBuilder.Build(t, ts.DB.DB)
	seekerToken := seekerBuilder.Authenticate(t, ts)

	// Anonymous
	resp := doRequest(t, http.MethodPost, ts.APIURL("/jobs"), "", validJobPayload())
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	resp.Body.Close()

	// Wrong role
	resp = doRequest(t, http.MethodPost, ts.APIURL("/jobs"), seekerToken, validJobPayload())
	testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "access denied")
	resp.Body.Close()
}
