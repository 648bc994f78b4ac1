package handlers_test

import (
	"net/http"
	"testing"

	"github.com/localjobs/localjobs-api/internal/domain"
	"github.com/localjobs/localjobs-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminHandler_AccessControl(t *testing.T) {
	ts := testutil.NewTestServer(t)

	seekerBuilder := testutil.NewUserBuilder().WithEmail("seeker@example.com")
	seekerBuilder.Build(t, ts.DB.DB)
	seekerToken := seekerBuilder.Authenticate(t, ts)

	resp := doRequest(t, http.MethodGet, ts.APIURL("/admin/users"), "", nil)
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	resp.Body.Close()

	resp = doRequest(t, http.MethodGet, ts.APIURL("/admin/users"), seekerToken, nil)
	testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "access denied")
	resp.Body.Close()
}

func TestAdminHandler_ListUsers(t *testing.T) {
	ts := testutil.NewTestServer(t)

	adminBuilder := testutil.NewUserBuilder().WithEmail("admin@example.com").AsAdmin()
	adminBuilder.Build(t, ts.DB.DB)
	adminToken := adminBuilder.Authenticate(t, ts)

	testutil.NewUserBuilder().Build(t, ts.DB.DB)
	testutil.NewUserBuilder().AsBusiness("Pending Co").Build(t, ts.DB.DB)
	testutil.NewUserBuilder().AsBusiness("Verified Co").Verified().Build(t, ts.DB.DB)

	tests := []struct {
		name      string
		query     string
		wantTotal int64
	}{
		{name: "all users", query: "", wantTotal: 4}, // includes the admin
		{name: "businesses", query: "?userType=business", wantTotal: 2},
		{name: "pending businesses", query: "?userType=business&verificationStatus=pending", wantTotal: 1},
		{name: "verified businesses", query: "?userType=business&verificationStatus=verified", wantTotal: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, http.MethodGet, ts.APIURL("/admin/users"+tt.query), adminToken, nil)
			defer resp.Body.Close()

			require.Equal(t, http.StatusOK, resp.StatusCode)

			var result struct {
				Users []map[string]interface{} `json:"users"`
				Total int64                    `json:"total"`
				Pages int                      `json:"pages"`
			}
			testutil.AssertJSONResponse(t, resp, &result)
			assert.Equal(t, tt.wantTotal, result.Total)

			for _, user := range result.Users {
				assert.NotContains(t, user, "passwordHash")
			}
		})
	}
}

func TestAdminHandler_SuspendUser(t *testing.T) {
	ts := testutil.NewTestServer(t)

	adminBuilder := testutil.NewUserBuilder().WithEmail("admin@example.com").AsAdmin()
	adminBuilder.Build(t, ts.DB.DB)
	adminToken := adminBuilder.Authenticate(t, ts)

	targetBuilder := testutil.NewUserBuilder().WithEmail("target@example.com")
	target, _ := targetBuilder.Build(t, ts.DB.DB)
	targetToken := targetBuilder.Authenticate(t, ts)

	// Suspend
	resp := doRequest(t, http.MethodPatch,
		ts.APIURL("/admin/users/"+target.ID.String()+"/status"),
		adminToken, map[string]bool{"isActive": false})
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	resp.Body.Close()

	// The suspended user's still-valid token is now rejected
	resp = doRequest(t, http.MethodGet, ts.APIURL("/auth/me"), targetToken, nil)
	testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "account is suspended")
	resp.Body.Close()

	// Reactivate
	resp = doRequest(t, http.MethodPatch,
		ts.APIURL("/admin/users/"+target.ID.String()+"/status"),
		adminToken, map[string]bool{"isActive": true})
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = doRequest(t, http.MethodGet, ts.APIURL("/auth/me"), targetToken, nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	resp.Body.Close()

	// Missing boolean is a validation error
	resp = doRequest(t, http.MethodPatch,
		ts.APIURL("/admin/users/"+target.ID.String()+"/status"),
		adminToken, map[string]string{"isActive": "yes"})
	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	resp.Body.Close()
}

func TestAdminHandler_DeleteUser_Anonymizes(t *testing.T) {
	ts := testutil.NewTestServer(t)

	adminBuilder := testutil.NewUserBuilder().WithEmail("admin@example.com").AsAdmin()
	adminBuilder.Build(t, ts.DB.DB)
	adminToken := adminBuilder.Authenticate(t, ts)

	target, _ := testutil.NewUserBuilder().WithEmail("gone@example.com").Build(t, ts.DB.DB)

	resp := doRequest(t, http.MethodDelete, ts.APIURL("/admin/users/"+target.ID.String()), adminToken, nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	resp.Body.Close()

	// The row survives, stripped of identity and deactivated
	var kept domain.User
	require.NoError(t, ts.DB.DB.First(&kept, "id = ?", target.ID).Error)
	assert.Equal(t, "Deleted User", kept.FullName)
	assert.NotEqual(t, "gone@example.com", kept.Email)
	assert.Empty(t, kept.Phone)
	assert.Empty(t, kept.Address)
	assert.False(t, kept.IsActive)

	// Unknown user is a 404
	resp = doRequest(t, http.MethodDelete,
		ts.APIURL("/admin/users/3f9d78f0-0000-0000-0000-000000000000"), adminToken, nil)
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	resp.Body.Close()
}
