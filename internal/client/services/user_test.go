package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkuzmenko/classmate/internal/client/forms"
)

func TestUserCreate_StudentCarriesStudentID(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	svc := NewUserService(newAPIClient(srv.URL))
	form := forms.UserForm{
		Name:      "Sam",
		Email:     "sam@example.com",
		Password:  "longenough",
		Role:      "student",
		StudentID: "S-1001",
	}
	require.NoError(t, svc.Create(context.Background(), form))

	assert.JSONEq(t, `{
		"name":"Sam","email":"sam@example.com","password":"longenough",
		"role":"student","studentId":"S-1001"
	}`, string(gotBody))
}

func TestUserCreate_StudentWithoutIDRejectedLocally(t *testing.T) {
	svc := NewUserService(newAPIClient("http://127.0.0.1:0"))
	form := forms.UserForm{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "longenough",
		Role:     "student",
	}

	err := svc.Create(context.Background(), form)

	require.Error(t, err)
	assert.Equal(t, "studentId is required", err.Error())
}

func TestUserCreate_LecturerOmitsStudentID(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	svc := NewUserService(newAPIClient(srv.URL))
	form := forms.UserForm{
		Name:     "Prof. Knuth",
		Email:    "knuth@example.com",
		Password: "longenough",
		Role:     "lecturer",
	}
	require.NoError(t, svc.Create(context.Background(), form))

	assert.NotContains(t, string(gotBody), "studentId")
}

func TestUpdateProfile_OmitsEmptyPassword(t *testing.T) {
	var (
		gotPath   string
		gotMethod string
		gotBody   []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	svc := NewUserService(newAPIClient(srv.URL))
	require.NoError(t, svc.UpdateProfile(context.Background(), "u1", forms.ProfileForm{Name: "Ada L."}))

	assert.Equal(t, "/users/u1", gotPath)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.JSONEq(t, `{"name":"Ada L."}`, string(gotBody))
}

func TestListStudents_AcceptsEitherEnvelopeKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/students", r.URL.Path)
		w.Write([]byte(`{"data":{"students":[{"id":"u1","name":"Sam","role":"student"}]}}`))
	}))
	defer srv.Close()

	svc := NewUserService(newAPIClient(srv.URL))
	students, err := svc.ListStudents(context.Background())

	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Sam", students[0].Name)
}
