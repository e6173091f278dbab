package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkuzmenko/classmate/internal/client/forms"
)

func TestClassroomList_UnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/classrooms", r.URL.Path)
		w.Write([]byte(`{"data":{"classrooms":[
			{"id":"c1","name":"Algorithms","code":"ALG-101"},
			{"id":"c2","name":"Databases","code":"DB-201"}
		]}}`))
	}))
	defer srv.Close()

	svc := NewClassroomService(newAPIClient(srv.URL))
	rooms, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "Algorithms", rooms[0].Name)
	assert.Equal(t, "DB-201", rooms[1].Code)
}

func TestClassroomGet_DecodesRoster(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/classrooms/c1", r.URL.Path)
		w.Write([]byte(`{"data":{"id":"c1","name":"Algorithms","code":"ALG-101",
			"lecturer":{"id":"u9","name":"Prof. Knuth"},
			"students":[{"id":"u1","name":"Ada","email":"ada@example.com"}]}}`))
	}))
	defer srv.Close()

	svc := NewClassroomService(newAPIClient(srv.URL))
	room, err := svc.Get(context.Background(), "c1")

	require.NoError(t, err)
	assert.Equal(t, "Prof. Knuth", room.Lecturer.Name)
	require.Len(t, room.Students, 1)
	assert.Equal(t, "ada@example.com", room.Students[0].Email)
}

func TestAddStudents_PostsIDs(t *testing.T) {
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

	svc := NewClassroomService(newAPIClient(srv.URL))
	form := forms.StudentsForm{ClassroomID: "c1", StudentIDs: []string{"u1", "u2"}}
	require.NoError(t, svc.AddStudents(context.Background(), form))

	assert.Equal(t, "/classrooms/c1/add-students", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.JSONEq(t, `{"studentIds":["u1","u2"]}`, string(gotBody))
}

func TestRemoveStudents_PutsIDs(t *testing.T) {
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

	svc := NewClassroomService(newAPIClient(srv.URL))
	form := forms.StudentsForm{ClassroomID: "c1", StudentIDs: []string{"u2"}}
	require.NoError(t, svc.RemoveStudents(context.Background(), form))

	assert.Equal(t, "/classrooms/c1/remove-students", gotPath)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.JSONEq(t, `{"studentIds":["u2"]}`, string(gotBody))
}

func TestRosterEdit_EmptyIDsNeverReachNetwork(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	svc := NewClassroomService(newAPIClient(srv.URL))
	err := svc.AddStudents(context.Background(), forms.StudentsForm{ClassroomID: "c1"})

	require.Error(t, err)
	assert.Equal(t, "at least one student id is required", err.Error())
	assert.Zero(t, requests.Load())
}

func TestClassroomCreate_SendsForm(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	svc := NewClassroomService(newAPIClient(srv.URL))
	form := forms.ClassroomForm{Name: "Algorithms", Code: "ALG-101", Description: "weekly"}
	require.NoError(t, svc.Create(context.Background(), form))

	assert.Equal(t, map[string]string{
		"name":        "Algorithms",
		"code":        "ALG-101",
		"description": "weekly",
	}, got)
}
