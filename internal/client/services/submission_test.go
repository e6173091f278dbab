package services

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkuzmenko/classmate/internal/client/api"
	"github.com/vkuzmenko/classmate/internal/client/forms"
	"github.com/vkuzmenko/classmate/internal/logging"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newAPIClient(url string) *api.Client {
	log := logging.NewTextLogger(io.Discard, slog.LevelError)
	return api.New(url, 5*time.Second, staticTokens("tok"), log)
}

func writeFiles(t *testing.T, n int) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		p := filepath.Join(dir, "work"+string(rune('a'+i))+".txt")
		require.NoError(t, os.WriteFile(p, []byte("content"), 0o600))
		paths = append(paths, p)
	}
	return paths
}

func TestSubmit_InvalidFormsNeverReachNetwork(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	svc := NewSubmissionService(newAPIClient(srv.URL))

	// zero files
	err := svc.Submit(context.Background(), forms.SubmissionForm{AssignmentID: "a1"})
	require.Error(t, err)
	assert.Equal(t, "at least one file is required", err.Error())

	// six files
	err = svc.Submit(context.Background(), forms.SubmissionForm{AssignmentID: "a1", Files: writeFiles(t, 6)})
	require.Error(t, err)
	assert.Equal(t, "no more than 5 files are allowed", err.Error())

	assert.Zero(t, requests.Load(), "validation failures must not issue requests")
}

func TestSubmit_OneMultipartPostPerAttempt(t *testing.T) {
	var (
		requests  atomic.Int32
		fileNames []string
		gotAssign string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/submissions", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotAssign = r.MultipartForm.Value["assignmentId"][0]
		for _, fh := range r.MultipartForm.File["files"] {
			fileNames = append(fileNames, fh.Filename)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	svc := NewSubmissionService(newAPIClient(srv.URL))
	paths := writeFiles(t, 3)

	err := svc.Submit(context.Background(), forms.SubmissionForm{
		AssignmentID: "a1",
		Comments:     "done",
		Files:        paths,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(1), requests.Load())
	assert.Equal(t, "a1", gotAssign)
	assert.Len(t, fileNames, 3, "one part per file")
}

func TestGrade_OutOfRangeRejectedLocally(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer srv.Close()

	svc := NewSubmissionService(newAPIClient(srv.URL))
	err := svc.Grade(context.Background(), forms.GradeForm{SubmissionID: "s1", Grade: 101})
	require.Error(t, err)
	assert.Zero(t, requests.Load())
}

func TestGrade_SendsExactBody(t *testing.T) {
	var (
		gotPath string
		gotBody []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	svc := NewSubmissionService(newAPIClient(srv.URL))
	err := svc.Grade(context.Background(), forms.GradeForm{SubmissionID: "s1", Grade: 85, Feedback: "Good work"})
	require.NoError(t, err)

	assert.Equal(t, "/submissions/s1/grade", gotPath)
	assert.JSONEq(t, `{"grade":85,"feedback":"Good work"}`, string(gotBody))
}

func TestList_BuildsFilterQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	svc := NewSubmissionService(newAPIClient(srv.URL))

	graded := false
	_, err := svc.List(context.Background(), SubmissionFilter{AssignmentID: "a1", Graded: &graded})
	require.NoError(t, err)
	assert.Equal(t, "assignment=a1&graded=false", gotQuery)

	_, err = svc.List(context.Background(), SubmissionFilter{})
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}
