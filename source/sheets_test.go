package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheetsFetch(t *testing.T) {
	t.Parallel()

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"range": "CONTROLE!A1:T3",
			"majorDimension": "ROWS",
			"values": [
				["DATAHORA", "BUY AVG", "CLOSED"],
				["2024-03-01 10:00", 12.5, true],
				[null, "$1,000.00"]
			]
		}`))
	}))
	defer srv.Close()

	s := NewSheets(srv.Client(), srv.URL)
	grid, err := s.Fetch(context.Background(), "abc123", "CONTROLE!A1:T")
	require.NoError(t, err)

	assert.Equal(t, "/abc123/values/CONTROLE!A1:T", gotPath)
	require.Len(t, grid, 3)
	assert.Equal(t, []string{"DATAHORA", "BUY AVG", "CLOSED"}, grid[0])
	assert.Equal(t, []string{"2024-03-01 10:00", "12.5", "true"}, grid[1])
	assert.Equal(t, []string{"", "$1,000.00"}, grid[2])
}

func TestSheetsFetchErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewSheets(srv.Client(), srv.URL)

	_, err := s.Fetch(context.Background(), "abc123", "A1:T")
	require.Error(t, err)
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "sheets", fe.Source)
	assert.Equal(t, "abc123", fe.ID)
	assert.Contains(t, err.Error(), "status 403")

	_, err = s.Fetch(context.Background(), "", "A1:T")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spreadsheet id")
}

func TestSheetsFetchBadJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"values": "nope"`))
	}))
	defer srv.Close()

	_, err := NewSheets(srv.Client(), srv.URL).Fetch(context.Background(), "id", "A1:B")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode values")
}

func TestSheetsFromServiceAccountRejectsBadKey(t *testing.T) {
	t.Parallel()

	_, err := SheetsFromServiceAccount(context.Background(), []byte(`{}`))
	assert.Error(t, err)
}
