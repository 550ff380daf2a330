package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rustyeddy/tradeboard/sheet"
	"golang.org/x/oauth2/google"
)

const (
	// DefaultSheetsURL is the Sheets API v4 spreadsheets endpoint.
	DefaultSheetsURL = "https://sheets.googleapis.com/v4/spreadsheets"

	// SheetsScope is the read-only OAuth scope the service account needs.
	SheetsScope = "https://www.googleapis.com/auth/spreadsheets.readonly"
)

// Sheets reads ranges through the Google Sheets values API.
type Sheets struct {
	client  *http.Client
	baseURL string
}

// NewSheets uses client for every request. client must already carry
// credentials; see SheetsFromServiceAccount.
func NewSheets(client *http.Client, baseURL string) *Sheets {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultSheetsURL
	}
	return &Sheets{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// SheetsFromServiceAccount builds a client from a service account JSON key.
func SheetsFromServiceAccount(ctx context.Context, key []byte) (*Sheets, error) {
	conf, err := google.JWTConfigFromJSON(key, SheetsScope)
	if err != nil {
		return nil, fmt.Errorf("service account: %w", err)
	}
	return NewSheets(conf.Client(ctx), DefaultSheetsURL), nil
}

type valueRange struct {
	Range  string  `json:"range"`
	Values [][]any `json:"values"`
}

func (s *Sheets) Fetch(ctx context.Context, id, rng string) (sheet.Grid, error) {
	grid, err := s.fetch(ctx, id, rng)
	if err != nil {
		return nil, &FetchError{Source: "sheets", ID: id, Range: rng, Err: err}
	}
	return grid, nil
}

func (s *Sheets) fetch(ctx context.Context, id, rng string) (sheet.Grid, error) {
	if id == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	u := fmt.Sprintf("%s/%s/values/%s", s.baseURL, url.PathEscape(id), url.PathEscape(rng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var vr valueRange
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}

	grid := make(sheet.Grid, len(vr.Values))
	for i, row := range vr.Values {
		grid[i] = make([]string, len(row))
		for j, v := range row {
			grid[i][j] = cellText(v)
		}
	}
	return grid, nil
}

// cellText renders a JSON cell. Formatted values arrive as strings already.
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
