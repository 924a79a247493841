package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/supabase-community/supabase-go"
)

// Supabase implements Store on a user_state table: one row per document,
// (path text primary key, value jsonb). Production backend.
type Supabase struct {
	client *supabase.Client
	table  string
}

type stateRow struct {
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value"`
}

// NewSupabase builds the production store from SUPABASE_URL/SUPABASE_KEY.
func NewSupabase() (*Supabase, error) {
	apiURL := os.Getenv("SUPABASE_URL")
	apiKey := os.Getenv("SUPABASE_KEY")
	if apiURL == "" || apiKey == "" {
		return nil, fmt.Errorf("SUPABASE_URL or SUPABASE_KEY is missing")
	}

	client, err := supabase.NewClient(apiURL, apiKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return &Supabase{client: client, table: "user_state"}, nil
}

func (s *Supabase) Get(ctx context.Context, path string, dest any) (bool, error) {
	resp, _, err := s.client.From(s.table).
		Select("path, value", "", false).
		Eq("path", path).
		Limit(1, "").
		Execute()
	if err != nil {
		return false, fmt.Errorf("get %s: %w", path, err)
	}

	var rows []stateRow
	if err := json.Unmarshal(resp, &rows); err != nil {
		return false, fmt.Errorf("get %s: %w", path, err)
	}
	if len(rows) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(rows[0].Value, dest); err != nil {
		return true, fmt.Errorf("decode %s: %w: %v", path, ErrDecode, err)
	}
	return true, nil
}

func (s *Supabase) Set(ctx context.Context, path string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	row := stateRow{Path: path, Value: raw}
	if _, _, err := s.client.From(s.table).Insert(row, true, "path", "", "").Execute(); err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}

func (s *Supabase) Delete(ctx context.Context, path string) error {
	if _, _, err := s.client.From(s.table).Delete("", "").Eq("path", path).Execute(); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

func (s *Supabase) List(ctx context.Context, prefix string) ([]string, error) {
	resp, _, err := s.client.From(s.table).
		Select("path", "", false).
		Like("path", prefix+"/%").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}

	var rows []stateRow
	if err := json.Unmarshal(resp, &rows); err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	return childSegments(prefix, rows), nil
}

func childSegments(prefix string, rows []stateRow) []string {
	seen := map[string]bool{}
	for _, row := range rows {
		rest := strings.TrimPrefix(row.Path, prefix+"/")
		if segment, _, _ := strings.Cut(rest, "/"); segment != "" {
			seen[segment] = true
		}
	}
	children := make([]string, 0, len(seen))
	for segment := range seen {
		children = append(children, segment)
	}
	sort.Strings(children)
	return children
}
