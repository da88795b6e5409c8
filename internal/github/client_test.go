package github

import (
	"strings"
	"testing"
)

// TestParseRepository tests repository name validation.
func TestParseRepository(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{
			name:      "Valid repository",
			input:     "octo/demo",
			wantOwner: "octo",
			wantRepo:  "demo",
		},
		{
			name:    "Missing slash",
			input:   "octodemo",
			wantErr: true,
		},
		{
			name:    "Too many segments",
			input:   "a/b/c",
			wantErr: true,
		},
		{
			name:    "Empty owner",
			input:   "/demo",
			wantErr: true,
		},
		{
			name:    "Empty repo",
			input:   "octo/",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			owner, repo, err := parseRepository(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q, got nil", tc.input)
				}
				if !strings.Contains(err.Error(), "invalid repository format") {
					t.Errorf("Expected 'invalid repository format' error, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if owner != tc.wantOwner || repo != tc.wantRepo {
				t.Errorf("Expected %s/%s, got %s/%s", tc.wantOwner, tc.wantRepo, owner, repo)
			}
		})
	}
}

// TestParseNumberFromURL tests trailing-number extraction from API URLs.
func TestParseNumberFromURL(t *testing.T) {
	testCases := []struct {
		url  string
		want int
	}{
		{url: "https://api.github.com/repos/octo/demo/issues/42", want: 42},
		{url: "https://api.github.com/repos/octo/demo/pulls/7", want: 7},
		{url: "https://api.github.com/repos/octo/demo/issues/not-a-number", want: 0},
		{url: "", want: 0},
	}

	for _, tc := range testCases {
		if got := parseNumberFromURL(tc.url); got != tc.want {
			t.Errorf("parseNumberFromURL(%q) = %d, want %d", tc.url, got, tc.want)
		}
	}
}

// TestReviewEvent tests the mapping from saved review states to creation
// events.
func TestReviewEvent(t *testing.T) {
	testCases := []struct {
		state string
		want  string
	}{
		{state: "APPROVED", want: "APPROVE"},
		{state: "approved", want: "APPROVE"},
		{state: "CHANGES_REQUESTED", want: "REQUEST_CHANGES"},
		{state: "COMMENTED", want: "COMMENT"},
		{state: "DISMISSED", want: "COMMENT"},
		{state: "", want: "COMMENT"},
	}

	for _, tc := range testCases {
		if got := reviewEvent(tc.state); got != tc.want {
			t.Errorf("reviewEvent(%q) = %q, want %q", tc.state, got, tc.want)
		}
	}
}
