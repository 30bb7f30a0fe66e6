package cache

import (
	"net/http"
	"testing"
	"time"
)

// entryFor builds an entry the way the transport does for a 200 response.
func entryFor(t *testing.T, header http.Header) *CacheEntry {
	t.Helper()

	resp := &http.Response{
		StatusCode: http.StatusOK,
		Header:     header,
		Body:       http.NoBody,
	}
	entry, err := ResponseToEntry(resp)
	if err != nil {
		t.Fatalf("ResponseToEntry failed: %v", err)
	}
	return entry
}

func TestCacheEntry_FreshnessFromGitHubHeaders(t *testing.T) {
	tests := []struct {
		name      string
		header    http.Header
		wantTTL   time.Duration
		wantState string
	}{
		{
			name:      "private max-age",
			header:    http.Header{"Cache-Control": {"private, max-age=60, s-maxage=60"}, "Etag": {`"a"`}},
			wantTTL:   60 * time.Second,
			wantState: FreshnessFresh,
		},
		{
			name:      "max-age zero is immediately stale",
			header:    http.Header{"Cache-Control": {"private, max-age=0, must-revalidate"}, "Etag": {`"a"`}},
			wantTTL:   0,
			wantState: FreshnessStale,
		},
		{
			name:      "no freshness headers",
			header:    http.Header{"Etag": {`W/"b"`}},
			wantTTL:   DefaultTTL,
			wantState: FreshnessFresh,
		},
		{
			name: "max-age wins over Expires",
			header: http.Header{
				"Cache-Control": {"public, max-age=30"},
				"Expires":       {time.Now().Add(time.Hour).UTC().Format(http.TimeFormat)},
			},
			wantTTL:   30 * time.Second,
			wantState: FreshnessFresh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// max-age=0 needs a moment to be strictly in the past.
			entry := entryFor(t, tt.header)
			if tt.wantState == FreshnessStale {
				entry.Expires = entry.Expires.Add(-time.Millisecond)
			}

			got := entry.TTL()
			if got > tt.wantTTL || got < tt.wantTTL-2*time.Second {
				t.Errorf("TTL() = %v, want about %v", got, tt.wantTTL)
			}
			if state := entry.Freshness(); state != tt.wantState {
				t.Errorf("Freshness() = %q, want %q", state, tt.wantState)
			}
			if entry.IsExpired() != (tt.wantState == FreshnessStale) {
				t.Errorf("IsExpired() = %v for %s entry", entry.IsExpired(), tt.wantState)
			}
		})
	}
}

func TestCacheEntry_StorageTTL(t *testing.T) {
	tests := []struct {
		name      string
		expires   time.Time
		retention time.Duration
		wantMin   time.Duration
		wantMax   time.Duration
	}{
		{
			name:      "fresh entry keeps freshness plus retention",
			expires:   time.Now().Add(time.Minute),
			retention: DefaultRetention,
			wantMin:   DefaultRetention + 59*time.Second,
			wantMax:   DefaultRetention + time.Minute,
		},
		{
			name:      "stale entry keeps only retention",
			expires:   time.Now().Add(-time.Hour),
			retention: time.Hour,
			wantMin:   time.Hour,
			wantMax:   time.Hour,
		},
		{
			name:      "negative retention ignored",
			expires:   time.Now().Add(-time.Minute),
			retention: -time.Hour,
			wantMin:   0,
			wantMax:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &CacheEntry{Expires: tt.expires}
			got := entry.StorageTTL(tt.retention)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("StorageTTL(%v) = %v, want between %v and %v", tt.retention, got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestCacheEntry_HasValidators(t *testing.T) {
	tests := []struct {
		name  string
		entry CacheEntry
		want  bool
	}{
		{"etag", CacheEntry{ETag: `W/"abc"`}, true},
		{"last modified", CacheEntry{LastModified: time.Now().Add(-time.Hour)}, true},
		{"none", CacheEntry{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.HasValidators(); got != tt.want {
				t.Errorf("HasValidators() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCacheEntry_Refresh(t *testing.T) {
	entry := &CacheEntry{
		ETag:    `"v1"`,
		Expires: time.Now().Add(-time.Minute),
	}
	if entry.Freshness() != FreshnessStale {
		t.Fatal("entry should start stale")
	}

	entry.Refresh(time.Now().Add(time.Minute))

	if entry.Freshness() != FreshnessFresh {
		t.Error("Refresh should make the entry fresh")
	}
	if entry.RevalidatedAt.IsZero() {
		t.Error("RevalidatedAt not recorded")
	}
}
