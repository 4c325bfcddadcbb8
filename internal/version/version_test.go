package version

import (
	"testing"
	"time"
)

func TestIsDevelopmentVersion(t *testing.T) {
	for _, v := range []string{"", "dev", "devel", "(devel)", "unknown"} {
		if !IsDevelopmentVersion(v) {
			t.Errorf("IsDevelopmentVersion(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"v1.0.0", "1.2.3", "v0.1.0-beta"} {
		if IsDevelopmentVersion(v) {
			t.Errorf("IsDevelopmentVersion(%q) = true, want false", v)
		}
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{"v1.2.3", "1.2.3", "v1.2.3-beta", "v1.2.3-beta.1", "v10.20.30"}
	for _, v := range valid {
		if !IsValid(v) {
			t.Errorf("IsValid(%q) = false, want true", v)
		}
	}
	invalid := []string{"v1.2", "1", "v1.2.3--bad", "v1.2.3-", "latest", "v1.2.3; rm -rf /"}
	for _, v := range invalid {
		if IsValid(v) {
			t.Errorf("IsValid(%q) = true, want false", v)
		}
	}
}

func TestIsNewer(t *testing.T) {
	cases := []struct {
		latest, current string
		want            bool
	}{
		{"v1.0.1", "v1.0.0", true},
		{"v1.1.0", "v1.0.9", true},
		{"v2.0.0", "v1.9.9", true},
		{"v1.0.0", "v1.0.0", false},
		{"v1.0.0", "v1.0.1", false},
		{"1.0.1", "v1.0.0", true},
		{"v1.0.0", "v1.0.0-beta", true},
		{"v1.0.0-beta", "v1.0.0", false},
		{"garbage", "v1.0.0", false},
		{"v1.0.1", "garbage", false},
	}
	for _, tc := range cases {
		if got := isNewer(tc.latest, tc.current); got != tc.want {
			t.Errorf("isNewer(%q, %q) = %v, want %v", tc.latest, tc.current, got, tc.want)
		}
	}
}

func TestCacheRoundTrip(t *testing.T) {
	t.Setenv("HOMEROOM_CONFIG_DIR", t.TempDir())

	if _, err := LoadCache(); err == nil {
		t.Error("LoadCache succeeded with no cache file")
	}

	entry := &CacheEntry{
		LatestVersion:  "v1.2.0",
		CurrentVersion: "v1.1.0",
		CheckedAt:      time.Now(),
		HasUpdate:      true,
	}
	if err := SaveCache(entry); err != nil {
		t.Fatalf("SaveCache failed: %v", err)
	}

	got, err := LoadCache()
	if err != nil {
		t.Fatalf("LoadCache failed: %v", err)
	}
	if got.LatestVersion != "v1.2.0" || !got.HasUpdate {
		t.Errorf("cache = %+v", got)
	}
}

func TestIsCacheValid(t *testing.T) {
	fresh := &CacheEntry{CurrentVersion: "v1.0.0", CheckedAt: time.Now()}
	if !IsCacheValid(fresh, "v1.0.0") {
		t.Error("fresh entry for same version rejected")
	}
	if IsCacheValid(fresh, "v1.0.1") {
		t.Error("entry for different running version accepted")
	}

	stale := &CacheEntry{CurrentVersion: "v1.0.0", CheckedAt: time.Now().Add(-25 * time.Hour)}
	if IsCacheValid(stale, "v1.0.0") {
		t.Error("stale entry accepted")
	}

	if IsCacheValid(nil, "v1.0.0") {
		t.Error("nil entry accepted")
	}
}
