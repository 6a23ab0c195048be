package content

import (
	"os"
	"path/filepath"
	"testing"
)

const fixture = `
tips:
  - "Practice 10 minutes of mindfulness meditation"
  - "Stay hydrated by drinking 8 glasses of water"
videos:
  - title: "Mindfulness Meditation for Cancer Support"
    url: "https://www.youtube.com/watch?v=1ZYbU82GVz4"
support_groups:
  - name: "Susan G. Komen Nashville"
    phone: "(615) 673-6633"
    website: "https://komen.org/nashville"
figures:
  - image: "figures/age.png"
    title: "Age of participants by group"
    caption: "Distribution of participant age groups in the dataset."
`

func writeContent(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "content.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewStoreLoadsBundle(t *testing.T) {
	store, err := NewStore(writeContent(t, fixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tips := store.Tips(); len(tips) != 2 {
		t.Fatalf("expected 2 tips, got %d", len(tips))
	}
	videos := store.Videos()
	if len(videos) != 1 || videos[0].Title != "Mindfulness Meditation for Cancer Support" {
		t.Fatalf("unexpected videos: %+v", videos)
	}
	groups := store.SupportGroups()
	if len(groups) != 1 || groups[0].Phone != "(615) 673-6633" {
		t.Fatalf("unexpected groups: %+v", groups)
	}
	figures := store.Figures()
	if len(figures) != 1 || figures[0].Image != "figures/age.png" {
		t.Fatalf("unexpected figures: %+v", figures)
	}
}

func TestNewStoreFailures(t *testing.T) {
	if _, err := NewStore(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := NewStore(writeContent(t, "tips: {not: [a, list")); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestReloadKeepsPreviousBundleOnFailure(t *testing.T) {
	path := writeContent(t, fixture)
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := os.WriteFile(path, []byte("tips: {broken"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := store.Reload(); err == nil {
		t.Fatal("expected reload error")
	}
	if tips := store.Tips(); len(tips) != 2 {
		t.Fatalf("previous bundle lost: %v", tips)
	}
}
