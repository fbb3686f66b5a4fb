package storage

import (
	"testing"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1700000000/class_images/abc-123.jpg", "class_images/abc-123"},
		{"https://res.cloudinary.com/demo/image/upload/class_images/abc-123.png", "class_images/abc-123"},
		{"https://res.cloudinary.com/demo/image/upload/v1700000000/toplevel.webp", "toplevel"},
	}

	for _, c := range cases {
		got, err := PublicIDFromURL(c.url)
		if err != nil {
			t.Errorf("PublicIDFromURL(%q): %v", c.url, err)
			continue
		}
		if got != c.want {
			t.Errorf("PublicIDFromURL(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}

func TestPublicIDFromURLRejectsForeignURLs(t *testing.T) {
	for _, url := range []string{
		"https://example.com/some/image.jpg",
		"https://res.cloudinary.com/demo/image/upload/",
	} {
		if _, err := PublicIDFromURL(url); err == nil {
			t.Errorf("PublicIDFromURL(%q) should fail", url)
		}
	}
}
