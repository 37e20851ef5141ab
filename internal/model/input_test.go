package model

import "testing"

func TestNewCrawlingInput(t *testing.T) {
	t.Parallel()

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		in, ok := NewCrawlingInput(RootSource, "  hello  ")
		if !ok {
			t.Fatal("expected ok")
		}
		if in.RawInput != "hello" {
			t.Errorf("got %q, want %q", in.RawInput, "hello")
		}
	})

	t.Run("rejects blank input", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"", "   ", "\t\n"} {
			if _, ok := NewCrawlingInput(RootSource, raw); ok {
				t.Errorf("expected rejection for %q", raw)
			}
		}
	})
}

func TestCrawlableUncrawlable(t *testing.T) {
	t.Parallel()

	c := Crawlable("x")
	if !c.Crawlable || c.Value != "x" {
		t.Errorf("got %+v", c)
	}

	u := Uncrawlable("y")
	if u.Crawlable || u.Value != "y" {
		t.Errorf("got %+v", u)
	}
}
