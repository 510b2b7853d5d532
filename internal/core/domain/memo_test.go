package domain

import "testing"

func strptr(s string) *string { return &s }

func TestMemoPatch_Apply_Partial(t *testing.T) {
	m := Memo{ID: 1, UserID: 7, Title: strptr("t"), Content: strptr("c")}

	got := MemoPatch{Title: strptr("t2")}.Apply(m)

	if got.Title == nil || *got.Title != "t2" {
		t.Fatalf("expected title t2, got %v", got.Title)
	}
	if got.Content == nil || *got.Content != "c" {
		t.Fatalf("expected content to be kept, got %v", got.Content)
	}
	if *m.Title != "t" {
		t.Fatalf("original memo must not be mutated")
	}
}

func TestMemoPatch_Apply_Full(t *testing.T) {
	m := Memo{ID: 1, UserID: 7, Title: strptr("t"), Content: strptr("c")}

	got := MemoPatch{Title: strptr("x"), Content: strptr("y")}.Apply(m)

	if *got.Title != "x" || *got.Content != "y" {
		t.Fatalf("expected both fields overwritten, got %q %q", *got.Title, *got.Content)
	}
}
