package scene_node

import "testing"

func TestChildren(t *testing.T) {
	root := NewNode("npc")
	insert := root.CreateChild("insert")
	if insert.Parent() != root {
		t.Fatalf("child parent mismatch")
	}
	if got := len(root.Children()); got != 1 {
		t.Fatalf("expected 1 child, got %d", got)
	}
	root.RemoveChild(insert)
	if len(root.Children()) != 0 || insert.Parent() != nil {
		t.Fatalf("child not removed")
	}
}

func TestAttachments(t *testing.T) {
	n := NewNode("insert")
	n.Attach("body")
	n.Attach("dust")
	n.Attach("body")

	if !n.Detach("body") {
		t.Fatalf("expected body to detach")
	}
	got := n.Attached()
	if len(got) != 2 || got[0] != "dust" || got[1] != "body" {
		t.Fatalf("unexpected attachments %v", got)
	}
	if n.Detach("missing") {
		t.Fatalf("detaching a missing name must report false")
	}
}

func TestPosition(t *testing.T) {
	n := NewNode("insert")
	n.SetPosition([3]float32{-1, 0, 2})
	if n.Position() != [3]float32{-1, 0, 2} {
		t.Fatalf("unexpected position %v", n.Position())
	}
}
