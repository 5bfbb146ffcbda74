package section

import "testing"

func TestTree_AddHeadingNesting(t *testing.T) {
	tree := NewTree()

	root, err := tree.addHeading(nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.RootID != root.ID {
		t.Fatalf("expected root id %d, got %d", root.ID, tree.RootID)
	}

	child, err := tree.addHeading(root, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if child.ParentID != root.ID {
		t.Errorf("expected parent %d, got %d", root.ID, child.ParentID)
	}

	grand, err := tree.addHeading(child, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A sibling h2 after an h3 pops back up to the root.
	sibling, err := tree.addHeading(grand, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sibling.ParentID != root.ID {
		t.Errorf("expected sibling to attach to root, got parent %d", sibling.ParentID)
	}
	if len(root.ChildIDs) != 2 {
		t.Errorf("expected root to have 2 children, got %d", len(root.ChildIDs))
	}
}

func TestTree_WalkDocumentOrder(t *testing.T) {
	tree := NewTree()
	root, _ := tree.addHeading(nil, 1)
	a, _ := tree.addHeading(root, 2)
	a1, _ := tree.addHeading(a, 3)
	b, _ := tree.addHeading(a1, 2)

	var got []int
	tree.Walk(func(s *Section) { got = append(got, s.ID) })

	want := []int{root.ID, a.ID, a1.ID, b.ID}
	if len(got) != len(want) {
		t.Fatalf("expected %d sections, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected id %d, got %d", i, want[i], got[i])
		}
	}
}

func TestTree_ValidateWithoutRoot(t *testing.T) {
	tree := NewTree()
	if err := tree.validate(); err == nil {
		t.Fatal("expected error for tree without a root")
	}
}
