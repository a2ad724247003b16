package domain

import "testing"

func TestDestinationValid(t *testing.T) {
	for _, d := range Destinations() {
		if !d.Valid() {
			t.Fatalf("%q should be valid", d)
		}
	}
	for _, d := range []Destination{"", "Notion", "discord"} {
		if d.Valid() {
			t.Fatalf("%q should be invalid", d)
		}
	}
}

func TestBlockTypeValid(t *testing.T) {
	want := map[BlockType]bool{
		"paragraph":          true,
		"to_do":              true,
		"bulleted_list_item": true,
		"numbered_list_item": true,
	}
	if len(BlockTypes()) != len(want) {
		t.Fatalf("BlockTypes() = %v", BlockTypes())
	}
	for _, b := range BlockTypes() {
		if !want[b] || !b.Valid() {
			t.Fatalf("unexpected block type %q", b)
		}
	}
	if BlockType("todo").Valid() || BlockType("").Valid() {
		t.Fatalf("unknown tags should be invalid")
	}
}
