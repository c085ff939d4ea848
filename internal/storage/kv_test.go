package storage

import "testing"

type blob struct {
	Level   int   `json:"level"`
	History []int `json:"history"`
}

func TestLoadJSONMissingKey(t *testing.T) {
	kv := NewMemory()
	out := blob{Level: 2}
	if LoadJSON(kv, "absent", &out) {
		t.Fatal("expected LoadJSON to report missing key")
	}
	if out.Level != 2 {
		t.Fatalf("default clobbered: got level %d, want 2", out.Level)
	}
}

func TestLoadJSONCorruptBlob(t *testing.T) {
	kv := NewMemory()
	kv.Set("k", "{not json")
	out := blob{Level: 3}
	if LoadJSON(kv, "k", &out) {
		t.Fatal("expected LoadJSON to report corrupt blob")
	}
	if out.Level != 3 {
		t.Fatalf("default clobbered: got level %d, want 3", out.Level)
	}
}

func TestSaveAndLoadJSON(t *testing.T) {
	kv := NewMemory()
	in := blob{Level: 4, History: []int{81, 85, 90}}
	if err := SaveJSON(kv, "k", in); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}
	var out blob
	if !LoadJSON(kv, "k", &out) {
		t.Fatal("expected LoadJSON to succeed")
	}
	if out.Level != 4 || len(out.History) != 3 || out.History[2] != 90 {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestRemove(t *testing.T) {
	kv := NewMemory()
	kv.Set("k", "v")
	if err := kv.Remove("k"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := kv.Get("k"); ok {
		t.Fatal("key still present after Remove")
	}
}
