package answers

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

func sorted(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Strings(out)
	return out
}

func TestUpdateReplacesScalarKinds(t *testing.T) {
	t.Parallel()

	for _, kind := range []schema.FieldKind{schema.KindSelect, schema.KindRadio, schema.KindText, schema.KindNumber, schema.KindTextArea} {
		store := New()
		store.Update("intro", "f", "first", kind, "")
		store.Update("intro", "f", "second", kind, "")
		if got := store.Text("intro", "f"); got != "second" {
			t.Fatalf("%s: Text = %q, want second", kind, got)
		}
	}
}

func TestUpdateToggleLaw(t *testing.T) {
	t.Parallel()

	store := New()
	store.Update("intro", "rooms", "labs", schema.KindCheckbox, "")
	store.Update("intro", "rooms", "dataCenter", schema.KindCheckbox, "")
	before := sorted(store.Selected("intro", "rooms"))

	store.Update("intro", "rooms", "labs", schema.KindCheckbox, "")
	if diff := cmp.Diff([]string{"dataCenter"}, store.Selected("intro", "rooms")); diff != "" {
		t.Fatalf("after first toggle mismatch (-want +got):\n%s", diff)
	}

	store.Update("intro", "rooms", "labs", schema.KindCheckbox, "")
	if diff := cmp.Diff(before, sorted(store.Selected("intro", "rooms"))); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateExclusiveKeyReplacesSet(t *testing.T) {
	t.Parallel()

	store := New()
	store.Update("tech", "rede", "vlan", schema.KindCheckbox, "")
	store.Update("tech", "rede", "firewall", schema.KindCheckbox, "")
	store.Update("tech", "rede", "naoSei", schema.KindCheckbox, "naoSei")

	if diff := cmp.Diff([]string{"naoSei"}, store.Selected("tech", "rede")); diff != "" {
		t.Fatalf("exclusive mismatch (-want +got):\n%s", diff)
	}

	store.Update("tech", "rede", "naoSei", schema.KindCheckbox, "naoSei")
	if got := store.Selected("tech", "rede"); len(got) != 0 {
		t.Fatalf("expected empty set after toggling exclusive off, got %v", got)
	}
	if store.Has("tech", "rede") {
		t.Fatalf("expected Has to be false for empty set")
	}
}

func TestUpdateNormalSelectionPurgesExclusive(t *testing.T) {
	t.Parallel()

	store := New()
	store.Update("technicalMeasures", "criptografia", "naoSei", schema.KindCheckbox, "naoSei")
	store.Update("technicalMeasures", "criptografia", "aes256", schema.KindCheckbox, "")

	if diff := cmp.Diff([]string{"aes256"}, store.Selected("technicalMeasures", "criptografia")); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateDeclaredExclusiveWithoutFlag(t *testing.T) {
	t.Parallel()

	store := New()
	store.DeclareExclusive("org", "politicas", "precisaAjuda")
	store.Update("org", "politicas", "cientePsi", schema.KindCheckbox, "")
	store.Update("org", "politicas", "precisaAjuda", schema.KindCheckbox, "")

	if diff := cmp.Diff([]string{"precisaAjuda"}, store.Selected("org", "politicas")); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreNestedAccess(t *testing.T) {
	t.Parallel()

	store := New()
	store.Update("intro", "campusName", "Florianópolis", schema.KindSelect, "")
	store.Update("intro", "ambientesCobertos", "labs", schema.KindCheckbox, "")
	store.Update("systemDetails", "installationType", "local", schema.KindRadio, "")

	want := map[string]any{
		"intro": map[string]any{
			"campusName":        "Florianópolis",
			"ambientesCobertos": []any{"labs"},
		},
		"systemDetails": map[string]any{
			"installationType": "local",
		},
	}
	snap := store.Snapshot()
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}

	snap["intro"].(map[string]any)["campusName"] = "changed"
	if got := store.Text("intro", "campusName"); got != "Florianópolis" {
		t.Fatalf("snapshot mutation leaked into store: %q", got)
	}

	step := store.Step("intro")
	if len(step) != 2 || !step["ambientesCobertos"].Contains("labs") {
		t.Fatalf("unexpected step view: %#v", step)
	}

	wantKeys := []Key{
		{Step: "intro", Field: "ambientesCobertos"},
		{Step: "intro", Field: "campusName"},
		{Step: "systemDetails", Field: "installationType"},
	}
	if diff := cmp.Diff(wantKeys, store.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if store.Len() != 3 {
		t.Fatalf("Len = %d, want 3", store.Len())
	}
}

func TestValueHelpers(t *testing.T) {
	t.Parallel()

	set := Set("a", "b", "a")
	if diff := cmp.Diff([]string{"a", "b"}, set.Keys()); diff != "" {
		t.Fatalf("dedupe mismatch (-want +got):\n%s", diff)
	}
	if set.Text() != "" || !set.IsSet() {
		t.Fatalf("unexpected set behaviour")
	}
	if got := Single("x").Strings(); len(got) != 1 || got[0] != "x" {
		t.Fatalf("Single.Strings = %v", got)
	}
	if Single("").Strings() != nil || !Single("").Empty() || !Set().Empty() {
		t.Fatalf("expected empty values")
	}
}
