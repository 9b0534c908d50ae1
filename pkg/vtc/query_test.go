package vtc

import "testing"

func load(t *testing.T, src string) *Runtime {
	t.Helper()
	rt := New()
	if err := rt.Load(src); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return rt
}

func TestGetTypedAccessors(t *testing.T) {
	rt := load(t, `
@a:
	$s := "hi"
	$i := 42
	$f := 1.5
	$b := True
	$l := [1, 2, 3]
`)
	if v, err := rt.GetString("a", "s"); err != nil || v != "hi" {
		t.Errorf("GetString: %v, %v", v, err)
	}
	if v, err := rt.GetInteger("a", "i"); err != nil || v != 42 {
		t.Errorf("GetInteger: %v, %v", v, err)
	}
	if v, err := rt.GetFloat("a", "f"); err != nil || v != 1.5 {
		t.Errorf("GetFloat: %v, %v", v, err)
	}
	if v, err := rt.GetBoolean("a", "b"); err != nil || v != true {
		t.Errorf("GetBoolean: %v, %v", v, err)
	}
	items, err := rt.GetList("a", "l")
	if err != nil || len(items) != 3 {
		t.Errorf("GetList: %v, %v", items, err)
	}
}

func TestGetFloatPromotesInteger(t *testing.T) {
	rt := load(t, `@a: $i := 3`)
	v, err := rt.GetFloat("a", "i")
	if err != nil {
		t.Fatalf("GetFloat failed: %v", err)
	}
	if v != 3.0 {
		t.Errorf("got %v", v)
	}
}

func TestGetIntegerDoesNotCoerceFloat(t *testing.T) {
	rt := load(t, `@a: $f := 3.0`)
	if _, err := rt.GetInteger("a", "f"); err == nil {
		t.Fatalf("expected GetInteger to reject a Float without auto-coercion")
	}
}

func TestGetValueWithAccessors(t *testing.T) {
	rt := load(t, `@a: $l := [10, 20, 30, 40]`)
	v, err := rt.GetValue("a", "l", Index(-1))
	if err != nil {
		t.Fatalf("GetValue failed: %v", err)
	}
	i, ok := v.AsInteger()
	if !ok || i != 40 {
		t.Errorf("got %v", v)
	}

	v, err = rt.GetValue("a", "l", Range(1, 3))
	if err != nil {
		t.Fatalf("GetValue failed: %v", err)
	}
	items, ok := v.AsList()
	if !ok || len(items) != 2 {
		t.Fatalf("got %v", v)
	}
	second, _ := items[0].AsInteger()
	if second != 20 {
		t.Errorf("got %v", items)
	}
}

func TestFlattenList(t *testing.T) {
	rt := load(t, `@a: $l := [1, [2, 3, [4]], 5]`)
	items, err := rt.FlattenList("a", "l")
	if err != nil {
		t.Fatalf("FlattenList failed: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 flattened elements, got %d", len(items))
	}
	for i, want := range []int64{1, 2, 3, 4, 5} {
		got, ok := items[i].AsInteger()
		if !ok || got != want {
			t.Errorf("element %d: got %v, want %d", i, items[i], want)
		}
	}
}

func TestAsDict(t *testing.T) {
	rt := load(t, `@a: $pairs := [["x", 1], ["y", 2], ["x", 3]]`)
	dict, err := rt.AsDict("a", "pairs")
	if err != nil {
		t.Fatalf("AsDict failed: %v", err)
	}
	x, ok := dict["x"].AsInteger()
	if !ok || x != 3 {
		t.Errorf("expected last-write-wins on duplicate key, got %v", dict["x"])
	}
	y, ok := dict["y"].AsInteger()
	if !ok || y != 2 {
		t.Errorf("got %v", dict["y"])
	}
}

func TestAsDictRejectsMalformedEntries(t *testing.T) {
	rt := load(t, `@a: $pairs := [[1, 2]]`)
	if _, err := rt.AsDict("a", "pairs"); err == nil {
		t.Fatalf("expected BadDictShape for a non-String key")
	}

	rt = load(t, `@a: $pairs := [[1, 2, 3]]`)
	if _, err := rt.AsDict("a", "pairs"); err == nil {
		t.Fatalf("expected BadDictShape for a non-pair entry")
	}
}

func TestListNamespacesAndVariables(t *testing.T) {
	rt := load(t, `
@b:
	$x := 1
@a:
	$y := 1
	$z := 2
`)
	if got := rt.ListNamespaces(); len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Errorf("got %v", got)
	}
	if got := rt.ListVariables("a"); len(got) != 2 || got[0] != "y" || got[1] != "z" {
		t.Errorf("got %v", got)
	}
}

func TestRenderAndRenderAll(t *testing.T) {
	rt := load(t, `@a: $x := 1`)
	out, err := rt.Render("a")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if out == "" {
		t.Errorf("expected non-empty rendered output")
	}

	if _, err := rt.Render("missing"); err == nil {
		t.Fatalf("expected NotFound for a missing namespace")
	}

	all := rt.RenderAll()
	if all == "" {
		t.Errorf("expected non-empty RenderAll output")
	}
}
