package discover

import (
	"context"
	"go/types"
	"strings"
	"testing"
)

const hubsPkg = "github.com/broady/hub/internal/discover/testdata/hubs"

func TestFind(t *testing.T) {
	result, err := Find(context.Background(), hubsPkg, "")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}

	var names []string
	for _, c := range result.Contracts {
		names = append(names, c.Name)
		if c.Type == nil {
			t.Errorf("contract %s has no type", c.Name)
		}
		if !strings.HasSuffix(c.Pos.Filename, "hubs.go") {
			t.Errorf("contract %s at %s, want hubs.go", c.Name, c.Pos)
		}
	}
	if got, want := strings.Join(names, ","), "ChatHub,AdminHub"; got != want {
		t.Errorf("contracts = %s, want %s", got, want)
	}

	if result.PackagePath != hubsPkg {
		t.Errorf("PackagePath = %q, want %q", result.PackagePath, hubsPkg)
	}
	if result.PackageName != "hubs" {
		t.Errorf("PackageName = %q, want hubs", result.PackageName)
	}
	if result.ModulePath != HubPackage {
		t.Errorf("ModulePath = %q, want %q", result.ModulePath, HubPackage)
	}
	if result.Package == nil || len(result.Package.Syntax) == 0 {
		t.Error("Package syntax not loaded")
	}
}

func TestFind_Errors(t *testing.T) {
	if _, err := Find(context.Background(), "./does-not-exist", t.TempDir()); err == nil {
		t.Error("Find() on a missing directory should fail")
	}
}

func TestMarkers(t *testing.T) {
	result, err := Find(context.Background(), hubsPkg, "")
	if err != nil {
		t.Fatal(err)
	}
	scope := result.Package.Types.Scope()
	lookup := func(name string) types.Type {
		t.Helper()
		obj := scope.Lookup(name)
		if obj == nil {
			t.Fatalf("%s not found", name)
		}
		return obj.Type()
	}

	notify, _, _ := types.LookupFieldOrMethod(lookup("Notifier"), false, result.Package.Types, "Notify")
	sig := notify.Type().(*types.Signature)
	if !IsCaller(sig.Params().At(0).Type()) {
		t.Error("IsCaller(hub.Caller) = false")
	}
	if IsCaller(sig.Params().At(1).Type()) {
		t.Error("IsCaller(string) = true")
	}
	if !IsError(sig.Results().At(0).Type()) {
		t.Error("IsError(error) = false")
	}

	handler := lookup("Handler").Underlying().(*types.Signature)
	if !IsContext(handler.Params().At(0).Type()) {
		t.Error("IsContext(context.Context) = false")
	}

	if IsContract(lookup("Named").(*types.Named)) {
		t.Error("a named Hub field is not an embedding")
	}
	if !IsHub(lookup("Named").Underlying().(*types.Struct).Field(0).Type()) {
		t.Error("IsHub(hub.Hub) = false")
	}
}
