package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulesPrefix = "timer/internal/modules/"

// coreLayers hold the task rules; they must not reach terminal, CLI or
// database libraries.
var coreLayers = map[string]bool{"domain": true, "dto": true, "port/in": true, "port/out": true, "service": true, "usecase": true}

var adapterOnlyImports = []string{
	"github.com/charmbracelet/",
	"github.com/manifoldco/promptui",
	"github.com/spf13/cobra",
	"github.com/fsnotify/fsnotify",
	"modernc.org/sqlite",
	"database/sql",
	"encoding/csv",
	"timer/internal/ui/",
}

type sourceImport struct {
	file   string
	module string
	layer  string
	path   string
}

func moduleImports(t *testing.T) []sourceImport {
	t.Helper()
	fset := token.NewFileSet()
	root := filepath.Join("..", "modules")
	var out []sourceImport
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		slash := filepath.ToSlash(path)
		module := moduleName(slash)
		layer := detectLayer(slash)
		if module == "" || layer == "" {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			out = append(out, sourceImport{
				file:   slash,
				module: module,
				layer:  layer,
				path:   strings.Trim(imp.Path.Value, `"`),
			})
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk modules: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("no module sources found under %s", root)
	}
	return out
}

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	for _, imp := range moduleImports(t) {
		if !strings.HasPrefix(imp.path, modulesPrefix) {
			continue
		}
		if violatesLayerRule(imp.module, imp.layer, imp.path) {
			t.Errorf("forbidden import in %s (%s): %s", imp.file, imp.layer, imp.path)
		}
	}
}

// Report and export read tasks through the tracker's public port only, so
// the CSV layout and task list stay private to the tracker.
func TestOtherModulesReachTrackerThroughItsPort(t *testing.T) {
	t.Parallel()
	for _, imp := range moduleImports(t) {
		if imp.module == "tracker" || !strings.HasPrefix(imp.path, modulesPrefix+"tracker/") {
			continue
		}
		if !isPortIn(imp.path) && !isDTO(imp.path) {
			t.Errorf("%s reaches into the tracker via %s", imp.file, imp.path)
		}
	}
}

func TestCoreLayersStayFreeOfIOLibraries(t *testing.T) {
	t.Parallel()
	for _, imp := range moduleImports(t) {
		if !coreLayers[imp.layer] {
			continue
		}
		for _, banned := range adapterOnlyImports {
			if strings.HasPrefix(imp.path, banned) {
				t.Errorf("%s (%s) imports %s; keep it in an adapter", imp.file, imp.layer, imp.path)
			}
		}
	}
}

func TestViolatesLayerRule(t *testing.T) {
	t.Parallel()
	cases := []struct {
		module, layer, path string
		want                bool
	}{
		{"report", "usecase", modulesPrefix + "tracker/port/in", false},
		{"export", "usecase", modulesPrefix + "tracker/dto", false},
		{"report", "usecase", modulesPrefix + "tracker/domain", true},
		{"export", "service", modulesPrefix + "tracker/port/out", true},
		{"report", "adapter/out", modulesPrefix + "tracker/adapter/out", true},
		{"tracker", "adapter/in", modulesPrefix + "tracker/domain", true},
		{"tracker", "adapter/out", modulesPrefix + "tracker/port/out", false},
		{"tracker", "usecase", modulesPrefix + "tracker/adapter/out", true},
		{"tracker", "domain", modulesPrefix + "tracker/service", true},
		{"tracker", "service", modulesPrefix + "tracker/usecase", true},
		{"tracker", "usecase", modulesPrefix + "tracker/service", false},
	}
	for _, tc := range cases {
		if got := violatesLayerRule(tc.module, tc.layer, tc.path); got != tc.want {
			t.Errorf("violatesLayerRule(%s, %s, %s) = %v, want %v", tc.module, tc.layer, tc.path, got, tc.want)
		}
	}
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

// hasLayer reports whether importPath names the layer package or one below it.
func hasLayer(importPath, layer string) bool {
	return strings.Contains(importPath, "/"+layer+"/") || strings.HasSuffix(importPath, "/"+layer)
}

func isPortIn(path string) bool { return hasLayer(path, "port/in") }

func isDTO(path string) bool { return hasLayer(path, "dto") }

func violatesLayerRule(module, layer, importPath string) bool {
	if !strings.HasPrefix(importPath, modulesPrefix+module+"/") {
		return !isPortIn(importPath) && !isDTO(importPath)
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return hasLayer(importPath, "adapter")
	case "service":
		return hasLayer(importPath, "adapter") || hasLayer(importPath, "usecase")
	case "domain":
		return hasLayer(importPath, "adapter") || hasLayer(importPath, "usecase") || hasLayer(importPath, "service")
	default:
		return false
	}
}
