package architecture_test

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	modulePath = "access-diff"
	moduleRoot = "../.."
)

type layerRule struct {
	sourcePrefix string
	forbidden    []string
	hint         string
}

var rules = []layerRule{
	{
		sourcePrefix: modulePath + "/internal/domain",
		forbidden:    []string{modulePath + "/"},
		hint:         "domain may only import the standard library and third-party packages",
	},
	{
		sourcePrefix: modulePath + "/internal/reconcile",
		forbidden: []string{
			modulePath + "/internal/ingest",
			modulePath + "/internal/export",
			modulePath + "/internal/service",
			modulePath + "/internal/api",
			modulePath + "/internal/ui",
			modulePath + "/internal/middleware",
			modulePath + "/internal/config",
		},
		hint: "reconcile is pure and depends on domain only",
	},
	{
		sourcePrefix: modulePath + "/internal/ingest",
		forbidden: []string{
			modulePath + "/internal/reconcile",
			modulePath + "/internal/export",
			modulePath + "/internal/service",
			modulePath + "/internal/api",
			modulePath + "/internal/ui",
			modulePath + "/internal/middleware",
			modulePath + "/internal/config",
		},
		hint: "ingest depends on domain only",
	},
	{
		sourcePrefix: modulePath + "/internal/export",
		forbidden: []string{
			modulePath + "/internal/ingest",
			modulePath + "/internal/reconcile",
			modulePath + "/internal/service",
			modulePath + "/internal/api",
			modulePath + "/internal/ui",
			modulePath + "/internal/middleware",
			modulePath + "/internal/config",
		},
		hint: "export depends on domain only",
	},
	{
		sourcePrefix: modulePath + "/internal/service",
		forbidden: []string{
			modulePath + "/internal/api",
			modulePath + "/internal/ui",
			modulePath + "/internal/middleware",
			modulePath + "/internal/config",
			modulePath + "/cmd",
			modulePath + "/pkg/cli",
		},
		hint: "service should depend on domain and the pipeline packages",
	},
	{
		sourcePrefix: modulePath + "/internal/api",
		forbidden: []string{
			modulePath + "/internal/ui",
			modulePath + "/internal/ingest",
			modulePath + "/internal/reconcile",
			modulePath + "/cmd",
			modulePath + "/pkg/cli",
		},
		hint: "api should depend on service/domain packages",
	},
	{
		sourcePrefix: modulePath + "/internal/ui",
		forbidden: []string{
			modulePath + "/internal/api",
			modulePath + "/internal/ingest",
			modulePath + "/internal/reconcile",
			modulePath + "/cmd",
			modulePath + "/pkg/cli",
		},
		hint: "ui should depend on service/domain packages",
	},
	{
		sourcePrefix: modulePath + "/internal/middleware",
		forbidden: []string{
			modulePath + "/internal/service",
			modulePath + "/internal/api",
			modulePath + "/internal/ui",
		},
		hint: "middleware should depend on middleware-local packages",
	},
	{
		sourcePrefix: modulePath + "/pkg/cli",
		forbidden: []string{
			modulePath + "/internal/api",
			modulePath + "/internal/ui",
			modulePath + "/internal/middleware",
			modulePath + "/internal/config",
		},
		hint: "the CLI runs the pipeline locally and never reaches into the HTTP layers",
	},
}

func TestImportBoundaries(t *testing.T) {
	files := goSourceFiles(t)
	require.NotEmpty(t, files, "no Go sources found under %s", moduleRoot)

	violations := make([]string, 0)
	fset := token.NewFileSet()

	for _, file := range files {
		sourcePkg := packageImportPath(file)
		rule, ok := findRule(sourcePkg)
		if !ok {
			continue
		}

		parsed, parseErr := parser.ParseFile(fset, filepath.Join(moduleRoot, file), nil, parser.ImportsOnly)
		require.NoErrorf(t, parseErr, "parse imports for %s", file)

		for _, imp := range parsed.Imports {
			importPath := strings.Trim(imp.Path.Value, "\"")
			if !strings.HasPrefix(importPath, modulePath+"/") {
				continue
			}
			if hasPathPrefix(importPath, sourcePkg) {
				continue
			}
			if violatesRule(importPath, rule.forbidden) {
				violations = append(violations,
					"governance: "+sourcePkg+" imports "+importPath+" via "+file+"; allowed direction: "+rule.hint,
				)
			}
		}
	}

	if len(violations) > 0 {
		sort.Strings(violations)
		t.Fatalf("%s", strings.Join(violations, "\n"))
	}
}

// goSourceFiles lists non-test Go files relative to the module root.
func goSourceFiles(t *testing.T) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(moduleRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != moduleRoot && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if shouldSkipFile(path) {
			return nil
		}
		rel, err := filepath.Rel(moduleRoot, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	return files
}

func shouldSkipFile(path string) bool {
	base := filepath.Base(path)
	return !strings.HasSuffix(base, ".go") || strings.HasSuffix(base, "_test.go")
}

func packageImportPath(file string) string {
	return modulePath + "/" + filepath.ToSlash(filepath.Dir(file))
}

func findRule(sourcePkg string) (layerRule, bool) {
	for _, rule := range rules {
		if hasPathPrefix(sourcePkg, rule.sourcePrefix) {
			return rule, true
		}
	}
	return layerRule{}, false
}

func violatesRule(importPath string, forbidden []string) bool {
	for _, prefix := range forbidden {
		if strings.HasSuffix(prefix, "/") {
			if strings.HasPrefix(importPath, prefix) {
				return true
			}
			continue
		}
		if hasPathPrefix(importPath, prefix) {
			return true
		}
	}
	return false
}

func hasPathPrefix(value string, prefix string) bool {
	return value == prefix || strings.HasPrefix(value, prefix+"/")
}
