package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// extension installs an alr-<name> shell script on a fresh PATH.
func extension(t *testing.T, name, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "alr-"+name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("failed to write extension: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestRunExtension(t *testing.T) {
	extension(t, "hello", `env | grep '^ALR_' > "$1"`+"\n")
	out := filepath.Join(t.TempDir(), "env.txt")

	oldDB, oldCurrency, oldVerbose := *dbPath, *currency, *Verbose
	defer func() { *dbPath, *currency, *Verbose = oldDB, oldCurrency, oldVerbose }()
	*dbPath, *currency, *Verbose = "/tmp/random.sqlite", "XYZ", true

	found, code := RunExtension("hello", []string{out})
	if !found || code != 0 {
		t.Fatalf("RunExtension() = %v, %d, want true, 0", found, code)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("extension did not run: %v", err)
	}
	for _, want := range []string{
		EnvDB + "=/tmp/random.sqlite",
		EnvCurrency + "=XYZ",
		EnvVerbose + "=true",
		EnvOccurrences + "=" + occurrences.String(),
	} {
		if !strings.Contains(string(b), want) {
			t.Errorf("extension environment lacks %q:\n%s", want, b)
		}
	}
}

func TestRunExtension_ExitCode(t *testing.T) {
	extension(t, "fail", "exit 3\n")
	if found, code := RunExtension("fail", nil); !found || code != 3 {
		t.Errorf("RunExtension() = %v, %d, want true, 3", found, code)
	}
}

func TestRunExtension_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, code := RunExtension("missing", nil); found || code != 0 {
		t.Errorf("RunExtension() = %v, %d, want false, 0", found, code)
	}
}
