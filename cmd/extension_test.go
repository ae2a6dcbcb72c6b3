package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"
)

func TestExtensionEnv(t *testing.T) {
	oldLedger, oldAccount, oldVerbose := ledgerFile, accountName, Verbose
	t.Cleanup(func() { ledgerFile, accountName, Verbose = oldLedger, oldAccount, oldVerbose })

	ledger, account, verbose := "/tmp/isa.jsonl", "ISA", true
	ledgerFile, accountName, Verbose = &ledger, &account, &verbose

	env := extensionEnv()
	for _, want := range []string{
		"CGT_LEDGER_FILE=/tmp/isa.jsonl",
		"CGT_ACCOUNT=ISA",
		"CGT_VERBOSE=true",
		"CGT_DEFAULT_CURRENCY=GBP",
	} {
		if !slices.Contains(env, want) {
			t.Errorf("extensionEnv() = %q, want it to contain %q", env, want)
		}
	}
}

func TestRunExtension_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, code := RunExtension("nothing-here", nil); found || code != 0 {
		t.Errorf("RunExtension() = %v, %d; want false, 0", found, code)
	}
}

func TestRunExtension(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extension scripts are shell scripts")
	}
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	script := "#!/bin/sh\necho \"$CGT_LEDGER_FILE $1\" > " + out + "\nexit 3\n"
	if err := os.WriteFile(filepath.Join(dir, "cgt-hello"), []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write cgt-hello: %v", err)
	}
	t.Setenv("PATH", dir)

	oldLedger := ledgerFile
	t.Cleanup(func() { ledgerFile = oldLedger })
	ledger := "isa.jsonl"
	ledgerFile = &ledger

	found, code := RunExtension("hello", []string{"world"})
	if !found || code != 3 {
		t.Errorf("RunExtension() = %v, %d; want true, 3", found, code)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("extension did not run: %v", err)
	}
	if string(got) != "isa.jsonl world\n" {
		t.Errorf("extension output = %q, want %q", got, "isa.jsonl world\n")
	}
}
