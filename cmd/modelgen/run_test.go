package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func newTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(bytes.NewBuffer(nil))
	return l
}

func TestRunExecutesSourceFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "a.mg", []byte("print(1 + 2)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	opts := &options{configPath: "modelgen.yaml"}
	if err := run(fs, newTestLogger(), opts, []string{"a.mg"}, &out, strings.NewReader("")); err != nil {
		t.Fatal(err)
	}
	if out.String() != "3\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestRunReadsStdinViaDashArgument(t *testing.T) {
	fs := afero.NewMemMapFs()
	var out bytes.Buffer
	opts := &options{configPath: "modelgen.yaml"}
	err := run(fs, newTestLogger(), opts, []string{"-"}, &out, strings.NewReader("print(42)\n"))
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "42\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestRunNoSourcesFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	opts := &options{configPath: "modelgen.yaml"}
	err := run(fs, newTestLogger(), opts, nil, &bytes.Buffer{}, strings.NewReader(""))
	if err == nil {
		t.Fatal("expected an error when no sources and no --stdin are given")
	}
}

func TestRunSetFlagBindsGlobal(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "a.mg", []byte("print(scale)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	opts := &options{configPath: "modelgen.yaml", setVars: []string{"scale=9"}}
	if err := run(fs, newTestLogger(), opts, []string{"a.mg"}, &out, strings.NewReader("")); err != nil {
		t.Fatal(err)
	}
	if out.String() != "9\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestRunMalformedSetFlagFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "a.mg", []byte("print(1)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	opts := &options{configPath: "modelgen.yaml", setVars: []string{"noequalssign"}}
	err := run(fs, newTestLogger(), opts, []string{"a.mg"}, &bytes.Buffer{}, strings.NewReader(""))
	if err == nil {
		t.Fatal("expected an error for a malformed --set argument")
	}
}

func TestRunTokensDumpsAndExitsEarly(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "a.mg", []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	opts := &options{configPath: "modelgen.yaml", tokens: true}
	if err := run(fs, newTestLogger(), opts, []string{"a.mg"}, &out, strings.NewReader("")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "identifier") {
		t.Fatalf("expected a token dump containing identifier, got %q", out.String())
	}
}

func TestRunASTDumpsAndExitsEarly(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "a.mg", []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	opts := &options{configPath: "modelgen.yaml", ast: true}
	if err := run(fs, newTestLogger(), opts, []string{"a.mg"}, &out, strings.NewReader("")); err != nil {
		t.Fatal(err)
	}
	if out.Len() == 0 {
		t.Fatal("expected a non-empty AST dump")
	}
}

func TestRunExportWritesOBJToStdout(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := "emit (0,0,0, 0,0,1)\nemit (1,0,0, 0,0,1)\nemit (0,1,0, 0,0,1)\n"
	if err := afero.WriteFile(fs, "a.mg", []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	opts := &options{configPath: "modelgen.yaml", exportFmt: "obj"}
	if err := run(fs, newTestLogger(), opts, []string{"a.mg"}, &out, strings.NewReader("")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "f 1//1 2//2 3//3") {
		t.Fatalf("expected an OBJ face line, got %q", out.String())
	}
}

func TestRunMissingSourceFileFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	opts := &options{configPath: "modelgen.yaml"}
	err := run(fs, newTestLogger(), opts, []string{"missing.mg"}, &bytes.Buffer{}, strings.NewReader(""))
	if err == nil {
		t.Fatal("expected an error for a nonexistent source file")
	}
}

func TestParseSetFlagSplitsOnFirstEquals(t *testing.T) {
	name, v, err := parseSetFlag("scale=2=x")
	if err != nil {
		t.Fatal(err)
	}
	if name != "scale" || v != "2=x" {
		t.Fatalf("got name=%q value=%q", name, v)
	}
}

func TestParseSetFlagRejectsMissingEquals(t *testing.T) {
	if _, _, err := parseSetFlag("noequals"); err == nil {
		t.Fatal("expected an error for an argument with no '='")
	}
}
