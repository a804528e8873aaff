package cli

import (
	"bytes"
	"context"
	"testing"
)

type fakePrompts struct {
	inputs   []string
	confirms []bool
	selects  []string
	asked    []string
}

func (f *fakePrompts) Input(_ context.Context, cfg InputConfig) (string, error) {
	f.asked = append(f.asked, cfg.Message)
	if len(f.inputs) == 0 {
		return cfg.Default, nil
	}
	v := f.inputs[0]
	f.inputs = f.inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(v); err != nil {
			return "", err
		}
	}
	return v, nil
}

func (f *fakePrompts) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	f.asked = append(f.asked, cfg.Message)
	if len(f.confirms) == 0 {
		return cfg.Default, nil
	}
	v := f.confirms[0]
	f.confirms = f.confirms[1:]
	return v, nil
}

func (f *fakePrompts) Select(_ context.Context, cfg SelectConfig) (string, error) {
	f.asked = append(f.asked, cfg.Message)
	if len(f.selects) == 0 {
		return cfg.Default, nil
	}
	v := f.selects[0]
	f.selects = f.selects[1:]
	return v, nil
}

// executeCmd runs a fresh command tree rooted at dir and returns stdout and
// stderr separately.
func executeCmd(t *testing.T, dir string, prompts PromptDriver, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("PROPDOC_CONFIG", "")

	root := NewRootCommand(WithWorkingDir(dir), WithPromptDriver(prompts))
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	root.SetArgs(append([]string{"--no-color"}, args...))
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
