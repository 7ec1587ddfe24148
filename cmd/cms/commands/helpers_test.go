package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/spf13/cobra"

	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/prompt"
)

var errNotScripted = errors.New("not scripted")

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

func run(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()

	if a == nil {
		a = newApp(BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"})
		a.isTerminal = func() bool { return false }
	}

	var out, errOut bytes.Buffer

	cmd := a.rootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type scriptedDriver struct {
	inputs    []string
	passwords []string
	confirms  []bool
}

func (d *scriptedDriver) next(queue *[]string) (string, error) {
	if len(*queue) == 0 {
		return "", errNotScripted
	}

	val := (*queue)[0]
	*queue = (*queue)[1:]

	return val, nil
}

func (d *scriptedDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	val, err := d.next(&d.inputs)
	if err == nil && cfg.Validator != nil {
		err = cfg.Validator(val)
	}

	return val, err
}

func (d *scriptedDriver) Password(_ context.Context, cfg prompt.InputConfig) (string, error) {
	val, err := d.next(&d.passwords)
	if err == nil && cfg.Validator != nil {
		err = cfg.Validator(val)
	}

	return val, err
}

func (d *scriptedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, errNotScripted
	}

	val := d.confirms[0]
	d.confirms = d.confirms[1:]

	return val, nil
}

func (d *scriptedDriver) Select(context.Context, prompt.SelectConfig) (int, error) {
	return 0, nil
}

func (d *scriptedDriver) Multiline(_ context.Context, _ prompt.MultilineConfig) (string, error) {
	return d.next(&d.inputs)
}

func (d *scriptedDriver) Info(context.Context, string) error {
	return nil
}
