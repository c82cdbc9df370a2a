// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/craftcost/pkg/batch"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		wantKind batch.Kind
		wantErr  bool
	}{
		{name: "effective", kind: "effective", wantKind: batch.KindEffective},
		{name: "strict", kind: "strict", wantKind: batch.KindStrict},
		{name: "mixed case", kind: "Strict", wantKind: batch.KindStrict},
		{name: "empty defaults", kind: "", wantKind: batch.KindEffective},
		{name: "unknown", kind: "cheapest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "kind",
						Value: tt.kind,
					},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseKind(c)
					if (err != nil) != tt.wantErr {
						t.Errorf("parseKind() error = %v, wantErr %v", err, tt.wantErr)
						return nil
					}
					if !tt.wantErr && got != tt.wantKind {
						t.Errorf("parseKind() = %v, want %v", got, tt.wantKind)
					}
					return nil
				},
			}

			if err := cmd.Run(context.Background(), []string{"test"}); err != nil {
				t.Fatalf("failed to run command: %v", err)
			}
		})
	}
}

func TestRequireArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{name: "names given", args: []string{"test", "Mithril Ingot", "Ore"}, want: 2},
		{name: "no names", args: []string{"test"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := requireArgs(c, 1, "item name")
					if (err != nil) != tt.wantErr {
						t.Errorf("requireArgs() error = %v, wantErr %v", err, tt.wantErr)
						return nil
					}
					if len(got) != tt.want {
						t.Errorf("requireArgs() = %v, want %d args", got, tt.want)
					}
					return nil
				},
			}

			if err := cmd.Run(context.Background(), tt.args); err != nil {
				t.Fatalf("failed to run command: %v", err)
			}
		})
	}
}

func TestRootCmd_CommandStructure(t *testing.T) {
	root := newRootCmd()

	if root.Name != name {
		t.Errorf("Name = %v, want %v", root.Name, name)
	}
	for _, flagName := range []string{"config", "catalog", "log-level", "format", "output"} {
		if !hasFlag(root.Flags, flagName) {
			t.Errorf("global flag %q not found", flagName)
		}
	}

	want := map[string][]string{
		"cost":    nil,
		"explain": nil,
		"profit":  nil,
		"prices":  {"update"},
		"ids":     {"fetch"},
		"cache":   {"invalidate"},
	}
	for _, c := range root.Commands {
		subs, ok := want[c.Name]
		if !ok {
			t.Errorf("unexpected command %q", c.Name)
			continue
		}
		delete(want, c.Name)
		if c.Usage == "" {
			t.Errorf("%s: Usage should not be empty", c.Name)
		}
		if subs == nil && c.Action == nil {
			t.Errorf("%s: Action should not be nil", c.Name)
		}
		for _, sub := range subs {
			if c.Command(sub) == nil {
				t.Errorf("%s: subcommand %q not found", c.Name, sub)
			}
		}
	}
	for missing := range want {
		t.Errorf("command %q not registered", missing)
	}
}

func hasFlag(flags []cli.Flag, name string) bool {
	for _, f := range flags {
		for _, n := range f.Names() {
			if n == name {
				return true
			}
		}
	}
	return false
}
