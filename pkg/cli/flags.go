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
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/craftcost/pkg/batch"
	"github.com/NVIDIA/craftcost/pkg/serializer"
)

// Flags are built per command so no state survives between runs.

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a YAML configuration file",
		Sources: cli.EnvVars("CRAFTCOST_CONFIG"),
	}
}

func catalogFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "catalog",
		Usage: "Catalog source: CSV directory, workbook file, sqlite://path or postgres:// DSN",
	}
}

func logLevelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level (debug, info, warn, error)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("Output format (supported values: %v)", serializer.SupportedFormats()),
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func kindFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kind",
		Aliases: []string{"k"},
		Value:   string(batch.KindEffective),
		Usage:   "Cost to evaluate: effective (policy-aware cheapest) or strict (craft only)",
	}
}

// parseKind reads the --kind flag.
func parseKind(cmd *cli.Command) (batch.Kind, error) {
	return batch.ParseKind(cmd.String("kind"))
}

// requireArgs returns the positional arguments, or an error naming what is
// missing when there are fewer than n.
func requireArgs(cmd *cli.Command, n int, what string) ([]string, error) {
	args := cmd.Args().Slice()
	if len(args) < n {
		return nil, fmt.Errorf("%s required", what)
	}
	return args, nil
}
