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
	"fmt"

	"github.com/urfave/cli/v3"
)

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the snapshot cache",
		Commands: []*cli.Command{
			{
				Name:  "invalidate",
				Usage: "Drop the cached catalog snapshot",
				Description: `Delete the snapshot from the configured store so servers sharing it reload
the catalog on their next query. Without a Redis address this only affects
the current process and is a no-op.`,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := setup(cmd)
					if err != nil {
						return err
					}
					rt, err := openRuntime(ctx, cfg)
					if err != nil {
						return err
					}
					defer closeRuntime(rt)

					if err := rt.Invalidate(ctx); err != nil {
						return fmt.Errorf("failed to invalidate snapshot cache: %w", err)
					}
					_, err = fmt.Fprintf(cmd.Root().Writer, "snapshot cache %q invalidated\n", cfg.Cache.Key)
					return err
				},
			},
		},
	}
}
