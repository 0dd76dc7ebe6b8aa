// =============================================================================
// Asset Import - Lookup Command
// =============================================================================
//
// COMMAND USAGE:
//   asset-import lookup sync [--redis-url-env REDIS_URL] [--key-prefix asset-import]
//
// Loads the snapshot from the configured lookup source (file or postgres) and
// publishes it to Redis. Importers configured with the redis driver then read
// the same persisted keys without a database connection.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/asset-import/internal/lookup"
)

var (
	redisURLEnv    string
	redisKeyPrefix string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Manage the lookup sets used for uniqueness and reference checks",
}

var lookupSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Publish the configured lookup snapshot to Redis",
	RunE: func(cmd *cobra.Command, args []string) error {
		if mainConfig.Lookup.Driver == "redis" {
			return fmt.Errorf("lookup driver is already redis; configure a file or postgres source to sync from")
		}

		url := os.Getenv(redisURLEnv)
		if url == "" {
			return fmt.Errorf("environment variable %s is not set", redisURLEnv)
		}

		snapshot, err := loadSnapshot(cmd.Context(), mainConfig.Lookup)
		if err != nil {
			return err
		}

		prefix := redisKeyPrefix
		if prefix == "" {
			prefix = mainConfig.Lookup.KeyPrefix
		}
		dst, err := lookup.OpenRedis(url, prefix)
		if err != nil {
			return err
		}
		defer dst.Close()

		if err := dst.Publish(cmd.Context(), snapshot); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Lookup sets published to Redis")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.AddCommand(lookupSyncCmd)

	lookupSyncCmd.Flags().StringVar(&redisURLEnv, "redis-url-env", "REDIS_URL", "Environment variable holding the Redis URL")
	lookupSyncCmd.Flags().StringVar(&redisKeyPrefix, "key-prefix", "", "Redis key prefix (default from lookup.key_prefix or asset-import)")
}
