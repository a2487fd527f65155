package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	cacheredis "github.com/vividmart/storefront/cache/redis"
	"github.com/vividmart/storefront/mongodb"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check MongoDB and Redis connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		var failed bool

		db, err := mongodb.Connect(ctx, mongoURI, mongoDB)
		if err != nil {
			fmt.Printf("mongodb: FAIL (%v)\n", err)
			failed = true
		} else {
			fmt.Println("mongodb: ok")
			defer db.Close(ctx)
		}

		store := cacheredis.NewStore(redis.NewClient(&redis.Options{Addr: redisAddr}))
		defer store.Close()
		if err := store.Ping(ctx); err != nil {
			fmt.Printf("redis: FAIL (%v)\n", err)
			failed = true
		} else {
			fmt.Println("redis: ok")
		}

		if failed {
			return fmt.Errorf("one or more backends unreachable")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
