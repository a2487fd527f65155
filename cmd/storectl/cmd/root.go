package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	mongoURI  string
	mongoDB   string
	redisAddr string
)

var rootCmd = &cobra.Command{
	Use:   "storectl",
	Short: "storectl is a CLI tool to operate a storefront deployment",
	Long: `A command-line interface for operational tasks against a storefront
deployment: checking backend health and bootstrapping admin accounts.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Flags win over environment variables.
		if !cmd.Flags().Changed("mongo-uri") {
			if v := viper.GetString("MONGO_URI"); v != "" {
				mongoURI = v
			}
		}
		if !cmd.Flags().Changed("mongo-db") {
			if v := viper.GetString("MONGO_DB_NAME"); v != "" {
				mongoDB = v
			}
		}
		if !cmd.Flags().Changed("redis-addr") {
			if v := viper.GetString("REDIS_ADDR"); v != "" {
				redisAddr = v
			}
		}
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI")
	rootCmd.PersistentFlags().StringVar(&mongoDB, "mongo-db", "storefront_dev", "MongoDB database name")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "Redis address")
}
