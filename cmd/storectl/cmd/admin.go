package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/vividmart/storefront/domain"
	"github.com/vividmart/storefront/internal/auth"
	"github.com/vividmart/storefront/mongodb"
)

var (
	adminEmail     string
	adminPassword  string
	adminFirstName string
	adminLastName  string
)

var adminCreateCmd = &cobra.Command{
	Use:   "admin-create",
	Short: "Create an administrator account",
	Long: `Creates a user with the admin role directly in MongoDB. Intended for
bootstrapping a fresh deployment before any admin exists to use the API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		db, err := mongodb.Connect(ctx, mongoURI, mongoDB)
		if err != nil {
			return fmt.Errorf("connect to mongodb: %w", err)
		}
		defer db.Close(ctx)

		users, err := mongodb.NewUserRepository(ctx, db.Database())
		if err != nil {
			return err
		}

		hasher := auth.NewBcryptPasswordHasher(bcrypt.DefaultCost)
		hash, err := hasher.Hash(adminPassword)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		user := &domain.User{
			ID:            uuid.NewString(),
			Email:         strings.ToLower(strings.TrimSpace(adminEmail)),
			PasswordHash:  hash,
			FirstName:     adminFirstName,
			LastName:      adminLastName,
			Role:          domain.RoleAdmin,
			EmailVerified: true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := users.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("create admin user: %w", err)
		}

		fmt.Printf("Admin user created: %s (%s)\n", user.Email, user.ID)
		return nil
	},
}

func init() {
	adminCreateCmd.Flags().StringVar(&adminEmail, "email", "", "email address for the admin account")
	adminCreateCmd.Flags().StringVar(&adminPassword, "password", "", "password for the admin account")
	adminCreateCmd.Flags().StringVar(&adminFirstName, "first-name", "", "first name")
	adminCreateCmd.Flags().StringVar(&adminLastName, "last-name", "", "last name")
	_ = adminCreateCmd.MarkFlagRequired("email")
	_ = adminCreateCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(adminCreateCmd)
}
