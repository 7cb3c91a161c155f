package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskboard/internal/auth"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/server"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	newUsername string
	newPassword string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Add a user to the database credential store",
	Long: `create-user stores a bcrypt-hashed credential in postgres.

The server only consults these users when AUTH_BACKEND=database.`,
	RunE: runCreateUser,
}

func init() {
	createUserCmd.Flags().StringVar(&newUsername, "username", "", "Username to create")
	createUserCmd.Flags().StringVar(&newPassword, "password", "", "Password for the new user")
	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("password")
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	db, err := server.OpenDB(cfg)
	if err != nil {
		return err
	}
	repo := repository.NewUserRepository(db)
	if err := repo.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("migrate users table: %w", err)
	}

	user, err := createUser(cmd.Context(), repo, newUsername, newPassword)
	if err != nil {
		return err
	}

	log.WithField("username", user.Username).Info("✅ User created")
	fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", user.Username, user.ID)
	return nil
}

func createUser(ctx context.Context, users repository.UserRepositoryInterface, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.New("username and password must not be empty")
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hashed,
	}
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, fmt.Errorf("username %q is already taken", username)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
