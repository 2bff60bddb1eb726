// Command accountctl is the operator tool for account rows.
//
// Supported subcommands:
//   - hash:     Derive a base64 salt and key for a password read from the terminal
//   - register: Create an account in the configured database
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"finance/config"
	"finance/internal/domain/entity"
	"finance/internal/domain/service"
	"finance/internal/infra/auth"
	logs "finance/internal/infra/log"
	"finance/internal/infra/persistence/model"
	"finance/internal/infra/persistence/postgres"
	"finance/internal/usecase"
	"finance/internal/usecase/impl"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/term"
)

// readPassword is swapped in tests.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, config.New); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer, loadConfig func() (*config.Config, error)) error {
	if len(args) < 1 {
		printUsage(out)

		return errors.New("missing subcommand")
	}

	switch args[0] {
	case "hash":
		cmd := flag.NewFlagSet("hash", flag.ContinueOnError)
		cmd.SetOutput(out)
		if err := cmd.Parse(args[1:]); err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return errors.Wrap(err, "load config")
		}

		return runHash(cfg, out)

	case "register":
		cmd := flag.NewFlagSet("register", flag.ContinueOnError)
		cmd.SetOutput(out)
		username := cmd.String("username", "", "Account username")
		role := cmd.Int("role", int(entity.RoleUser), "Role: 0 user, 1 admin")
		if err := cmd.Parse(args[1:]); err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return errors.Wrap(err, "load config")
		}

		return runRegister(ctx, cfg, *username, entity.Role(*role), out)

	default:
		printUsage(out)

		return errors.Errorf("unknown subcommand %q", args[0])
	}
}

func promptPassword(out io.Writer) (string, error) {
	fmt.Fprint(out, "Password: ")
	pw, err := readPassword()
	fmt.Fprintln(out)
	if err != nil {
		return "", errors.Wrap(err, "read password")
	}

	return string(pw), nil
}

func runHash(cfg *config.Config, out io.Writer) error {
	hasher, err := auth.NewPBKDF2Hasher(cfg)
	if err != nil {
		return err
	}

	password, err := promptPassword(out)
	if err != nil {
		return err
	}

	return printHash(hasher, password, out)
}

func printHash(hasher service.PasswordHasher, password string, out io.Writer) error {
	salt, key, err := hasher.Hash(password)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}

	fmt.Fprintf(out, "password_salt: %s\n", model.EncodeSecret(salt))
	fmt.Fprintf(out, "password_hash: %s\n", model.EncodeSecret(key))

	return nil
}

func runRegister(ctx context.Context, cfg *config.Config, username string, role entity.Role, out io.Writer) error {
	password, err := promptPassword(out)
	if err != nil {
		return err
	}

	var uc usecase.AuthUsecase
	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		fx.Provide(
			logs.New,
			postgres.New,
			postgres.NewAccountRepository,
			postgres.NewTransactionManager,
			auth.NewPBKDF2Hasher,
			auth.NewJWTService,
			impl.NewAuthService,
		),
		fx.Populate(&uc),
	)
	if err := app.Err(); err != nil {
		return err
	}
	if err := app.Start(ctx); err != nil {
		return errors.Wrap(err, "connect")
	}
	defer func() { _ = app.Stop(context.Background()) }()

	if err := uc.Register(ctx, &usecase.RegisterInput{Username: username, Password: password, Role: role}); err != nil {
		return err
	}

	fmt.Fprintf(out, "registered %s (%s)\n", username, role)

	return nil
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "Usage: accountctl <command> [flags]")
	fmt.Fprintln(out, "  hash                       print salt and key for a password")
	fmt.Fprintln(out, "  register -username -role   create an account")
}
