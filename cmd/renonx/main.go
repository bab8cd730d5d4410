package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"renonx-go/internal/app"
	"renonx-go/internal/config"
	"renonx-go/internal/server"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var verbose bool

// newApp loads the environment and config and creates an App. The caller must
// defer a.Close(). operation identifies the CLI command being run (e.g. "Serve").
func newApp(ctx context.Context, operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	if err := app.LoadEnv(defaults["env_path"], ".env"); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.New(ctx, cfg, operation, app.Options{Verbose: verbose})
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

// withApp runs fn against a fresh App and records its outcome on the operation.
func withApp(cmd *cobra.Command, operation string, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, operation)
	if err != nil {
		return err
	}
	defer a.Close()

	err = fn(ctx, a)
	a.Operation().Fail(err)
	return err
}

// readSecret prompts on stderr and reads a line from stdin without echo when
// stdin is a terminal.
func readSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var rootCmd = &cobra.Command{
	Use:          "renonx",
	Short:        "Portfolio content store and admin API",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:  %s\n", cfg.LogDir)
		fmt.Printf("Storage:  %s\n", cfg.Storage.Type)
		fmt.Printf("Backend:  %s\n", cfg.Backend.Type)
		fmt.Printf("Assets:   %s\n", cfg.Assets.Type)
		fmt.Printf("Server:   %s\n", cfg.Server.Addr)
		return nil
	},
}

// init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Seed the content store and check the asset bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "Init", func(ctx context.Context, a *app.App) error {
			if err := a.Setup(ctx); err != nil {
				return err
			}
			fmt.Println("Content store ready.")
			return nil
		})
	},
}

// serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withApp(cmd, "Serve", func(_ context.Context, a *app.App) error {
			if err := a.Setup(ctx); err != nil {
				return err
			}

			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = a.Config().Server.Addr
			}
			if !verbose {
				gin.SetMode(gin.ReleaseMode)
			}

			srv := server.New(a.Store(), a.Bucket(), server.Options{
				AllowedOrigins: a.Config().Server.AllowedOrigins,
				Logger:         a.StoreLogger(),
			})
			fmt.Printf("Serving on %s\n", addr)
			return srv.ListenAndServe(ctx, addr)
		})
	},
}

// login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Start an admin session",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, err := readSecret("Password: ")
		if err != nil {
			return err
		}

		return withApp(cmd, "Login", func(ctx context.Context, a *app.App) error {
			user, err := a.Store().Login(ctx, email, password)
			if err != nil {
				return err
			}
			if user == nil {
				return errors.New("access denied")
			}
			fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the admin session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "Logout", func(ctx context.Context, a *app.App) error {
			if err := a.Store().Logout(ctx); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "WhoAmI", func(ctx context.Context, a *app.App) error {
			user := a.Store().GetUser()
			if user == nil {
				fmt.Println("Not signed in.")
				return nil
			}
			fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.ID)
			return nil
		})
	},
}

// logs command
var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View the diagnostic journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		return withApp(cmd, "GetLogs", func(ctx context.Context, a *app.App) error {
			logs := a.Store().GetLogs()
			if len(logs) == 0 {
				fmt.Println("No journal entries.")
				return nil
			}
			if limit > 0 && len(logs) > limit {
				logs = logs[:limit]
			}
			for _, l := range logs {
				fmt.Printf("%s  %-7s  %s\n", l.Timestamp, l.Level, l.Message)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default from config)")
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().String("email", "admin@renonx.com", "Admin email")
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(logsCmd)
	logsCmd.Flags().IntP("limit", "n", 20, "Maximum number of entries to show")

	addContentCommands()
}
