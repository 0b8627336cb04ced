package cli

import (
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/carbonex/footprint/internal/assessdb"
	"github.com/carbonex/footprint/internal/config"
	"github.com/carbonex/footprint/internal/server"
)

const defaultListenAddr = ":8080"

// NewServeCmd creates the serve command running the calculation API.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculation API over HTTP",
		RunE:  runServe,
	}

	cmd.Flags().String("addr", defaultListenAddr, "listen address")
	cmd.Flags().String("env-file", "", "load environment variables from a dotenv file")
	cmd.Flags().String("factors-file", "", "YAML emission factor dataset")
	cmd.Flags().String("database-url", "", "PostgreSQL factor and assessment store")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	if envFile, _ := cmd.Flags().GetString("env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return err
		}
	} else {
		// Best effort: a .env in the working directory is optional.
		_ = godotenv.Load()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Re-read config so dotenv-provided variables take effect.
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	eng, pool, err := buildEngine(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	var store assessdb.Store
	if pool != nil {
		defer pool.Close()
		store = assessdb.NewPostgres(pool.Pool())
	}

	addr, _ := cmd.Flags().GetString("addr")
	return server.New(eng, store).Serve(ctx, addr)
}
