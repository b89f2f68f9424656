// gymctl tareas de operación del gimnasio: migraciones, lectores, acceso biométrico y barrido.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jhoicas/gymflow-api/internal/bootstrap"
	"github.com/jhoicas/gymflow-api/pkg/config"
	"github.com/jhoicas/gymflow-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "gymctl",
	Short:         "Herramientas de administración de GymFlow",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(migrateCmd, devicesCmd, biometricCmd, sweepCmd, adminCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// withContainer carga configuración, arma las dependencias y ejecuta fn.
// Ctrl+C cancela el contexto pero un fan-out ya iniciado termina su recorrido.
func withContainer(fn func(ctx context.Context, c *bootstrap.Container) error) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(ctx, c)
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	level := cfg.App.LogLevel
	if level == "info" {
		level = "warn"
	}
	log := logger.New(logger.Config{Env: "development", Level: level, App: "gymctl"})
	return cfg, log, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
