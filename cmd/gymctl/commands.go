package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/gymflow-api/internal/application/dto"
	"github.com/jhoicas/gymflow-api/internal/bootstrap"
	"github.com/jhoicas/gymflow-api/internal/infrastructure/postgres"
)

// ── migrate ───────────────────────────────────────────────────────────────────

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones pendientes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		pool, err := postgres.NewPool(cmd.Context(), cfg.DB, log.Component("postgres"))
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := postgres.Migrate(cmd.Context(), pool, log.Component("migrate")); err != nil {
			return err
		}
		fmt.Println("migraciones aplicadas")
		return nil
	},
}

// ── devices ───────────────────────────────────────────────────────────────────

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Registro de lectores biométricos",
}

var devicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lista los lectores registrados",
	RunE: func(_ *cobra.Command, _ []string) error {
		return withContainer(func(ctx context.Context, c *bootstrap.Container) error {
			out, err := c.DeviceUC.List(ctx, dto.PageRequest{Limit: 100})
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSERIAL\tNOMBRE\tUBICACIÓN\tACTIVO")
			for _, d := range out.Items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", d.ID, d.SerialNo, d.DeviceName, d.Location, d.IsActive)
			}
			return w.Flush()
		})
	},
}

var devicesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Registra un lector",
	RunE: func(cmd *cobra.Command, _ []string) error {
		serial, _ := cmd.Flags().GetString("serial")
		name, _ := cmd.Flags().GetString("name")
		location, _ := cmd.Flags().GetString("location")
		return withContainer(func(ctx context.Context, c *bootstrap.Container) error {
			out, err := c.DeviceUC.Create(ctx, dto.CreateDeviceRequest{SerialNo: serial, DeviceName: name, Location: location})
			if err != nil {
				return err
			}
			return printJSON(out)
		})
	},
}

var devicesToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Activa o desactiva un lector",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetInt64("id")
		active, _ := cmd.Flags().GetBool("active")
		return withContainer(func(ctx context.Context, c *bootstrap.Container) error {
			out, err := c.DeviceUC.SetActive(ctx, id, active)
			if err != nil {
				return err
			}
			return printJSON(out)
		})
	},
}

// ── biometric ─────────────────────────────────────────────────────────────────

var biometricCmd = &cobra.Command{
	Use:       "biometric [enroll|block|unblock|disable|sync]",
	Short:     "Acciones manuales sobre el acceso por huella de un socio",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"enroll", "block", "unblock", "disable", "sync"},
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetInt64("user")
		name, _ := cmd.Flags().GetString("name")
		return withContainer(func(ctx context.Context, c *bootstrap.Container) error {
			if name == "" {
				user, err := c.UserUC.Load(ctx, userID)
				if err != nil {
					return err
				}
				name = user.Name
			}
			var res dto.BiometricResult
			switch args[0] {
			case "enroll":
				res = c.Coordinator.Enroll(ctx, userID, name)
			case "block":
				res = c.Coordinator.Block(ctx, userID, name)
			case "unblock":
				res = c.Coordinator.Unblock(ctx, userID, name)
			case "disable":
				res = c.Coordinator.Disable(ctx, userID, name)
			case "sync":
				res = c.Coordinator.SyncBlockStatus(ctx, userID, name)
			}
			if err := printJSON(res); err != nil {
				return err
			}
			if !res.Success {
				return fmt.Errorf("%s: %s", args[0], res.Message)
			}
			return nil
		})
	},
}

// ── sweep ─────────────────────────────────────────────────────────────────────

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Vence suscripciones y sincroniza bloqueos una vez",
	RunE: func(_ *cobra.Command, _ []string) error {
		return withContainer(func(ctx context.Context, c *bootstrap.Container) error {
			report, err := c.Sweeper.Sweep(ctx)
			if err != nil {
				return err
			}
			return printJSON(report)
		})
	},
}

// ── admin ─────────────────────────────────────────────────────────────────────

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Cuentas de administrador",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Crea un administrador",
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		name, _ := cmd.Flags().GetString("name")
		return withContainer(func(ctx context.Context, c *bootstrap.Container) error {
			out, err := c.AuthUC.CreateAdmin(ctx, dto.CreateAdminRequest{Email: email, Password: password, Name: name})
			if err != nil {
				return err
			}
			return printJSON(out)
		})
	},
}

func init() {
	devicesAddCmd.Flags().String("serial", "", "Número de serie del lector (requerido)")
	devicesAddCmd.Flags().String("name", "", "Nombre visible")
	devicesAddCmd.Flags().String("location", "", "Ubicación")
	_ = devicesAddCmd.MarkFlagRequired("serial")

	devicesToggleCmd.Flags().Int64("id", 0, "ID del lector (requerido)")
	devicesToggleCmd.Flags().Bool("active", true, "Estado deseado")
	_ = devicesToggleCmd.MarkFlagRequired("id")

	devicesCmd.AddCommand(devicesListCmd, devicesAddCmd, devicesToggleCmd)

	biometricCmd.Flags().Int64("user", 0, "ID del socio (requerido)")
	biometricCmd.Flags().String("name", "", "Nombre a enviar a los lectores (por defecto el registrado)")
	_ = biometricCmd.MarkFlagRequired("user")

	adminCreateCmd.Flags().String("email", "", "Email (requerido)")
	adminCreateCmd.Flags().String("password", "", "Contraseña, mínimo 8 caracteres (requerido)")
	adminCreateCmd.Flags().String("name", "", "Nombre (requerido)")
	_ = adminCreateCmd.MarkFlagRequired("email")
	_ = adminCreateCmd.MarkFlagRequired("password")
	_ = adminCreateCmd.MarkFlagRequired("name")

	adminCmd.AddCommand(adminCreateCmd)
}
