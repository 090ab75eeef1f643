package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/json-mapper/internal/server"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the mapping review server",
	Long: `Loads the mapping document and serves the edit, add, resolve, save, undo
and output generation endpoints over HTTP. Every change is written to the
audit trail in data_dir.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}

		store, err := loadStore(cfg.MappingFile)
		if err != nil {
			return err
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		srv := server.New(server.Config{
			Port:         cfg.Server.Port,
			AllowAll:     cfg.Server.AllowAllOrigins,
			SavePath:     cfg.RevisedMappingFile,
			InputPath:    cfg.InputFile,
			OutputPath:   cfg.OutputFile,
			ContainerKey: cfg.ContainerKey,
		}, database, store)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		st := store.Document().Stats()
		fmt.Fprintf(os.Stderr, "jsonmapper server %s starting on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Mapping:  %s (%d mappings, %d mismatches)\n", cfg.MappingFile, st.Mappings, st.Mismatches)
		fmt.Fprintf(os.Stderr, "  Saves to: %s\n", cfg.RevisedMappingFile)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serverCmd)
}
