package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cuemby/chainsaw/pkg/chainsaw"
	"github.com/cuemby/chainsaw/pkg/httpapi"
	"github.com/cuemby/chainsaw/pkg/log"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chainsaw HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		addr, _ := cmd.Flags().GetString("addr")
		port, _ := cmd.Flags().GetInt("port")

		db, err := chainsaw.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		srv := httpapi.New(db)
		listenAddr := fmt.Sprintf("%s:%d", addr, port)

		errCh := make(chan error, 1)
		go func() {
			log.Logger.Info().Str("addr", listenAddr).Str("path", path).Msg("chainsawd listening")
			if err := srv.ListenAndServe(listenAddr); err != nil {
				errCh <- err
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		select {
		case <-sigCh:
			log.Logger.Info().Msg("shutting down")
		case err := <-errCh:
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringP("path", "P", "./chainsaw-data", "Database directory")
	serveCmd.Flags().StringP("addr", "a", "127.0.0.1", "Bind address")
	serveCmd.Flags().IntP("port", "p", 42069, "Bind port")
}
