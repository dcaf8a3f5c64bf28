package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/walterschell/chessboard/chessboard"
)

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func rootCommand() *cobra.Command {
	cfg := defaultConfig()
	var orientation, logLevel string

	cmd := &cobra.Command{
		Use:   "chessboard",
		Short: "Serve an interactive chessboard over websockets",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`chessboard serves a single board session to any number of
			browser clients. Moves, promotions and highlights sent by one
			client are validated by the rules engine and broadcast to all.

			In strict mode illegal moves and positions are rejected. In
			permissive mode they are logged and the board is updated
			anyway, so the board may drift from the engine's position.`),

		SilenceUsage: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLogLevel(logLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			log = slog.Default().With("package", "main")

			if cfg.Port == 0 || cfg.Port > 65535 {
				return fmt.Errorf("invalid port %d", cfg.Port)
			}
			if cfg.Orientation, err = chessboard.ParseColor(orientation); err != nil {
				return err
			}
			if cfg.Size <= 0 {
				return fmt.Errorf("invalid board size %v", cfg.Size)
			}

			app, err := NewApplication(cfg)
			if err != nil {
				return err
			}
			addr := fmt.Sprintf(":%d", cfg.Port)
			log.Info("Listening", "addr", addr, "mode", cfg.Mode)
			return http.ListenAndServe(addr, app)
		},
	}

	flags := cmd.Flags()
	flags.UintVarP(&cfg.Port, "port", "p", DefaultPort, "Port to listen on")
	flags.VarP(&cfg.Mode, "mode", "m", "Validation mode (strict or permissive)")
	flags.StringVar(&cfg.FEN, "fen", chessboard.StartFEN, "Starting position")
	flags.StringVar(&orientation, "orientation", string(chessboard.White), "Side drawn at the bottom of the board")
	flags.Float64Var(&cfg.Size, "size", chessboard.DefaultBoardSize, "Board side length in pixels")
	flags.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	return cmd
}
