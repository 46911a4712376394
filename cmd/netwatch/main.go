// netwatch is a diagnostic CLI that mounts the peer-networking view
// against a live backend and prints what the portal would render:
// directory size, connection set, recommendations and live unread counts.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	campuslink "github.com/campuslink/campuslink-go"
	"github.com/campuslink/campuslink-go/identity"
)

var (
	serviceURL string
	token      string
	debug      bool
	watch      bool
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "netwatch",
		Short: "Inspect the CampusLink networking view for the current user",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				_ = os.Setenv("CAMPUSLINK_DEBUG", "true")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().StringVar(&serviceURL, "service-url", "http://localhost:5000", "backend base URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("CAMPUSLINK_TOKEN"), "session token (defaults to CAMPUSLINK_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging and HTTP dumps")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "stay attached and log unread changes until interrupted")
	return rootCmd
}

func run(ctx context.Context) error {
	c, err := campuslink.New(serviceURL, token, campuslink.WithLogger(log.Logger))
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	who, err := identity.FromToken(token)
	if err != nil {
		return err
	}
	view, err := c.Network(who)
	if err != nil {
		return err
	}
	defer view.Close()

	mountCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	view.Mount(mountCtx)
	view.Wait()

	users, errMsg := view.Users()
	if errMsg != "" {
		log.Warn().Str("message", errMsg).Msg("directory unavailable")
	}
	log.Info().
		Int("directory", len(users)).
		Int("connections", len(view.Connections())).
		Int("incoming_requests", len(view.Incoming())).
		Msg("networking view mounted")

	p := view.Recommendations()
	for _, u := range p.Recommended {
		log.Info().Str("uid", u.ID).Str("name", u.FirstName).Str("college", u.College).Msg("recommended")
	}
	log.Info().Int("recommended", len(p.Recommended)).Int("remaining", len(p.Remaining)).Msg("recommendation partition")

	if !watch {
		return nil
	}

	ch, err := c.DialRealtime(ctx, who)
	if err != nil {
		return err
	}
	if err := view.AttachRealtime(ctx, ch); err != nil {
		ch.Release()
		return err
	}
	ch.Release() // the view holds its own reference now

	log.Info().Int("badge", view.Badge()).Msg("attached; watching unread counts (ctrl-c to stop)")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	last := view.Badge()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sigCh:
			return nil
		case <-ticker.C:
			if b := view.Badge(); b != last {
				last = b
				log.Info().Int("badge", b).Interface("unread", view.Unread()).Msg("unread changed")
			}
		}
	}
}
