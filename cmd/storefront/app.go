package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/infpro/storefront-api/checkout"
	"github.com/infpro/storefront-api/client"
	"github.com/infpro/storefront-api/session"
	"github.com/spf13/cobra"
)

// app is the state shared by every command.
type app struct {
	apiURL    string
	statePath string
	redisAddr string
	profile   string

	// storage, when set before Execute, is used instead of the flags.
	storage session.Storage
	// checkoutOpts are appended to the processor options.
	checkoutOpts []checkout.Option

	out  io.Writer
	sess *session.Session
	api  *client.Client
	done func() error
}

func defaultStatePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "storefront", "session.json")
	}
	return ".storefront-session.json"
}

// open loads the session and builds the API client. It runs before every
// command.
func (a *app) open(cmd *cobra.Command) error {
	ctx := cmd.Context()
	a.out = cmd.OutOrStdout()

	if a.storage == nil {
		st, closeFn, err := a.dialStorage(ctx)
		if err != nil {
			return err
		}
		a.storage, a.done = st, closeFn
	}

	sess, err := session.Load(ctx, a.storage)
	if err != nil {
		return err
	}
	a.sess = sess

	var opts []client.Option
	if sess.Token != "" {
		opts = append(opts, client.WithToken(sess.Token))
	}
	a.api = client.New(a.apiURL, opts...)
	return nil
}

func (a *app) dialStorage(ctx context.Context) (session.Storage, func() error, error) {
	if a.redisAddr != "" {
		rs, err := session.DialRedis(ctx, a.redisAddr, a.redisNamespace())
		if err != nil {
			return nil, nil, err
		}
		return rs, rs.Close, nil
	}

	if err := os.MkdirAll(filepath.Dir(a.statePath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create state dir: %w", err)
	}
	return session.NewFileStorage(a.statePath), nil, nil
}

// redisNamespace keeps each profile's cart, theme and token apart on a
// shared Redis.
func (a *app) redisNamespace() string {
	profile := a.profile
	if profile == "" {
		profile = "default"
	}
	return "session:" + profile
}

func (a *app) close() error {
	if a.done == nil {
		return nil
	}
	return a.done()
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
