package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// AuthLogin authenticates with the catalog API and saves the session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")

	r.logger.Info("logging in", "email", email)

	sess, err := r.session.Login(ctx, email, cmd.String("password"))
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	r.logger.Info("session saved", "email", sess.Email)
	return r.writePlain("✓ Logged in as %s <%s>\n", sess.Name, sess.Email)
}

// AuthJoin registers a new account and saves the resulting session.
func (r *Runner) AuthJoin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")

	r.logger.Info("creating account", "email", email)

	sess, err := r.session.Register(ctx, cmd.String("name"), email, cmd.String("password"))
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	r.logger.Info("session saved", "email", sess.Email)
	return r.writePlain("✓ Welcome, %s! You are now logged in.\n", sess.Name)
}

// AuthLogout clears the session in memory and on disk.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if !r.session.IsAuthenticated() {
		return r.writePlain("Not logged in.\n")
	}

	r.session.Logout()
	return r.writePlain("✓ Logged out\n")
}

// AuthStatus shows the current session.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	sess := r.session.Current()

	if cmd.Bool("json") {
		return r.writeJSON(sess, true)
	}

	if !sess.Authenticated() {
		return r.writePlain("Not logged in. Run 'artanova auth login' to authenticate.\n")
	}

	r.writePlainHeader("Session")
	r.writePlain("Name:  %s\n", sess.Name)
	r.writePlain("Email: %s\n", sess.Email)
	return nil
}
