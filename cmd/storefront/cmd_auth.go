package main

import (
	"errors"
	"fmt"

	"metromobiles/internal/pkg/errs"
	"metromobiles/internal/storefront/session"

	"github.com/spf13/cobra"
)

var (
	authEmail    string
	authPassword string
	authName     string
	authIDToken  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE:  runRegister,
}

var googleCmd = &cobra.Command{
	Use:   "google",
	Short: "Sign in with a Google ID token",
	Long: `Sign in with the ID token obtained from Google's sign-in flow. The
token payload supplies the identity; the backend issues our own session.`,
	RunE: runGoogle,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&authEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVar(&authName, "name", "", "display name")
	registerCmd.Flags().StringVar(&authEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&authPassword, "password", "", "account password")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")

	googleCmd.Flags().StringVar(&authIDToken, "token", "", "Google ID token")
	_ = googleCmd.MarkFlagRequired("token")

	rootCmd.AddCommand(loginCmd, registerCmd, googleCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	sess, err := a.session.Login(ctx, authEmail, authPassword)
	if err != nil {
		return loginError(err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>.\n", sess.Identity.Name, sess.Identity.Email)
	reportResumedCheckout(cmd, a)
	return nil
}

func runRegister(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	sess, err := a.session.Register(ctx, authName, authEmail, authPassword)
	if err != nil {
		if errors.Is(err, errs.ErrEmailTaken) {
			return fmt.Errorf("an account with %s already exists", authEmail)
		}
		return loginError(err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s. You are logged in.\n", sess.Identity.Name)
	reportResumedCheckout(cmd, a)
	return nil
}

func runGoogle(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	sess, err := a.session.GoogleSignIn(ctx, authIDToken)
	if err != nil {
		if errors.Is(err, errs.ErrIdentityDecode) {
			return errors.New("could not read the Google ID token")
		}
		return loginError(err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>.\n", sess.Identity.Name, sess.Identity.Email)
	reportResumedCheckout(cmd, a)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	a.session.Logout(cmd.Context())
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if !a.session.Valid(cmd.Context()) {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
		return nil
	}
	sess := a.session.Current()
	fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", sess.Identity.Name, sess.Identity.Email)
	return nil
}

func loginError(err error) error {
	switch {
	case errors.Is(err, session.ErrInvalidCredentials):
		return errors.New("invalid email or password")
	case errors.Is(err, session.ErrRemoteRejected):
		return err
	}
	return err
}

// reportResumedCheckout tells the shopper an interrupted checkout can resume.
func reportResumedCheckout(cmd *cobra.Command, a *app) {
	if a.session.TakeCheckoutRedirect(cmd.Context()) {
		fmt.Fprintln(cmd.OutOrStdout(), "You were heading to checkout. Run 'storefront checkout' to finish your order.")
	}
}
