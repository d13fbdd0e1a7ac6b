package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flexfitapp/flexfit/internal/tui"
	"github.com/flexfitapp/flexfit/internal/ux"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage your FlexFit account and session",
	Long: `Manage your FlexFit account and session.

Subcommands:
  login            Sign in with email and password
  signup           Register a new account
  verify           Confirm the one-time code emailed after signup
  forgot-password  Request a password reset code
  set-password     Complete a password reset
  logout           Discard the local session
  status           Show who is signed in

Examples:
  flexfit auth login --email you@example.com
  flexfit auth signup
  flexfit auth verify --code 123456
  flexfit auth status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to FlexFit",
	Long: `Sign in to FlexFit with your email and password.

Credentials can be passed as flags; anything missing is collected
interactively. On success the session is stored encrypted under the FlexFit
home directory.

Examples:
  flexfit auth login
  flexfit auth login --email you@example.com --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" || password == "" {
			creds, err := tui.LoginForm()
			if err != nil {
				return err
			}
			email, password = creds.Email, creds.Password
		}

		s, err := env.client.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}

		fmt.Println(ux.Success(fmt.Sprintf("Signed in as %s (%s)", s.DisplayName(), s.Role), env.noColor))
		if !s.Onboarded {
			fmt.Println(ux.Notice("Run 'flexfit dashboard' to finish setting up your profile.", env.noColor))
		}
		return nil
	},
}

var authSignupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register a new FlexFit account",
	Long: `Register a new FlexFit account.

After registering, the platform emails a one-time code; confirm it with
'flexfit auth verify' and then sign in.

Examples:
  flexfit auth signup`,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := tui.SignupForm()
		if err != nil {
			return err
		}

		if err := env.client.Signup(cmd.Context(), params); err != nil {
			return err
		}

		fmt.Println(ux.Success("Account created.", env.noColor))
		fmt.Println(ux.Notice("Check your email for a verification code, then run 'flexfit auth verify'.", env.noColor))
		return nil
	},
}

var authVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Confirm the emailed verification code",
	Long: `Confirm the one-time code emailed after signup.

The email defaults to the most recent signup on this machine.

Examples:
  flexfit auth verify
  flexfit auth verify --email you@example.com --code 123456`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		code, _ := cmd.Flags().GetString("code")

		if email == "" {
			if pending, err := env.store.LoadPendingSignup(); err == nil {
				email = pending
			}
		}

		if email == "" || code == "" {
			var err error
			email, code, err = tui.OTPForm(email)
			if err != nil {
				return err
			}
		}

		if err := env.client.VerifyOTP(cmd.Context(), email, code); err != nil {
			return err
		}

		fmt.Println(ux.Success("Account verified. Run 'flexfit auth login' to sign in.", env.noColor))
		return nil
	},
}

var authForgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password reset code",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			var err error
			email, err = tui.ResetRequestForm()
			if err != nil {
				return err
			}
		}

		if err := env.client.RequestPasswordReset(cmd.Context(), email); err != nil {
			return err
		}

		fmt.Println(ux.Success("Reset code sent. Run 'flexfit auth set-password' once it arrives.", env.noColor))
		return nil
	},
}

var authSetPasswordCmd = &cobra.Command{
	Use:   "set-password",
	Short: "Complete a password reset with the emailed code",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")

		email, code, password, err := tui.SetPasswordForm(email)
		if err != nil {
			return err
		}

		if err := env.client.SetPassword(cmd.Context(), email, code, password); err != nil {
			return err
		}

		fmt.Println(ux.Success("Password updated. Run 'flexfit auth login' to sign in.", env.noColor))
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the local session",
	Long: `Discard the local session.

Logout is local: the stored session is removed from this machine and no
request is sent to the platform.

Examples:
  flexfit auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := env.store.Load()
		if err != nil {
			return err
		}
		if s == nil {
			fmt.Println("Not signed in.")
			return nil
		}

		if err := env.client.Logout(); err != nil {
			return err
		}

		fmt.Println(ux.Success(fmt.Sprintf("Signed out %s.", s.Email), env.noColor))
		return nil
	},
}

// authStatus is the machine-readable shape of 'auth status'.
type authStatus struct {
	SignedIn  bool   `json:"signed_in" yaml:"signed_in"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Role      string `json:"role,omitempty" yaml:"role,omitempty"`
	Onboarded bool   `json:"onboarded,omitempty" yaml:"onboarded,omitempty"`
	API       string `json:"api" yaml:"api"`
}

// String renders the status for the text formatter.
func (a authStatus) String() string {
	if !a.SignedIn {
		return fmt.Sprintf("Not signed in (API: %s)", a.API)
	}
	onboarded := "yes"
	if !a.Onboarded {
		onboarded = "no"
	}
	return fmt.Sprintf("Signed in as %s <%s>\nRole: %s\nOnboarded: %s\nAPI: %s",
		a.Name, a.Email, a.Role, onboarded, a.API)
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show who is signed in",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := env.store.Load()
		if err != nil {
			return err
		}

		status := authStatus{API: env.cfg.APIBaseURL}
		if s != nil {
			status.SignedIn = true
			status.Email = s.Email
			status.Name = s.DisplayName()
			status.Role = string(s.Role)
			status.Onboarded = s.Onboarded
		}

		f, err := env.formatter()
		if err != nil {
			return err
		}
		return f.Format(status)
	},
}

func init() {
	authLoginCmd.Flags().String("email", "", "account email")
	authLoginCmd.Flags().String("password", "", "account password")
	authVerifyCmd.Flags().String("email", "", "account email (defaults to the pending signup)")
	authVerifyCmd.Flags().String("code", "", "verification code from the email")
	authForgotPasswordCmd.Flags().String("email", "", "account email")
	authSetPasswordCmd.Flags().String("email", "", "account email")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authSignupCmd)
	authCmd.AddCommand(authVerifyCmd)
	authCmd.AddCommand(authForgotPasswordCmd)
	authCmd.AddCommand(authSetPasswordCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
