package cli

import (
	"context"
	"fmt"

	"github.com/akarpovs/authgate/internal/flows"
	"github.com/akarpovs/authgate/internal/models"
	"github.com/akarpovs/authgate/internal/passwordx"
)

func (a *App) loginView(ctx context.Context) (models.NavigationIntent, error) {
	fmt.Fprintln(a.out, "== Sign in ==")
	flow := flows.NewLoginFlow(a.client, a.sessions, a.log)

	for {
		cmd, err := GetSimpleText(a.reader, "login | register | forgot | exit", a.out)
		if err != nil {
			return models.NavigationIntent{}, err
		}
		switch cmd {
		case "login":
			email, err := GetSimpleText(a.reader, "Email", a.out)
			if err != nil {
				return models.NavigationIntent{}, err
			}
			password, err := GetPassword("Password", a.out)
			if err != nil {
				return models.NavigationIntent{}, err
			}
			intent, err := flow.Submit(ctx, email, password)
			if err != nil {
				a.printError(err)
				continue
			}
			return intent, nil
		case "register":
			return models.NavigateTo(models.RouteRegister), nil
		case "forgot":
			return models.NavigateTo(models.RouteForgot), nil
		case "exit", "quit":
			return models.NavigationIntent{}, errQuit
		case "":
		default:
			fmt.Fprintf(a.out, "Unknown command: %q\n", cmd)
		}
	}
}

func (a *App) registerView(ctx context.Context) (models.NavigationIntent, error) {
	fmt.Fprintln(a.out, "== Create account ==")
	flow := flows.NewRegisterFlow(a.client, flows.NewVerificationTokenExtractor(), a.log)

	for {
		cmd, err := GetSimpleText(a.reader, "register | back | exit", a.out)
		if err != nil {
			return models.NavigationIntent{}, err
		}
		switch cmd {
		case "register":
			creds, err := a.readCredentials()
			if err != nil {
				return models.NavigationIntent{}, err
			}
			if err := flow.Submit(ctx, creds); err != nil {
				a.printError(err)
				continue
			}
			if err := a.showChallenge("verification", flow.Token()); err != nil {
				return models.NavigationIntent{}, err
			}
			return flow.Acknowledge()
		case "back":
			return models.NavigateTo(models.RouteLogin), nil
		case "exit", "quit":
			return models.NavigationIntent{}, errQuit
		case "":
		default:
			fmt.Fprintf(a.out, "Unknown command: %q\n", cmd)
		}
	}
}

// readCredentials collects the registration form, showing the strength meter
// right after the password is typed, as the frontend does while typing.
func (a *App) readCredentials() (models.Credentials, error) {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return models.Credentials{}, err
	}
	password, err := GetPassword("Password", a.out)
	if err != nil {
		return models.Credentials{}, err
	}
	fmt.Fprintln(a.out, renderStrengthMeter(passwordx.Evaluate(password)))
	confirm, err := GetPassword("Confirm password", a.out)
	if err != nil {
		return models.Credentials{}, err
	}
	role, err := GetSimpleText(a.reader, "Role (user/admin, empty for user)", a.out)
	if err != nil {
		return models.Credentials{}, err
	}
	return models.Credentials{Email: email, Password: password, ConfirmPassword: confirm, Role: role}, nil
}

// showChallenge displays a token the user must carry into the next view and
// waits for an explicit acknowledgment.
func (a *App) showChallenge(kind, token string) error {
	fmt.Fprintf(a.out, "One more step! Copy the %s token below, you will need it next:\n", kind)
	fmt.Fprintf(a.out, "    %s\n", token)
	_, err := GetSimpleText(a.reader, "Press Enter once you have copied it", a.out)
	return err
}

func (a *App) verifyView(ctx context.Context, prefill string) (models.NavigationIntent, error) {
	fmt.Fprintln(a.out, "== Verify email ==")
	flow := flows.NewVerifyFlow(a.client, a.config.RedirectDelay, a.log)

	for {
		cmd, err := GetSimpleText(a.reader, "verify | back | exit", a.out)
		if err != nil {
			return models.NavigationIntent{}, err
		}
		switch cmd {
		case "verify":
			email, err := a.promptEmail(prefill)
			if err != nil {
				return models.NavigationIntent{}, err
			}
			token, err := GetSimpleText(a.reader, "Verification token", a.out)
			if err != nil {
				return models.NavigationIntent{}, err
			}
			msg, intent, err := flow.Submit(ctx, email, token)
			if err != nil {
				a.printError(err)
				continue
			}
			fmt.Fprintln(a.out, msg)
			return intent, nil
		case "back":
			return models.NavigateTo(models.RouteLogin), nil
		case "exit", "quit":
			return models.NavigationIntent{}, errQuit
		case "":
		default:
			fmt.Fprintf(a.out, "Unknown command: %q\n", cmd)
		}
	}
}

func (a *App) forgotView(ctx context.Context) (models.NavigationIntent, error) {
	fmt.Fprintln(a.out, "== Forgot password ==")
	flow := flows.NewForgotFlow(a.client, flows.NewResetTokenExtractor(), a.log)

	for {
		cmd, err := GetSimpleText(a.reader, "send | back | exit", a.out)
		if err != nil {
			return models.NavigationIntent{}, err
		}
		switch cmd {
		case "send":
			email, err := GetSimpleText(a.reader, "Email", a.out)
			if err != nil {
				return models.NavigationIntent{}, err
			}
			if err := flow.Submit(ctx, email); err != nil {
				a.printError(err)
				continue
			}
			if err := a.showChallenge("reset", flow.Token()); err != nil {
				return models.NavigationIntent{}, err
			}
			return flow.Acknowledge()
		case "back":
			return models.NavigateTo(models.RouteLogin), nil
		case "exit", "quit":
			return models.NavigationIntent{}, errQuit
		case "":
		default:
			fmt.Fprintf(a.out, "Unknown command: %q\n", cmd)
		}
	}
}

func (a *App) resetView(ctx context.Context, prefill string) (models.NavigationIntent, error) {
	fmt.Fprintln(a.out, "== Reset password ==")
	flow := flows.NewResetFlow(a.client, a.config.RedirectDelay, a.log)

	for {
		cmd, err := GetSimpleText(a.reader, "reset | back | exit", a.out)
		if err != nil {
			return models.NavigationIntent{}, err
		}
		switch cmd {
		case "reset":
			email, err := a.promptEmail(prefill)
			if err != nil {
				return models.NavigationIntent{}, err
			}
			token, err := GetSimpleText(a.reader, "Reset token", a.out)
			if err != nil {
				return models.NavigationIntent{}, err
			}
			password, err := GetPassword("New password", a.out)
			if err != nil {
				return models.NavigationIntent{}, err
			}
			fmt.Fprintln(a.out, renderStrengthMeter(passwordx.Evaluate(password)))
			intent, err := flow.Submit(ctx, email, token, password)
			if err != nil {
				a.printError(err)
				continue
			}
			fmt.Fprintln(a.out, "Password reset successful! Redirecting to login...")
			return intent, nil
		case "back":
			return models.NavigateTo(models.RouteLogin), nil
		case "exit", "quit":
			return models.NavigationIntent{}, errQuit
		case "":
		default:
			fmt.Fprintf(a.out, "Unknown command: %q\n", cmd)
		}
	}
}

// promptEmail asks for an email, offering prefill (carried over from the
// previous flow) as the default.
func (a *App) promptEmail(prefill string) (string, error) {
	if prefill == "" {
		return GetSimpleText(a.reader, "Email", a.out)
	}
	v, err := GetSimpleText(a.reader, fmt.Sprintf("Email [%s]", prefill), a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return prefill, nil
	}
	return v, nil
}
