package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akarpovs/authgate/internal/admin"
	"github.com/akarpovs/authgate/internal/api"
	"github.com/akarpovs/authgate/internal/models"
)

func (a *App) dashboardView(ctx context.Context) (models.NavigationIntent, error) {
	profile, err := a.client.Profile(ctx)
	if err != nil {
		a.printError(err)
		if errors.Is(err, api.ErrUnauthorized) {
			if clearErr := a.sessions.Clear(ctx); clearErr != nil {
				a.log.Error(ctx, "failed to clear invalid session", "error", clearErr)
			}
		}
		return models.NavigateTo(models.RouteLogin), nil
	}

	fmt.Fprintf(a.out, "== Dashboard: %s ==\n", profile.Email)
	for {
		cmd, err := GetSimpleText(a.reader, "profile | passwd | delete | logout | admin | exit", a.out)
		if err != nil {
			return models.NavigationIntent{}, err
		}
		switch cmd {
		case "profile":
			fmt.Fprintf(a.out, "Email:    %s\n", profile.Email)
			fmt.Fprintf(a.out, "Role:     %s\n", profile.Role)
			fmt.Fprintf(a.out, "Verified: %s\n", yesNo(profile.IsVerified))
		case "passwd":
			return models.NavigateTo(models.RouteForgot), nil
		case "delete":
			done, err := a.deleteAccount(ctx, profile.Email)
			if err != nil {
				return models.NavigationIntent{}, err
			}
			if done {
				return models.NavigateTo(models.RouteLogin), nil
			}
		case "logout":
			return a.logout(ctx)
		case "admin":
			return models.NavigateTo(models.RouteAdmin), nil
		case "exit", "quit":
			return models.NavigationIntent{}, errQuit
		case "":
		default:
			fmt.Fprintf(a.out, "Unknown command: %q\n", cmd)
		}
	}
}

// deleteAccount deletes the authenticated account after confirmation and,
// on success, drops the now-dead session. It reports whether the account is
// gone.
func (a *App) deleteAccount(ctx context.Context, email string) (bool, error) {
	ok, err := GetConfirmation(a.reader, fmt.Sprintf("Permanently delete %s? This cannot be undone.", email), a.out)
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return false, nil
	}
	if err := a.client.DeleteAccount(ctx); err != nil {
		a.printError(err)
		return false, nil
	}
	if err := a.sessions.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to clear session after account deletion", "error", err)
	}
	fmt.Fprintln(a.out, "Account deleted.")
	return true, nil
}

func (a *App) logout(ctx context.Context) (models.NavigationIntent, error) {
	if err := a.sessions.Clear(ctx); err != nil {
		return models.NavigationIntent{}, err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return models.NavigateTo(models.RouteLogin), nil
}

func (a *App) adminView(ctx context.Context) (models.NavigationIntent, error) {
	fmt.Fprintln(a.out, "== Admin: users ==")
	if err := a.registry.Refresh(ctx); err != nil {
		// Stale cache, if any, stays visible.
		a.printError(err)
	}
	a.printUsers()

	for {
		cmd, err := GetSimpleText(a.reader, "list | refresh | delete <email> | dashboard | logout | exit", a.out)
		if err != nil {
			return models.NavigationIntent{}, err
		}
		fields := strings.Fields(cmd)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "list":
			a.printUsers()
		case "refresh":
			if err := a.registry.Refresh(ctx); err != nil {
				a.printError(err)
				continue
			}
			a.printUsers()
		case "delete":
			if err := a.deleteUser(ctx, fields[1:]); err != nil {
				return models.NavigationIntent{}, err
			}
		case "dashboard":
			return models.NavigateTo(models.RouteDashboard), nil
		case "logout":
			return a.logout(ctx)
		case "exit", "quit":
			return models.NavigationIntent{}, errQuit
		default:
			fmt.Fprintf(a.out, "Unknown command: %q\n", fields[0])
		}
	}
}

func (a *App) deleteUser(ctx context.Context, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		email, err = GetSimpleText(a.reader, "Email to delete", a.out)
		if err != nil {
			return err
		}
	}

	confirm := func(email string) bool {
		ok, err := GetConfirmation(a.reader, fmt.Sprintf("Delete user %s?", email), a.out)
		return err == nil && ok
	}
	if err := a.registry.Delete(ctx, email, confirm); err != nil {
		if errors.Is(err, admin.ErrNotConfirmed) {
			fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}
		a.printError(err)
		return nil
	}
	fmt.Fprintln(a.out, "User deleted.")
	a.printUsers()
	return nil
}

func (a *App) printUsers() {
	users := a.registry.Users()
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users.")
		return
	}
	fmt.Fprintf(a.out, "%-32s %-8s %s\n", "EMAIL", "ROLE", "VERIFIED")
	for _, u := range users {
		fmt.Fprintf(a.out, "%-32s %-8s %s\n", u.Email, u.Role, yesNo(u.IsVerified))
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
