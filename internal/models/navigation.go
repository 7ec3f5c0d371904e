package models

import "time"

// Route names a view of the client. The set mirrors the screens of the
// identity service frontend: the credential flows plus the two dashboards.
type Route string

const (
	RouteLogin     Route = "login"
	RouteRegister  Route = "register"
	RouteVerify    Route = "verify-email"
	RouteForgot    Route = "forgot-password"
	RouteReset     Route = "reset-password"
	RouteDashboard Route = "dashboard"
	RouteAdmin     Route = "admin"
)

// ParamEmail is the navigation parameter carrying an email between flows
// (register → verify, forgot → reset).
const ParamEmail = "email"

// NavigationIntent describes "go to view Route with Params" as a value.
// Flow controllers and the route guard emit intents; only the view layer
// executes them. After, when non-zero, asks the view layer to keep the
// current content (e.g. a success message) visible for that long before
// navigating.
type NavigationIntent struct {
	Route  Route
	Params map[string]string
	After  time.Duration
}

// NavigateTo builds an intent without parameters.
func NavigateTo(route Route) NavigationIntent {
	return NavigationIntent{Route: route}
}

// NavigateWithEmail builds an intent carrying an email parameter.
func NavigateWithEmail(route Route, email string) NavigationIntent {
	return NavigationIntent{Route: route, Params: map[string]string{ParamEmail: email}}
}

// Email returns the email parameter, or "" if the intent carries none.
func (n NavigationIntent) Email() string {
	return n.Params[ParamEmail]
}
