// File: internal/guard/guard.go
package guard

import (
	"salehunt_backend/internal/authstate"
)

// Well-known frontend paths the evaluator redirects to.
const (
	PathRoot        = "/"
	PathLogin       = "/login"
	PathOnboarding  = "/onboarding"
	PathNewPassword = "/nova-senha"
)

// Policy describes what a route requires from the session. One evaluator
// covers every route; routes differ only in their policy values.
type Policy struct {
	// RequireAuth redirects signed-out visitors to the login page.
	RequireAuth bool
	// GuestOnly redirects signed-in users away, e.g. from the login page.
	GuestOnly bool
	// RequireOnboardingComplete gates on wizard completion when non-nil:
	// true sends unfinished users to the wizard, false sends finished
	// users out of it.
	RequireOnboardingComplete *bool
	// AllowDuringRecovery exempts the route from the password recovery
	// override. Only the new password flow sets it.
	AllowDuringRecovery bool
}

// DecisionKind is the outcome category of a guard evaluation.
type DecisionKind int

const (
	// Render lets the route render.
	Render DecisionKind = iota
	// Redirect sends the visitor to Decision.RedirectTo.
	Redirect
	// Pending means auth resolution has not finished; the caller shows a
	// placeholder and never redirects, so an in-flight session cannot be
	// bounced to login by accident.
	Pending
)

// Decision is the result of evaluating a policy against a session snapshot.
type Decision struct {
	Kind       DecisionKind
	RedirectTo string
}

func render() Decision                 { return Decision{Kind: Render} }
func redirect(path string) Decision    { return Decision{Kind: Redirect, RedirectTo: path} }
func pending() Decision                { return Decision{Kind: Pending} }

// Evaluate applies the policy to a snapshot of the session's auth state.
// Precedence: pending resolution, then missing auth, then the recovery
// override, then onboarding gates.
func Evaluate(p Policy, snap authstate.Snapshot) Decision {
	if snap.Status == authstate.StatusLoading {
		return pending()
	}

	authenticated := snap.Status == authstate.StatusAuthenticated

	if p.RequireAuth && !authenticated {
		return redirect(PathLogin)
	}

	if authenticated && snap.PasswordRecovery && !p.AllowDuringRecovery {
		// The user arrived through a recovery link. Until they set a new
		// password, every other route funnels them back to the form.
		return redirect(PathNewPassword)
	}

	if p.GuestOnly && authenticated {
		if snap.Profile == nil {
			return pending()
		}
		if !snap.Profile.OnboardingComplete() {
			return redirect(PathOnboarding)
		}
		return redirect(PathRoot)
	}

	if p.RequireOnboardingComplete != nil && authenticated {
		// Completion is unknowable until the profile fetch lands. Right
		// after sign-in the snapshot carries an identity but no profile
		// yet; keeping the placeholder up avoids a flash redirect to the
		// wizard for users who already finished it.
		if snap.Profile == nil {
			return pending()
		}
		complete := snap.Profile.OnboardingComplete()
		if *p.RequireOnboardingComplete && !complete {
			return redirect(PathOnboarding)
		}
		if !*p.RequireOnboardingComplete && complete {
			return redirect(PathRoot)
		}
	}

	return render()
}
