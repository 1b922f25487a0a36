// File: internal/guard/guard_test.go
package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"salehunt_backend/internal/authstate"
	"salehunt_backend/internal/shared"
)

func snapLoading() authstate.Snapshot {
	return authstate.Snapshot{Status: authstate.StatusLoading}
}

func snapAnonymous() authstate.Snapshot {
	return authstate.Snapshot{Status: authstate.StatusUnauthenticated}
}

func snapSignedIn(step int, completed, recovery bool) authstate.Snapshot {
	return authstate.Snapshot{
		Status: authstate.StatusAuthenticated,
		Identity: &shared.Identity{FirebaseUID: "fb-uid"},
		Profile: &shared.Profile{
			FirebaseUID:         "fb-uid",
			OnboardingStep:      step,
			OnboardingCompleted: completed,
		},
		PasswordRecovery: recovery,
	}
}

func TestGuardDecisions(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		snap     authstate.Snapshot
		want     DecisionKind
		redirect string
	}{
		{
			name: "loading session renders placeholder, never redirects",
			path: "/", snap: snapLoading(), want: Pending,
		},
		{
			name: "anonymous visitor on protected page goes to login",
			path: "/", snap: snapAnonymous(), want: Redirect, redirect: PathLogin,
		},
		{
			name: "anonymous visitor on login page renders",
			path: "/login", snap: snapAnonymous(), want: Render,
		},
		{
			name: "signed-in finished user on login page goes home",
			path: "/login", snap: snapSignedIn(8, true, false), want: Redirect, redirect: PathRoot,
		},
		{
			name: "signed-in unfinished user on login page goes to wizard",
			path: "/cadastro", snap: snapSignedIn(3, false, false), want: Redirect, redirect: PathOnboarding,
		},
		{
			name: "unfinished user on dashboard goes to wizard",
			path: "/propostas", snap: snapSignedIn(5, false, false), want: Redirect, redirect: PathOnboarding,
		},
		{
			name: "finished user on dashboard renders",
			path: "/", snap: snapSignedIn(8, true, false), want: Render,
		},
		{
			name: "step eight counts as complete even without the flag",
			path: "/", snap: snapSignedIn(8, false, false), want: Render,
		},
		{
			name: "finished user visiting the wizard goes home",
			path: "/onboarding", snap: snapSignedIn(8, true, false), want: Redirect, redirect: PathRoot,
		},
		{
			name: "unfinished user on the wizard renders",
			path: "/onboarding", snap: snapSignedIn(4, false, false), want: Render,
		},
		{
			name: "anonymous visitor on the wizard goes to login",
			path: "/onboarding", snap: snapAnonymous(), want: Redirect, redirect: PathLogin,
		},
		{
			name: "recovery overrides the dashboard",
			path: "/", snap: snapSignedIn(8, true, true), want: Redirect, redirect: PathNewPassword,
		},
		{
			name: "recovery overrides the wizard too",
			path: "/onboarding", snap: snapSignedIn(3, false, true), want: Redirect, redirect: PathNewPassword,
		},
		{
			name: "recovery user may render the new password form",
			path: "/nova-senha", snap: snapSignedIn(8, true, true), want: Render,
		},
		{
			name: "anonymous visitor on the new password form goes to login",
			path: "/nova-senha", snap: snapAnonymous(), want: Redirect, redirect: PathLogin,
		},
		{
			name: "public email verification page renders for anyone",
			path: "/verificar-email", snap: snapAnonymous(), want: Render,
		},
		{
			name: "oauth callback renders while signed out",
			path: "/auth/callback", snap: snapAnonymous(), want: Render,
		},
		{
			name: "unknown path falls back to the protected policy",
			path: "/rota-nova", snap: snapAnonymous(), want: Redirect, redirect: PathLogin,
		},
		{
			name: "profile still in flight renders the placeholder, not the wizard",
			path: "/",
			snap: authstate.Snapshot{
				Status:   authstate.StatusAuthenticated,
				Identity: &shared.Identity{FirebaseUID: "fb-uid"},
			},
			want: Pending,
		},
		{
			name: "profile still in flight on the login page waits too",
			path: "/login",
			snap: authstate.Snapshot{
				Status:   authstate.StatusAuthenticated,
				Identity: &shared.Identity{FirebaseUID: "fb-uid"},
			},
			want: Pending,
		},
		{
			name: "profile still in flight on the wizard waits too",
			path: "/onboarding",
			snap: authstate.Snapshot{
				Status:   authstate.StatusAuthenticated,
				Identity: &shared.Identity{FirebaseUID: "fb-uid"},
			},
			want: Pending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(PolicyFor(tt.path), tt.snap)
			assert.Equal(t, tt.want, got.Kind)
			if tt.want == Redirect {
				assert.Equal(t, tt.redirect, got.RedirectTo)
			}
		})
	}
}

func TestRecoveryDoesNotTrapAnonymousUsers(t *testing.T) {
	// The recovery override only applies to authenticated sessions.
	snap := authstate.Snapshot{Status: authstate.StatusUnauthenticated, PasswordRecovery: true}
	got := Evaluate(PolicyFor("/login"), snap)
	assert.Equal(t, Render, got.Kind)
}
