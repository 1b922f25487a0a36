// File: internal/guard/routes.go
package guard

// boolPtr is a convenience for the route table below.
func boolPtr(b bool) *bool { return &b }

// RouteTable maps frontend paths to their guard policies. The frontend asks
// the decision endpoint before rendering a page; unknown paths default to
// the protected policy.
var RouteTable = map[string]Policy{
	// Guest-only auth pages.
	"/login":           {GuestOnly: true},
	"/cadastro":        {GuestOnly: true},
	"/recuperar-senha": {GuestOnly: true},

	// Pages reachable regardless of auth state. Email confirmation links
	// and the OAuth callback land here before a session exists.
	"/definir-senha":    {},
	"/verificar-email":  {},
	"/email-verificado": {},
	"/senha-alterada":   {},
	"/auth/callback":    {},

	// The new password form is the one authenticated page allowed while
	// the recovery flag is set.
	"/nova-senha": {RequireAuth: true, AllowDuringRecovery: true},

	// The wizard requires auth and kicks finished users back out.
	"/onboarding":      {RequireAuth: true, RequireOnboardingComplete: boolPtr(false)},
	"/workspace/criar": {RequireAuth: true, RequireOnboardingComplete: boolPtr(false)},

	// Dashboard pages.
	"/":            {RequireAuth: true, RequireOnboardingComplete: boolPtr(true)},
	"/clientes":    {RequireAuth: true, RequireOnboardingComplete: boolPtr(true)},
	"/propostas":   {RequireAuth: true, RequireOnboardingComplete: boolPtr(true)},
	"/negociacoes": {RequireAuth: true, RequireOnboardingComplete: boolPtr(true)},
	"/novidades":   {RequireAuth: true, RequireOnboardingComplete: boolPtr(true)},
	"/perfil":      {RequireAuth: true, RequireOnboardingComplete: boolPtr(true)},
	"/marca":       {RequireAuth: true, RequireOnboardingComplete: boolPtr(true)},
}

// PolicyFor returns the policy for a path. Paths not in the table get the
// full protected policy so a new page can never ship unguarded.
func PolicyFor(path string) Policy {
	if p, ok := RouteTable[path]; ok {
		return p
	}
	return Policy{RequireAuth: true, RequireOnboardingComplete: boolPtr(true)}
}
