// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"salehunt_backend/internal/announcement"
	"salehunt_backend/internal/app"
	"salehunt_backend/internal/auth"
	"salehunt_backend/internal/authstate"
	"salehunt_backend/internal/client"
	"salehunt_backend/internal/config"
	"salehunt_backend/internal/dashboard"
	"salehunt_backend/internal/firebase"
	"salehunt_backend/internal/filestorage"
	"salehunt_backend/internal/guard"
	"salehunt_backend/internal/jobs"
	"salehunt_backend/internal/negotiation"
	"salehunt_backend/internal/onboarding"
	"salehunt_backend/internal/platform/database"
	"salehunt_backend/internal/platform/logger"
	"salehunt_backend/internal/profile"
	"salehunt_backend/internal/proposal"
	"salehunt_backend/internal/session"
	"salehunt_backend/internal/shared"
	"salehunt_backend/internal/tag"
	"salehunt_backend/internal/workspace"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform layer
		logger.New,
		database.NewGORM,
		provideCleanup,
		firebase.NewFirebaseService,
		wire.Bind(new(shared.TokenVerifier), new(*firebase.FirebaseService)),
		wire.Bind(new(auth.ProviderClient), new(*firebase.FirebaseService)),
		filestorage.NewFileStorageService,
		provideSearchIndex,

		// Session layer
		session.NewEventBus,
		session.NewRedisClient,
		session.NewStore,
		provideRevocationService,

		// Profile / workspace
		profile.NewGORMRepository,
		profile.NewService,
		wire.Bind(new(shared.ProfileService), new(*profile.ServiceImplementation)),
		wire.Bind(new(onboarding.ProfileStore), new(*profile.ServiceImplementation)),
		profile.NewHandler,
		workspace.NewGORMRepository,
		workspace.NewService,
		wire.Bind(new(authstate.WorkspaceLister), new(*workspace.Service)),
		wire.Bind(new(onboarding.WorkspaceStore), new(*workspace.Service)),
		wire.Bind(new(tag.WorkspaceResolver), new(*workspace.Service)),
		wire.Bind(new(client.WorkspaceResolver), new(*workspace.Service)),
		wire.Bind(new(proposal.WorkspaceResolver), new(*workspace.Service)),
		wire.Bind(new(negotiation.WorkspaceResolver), new(*workspace.Service)),
		wire.Bind(new(dashboard.WorkspaceResolver), new(*workspace.Service)),
		workspace.NewHandler,

		// Auth state and guards
		authstate.NewRegistry,
		guard.NewHandler,

		// Auth surface
		auth.NewService,
		auth.NewOAuthService,
		auth.NewHandler,

		// Onboarding
		onboarding.NewWizard,
		onboarding.NewDispatcher,
		onboarding.NewHandler,

		// Records
		tag.NewGORMRepository,
		tag.NewService,
		tag.NewHandler,
		client.NewGORMRepository,
		wire.Bind(new(proposal.ClientFinder), new(client.Repository)),
		wire.Bind(new(dashboard.ClientCounter), new(client.Repository)),
		client.NewService,
		client.NewHandler,
		proposal.NewGORMRepository,
		wire.Bind(new(proposal.TagFinder), new(tag.Repository)),
		wire.Bind(new(negotiation.ProposalFinder), new(proposal.Repository)),
		wire.Bind(new(dashboard.ProposalAggregator), new(proposal.Repository)),
		proposal.NewService,
		proposal.NewHandler,
		negotiation.NewGORMRepository,
		wire.Bind(new(dashboard.NegotiationAggregator), new(negotiation.Repository)),
		negotiation.NewService,
		negotiation.NewHandler,
		dashboard.NewService,
		dashboard.NewHandler,
		announcement.NewGORMRepository,
		announcement.NewService,
		announcement.NewHandler,

		// Jobs and server
		jobs.NewProposalReindexJob,
		app.NewServer,
	)
	return nil, nil, nil
}
