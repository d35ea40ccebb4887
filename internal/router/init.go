package router

import (
	userapp "accountsvc/internal/application"
	"accountsvc/internal/container"
	pginfra "accountsvc/internal/infrastructure/postgres"
	handlers "accountsvc/internal/interface/http"
	"accountsvc/internal/router/modules"
	"accountsvc/pkg/helpers"
)

func buildUserModule() *modules.UserModule {
	cfg := container.GetConfig()
	repo := pginfra.NewUserRepository(container.GetPGPool())

	// Avoid handing the service a typed-nil publisher when RabbitMQ is down.
	var pub userapp.Publisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	service := userapp.NewUserService(repo, helpers.UUIDCodeGenerator{}, pub, container.GetLogger())
	service.ES = container.GetES()
	service.ESUsersIndex = cfg.ESUsersIndex
	service.CompanyName = cfg.CompanyName
	service.VerifyEmailURL = cfg.VerifyEmailURL
	service.MailEnabled = cfg.MailSendEnabled

	handler := handlers.NewUserHandler(service, container.GetLogger(), cfg.VerifyRedirectURL)
	return modules.NewUserModule(handler)
}

func buildPostModule() *modules.PostModule {
	pool := container.GetPGPool()
	service := userapp.NewPostService(
		pginfra.NewPostRepository(pool),
		pginfra.NewUserRepository(pool),
		container.GetLogger(),
	)
	handler := handlers.NewPostHandler(service, container.GetLogger())
	return modules.NewPostModule(handler)
}

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	r.Add(buildUserModule())
	r.Add(buildPostModule())
}
