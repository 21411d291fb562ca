package service

import (
	"github.com/deppfellow/go-registration/internal/lib/job"
	"github.com/deppfellow/go-registration/internal/repository"
	"github.com/deppfellow/go-registration/internal/server"
)

type Services struct {
	Registration *RegistrationService
	Job          *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var jobs TaskEnqueuer
	if s.Job != nil {
		jobs = s.Job.Client
	}

	return &Services{
		Registration: NewRegistrationService(repos.Users, jobs, s.Config.Registration, s.Logger),
		Job:          s.Job,
	}, nil
}
