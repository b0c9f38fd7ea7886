package release

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/sprint-install/internal/logging"
)

// ResolutionError is returned when no strategy could determine a version.
type ResolutionError struct {
	Repo  string
	Tried []string
}

func (e *ResolutionError) Error() string {
	msg := "could not determine the latest sprint release"
	if e.Repo != "" {
		msg += " of " + e.Repo
	}
	if len(e.Tried) > 0 {
		msg += " (tried " + strings.Join(e.Tried, ", ") + ")"
	}
	return msg + "; pass --version <tag> or publish a release"
}

// Resolver turns a requested version into a concrete one.
type Resolver struct {
	repo       string
	strategies []Strategy
	logger     logging.Logger
}

// NewResolver creates a resolver that consults strategies in order.
func NewResolver(repo string, logger logging.Logger, strategies ...Strategy) *Resolver {
	return &Resolver{
		repo:       repo,
		strategies: strategies,
		logger:     logging.OrNop(logger),
	}
}

// Resolve returns the version to install, without a leading "v".
func (r *Resolver) Resolve(ctx context.Context, version string, dryRun bool) (string, error) {
	if v := Normalize(version); v != "" {
		return v, nil
	}
	if dryRun {
		return Latest, nil
	}

	tried := make([]string, 0, len(r.strategies))
	for _, s := range r.strategies {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("resolve version: %w", err)
		}
		tried = append(tried, s.Name())

		v, err := s.Latest(ctx)
		if err != nil {
			r.logger.Debug("version strategy failed", "strategy", s.Name(), "error", err)
			continue
		}
		if v = Normalize(v); v != "" {
			r.logger.Debug("resolved version", "strategy", s.Name(), "version", v)
			return v, nil
		}
		r.logger.Debug("version strategy found nothing", "strategy", s.Name())
	}

	return "", &ResolutionError{Repo: r.repo, Tried: tried}
}
