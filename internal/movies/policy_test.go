package movies

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/lepinkainen/cinerelay/internal/errors"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		endpoint Endpoint
		err      error
		want     Outcome
	}{
		{"list 401", EndpointPopularNow, apperrors.NewUpstreamStatusError(401, "/"), OutcomeSoftEmpty},
		{"genre 401", EndpointSearchGenre, apperrors.NewUpstreamStatusError(401, "/"), OutcomeSoftEmpty},
		{"list 404", EndpointPopularMovies, apperrors.NewUpstreamStatusError(404, "/"), OutcomeFail},
		{"list 500", EndpointComingSoon, apperrors.NewUpstreamStatusError(500, "/"), OutcomeFail},
		{"details 404", EndpointDetails, apperrors.NewUpstreamStatusError(404, "/"), OutcomeNotFound},
		{"watch 404", EndpointWatch, apperrors.NewUpstreamStatusError(404, "/"), OutcomeNotFound},
		{"details 401", EndpointDetails, apperrors.NewUpstreamStatusError(401, "/"), OutcomeFail},
		{"transport", EndpointPopularNow, apperrors.NewUpstreamTransportError("/", errors.New("timeout")), OutcomeFail},
		{"credential", EndpointDetails, apperrors.NewCredentialMissingError("tmdb"), OutcomeSoftEmpty},
		{"plain", EndpointPopularNow, errors.New("boom"), OutcomeFail},
		{"nil", EndpointPopularNow, nil, OutcomeFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.endpoint, tt.err))
		})
	}
}

func TestPolicyTableCoversEveryEndpoint(t *testing.T) {
	for _, endpoint := range []Endpoint{
		EndpointPopularNow, EndpointPopularMovies, EndpointPopularSeries, EndpointComingSoon,
		EndpointSearchText, EndpointSearchGenre, EndpointDetails, EndpointWatch,
	} {
		assert.Contains(t, policies, endpoint)
	}
}
