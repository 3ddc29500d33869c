package movies

import (
	"net/http"

	apperrors "github.com/lepinkainen/cinerelay/internal/errors"
)

// Endpoint names an orchestrator operation in the policy table.
type Endpoint string

const (
	EndpointPopularNow    Endpoint = "popular_now"
	EndpointPopularMovies Endpoint = "popular_movies"
	EndpointPopularSeries Endpoint = "popular_series"
	EndpointComingSoon    Endpoint = "coming_soon"
	EndpointSearchText    Endpoint = "search_text"
	EndpointSearchGenre   Endpoint = "search_genre"
	EndpointDetails       Endpoint = "details"
	EndpointWatch         Endpoint = "watch"
)

// Outcome is how an upstream failure is reported to the client.
type Outcome int

const (
	// OutcomeFail propagates the error (502 at the HTTP boundary).
	OutcomeFail Outcome = iota
	// OutcomeSoftEmpty answers 200 with empty results and a detail string.
	OutcomeSoftEmpty
	// OutcomeNotFound answers 404.
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSoftEmpty:
		return "soft-empty"
	case OutcomeNotFound:
		return "not-found"
	default:
		return "fail"
	}
}

var softOnUnauthorized = map[int]Outcome{
	http.StatusUnauthorized: OutcomeSoftEmpty,
}

var notFoundOnMissing = map[int]Outcome{
	http.StatusNotFound: OutcomeNotFound,
}

// policies maps upstream HTTP status codes to outcomes per endpoint. Statuses
// not listed, and transport failures, are OutcomeFail.
var policies = map[Endpoint]map[int]Outcome{
	EndpointPopularNow:    softOnUnauthorized,
	EndpointPopularMovies: softOnUnauthorized,
	EndpointPopularSeries: softOnUnauthorized,
	EndpointComingSoon:    softOnUnauthorized,
	EndpointSearchText:    softOnUnauthorized,
	EndpointSearchGenre:   softOnUnauthorized,
	EndpointDetails:       notFoundOnMissing,
	EndpointWatch:         notFoundOnMissing,
}

// Resolve returns the outcome for err raised while serving endpoint.
// A missing credential is always soft.
func Resolve(endpoint Endpoint, err error) Outcome {
	if err == nil {
		return OutcomeFail
	}
	if apperrors.IsCredentialMissing(err) {
		return OutcomeSoftEmpty
	}
	status := apperrors.UpstreamStatus(err)
	if status == 0 {
		return OutcomeFail
	}
	if outcome, ok := policies[endpoint][status]; ok {
		return outcome
	}
	return OutcomeFail
}
