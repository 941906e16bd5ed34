package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playgeo/globetrotter/internal/globetrotter"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Globetrotter API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the Globetrotter geography quiz.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/v1/destination/random
	getRandom, _ := r.NewOperationContext(http.MethodGet, "/api/v1/destination/random")
	getRandom.SetSummary("Random question")
	getRandom.SetDescription("Returns a random destination's id with 1-2 of its clues.")
	getRandom.AddRespStructure(globetrotter.Question{}, openapi.WithHTTPStatus(http.StatusOK))
	getRandom.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getRandom)

	// GET /api/v1/destination/options/{id}
	getOptions, _ := r.NewOperationContext(http.MethodGet, "/api/v1/destination/options/{id}")
	getOptions.SetSummary("Multiple-choice options")
	getOptions.SetDescription("Returns a shuffled option set for the destination: the correct answer plus distractors.")
	getOptions.AddRespStructure([]globetrotter.Option{}, openapi.WithHTTPStatus(http.StatusOK))
	getOptions.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	getOptions.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getOptions)

	// POST /api/v1/destination/verify
	postVerify, _ := r.NewOperationContext(http.MethodPost, "/api/v1/destination/verify")
	postVerify.SetSummary("Verify answer")
	postVerify.SetDescription("Checks the submitted answer and returns feedback plus the true answer.")
	postVerify.AddReqStructure(VerifyRequest{})
	postVerify.AddRespStructure(globetrotter.VerificationResult{}, openapi.WithHTTPStatus(http.StatusOK))
	postVerify.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postVerify.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postVerify)

	// GET /api/v1/destination/all
	getAll, _ := r.NewOperationContext(http.MethodGet, "/api/v1/destination/all")
	getAll.SetSummary("Full catalog")
	getAll.SetDescription("Returns every destination with clues and feedback pools. Requires admin_session cookie.")
	getAll.AddRespStructure([]DestinationDetail{}, openapi.WithHTTPStatus(http.StatusOK))
	getAll.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getAll)

	// POST /api/v1/user
	postUser, _ := r.NewOperationContext(http.MethodPost, "/api/v1/user")
	postUser.SetSummary("Register user")
	postUser.SetDescription("Creates a user keyed by username.")
	postUser.AddReqStructure(CreateUserRequest{})
	postUser.AddRespStructure(globetrotter.User{}, openapi.WithHTTPStatus(http.StatusCreated))
	postUser.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postUser.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postUser)

	// GET /api/v1/user/{username}
	getUser, _ := r.NewOperationContext(http.MethodGet, "/api/v1/user/{username}")
	getUser.SetSummary("Get user")
	getUser.SetDescription("Returns the user's profile and running score.")
	getUser.AddRespStructure(globetrotter.User{}, openapi.WithHTTPStatus(http.StatusOK))
	getUser.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getUser)

	// PUT /api/v1/user/{username}/score
	putScore, _ := r.NewOperationContext(http.MethodPut, "/api/v1/user/{username}/score")
	putScore.SetSummary("Update score")
	putScore.SetDescription("Increments the user's correct or incorrect counter.")
	putScore.AddReqStructure(UpdateScoreRequest{})
	putScore.AddRespStructure(globetrotter.User{}, openapi.WithHTTPStatus(http.StatusOK))
	putScore.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(putScore)

	// GET /api/v1/user/leaderboard
	getBoard, _ := r.NewOperationContext(http.MethodGet, "/api/v1/user/leaderboard")
	getBoard.SetSummary("Leaderboard")
	getBoard.SetDescription("Returns the top users by correct answers.")
	getBoard.AddRespStructure([]globetrotter.User{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getBoard)

	// GET /api/v1/user/{username}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/v1/user/{username}/events")
	getEvents.SetSummary("SSE score stream")
	getEvents.SetDescription("Server-Sent Events stream of score changes for the user.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	getEvents.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getEvents)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticates an admin and sets the admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears the admin session.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Current admin")
	getMe.SetDescription("Returns the authenticated admin. Requires admin_session cookie.")
	getMe.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
