// Package api holds the HTTP contract described by openapi.yaml: its models,
// the chi routes and the strict server interface the http adapter implements.
//
// This file is maintained by hand. It keeps the layout oapi-codegen v2 emits
// for oapi-codegen.yaml so the two can be diffed, but adds the shared binding
// helpers (bindPathParam, serve, run). After changing openapi.yaml, generate
// into a scratch file and port the differences:
//
//	go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen --config=oapi-codegen.yaml openapi.yaml
//
// oapi-codegen.yaml writes to /tmp/api.gen.go so this file is never overwritten.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	strictnethttp "github.com/oapi-codegen/runtime/strictmiddleware/nethttp"
)

// Defines values for AppStatus.
const (
	AppStatusFOSS AppStatus = "FOSS"
	AppStatusPROP AppStatus = "PROP"
	AppStatusUNKN AppStatus = "UNKN"
)

// Defines values for ScanStatus.
const (
	ScanStatusCompleted ScanStatus = "completed"
	ScanStatusFailed    ScanStatus = "failed"
	ScanStatusQueued    ScanStatus = "queued"
	ScanStatusRunning   ScanStatus = "running"
)

// Defines values for SovereigntyLevel.
const (
	SovereigntyLevelCAPTURED      SovereigntyLevel = "CAPTURED"
	SovereigntyLevelSOVEREIGN     SovereigntyLevel = "SOVEREIGN"
	SovereigntyLevelTRANSITIONING SovereigntyLevel = "TRANSITIONING"
)

// Defines values for SubmissionStatus.
const (
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

// Alternative defines model for Alternative.
type Alternative struct {
	Description string         `json:"description"`
	FdroidId    string         `json:"fdroid_id"`
	IconUrl     *string        `json:"icon_url,omitempty"`
	Id          string         `json:"id"`
	License     string         `json:"license"`
	Name        string         `json:"name"`
	PackageName string         `json:"package_name"`
	RepoDomain  *string        `json:"repo_domain,omitempty"`
	RepoUrl     string         `json:"repo_url"`
	TotalScore  int            `json:"total_score"`
	Votes       map[string]int `json:"votes"`
}

// AppStatus defines model for AppStatus.
type AppStatus string

// ClassifiedApp defines model for ClassifiedApp.
type ClassifiedApp struct {
	Installer         *string   `json:"installer,omitempty"`
	KnownAlternatives int       `json:"known_alternatives"`
	Label             string    `json:"label"`
	PackageName       string    `json:"package_name"`
	Status            AppStatus `json:"status"`
}

// DeviceProfile defines model for DeviceProfile.
type DeviceProfile struct {
	DeviceId   string           `json:"device_id"`
	FinishedAt *time.Time       `json:"finished_at,omitempty"`
	ScanId     string           `json:"scan_id"`
	Score      SovereigntyScore `json:"score"`
}

// Error defines model for Error.
type Error struct {
	Message string `json:"message"`
}

// Health defines model for Health.
type Health struct {
	Status *string `json:"status,omitempty"`
}

// InstallSource defines model for InstallSource.
type InstallSource struct {
	InstallingPackage *string `json:"installing_package,omitempty"`
}

// InstalledPackage defines model for InstalledPackage.
type InstalledPackage struct {
	InstallSource *InstallSource `json:"install_source,omitempty"`

	// Installer legacy installer field
	Installer          *string `json:"installer,omitempty"`
	Label              *string `json:"label,omitempty"`
	PackageName        string  `json:"package_name"`
	SigningFingerprint *string `json:"signing_fingerprint,omitempty"`
	System             *bool   `json:"system,omitempty"`
	UpdatedSystem      *bool   `json:"updated_system,omitempty"`
}

// ProposalRequest defines model for ProposalRequest.
type ProposalRequest struct {
	AlternativeId      string `json:"alternative_id"`
	ProprietaryPackage string `json:"proprietary_package"`
	UserId             string `json:"user_id"`
}

// ProposalResult defines model for ProposalResult.
type ProposalResult struct {
	Accepted bool `json:"accepted"`
}

// ScanAcceptedResponse defines model for ScanAcceptedResponse.
type ScanAcceptedResponse struct {
	ScanId string `json:"scan_id"`
}

// ScanRequest defines model for ScanRequest.
type ScanRequest struct {
	DeviceId *string           `json:"device_id,omitempty"`
	Packages []InstalledPackage `json:"packages"`
}

// ScanResponse defines model for ScanResponse.
type ScanResponse struct {
	Apps     *[]ClassifiedApp  `json:"apps,omitempty"`
	Id       string            `json:"id"`
	Progress *float32          `json:"progress,omitempty"`
	Score    *SovereigntyScore `json:"score,omitempty"`
	Status   ScanStatus        `json:"status"`
}

// ScanStatus defines model for ScanStatus.
type ScanStatus string

// SovereigntyLevel defines model for SovereigntyLevel.
type SovereigntyLevel string

// SovereigntyScore defines model for SovereigntyScore.
type SovereigntyScore struct {
	FossCount        int              `json:"foss_count"`
	Level            SovereigntyLevel `json:"level"`
	Percentage       float64          `json:"percentage"`
	ProprietaryCount int              `json:"proprietary_count"`
	TotalApps        int              `json:"total_apps"`
	UnknownCount     int              `json:"unknown_count"`
}

// Submission defines model for Submission.
type Submission struct {
	AlternativeId      string           `json:"alternative_id"`
	Id                 string           `json:"id"`
	ProprietaryPackage string           `json:"proprietary_package"`
	Status             SubmissionStatus `json:"status"`
	Timestamp          time.Time        `json:"timestamp"`
	UserId             string           `json:"user_id"`
}

// SubmissionStatus defines model for SubmissionStatus.
type SubmissionStatus string

// VoteRequest defines model for VoteRequest.
type VoteRequest struct {
	Category string `json:"category"`
	UserId   string `json:"user_id"`
}

// VoteResult defines model for VoteResult.
type VoteResult struct {
	Recorded bool `json:"recorded"`
}

// CastVoteJSONRequestBody defines body for CastVote for application/json ContentType.
type CastVoteJSONRequestBody = VoteRequest

// CreateProposalJSONRequestBody defines body for CreateProposal for application/json ContentType.
type CreateProposalJSONRequestBody = ProposalRequest

// CreateScanParams defines parameters for CreateScan.
type CreateScanParams struct {
	Wait    *bool `form:"wait,omitempty" json:"wait,omitempty"`
	Timeout *int  `form:"timeout,omitempty" json:"timeout,omitempty"`
}

// CreateScanJSONRequestBody defines body for CreateScan for application/json ContentType.
type CreateScanJSONRequestBody = ScanRequest

// ServerInterface represents all server handlers.
type ServerInterface interface {

	// (POST /alternatives/{alternativeId}/votes)
	CastVote(w http.ResponseWriter, r *http.Request, alternativeId string)

	// (GET /devices/{deviceId}/profile)
	GetDeviceProfile(w http.ResponseWriter, r *http.Request, deviceId string)

	// (GET /healthz)
	GetHealthz(w http.ResponseWriter, r *http.Request)

	// (POST /proposals)
	CreateProposal(w http.ResponseWriter, r *http.Request)

	// (POST /scans)
	CreateScan(w http.ResponseWriter, r *http.Request, params CreateScanParams)

	// (GET /scans/{id})
	GetScan(w http.ResponseWriter, r *http.Request, id string)

	// (GET /targets/{packageName}/alternatives)
	ListAlternatives(w http.ResponseWriter, r *http.Request, packageName string)

	// (GET /users/{userId}/proposals)
	ListUserProposals(w http.ResponseWriter, r *http.Request, userId string)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

type MiddlewareFunc func(http.Handler) http.Handler

// bindPathParam binds a required simple-style path parameter.
func bindPathParam(r *http.Request, name string, dest *string) error {
	return runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
}

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, h http.HandlerFunc) {
	handler := http.Handler(h)
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

// CastVote operation middleware
func (siw *ServerInterfaceWrapper) CastVote(w http.ResponseWriter, r *http.Request) {
	var err error

	// ------------- Path parameter "alternativeId" -------------
	var alternativeId string

	err = bindPathParam(r, "alternativeId", &alternativeId)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "alternativeId", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.CastVote(w, r, alternativeId)
	})
}

// GetDeviceProfile operation middleware
func (siw *ServerInterfaceWrapper) GetDeviceProfile(w http.ResponseWriter, r *http.Request) {
	var err error

	// ------------- Path parameter "deviceId" -------------
	var deviceId string

	err = bindPathParam(r, "deviceId", &deviceId)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "deviceId", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetDeviceProfile(w, r, deviceId)
	})
}

// GetHealthz operation middleware
func (siw *ServerInterfaceWrapper) GetHealthz(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetHealthz(w, r)
	})
}

// CreateProposal operation middleware
func (siw *ServerInterfaceWrapper) CreateProposal(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.CreateProposal(w, r)
	})
}

// CreateScan operation middleware
func (siw *ServerInterfaceWrapper) CreateScan(w http.ResponseWriter, r *http.Request) {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params CreateScanParams

	// ------------- Optional query parameter "wait" -------------

	err = runtime.BindQueryParameter("form", true, false, "wait", r.URL.Query(), &params.Wait)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "wait", Err: err})
		return
	}

	// ------------- Optional query parameter "timeout" -------------

	err = runtime.BindQueryParameter("form", true, false, "timeout", r.URL.Query(), &params.Timeout)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "timeout", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.CreateScan(w, r, params)
	})
}

// GetScan operation middleware
func (siw *ServerInterfaceWrapper) GetScan(w http.ResponseWriter, r *http.Request) {
	var err error

	// ------------- Path parameter "id" -------------
	var id string

	err = bindPathParam(r, "id", &id)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetScan(w, r, id)
	})
}

// ListAlternatives operation middleware
func (siw *ServerInterfaceWrapper) ListAlternatives(w http.ResponseWriter, r *http.Request) {
	var err error

	// ------------- Path parameter "packageName" -------------
	var packageName string

	err = bindPathParam(r, "packageName", &packageName)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "packageName", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListAlternatives(w, r, packageName)
	})
}

// ListUserProposals operation middleware
func (siw *ServerInterfaceWrapper) ListUserProposals(w http.ResponseWriter, r *http.Request) {
	var err error

	// ------------- Path parameter "userId" -------------
	var userId string

	err = bindPathParam(r, "userId", &userId)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "userId", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListUserProposals(w, r, userId)
	})
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// Handler creates http.Handler with routing matching OpenAPI spec.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerFromMux creates http.Handler with routing matching OpenAPI spec based on the provided mux.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{
		BaseRouter: r,
	})
}

// HandlerWithOptions creates http.Handler with additional options
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/alternatives/{alternativeId}/votes", wrapper.CastVote)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/devices/{deviceId}/profile", wrapper.GetDeviceProfile)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/healthz", wrapper.GetHealthz)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/proposals", wrapper.CreateProposal)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/scans", wrapper.CreateScan)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/scans/{id}", wrapper.GetScan)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/targets/{packageName}/alternatives", wrapper.ListAlternatives)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/users/{userId}/proposals", wrapper.ListUserProposals)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

type CastVoteRequestObject struct {
	AlternativeId string `json:"alternativeId"`
	Body          *CastVoteJSONRequestBody
}

type CastVoteResponseObject interface {
	VisitCastVoteResponse(w http.ResponseWriter) error
}

type CastVote200JSONResponse VoteResult

func (response CastVote200JSONResponse) VisitCastVoteResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type CastVote429JSONResponse Error

func (response CastVote429JSONResponse) VisitCastVoteResponse(w http.ResponseWriter) error {
	return writeJSON(w, 429, response)
}

type CastVote502JSONResponse VoteResult

func (response CastVote502JSONResponse) VisitCastVoteResponse(w http.ResponseWriter) error {
	return writeJSON(w, 502, response)
}

type GetDeviceProfileRequestObject struct {
	DeviceId string `json:"deviceId"`
}

type GetDeviceProfileResponseObject interface {
	VisitGetDeviceProfileResponse(w http.ResponseWriter) error
}

type GetDeviceProfile200JSONResponse DeviceProfile

func (response GetDeviceProfile200JSONResponse) VisitGetDeviceProfileResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type GetDeviceProfile404Response struct {
}

func (response GetDeviceProfile404Response) VisitGetDeviceProfileResponse(w http.ResponseWriter) error {
	w.WriteHeader(404)
	return nil
}

type GetHealthzRequestObject struct {
}

type GetHealthzResponseObject interface {
	VisitGetHealthzResponse(w http.ResponseWriter) error
}

type GetHealthz200JSONResponse Health

func (response GetHealthz200JSONResponse) VisitGetHealthzResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type CreateProposalRequestObject struct {
	Body *CreateProposalJSONRequestBody
}

type CreateProposalResponseObject interface {
	VisitCreateProposalResponse(w http.ResponseWriter) error
}

type CreateProposal201JSONResponse ProposalResult

func (response CreateProposal201JSONResponse) VisitCreateProposalResponse(w http.ResponseWriter) error {
	return writeJSON(w, 201, response)
}

type CreateProposal502JSONResponse ProposalResult

func (response CreateProposal502JSONResponse) VisitCreateProposalResponse(w http.ResponseWriter) error {
	return writeJSON(w, 502, response)
}

type CreateScanRequestObject struct {
	Params CreateScanParams
	Body   *CreateScanJSONRequestBody
}

type CreateScanResponseObject interface {
	VisitCreateScanResponse(w http.ResponseWriter) error
}

type CreateScan200JSONResponse ScanResponse

func (response CreateScan200JSONResponse) VisitCreateScanResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type CreateScan202JSONResponse ScanAcceptedResponse

func (response CreateScan202JSONResponse) VisitCreateScanResponse(w http.ResponseWriter) error {
	return writeJSON(w, 202, response)
}

type CreateScan400JSONResponse Error

func (response CreateScan400JSONResponse) VisitCreateScanResponse(w http.ResponseWriter) error {
	return writeJSON(w, 400, response)
}

type GetScanRequestObject struct {
	Id string `json:"id"`
}

type GetScanResponseObject interface {
	VisitGetScanResponse(w http.ResponseWriter) error
}

type GetScan200JSONResponse ScanResponse

func (response GetScan200JSONResponse) VisitGetScanResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type GetScan404Response struct {
}

func (response GetScan404Response) VisitGetScanResponse(w http.ResponseWriter) error {
	w.WriteHeader(404)
	return nil
}

type ListAlternativesRequestObject struct {
	PackageName string `json:"packageName"`
}

type ListAlternativesResponseObject interface {
	VisitListAlternativesResponse(w http.ResponseWriter) error
}

type ListAlternatives200JSONResponse []Alternative

func (response ListAlternatives200JSONResponse) VisitListAlternativesResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type ListUserProposalsRequestObject struct {
	UserId string `json:"userId"`
}

type ListUserProposalsResponseObject interface {
	VisitListUserProposalsResponse(w http.ResponseWriter) error
}

type ListUserProposals200JSONResponse []Submission

func (response ListUserProposals200JSONResponse) VisitListUserProposalsResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

// StrictServerInterface represents all server handlers.
type StrictServerInterface interface {

	// (POST /alternatives/{alternativeId}/votes)
	CastVote(ctx context.Context, request CastVoteRequestObject) (CastVoteResponseObject, error)

	// (GET /devices/{deviceId}/profile)
	GetDeviceProfile(ctx context.Context, request GetDeviceProfileRequestObject) (GetDeviceProfileResponseObject, error)

	// (GET /healthz)
	GetHealthz(ctx context.Context, request GetHealthzRequestObject) (GetHealthzResponseObject, error)

	// (POST /proposals)
	CreateProposal(ctx context.Context, request CreateProposalRequestObject) (CreateProposalResponseObject, error)

	// (POST /scans)
	CreateScan(ctx context.Context, request CreateScanRequestObject) (CreateScanResponseObject, error)

	// (GET /scans/{id})
	GetScan(ctx context.Context, request GetScanRequestObject) (GetScanResponseObject, error)

	// (GET /targets/{packageName}/alternatives)
	ListAlternatives(ctx context.Context, request ListAlternativesRequestObject) (ListAlternativesResponseObject, error)

	// (GET /users/{userId}/proposals)
	ListUserProposals(ctx context.Context, request ListUserProposalsRequestObject) (ListUserProposalsResponseObject, error)
}

type StrictHandlerFunc = strictnethttp.StrictHTTPHandlerFunc
type StrictMiddlewareFunc = strictnethttp.StrictHTTPMiddlewareFunc

type StrictHTTPServerOptions struct {
	RequestErrorHandlerFunc  func(w http.ResponseWriter, r *http.Request, err error)
	ResponseErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func NewStrictHandler(ssi StrictServerInterface, middlewares []StrictMiddlewareFunc) ServerInterface {
	return &strictHandler{ssi: ssi, middlewares: middlewares, options: StrictHTTPServerOptions{
		RequestErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		},
		ResponseErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		},
	}}
}

func NewStrictHandlerWithOptions(ssi StrictServerInterface, middlewares []StrictMiddlewareFunc, options StrictHTTPServerOptions) ServerInterface {
	return &strictHandler{ssi: ssi, middlewares: middlewares, options: options}
}

type strictHandler struct {
	ssi         StrictServerInterface
	middlewares []StrictMiddlewareFunc
	options     StrictHTTPServerOptions
}

// run applies the strict middlewares around handler and writes its response.
func (sh *strictHandler) run(w http.ResponseWriter, r *http.Request, operationID string, request interface{}, handler StrictHandlerFunc, visit func(response interface{}) (bool, error)) {
	for _, middleware := range sh.middlewares {
		handler = middleware(handler, operationID)
	}

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if ok, err := visit(response); ok {
		if err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}

// CastVote operation middleware
func (sh *strictHandler) CastVote(w http.ResponseWriter, r *http.Request, alternativeId string) {
	var request CastVoteRequestObject

	request.AlternativeId = alternativeId

	var body CastVoteJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sh.options.RequestErrorHandlerFunc(w, r, fmt.Errorf("can't decode JSON body: %w", err))
		return
	}
	request.Body = &body

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.CastVote(ctx, request.(CastVoteRequestObject))
	}
	sh.run(w, r, "CastVote", request, handler, func(response interface{}) (bool, error) {
		if validResponse, ok := response.(CastVoteResponseObject); ok {
			return true, validResponse.VisitCastVoteResponse(w)
		}
		return false, nil
	})
}

// GetDeviceProfile operation middleware
func (sh *strictHandler) GetDeviceProfile(w http.ResponseWriter, r *http.Request, deviceId string) {
	var request GetDeviceProfileRequestObject

	request.DeviceId = deviceId

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.GetDeviceProfile(ctx, request.(GetDeviceProfileRequestObject))
	}
	sh.run(w, r, "GetDeviceProfile", request, handler, func(response interface{}) (bool, error) {
		if validResponse, ok := response.(GetDeviceProfileResponseObject); ok {
			return true, validResponse.VisitGetDeviceProfileResponse(w)
		}
		return false, nil
	})
}

// GetHealthz operation middleware
func (sh *strictHandler) GetHealthz(w http.ResponseWriter, r *http.Request) {
	var request GetHealthzRequestObject

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.GetHealthz(ctx, request.(GetHealthzRequestObject))
	}
	sh.run(w, r, "GetHealthz", request, handler, func(response interface{}) (bool, error) {
		if validResponse, ok := response.(GetHealthzResponseObject); ok {
			return true, validResponse.VisitGetHealthzResponse(w)
		}
		return false, nil
	})
}

// CreateProposal operation middleware
func (sh *strictHandler) CreateProposal(w http.ResponseWriter, r *http.Request) {
	var request CreateProposalRequestObject

	var body CreateProposalJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sh.options.RequestErrorHandlerFunc(w, r, fmt.Errorf("can't decode JSON body: %w", err))
		return
	}
	request.Body = &body

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.CreateProposal(ctx, request.(CreateProposalRequestObject))
	}
	sh.run(w, r, "CreateProposal", request, handler, func(response interface{}) (bool, error) {
		if validResponse, ok := response.(CreateProposalResponseObject); ok {
			return true, validResponse.VisitCreateProposalResponse(w)
		}
		return false, nil
	})
}

// CreateScan operation middleware
func (sh *strictHandler) CreateScan(w http.ResponseWriter, r *http.Request, params CreateScanParams) {
	var request CreateScanRequestObject

	request.Params = params

	var body CreateScanJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sh.options.RequestErrorHandlerFunc(w, r, fmt.Errorf("can't decode JSON body: %w", err))
		return
	}
	request.Body = &body

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.CreateScan(ctx, request.(CreateScanRequestObject))
	}
	sh.run(w, r, "CreateScan", request, handler, func(response interface{}) (bool, error) {
		if validResponse, ok := response.(CreateScanResponseObject); ok {
			return true, validResponse.VisitCreateScanResponse(w)
		}
		return false, nil
	})
}

// GetScan operation middleware
func (sh *strictHandler) GetScan(w http.ResponseWriter, r *http.Request, id string) {
	var request GetScanRequestObject

	request.Id = id

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.GetScan(ctx, request.(GetScanRequestObject))
	}
	sh.run(w, r, "GetScan", request, handler, func(response interface{}) (bool, error) {
		if validResponse, ok := response.(GetScanResponseObject); ok {
			return true, validResponse.VisitGetScanResponse(w)
		}
		return false, nil
	})
}

// ListAlternatives operation middleware
func (sh *strictHandler) ListAlternatives(w http.ResponseWriter, r *http.Request, packageName string) {
	var request ListAlternativesRequestObject

	request.PackageName = packageName

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.ListAlternatives(ctx, request.(ListAlternativesRequestObject))
	}
	sh.run(w, r, "ListAlternatives", request, handler, func(response interface{}) (bool, error) {
		if validResponse, ok := response.(ListAlternativesResponseObject); ok {
			return true, validResponse.VisitListAlternativesResponse(w)
		}
		return false, nil
	})
}

// ListUserProposals operation middleware
func (sh *strictHandler) ListUserProposals(w http.ResponseWriter, r *http.Request, userId string) {
	var request ListUserProposalsRequestObject

	request.UserId = userId

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.ListUserProposals(ctx, request.(ListUserProposalsRequestObject))
	}
	sh.run(w, r, "ListUserProposals", request, handler, func(response interface{}) (bool, error) {
		if validResponse, ok := response.(ListUserProposalsResponseObject); ok {
			return true, validResponse.VisitListUserProposalsResponse(w)
		}
		return false, nil
	})
}
