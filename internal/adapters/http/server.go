package httpadapter

import (
    "context"
    "errors"
    "sync"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "github.com/prometheus/client_golang/prometheus/promhttp"
    "go.uber.org/zap"
    "golang.org/x/time/rate"

    "librefind/internal/adapters/inventory"
    api "librefind/internal/api"
    "librefind/internal/domain"
    "librefind/internal/ports"
    scansvc "librefind/internal/services/scanner"
    scanrunner "librefind/internal/workers/scanrunner"
)

// DefaultWaitTimeout bounds a blocking scan request without an explicit timeout.
const DefaultWaitTimeout = 30 * time.Second

// VoteLimit is the per-user token bucket applied to votes.
type VoteLimit struct {
    Rate  rate.Limit
    Burst int
}

// Server implements api.StrictServerInterface.
type Server struct {
    scanner   ports.Scanner
    profiles  ports.Profiles
    knowledge ports.Knowledge
    jobs      ports.JobRepository
    processor scanrunner.ScanProcessor
    log       *zap.Logger

    voteLimit VoteLimit
    mu        sync.Mutex
    voters    map[string]*voter
    swept     time.Time
    now       func() time.Time

    inline sync.WaitGroup
}

// voterIdleTTL is how long an unused vote limiter is kept. It must exceed
// Burst/Rate so an evicted limiter would have been full anyway.
const voterIdleTTL = 10 * time.Minute

type voter struct {
    lim  *rate.Limiter
    seen time.Time
}

func New(scanner ports.Scanner, profiles ports.Profiles, knowledge ports.Knowledge, jobs ports.JobRepository, processor scanrunner.ScanProcessor, voteLimit VoteLimit, log *zap.Logger) *Server {
    return &Server{
        scanner:   scanner,
        profiles:  profiles,
        knowledge: knowledge,
        jobs:      jobs,
        processor: processor,
        log:       log.Named("http"),
        voteLimit: voteLimit,
        voters:    make(map[string]*voter),
        now:       time.Now,
    }
}

// Routes returns a chi.Router mounting the api handlers and /metrics.
func (s *Server) Routes() chi.Router {
    r := chi.NewRouter()
    r.Use(middleware.Recoverer)
    r.Handle("/metrics", promhttp.Handler())
    handler := api.NewStrictHandler(s, nil)
    api.HandlerFromMux(handler, r)
    return r
}

// Wait blocks until inline scans that outlived their request have finished.
func (s *Server) Wait() {
    s.inline.Wait()
}

func (s *Server) GetHealthz(ctx context.Context, _ api.GetHealthzRequestObject) (api.GetHealthzResponseObject, error) {
    ok := "ok"
    return api.GetHealthz200JSONResponse{Status: &ok}, nil
}

func (s *Server) CreateScan(ctx context.Context, req api.CreateScanRequestObject) (api.CreateScanResponseObject, error) {
    if req.Body == nil {
        return api.CreateScan400JSONResponse{Message: "missing body"}, nil
    }
    pkgs := make([]domain.InstalledPackage, 0, len(req.Body.Packages))
    for _, p := range req.Body.Packages {
        pkgs = append(pkgs, toEntry(p).Package())
    }
    id, err := s.scanner.Enqueue(ctx, req.Body.DeviceId, pkgs)
    if errors.Is(err, scansvc.ErrInvalidInventory) {
        return api.CreateScan400JSONResponse{Message: err.Error()}, nil
    }
    if err != nil {
        return nil, err
    }

    if req.Params.Wait == nil || !*req.Params.Wait {
        return api.CreateScan202JSONResponse{ScanId: id}, nil
    }
    timeout := DefaultWaitTimeout
    if req.Params.Timeout != nil && *req.Params.Timeout > 0 {
        timeout = time.Duration(*req.Params.Timeout) * time.Second
    }
    wctx, cancel := context.WithTimeout(ctx, timeout)
    defer cancel()

    // processing is detached from the request; a timeout only ends the wait
    done := make(chan error, 1)
    s.inline.Add(1)
    go func() {
        defer s.inline.Done()
        done <- scanrunner.ProcessInline(context.WithoutCancel(ctx), s.jobs, s.processor, id)
    }()
    select {
    case err := <-done:
        if err != nil {
            s.log.Warn("inline scan failed", zap.String("scan", id), zap.Error(err))
        }
    case <-wctx.Done():
        s.log.Info("inline scan still running, answering with scan id",
            zap.String("scan", id), zap.Duration("timeout", timeout))
        return api.CreateScan202JSONResponse{ScanId: id}, nil
    }
    scan, err := s.scanner.Result(ctx, id)
    if err != nil {
        return nil, err
    }
    return api.CreateScan200JSONResponse(toScanResponse(scan)), nil
}

func (s *Server) GetScan(ctx context.Context, req api.GetScanRequestObject) (api.GetScanResponseObject, error) {
    scan, err := s.scanner.Result(ctx, req.Id)
    if errors.Is(err, domain.ErrNotFound) {
        return api.GetScan404Response{}, nil
    }
    if err != nil {
        return nil, err
    }
    return api.GetScan200JSONResponse(toScanResponse(scan)), nil
}

func (s *Server) GetDeviceProfile(ctx context.Context, req api.GetDeviceProfileRequestObject) (api.GetDeviceProfileResponseObject, error) {
    scan, err := s.profiles.GetLatest(ctx, req.DeviceId)
    if errors.Is(err, domain.ErrNotFound) {
        return api.GetDeviceProfile404Response{}, nil
    }
    if err != nil {
        return nil, err
    }
    return api.GetDeviceProfile200JSONResponse{
        DeviceId:   req.DeviceId,
        ScanId:     scan.ID,
        FinishedAt: scan.FinishedAt,
        Score:      toScore(*scan.Score),
    }, nil
}

func (s *Server) ListAlternatives(ctx context.Context, req api.ListAlternativesRequestObject) (api.ListAlternativesResponseObject, error) {
    alts := s.knowledge.AlternativesFor(ctx, req.PackageName)
    out := make(api.ListAlternatives200JSONResponse, 0, len(alts))
    for _, a := range alts {
        out = append(out, toAlternative(a))
    }
    return out, nil
}

func (s *Server) CreateProposal(ctx context.Context, req api.CreateProposalRequestObject) (api.CreateProposalResponseObject, error) {
    if req.Body == nil || !s.knowledge.SubmitProposal(ctx, req.Body.ProprietaryPackage, req.Body.AlternativeId, req.Body.UserId) {
        return api.CreateProposal502JSONResponse{Accepted: false}, nil
    }
    return api.CreateProposal201JSONResponse{Accepted: true}, nil
}

func (s *Server) ListUserProposals(ctx context.Context, req api.ListUserProposalsRequestObject) (api.ListUserProposalsResponseObject, error) {
    subs := s.knowledge.ListSubmissions(ctx, req.UserId)
    out := make(api.ListUserProposals200JSONResponse, 0, len(subs))
    for _, sub := range subs {
        out = append(out, api.Submission{
            Id:                 sub.ID,
            ProprietaryPackage: sub.ProprietaryPackage,
            AlternativeId:      sub.AlternativeID,
            UserId:             sub.UserID,
            Timestamp:          sub.Timestamp,
            Status:             api.SubmissionStatus(sub.Status),
        })
    }
    return out, nil
}

func (s *Server) CastVote(ctx context.Context, req api.CastVoteRequestObject) (api.CastVoteResponseObject, error) {
    if req.Body == nil {
        return api.CastVote502JSONResponse{Recorded: false}, nil
    }
    if !s.allowVote(req.Body.UserId) {
        return api.CastVote429JSONResponse{Message: "too many votes, slow down"}, nil
    }
    if !s.knowledge.VoteForAlternative(ctx, req.AlternativeId, req.Body.Category, req.Body.UserId) {
        return api.CastVote502JSONResponse{Recorded: false}, nil
    }
    return api.CastVote200JSONResponse{Recorded: true}, nil
}

// allowVote applies the per-user vote bucket. A zero rate disables throttling.
func (s *Server) allowVote(userID string) bool {
    if s.voteLimit.Rate <= 0 {
        return true
    }
    now := s.now()
    s.mu.Lock()
    if now.Sub(s.swept) >= voterIdleTTL {
        s.sweepVoters(now)
    }
    v, ok := s.voters[userID]
    if !ok {
        v = &voter{lim: rate.NewLimiter(s.voteLimit.Rate, s.voteLimit.Burst)}
        s.voters[userID] = v
    }
    v.seen = now
    s.mu.Unlock()
    return v.lim.AllowN(now, 1)
}

// sweepVoters drops limiters idle for voterIdleTTL. Caller holds s.mu.
func (s *Server) sweepVoters(now time.Time) {
    for id, v := range s.voters {
        if now.Sub(v.seen) >= voterIdleTTL {
            delete(s.voters, id)
        }
    }
    s.swept = now
}

func toEntry(p api.InstalledPackage) inventory.Entry {
    e := inventory.Entry{PackageName: p.PackageName, Installer: p.Installer}
    if p.Label != nil {
        e.Label = *p.Label
    }
    if p.SigningFingerprint != nil {
        e.Fingerprint = *p.SigningFingerprint
    }
    if p.System != nil {
        e.System = *p.System
    }
    if p.UpdatedSystem != nil {
        e.UpdatedSystem = *p.UpdatedSystem
    }
    if p.InstallSource != nil {
        e.InstallSource = &inventory.InstallSource{InstallingPackage: p.InstallSource.InstallingPackage}
    }
    return e
}

func toScanResponse(scan domain.Scan) api.ScanResponse {
    fp := float32(scan.Progress)
    resp := api.ScanResponse{Id: scan.ID, Status: api.ScanStatus(scan.Status), Progress: &fp}
    // a scored scan always carries its app list, empty or not
    if scan.Apps != nil || scan.Score != nil {
        apps := make([]api.ClassifiedApp, 0, len(scan.Apps))
        for _, a := range scan.Apps {
            apps = append(apps, api.ClassifiedApp{
                PackageName:       a.PackageName,
                Label:             a.Label,
                Status:            api.AppStatus(a.Status),
                Installer:         a.Installer,
                KnownAlternatives: a.KnownAlternatives,
            })
        }
        resp.Apps = &apps
    }
    if scan.Score != nil {
        sc := toScore(*scan.Score)
        resp.Score = &sc
    }
    return resp
}

func toScore(s domain.SovereigntyScore) api.SovereigntyScore {
    return api.SovereigntyScore{
        TotalApps:        s.TotalApps,
        FossCount:        s.FossCount,
        ProprietaryCount: s.ProprietaryCount,
        UnknownCount:     s.UnknownCount,
        Percentage:       s.Percentage,
        Level:            api.SovereigntyLevel(s.Level),
    }
}

func toAlternative(a domain.Alternative) api.Alternative {
    votes := a.Votes
    if votes == nil {
        votes = map[string]int{}
    }
    out := api.Alternative{
        Id:          a.ID,
        Name:        a.Name,
        PackageName: a.PackageName,
        License:     a.License,
        RepoUrl:     a.RepoURL,
        FdroidId:    a.FdroidID,
        IconUrl:     a.IconURL,
        Description: a.Description,
        Votes:       votes,
        TotalScore:  a.TotalScore(),
    }
    if d := a.RepoDomain(); d != "" {
        out.RepoDomain = &d
    }
    return out
}
