package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_querier.go -package=mocks hf-council/internal/service Querier
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_council_service.go -package=mocks -mock_names=CouncilService=MockCouncilService hf-council/internal/service CouncilService

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"hf-council/internal/contextutil"
	"hf-council/internal/llm"
	"hf-council/internal/storage"
)

// Querier sends one chat completion payload and reports the outcome.
// Implementations must not return transport failures out of band: every
// failure is carried in the returned llm.Response.
type Querier interface {
	Query(ctx context.Context, payload llm.Payload) llm.Response
}

// Reporter receives progress while a council is convened.
type Reporter interface {
	Convening(prompt string, members []string)
	Asking(model string)
	Verdict(v Verdict)
}

// AskRequest is a single-model query.
type AskRequest struct {
	Prompt string `validate:"required"`
	Model  string // Empty uses the service default
}

// ConveneRequest asks every council member the same prompt.
type ConveneRequest struct {
	Prompt  string   `validate:"required"`
	Members []string // Empty uses the configured council
}

// Verdict is one model's outcome. Failure is empty on success.
type Verdict struct {
	Model   string
	Role    string
	Answer  string
	Failure string
	Raw     string // Response body as received, if any
}

// Failed reports whether the model could not answer.
func (v Verdict) Failed() bool {
	return v.Failure != ""
}

// Detail returns the failure as the endpoint reported it: the raw body when
// one was received, otherwise an {"error": ...} record.
func (v Verdict) Detail() string {
	if v.Raw != "" {
		return v.Raw
	}
	b, _ := json.Marshal(map[string]string{"error": v.Failure})
	return string(b)
}

// Session is the result of one run of either driver.
type Session struct {
	RunID     string // Empty when history is disabled or could not be saved
	Kind      string
	Prompt    string
	CreatedAt time.Time
	Verdicts  []Verdict
}

// Failures counts the verdicts that failed.
func (s Session) Failures() int {
	n := 0
	for _, v := range s.Verdicts {
		if v.Failed() {
			n++
		}
	}
	return n
}

// CouncilService runs the single-query and council drivers.
type CouncilService interface {
	// Ask queries one model once.
	Ask(ctx context.Context, req AskRequest) (Session, error)
	// Convene asks each council member in order, reporting progress to r (may be nil).
	// A member failure is recorded in its verdict and does not stop the run.
	Convene(ctx context.Context, req ConveneRequest, r Reporter) (Session, error)
	// Members returns the configured council.
	Members() []string
	// History lists recent runs without their verdicts.
	History(ctx context.Context, limit int) ([]Session, error)
	// Run loads a stored run with its verdicts.
	Run(ctx context.Context, id string) (Session, error)
}

// Options configures a CouncilService.
type Options struct {
	Members      []string
	DefaultModel string
	MaxTokens    int
}

// councilService implements CouncilService.
type councilService struct {
	querier Querier
	store   storage.RunStore // nil disables history
	opts    Options
}

// NewCouncilService creates a new CouncilService. store may be nil.
func NewCouncilService(querier Querier, store storage.RunStore, opts Options) CouncilService {
	opts.Members = append([]string(nil), opts.Members...)
	return &councilService{
		querier: querier,
		store:   store,
		opts:    opts,
	}
}

func (s *councilService) Members() []string {
	return append([]string(nil), s.opts.Members...)
}

// Ask sends the prompt to a single model. The payload carries only messages
// and model; a failed call is returned as a failed verdict, not an error.
func (s *councilService) Ask(ctx context.Context, req AskRequest) (Session, error) {
	logger := contextutil.LoggerFromContext(ctx)

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		logger.WarnContext(ctx, "empty prompt in ask request")
		return Session{}, &ValidationError{Field: "prompt", Message: "cannot be empty"}
	}
	model := req.Model
	if model == "" {
		model = s.opts.DefaultModel
	}
	if model == "" {
		return Session{}, &ValidationError{Field: "model", Message: "cannot be empty"}
	}

	resp := s.querier.Query(ctx, llm.Payload{
		Messages: []llm.Message{llm.UserMessage(prompt)},
		Model:    model,
	})
	verdict := verdictFrom(model, resp)
	if verdict.Failed() {
		logger.WarnContext(ctx, "model query failed", "model", model, "error", verdict.Failure)
	} else {
		logger.InfoContext(ctx, "model answered", "model", model, "answer_length", len(verdict.Answer))
	}

	session := Session{
		Kind:     storage.KindAsk,
		Prompt:   prompt,
		Verdicts: []Verdict{verdict},
	}
	return s.record(ctx, session), nil
}

// Convene asks every member the same prompt, strictly one after another.
// It stops early only when ctx is done, returning the verdicts gathered so far.
func (s *councilService) Convene(ctx context.Context, req ConveneRequest, r Reporter) (Session, error) {
	logger := contextutil.LoggerFromContext(ctx)
	if r == nil {
		r = nopReporter{}
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		logger.WarnContext(ctx, "empty prompt in convene request")
		return Session{}, &ValidationError{Field: "prompt", Message: "cannot be empty"}
	}
	members := req.Members
	if len(members) == 0 {
		members = s.opts.Members
	}
	if len(members) == 0 {
		return Session{}, &ValidationError{Field: "members", Message: "council has no members"}
	}

	session := Session{
		Kind:     storage.KindCouncil,
		Prompt:   prompt,
		Verdicts: make([]Verdict, 0, len(members)),
	}

	r.Convening(prompt, members)
	for _, model := range members {
		if err := ctx.Err(); err != nil {
			logger.WarnContext(ctx, "council interrupted", "asked", len(session.Verdicts), "members", len(members))
			return session, WrapError(err, "council interrupted")
		}

		r.Asking(model)
		resp := s.querier.Query(ctx, llm.Payload{
			Messages:  []llm.Message{llm.UserMessage(prompt)},
			Model:     model,
			MaxTokens: s.opts.MaxTokens,
			Stream:    llm.Bool(false),
		})
		verdict := verdictFrom(model, resp)
		if verdict.Failed() {
			logger.WarnContext(ctx, "council member failed", "model", model, "error", verdict.Failure)
		} else {
			logger.DebugContext(ctx, "council member answered", "model", model, "answer_length", len(verdict.Answer))
		}
		r.Verdict(verdict)
		session.Verdicts = append(session.Verdicts, verdict)
	}

	logger.InfoContext(ctx, "council adjourned", "members", len(members), "failures", session.Failures())
	return s.record(ctx, session), nil
}

func (s *councilService) History(ctx context.Context, limit int) ([]Session, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	runs, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, WrapError(err, "failed to list runs")
	}
	sessions := make([]Session, 0, len(runs))
	for _, run := range runs {
		sessions = append(sessions, Session{
			RunID:     run.ID,
			Kind:      run.Kind,
			Prompt:    run.Prompt,
			CreatedAt: run.CreatedAt,
		})
	}
	return sessions, nil
}

func (s *councilService) Run(ctx context.Context, id string) (Session, error) {
	if s.store == nil {
		return Session{}, ErrHistoryDisabled
	}
	run, answers, err := s.store.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return Session{}, WrapError(ErrNotFound, "run "+id)
	}
	if err != nil {
		return Session{}, WrapError(err, "failed to load run")
	}

	session := Session{
		RunID:     run.ID,
		Kind:      run.Kind,
		Prompt:    run.Prompt,
		CreatedAt: run.CreatedAt,
		Verdicts:  make([]Verdict, 0, len(answers)),
	}
	for _, a := range answers {
		session.Verdicts = append(session.Verdicts, Verdict{
			Model:   a.Model,
			Role:    a.Role,
			Answer:  a.Content,
			Failure: a.Error,
		})
	}
	return session, nil
}

// record persists the session when history is enabled. A storage failure is
// logged and leaves RunID empty; it never fails the run itself.
func (s *councilService) record(ctx context.Context, session Session) Session {
	session.CreatedAt = time.Now().UTC()
	if s.store == nil {
		return session
	}

	answers := make([]storage.AnswerRecord, 0, len(session.Verdicts))
	for _, v := range session.Verdicts {
		answers = append(answers, storage.AnswerRecord{
			Model:   v.Model,
			Role:    v.Role,
			Content: v.Answer,
			Error:   v.Failure,
		})
	}
	run, err := s.store.Save(ctx, storage.RunRecord{
		Kind:      session.Kind,
		Prompt:    session.Prompt,
		CreatedAt: session.CreatedAt,
	}, answers)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to save run", "error", err)
		return session
	}
	session.RunID = run.ID
	return session
}

func verdictFrom(model string, resp llm.Response) Verdict {
	if !resp.OK() {
		failure := resp.Error
		if failure == "" {
			failure = "no choices returned"
		}
		return Verdict{Model: model, Failure: failure, Raw: string(resp.Raw)}
	}
	msg := resp.Message()
	return Verdict{Model: model, Role: msg.Role, Answer: resp.Answer()}
}

type nopReporter struct{}

func (nopReporter) Convening(string, []string) {}
func (nopReporter) Asking(string)              {}
func (nopReporter) Verdict(Verdict)            {}
