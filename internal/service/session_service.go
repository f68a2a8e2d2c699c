package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"sarvekshan/internal/model"
	"sarvekshan/internal/repository"
	"sarvekshan/internal/store"
)

var (
	ErrNoSession          = errors.New("no active session for this survey")
	ErrSurveyNotFound     = errors.New("survey not found in catalog")
	ErrUnavailableOffline = errors.New("survey not downloaded for offline use")
	ErrUnknownLanguage    = errors.New("language not offered by this survey")
	ErrUnknownQuestion    = errors.New("unknown question id")
	ErrWrongStage         = errors.New("operation not allowed in current stage")
)

// RequiredFieldError blocks the Answering -> next/submit transition and names
// the first unanswered required question.
type RequiredFieldError struct {
	QuestionID string
	Prompt     string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("required question %q not answered: %s", e.QuestionID, e.Prompt)
}

// SessionConfig tunes session behavior
type SessionConfig struct {
	// SkipLanguageSelectionIfSingle skips the language stage for surveys that
	// define exactly one language.
	SkipLanguageSelectionIfSingle bool
	// DraftDebounce coalesces rapid answer edits into one draft write this
	// long after the last change.
	DraftDebounce time.Duration
}

// DefaultSessionConfig returns the standard session configuration
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		SkipLanguageSelectionIfSingle: true,
		DraftDebounce:                 time.Second,
	}
}

// session is the live state of one survey attempt. Owned exclusively by the
// service; transport sees SessionView snapshots.
type session struct {
	survey     *model.Survey
	stage      model.SessionStage
	stepIndex  int
	udiseCode  string
	schoolName string
	language   string
	answers    model.Answers
	saveTimer  *time.Timer
}

// SessionView is the snapshot returned to the UI shell
type SessionView struct {
	SurveyID   string             `json:"surveyId"`
	SurveyName string             `json:"surveyName"`
	Stage      model.SessionStage `json:"stage"`
	StepIndex  int                `json:"stepIndex"`
	TotalSteps int                `json:"totalSteps"`
	Question   *model.Question    `json:"question,omitempty"`
	Languages  []string           `json:"languages,omitempty"`
	Language   string             `json:"language,omitempty"`
	UDISECode  string             `json:"udiseCode,omitempty"`
	SchoolName string             `json:"schoolName,omitempty"`
	Answers    model.Answers      `json:"answers"`
}

// SessionService drives survey attempts through their stages:
// school check (school-bound surveys only), language selection, answering
// with conditional children, review, then submit or discard.
type SessionService struct {
	catalog   repository.SurveyCatalog
	validator *ValidatorService
	network   *NetworkService
	drafts    store.DraftStore
	responses store.ResponseStore

	broadcaster Broadcaster
	cfg         SessionConfig

	mu       sync.Mutex
	sessions map[string]*session

	nowFunc func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(
	catalog repository.SurveyCatalog,
	validator *ValidatorService,
	network *NetworkService,
	drafts store.DraftStore,
	responses store.ResponseStore,
	cfg SessionConfig,
) *SessionService {
	return &SessionService{
		catalog:   catalog,
		validator: validator,
		network:   network,
		drafts:    drafts,
		responses: responses,
		cfg:       cfg,
		sessions:  make(map[string]*session),
		nowFunc:   time.Now,
	}
}

// SetBroadcaster sets the broadcaster for session events
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Start opens (or resumes) the session for a survey. Offline, only
// downloaded surveys may start. An existing draft is restored so a killed
// app picks up where it left off.
func (s *SessionService) Start(ctx context.Context, surveyID string) (*SessionView, error) {
	s.mu.Lock()
	if sess, ok := s.sessions[surveyID]; ok {
		view := s.viewLocked(surveyID, sess)
		s.mu.Unlock()
		return view, nil
	}
	s.mu.Unlock()

	if !s.network.IsAvailableOffline(surveyID) {
		return nil, ErrUnavailableOffline
	}

	survey, err := s.catalog.GetByID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("loading survey %s: %w", surveyID, err)
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}

	sess := &session{
		survey:  survey,
		answers: make(model.Answers),
	}

	draft, err := s.drafts.Get(ctx, surveyID)
	if err != nil {
		// Draft recovery is best effort; a fresh start beats a blocked one.
		log.Printf("draft load failed for %s: %v", surveyID, err)
		draft = nil
	}
	if draft != nil && resumableStage(draft.Stage) {
		sess.stage = draft.Stage
		sess.stepIndex = draft.StepIndex
		sess.udiseCode = draft.UDISECode
		sess.schoolName = draft.SchoolName
		sess.language = draft.Language
		if draft.Answers != nil {
			sess.answers = draft.Answers.Clone()
		}
	} else if survey.SchoolBound() {
		sess.stage = model.StageSchoolCheck
	} else {
		s.enterLanguageStage(sess)
	}

	s.mu.Lock()
	s.sessions[surveyID] = sess
	view := s.viewLocked(surveyID, sess)
	s.mu.Unlock()
	return view, nil
}

func resumableStage(stage model.SessionStage) bool {
	switch stage {
	case model.StageSchoolCheck, model.StageLanguageSelect, model.StageAnswering, model.StageReview:
		return true
	}
	return false
}

// enterLanguageStage moves past the school check, skipping language
// selection for single-language surveys when configured.
func (s *SessionService) enterLanguageStage(sess *session) {
	if sess.survey.SingleLanguage() && s.cfg.SkipLanguageSelectionIfSingle {
		sess.language = sess.survey.Languages[0]
		sess.stage = model.StageAnswering
		return
	}
	sess.stage = model.StageLanguageSelect
}

// VerifySchool runs the UDISE check for a school-bound session. Only a
// Validated result advances the stage; NotFound and NeedsNetwork are
// returned for the shell to show the right remediation.
func (s *SessionService) VerifySchool(ctx context.Context, surveyID, code string) (*ValidationResult, error) {
	s.mu.Lock()
	sess, ok := s.sessions[surveyID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoSession
	}
	if sess.stage != model.StageSchoolCheck {
		stage := sess.stage
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: survey %s is awaiting school verification, got stage %s", ErrWrongStage, surveyID, stage)
	}
	s.mu.Unlock()

	result, err := s.validator.Validate(ctx, code)
	if err != nil {
		return nil, err
	}
	if result.Status != StatusValidated {
		return result, nil
	}

	s.mu.Lock()
	sess.udiseCode = result.School.UDISECode
	sess.schoolName = result.School.Name
	s.enterLanguageStage(sess)
	s.scheduleDraftSaveLocked(surveyID, sess)
	s.mu.Unlock()
	return result, nil
}

// SelectLanguage records the questionnaire language and opens answering.
func (s *SessionService) SelectLanguage(_ context.Context, surveyID, lang string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[surveyID]
	if !ok {
		return nil, ErrNoSession
	}
	if sess.stage != model.StageLanguageSelect {
		return nil, fmt.Errorf("%w: survey %s is in stage %s, expected language selection", ErrWrongStage, surveyID, sess.stage)
	}
	if !sess.survey.HasLanguage(lang) {
		return nil, ErrUnknownLanguage
	}
	sess.language = lang
	sess.stage = model.StageAnswering
	s.scheduleDraftSaveLocked(surveyID, sess)
	return s.viewLocked(surveyID, sess), nil
}

// SetAnswer records an answer for the current questionnaire and schedules a
// debounced draft write. In-memory progress never waits on storage.
func (s *SessionService) SetAnswer(_ context.Context, surveyID, questionID string, value model.AnswerValue) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[surveyID]
	if !ok {
		return nil, ErrNoSession
	}
	if sess.stage != model.StageAnswering && sess.stage != model.StageReview {
		return nil, fmt.Errorf("%w: survey %s is in stage %s, expected answering", ErrWrongStage, surveyID, sess.stage)
	}
	if sess.survey.QuestionByID(questionID) == nil {
		return nil, ErrUnknownQuestion
	}
	if value.Empty() {
		delete(sess.answers, questionID)
	} else {
		sess.answers[questionID] = value
	}
	s.scheduleDraftSaveLocked(surveyID, sess)
	return s.viewLocked(surveyID, sess), nil
}

// Next advances the question pointer. Blocked while the current visible
// question is required and unanswered; past the last question the session
// moves to review.
func (s *SessionService) Next(_ context.Context, surveyID string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[surveyID]
	if !ok {
		return nil, ErrNoSession
	}
	if sess.stage != model.StageAnswering {
		return nil, fmt.Errorf("%w: survey %s is in stage %s, expected answering", ErrWrongStage, surveyID, sess.stage)
	}

	visible := visibleQuestions(sess.survey, sess.answers)
	clampStep(sess, len(visible))
	if len(visible) > 0 {
		current := visible[sess.stepIndex]
		if current.Required && !sess.answers.Has(current.ID) {
			return nil, &RequiredFieldError{QuestionID: current.ID, Prompt: current.Prompt}
		}
	}
	if sess.stepIndex >= len(visible)-1 {
		sess.stage = model.StageReview
	} else {
		sess.stepIndex++
	}
	s.scheduleDraftSaveLocked(surveyID, sess)
	return s.viewLocked(surveyID, sess), nil
}

// Previous steps back unconditionally while there is somewhere to go.
func (s *SessionService) Previous(_ context.Context, surveyID string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[surveyID]
	if !ok {
		return nil, ErrNoSession
	}
	switch sess.stage {
	case model.StageReview:
		sess.stage = model.StageAnswering
	case model.StageAnswering:
		if sess.stepIndex > 0 {
			sess.stepIndex--
		}
	default:
		return nil, fmt.Errorf("%w: survey %s is in stage %s, expected answering", ErrWrongStage, surveyID, sess.stage)
	}
	s.scheduleDraftSaveLocked(surveyID, sess)
	return s.viewLocked(surveyID, sess), nil
}

// View returns the current snapshot without mutating anything.
func (s *SessionService) View(surveyID string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[surveyID]
	if !ok {
		return nil, ErrNoSession
	}
	return s.viewLocked(surveyID, sess), nil
}

// Submit validates every visible required question, finalizes the response
// with sync status pending, clears the draft and closes the session. On a
// missing required answer the session stays put and the first offender is
// reported.
func (s *SessionService) Submit(ctx context.Context, surveyID, submittedBy string) (*model.SurveyResponse, error) {
	s.mu.Lock()
	sess, ok := s.sessions[surveyID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoSession
	}
	if sess.stage != model.StageAnswering && sess.stage != model.StageReview {
		stage := sess.stage
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: survey %s is in stage %s, nothing to submit", ErrWrongStage, surveyID, stage)
	}

	for _, q := range visibleQuestions(sess.survey, sess.answers) {
		if q.Required && !sess.answers.Has(q.ID) {
			s.mu.Unlock()
			return nil, &RequiredFieldError{QuestionID: q.ID, Prompt: q.Prompt}
		}
	}

	resp := &model.SurveyResponse{
		ID:          uuid.New().String(),
		SurveyID:    surveyID,
		SurveyName:  sess.survey.Name,
		UDISECode:   sess.udiseCode,
		SchoolName:  sess.schoolName,
		Language:    sess.language,
		SubmittedBy: submittedBy,
		Answers:     sess.answers.Clone(),
		CompletedAt: s.nowFunc().UTC(),
		SyncStatus:  model.SyncPending,
	}
	stopTimerLocked(sess)
	s.mu.Unlock()

	if err := s.responses.Save(ctx, resp); err != nil {
		return nil, fmt.Errorf("saving response for %s: %w", surveyID, err)
	}
	if err := s.drafts.Delete(ctx, surveyID); err != nil {
		log.Printf("draft delete failed for %s: %v", surveyID, err)
	}

	s.mu.Lock()
	sess.stage = model.StageSubmitted
	delete(s.sessions, surveyID)
	s.mu.Unlock()

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(EventSurveySubmitted, map[string]string{
			"surveyId":   surveyID,
			"responseId": resp.ID,
		})
	}
	return resp, nil
}

// Discard drops the session and its draft without producing a response.
// Irreversible; the shell confirms before calling.
func (s *SessionService) Discard(ctx context.Context, surveyID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[surveyID]
	if !ok {
		s.mu.Unlock()
		return ErrNoSession
	}
	stopTimerLocked(sess)
	sess.stage = model.StageDiscarded
	delete(s.sessions, surveyID)
	s.mu.Unlock()

	if err := s.drafts.Delete(ctx, surveyID); err != nil {
		log.Printf("draft delete failed for %s: %v", surveyID, err)
	}
	return nil
}

// HasDraft reports whether a resumable draft exists for the survey.
func (s *SessionService) HasDraft(ctx context.Context, surveyID string) bool {
	draft, err := s.drafts.Get(ctx, surveyID)
	return err == nil && draft != nil
}

// Flush forces any pending debounced draft write out immediately.
func (s *SessionService) Flush(surveyID string) {
	s.mu.Lock()
	sess, ok := s.sessions[surveyID]
	if ok {
		stopTimerLocked(sess)
	}
	s.mu.Unlock()
	if ok {
		s.flushDraft(surveyID)
	}
}

// scheduleDraftSaveLocked coalesces rapid edits into one draft write shortly
// after the last change. Caller holds mu.
func (s *SessionService) scheduleDraftSaveLocked(surveyID string, sess *session) {
	stopTimerLocked(sess)
	sess.saveTimer = time.AfterFunc(s.cfg.DraftDebounce, func() {
		s.flushDraft(surveyID)
	})
}

// flushDraft writes the current snapshot. Failures are logged and swallowed:
// draft persistence must never block data entry.
func (s *SessionService) flushDraft(surveyID string) {
	s.mu.Lock()
	sess, ok := s.sessions[surveyID]
	if !ok {
		s.mu.Unlock()
		return
	}
	draft := &model.SessionDraft{
		SurveyID:   surveyID,
		Stage:      sess.stage,
		StepIndex:  sess.stepIndex,
		UDISECode:  sess.udiseCode,
		SchoolName: sess.schoolName,
		Language:   sess.language,
		Answers:    sess.answers.Clone(),
		UpdatedAt:  s.nowFunc().UTC(),
	}
	s.mu.Unlock()

	if err := s.drafts.Save(context.Background(), draft); err != nil {
		log.Printf("draft save failed for %s: %v", surveyID, err)
	}
}

func stopTimerLocked(sess *session) {
	if sess.saveTimer != nil {
		sess.saveTimer.Stop()
		sess.saveTimer = nil
	}
}

func (s *SessionService) viewLocked(surveyID string, sess *session) *SessionView {
	view := &SessionView{
		SurveyID:   surveyID,
		SurveyName: sess.survey.Name,
		Stage:      sess.stage,
		Language:   sess.language,
		UDISECode:  sess.udiseCode,
		SchoolName: sess.schoolName,
		Answers:    sess.answers.Clone(),
	}
	if sess.stage == model.StageLanguageSelect {
		view.Languages = sess.survey.Languages
	}
	visible := visibleQuestions(sess.survey, sess.answers)
	clampStep(sess, len(visible))
	view.StepIndex = sess.stepIndex
	view.TotalSteps = len(visible)
	if (sess.stage == model.StageAnswering || sess.stage == model.StageReview) && len(visible) > 0 {
		q := visible[sess.stepIndex]
		view.Question = &q
	}
	return view
}

// visibleQuestions filters the ordered question list top-down: top-level
// questions always show; a conditional child shows only while its parent is
// itself visible and the parent's answer matches a trigger value.
func visibleQuestions(survey *model.Survey, answers model.Answers) []model.Question {
	visible := make([]model.Question, 0, len(survey.Questions))
	shown := make(map[string]bool, len(survey.Questions))
	for _, q := range survey.Questions {
		if q.Conditional() {
			if !shown[q.ParentID] || !q.TriggeredBy(answers[q.ParentID]) {
				continue
			}
		}
		visible = append(visible, q)
		shown[q.ID] = true
	}
	return visible
}

// clampStep keeps the pointer valid when answering a parent hides children.
func clampStep(sess *session, total int) {
	if total == 0 {
		sess.stepIndex = 0
		return
	}
	if sess.stepIndex >= total {
		sess.stepIndex = total - 1
	}
	if sess.stepIndex < 0 {
		sess.stepIndex = 0
	}
}
