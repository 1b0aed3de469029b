package service

import (
	"errors"
	"sort"
	"strings"
	"time"

	"medexam_backend/internal/config"
	"medexam_backend/internal/model"
	"medexam_backend/internal/repository"
	"medexam_backend/internal/util"
	"medexam_backend/pkg/logger"
	"medexam_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuestionView is a question as shown while an exam is running: alternatives
// without explanations, no correct tag.
type QuestionView struct {
	ID       uint                 `json:"id"`
	Prompt   string               `json:"prompt"`
	ImageURL string               `json:"imageUrl,omitempty"`
	Topic    string               `json:"topic"`
	Options  []model.AnswerOption `json:"options"`
}

// ActiveExam is the full restore payload for the exam screen.
type ActiveExam struct {
	Session   *model.ExamSession `json:"session"`
	Questions []QuestionView     `json:"questions"`
	Answers   []model.ExamAnswer `json:"answers"`
	Resumed   bool               `json:"resumed"`
}

type ExamService struct {
	sessions  *repository.ExamSessionRepository
	answers   *repository.ExamAnswerRepository
	questions *repository.QuestionRepository
	ranking   *RankingService
	users     *repository.UserRepository
	cfg       config.ExamConfig
}

func NewExamService(
	sessions *repository.ExamSessionRepository,
	answers *repository.ExamAnswerRepository,
	questions *repository.QuestionRepository,
	ranking *RankingService,
	users *repository.UserRepository,
	cfg config.ExamConfig,
) *ExamService {
	return &ExamService{
		sessions:  sessions,
		answers:   answers,
		questions: questions,
		ranking:   ranking,
		users:     users,
		cfg:       cfg,
	}
}

// Start begins a new timed exam, or resumes the active one if it exists so a
// double "start" never produces duplicate sessions.
func (s *ExamService) Start(userID uint, questionCount, durationMinutes int) (*ActiveExam, error) {
	if active, err := s.Resume(userID); err != nil {
		return nil, err
	} else if active != nil {
		active.Resumed = true
		return active, nil
	}

	if questionCount <= 0 {
		questionCount = s.cfg.DefaultQuestionCount
	}
	if durationMinutes <= 0 {
		durationMinutes = s.cfg.DefaultDurationMin
	}

	ids, err := s.questions.RandomIDs(questionCount, "")
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, util.ErrQuestionBankEmpty
	}

	session := &model.ExamSession{
		UserID:               userID,
		Status:               model.SessionInProgress,
		TimeLimitSeconds:     durationMinutes * 60,
		TimeRemainingSeconds: durationMinutes * 60,
	}
	if err := session.SetQuestionOrder(ids); err != nil {
		return nil, err
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, err
	}
	monitoring.ActiveExamSessions.Inc()

	questions, err := s.questionViews(ids)
	if err != nil {
		return nil, err
	}

	return &ActiveExam{Session: session, Questions: questions, Answers: []model.ExamAnswer{}}, nil
}

// Resume restores the user's in_progress session, or returns nil when there
// is none (a normal empty state, not an error).
func (s *ExamService) Resume(userID uint) (*ActiveExam, error) {
	session, err := s.sessions.FindActiveByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	order, err := session.QuestionOrder()
	if err != nil {
		return nil, err
	}

	questions, err := s.questionViews(order)
	if err != nil {
		return nil, err
	}

	answers, err := s.answers.FindBySession(session.ID)
	if err != nil {
		return nil, err
	}

	return &ActiveExam{Session: session, Questions: questions, Answers: answers, Resumed: true}, nil
}

// questionViews fetches questions and re-sorts them to the frozen order; the
// fetch order is irrelevant, the session order is authoritative.
func (s *ExamService) questionViews(order []uint) ([]QuestionView, error) {
	questions, err := s.questions.FindByIDs(order)
	if err != nil {
		return nil, err
	}

	return SortQuestionsByOrder(questions, order), nil
}

// SortQuestionsByOrder projects question rows onto the frozen id order,
// dropping ids whose rows no longer exist.
func SortQuestionsByOrder(questions []model.Question, order []uint) []QuestionView {
	position := make(map[uint]int, len(order))
	for i, id := range order {
		position[id] = i
	}

	views := make([]QuestionView, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		if _, ok := position[q.ID]; !ok {
			continue
		}
		options := q.Options()
		bare := make([]model.AnswerOption, len(options))
		for j, o := range options {
			bare[j] = model.AnswerOption{Tag: o.Tag, Text: o.Text}
		}
		views = append(views, QuestionView{
			ID:       q.ID,
			Prompt:   q.Prompt,
			ImageURL: q.ImageURL,
			Topic:    q.Topic,
			Options:  bare,
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		return position[views[i].ID] < position[views[j].ID]
	})

	return views
}

// activeSession loads a session and checks ownership and liveness.
func (s *ExamService) activeSession(userID, sessionID uint) (*model.ExamSession, error) {
	session, err := s.sessions.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrSessionNotOwned
	}
	if session.Status == model.SessionCompleted {
		return nil, util.ErrSessionFinished
	}
	if session.Status != model.SessionInProgress {
		return nil, util.ErrSessionNotActive
	}
	return session, nil
}

// Sync persists the navigation/timer snapshot and stamps last_synced_at. The
// client calls this every 30s and on index changes; the stamp tells the UI
// when state last reached the server.
func (s *ExamService) Sync(userID, sessionID uint, currentIndex, timeRemaining int) (time.Time, error) {
	session, err := s.activeSession(userID, sessionID)
	if err != nil {
		return time.Time{}, err
	}

	if currentIndex < 0 {
		currentIndex = 0
	}
	if currentIndex >= session.TotalQuestions {
		currentIndex = session.TotalQuestions - 1
	}
	if timeRemaining < 0 {
		timeRemaining = 0
	}
	if timeRemaining > session.TimeLimitSeconds {
		timeRemaining = session.TimeLimitSeconds
	}

	syncedAt := time.Now()
	if err := s.sessions.UpdateProgress(session.ID, currentIndex, timeRemaining, syncedAt); err != nil {
		return time.Time{}, err
	}
	return syncedAt, nil
}

// Pause persists the snapshot and nothing else: the row stays in_progress and
// the client clears its local state. There is no dedicated paused status.
func (s *ExamService) Pause(userID, sessionID uint, currentIndex, timeRemaining int) (time.Time, error) {
	return s.Sync(userID, sessionID, currentIndex, timeRemaining)
}

// NormalizeOption validates and upper-cases a selected option letter.
func NormalizeOption(selected string) (string, error) {
	letter := strings.ToUpper(strings.TrimSpace(selected))
	switch letter {
	case "A", "B", "C", "D":
		return letter, nil
	}
	return "", util.ErrInvalidOption
}

// SubmitAnswer upserts the selection for one (session, question) pair.
// Repeated submissions overwrite; flag and note live in their own upserts.
func (s *ExamService) SubmitAnswer(userID, sessionID, questionID uint, selected string) (*model.ExamAnswer, error) {
	session, err := s.activeSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	letter, err := NormalizeOption(selected)
	if err != nil {
		return nil, err
	}

	question, err := s.questions.FindByID(questionID)
	if err != nil {
		return nil, util.ErrQuestionNotFound
	}

	answeredAt := time.Now()
	isCorrect := question.IsCorrectChoice(letter)
	if err := s.answers.UpsertSelection(session.ID, questionID, letter, isCorrect, answeredAt); err != nil {
		return nil, err
	}

	return &model.ExamAnswer{
		SessionID:  session.ID,
		QuestionID: questionID,
		Selected:   letter,
		IsCorrect:  isCorrect,
		AnsweredAt: answeredAt,
	}, nil
}

func (s *ExamService) ToggleFlag(userID, sessionID, questionID uint, flagged bool) error {
	session, err := s.activeSession(userID, sessionID)
	if err != nil {
		return err
	}
	return s.answers.UpsertFlag(session.ID, questionID, flagged)
}

func (s *ExamService) SaveNote(userID, sessionID, questionID uint, note string) error {
	session, err := s.activeSession(userID, sessionID)
	if err != nil {
		return err
	}
	return s.answers.UpsertNote(session.ID, questionID, note)
}

// Finish is the only irreversible transition: scores the session, marks it
// completed and hands the points to the leaderboard sync worker.
func (s *ExamService) Finish(userID, sessionID uint, timeRemaining int) (*ExamResult, error) {
	session, err := s.activeSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	if timeRemaining >= 0 && timeRemaining <= session.TimeLimitSeconds {
		session.TimeRemainingSeconds = timeRemaining
	}

	answers, err := s.answers.FindBySession(session.ID)
	if err != nil {
		return nil, err
	}
	order, err := session.QuestionOrder()
	if err != nil {
		return nil, err
	}
	questions, err := s.questions.FindByIDs(order)
	if err != nil {
		return nil, err
	}

	result := BuildExamResult(session, answers, questions)

	now := time.Now()
	session.Status = model.SessionCompleted
	session.EndedAt = &now
	session.Score = result.Percentage
	session.CorrectCount = result.Correct
	if err := s.sessions.Update(session); err != nil {
		return nil, err
	}
	monitoring.ActiveExamSessions.Dec()

	s.enqueueRankingPoints(userID, result.Correct)

	return &result, nil
}

func (s *ExamService) enqueueRankingPoints(userID uint, points int) {
	if s.ranking == nil || points <= 0 {
		return
	}
	user, err := s.users.FindByID(userID)
	if err != nil {
		logger.Log.Warn("ranking: user lookup failed, points not enqueued",
			zap.Uint("userId", userID), zap.Error(err))
		return
	}
	s.ranking.EnqueueScore(ScoreUpdate{
		UserID:      userID,
		DisplayName: user.Name,
		Avatar:      user.Avatar,
		Points:      points,
	})
}

func (s *ExamService) History(userID uint) ([]model.ExamSession, error) {
	return s.sessions.FindCompletedByUser(userID)
}

// ReapStale marks sessions idle past the configured window as abandoned and
// refreshes the active-session gauge. Runs on the app's background ticker.
func (s *ExamService) ReapStale() error {
	cutoff := time.Now().Add(-time.Duration(s.cfg.AbandonAfterHours) * time.Hour)
	reaped, err := s.sessions.AbandonStale(cutoff)
	if err != nil {
		return err
	}
	if reaped > 0 {
		logger.Log.Info("abandoned stale exam sessions", zap.Int64("count", reaped))
	}

	if active, err := s.sessions.CountActive(); err == nil {
		monitoring.ActiveExamSessions.Set(float64(active))
	}
	return nil
}
