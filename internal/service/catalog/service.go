package catalog

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/internal/infra/storage/records"
)

const (
	suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffixLength   = 4
)

var nonSlugChars = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// extraSessions добавленные администратором сессии, ключ - formationId
type extraSessions map[string][]domain.SessionOption

// Service каталог формаций: базовый список плюс сессии, добавленные во время работы
type Service struct {
	store  RecordStore
	base   []domain.Formation
	logger Logger

	// mu сериализует цикл чтение-изменение-запись документов каталога
	mu        sync.Mutex
	newSuffix func() string
}

// NewService создает новый экземпляр сервиса каталога
func NewService(store RecordStore, base []domain.Formation, logger Logger) *Service {
	return &Service{
		store:     store,
		base:      base,
		logger:    logger,
		newSuffix: randomSuffix,
	}
}

// ListFormations возвращает формации с сессиями: сначала базовые в исходном порядке,
// затем добавленные в порядке добавления, без удаленных
func (s *Service) ListFormations(ctx context.Context) ([]domain.Formation, error) {
	extras, removed, err := s.loadState(ctx)
	if err != nil {
		s.logger.Error("ListFormations: failed to load catalog state: %v", err)
		return nil, err
	}
	return s.merge(extras, removed), nil
}

// FindSession возвращает формацию и её сессию
func (s *Service) FindSession(ctx context.Context, formationID, sessionID string) (*domain.Formation, *domain.SessionOption, error) {
	formations, err := s.ListFormations(ctx)
	if err != nil {
		return nil, nil, err
	}

	formation := domain.FindFormation(formations, formationID)
	if formation == nil {
		return nil, nil, ErrFormationNotFound
	}
	session := formation.FindSession(sessionID)
	if session == nil {
		return formation, nil, ErrSessionNotFound
	}
	return formation, session, nil
}

// FindSessionAnywhere ищет сессию во всех формациях
func (s *Service) FindSessionAnywhere(ctx context.Context, sessionID string) (*domain.Formation, *domain.SessionOption, error) {
	formations, err := s.ListFormations(ctx)
	if err != nil {
		return nil, nil, err
	}

	formation := domain.FindFormationBySession(formations, sessionID)
	if formation == nil {
		return nil, nil, ErrSessionNotFound
	}
	return formation, formation.FindSession(sessionID), nil
}

// AddSession добавляет сессию в формацию.
// Если id не передан, он генерируется как <slug formationId>-<startDate>-<4 символа base36>.
func (s *Service) AddSession(ctx context.Context, formationID string, draft domain.SessionDraft) (*domain.SessionOption, error) {
	s.logger.Info("AddSession: formation=%s, start=%s", formationID, draft.StartDate)

	if err := validateDraft(draft); err != nil {
		s.logger.Warn("AddSession: validation failed: %v", err)
		return nil, err
	}
	if domain.FindFormation(s.base, formationID) == nil {
		s.logger.Warn("AddSession: formation=%s not found", formationID)
		return nil, ErrFormationNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	extras, _, err := s.loadState(ctx)
	if err != nil {
		s.logger.Error("AddSession: failed to load catalog state: %v", err)
		return nil, err
	}

	id := strings.TrimSpace(draft.ID)
	if id == "" {
		id = GenerateSessionID(formationID, draft.StartDate, s.newSuffix())
	}

	if s.sessionIDTaken(extras, id) {
		s.logger.Warn("AddSession: session id=%s already exists", id)
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSession, id)
	}

	session := domain.SessionOption{
		ID:        id,
		Label:     strings.TrimSpace(draft.Label),
		StartDate: strings.TrimSpace(draft.StartDate),
		EndDate:   strings.TrimSpace(draft.EndDate),
	}
	extras[formationID] = append(extras[formationID], session)

	if err := s.saveExtras(ctx, extras); err != nil {
		s.logger.Error("AddSession: failed to persist session id=%s: %v", id, err)
		return nil, err
	}

	s.logger.Info("AddSession: session id=%s added to formation=%s", id, formationID)
	return &session, nil
}

// RemoveSession удаляет добавленную сессию или помечает базовую как удаленную.
// Возвращает false, если такой сессии нет (или базовая уже удалена).
func (s *Service) RemoveSession(ctx context.Context, sessionID string) (bool, error) {
	s.logger.Info("RemoveSession: session=%s", sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	extras, removed, err := s.loadState(ctx)
	if err != nil {
		s.logger.Error("RemoveSession: failed to load catalog state: %v", err)
		return false, err
	}

	for formationID, sessions := range extras {
		for i, session := range sessions {
			if session.ID != sessionID {
				continue
			}
			extras[formationID] = append(sessions[:i:i], sessions[i+1:]...)
			if len(extras[formationID]) == 0 {
				delete(extras, formationID)
			}
			if err := s.saveExtras(ctx, extras); err != nil {
				s.logger.Error("RemoveSession: failed to persist extras: %v", err)
				return false, err
			}
			s.logger.Info("RemoveSession: added session=%s deleted", sessionID)
			return true, nil
		}
	}

	if domain.FindFormationBySession(s.base, sessionID) == nil {
		s.logger.Warn("RemoveSession: session=%s unknown", sessionID)
		return false, nil
	}
	for _, id := range removed {
		if id == sessionID {
			s.logger.Warn("RemoveSession: session=%s already removed", sessionID)
			return false, nil
		}
	}

	removed = append(removed, sessionID)
	if err := records.SaveJSON(ctx, s.store, records.DocFormationsRemoved, removed); err != nil {
		s.logger.Error("RemoveSession: failed to persist tombstone: %v", err)
		return false, fmt.Errorf("%w: save tombstones: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveSession: built-in session=%s tombstoned", sessionID)
	return true, nil
}

func (s *Service) loadState(ctx context.Context) (extraSessions, []string, error) {
	extras, err := records.LoadJSON[extraSessions](ctx, s.store, records.DocFormationsExtraSessions)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: load extra sessions: %v", ErrInternal, err)
	}
	if extras == nil {
		extras = extraSessions{}
	}

	removed, err := records.LoadJSON[[]string](ctx, s.store, records.DocFormationsRemoved)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: load removed sessions: %v", ErrInternal, err)
	}
	return extras, removed, nil
}

func (s *Service) saveExtras(ctx context.Context, extras extraSessions) error {
	if err := records.SaveJSON(ctx, s.store, records.DocFormationsExtraSessions, extras); err != nil {
		return fmt.Errorf("%w: save extra sessions: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) merge(extras extraSessions, removed []string) []domain.Formation {
	tombstones := make(map[string]struct{}, len(removed))
	for _, id := range removed {
		tombstones[id] = struct{}{}
	}

	result := make([]domain.Formation, 0, len(s.base))
	for _, f := range s.base {
		merged := f
		merged.Objectives = append([]string(nil), f.Objectives...)
		merged.Sessions = make([]domain.SessionOption, 0, len(f.Sessions)+len(extras[f.ID]))
		for _, session := range f.Sessions {
			if _, gone := tombstones[session.ID]; gone {
				continue
			}
			merged.Sessions = append(merged.Sessions, session)
		}
		merged.Sessions = append(merged.Sessions, extras[f.ID]...)
		result = append(result, merged)
	}
	return result
}

// sessionIDTaken проверяет id среди всех базовых (в том числе удаленных) и добавленных сессий
func (s *Service) sessionIDTaken(extras extraSessions, id string) bool {
	if domain.FindFormationBySession(s.base, id) != nil {
		return true
	}
	for _, sessions := range extras {
		for _, session := range sessions {
			if session.ID == id {
				return true
			}
		}
	}
	return false
}

func validateDraft(draft domain.SessionDraft) error {
	if strings.TrimSpace(draft.Label) == "" {
		return fmt.Errorf("%w: label is required", ErrInvalidInput)
	}
	start := strings.TrimSpace(draft.StartDate)
	end := strings.TrimSpace(draft.EndDate)
	if len(start) < len(domain.DateFormat) || len(end) < len(domain.DateFormat) {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	startDay, err := time.Parse(domain.DateFormat, start[:len(domain.DateFormat)])
	if err != nil {
		return fmt.Errorf("%w: invalid startDate %q", ErrInvalidInput, start)
	}
	endDay, err := time.Parse(domain.DateFormat, end[:len(domain.DateFormat)])
	if err != nil {
		return fmt.Errorf("%w: invalid endDate %q", ErrInvalidInput, end)
	}
	if endDay.Before(startDay) {
		return fmt.Errorf("%w: endDate before startDate", ErrInvalidInput)
	}
	return nil
}

// GenerateSessionID строит id сессии из формации, даты начала и случайного суффикса
func GenerateSessionID(formationID, startDate, suffix string) string {
	slug := strings.ToLower(nonSlugChars.ReplaceAllString(formationID, "-"))
	datePart := startDate
	if len(datePart) > len(domain.DateFormat) {
		datePart = datePart[:len(domain.DateFormat)]
	}
	return fmt.Sprintf("%s-%s-%s", slug, datePart, suffix)
}

func randomSuffix() string {
	b := make([]byte, suffixLength)
	for i := range b {
		b[i] = suffixAlphabet[rand.IntN(len(suffixAlphabet))]
	}
	return string(b)
}
