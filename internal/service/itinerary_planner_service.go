package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/noah-isme/itinerary-planner-api/internal/catalog"
	"github.com/noah-isme/itinerary-planner-api/internal/dto"
	"github.com/noah-isme/itinerary-planner-api/internal/models"
	"github.com/noah-isme/itinerary-planner-api/internal/scheduler"
	appErrors "github.com/noah-isme/itinerary-planner-api/pkg/errors"
)

const (
	planCachePrefix  = "planner:plan"
	planCachePattern = planCachePrefix + ":*"
)

type itineraryRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, itinerary *models.Itinerary) error
	FindByID(ctx context.Context, id string) (*models.Itinerary, error)
	List(ctx context.Context, filter models.ItineraryFilter) ([]models.Itinerary, int, error)
	Update(ctx context.Context, itinerary *models.Itinerary) error
	Delete(ctx context.Context, id string) error
}

type itinerarySlotRepository interface {
	InsertBatch(ctx context.Context, exec sqlx.ExtContext, slots []models.ItinerarySlot) error
	ListByItinerary(ctx context.Context, itineraryID string) ([]models.ItinerarySlot, error)
}

type catalogSource interface {
	Get(id string) (*catalog.Catalog, error)
	List() []catalog.Summary
	Reload() (int, error)
}

type planCache interface {
	Enabled() bool
	Key(prefix string, value interface{}) (string, error)
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) (int, error)
}

type itineraryExporter interface {
	Render(itinerary *models.Itinerary, slots []models.ItinerarySlot, format string) (*ExportResult, error)
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID string
	Role   models.UserRole
}

// IsAdmin reports whether the actor may act on other users' itineraries.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// PlannerConfig governs planner behaviour.
type PlannerConfig struct {
	Defaults      scheduler.Options
	SearchTimeout time.Duration
	ProposalTTL   time.Duration
	MaxActivities int
	CacheTTL      time.Duration
}

// ItineraryPlannerService runs the scheduling engine and manages saved itineraries.
type ItineraryPlannerService struct {
	itineraries itineraryRepository
	slots       itinerarySlotRepository
	catalogs    catalogSource
	cache       planCache
	exporter    itineraryExporter
	tx          txProvider
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
	store       *proposalStore
	cfg         PlannerConfig
}

// NewItineraryPlannerService wires planner dependencies. Repositories and tx may be nil when
// persistence is disabled; cache may be nil when plan caching is off.
func NewItineraryPlannerService(
	itineraries itineraryRepository,
	slots itinerarySlotRepository,
	catalogs catalogSource,
	cache planCache,
	exporter itineraryExporter,
	tx txProvider,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg PlannerConfig,
) *ItineraryPlannerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Defaults.MaxPerDay <= 0 {
		cfg.Defaults.MaxPerDay = scheduler.DefaultMaxPerDay
	}
	if cfg.Defaults.FoodAfterSlot <= 0 {
		cfg.Defaults.FoodAfterSlot = scheduler.DefaultFoodAfterSlot
	}
	if cfg.Defaults.MaxNodes < 0 {
		cfg.Defaults.MaxNodes = 0
	}
	if cfg.ProposalTTL <= 0 {
		cfg.ProposalTTL = 30 * time.Minute
	}
	if cfg.MaxActivities <= 0 {
		cfg.MaxActivities = 200
	}
	if exporter == nil {
		exporter = NewExportService(logger, nil, nil)
	}
	return &ItineraryPlannerService{
		itineraries: itineraries,
		slots:       slots,
		catalogs:    catalogs,
		cache:       cache,
		exporter:    exporter,
		tx:          tx,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
		store:       newProposalStore(cfg.ProposalTTL),
		cfg:         cfg,
	}
}

// planFingerprint is the cache identity of a plan request.
type planFingerprint struct {
	Start         string
	End           string
	Activities    []scheduler.Activity
	MaxPerDay     int
	FoodAfterSlot int
	MaxNodes      int
}

// planCacheEntry is what gets cached: the deterministic part of a plan outcome. Fingerprint
// holds the canonical request so a digest collision on the key is detected on read.
type planCacheEntry struct {
	Fingerprint string            `json:"fingerprint"`
	Outcome     scheduler.Outcome `json:"outcome"`
	Reason      scheduler.Reason  `json:"reason"`
	Days        []scheduler.Day   `json:"days,omitempty"`
	Stats       scheduler.Stats   `json:"stats"`
}

// Plan validates the request, runs the backtracking search and returns either a schedule with a
// proposal id that can later be saved, or the no-solution outcome.
func (s *ItineraryPlannerService) Plan(ctx context.Context, actor Actor, req dto.PlanItineraryRequest) (*dto.PlanItineraryResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid plan payload")
	}

	activities, err := s.resolveActivities(req)
	if err != nil {
		return nil, err
	}
	dates, err := scheduler.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	opts, err := scheduler.OptionsFromMap(s.cfg.Defaults, req.Constraints)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	cacheKey, fingerprint := s.planCacheKey(req, activities, opts)
	if cacheKey != "" {
		var entry planCacheEntry
		hit, cacheErr := s.cache.Get(ctx, cacheKey, &entry)
		switch {
		case cacheErr != nil || !hit:
		case entry.Fingerprint != fingerprint:
			s.logger.Warn("plan cache fingerprint mismatch", zap.String("key", cacheKey))
		default:
			s.metrics.ObserveCachedPlan(entry.Outcome, entry.Reason)
			s.logger.Debug("plan served from cache", zap.String("key", cacheKey), zap.String("outcome", string(entry.Outcome)))
			return s.buildPlanResponse(actor, req.CatalogID, dates, opts, entry, true), nil
		}
	}

	searchCtx := ctx
	if s.cfg.SearchTimeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, s.cfg.SearchTimeout)
		defer cancel()
	}

	result, err := scheduler.Generate(searchCtx, activities, dates, opts)
	if err != nil {
		return nil, mapEngineError(err)
	}
	s.metrics.ObservePlan(result)
	s.logger.Info("itinerary planned",
		zap.String("user_id", actor.UserID),
		zap.String("outcome", string(result.Outcome)),
		zap.String("reason", string(result.Reason)),
		zap.Int("days", dates.Days()),
		zap.Int("activities", len(activities)),
		zap.Int("nodes", result.Stats.Nodes),
		zap.Int("backtracks", result.Stats.Backtracks),
		zap.Duration("elapsed", result.Stats.Elapsed),
	)

	entry := planCacheEntry{Fingerprint: fingerprint, Outcome: result.Outcome, Reason: result.Reason, Stats: result.Stats}
	if result.Found() {
		entry.Days = result.Schedule.Days
	}
	if cacheKey != "" && !result.Stats.Truncated {
		_ = s.cache.Set(ctx, cacheKey, entry, s.cfg.CacheTTL)
	}
	return s.buildPlanResponse(actor, req.CatalogID, dates, opts, entry, false), nil
}

func (s *ItineraryPlannerService) resolveActivities(req dto.PlanItineraryRequest) ([]scheduler.Activity, error) {
	switch {
	case req.CatalogID != "" && req.Activities != nil:
		return nil, appErrors.Clone(appErrors.ErrValidation, "provide either activities or catalogId, not both")
	case req.CatalogID == "" && req.Activities == nil:
		return nil, appErrors.Clone(appErrors.ErrValidation, "activities or catalogId is required")
	}

	var activities []scheduler.Activity
	if req.CatalogID != "" {
		if s.catalogs == nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown catalog %q", req.CatalogID))
		}
		cat, err := s.catalogs.Get(req.CatalogID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown catalog %q", req.CatalogID))
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load catalog")
		}
		activities = cat.Activities
	} else {
		activities = make([]scheduler.Activity, 0, len(req.Activities))
		for _, raw := range req.Activities {
			activities = append(activities, scheduler.Activity(raw))
		}
	}

	if len(activities) > s.cfg.MaxActivities {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("at most %d activities are allowed, got %d", s.cfg.MaxActivities, len(activities)))
	}
	if err := catalog.ValidateActivities(activities); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	return activities, nil
}

// planCacheKey returns the cache key and the canonical JSON form of the request. Both are
// empty when caching is off or the request cannot be fingerprinted.
func (s *ItineraryPlannerService) planCacheKey(req dto.PlanItineraryRequest, activities []scheduler.Activity, opts scheduler.Options) (string, string) {
	if s.cache == nil || !s.cache.Enabled() {
		return "", ""
	}
	fp := planFingerprint{
		Start:         req.StartDate,
		End:           req.EndDate,
		Activities:    activities,
		MaxPerDay:     opts.MaxPerDay,
		FoodAfterSlot: opts.FoodAfterSlot,
		MaxNodes:      opts.MaxNodes,
	}
	canonical, err := json.Marshal(fp)
	if err != nil {
		s.logger.Warn("plan fingerprint failed", zap.Error(err))
		return "", ""
	}
	key, err := s.cache.Key(planCachePrefix, fp)
	if err != nil {
		s.logger.Warn("plan cache key failed", zap.Error(err))
		return "", ""
	}
	return key, string(canonical)
}

func (s *ItineraryPlannerService) buildPlanResponse(actor Actor, catalogID string, dates scheduler.DateRange, opts scheduler.Options, entry planCacheEntry, cached bool) *dto.PlanItineraryResponse {
	resp := &dto.PlanItineraryResponse{
		Status: entry.Outcome,
		Reason: entry.Reason,
		Constraints: dto.PlanConstraints{
			MaxPerDay:     opts.MaxPerDay,
			FoodAfterSlot: opts.FoodAfterSlot,
		},
		Stats:  entry.Stats,
		Cached: cached,
	}
	if entry.Outcome != scheduler.OutcomeScheduled {
		resp.Message = dto.NoScheduleMessage
		return resp
	}

	proposal := planProposal{
		ProposalID: uuid.NewString(),
		OwnerID:    actor.UserID,
		CatalogID:  catalogID,
		Range:      dates,
		Options:    opts,
		Days:       entry.Days,
		Stats:      entry.Stats,
		CreatedAt:  s.store.now(),
	}
	s.store.Save(proposal)

	resp.ProposalID = proposal.ProposalID
	resp.Schedule = scheduler.NewSchedule(entry.Days)
	resp.Days = entry.Days
	return resp
}

// Save persists a planned proposal as an itinerary owned by the proposal's planner.
func (s *ItineraryPlannerService) Save(ctx context.Context, actor Actor, req dto.SaveItineraryRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid save itinerary payload")
	}
	if err := s.requirePersistence(); err != nil {
		return "", err
	}
	s.store.Purge()

	proposal, ok := s.store.Get(req.ProposalID)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired")
	}
	if proposal.OwnerID != actor.UserID && !actor.IsAdmin() {
		return "", appErrors.Clone(appErrors.ErrForbidden, "proposal belongs to another user")
	}
	if s.tx == nil {
		return "", appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	started := time.Now()
	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	statsBytes, marshalErr := json.Marshal(proposal.Stats)
	if marshalErr != nil {
		err = appErrors.Wrap(marshalErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode search stats")
		return "", err
	}

	record := &models.Itinerary{
		UserID:        proposal.OwnerID,
		Title:         req.Title,
		StartDate:     proposal.Range.Start,
		EndDate:       proposal.Range.End,
		MaxPerDay:     proposal.Options.MaxPerDay,
		FoodAfterSlot: proposal.Options.FoodAfterSlot,
		Stats:         types.JSONText(statsBytes),
	}
	if proposal.CatalogID != "" {
		catalogID := proposal.CatalogID
		record.CatalogID = &catalogID
	}
	if err = s.itineraries.Create(ctx, tx, record); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create itinerary")
		return "", err
	}

	slotModels, buildErr := slotsFromDays(record.ID, proposal.Days)
	if buildErr != nil {
		err = appErrors.Wrap(buildErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode itinerary slots")
		return "", err
	}
	if err = s.slots.InsertBatch(ctx, tx, slotModels); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist itinerary slots")
		return "", err
	}

	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit itinerary transaction")
		return "", err
	}
	s.metrics.ObserveDBQuery("itinerary_save", time.Since(started))

	s.store.Delete(req.ProposalID)
	s.logger.Info("itinerary saved", zap.String("itinerary_id", record.ID), zap.String("user_id", record.UserID), zap.Int("slots", len(slotModels)))
	return record.ID, nil
}

// List returns itineraries ordered by start date. Non-admins only see their own.
func (s *ItineraryPlannerService) List(ctx context.Context, actor Actor, query dto.ListItinerariesQuery) ([]models.Itinerary, *models.Pagination, error) {
	if err := s.requirePersistence(); err != nil {
		return nil, nil, err
	}
	filter := models.ItineraryFilter{Page: query.Page, PageSize: query.PageSize}
	if !actor.IsAdmin() {
		filter.UserID = actor.UserID
	}

	started := time.Now()
	items, total, err := s.itineraries.List(ctx, filter)
	s.metrics.ObserveDBQuery("itinerary_list", time.Since(started))
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list itineraries")
	}
	if items == nil {
		items = []models.Itinerary{}
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	size := query.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return items, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns an itinerary with its slots grouped by day.
func (s *ItineraryPlannerService) Get(ctx context.Context, actor Actor, id string) (*dto.ItineraryDetailResponse, error) {
	itinerary, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	slots, err := s.slots.ListByItinerary(ctx, itinerary.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list itinerary slots")
	}
	return &dto.ItineraryDetailResponse{
		Itinerary: *itinerary,
		Days:      groupSlotsByDay(slots),
	}, nil
}

// Update applies a partial update to an itinerary owned by the actor (or any itinerary for
// admins). An empty request returns the itinerary unchanged.
func (s *ItineraryPlannerService) Update(ctx context.Context, actor Actor, id string, req dto.UpdateItineraryRequest) (*models.Itinerary, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid update itinerary payload")
	}
	itinerary, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if req.Title == nil {
		return itinerary, nil
	}
	title := strings.TrimSpace(*req.Title)
	if title == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "title must not be blank")
	}
	itinerary.Title = title

	started := time.Now()
	err = s.itineraries.Update(ctx, itinerary)
	s.metrics.ObserveDBQuery("itinerary_update", time.Since(started))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "itinerary not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update itinerary")
	}
	s.logger.Info("itinerary updated", zap.String("itinerary_id", id), zap.String("user_id", actor.UserID))
	return itinerary, nil
}

// Delete removes an itinerary owned by the actor (or any itinerary for admins).
func (s *ItineraryPlannerService) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := s.loadOwned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.itineraries.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "itinerary not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete itinerary")
	}
	s.logger.Info("itinerary deleted", zap.String("itinerary_id", id), zap.String("user_id", actor.UserID))
	return nil
}

// Export renders an itinerary as CSV or PDF.
func (s *ItineraryPlannerService) Export(ctx context.Context, actor Actor, id, format string) (*ExportResult, error) {
	if err := s.validator.Struct(dto.ExportItineraryQuery{Format: format}); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	itinerary, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	slots, err := s.slots.ListByItinerary(ctx, itinerary.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list itinerary slots")
	}
	return s.exporter.Render(itinerary, slots, format)
}

// Catalogs lists the loaded activity catalogs.
func (s *ItineraryPlannerService) Catalogs() []catalog.Summary {
	if s.catalogs == nil {
		return []catalog.Summary{}
	}
	return s.catalogs.List()
}

// ReloadCatalogs re-reads the catalog directory and drops cached plans, which may have been
// computed from the previous catalog contents.
func (s *ItineraryPlannerService) ReloadCatalogs(ctx context.Context) (int, error) {
	if s.catalogs == nil {
		return 0, appErrors.Clone(appErrors.ErrServiceUnavailable, "catalogs are not configured")
	}
	count, err := s.catalogs.Reload()
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload catalogs")
	}
	if s.cache != nil {
		if _, err := s.cache.Invalidate(ctx, planCachePattern); err != nil {
			s.logger.Warn("plan cache invalidation failed", zap.Error(err))
		}
	}
	s.logger.Info("catalogs reloaded", zap.Int("count", count))
	return count, nil
}

func (s *ItineraryPlannerService) requirePersistence() error {
	if s.itineraries == nil || s.slots == nil {
		return appErrors.Clone(appErrors.ErrServiceUnavailable, "itinerary persistence is disabled")
	}
	return nil
}

func (s *ItineraryPlannerService) loadOwned(ctx context.Context, actor Actor, id string) (*models.Itinerary, error) {
	if err := s.requirePersistence(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "itinerary id is required")
	}
	started := time.Now()
	itinerary, err := s.itineraries.FindByID(ctx, id)
	s.metrics.ObserveDBQuery("itinerary_find", time.Since(started))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "itinerary not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load itinerary")
	}
	if itinerary.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "not permitted for this itinerary")
	}
	return itinerary, nil
}

func mapEngineError(err error) error {
	switch {
	case errors.Is(err, scheduler.ErrInvalidDateRange), errors.Is(err, scheduler.ErrInvalidOption):
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	case errors.Is(err, context.Canceled):
		return appErrors.Wrap(err, appErrors.ErrRequestCanceled.Code, appErrors.ErrRequestCanceled.Status, appErrors.ErrRequestCanceled.Message)
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to plan itinerary")
	}
}

func slotsFromDays(itineraryID string, days []scheduler.Day) ([]models.ItinerarySlot, error) {
	var slots []models.ItinerarySlot
	for _, day := range days {
		for i, activity := range day.Activities {
			payload, err := json.Marshal(activity)
			if err != nil {
				return nil, fmt.Errorf("encode activity %s slot %d: %w", day.Label, i+1, err)
			}
			slots = append(slots, models.ItinerarySlot{
				ItineraryID:  itineraryID,
				DayIndex:     day.Index,
				SlotIndex:    i + 1,
				Date:         day.Date,
				ActivityName: activity.Name(),
				Category:     activity.Category(),
				Activity:     types.JSONText(payload),
			})
		}
	}
	return slots, nil
}

func groupSlotsByDay(slots []models.ItinerarySlot) []dto.ItineraryDay {
	days := make([]dto.ItineraryDay, 0)
	index := make(map[int]int)
	for _, slot := range slots {
		pos, ok := index[slot.DayIndex]
		if !ok {
			pos = len(days)
			index[slot.DayIndex] = pos
			days = append(days, dto.ItineraryDay{
				Index: slot.DayIndex,
				Label: fmt.Sprintf("Day%d", slot.DayIndex),
				Date:  slot.Date,
			})
		}
		days[pos].Slots = append(days[pos].Slots, slot)
	}
	return days
}
