package usecases

import (
	"context"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"locates/internal/application/locate/dto"
	"locates/internal/domain/locate"
	"locates/internal/domain/shared/events"
	"locates/internal/shared/biztime"
	"locates/internal/shared/errors"
	"locates/internal/shared/logger"
)

const maxTagLength = 64

var tagPolicy = bluemonday.StrictPolicy()

// sanitizeTags strips markup from free-text tags and drops empty ones.
func sanitizeTags(tags []string) []string {
	clean := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(html.UnescapeString(tagPolicy.Sanitize(tag)))
		tag = strings.ReplaceAll(tag, ",", " ")
		tag = truncateTag(tag)
		if tag != "" {
			clean = append(clean, tag)
		}
	}
	return clean
}

// truncateTag caps tag at maxTagLength bytes without splitting a rune.
func truncateTag(tag string) string {
	if len(tag) <= maxTagLength {
		return tag
	}
	cut := maxTagLength
	for cut > 0 && !utf8.RuneStart(tag[cut]) {
		cut--
	}
	return strings.TrimSpace(tag[:cut])
}

type TagWorkOrderCommand struct {
	WorkOrderNumber string
	Tagger          Actor
	Tags            []string
}

type TagWorkOrderUseCase struct {
	repo      locate.SnapshotRepository
	publisher events.EventPublisher
	logger    logger.Interface
	now       func() time.Time
}

func NewTagWorkOrderUseCase(
	repo locate.SnapshotRepository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *TagWorkOrderUseCase {
	return &TagWorkOrderUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       biztime.NowUTC,
	}
}

func (uc *TagWorkOrderUseCase) Execute(ctx context.Context, cmd TagWorkOrderCommand) (*dto.WorkOrderDTO, error) {
	uc.logger.Infow("executing tag work order use case", "work_order_number", cmd.WorkOrderNumber)

	number := strings.TrimSpace(cmd.WorkOrderNumber)
	if number == "" {
		return nil, errors.NewValidationError("work order number is required")
	}

	snapshots, err := listSnapshots(ctx, uc.repo)
	if err != nil {
		return nil, err
	}

	snapshot, wo := findLiveByNumber(snapshots, number)
	if wo == nil {
		return nil, errors.NewNotFoundError("work order not found", number)
	}

	now := uc.now()
	if err := tag(snapshot, wo, cmd.Tagger, cmd.Tags, now); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, snapshot); err != nil {
		uc.logger.Errorw("failed to save tagged work order", "work_order_number", number, "error", err)
		return nil, errors.NewUpstreamError("failed to save tagged work order", err)
	}

	publish(uc.publisher, uc.logger, locate.NewWorkOrderEvent(
		locate.EventTagged, snapshot.ID(), wo.ID(), number, cmd.Tagger.DisplayName(), now))

	uc.logger.Infow("work order tagged as locates needed", "work_order_id", wo.ID(), "work_order_number", number)

	result := dto.ToWorkOrderDTO(snapshot.ID(), wo, now)
	return &result, nil
}

func tag(snapshot *locate.Snapshot, wo *locate.WorkOrder, tagger Actor, tags []string, now time.Time) error {
	err := wo.TagAsLocatesNeeded(locate.TagRecord{
		TaggedBy:      tagger.DisplayName(),
		TaggedByEmail: tagger.Email,
		Tags:          sanitizeTags(tags),
	}, now)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}
	snapshot.Touch(now)
	return nil
}

type BulkTagWorkOrdersCommand struct {
	WorkOrderNumbers []string
	Tagger           Actor
	Tags             []string
}

type BulkTagWorkOrdersUseCase struct {
	repo      locate.SnapshotRepository
	publisher events.EventPublisher
	logger    logger.Interface
	now       func() time.Time
}

func NewBulkTagWorkOrdersUseCase(
	repo locate.SnapshotRepository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *BulkTagWorkOrdersUseCase {
	return &BulkTagWorkOrdersUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       biztime.NowUTC,
	}
}

func (uc *BulkTagWorkOrdersUseCase) Execute(ctx context.Context, cmd BulkTagWorkOrdersCommand) (*dto.BulkResultDTO, error) {
	uc.logger.Infow("executing bulk tag use case", "count", len(cmd.WorkOrderNumbers))

	if len(cmd.WorkOrderNumbers) == 0 {
		return nil, errors.NewValidationError("workOrderNumbers must be a non-empty array")
	}

	snapshots, err := listSnapshots(ctx, uc.repo)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	run := newBulkRun(len(cmd.WorkOrderNumbers))
	for _, raw := range cmd.WorkOrderNumbers {
		number := strings.TrimSpace(raw)
		if number == "" {
			run.fail(raw, "work order number is required")
			continue
		}
		snapshot, wo := findLiveByNumber(snapshots, number)
		if wo == nil {
			run.fail(number, locate.ErrWorkOrderNotFound.Error())
			continue
		}
		if err := tag(snapshot, wo, cmd.Tagger, cmd.Tags, now); err != nil {
			run.fail(number, err.Error())
			continue
		}
		run.succeed(number, snapshot, locate.NewWorkOrderEvent(
			locate.EventTagged, snapshot.ID(), wo.ID(), number, cmd.Tagger.DisplayName(), now))
	}

	run.save(ctx, uc.repo, uc.logger)
	publish(uc.publisher, uc.logger, run.savedEvents()...)

	result := run.result()
	uc.logger.Infow("bulk tag finished", "total", result.Total, "successful", result.Successful, "failed", result.Failed)
	return result, nil
}
