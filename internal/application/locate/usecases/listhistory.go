package usecases

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"locates/internal/application/locate/dto"
	"locates/internal/domain/locate"
	"locates/internal/shared/constants"
	"locates/internal/shared/logger"
	"locates/internal/shared/utils"
)

type ListHistoryQuery struct {
	Page   int
	Limit  int
	Search string
}

type ListHistoryResult struct {
	Items []dto.DeletedWorkOrderDTO
	Total int64
	Page  int
	Limit int
}

type ListHistoryUseCase struct {
	repo   locate.SnapshotRepository
	logger logger.Interface
}

func NewListHistoryUseCase(repo locate.SnapshotRepository, logger logger.Interface) *ListHistoryUseCase {
	return &ListHistoryUseCase{repo: repo, logger: logger}
}

// Execute flattens the recycle bins of all snapshots, newest deletion first.
func (uc *ListHistoryUseCase) Execute(ctx context.Context, query ListHistoryQuery) (*ListHistoryResult, error) {
	page, limit := query.Page, query.Limit
	if page < 1 {
		page = constants.DefaultPage
	}
	if limit < 1 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}

	snapshots, err := listSnapshots(ctx, uc.repo)
	if err != nil {
		uc.logger.Errorw("failed to list history", "error", err)
		return nil, err
	}

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(query.Search))

	items := make([]dto.DeletedWorkOrderDTO, 0)
	for _, s := range snapshots {
		for _, d := range s.History() {
			if needle != "" && !historyMatches(fold, d, needle) {
				continue
			}
			items = append(items, dto.ToDeletedWorkOrderDTO(s.ID(), d))
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DeletedAt.After(items[j].DeletedAt)
	})

	total := int64(len(items))
	start, end := utils.ApplyPagination(len(items), page, limit)

	return &ListHistoryResult{
		Items: items[start:end],
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func historyMatches(fold cases.Caser, d *locate.DeletedWorkOrder, needle string) bool {
	for _, field := range []string{d.WorkOrderNumber(), d.CustomerName(), d.CustomerAddress(), d.DeletedBy()} {
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}
