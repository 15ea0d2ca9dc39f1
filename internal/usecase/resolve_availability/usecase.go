package resolve_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

// UseCase use case расчета доступности ячеек
type UseCase struct {
	professionalRepo ProfessionalRepository
	offeringRepo     OfferingRepository
	appointmentRepo  AppointmentRepository
	boxes            []string
	gridTimes        []types.TimeString
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
// boxes - сконфигурированные боксы, gridTimes - времена строк дневной сетки
func NewUseCase(
	professionalRepo ProfessionalRepository,
	offeringRepo OfferingRepository,
	appointmentRepo AppointmentRepository,
	boxes []string,
	gridTimes []types.TimeString,
	logger Logger,
) *UseCase {
	return &UseCase{
		professionalRepo: professionalRepo,
		offeringRepo:     offeringRepo,
		appointmentRepo:  appointmentRepo,
		boxes:            boxes,
		gridTimes:        gridTimes,
		logger:           logger,
	}
}

// Execute возвращает специалистов и услуги, доступные в ячейке (date, time, box)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("ResolveAvailability: validation failed: %v", err)
		return nil, err
	}

	professionals, offerings, err := uc.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	cell := domain.Cell{Date: req.Date, Time: req.Time, Box: req.Box}
	availability := domain.Resolve(cell, professionals, offerings)

	uc.logger.Info("ResolveAvailability: cell %s - %d professionals, %d offerings",
		cell, len(availability.Professionals), len(availability.Offerings))

	return &Response{
		Cell:          cell,
		Professionals: availability.Professionals,
		Offerings:     availability.Offerings,
	}, nil
}

// Grid рассчитывает доступность всех ячеек дня и отмечает занятые
func (uc *UseCase) Grid(ctx context.Context, req *GridRequest) (*GridResponse, error) {
	if req.Date.IsZero() {
		return nil, domain.NewValidationError("date", "is required")
	}

	professionals, offerings, err := uc.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	active, err := uc.appointmentRepo.ListActiveByDate(ctx, req.Date, "")
	if err != nil {
		uc.logger.Error("ResolveGrid: failed to list appointments for %s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
	}

	occupied := make(map[domain.Cell]*domain.Appointment, len(active))
	for _, a := range active {
		occupied[a.Cell()] = a
	}

	cells := make([]GridCell, 0, len(uc.gridTimes)*len(uc.boxes))
	for _, t := range uc.gridTimes {
		for _, box := range uc.boxes {
			cell := domain.Cell{Date: req.Date, Time: t, Box: box}
			availability := domain.Resolve(cell, professionals, offerings)

			gc := GridCell{
				Time:            t,
				Box:             box,
				ProfessionalIDs: professionalIDs(availability.Professionals),
				OfferingIDs:     offeringIDs(availability.Offerings),
			}
			if a, ok := occupied[cell]; ok {
				id, status := a.ID, a.Status
				gc.AppointmentID = &id
				gc.Status = &status
			}
			cells = append(cells, gc)
		}
	}

	uc.logger.Info("ResolveGrid: date=%s, %d cells, %d occupied", req.Date, len(cells), len(occupied))

	return &GridResponse{
		Date:  req.Date,
		Times: uc.gridTimes,
		Boxes: uc.boxes,
		Cells: cells,
	}, nil
}

func (uc *UseCase) loadCatalog(ctx context.Context) ([]*domain.Professional, []*domain.Offering, error) {
	professionals, err := uc.professionalRepo.List(ctx)
	if err != nil {
		uc.logger.Error("ResolveAvailability: failed to list professionals: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to list professionals: %w", ErrInternal, err)
	}

	offerings, err := uc.offeringRepo.List(ctx)
	if err != nil {
		uc.logger.Error("ResolveAvailability: failed to list offerings: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to list offerings: %w", ErrInternal, err)
	}

	return professionals, offerings, nil
}

func professionalIDs(professionals []*domain.Professional) []int64 {
	ids := make([]int64, 0, len(professionals))
	for _, p := range professionals {
		ids = append(ids, p.ID)
	}
	return ids
}

func offeringIDs(offerings []*domain.Offering) []int64 {
	ids := make([]int64, 0, len(offerings))
	for _, o := range offerings {
		ids = append(ids, o.ID)
	}
	return ids
}
