package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"drilltrack/internal/dto"
	"drilltrack/internal/entities"
	"drilltrack/internal/workflow"
	apperrors "drilltrack/pkg/errors"
	"drilltrack/pkg/service"
	"drilltrack/pkg/types"
)

// In-memory stand-ins for the repository layer. They keep just enough
// behavior for the service logic under test: not-found errors, the
// keep-first-timestamp rule on status updates, and child-row replacement.

type fakeTxManager struct{}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeCacheRepo struct {
	store    map[string]string
	patterns []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{store: map[string]string{}}
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	if v, ok := f.store[key]; ok {
		return v, nil
	}
	return "", errors.New("cache miss")
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case []byte:
		f.store[key] = string(v)
	case string:
		f.store[key] = v
	default:
		f.store[key] = fmt.Sprint(v)
	}
	return nil
}

func (f *fakeCacheRepo) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.store, k)
	}
	return nil
}

func (f *fakeCacheRepo) DelByPattern(ctx context.Context, pattern string) error {
	f.patterns = append(f.patterns, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range f.store {
		if strings.HasPrefix(k, prefix) {
			delete(f.store, k)
		}
	}
	return nil
}

type fakeProjectRepo struct {
	projects map[string]*entities.Project
}

func newFakeProjectRepo(ids ...string) *fakeProjectRepo {
	f := &fakeProjectRepo{projects: map[string]*entities.Project{}}
	for _, id := range ids {
		f.projects[id] = &entities.Project{ID: id, Name: "Project " + id}
	}
	return f
}

func (f *fakeProjectRepo) GetProjects(ctx context.Context) ([]entities.Project, error) {
	out := make([]entities.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProjectRepo) FindProject(ctx context.Context, id string) (*entities.Project, error) {
	if p, ok := f.projects[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeProjectRepo) CreateProject(ctx context.Context, project entities.Project) (string, error) {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	f.projects[project.ID] = &project
	return project.ID, nil
}

func (f *fakeProjectRepo) UpdateProject(ctx context.Context, id string, fields map[string]interface{}) error {
	if _, ok := f.projects[id]; !ok {
		return apperrors.ErrNotFound
	}
	return nil
}

func (f *fakeProjectRepo) DeleteProject(ctx context.Context, id string) error {
	if _, ok := f.projects[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.projects, id)
	return nil
}

type fakeWorkOrderRepo struct {
	orders     map[string]*entities.WorkOrder
	borings    map[string][]entities.WorkOrderBoring
	rates      map[string][]entities.RateScheduleLine
	activities map[string][]entities.WorkOrderActivity
}

func newFakeWorkOrderRepo(orders ...*entities.WorkOrder) *fakeWorkOrderRepo {
	f := &fakeWorkOrderRepo{
		orders:     map[string]*entities.WorkOrder{},
		borings:    map[string][]entities.WorkOrderBoring{},
		rates:      map[string][]entities.RateScheduleLine{},
		activities: map[string][]entities.WorkOrderActivity{},
	}
	for _, wo := range orders {
		f.orders[wo.ID] = wo
	}
	return f
}

func (f *fakeWorkOrderRepo) GetWorkOrders(ctx context.Context, filter dto.WorkOrderListFilterDTO, pagination types.Pagination) ([]dto.WorkOrderResponseDTO, uint64, error) {
	out := make([]dto.WorkOrderResponseDTO, 0, len(f.orders))
	for _, wo := range f.orders {
		out = append(out, dto.WorkOrderResponseDTO{WorkOrder: *wo})
	}
	return out, uint64(len(out)), nil
}

func (f *fakeWorkOrderRepo) FindWorkOrder(ctx context.Context, id string) (*entities.WorkOrder, error) {
	wo, ok := f.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *wo
	copied.Borings = f.borings[id]
	copied.RateSchedule = f.rates[id]
	copied.Activities = f.activities[id]
	return &copied, nil
}

func (f *fakeWorkOrderRepo) ListByStatuses(ctx context.Context, statuses []workflow.WorkOrderStatus) ([]entities.WorkOrder, error) {
	out := make([]entities.WorkOrder, 0)
	for _, wo := range f.orders {
		for _, s := range statuses {
			if wo.Status == s {
				out = append(out, *wo)
			}
		}
	}
	return out, nil
}

func onBoard(status workflow.WorkOrderStatus) bool {
	return status == workflow.WorkOrderScheduled ||
		status == workflow.WorkOrderInProgress ||
		status == workflow.WorkOrderCompleted
}

func (f *fakeWorkOrderRepo) ListScheduled(ctx context.Context) ([]entities.WorkOrder, error) {
	out := make([]entities.WorkOrder, 0)
	for _, wo := range f.orders {
		if wo.ScheduledStart != nil && onBoard(wo.Status) {
			out = append(out, *wo)
		}
	}
	return out, nil
}

func (f *fakeWorkOrderRepo) ListAssigned(ctx context.Context) ([]entities.WorkOrder, error) {
	out := make([]entities.WorkOrder, 0)
	for _, wo := range f.orders {
		if (wo.AssignedCrewID != nil || wo.AssignedRigID != nil) && onBoard(wo.Status) {
			out = append(out, *wo)
		}
	}
	return out, nil
}

func (f *fakeWorkOrderRepo) ListAll(ctx context.Context) ([]entities.WorkOrder, error) {
	out := make([]entities.WorkOrder, 0, len(f.orders))
	for _, wo := range f.orders {
		out = append(out, *wo)
	}
	return out, nil
}

func (f *fakeWorkOrderRepo) CreateWorkOrder(ctx context.Context, tx pgx.Tx, wo entities.WorkOrder) (string, error) {
	if wo.ID == "" {
		wo.ID = uuid.NewString()
	}
	f.orders[wo.ID] = &wo
	return wo.ID, nil
}

func (f *fakeWorkOrderRepo) UpdateWorkOrder(ctx context.Context, tx pgx.Tx, id string, fields map[string]interface{}) error {
	if _, ok := f.orders[id]; !ok {
		return apperrors.ErrNotFound
	}
	return nil
}

func (f *fakeWorkOrderRepo) ReplaceBorings(ctx context.Context, tx pgx.Tx, workOrderID string, rows []entities.WorkOrderBoring) error {
	f.borings[workOrderID] = rows
	return nil
}

func (f *fakeWorkOrderRepo) ReplaceRateSchedule(ctx context.Context, tx pgx.Tx, workOrderID string, rows []entities.RateScheduleLine) error {
	f.rates[workOrderID] = rows
	return nil
}

func (f *fakeWorkOrderRepo) ReplaceActivities(ctx context.Context, tx pgx.Tx, workOrderID string, rows []entities.WorkOrderActivity) error {
	f.activities[workOrderID] = rows
	return nil
}

func (f *fakeWorkOrderRepo) UpdateStatus(ctx context.Context, id string, status workflow.WorkOrderStatus, actualStart, actualEnd *time.Time) error {
	wo, ok := f.orders[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	wo.Status = status
	if wo.ActualStart == nil && actualStart != nil {
		wo.ActualStart = actualStart
	}
	if wo.ActualEnd == nil && actualEnd != nil {
		wo.ActualEnd = actualEnd
	}
	return nil
}

func (f *fakeWorkOrderRepo) UpdateAssignment(ctx context.Context, id string, status *workflow.WorkOrderStatus, rigID, crewID *string, start, end *time.Time) error {
	wo, ok := f.orders[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if status != nil {
		wo.Status = *status
	}
	if rigID != nil {
		wo.AssignedRigID = rigID
	}
	if crewID != nil {
		wo.AssignedCrewID = crewID
	}
	if start != nil {
		wo.ScheduledStart = start
	}
	if end != nil {
		wo.ScheduledEnd = end
	}
	return nil
}

func (f *fakeWorkOrderRepo) DeleteWorkOrder(ctx context.Context, id string) error {
	if _, ok := f.orders[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeWorkOrderRepo) NextWONumber(ctx context.Context, tx pgx.Tx, year int) (string, error) {
	return fmt.Sprintf("WO-%d-%03d", year, len(f.orders)+1), nil
}

type fakeStaffRepo struct {
	members map[string]*entities.Staff
}

func newFakeStaffRepo(members ...*entities.Staff) *fakeStaffRepo {
	f := &fakeStaffRepo{members: map[string]*entities.Staff{}}
	for _, m := range members {
		f.members[m.ID] = m
	}
	return f
}

func (f *fakeStaffRepo) GetStaff(ctx context.Context, role string) ([]entities.Staff, error) {
	out := make([]entities.Staff, 0, len(f.members))
	for _, m := range f.members {
		if role == "" || m.Role == role {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeStaffRepo) FindStaff(ctx context.Context, id string) (*entities.Staff, error) {
	if m, ok := f.members[id]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeStaffRepo) FindByEmail(ctx context.Context, email string) (*entities.Staff, error) {
	for _, m := range f.members {
		if strings.EqualFold(m.Email, email) {
			copied := *m
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeStaffRepo) CreateStaff(ctx context.Context, member entities.Staff) (string, error) {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	f.members[member.ID] = &member
	return member.ID, nil
}

func (f *fakeStaffRepo) UpdateStaff(ctx context.Context, id string, fields map[string]interface{}) error {
	if _, ok := f.members[id]; !ok {
		return apperrors.ErrNotFound
	}
	return nil
}

func (f *fakeStaffRepo) DeleteStaff(ctx context.Context, id string) error {
	if _, ok := f.members[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.members, id)
	return nil
}

type fakeJWTService struct{}

func (f *fakeJWTService) GenerateAccessToken(userID, role string) (string, error) {
	return "access-" + userID, nil
}

func (f *fakeJWTService) GenerateRefreshToken(userID string) (string, error) {
	return "refresh-" + userID, nil
}

func (f *fakeJWTService) ValidateToken(tokenString string) (*service.Claims, error) {
	return nil, apperrors.ErrInvalidToken
}

type fakeDailyReportRepo struct {
	reports map[string]*entities.DailyReport
}

func newFakeDailyReportRepo(reports ...*entities.DailyReport) *fakeDailyReportRepo {
	f := &fakeDailyReportRepo{reports: map[string]*entities.DailyReport{}}
	for _, dr := range reports {
		f.reports[dr.ID] = dr
	}
	return f
}

func (f *fakeDailyReportRepo) GetDailyReports(ctx context.Context, filter dto.DailyReportListFilterDTO, pagination types.Pagination) ([]dto.DailyReportResponseDTO, uint64, error) {
	out := make([]dto.DailyReportResponseDTO, 0, len(f.reports))
	for _, dr := range f.reports {
		out = append(out, dto.DailyReportResponseDTO{DailyReport: *dr})
	}
	return out, uint64(len(out)), nil
}

func (f *fakeDailyReportRepo) FindDailyReport(ctx context.Context, id string) (*entities.DailyReport, error) {
	dr, ok := f.reports[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *dr
	return &copied, nil
}

func (f *fakeDailyReportRepo) ListByWorkOrder(ctx context.Context, workOrderID string) ([]entities.DailyReport, error) {
	out := make([]entities.DailyReport, 0)
	for _, dr := range f.reports {
		if dr.WorkOrderID == workOrderID {
			out = append(out, *dr)
		}
	}
	return out, nil
}

func (f *fakeDailyReportRepo) ListAllWithLines(ctx context.Context) ([]entities.DailyReport, error) {
	out := make([]entities.DailyReport, 0, len(f.reports))
	for _, dr := range f.reports {
		out = append(out, *dr)
	}
	return out, nil
}

func (f *fakeDailyReportRepo) CreateDailyReport(ctx context.Context, tx pgx.Tx, report entities.DailyReport) (string, error) {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	f.reports[report.ID] = &report
	return report.ID, nil
}

func (f *fakeDailyReportRepo) UpdateDailyReport(ctx context.Context, tx pgx.Tx, id string, fields map[string]interface{}) error {
	if _, ok := f.reports[id]; !ok {
		return apperrors.ErrNotFound
	}
	return nil
}

func (f *fakeDailyReportRepo) ReplaceProduction(ctx context.Context, tx pgx.Tx, reportID string, rows []entities.ProductionEntry) error {
	if dr, ok := f.reports[reportID]; ok {
		dr.Production = rows
	}
	return nil
}

func (f *fakeDailyReportRepo) ReplaceBilling(ctx context.Context, tx pgx.Tx, reportID string, rows []entities.BillingEntry) error {
	if dr, ok := f.reports[reportID]; ok {
		dr.Billing = rows
	}
	return nil
}

func (f *fakeDailyReportRepo) ReplaceActivities(ctx context.Context, tx pgx.Tx, reportID string, rows []entities.ActivityEntry) error {
	if dr, ok := f.reports[reportID]; ok {
		dr.Activities = rows
	}
	return nil
}

func (f *fakeDailyReportRepo) UpdateStatus(ctx context.Context, id string, status workflow.ReportStatus, reviewNotes string, reviewedAt *time.Time) error {
	dr, ok := f.reports[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	dr.Status = status
	dr.ReviewNotes = reviewNotes
	dr.ReviewedAt = reviewedAt
	return nil
}

func (f *fakeDailyReportRepo) AttachPhoto(ctx context.Context, photo entities.ReportPhoto) (string, error) {
	dr, ok := f.reports[photo.DailyReportID]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	if photo.ID == "" {
		photo.ID = uuid.NewString()
	}
	dr.Photos = append(dr.Photos, photo)
	return photo.ID, nil
}

func (f *fakeDailyReportRepo) DeletePhoto(ctx context.Context, reportID, photoID string) (*entities.ReportPhoto, error) {
	dr, ok := f.reports[reportID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	for i, p := range dr.Photos {
		if p.ID == photoID {
			dr.Photos = append(dr.Photos[:i], dr.Photos[i+1:]...)
			return &p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeDailyReportRepo) DeleteDailyReport(ctx context.Context, id string) error {
	if _, ok := f.reports[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.reports, id)
	return nil
}

func (f *fakeDailyReportRepo) NextReportNumber(ctx context.Context, tx pgx.Tx, workOrderID string) (string, error) {
	count := 0
	for _, dr := range f.reports {
		if dr.WorkOrderID == workOrderID {
			count++
		}
	}
	return fmt.Sprintf("DR-%03d", count+1), nil
}
