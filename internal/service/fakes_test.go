package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"backend/internal/model"
	"backend/internal/notify"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository fakes. Every method copies on read and write so test
// assertions never observe shared mutable state.

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// fakeTxManager serializes transactions wholesale: the coarse in-memory
// equivalent of the row lock the real repository takes inside a transaction.
type fakeTxManager struct{ mu sync.Mutex }

func (m *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) Notify(_ context.Context, e notify.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *recordingNotifier) count(eventType string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, e := range n.events {
		if e.Type == eventType {
			c++
		}
	}
	return c
}

type fakePurchaseOrderRepo struct {
	mu       sync.Mutex
	orders   map[uuid.UUID]model.PurchaseOrder
	payments map[uuid.UUID]model.Payment
	history  []model.StatusHistoryEntry
}

func newFakePurchaseOrderRepo() *fakePurchaseOrderRepo {
	return &fakePurchaseOrderRepo{
		orders:   make(map[uuid.UUID]model.PurchaseOrder),
		payments: make(map[uuid.UUID]model.Payment),
	}
}

func (r *fakePurchaseOrderRepo) Create(_ context.Context, po *model.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	r.orders[po.ID] = *po
	return nil
}

func (r *fakePurchaseOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	po, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &po, nil
}

func (r *fakePurchaseOrderRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *fakePurchaseOrderRepo) Update(_ context.Context, po *model.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[po.ID] = *po
	return nil
}

func (r *fakePurchaseOrderRepo) List(_ context.Context, _, _ int) ([]model.PurchaseOrder, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var orders []model.PurchaseOrder
	for _, po := range r.orders {
		orders = append(orders, po)
	}
	return orders, int64(len(orders)), nil
}

func (r *fakePurchaseOrderRepo) CreatePayment(_ context.Context, payment *model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	r.payments[payment.ID] = *payment
	return nil
}

func (r *fakePurchaseOrderRepo) GetPayment(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &payment, nil
}

func (r *fakePurchaseOrderRepo) UpdatePayment(_ context.Context, payment *model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[payment.ID] = *payment
	return nil
}

func (r *fakePurchaseOrderRepo) ListPayments(_ context.Context, poID uuid.UUID) ([]model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var payments []model.Payment
	for _, p := range r.payments {
		if p.PurchaseOrderID == poID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func (r *fakePurchaseOrderRepo) SumPaidDeposits(_ context.Context, poID uuid.UUID) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := decimal.Zero
	for _, p := range r.payments {
		if p.PurchaseOrderID == poID && p.Status == model.PaymentPaid && p.DepositPercentage != nil {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (r *fakePurchaseOrderRepo) AppendHistory(_ context.Context, entry *model.StatusHistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	r.history = append(r.history, *entry)
	return nil
}

func (r *fakePurchaseOrderRepo) ListHistory(_ context.Context, poID uuid.UUID) ([]model.StatusHistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var entries []model.StatusHistoryEntry
	for _, e := range r.history {
		if e.PurchaseOrderID == poID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

type fakeProformaRepo struct {
	mu        sync.Mutex
	proformas map[uuid.UUID]model.Proforma
}

func newFakeProformaRepo() *fakeProformaRepo {
	return &fakeProformaRepo{proformas: make(map[uuid.UUID]model.Proforma)}
}

func (r *fakeProformaRepo) Create(_ context.Context, proforma *model.Proforma) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if proforma.ID == uuid.Nil {
		proforma.ID = uuid.New()
	}
	r.proformas[proforma.ID] = *proforma
	return nil
}

func (r *fakeProformaRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Proforma, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	proforma, ok := r.proformas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &proforma, nil
}

func (r *fakeProformaRepo) Update(_ context.Context, proforma *model.Proforma) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.proformas[proforma.ID] = *proforma
	return nil
}

func (r *fakeProformaRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]model.Proforma, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Proforma
	for _, p := range r.proformas {
		if p.ProjectID == projectID {
			result = append(result, p)
		}
	}
	return result, nil
}

type fakeItemRepo struct {
	mu        sync.Mutex
	items     map[uuid.UUID]model.DirectoryItem
	materials map[uuid.UUID][]model.ItemMaterial
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{
		items:     make(map[uuid.UUID]model.DirectoryItem),
		materials: make(map[uuid.UUID][]model.ItemMaterial),
	}
}

func (r *fakeItemRepo) Create(_ context.Context, item *model.DirectoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	stored := *item
	stored.Materials = nil
	r.items[item.ID] = stored
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id uuid.UUID) (*model.DirectoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *fakeItemRepo) GetWithMaterials(_ context.Context, id uuid.UUID) (*model.DirectoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	item.Materials = append([]model.ItemMaterial(nil), r.materials[id]...)
	return &item, nil
}

func (r *fakeItemRepo) ListByProject(_ context.Context, projectID uuid.UUID, currentOnly bool) ([]model.DirectoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.DirectoryItem
	for _, item := range r.items {
		if item.ProjectID != projectID {
			continue
		}
		if currentOnly && !item.IsCurrent {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

func (r *fakeItemRepo) CreateMaterial(_ context.Context, material *model.ItemMaterial) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if material.ID == uuid.Nil {
		material.ID = uuid.New()
	}
	r.materials[material.DirectoryItemID] = append(r.materials[material.DirectoryItemID], *material)
	return nil
}

func (r *fakeItemRepo) MarkSuperseded(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.IsCurrent = false
	r.items[id] = item
	return nil
}

type fakeProductionRepo struct {
	mu          sync.Mutex
	stages      []model.ProductionStage
	employees   []model.Employee
	plans       map[uuid.UUID]model.WorkPlan
	assignments map[uuid.UUID]model.WorkPlanAssignment
	recaps      map[uuid.UUID]model.ProductionRecap
	recapKeys   map[string]bool
}

func newFakeProductionRepo() *fakeProductionRepo {
	return &fakeProductionRepo{
		plans:       make(map[uuid.UUID]model.WorkPlan),
		assignments: make(map[uuid.UUID]model.WorkPlanAssignment),
		recaps:      make(map[uuid.UUID]model.ProductionRecap),
		recapKeys:   make(map[string]bool),
	}
}

func (r *fakeProductionRepo) CreateStage(_ context.Context, stage *model.ProductionStage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stage.ID == uuid.Nil {
		stage.ID = uuid.New()
	}
	r.stages = append(r.stages, *stage)
	return nil
}

func (r *fakeProductionRepo) ListStages(_ context.Context, activeOnly bool) ([]model.ProductionStage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var stages []model.ProductionStage
	for _, st := range r.stages {
		if activeOnly && !st.IsActive {
			continue
		}
		stages = append(stages, st)
	}
	sort.Slice(stages, func(i, j int) bool { return stages[i].SequenceOrder < stages[j].SequenceOrder })
	return stages, nil
}

func (r *fakeProductionRepo) CreateEmployee(_ context.Context, employee *model.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if employee.ID == uuid.Nil {
		employee.ID = uuid.New()
	}
	r.employees = append(r.employees, *employee)
	return nil
}

func (r *fakeProductionRepo) ListActiveEmployees(_ context.Context) ([]model.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var employees []model.Employee
	for _, e := range r.employees {
		if e.IsActive {
			employees = append(employees, e)
		}
	}
	return employees, nil
}

func (r *fakeProductionRepo) CreateWorkPlan(_ context.Context, plan *model.WorkPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	stored := *plan
	stored.Assignments = nil
	r.plans[plan.ID] = stored
	return nil
}

func (r *fakeProductionRepo) CreateAssignment(_ context.Context, assignment *model.WorkPlanAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}
	r.assignments[assignment.ID] = *assignment
	return nil
}

func (r *fakeProductionRepo) stageByID(id uuid.UUID) *model.ProductionStage {
	for i := range r.stages {
		if r.stages[i].ID == id {
			st := r.stages[i]
			return &st
		}
	}
	return nil
}

func (r *fakeProductionRepo) employeeByID(id uuid.UUID) *model.Employee {
	for i := range r.employees {
		if r.employees[i].ID == id {
			e := r.employees[i]
			return &e
		}
	}
	return nil
}

func (r *fakeProductionRepo) loadPlan(plan model.WorkPlan) *model.WorkPlan {
	for _, a := range r.assignments {
		if a.WorkPlanID != plan.ID {
			continue
		}
		a.Stage = r.stageByID(a.StageID)
		a.Employee = r.employeeByID(a.EmployeeID)
		plan.Assignments = append(plan.Assignments, a)
	}
	return &plan
}

func (r *fakeProductionRepo) GetWorkPlanByPO(_ context.Context, poID uuid.UUID) (*model.WorkPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, plan := range r.plans {
		if plan.PurchaseOrderID == poID {
			return r.loadPlan(plan), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductionRepo) GetWorkPlanByID(_ context.Context, id uuid.UUID) (*model.WorkPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan, ok := r.plans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.loadPlan(plan), nil
}

func (r *fakeProductionRepo) GetAssignment(_ context.Context, id uuid.UUID) (*model.WorkPlanAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	assignment, ok := r.assignments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	assignment.Stage = r.stageByID(assignment.StageID)
	assignment.Employee = r.employeeByID(assignment.EmployeeID)
	return &assignment, nil
}

func (r *fakeProductionRepo) CreateRecap(_ context.Context, recap *model.ProductionRecap) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := recap.AssignmentID.String() + "|" + recap.RecapDate.Format("2006-01-02")
	if r.recapKeys[key] {
		return fmt.Errorf("duplicate key value violates unique constraint %q", "idx_recap_assignment_date")
	}
	if recap.ID == uuid.Nil {
		recap.ID = uuid.New()
	}
	r.recapKeys[key] = true
	stored := *recap
	stored.Assignment = nil
	r.recaps[recap.ID] = stored
	return nil
}

func (r *fakeProductionRepo) GetRecap(_ context.Context, id uuid.UUID) (*model.ProductionRecap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	recap, ok := r.recaps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if assignment, ok := r.assignments[recap.AssignmentID]; ok {
		assignment.Stage = r.stageByID(assignment.StageID)
		recap.Assignment = &assignment
	}
	return &recap, nil
}

type fakeStockRepo struct {
	mu         sync.Mutex
	production *fakeProductionRepo
	qcByRecap  map[uuid.UUID]model.QcResult
	items      []model.StockItem
}

func newFakeStockRepo(production *fakeProductionRepo) *fakeStockRepo {
	return &fakeStockRepo{
		production: production,
		qcByRecap:  make(map[uuid.UUID]model.QcResult),
	}
}

func (r *fakeStockRepo) CreateQcResult(_ context.Context, result *model.QcResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.qcByRecap[result.RecapID]; exists {
		return fmt.Errorf("duplicate key value violates unique constraint on recap_id")
	}
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	r.qcByRecap[result.RecapID] = *result
	return nil
}

func (r *fakeStockRepo) GetQcByRecap(_ context.Context, recapID uuid.UUID) (*model.QcResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result, ok := r.qcByRecap[recapID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &result, nil
}

func (r *fakeStockRepo) CreateStockItem(_ context.Context, item *model.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items = append(r.items, *item)
	return nil
}

func (r *fakeStockRepo) ListByQcResult(_ context.Context, qcResultID uuid.UUID) ([]model.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []model.StockItem
	for _, it := range r.items {
		if it.QcResultID == qcResultID {
			items = append(items, it)
		}
	}
	return items, nil
}

func (r *fakeStockRepo) List(_ context.Context, _, _ int) ([]model.StockItem, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := append([]model.StockItem(nil), r.items...)
	return items, int64(len(items)), nil
}

func (r *fakeStockRepo) SumInspected(_ context.Context, assignmentIDs []uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idSet := make(map[uuid.UUID]bool, len(assignmentIDs))
	for _, id := range assignmentIDs {
		idSet[id] = true
	}

	r.production.mu.Lock()
	defer r.production.mu.Unlock()
	total := 0
	for recapID, qc := range r.qcByRecap {
		recap, ok := r.production.recaps[recapID]
		if !ok || !idSet[recap.AssignmentID] {
			continue
		}
		total += qc.GoodQuantity + qc.SecondQuantity + qc.ReFireQuantity + qc.RejectQuantity
	}
	return total, nil
}
